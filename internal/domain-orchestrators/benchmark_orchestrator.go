package orchestrators

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/ochairo/packwright/internal/domain-adapters/gateways"
	"github.com/ochairo/packwright/internal/domain/entities"
	"github.com/ochairo/packwright/internal/domain/interfaces"
	"github.com/ochairo/packwright/internal/domain/services"
)

// BenchmarkOrchestrator times repeated analyzer runs and writes a report
type BenchmarkOrchestrator struct {
	locator   ArtifactLocator
	runner    CommandRunner
	files     BenchmarkFiles
	commits   CommitInfoReader
	artifacts entities.ArtifactSettings
	settings  entities.BenchmarkSettings
	workDir   string
	version   string
	now       func() time.Time
	logger    interfaces.Logger
}

// BenchmarkOrchestratorConfig holds configuration for the orchestrator
type BenchmarkOrchestratorConfig struct {
	Artifacts entities.ArtifactSettings
	Benchmark entities.BenchmarkSettings
	WorkDir   string
	Version   string // tool version recorded in the report
}

// NewBenchmarkOrchestrator creates a new benchmark orchestrator.
// commits may be nil, in which case reports carry no commit info.
func NewBenchmarkOrchestrator(
	locator ArtifactLocator,
	runner CommandRunner,
	files BenchmarkFiles,
	commits CommitInfoReader,
	config BenchmarkOrchestratorConfig,
	logger interfaces.Logger,
) *BenchmarkOrchestrator {
	workDir := config.WorkDir
	if workDir == "" {
		workDir = "."
	}

	return &BenchmarkOrchestrator{
		locator:   locator,
		runner:    runner,
		files:     files,
		commits:   commits,
		artifacts: config.Artifacts,
		settings:  config.Benchmark,
		workDir:   workDir,
		version:   config.Version,
		now:       time.Now,
		logger:    interfaces.EnsureLogger(logger),
	}
}

// BenchmarkRequest overrides the configured benchmark settings for one run.
// Zero values keep the configured value. Warmup is a pointer so an explicit
// zero can disable configured warmup rounds.
type BenchmarkRequest struct {
	Variant        string
	SrcDir         string
	Rounds         int
	Warmup         *int
	Output         string
	IgnoreExitCode bool
}

func (o *BenchmarkOrchestrator) effectiveSettings(req BenchmarkRequest) entities.BenchmarkSettings {
	s := o.settings
	if req.Variant != "" {
		s.Variant = req.Variant
	}
	if req.SrcDir != "" {
		s.SrcDir = req.SrcDir
	}
	if req.Rounds > 0 {
		s.Rounds = req.Rounds
	}
	if req.Warmup != nil && *req.Warmup >= 0 {
		s.Warmup = *req.Warmup
	}
	if req.Output != "" {
		s.Output = req.Output
	}
	s.IgnoreExitCode = s.IgnoreExitCode || req.IgnoreExitCode
	if s.Variant == "" {
		s.Variant = entities.VariantPlain
	}
	if s.Runtime == "" {
		s.Runtime = "java"
	}
	if s.Rounds <= 0 {
		s.Rounds = 1
	}
	return s
}

// AnalyzerCommand builds the analyzer argv for one round
func AnalyzerCommand(runtime, jarPath, srcDir, configPath string) []string {
	argv := []string{runtime, "-jar", jarPath, "--analyze", "--srcDir", srcDir, "--reporter", "json"}
	if configPath != "" {
		argv = append(argv, "--configuration", configPath)
	}
	return argv
}

// ConfigurationPath returns where a configured run writes its analyzer
// configuration: the parent of the source root.
func ConfigurationPath(srcDir, fileName string) string {
	return filepath.Join(filepath.Dir(filepath.Clean(srcDir)), fileName)
}

// Run executes warmup and timed rounds and writes the report to the output path
func (o *BenchmarkOrchestrator) Run(ctx context.Context, req BenchmarkRequest) (*entities.BenchmarkReport, error) {
	s := o.effectiveSettings(req)
	if s.Variant != entities.VariantPlain && s.Variant != entities.VariantConfigured {
		return nil, fmt.Errorf("unknown benchmark variant %q (want %s or %s)", s.Variant, entities.VariantPlain, entities.VariantConfigured)
	}

	query, err := artifactQuery(o.artifacts)
	if err != nil {
		return nil, err
	}

	artifact, err := o.locator.FindFirst(filepath.Join(o.workDir, o.artifacts.Dir), query)
	if err != nil {
		return nil, fmt.Errorf("failed to locate executable jar: %w", err)
	}

	srcDir := s.SrcDir
	if !filepath.IsAbs(srcDir) {
		srcDir = filepath.Join(o.workDir, srcDir)
	}

	var configPath string
	if s.Variant == entities.VariantConfigured {
		configPath = ConfigurationPath(srcDir, s.ConfigFile)
		if err := o.files.WriteConfiguration(configPath, s.Configuration); err != nil {
			return nil, err
		}
		o.logger.Info("wrote analyzer configuration", interfaces.F("path", configPath))
	}

	argv := AnalyzerCommand(s.Runtime, artifact.Path, srcDir, configPath)
	spec := gateways.CommandSpec{
		Argv:       argv,
		WorkingDir: o.workDir,
		Timeout:    time.Duration(s.TimeoutMinutes) * time.Minute,
	}

	for i := 0; i < s.Warmup; i++ {
		spec.Description = fmt.Sprintf("warmup round %d/%d", i+1, s.Warmup)
		if _, err := o.round(ctx, spec, s.IgnoreExitCode); err != nil {
			return nil, err
		}
	}

	durations := make([]time.Duration, 0, s.Rounds)
	for i := 0; i < s.Rounds; i++ {
		spec.Description = fmt.Sprintf("round %d/%d", i+1, s.Rounds)
		d, err := o.round(ctx, spec, s.IgnoreExitCode)
		if err != nil {
			return nil, err
		}
		durations = append(durations, d)
		o.logger.Info("benchmark round finished",
			interfaces.F("round", i+1),
			interfaces.F("seconds", d.Seconds()))
	}

	report := o.buildReport(s, argv, durations)
	if err := o.files.WriteReport(s.Output, report); err != nil {
		return nil, err
	}

	o.logger.Info("benchmark report written",
		interfaces.F("output", s.Output),
		interfaces.F("mean", report.Benchmarks[0].Stats.Mean))

	return report, nil
}

// round runs a single analyzer invocation and returns its wall-clock time
func (o *BenchmarkOrchestrator) round(ctx context.Context, spec gateways.CommandSpec, ignoreExitCode bool) (time.Duration, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	if !ignoreExitCode {
		res, err := o.runner.Run(ctx, spec)
		if err != nil {
			return 0, fmt.Errorf("benchmark %s failed: %w", spec.Description, err)
		}
		return res.Duration, nil
	}

	res := o.runner.Execute(ctx, spec)
	if !res.Success {
		// A process that never started has no meaningful timing
		if res.ExitCode < 0 {
			return 0, fmt.Errorf("benchmark %s failed: %w", spec.Description, res.Error)
		}
		o.logger.Warn("ignoring analyzer exit status",
			interfaces.F("round", spec.Description),
			interfaces.F("exit_code", res.ExitCode))
	}
	return res.Duration, nil
}

func (o *BenchmarkOrchestrator) buildReport(s entities.BenchmarkSettings, argv []string, durations []time.Duration) *entities.BenchmarkReport {
	report := &entities.BenchmarkReport{
		RunID:    uuid.NewString(),
		Datetime: o.now().UTC().Format(time.RFC3339),
		Version:  o.version,
		Benchmarks: []entities.BenchmarkEntry{{
			Name:     s.Name,
			Fullname: fmt.Sprintf("%s[%s]", s.Name, s.Variant),
			Params:   map[string]any{"variant": s.Variant},
			Options: entities.BenchmarkOptions{
				Timer:          "wall-clock",
				Warmup:         s.Warmup,
				Rounds:         s.Rounds,
				Command:        argv,
				IgnoreExitCode: s.IgnoreExitCode,
			},
			Stats: services.ComputeStats(durations),
		}},
	}

	if o.commits != nil {
		info, err := o.commits.Read(o.workDir)
		if err != nil {
			o.logger.Warn("failed to read commit info", interfaces.F("error", err))
		}
		report.CommitInfo = info
	}

	return report
}

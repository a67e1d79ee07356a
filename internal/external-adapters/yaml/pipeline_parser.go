// Package yaml provides YAML-based pipeline configuration parsing and repository implementations.
package yaml

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"

	"github.com/ochairo/packwright/internal/domain/entities"
	"github.com/ochairo/packwright/internal/domain/services"
	"gopkg.in/yaml.v3"
)

// yamlPipeline represents the raw YAML structure.
// Pointer fields distinguish "absent" from zero values so defaults survive.
type yamlPipeline struct {
	Artifacts yamlArtifacts `yaml:"artifacts"`
	Package   yamlPackage   `yaml:"package"`
	Benchmark yamlBenchmark `yaml:"benchmark"`
	Badge     yamlBadge     `yaml:"badge"`
}

type yamlArtifacts struct {
	Dir     *string  `yaml:"dir"`
	Pattern *string  `yaml:"pattern"`
	Require []string `yaml:"require"`
	Exclude []string `yaml:"exclude"`
}

type yamlPackage struct {
	Tool           *string  `yaml:"tool"`
	Name           *string  `yaml:"name"`
	Type           *string  `yaml:"type"`
	JavaOptions    []string `yaml:"java_options"`
	TimeoutMinutes *int     `yaml:"timeout_minutes"`
	Platform       *string  `yaml:"platform"`
	Checksum       *bool    `yaml:"checksum"`
}

type yamlBenchmark struct {
	Name           *string               `yaml:"name"`
	Runtime        *string               `yaml:"runtime"`
	SrcDir         *string               `yaml:"src_dir"`
	Variant        *string               `yaml:"variant"`
	Rounds         *int                  `yaml:"rounds"`
	Warmup         *int                  `yaml:"warmup"`
	ConfigFile     *string               `yaml:"config_file"`
	Configuration  *yamlAnalyzerSettings `yaml:"configuration"`
	Output         *string               `yaml:"output"`
	TimeoutMinutes *int                  `yaml:"timeout_minutes"`
	IgnoreExitCode *bool                 `yaml:"ignore_exit_code"`
}

type yamlAnalyzerSettings struct {
	Root       *string         `yaml:"root"`
	Mode       *string         `yaml:"mode"`
	Parameters map[string]bool `yaml:"parameters"`
}

type yamlBadge struct {
	Label  *string `yaml:"label"`
	Color  *string `yaml:"color"`
	Format *string `yaml:"format"`
	Input  *string `yaml:"input"`
	Output *string `yaml:"output"`
}

var hexColor = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// PipelineParser parses YAML pipeline configuration files
type PipelineParser struct{}

// NewPipelineParser creates a new YAML parser
func NewPipelineParser() *PipelineParser {
	return &PipelineParser{}
}

// ParseFile parses a YAML configuration file into a Pipeline entity
func (p *PipelineParser) ParseFile(filePath string) (*entities.Pipeline, error) {
	//nolint:gosec // G304: filePath is the user-selected configuration file
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filePath, err)
	}

	pipeline, err := p.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filePath, err)
	}
	return pipeline, nil
}

// Parse parses YAML bytes into a Pipeline entity.
// Settings absent from the document keep their DefaultPipeline values.
func (p *PipelineParser) Parse(data []byte) (*entities.Pipeline, error) {
	var raw yamlPipeline

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	pipeline := entities.DefaultPipeline()
	applyArtifacts(&pipeline.Artifacts, raw.Artifacts)
	applyPackage(&pipeline.Package, raw.Package)
	applyBenchmark(&pipeline.Benchmark, raw.Benchmark)
	applyBadge(&pipeline.Badge, raw.Badge)

	if err := Validate(pipeline); err != nil {
		return nil, err
	}
	return pipeline, nil
}

// Validate checks settings that would otherwise fail late, naming the offending field
func Validate(p *entities.Pipeline) error {
	if p.Artifacts.Dir == "" {
		return fmt.Errorf("artifacts.dir must not be empty")
	}
	if _, err := regexp.Compile(p.Artifacts.Pattern); err != nil {
		return fmt.Errorf("artifacts.pattern: %w", err)
	}
	if p.Package.ImageName == "" {
		return fmt.Errorf("package.name must not be empty")
	}
	if p.Package.TimeoutMinutes < 0 {
		return fmt.Errorf("package.timeout_minutes must not be negative, got %d", p.Package.TimeoutMinutes)
	}
	if v := p.Benchmark.Variant; v != entities.VariantPlain && v != entities.VariantConfigured {
		return fmt.Errorf("benchmark.variant must be %q or %q, got %q", entities.VariantPlain, entities.VariantConfigured, v)
	}
	if p.Benchmark.Rounds < 1 {
		return fmt.Errorf("benchmark.rounds must be at least 1, got %d", p.Benchmark.Rounds)
	}
	if p.Benchmark.Warmup < 0 {
		return fmt.Errorf("benchmark.warmup must not be negative, got %d", p.Benchmark.Warmup)
	}
	if p.Benchmark.TimeoutMinutes < 0 {
		return fmt.Errorf("benchmark.timeout_minutes must not be negative, got %d", p.Benchmark.TimeoutMinutes)
	}
	if p.Benchmark.ConfigFile == "" {
		return fmt.Errorf("benchmark.config_file must not be empty")
	}
	if !hexColor.MatchString(p.Badge.Color) {
		return fmt.Errorf("badge.color must be a hex color like #007ec6, got %q", p.Badge.Color)
	}
	if err := services.ValidateValueFormat(p.Badge.Format); err != nil {
		return fmt.Errorf("badge.format: %w", err)
	}
	return nil
}

func applyArtifacts(dst *entities.ArtifactSettings, src yamlArtifacts) {
	setString(&dst.Dir, src.Dir)
	setString(&dst.Pattern, src.Pattern)
	if src.Require != nil {
		dst.Require = src.Require
	}
	if src.Exclude != nil {
		dst.Exclude = src.Exclude
	}
}

func applyPackage(dst *entities.PackageSettings, src yamlPackage) {
	setString(&dst.Tool, src.Tool)
	setString(&dst.ImageName, src.Name)
	setString(&dst.Type, src.Type)
	if src.JavaOptions != nil {
		dst.JavaOptions = src.JavaOptions
	}
	setInt(&dst.TimeoutMinutes, src.TimeoutMinutes)
	setString(&dst.Platform, src.Platform)
	setBool(&dst.Checksum, src.Checksum)
}

func applyBenchmark(dst *entities.BenchmarkSettings, src yamlBenchmark) {
	setString(&dst.Name, src.Name)
	setString(&dst.Runtime, src.Runtime)
	setString(&dst.SrcDir, src.SrcDir)
	setString(&dst.Variant, src.Variant)
	setInt(&dst.Rounds, src.Rounds)
	setInt(&dst.Warmup, src.Warmup)
	setString(&dst.ConfigFile, src.ConfigFile)
	setString(&dst.Output, src.Output)
	setInt(&dst.TimeoutMinutes, src.TimeoutMinutes)
	setBool(&dst.IgnoreExitCode, src.IgnoreExitCode)

	if c := src.Configuration; c != nil {
		setString(&dst.Configuration.ConfigurationRoot, c.Root)
		setString(&dst.Configuration.Diagnostics.Mode, c.Mode)
		if c.Parameters != nil {
			dst.Configuration.Diagnostics.Parameters = c.Parameters
		}
	}
}

func applyBadge(dst *entities.BadgeSettings, src yamlBadge) {
	setString(&dst.Label, src.Label)
	setString(&dst.Color, src.Color)
	setString(&dst.Format, src.Format)
	setString(&dst.Input, src.Input)
	setString(&dst.Output, src.Output)
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

package orchestrators

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/ochairo/packwright/internal/domain-adapters/gateways"
	"github.com/ochairo/packwright/internal/domain/entities"
)

const testJar = "/work/build/libs/bsl-language-server-0.1-exec.jar"

func newTestBenchmarkOrchestrator(runner *mockRunner, files *mockBenchmarkFiles, commits CommitInfoReader) *BenchmarkOrchestrator {
	pipeline := entities.DefaultPipeline()
	orch := NewBenchmarkOrchestrator(
		&mockLocator{artifact: &entities.LocatedArtifact{Path: testJar, Name: filepath.Base(testJar)}},
		runner,
		files,
		commits,
		BenchmarkOrchestratorConfig{
			Artifacts: pipeline.Artifacts,
			Benchmark: pipeline.Benchmark,
			WorkDir:   "/work",
			Version:   "1.2.3",
		},
		nil,
	)
	orch.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	return orch
}

func TestAnalyzerCommand(t *testing.T) {
	got := AnalyzerCommand("java", "app.jar", "ssl31/src", "")
	want := []string{"java", "-jar", "app.jar", "--analyze", "--srcDir", "ssl31/src", "--reporter", "json"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("AnalyzerCommand() = %v, want %v", got, want)
	}

	got = AnalyzerCommand("java", "app.jar", "ssl31/src", "ssl31/.bsl-language-server.json")
	want = append(want, "--configuration", "ssl31/.bsl-language-server.json")
	if !reflect.DeepEqual(got, want) {
		t.Errorf("AnalyzerCommand() = %v, want %v", got, want)
	}
}

func TestConfigurationPath(t *testing.T) {
	tests := []struct {
		srcDir string
		want   string
	}{
		{"ssl31/src", filepath.Join("ssl31", ".bsl-language-server.json")},
		{"ssl31/src/", filepath.Join("ssl31", ".bsl-language-server.json")},
		{"/abs/ssl31/src", filepath.Join("/abs/ssl31", ".bsl-language-server.json")},
	}
	for _, tt := range tests {
		if got := ConfigurationPath(tt.srcDir, ".bsl-language-server.json"); got != tt.want {
			t.Errorf("ConfigurationPath(%q) = %q, want %q", tt.srcDir, got, tt.want)
		}
	}
}

func TestBenchmarkOrchestrator_Run_Plain(t *testing.T) {
	runner := &mockRunner{}
	files := &mockBenchmarkFiles{}
	commit := &entities.CommitInfo{ID: "abc123", Branch: "main"}
	orch := newTestBenchmarkOrchestrator(runner, files, &mockCommitInfo{info: commit})

	report, err := orch.Run(context.Background(), BenchmarkRequest{Rounds: 3, Warmup: intPtr(1)})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(runner.calls) != 4 {
		t.Fatalf("expected 1 warmup + 3 rounds, got %d calls", len(runner.calls))
	}
	wantArgv := AnalyzerCommand("java", testJar, filepath.Join("/work", "ssl31/src"), "")
	for _, call := range runner.calls {
		if !reflect.DeepEqual(call.Argv, wantArgv) {
			t.Fatalf("argv = %v, want %v", call.Argv, wantArgv)
		}
	}
	if files.config != nil {
		t.Error("plain variant must not write a configuration file")
	}

	if files.reportPath != "output.json" || files.report != report {
		t.Errorf("report written to %q", files.reportPath)
	}
	if len(report.Benchmarks) != 1 {
		t.Fatalf("expected one benchmark, got %d", len(report.Benchmarks))
	}

	entry := report.Benchmarks[0]
	// warmup took 1s (call 1); timed rounds took 2s, 3s, 4s
	if entry.Stats.Rounds != 3 || entry.Stats.Mean != 3 || entry.Stats.Min != 2 || entry.Stats.Max != 4 {
		t.Errorf("unexpected stats: %+v", entry.Stats)
	}
	if entry.Name != "test_analyze_ssl31" || entry.Fullname != "test_analyze_ssl31[plain]" {
		t.Errorf("unexpected names: %q %q", entry.Name, entry.Fullname)
	}
	if report.CommitInfo != commit || report.Version != "1.2.3" || report.Datetime != "2026-01-02T03:04:05Z" {
		t.Errorf("unexpected report header: %+v", report)
	}
	if report.RunID == "" {
		t.Error("run id should be set")
	}
}

func intPtr(n int) *int { return &n }

func TestBenchmarkOrchestrator_Run_WarmupOverride(t *testing.T) {
	tests := []struct {
		name      string
		warmup    *int
		wantCalls int
	}{
		{"configured warmup kept", nil, 2 + 1},
		{"explicit zero disables warmup", intPtr(0), 1},
		{"explicit value replaces config", intPtr(1), 1 + 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &mockRunner{}
			orch := newTestBenchmarkOrchestrator(runner, &mockBenchmarkFiles{}, nil)
			orch.settings.Warmup = 2

			report, err := orch.Run(context.Background(), BenchmarkRequest{Rounds: 1, Warmup: tt.warmup})
			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			if len(runner.calls) != tt.wantCalls {
				t.Errorf("expected %d calls, got %d", tt.wantCalls, len(runner.calls))
			}
			if report.Benchmarks[0].Stats.Rounds != 1 {
				t.Errorf("expected 1 timed round, got %d", report.Benchmarks[0].Stats.Rounds)
			}
		})
	}
}

func TestBenchmarkOrchestrator_Run_Configured(t *testing.T) {
	runner := &mockRunner{}
	files := &mockBenchmarkFiles{}
	orch := newTestBenchmarkOrchestrator(runner, files, nil)

	report, err := orch.Run(context.Background(), BenchmarkRequest{Variant: entities.VariantConfigured, Rounds: 1})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	wantConfig := filepath.Join("/work", "ssl31", ".bsl-language-server.json")
	if files.configPath != wantConfig {
		t.Errorf("configuration written to %q, want %q", files.configPath, wantConfig)
	}
	if files.config.Diagnostics.Mode != "except" || files.config.Diagnostics.Parameters["Typo"] {
		t.Errorf("unexpected configuration: %+v", files.config)
	}

	argv := runner.calls[0].Argv
	if argv[len(argv)-2] != "--configuration" || argv[len(argv)-1] != wantConfig {
		t.Errorf("argv should end with --configuration %s: %v", wantConfig, argv)
	}
	if report.CommitInfo != nil {
		t.Error("commit info should be absent without a reader")
	}
}

func TestBenchmarkOrchestrator_Run_FailingRound(t *testing.T) {
	files := &mockBenchmarkFiles{}
	orch := newTestBenchmarkOrchestrator(&mockRunner{exitCodes: []int{0, 2}}, files, nil)

	_, err := orch.Run(context.Background(), BenchmarkRequest{Rounds: 3})
	if !isCommandFailure(err) {
		t.Fatalf("error = %v, want ErrCommandFailed", err)
	}
	if files.report != nil {
		t.Error("no report should be written after a failed round")
	}
}

func TestBenchmarkOrchestrator_Run_IgnoreExitCode(t *testing.T) {
	runner := &mockRunner{exitCodes: []int{1, 1}}
	files := &mockBenchmarkFiles{}
	orch := newTestBenchmarkOrchestrator(runner, files, nil)

	report, err := orch.Run(context.Background(), BenchmarkRequest{Rounds: 2, IgnoreExitCode: true})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if report.Benchmarks[0].Stats.Rounds != 2 || !report.Benchmarks[0].Options.IgnoreExitCode {
		t.Errorf("unexpected entry: %+v", report.Benchmarks[0])
	}
}

func TestBenchmarkOrchestrator_Run_IgnoreExitCodeStillFailsOnStartError(t *testing.T) {
	orch := newTestBenchmarkOrchestrator(&mockRunner{startErr: errors.New("executable file not found")}, &mockBenchmarkFiles{}, nil)

	if _, err := orch.Run(context.Background(), BenchmarkRequest{IgnoreExitCode: true}); err == nil {
		t.Error("expected error when the runtime cannot be started")
	}
}

func TestBenchmarkOrchestrator_Run_Errors(t *testing.T) {
	pipeline := entities.DefaultPipeline()
	runner := &mockRunner{}
	orch := NewBenchmarkOrchestrator(&mockLocator{err: errMockNotFound}, runner, &mockBenchmarkFiles{}, nil,
		BenchmarkOrchestratorConfig{Artifacts: pipeline.Artifacts, Benchmark: pipeline.Benchmark}, nil)

	if _, err := orch.Run(context.Background(), BenchmarkRequest{}); !errors.Is(err, gateways.ErrArtifactNotFound) {
		t.Errorf("error = %v, want ErrArtifactNotFound", err)
	}
	if len(runner.calls) != 0 {
		t.Error("analyzer must not run without a jar")
	}

	if _, err := orch.Run(context.Background(), BenchmarkRequest{Variant: "turbo"}); err == nil {
		t.Error("expected error for unknown variant")
	}
}

func TestBenchmarkOrchestrator_Run_Cancelled(t *testing.T) {
	runner := &mockRunner{}
	orch := newTestBenchmarkOrchestrator(runner, &mockBenchmarkFiles{}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := orch.Run(ctx, BenchmarkRequest{}); !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
	if len(runner.calls) != 0 {
		t.Error("no round should start after cancellation")
	}
}

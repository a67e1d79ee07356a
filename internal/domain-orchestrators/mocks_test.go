package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ochairo/packwright/internal/domain-adapters/gateways"
	"github.com/ochairo/packwright/internal/domain/entities"
)

// Mock implementations for testing
type mockLocator struct {
	artifact *entities.LocatedArtifact
	err      error
	dir      string
}

func (m *mockLocator) FindFirst(dir string, _ gateways.ArtifactQuery) (*entities.LocatedArtifact, error) {
	m.dir = dir
	if m.err != nil {
		return nil, m.err
	}
	return m.artifact, nil
}

type mockRunner struct {
	exitCodes []int // per call; missing entries mean success
	startErr  error
	calls     []gateways.CommandSpec
}

func (m *mockRunner) Execute(_ context.Context, spec gateways.CommandSpec) *gateways.ExecuteResult {
	m.calls = append(m.calls, spec)
	if m.startErr != nil {
		return &gateways.ExecuteResult{ExitCode: -1, Error: m.startErr}
	}

	code := 0
	if n := len(m.calls) - 1; n < len(m.exitCodes) {
		code = m.exitCodes[n]
	}
	res := &gateways.ExecuteResult{
		ExitCode: code,
		Success:  code == 0,
		Duration: time.Duration(len(m.calls)) * time.Second,
	}
	if code != 0 {
		res.Error = fmt.Errorf("exit status %d", code)
	}
	return res
}

func (m *mockRunner) Run(ctx context.Context, spec gateways.CommandSpec) (*gateways.ExecuteResult, error) {
	res := m.Execute(ctx, spec)
	if !res.Success {
		return res, fmt.Errorf("%w: %s (exit %d): %v", gateways.ErrCommandFailed, spec.Description, res.ExitCode, res.Error)
	}
	return res, nil
}

type mockArchiver struct {
	err                      error
	rootDir, baseDir, target string
}

func (m *mockArchiver) ZipPath(rootDir, baseDir, zipPath string) (*entities.ArchiveResult, error) {
	m.rootDir, m.baseDir, m.target = rootDir, baseDir, zipPath
	if m.err != nil {
		return nil, m.err
	}
	return &entities.ArchiveResult{Path: zipPath, SizeBytes: 2 << 20}, nil
}

type mockChecksumWriter struct {
	err     error
	written []string
}

func (m *mockChecksumWriter) WriteSidecar(path string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.written = append(m.written, path)
	return path + ".sha256", nil
}

type mockBenchmarkFiles struct {
	configPath string
	config     *entities.BenchmarkConfiguration
	reportPath string
	report     *entities.BenchmarkReport
	writeErr   error
}

func (m *mockBenchmarkFiles) WriteConfiguration(path string, cfg entities.BenchmarkConfiguration) error {
	m.configPath = path
	m.config = &cfg
	return m.writeErr
}

func (m *mockBenchmarkFiles) WriteReport(path string, report *entities.BenchmarkReport) error {
	m.reportPath = path
	m.report = report
	return m.writeErr
}

type mockCommitInfo struct {
	info *entities.CommitInfo
	err  error
}

func (m *mockCommitInfo) Read(_ string) (*entities.CommitInfo, error) {
	return m.info, m.err
}

var errMockNotFound = fmt.Errorf("%w in build/libs", gateways.ErrArtifactNotFound)

func isCommandFailure(err error) bool {
	return errors.Is(err, gateways.ErrCommandFailed)
}

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ochairo/packwright/internal/domain-adapters/gateways"
	"github.com/ochairo/packwright/internal/domain/entities"
)

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func sizedFile(t *testing.T, size int64) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bsl-language-server_ubuntu-latest.zip")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, f.Truncate(size))
	require.NoError(t, f.Close())
	return path
}

func TestVerifyArchive_ExitCodes(t *testing.T) {
	tests := []struct {
		name     string
		size     int64
		extra    []string
		wantCode int
		wantOut  string
	}{
		{"exactly one megabyte", entities.BytesPerMB, nil, 0, "✅ OK"},
		{"one byte short", entities.BytesPerMB - 1, nil, 1, "❌ FAILED"},
		{"explicit threshold met", 3 * entities.BytesPerMB, []string{"3"}, 0, "(3 MB)"},
		{"explicit threshold missed", 3 * entities.BytesPerMB, []string{"4"}, 1, "❌ FAILED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := sizedFile(t, tt.size)
			code, stdout, _ := runCLI(t, append([]string{"verify-archive", path}, tt.extra...)...)
			require.Equal(t, tt.wantCode, code)
			require.Contains(t, stdout, tt.wantOut)
		})
	}
}

func TestVerifyArchive_MissingFile(t *testing.T) {
	code, stdout, stderr := runCLI(t, "verify-archive", filepath.Join(t.TempDir(), "absent.zip"))
	require.Equal(t, 1, code)
	require.Contains(t, stdout, "does not exist")
	require.Contains(t, stderr, "archive not found")
}

func TestVerifyArchive_UsageErrors(t *testing.T) {
	path := sizedFile(t, entities.BytesPerMB)

	for _, args := range [][]string{
		{"verify-archive"},
		{"verify-archive", path, "abc"},
		{"verify-archive", path, "0"},
		{"verify-archive", path, "9000000000000"},
		{"verify-archive", path, "1", "extra"},
		{"verify-archive", path, "--signature", path + ".asc"},
	} {
		code, _, _ := runCLI(t, args...)
		require.Equal(t, 1, code, "args %v", args)
	}
}

func TestVerifyArchive_Checksum(t *testing.T) {
	path := sizedFile(t, entities.BytesPerMB)
	sidecar, err := gateways.NewChecksumWriter().WriteSidecar(path)
	require.NoError(t, err)

	code, stdout, _ := runCLI(t, "verify-archive", path, "--checksum", sidecar)
	require.Equal(t, 0, code)
	require.Contains(t, stdout, "Checksum verified")

	require.NoError(t, os.WriteFile(sidecar, []byte(strings.Repeat("0", 64)+"\n"), 0600))
	code, _, _ = runCLI(t, "verify-archive", path, "--checksum", sidecar)
	require.Equal(t, 1, code)
}

func TestLocate(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{
		"bsl-language-server-1.0-sources.jar",
		"bsl-language-server-1.0-exec.jar",
		"bsl-language-server-1.0.jar",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("jar"), 0600))
	}

	code, stdout, _ := runCLI(t, "locate", "--dir", dir)
	require.Equal(t, 0, code)
	require.Equal(t, "bsl-language-server-1.0-exec.jar\n", stdout)

	code, stdout, _ = runCLI(t, "locate", "--dir", dir, "--path")
	require.Equal(t, 0, code)
	require.Equal(t, filepath.Join(dir, "bsl-language-server-1.0-exec.jar")+"\n", stdout)

	code, _, stderr := runCLI(t, "locate", "--dir", dir, "--require", "missing.jar")
	require.Equal(t, 1, code)
	require.Contains(t, stderr, "no matching artifact found")
}

func TestBadge(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "output.json")
	output := filepath.Join(dir, "benchmark.svg")

	report := &entities.BenchmarkReport{
		Benchmarks: []entities.BenchmarkEntry{{Name: "test_analyze_ssl31", Stats: entities.BenchmarkStats{Mean: 42.126}}},
	}
	require.NoError(t, gateways.NewBenchmarkFileStore().WriteReport(input, report))

	code, stdout, _ := runCLI(t, "badge", "--input", input, "--output", output)
	require.Equal(t, 0, code)
	require.Contains(t, stdout, "42.13 s")

	//nolint:gosec // G304: test file
	svg, err := os.ReadFile(output)
	require.NoError(t, err)
	require.Contains(t, string(svg), "42.13 s")
	require.Contains(t, string(svg), "Benchmark")

	for _, format := range []string{"seconds", "%.2f %s", "%d s"} {
		code, _, stderr := runCLI(t, "badge", "--input", input, "--output", output, "--format", format)
		require.Equal(t, 1, code, "format %q", format)
		require.Contains(t, stderr, "--format", "format %q", format)
	}
}

func TestGlobalFlags(t *testing.T) {
	code, _, _ := runCLI(t, "--log-level", "loud", "locate")
	require.Equal(t, 1, code)

	code, _, _ = runCLI(t, "--log-format", "xml", "locate")
	require.Equal(t, 1, code)

	code, _, _ = runCLI(t, "--config", filepath.Join(t.TempDir(), "missing.yml"), "locate")
	require.Equal(t, 1, code)

	code, _, _ = runCLI(t, "no-such-command")
	require.Equal(t, 1, code)
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	libs := filepath.Join(dir, "libs")
	require.NoError(t, os.MkdirAll(libs, 0750))
	require.NoError(t, os.WriteFile(filepath.Join(libs, "app-all.jar"), []byte("jar"), 0600))

	cfg := filepath.Join(dir, "packwright.yml")
	require.NoError(t, os.WriteFile(cfg, []byte("artifacts:\n  dir: "+libs+"\n  pattern: 'app.+\\.jar'\n  require: [all.jar]\n"), 0600))

	code, stdout, _ := runCLI(t, "--config", cfg, "locate")
	require.Equal(t, 0, code)
	require.Equal(t, "app-all.jar\n", stdout)
}

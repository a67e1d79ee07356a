package gateways

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ochairo/packwright/internal/domain/entities"
)

// BenchmarkFileStore reads and writes the JSON documents around a benchmark run
type BenchmarkFileStore struct{}

// NewBenchmarkFileStore creates a new benchmark file store
func NewBenchmarkFileStore() *BenchmarkFileStore {
	return &BenchmarkFileStore{}
}

// WriteConfiguration writes the analyzer configuration file read by the benchmarked tool
func (s *BenchmarkFileStore) WriteConfiguration(path string, cfg entities.BenchmarkConfiguration) error {
	if cfg.Diagnostics.Parameters == nil {
		cfg.Diagnostics.Parameters = map[string]bool{}
	}
	return writeJSON(path, cfg)
}

// WriteReport writes the benchmark result document
func (s *BenchmarkFileStore) WriteReport(path string, report *entities.BenchmarkReport) error {
	return writeJSON(path, report)
}

// ReadReport loads a benchmark result document
func (s *BenchmarkFileStore) ReadReport(path string) (*entities.BenchmarkReport, error) {
	//nolint:gosec // G304: report path is user-provided
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read benchmark report: %w", err)
	}

	var report entities.BenchmarkReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("failed to parse benchmark report %s: %w", path, err)
	}
	return &report, nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", filepath.Base(path), err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory for %s: %w", path, err)
		}
	}

	if err := os.WriteFile(path, append(data, '\n'), 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

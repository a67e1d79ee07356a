package services

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ochairo/packwright/internal/domain/entities"
)

type stubReportReader struct {
	report *entities.BenchmarkReport
	err    error
}

func (s *stubReportReader) ReadReport(_ string) (*entities.BenchmarkReport, error) {
	return s.report, s.err
}

type recordingDrawer struct {
	label, value, color string
}

func (d *recordingDrawer) Render(w io.Writer, label, value, color string) error {
	d.label, d.value, d.color = label, value, color
	_, err := fmt.Fprintf(w, "<svg>%s|%s</svg>", label, value)
	return err
}

func reportWithMean(mean float64) *entities.BenchmarkReport {
	return &entities.BenchmarkReport{
		Benchmarks: []entities.BenchmarkEntry{{Stats: entities.BenchmarkStats{Mean: mean}}},
	}
}

func TestFormatMean(t *testing.T) {
	got, err := FormatMean(reportWithMean(12.3456), "")
	require.NoError(t, err)
	require.Equal(t, "12.35 s", got)

	got, err = FormatMean(reportWithMean(0.5), "%.1f sec")
	require.NoError(t, err)
	require.Equal(t, "0.5 sec", got)

	_, err = FormatMean(&entities.BenchmarkReport{}, "")
	require.ErrorIs(t, err, ErrNoBenchmarks)

	_, err = FormatMean(nil, "")
	require.ErrorIs(t, err, ErrNoBenchmarks)

	_, err = FormatMean(reportWithMean(1), "%.2f %s")
	require.ErrorIs(t, err, ErrInvalidValueFormat)
}

func TestValidateValueFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"", false},
		{"%.2f s", false},
		{"%f", false},
		{"%8.3e sec", false},
		{"%+g", false},
		{"%v s", false},
		{"100%% %.1f", false},
		{"seconds", true},
		{"%.2f %.2f", true},
		{"%d s", true},
		{"%s", true},
		{"%.2f %s", true},
		{"%*.2f", true},
		{"%[1]f", true},
		{"%.2", true},
		{"50%", true},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			err := ValidateValueFormat(tt.format)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidValueFormat)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestBadgeService_Render(t *testing.T) {
	drawer := &recordingDrawer{}
	svc := NewBadgeService(&stubReportReader{report: reportWithMean(7.891)}, drawer, nil)
	out := filepath.Join(t.TempDir(), "badges", "benchmark.svg")

	value, err := svc.Render(entities.BadgeSettings{
		Label:  "Benchmark",
		Color:  "#4c1",
		Input:  "output.json",
		Output: out,
	})
	require.NoError(t, err)
	require.Equal(t, "7.89 s", value)
	require.Equal(t, "Benchmark", drawer.label)
	require.Equal(t, "#4c1", drawer.color)

	//nolint:gosec // G304: test file
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Equal(t, "<svg>Benchmark|7.89 s</svg>", string(data))
}

func TestBadgeService_Render_Errors(t *testing.T) {
	out := filepath.Join(t.TempDir(), "benchmark.svg")

	svc := NewBadgeService(&stubReportReader{err: errors.New("failed to read benchmark report")}, &recordingDrawer{}, nil)
	_, err := svc.Render(entities.BadgeSettings{Input: "missing.json", Output: out})
	require.Error(t, err)

	svc = NewBadgeService(&stubReportReader{report: &entities.BenchmarkReport{}}, &recordingDrawer{}, nil)
	_, err = svc.Render(entities.BadgeSettings{Input: "empty.json", Output: out})
	require.ErrorIs(t, err, ErrNoBenchmarks)

	svc = NewBadgeService(&stubReportReader{report: reportWithMean(1)}, &recordingDrawer{}, nil)
	_, err = svc.Render(entities.BadgeSettings{Input: "output.json", Output: out, Format: "took %d"})
	require.ErrorIs(t, err, ErrInvalidValueFormat)

	_, statErr := os.Stat(out)
	require.True(t, os.IsNotExist(statErr), "no badge should be written on failure")
}

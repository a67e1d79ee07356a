// Package services holds the domain logic of the CI helpers.
package services

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/ochairo/packwright/internal/domain/entities"
	"github.com/ochairo/packwright/internal/domain/interfaces"
)

// DefaultMinSizeMB is used when no minimum size argument is given
const DefaultMinSizeMB = 1

// Archive check errors
var (
	ErrInvalidMinSize  = errors.New("minimum size must be a positive integer")
	ErrArchiveMissing  = errors.New("archive not found")
	ErrArchiveTooSmall = errors.New("archive is smaller than the minimum size")
)

// ArchiveSizeService checks that release archives are not truncated
type ArchiveSizeService struct {
	logger interfaces.Logger
}

// NewArchiveSizeService creates a new archive size service
func NewArchiveSizeService(logger interfaces.Logger) *ArchiveSizeService {
	return &ArchiveSizeService{logger: interfaces.EnsureLogger(logger)}
}

// ParseMinSize parses the optional minimum size argument.
// An empty argument yields DefaultMinSizeMB.
func ParseMinSize(arg string) (int, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return DefaultMinSizeMB, nil
	}

	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("%w, got %q", ErrInvalidMinSize, arg)
	}
	if n <= 0 {
		return 0, fmt.Errorf("%w, got %d", ErrInvalidMinSize, n)
	}
	if int64(n) > math.MaxInt64/entities.BytesPerMB {
		return 0, fmt.Errorf("%w, got %d (too large)", ErrInvalidMinSize, n)
	}
	return n, nil
}

// Check stats path and compares its size against minSizeMB megabytes (inclusive).
// A missing file is reported without any size computation.
func (s *ArchiveSizeService) Check(path string, minSizeMB int) *entities.SizeReport {
	report := &entities.SizeReport{
		Path:           path,
		MinSizeMB:      minSizeMB,
		ThresholdBytes: int64(minSizeMB) * entities.BytesPerMB,
	}

	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		s.logger.Debug("archive not found", interfaces.F("path", path), interfaces.F("error", err))
		return report
	}

	report.Exists = true
	report.SizeBytes = info.Size()
	report.Passed = report.SizeBytes >= report.ThresholdBytes

	s.logger.Debug("archive size checked",
		interfaces.F("path", path),
		interfaces.F("size_bytes", report.SizeBytes),
		interfaces.F("threshold_bytes", report.ThresholdBytes),
		interfaces.F("passed", report.Passed))

	return report
}

// Err converts a failed report into ErrArchiveMissing or ErrArchiveTooSmall
func (s *ArchiveSizeService) Err(report *entities.SizeReport) error {
	switch {
	case report.Passed:
		return nil
	case !report.Exists:
		return fmt.Errorf("%w: %s", ErrArchiveMissing, report.Path)
	default:
		return fmt.Errorf("%w: %s is %d bytes, need at least %d bytes (%d MB)",
			ErrArchiveTooSmall, report.Path, report.SizeBytes, report.ThresholdBytes, report.MinSizeMB)
	}
}

// WriteReport prints the human-readable size report
func (s *ArchiveSizeService) WriteReport(w io.Writer, report *entities.SizeReport) {
	fmt.Fprintf(w, "Archive: %s\n", report.Path)
	if !report.Exists {
		fmt.Fprintf(w, "❌ FAILED: file does not exist\n")
		return
	}

	fmt.Fprintf(w, "  Size:      %d bytes (%.2f MB)\n", report.SizeBytes, report.SizeMB())
	fmt.Fprintf(w, "  Threshold: %d bytes (%d MB)\n", report.ThresholdBytes, report.MinSizeMB)

	if report.Passed {
		fmt.Fprintf(w, "✅ OK: archive size is above the threshold\n")
	} else {
		fmt.Fprintf(w, "❌ FAILED: archive is smaller than %d MB\n", report.MinSizeMB)
	}
}

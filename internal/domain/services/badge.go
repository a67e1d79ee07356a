package services

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ochairo/packwright/internal/domain/entities"
	"github.com/ochairo/packwright/internal/domain/interfaces"
)

// DefaultValueFormat formats the mean when no format is configured
const DefaultValueFormat = "%.2f s"

// Badge errors
var (
	ErrNoBenchmarks       = errors.New("benchmark report contains no benchmarks")
	ErrInvalidValueFormat = errors.New("format must contain exactly one floating-point verb such as %.2f")
)

// ReportReader loads benchmark result documents
type ReportReader interface {
	ReadReport(path string) (*entities.BenchmarkReport, error)
}

// BadgeDrawer renders a label/value badge
type BadgeDrawer interface {
	Render(w io.Writer, label, value, color string) error
}

// BadgeService turns a benchmark report into an SVG badge
type BadgeService struct {
	reports ReportReader
	drawer  BadgeDrawer
	logger  interfaces.Logger
}

// NewBadgeService creates a new badge service
func NewBadgeService(reports ReportReader, drawer BadgeDrawer, logger interfaces.Logger) *BadgeService {
	return &BadgeService{
		reports: reports,
		drawer:  drawer,
		logger:  interfaces.EnsureLogger(logger),
	}
}

// ValidateValueFormat checks that format takes exactly one float64 operand.
// Flags, width and precision are allowed; "%%" is a literal percent sign.
// An empty format selects DefaultValueFormat and is valid.
func ValidateValueFormat(format string) error {
	verbs := 0
	for i := 0; i < len(format); i++ {
		if format[i] != '%' {
			continue
		}
		i++
		for i < len(format) && strings.IndexByte("+-# 0", format[i]) >= 0 {
			i++
		}
		for i < len(format) && (isDigit(format[i]) || format[i] == '.') {
			i++
		}
		if i >= len(format) {
			return fmt.Errorf("%w, got %q", ErrInvalidValueFormat, format)
		}
		switch format[i] {
		case '%':
			continue
		case 'e', 'E', 'f', 'F', 'g', 'G', 'v':
			verbs++
		default:
			return fmt.Errorf("%w, got %q", ErrInvalidValueFormat, format)
		}
	}
	if format != "" && verbs != 1 {
		return fmt.Errorf("%w, got %q", ErrInvalidValueFormat, format)
	}
	return nil
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// FormatMean reads benchmarks[0].stats.mean from the report and formats it
func FormatMean(report *entities.BenchmarkReport, format string) (string, error) {
	if err := ValidateValueFormat(format); err != nil {
		return "", err
	}
	if report == nil || len(report.Benchmarks) == 0 {
		return "", ErrNoBenchmarks
	}
	if format == "" {
		format = DefaultValueFormat
	}
	return fmt.Sprintf(format, report.Benchmarks[0].Stats.Mean), nil
}

// Render reads the report at settings.Input and writes the badge to settings.Output
func (s *BadgeService) Render(settings entities.BadgeSettings) (string, error) {
	if err := ValidateValueFormat(settings.Format); err != nil {
		return "", err
	}

	report, err := s.reports.ReadReport(settings.Input)
	if err != nil {
		return "", err
	}

	value, err := FormatMean(report, settings.Format)
	if err != nil {
		return "", fmt.Errorf("%s: %w", settings.Input, err)
	}

	if dir := filepath.Dir(settings.Output); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return "", fmt.Errorf("failed to create badge directory: %w", err)
		}
	}

	//nolint:gosec // G304: badge output path is user-provided
	f, err := os.Create(settings.Output)
	if err != nil {
		return "", fmt.Errorf("failed to create badge file: %w", err)
	}

	if err := s.drawer.Render(f, settings.Label, value, settings.Color); err != nil {
		_ = f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to write badge file: %w", err)
	}

	s.logger.Info("badge rendered",
		interfaces.F("output", settings.Output),
		interfaces.F("label", settings.Label),
		interfaces.F("value", value))

	return value, nil
}

package logging

import (
	"log/slog"

	"github.com/ochairo/packwright/internal/domain/interfaces"
)

// FieldLogger adapts a *slog.Logger to interfaces.Logger
type FieldLogger struct {
	logger *slog.Logger
}

// NewFieldLogger wraps logger; a nil logger falls back to slog.Default()
func NewFieldLogger(logger *slog.Logger) *FieldLogger {
	if logger == nil {
		logger = slog.Default()
	}
	return &FieldLogger{logger: logger}
}

// Debug logs debug-level messages
func (l *FieldLogger) Debug(msg string, fields ...interfaces.Field) {
	l.logger.Debug(msg, toArgs(fields)...)
}

// Info logs informational messages
func (l *FieldLogger) Info(msg string, fields ...interfaces.Field) {
	l.logger.Info(msg, toArgs(fields)...)
}

// Warn logs warning messages
func (l *FieldLogger) Warn(msg string, fields ...interfaces.Field) {
	l.logger.Warn(msg, toArgs(fields)...)
}

// Error logs error messages
func (l *FieldLogger) Error(msg string, fields ...interfaces.Field) {
	l.logger.Error(msg, toArgs(fields)...)
}

func toArgs(fields []interfaces.Field) []any {
	args := make([]any, 0, len(fields))
	for _, f := range fields {
		args = append(args, slog.Any(f.Key, f.Value))
	}
	return args
}

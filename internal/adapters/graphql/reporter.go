package graphql

import (
	"context"

	"inkverse/internal/platform/logger"
)

// Reporter receives GraphQL errors for crash reporting
// Capture runs on its own goroutine; a panic inside it is swallowed
type Reporter interface {
	Capture(ctx context.Context, err error)
}

// ReporterFunc adapts a function to Reporter
type ReporterFunc func(ctx context.Context, err error)

// Capture implements Reporter
func (f ReporterFunc) Capture(ctx context.Context, err error) { f(ctx, err) }

type nopReporter struct{}

func (nopReporter) Capture(context.Context, error) {}

// Nop discards every report
func Nop() Reporter { return nopReporter{} }

// LogReporter writes each report as an error line
type LogReporter struct{ log *logger.Logger }

// NewLogReporter reports through log, or the "graphql" logger when nil
func NewLogReporter(log *logger.Logger) *LogReporter {
	if log == nil {
		log = logger.Named("graphql")
	}
	return &LogReporter{log: log}
}

// Capture implements Reporter
func (r *LogReporter) Capture(ctx context.Context, err error) {
	logger.From(ctx, r.log).Error().Err(err).Msg("graphql error reported")
}

package seedscan

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
)

// Logger is a slog.Logger carrying the fields of one search run.
type Logger struct {
	*slog.Logger
}

// NewLogger wraps handler. A nil handler logs text at info level to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})
	}
	return &Logger{Logger: slog.New(handler)}
}

// NewJSONLogger logs JSON lines to w. A nil w means stderr.
func NewJSONLogger(w io.Writer, level slog.Leveler) *Logger {
	return NewLogger(slog.NewJSONHandler(orStderr(w), &slog.HandlerOptions{Level: level}))
}

// NewTextLogger logs logfmt-style text to w. A nil w means stderr.
func NewTextLogger(w io.Writer, level slog.Leveler) *Logger {
	return NewLogger(slog.NewTextHandler(orStderr(w), &slog.HandlerOptions{Level: level}))
}

// NoopLogger discards everything.
func NoopLogger() *Logger {
	return NewLogger(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(1000)}))
}

func orStderr(w io.Writer) io.Writer {
	if w == nil {
		return os.Stderr
	}
	return w
}

// NewRunID returns a fresh id for one search run.
func NewRunID() string {
	return uuid.NewString()
}

// WithRunID adds a run_id field to the logger.
func (l *Logger) WithRunID(id string) *Logger {
	return &Logger{
		Logger: l.Logger.With("run_id", id),
	}
}

// LogStart logs the start (or resume) of a search.
func (l *Logger) LogStart(ctx context.Context, mode string, batches uint64, threads int, p PlatformInfo) {
	l.InfoContext(ctx, "search started",
		"mode", mode,
		"batches", batches,
		"threads", threads,
		"isa", p.ISA,
		"passes", p.Passes,
	)
}

// LogPause logs a paused search.
func (l *Logger) LogPause(ctx context.Context, completed, total uint64) {
	l.InfoContext(ctx, "search paused",
		"batches_completed", completed,
		"batches_total", total,
	)
}

// LogComplete logs the end of a search.
func (l *Logger) LogComplete(ctx context.Context, stats Stats, status Status, err error) {
	if err != nil {
		l.ErrorContext(ctx, "search failed",
			"status", status.String(),
			"batches_completed", stats.BatchesCompleted,
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "search finished",
		"status", status.String(),
		"batches_completed", stats.BatchesCompleted,
		"seeds_searched", stats.SeedsSearched,
		"seeds_matched", stats.SeedsMatched,
		"elapsed", stats.Elapsed.Round(time.Millisecond),
	)
}

// LogStageFlush logs a stage buffer run before it filled up.
func (l *Logger) LogStageFlush(ctx context.Context, stage, size int) {
	l.DebugContext(ctx, "stage buffer timed out",
		"stage", stage,
		"size", size,
	)
}

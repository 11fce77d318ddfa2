// Package logging sets up the structured logger of the command-line driver.
package logging

import (
	"context"
	"io"
	"log/slog"
	"time"

	slogseq "github.com/sokkalf/slog-seq"
)

// Options configures the logger.
type Options struct {
	Level  slog.Level
	SeqURL string // Seq ingestion endpoint; empty disables the Seq sink
}

// fanout forwards log records to multiple handlers.
type fanout struct {
	handlers []slog.Handler
}

func (f *fanout) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range f.handlers {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (f *fanout) Handle(ctx context.Context, r slog.Record) error {
	for _, h := range f.handlers {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r.Clone()); err != nil {
			return err
		}
	}
	return nil
}

func (f *fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	handlers := make([]slog.Handler, len(f.handlers))
	for i, h := range f.handlers {
		handlers[i] = h.WithAttrs(attrs)
	}
	return &fanout{handlers: handlers}
}

func (f *fanout) WithGroup(name string) slog.Handler {
	handlers := make([]slog.Handler, len(f.handlers))
	for i, h := range f.handlers {
		handlers[i] = h.WithGroup(name)
	}
	return &fanout{handlers: handlers}
}

// New returns a logger writing text records to w and, when opts.SeqURL is
// set, to Seq. The returned function flushes and closes the Seq sink.
func New(w io.Writer, opts Options) (*slog.Logger, func()) {
	handlerOpts := &slog.HandlerOptions{Level: opts.Level}
	console := slog.NewTextHandler(w, handlerOpts)

	if opts.SeqURL == "" {
		return slog.New(console), func() {}
	}

	_, seq := slogseq.NewLogger(
		opts.SeqURL,
		slogseq.WithBatchSize(50),
		slogseq.WithFlushInterval(500*time.Millisecond),
		slogseq.WithHandlerOptions(handlerOpts),
	)
	if seq == nil {
		return slog.New(console), func() {}
	}

	logger := slog.New(&fanout{handlers: []slog.Handler{console, seq}})
	return logger, func() { seq.Close() }
}

// ParseLevel parses a level name such as "debug" or "warn".
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	err := level.UnmarshalText([]byte(s))
	return level, err
}

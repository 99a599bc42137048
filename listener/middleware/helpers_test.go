package middleware

import (
	"context"
	"log/slog"
	"sync"
	"testing"
)

type logRecord struct {
	Level   slog.Level
	Message string
	Attrs   map[string]any
}

type captureHandler struct {
	mu      sync.Mutex
	records []logRecord
}

func (h *captureHandler) Enabled(_ context.Context, _ slog.Level) bool { return true }

//nolint:varnamelen // r is conventional for slog.Record.
func (h *captureHandler) Handle(_ context.Context, r slog.Record) error {
	rec := logRecord{
		Level:   r.Level,
		Message: r.Message,
		Attrs:   make(map[string]any),
	}

	r.Attrs(func(a slog.Attr) bool {
		rec.Attrs[a.Key] = a.Value.Any()

		return true
	})

	h.mu.Lock()
	h.records = append(h.records, rec)
	h.mu.Unlock()

	return nil
}

func (h *captureHandler) WithAttrs(_ []slog.Attr) slog.Handler { return h }
func (h *captureHandler) WithGroup(_ string) slog.Handler      { return h }

func (h *captureHandler) all() []logRecord {
	h.mu.Lock()
	defer h.mu.Unlock()

	return append([]logRecord(nil), h.records...)
}

func setupTestLogger(t *testing.T) *captureHandler {
	t.Helper()

	oldDefault := slog.Default()

	h := &captureHandler{}
	slog.SetDefault(slog.New(h))

	t.Cleanup(func() { slog.SetDefault(oldDefault) })

	return h
}

package middleware

import (
	"log/slog"
	"net/http"
	"time"
)

// statusWriter captures the status code and body size.
type statusWriter struct {
	http.ResponseWriter

	status int
	bytes  int
}

func (w *statusWriter) WriteHeader(code int) {
	if w.status == 0 {
		w.status = code
	}

	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}

	n, err := w.ResponseWriter.Write(b)
	w.bytes += n

	return n, err //nolint:wrapcheck
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (w *statusWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// Logging returns a middleware writing one access log entry per request via
// the default slog logger. Level is Info below 400, Warn for 4xx and Error
// for 5xx. Responses served from a client cache (304) are logged at Debug.
func Logging() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			sw := &statusWriter{ResponseWriter: w}

			next.ServeHTTP(sw, r)

			if sw.status == 0 {
				sw.status = http.StatusOK
			}

			attrs := []any{
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", sw.status),
				slog.Int("bytes", sw.bytes),
				slog.Duration("duration", time.Since(start)),
			}

			if r.URL.RawQuery != "" {
				attrs = append(attrs, slog.String("query", r.URL.RawQuery))
			}

			if reqID := GetRequestID(r.Context()); reqID != "" {
				attrs = append(attrs, slog.String("request_id", reqID))
			}

			msg := "http request"

			switch {
			case sw.status >= http.StatusInternalServerError:
				slog.Error(msg, attrs...) //nolint:gosec // G706: msg is a hardcoded constant, not user input.
			case sw.status >= http.StatusBadRequest:
				slog.Warn(msg, attrs...) //nolint:gosec
			case sw.status == http.StatusNotModified:
				slog.Debug(msg, attrs...) //nolint:gosec
			default:
				slog.Info(msg, attrs...) //nolint:gosec
			}
		})
	}
}

package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
)

// recoveryWriter remembers whether the response has started.
type recoveryWriter struct {
	http.ResponseWriter

	written bool
}

func (w *recoveryWriter) WriteHeader(code int) {
	if code >= http.StatusOK {
		w.written = true
	}

	w.ResponseWriter.WriteHeader(code)
}

func (w *recoveryWriter) Write(b []byte) (int, error) {
	w.written = true

	return w.ResponseWriter.Write(b) //nolint:wrapcheck
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (w *recoveryWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// Recovery returns a middleware that turns a panic in a downstream handler
// into a 500 JSON response. The panic value and stack are logged via the
// default slog logger together with the request ID, if any. When the
// response has already started only the log entry is written.
// http.ErrAbortHandler is re-panicked so net/http can abort the connection.
func Recovery() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			recWriter := &recoveryWriter{ResponseWriter: w}

			defer func() { //nolint:contextcheck
				rec := recover()
				if rec == nil {
					return
				}

				if err, ok := rec.(error); ok && err == http.ErrAbortHandler { //nolint:errorlint,err113
					panic(rec)
				}

				attrs := []any{
					slog.String("panic", fmt.Sprintf("%v", rec)),
					slog.String("stack", string(debug.Stack())),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
				}

				if reqID := GetRequestID(r.Context()); reqID != "" {
					attrs = append(attrs, slog.String("request_id", reqID))
				}

				if recWriter.written {
					slog.Error("panic recovered after response was already written", attrs...) //nolint:gosec

					return
				}

				slog.Error("panic recovered", attrs...) //nolint:gosec // G706: message is a hardcoded constant.

				writeError(recWriter, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
			}()

			next.ServeHTTP(recWriter, r)
		})
	}
}

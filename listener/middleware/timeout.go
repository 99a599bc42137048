package middleware

import (
	"log/slog"
	"net/http"
	"time"
)

// DefaultTimeout bounds request processing when no positive duration is set.
const DefaultTimeout = 30 * time.Second

const timeoutBody = `{"message":"Service Unavailable"}`

// Timeout returns a middleware that answers 503 with a JSON body when the
// handler does not finish within duration. The handler's context is canceled
// at that point, which stops any upstream fetches it started.
func Timeout(duration time.Duration) Middleware {
	if duration <= 0 {
		slog.Warn("middleware: timeout must be positive, using default",
			"provided", duration, "default", DefaultTimeout)

		duration = DefaultTimeout
	}

	return func(next http.Handler) http.Handler {
		return http.TimeoutHandler(next, duration, timeoutBody)
	}
}

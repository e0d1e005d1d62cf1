package log

import (
	"net/http"
	"strings"

	"github.com/felixge/httpsnoop"
	"go.uber.org/zap"
)

// HTTPLogger returns middleware that writes one structured access-log line per request.
// Requests that end in a 4xx or 5xx status are logged at warn and error level.
func HTTPLogger(logger *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			m := httpsnoop.CaptureMetrics(next, w, r)

			fields := []interface{}{
				"method", r.Method,
				"path", r.URL.Path,
				"status", m.Code,
				"duration_ms", m.Duration.Milliseconds(),
				"size", m.Written,
				"remote_addr", remoteAddr(r),
				"user_agent", r.UserAgent(),
			}

			switch {
			case m.Code >= http.StatusInternalServerError:
				logger.Errorw("http request", fields...)
			case m.Code >= http.StatusBadRequest:
				logger.Warnw("http request", fields...)
			default:
				logger.Infow("http request", fields...)
			}
		})
	}
}

// remoteAddr prefers the first X-Forwarded-For hop when the server sits behind a proxy
func remoteAddr(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return strings.TrimSpace(strings.Split(fwd, ",")[0])
	}
	return r.RemoteAddr
}

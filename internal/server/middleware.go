package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type RequestRecorder interface {
	RecordHTTPRequest(method, route string, status int, duration time.Duration)
}

// statusWriter captures the final status code and number of bytes written.
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
	return n, err
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (w *statusWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return "unmatched"
}

// requestLogger logs and measures every request under its route pattern.
func requestLogger(logger *zap.Logger, recorder RequestRecorder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w}

			next.ServeHTTP(sw, r)

			if sw.status == 0 {
				sw.status = http.StatusOK
			}
			duration := time.Since(start)
			route := routePattern(r)

			recorder.RecordHTTPRequest(r.Method, route, sw.status, duration)

			fields := []zap.Field{
				zap.String("method", r.Method),
				zap.String("path", r.URL.RequestURI()),
				zap.String("route", route),
				zap.Int("status", sw.status),
				zap.Int("bytes", sw.bytes),
				zap.Duration("duration", duration),
				zap.String("remoteAddr", r.RemoteAddr),
			}
			switch {
			case sw.status >= http.StatusInternalServerError:
				logger.Error("request completed", fields...)
			case route == "/health" || route == "/metrics":
				logger.Debug("request completed", fields...)
			default:
				logger.Info("request completed", fields...)
			}
		})
	}
}

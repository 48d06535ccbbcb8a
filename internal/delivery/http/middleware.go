package http

import (
	"crypto/subtle"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"edge-shortener/internal/ratelimit"
	"edge-shortener/pkg/problemdetails"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// RateLimitMiddleware enforces limiter per client IP and sets the
// X-RateLimit-* headers. A limiter error lets the request through.
func RateLimitMiddleware(limiter ratelimit.Limiter, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// RealIP middleware runs before this
			key := clientIP(r)

			d, err := limiter.Check(r.Context(), key)
			if err != nil {
				logger.Warn("rate limiter unavailable, allowing request",
					zap.String("client_ip", key),
					zap.Error(err),
				)
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(d.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(d.ResetAt.Unix(), 10))

			if !d.Allowed {
				retryAfter := max(1, int(time.Until(d.ResetAt).Seconds()))
				w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
				problemdetails.Write(w, problemdetails.New(
					http.StatusTooManyRequests,
					problemdetails.TypeRateLimitExceeded,
					"Rate Limit Exceeded",
					"Too many requests. Please try again later.",
				))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// BearerAuth requires "Authorization: Bearer <token>". An empty token
// rejects every request.
func BearerAuth(token string) func(http.Handler) http.Handler {
	want := []byte(token)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || len(want) == 0 || subtle.ConstantTimeCompare([]byte(got), want) != 1 {
				w.Header().Set("WWW-Authenticate", `Bearer realm="analytics"`)
				problemdetails.Write(w, problemdetails.New(
					http.StatusUnauthorized,
					problemdetails.TypeUnauthorized,
					"Unauthorized",
					"A valid bearer token is required",
				))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// LoggerMiddleware returns a middleware that logs HTTP requests using Zap
func LoggerMiddleware(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// Wrap response writer to capture status code
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func() {
				logger.Info("http request",
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Int("status", ww.Status()),
					zap.Int("bytes", ww.BytesWritten()),
					zap.Duration("duration", time.Since(start)),
					zap.String("remote_addr", r.RemoteAddr),
					zap.String("request_id", middleware.GetReqID(r.Context())),
				)
			}()

			next.ServeHTTP(ww, r)
		})
	}
}

func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

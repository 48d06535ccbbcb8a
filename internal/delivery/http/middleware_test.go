package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	httpdelivery "edge-shortener/internal/delivery/http"
	"edge-shortener/internal/ratelimit"
	"edge-shortener/pkg/problemdetails"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
}

func serve(h http.Handler, remoteAddr string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.RemoteAddr = remoteAddr
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

// brokenLimiter always fails, the way an unreachable Redis does
type brokenLimiter struct{}

func (brokenLimiter) Check(context.Context, string) (ratelimit.Decision, error) {
	return ratelimit.Decision{Allowed: true, Limit: 7, Remaining: 7, ResetAt: time.Now().Add(time.Minute)},
		errors.New("dial tcp: connection refused")
}

// TestRateLimitMiddleware_WithinLimit_Returns200 verifies requests within limit succeed
func TestRateLimitMiddleware_WithinLimit_Returns200(t *testing.T) {
	handler := httpdelivery.RateLimitMiddleware(ratelimit.NewLocal(100), zap.NewNop())(okHandler())

	for i := 0; i < 5; i++ {
		rr := serve(handler, "192.168.1.1:12345", nil)

		assert.Equal(t, http.StatusOK, rr.Code, "Request %d should succeed", i+1)
		assert.Equal(t, "100", rr.Header().Get("X-RateLimit-Limit"))
		assert.NotEmpty(t, rr.Header().Get("X-RateLimit-Remaining"))
		assert.NotEmpty(t, rr.Header().Get("X-RateLimit-Reset"))
	}
}

// TestRateLimitMiddleware_ExceedsLimit_Returns429 verifies rate limit enforcement
func TestRateLimitMiddleware_ExceedsLimit_Returns429(t *testing.T) {
	handler := httpdelivery.RateLimitMiddleware(ratelimit.NewLocal(2), zap.NewNop())(okHandler())

	serve(handler, "192.168.1.1:12345", nil)
	serve(handler, "192.168.1.1:12345", nil)
	rr := serve(handler, "192.168.1.1:12345", nil)

	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.Equal(t, problemdetails.ContentType, rr.Header().Get("Content-Type"))
	assert.Equal(t, "2", rr.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "0", rr.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, rr.Header().Get("X-RateLimit-Reset"))
	assert.NotEmpty(t, rr.Header().Get("Retry-After"))

	var problem problemdetails.ProblemDetail
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&problem))
	assert.Equal(t, http.StatusTooManyRequests, problem.Status)
	assert.Contains(t, problem.Type, problemdetails.TypeRateLimitExceeded)
}

// TestRateLimitMiddleware_DifferentIPs_IndependentLimits verifies per-IP isolation, ignoring ports
func TestRateLimitMiddleware_DifferentIPs_IndependentLimits(t *testing.T) {
	handler := httpdelivery.RateLimitMiddleware(ratelimit.NewLocal(1), zap.NewNop())(okHandler())

	assert.Equal(t, http.StatusOK, serve(handler, "10.0.0.1:1234", nil).Code)
	assert.Equal(t, http.StatusOK, serve(handler, "10.0.0.2:5678", nil).Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(handler, "10.0.0.1:9999", nil).Code)
}

// TestRateLimitMiddleware_LimiterError_FailsOpen verifies an unavailable limiter never blocks traffic
func TestRateLimitMiddleware_LimiterError_FailsOpen(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	handler := httpdelivery.RateLimitMiddleware(brokenLimiter{}, zap.New(core))(okHandler())

	rr := serve(handler, "10.0.0.1:1234", nil)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "7", rr.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, 1, logs.FilterMessage("rate limiter unavailable, allowing request").Len())
}

// TestBearerAuth verifies the analytics token gate
func TestBearerAuth(t *testing.T) {
	tests := []struct {
		name   string
		token  string
		header string
		want   int
	}{
		{"valid token", "s3cret-token", "Bearer s3cret-token", http.StatusOK},
		{"wrong token", "s3cret-token", "Bearer guess", http.StatusUnauthorized},
		{"missing header", "s3cret-token", "", http.StatusUnauthorized},
		{"basic scheme", "s3cret-token", "Basic s3cret-token", http.StatusUnauthorized},
		{"prefix of token", "s3cret-token", "Bearer s3cret", http.StatusUnauthorized},
		{"unconfigured token rejects empty bearer", "", "Bearer ", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := httpdelivery.BearerAuth(tt.token)(okHandler())
			headers := map[string]string{}
			if tt.header != "" {
				headers["Authorization"] = tt.header
			}

			rr := serve(handler, "10.0.0.1:1234", headers)

			assert.Equal(t, tt.want, rr.Code)
			if tt.want == http.StatusUnauthorized {
				assert.Equal(t, problemdetails.ContentType, rr.Header().Get("Content-Type"))
				assert.NotEmpty(t, rr.Header().Get("WWW-Authenticate"))
			}
		})
	}
}

// TestLoggerMiddleware_LogsRequest verifies the access log entry
func TestLoggerMiddleware_LogsRequest(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	handler := httpdelivery.LoggerMiddleware(zap.New(core))(okHandler())

	rr := serve(handler, "10.0.0.1:1234", nil)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "OK", rr.Body.String())
	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "GET", fields["method"])
	assert.Equal(t, "/test", fields["path"])
	assert.EqualValues(t, http.StatusOK, fields["status"])
}

// TestLoggerMiddleware_PreservesStatusCode verifies status code preservation
func TestLoggerMiddleware_PreservesStatusCode(t *testing.T) {
	handler := httpdelivery.LoggerMiddleware(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("Not Found"))
	}))

	rr := serve(handler, "10.0.0.1:1234", nil)

	assert.Equal(t, http.StatusNotFound, rr.Code, "Status code should be preserved")
	assert.Equal(t, "Not Found", rr.Body.String())
}

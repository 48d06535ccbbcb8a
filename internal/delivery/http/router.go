package http

import (
	"net/http"

	analyticshttp "edge-shortener/internal/analytics/delivery/http"
	qrhttp "edge-shortener/internal/qrservice/delivery/http"
	"edge-shortener/internal/ratelimit"
	linkhttp "edge-shortener/internal/urlservice/delivery/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Handlers are the per-context HTTP handlers mounted by NewRouter.
type Handlers struct {
	Links     *linkhttp.Handler
	QR        *qrhttp.Handler
	Analytics *analyticshttp.Handler
}

// NewRouter creates a new Chi router with all middleware and routes
func NewRouter(h Handlers, limiter ratelimit.Limiter, analyticsToken string, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middleware chain
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(LoggerMiddleware(logger))
	r.Use(middleware.Recoverer)

	// Probes bypass the rate limiter
	r.Get("/health", h.Links.Health)
	r.Get("/readyz", h.Links.Readyz)

	r.Group(func(r chi.Router) {
		r.Use(RateLimitMiddleware(limiter, logger))

		r.With(BearerAuth(analyticsToken)).Get("/api/analytics", h.Analytics.ListClicks)

		r.Get("/{slug}", h.Links.Redirect)
		r.Get("/{slug}/qr", h.QR.QRCode)
	})

	return r
}

package http

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"time"

	"edge-shortener/internal/urlservice/domain"
	"edge-shortener/internal/urlservice/usecase"
	"edge-shortener/pkg/problemdetails"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ReadinessCheck is one dependency probed by /readyz.
type ReadinessCheck struct {
	Name string
	Ping func(ctx context.Context) error
}

// Handler handles redirects and health probes
type Handler struct {
	service *usecase.RedirectService
	tracker *usecase.ClickTracker
	checks  []ReadinessCheck
	logger  *zap.Logger
}

// NewHandler creates a new Handler
func NewHandler(service *usecase.RedirectService, tracker *usecase.ClickTracker, checks []ReadinessCheck, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		tracker: tracker,
		checks:  checks,
		logger:  logger,
	}
}

// Redirect handles GET /{slug}
func (h *Handler) Redirect(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	link, err := h.service.Resolve(r.Context(), slug)
	if err != nil {
		if errors.Is(err, domain.ErrSlugNotFound) || errors.Is(err, domain.ErrDestinationUnsafe) {
			problemdetails.Write(w, problemdetails.NotFound())
			return
		}

		h.logger.Error("failed to resolve slug",
			zap.String("slug", slug),
			zap.Error(err),
		)
		problemdetails.Write(w, problemdetails.New(
			http.StatusInternalServerError,
			problemdetails.TypeInternalError,
			"Internal Server Error",
			"Internal server error",
		))
		return
	}

	// Capture request facts before responding; r is not used after the redirect
	clientIP := r.RemoteAddr
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		clientIP = host
	}
	userAgent := r.UserAgent()
	referrer := r.Referer()

	http.Redirect(w, r, link.Destination(), http.StatusFound)

	h.tracker.Track(slug, clientIP, userAgent, referrer)
}

// HealthResponse represents health check response
type HealthResponse struct {
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

// Health handles GET /health (liveness probe)
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// Readyz handles GET /readyz (readiness probe)
func (h *Handler) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	for _, check := range h.checks {
		if err := check.Ping(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, HealthResponse{
				Status: "unavailable",
				Reason: check.Name + " unavailable: " + err.Error(),
			})
			return
		}
	}

	writeJSON(w, http.StatusOK, HealthResponse{Status: "ready"})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

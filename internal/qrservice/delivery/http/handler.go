package http

import (
	"errors"
	"net/http"
	"strconv"

	"edge-shortener/internal/qrservice/domain"
	"edge-shortener/internal/qrservice/usecase"
	linkdomain "edge-shortener/internal/urlservice/domain"
	"edge-shortener/pkg/problemdetails"

	"github.com/go-chi/chi/v5"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"go.uber.org/zap"
)

const cacheControl = "public, max-age=3600"

// Handler serves QR code images
type Handler struct {
	service *usecase.QRService
	logger  *zap.Logger
}

// NewHandler creates a new Handler
func NewHandler(service *usecase.QRService, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// QRCode handles GET /{slug}/qr
func (h *Handler) QRCode(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	query := r.URL.Query()

	res, err := h.service.Render(r.Context(), slug, domain.RenderParams{
		Size:     query.Get("size"),
		Format:   query.Get("format"),
		Logo:     query.Get("logo"),
		LogoSize: query.Get("logo_size"),
	})
	if err != nil {
		if errors.Is(err, linkdomain.ErrInvalidSlug) {
			problemdetails.Write(w, problemdetails.NotFound())
			return
		}

		correlationID := newCorrelationID()
		h.logger.Error("qr render failed",
			zap.String("slug", slug),
			zap.String("correlation_id", correlationID),
			zap.Error(err),
		)
		problem := problemdetails.New(
			http.StatusInternalServerError,
			problemdetails.TypeRenderFailed,
			"Render Failed",
			"QR code could not be rendered",
		).WithInstance(correlationID)
		problemdetails.Write(w, problem)
		return
	}

	w.Header().Set("Content-Type", res.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(res.Body)))
	w.Header().Set("Cache-Control", cacheControl)
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(res.Body); err != nil {
		h.logger.Debug("failed to write qr body", zap.String("slug", slug), zap.Error(err))
	}
}

func newCorrelationID() string {
	id, err := gonanoid.New()
	if err != nil {
		return "unavailable"
	}
	return id
}

package http

import (
	"errors"
	"net/http"
	"sort"
	"strconv"
	"time"

	"edge-shortener/internal/analytics/domain"
	"edge-shortener/internal/analytics/usecase"
	"edge-shortener/pkg/problemdetails"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

type Handler struct {
	analyticsService *usecase.AnalyticsService
	logger           *zap.Logger
	now              func() time.Time
}

func NewHandler(analyticsService *usecase.AnalyticsService, logger *zap.Logger) *Handler {
	return &Handler{
		analyticsService: analyticsService,
		logger:           logger,
		now:              time.Now,
	}
}

// ListClicks handles GET /api/analytics?since=&until=&limit=
//
// since and until are Unix seconds and default to the epoch and now.
func (h *Handler) ListClicks(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var fieldErrors []problemdetails.FieldError
	parse := func(name string, fallback int64) int64 {
		raw := query.Get(name)
		if raw == "" {
			return fallback
		}
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			fieldErrors = append(fieldErrors, problemdetails.FieldError{Field: name, Message: "must be an integer"})
		}
		return v
	}
	since := parse("since", 0)
	until := parse("until", h.now().Unix())
	limit := parse("limit", 0)
	if len(fieldErrors) > 0 {
		problemdetails.Write(w, problemdetails.NewValidation(fieldErrors))
		return
	}

	q, err := domain.NewClickQuery(since, until, int(limit))
	if err != nil {
		writeQueryError(w, err)
		return
	}

	clicks, err := h.analyticsService.ListClicks(r.Context(), q)
	if err != nil {
		h.logger.Error("failed to list clicks",
			zap.Int64("since", since),
			zap.Int64("until", until),
			zap.Error(err),
		)
		problemdetails.Write(w, problemdetails.New(
			http.StatusInternalServerError,
			problemdetails.TypeInternalError,
			"Internal Server Error",
			"Failed to retrieve analytics",
		))
		return
	}

	writeJSON(w, http.StatusOK, lo.Map(clicks, func(c domain.ClickWithOwner, _ int) ClickResponse {
		return toClickResponse(c)
	}))
}

func writeQueryError(w http.ResponseWriter, err error) {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		fields := make([]problemdetails.FieldError, 0, len(verrs))
		for field, ferr := range verrs {
			fields = append(fields, problemdetails.FieldError{Field: lo.SnakeCase(field), Message: ferr.Error()})
		}
		sort.Slice(fields, func(i, j int) bool { return fields[i].Field < fields[j].Field })
		problemdetails.Write(w, problemdetails.NewValidation(fields))
		return
	}

	problemdetails.Write(w, problemdetails.New(
		http.StatusBadRequest,
		problemdetails.TypeInvalidRequest,
		"Invalid Query Parameters",
		err.Error(),
	))
}

package problemdetails

import (
	"encoding/json"
	"fmt"
	"net/http"
)

const (
	TypeInvalidRequest    = "invalid-request"
	TypeNotFound          = "not-found"
	TypeUnauthorized      = "unauthorized"
	TypeRateLimitExceeded = "rate-limit-exceeded"
	TypeInternalError     = "internal-error"
	TypeRenderFailed      = "render-failed"
	TypeValidationError   = "validation-error"
)

// ContentType is the media type for problem responses.
const ContentType = "application/problem+json"

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ProblemDetail struct {
	Type     string       `json:"type"`
	Title    string       `json:"title"`
	Status   int          `json:"status"`
	Detail   string       `json:"detail"`
	Instance string       `json:"instance,omitempty"`
	Errors   []FieldError `json:"errors,omitempty"`
}

func New(status int, problemType, title, detail string) *ProblemDetail {
	return &ProblemDetail{
		Type:   fmt.Sprintf("https://api.example.com/problems/%s", problemType),
		Title:  title,
		Status: status,
		Detail: detail,
	}
}

func NewValidation(errors []FieldError) *ProblemDetail {
	return &ProblemDetail{
		Type:   fmt.Sprintf("https://api.example.com/problems/%s", TypeValidationError),
		Title:  "Validation Failed",
		Status: http.StatusBadRequest,
		Detail: "Request validation failed",
		Errors: errors,
	}
}

// WithInstance sets the correlation identifier of a single occurrence.
func (p *ProblemDetail) WithInstance(id string) *ProblemDetail {
	p.Instance = "urn:correlation:" + id
	return p
}

// Write encodes the problem as an RFC 7807 response.
func Write(w http.ResponseWriter, p *ProblemDetail) {
	w.Header().Set("Content-Type", ContentType)
	w.WriteHeader(p.Status)
	json.NewEncoder(w).Encode(p)
}

// NotFound is the single not-found problem for link lookups. Unknown,
// reserved and unsafe slugs all answer with exactly this body.
func NotFound() *ProblemDetail {
	return New(http.StatusNotFound, TypeNotFound, "Not Found", "Short link not found")
}

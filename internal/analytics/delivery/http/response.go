package http

import (
	"encoding/json"
	"net/http"

	"edge-shortener/internal/analytics/domain"
)

// ClickResponse is one click in the analytics export
type ClickResponse struct {
	ID            int64  `json:"id"`
	Slug          string `json:"slug"`
	ClickedAt     int64  `json:"clicked_at"`
	Referrer      string `json:"referrer,omitempty"`
	Country       string `json:"country,omitempty"`
	City          string `json:"city,omitempty"`
	DeviceType    string `json:"device_type"`
	Browser       string `json:"browser"`
	OS            string `json:"os"`
	VisitorHash   string `json:"visitor_hash"`
	UserAgent     string `json:"user_agent,omitempty"`
	TrafficSource string `json:"traffic_source"`
	CreatedBy     string `json:"created_by,omitempty"`
}

func toClickResponse(c domain.ClickWithOwner) ClickResponse {
	return ClickResponse{
		ID:            c.ID,
		Slug:          c.Slug,
		ClickedAt:     c.ClickedAt.Unix(),
		Referrer:      c.Referrer,
		Country:       c.Country,
		City:          c.City,
		DeviceType:    string(c.DeviceType),
		Browser:       c.Browser,
		OS:            c.OS,
		VisitorHash:   c.VisitorHash,
		UserAgent:     c.UserAgentRaw,
		TrafficSource: c.TrafficSource,
		CreatedBy:     c.CreatedBy,
	}
}

// writeJSON writes a JSON response with the given status code
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

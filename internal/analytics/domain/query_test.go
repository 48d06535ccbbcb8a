package domain_test

import (
	"testing"
	"time"

	"edge-shortener/internal/analytics/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewClickQuery_Limits verifies the default and the cap
func TestNewClickQuery_Limits(t *testing.T) {
	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{"zero uses default", 0, domain.DefaultQueryLimit},
		{"within range kept", 50, 50},
		{"above max capped", 50000, domain.MaxQueryLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := domain.NewClickQuery(0, 100, tt.limit)
			require.NoError(t, err)
			assert.Equal(t, tt.want, q.Limit)
		})
	}
}

// TestNewClickQuery_SinceAfterUntil_ReturnsError verifies inverted ranges are rejected
func TestNewClickQuery_SinceAfterUntil_ReturnsError(t *testing.T) {
	_, err := domain.NewClickQuery(200, 100, 10)

	assert.ErrorIs(t, err, domain.ErrInvalidRange)
}

// TestNewClickQuery_NegativeLimit_ReturnsError verifies limits below one are rejected
func TestNewClickQuery_NegativeLimit_ReturnsError(t *testing.T) {
	_, err := domain.NewClickQuery(0, 100, -5)

	assert.Error(t, err)
}

// TestNewClickQuery_BoundsInUTC verifies Unix seconds convert exactly
func TestNewClickQuery_BoundsInUTC(t *testing.T) {
	q, err := domain.NewClickQuery(1771113600, 1771199999, 10)

	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC), q.Since)
	assert.Equal(t, time.UTC, q.Until.Location())
}

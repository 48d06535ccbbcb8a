package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"edge-shortener/internal/shared/events"
	"edge-shortener/internal/testutil/mocks"
	"edge-shortener/internal/urlservice/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

// TestTrack_PublishesLinkClicked verifies the event carries the request facts
func TestTrack_PublishesLinkClicked(t *testing.T) {
	publisher := mocks.NewMockEventPublisher(t)
	tracker := usecase.NewClickTracker(publisher, zap.NewNop())

	publisher.EXPECT().Publish(mock.Anything, mock.MatchedBy(func(e events.Event) bool {
		clicked, ok := e.(*events.LinkClicked)
		return ok &&
			clicked.Slug == "abc123" &&
			clicked.ClientIP == "203.0.113.5" &&
			clicked.UserAgent == "Mozilla/5.0" &&
			clicked.Referrer == "https://google.com/"
	})).Return(nil)

	tracker.Track("abc123", "203.0.113.5", "Mozilla/5.0", "https://google.com/")

	assert.NoError(t, tracker.Drain(context.Background()))
}

// TestTrack_PublishFailure_Swallowed verifies failures never escape
func TestTrack_PublishFailure_Swallowed(t *testing.T) {
	publisher := mocks.NewMockEventPublisher(t)
	tracker := usecase.NewClickTracker(publisher, zap.NewNop())

	publisher.EXPECT().Publish(mock.Anything, mock.Anything).Return(errors.New("bus closed"))

	tracker.Track("abc123", "203.0.113.5", "", "")

	assert.NoError(t, tracker.Drain(context.Background()))
}

// TestDrain_WaitsForInFlightPublishes verifies shutdown blocks on pending clicks
func TestDrain_WaitsForInFlightPublishes(t *testing.T) {
	publisher := mocks.NewMockEventPublisher(t)
	tracker := usecase.NewClickTracker(publisher, zap.NewNop())
	release := make(chan struct{})

	publisher.EXPECT().Publish(mock.Anything, mock.Anything).
		Run(func(ctx context.Context, e events.Event) { <-release }).
		Return(nil)

	tracker.Track("abc123", "203.0.113.5", "", "")

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, tracker.Drain(ctx), context.DeadlineExceeded)

	close(release)
	assert.NoError(t, tracker.Drain(context.Background()))
}

// TestTrack_NilPublisher_NoOp verifies tracking without a bus is harmless
func TestTrack_NilPublisher_NoOp(t *testing.T) {
	tracker := usecase.NewClickTracker(nil, zap.NewNop())

	tracker.Track("abc123", "203.0.113.5", "", "")

	assert.NoError(t, tracker.Drain(context.Background()))
}

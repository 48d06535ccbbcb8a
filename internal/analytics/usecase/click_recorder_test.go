package usecase_test

import (
	"context"
	"errors"
	"testing"

	"edge-shortener/internal/analytics/domain"
	"edge-shortener/internal/analytics/usecase"
	"edge-shortener/internal/infra/eventbus"
	"edge-shortener/internal/shared/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func clickEnvelope(t *testing.T, evt *events.LinkClicked) *eventbus.EventEnvelope {
	t.Helper()
	msg, err := eventbus.EventToMessage(evt)
	require.NoError(t, err)
	envelope, err := eventbus.MessageToEnvelope(msg)
	require.NoError(t, err)
	return envelope
}

func expectEnrichment(m *serviceMocks) {
	m.geo.EXPECT().Resolve(mock.Anything).Return("", "")
	m.device.EXPECT().DetectDevice(mock.Anything).Return(domain.UserAgentInfo{DeviceType: domain.DeviceMobile})
	m.referer.EXPECT().ClassifySource(mock.Anything).Return(domain.SourceDirect)
	m.hasher.EXPECT().Hash(mock.Anything, mock.Anything).Return("0123456789abcdef")
}

// TestClickRecorder_Handle_StoresDecodedClick verifies the event survives the bus encoding
func TestClickRecorder_Handle_StoresDecodedClick(t *testing.T) {
	service, m := setupService(t)
	recorder := usecase.NewClickRecorder(service, zap.NewNop())
	expectEnrichment(m)

	m.store.EXPECT().InsertClick(mock.Anything, mock.MatchedBy(func(c domain.ClickEvent) bool {
		return c.Slug == "abc123" && c.ClickedAt.Equal(clickedAt) && c.DeviceType == domain.DeviceMobile
	})).Return(nil)

	err := recorder.Handle(context.Background(), clickEnvelope(t, events.NewLinkClicked("abc123", clickedAt, "203.0.113.5", "", "")))

	require.NoError(t, err)
	assert.Equal(t, "analytics_click_recorder", recorder.HandlerName())
	assert.Equal(t, events.LinkClickedEventName, recorder.EventName())
}

// TestClickRecorder_Handle_StoreError_ReturnsError verifies failures are handed to the retry middleware
func TestClickRecorder_Handle_StoreError_ReturnsError(t *testing.T) {
	service, m := setupService(t)
	recorder := usecase.NewClickRecorder(service, zap.NewNop())
	expectEnrichment(m)

	m.store.EXPECT().InsertClick(mock.Anything, mock.Anything).Return(errors.New("disk full"))

	err := recorder.Handle(context.Background(), clickEnvelope(t, events.NewLinkClicked("abc123", clickedAt, "203.0.113.5", "", "")))

	assert.Error(t, err)
}

// TestClickRecorder_Handle_BadPayload_Dropped verifies undecodable events are acknowledged
func TestClickRecorder_Handle_BadPayload_Dropped(t *testing.T) {
	service, _ := setupService(t)
	recorder := usecase.NewClickRecorder(service, zap.NewNop())

	err := recorder.Handle(context.Background(), &eventbus.EventEnvelope{EventID: "x", Payload: []byte(`[]`)})

	assert.NoError(t, err)
}

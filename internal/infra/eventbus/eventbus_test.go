package eventbus

import (
	"context"
	"testing"
	"time"

	"edge-shortener/internal/shared/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/stretchr/testify/suite"
)

type EventBusTestSuite struct {
	suite.Suite
	sut    *EventBus
	logger watermill.LoggerAdapter
}

func TestEventBusTestSuite(t *testing.T) {
	suite.Run(t, new(EventBusTestSuite))
}

func (s *EventBusTestSuite) SetupTest() {
	s.logger = watermill.NopLogger{}
	s.sut = NewEventBus(s.logger)
}

func (s *EventBusTestSuite) TearDownTest() {
	if s.sut != nil {
		s.sut.Close()
	}
}

func newClick(slug string) *events.LinkClicked {
	return events.NewLinkClicked(slug, time.Unix(1771156800, 0), "203.0.113.5", "Mozilla/5.0", "")
}

func (s *EventBusTestSuite) TestPublish() {
	// Act
	err := s.sut.Publish(context.Background(), newClick("abc123"))

	// Assert
	s.NoError(err)
}

func (s *EventBusTestSuite) TestEventToMessage() {
	// Arrange
	evt := newClick("abc123")

	// Act
	msg, err := EventToMessage(evt)

	// Assert
	s.NoError(err)
	s.NotNil(msg)
	s.Equal(evt.EventID(), msg.UUID)
	s.Equal("link.clicked", msg.Metadata.Get("event_name"))
	s.Equal("abc123", msg.Metadata.Get("aggregate_id"))
}

func (s *EventBusTestSuite) TestMessageToEnvelope_DecodesPayload() {
	// Arrange
	evt := newClick("abc123")
	msg, err := EventToMessage(evt)
	s.Require().NoError(err)

	// Act
	envelope, err := MessageToEnvelope(msg)

	// Assert
	s.Require().NoError(err)
	s.Equal(evt.EventID(), envelope.EventID)
	s.Equal("link.clicked", envelope.EventName)
	s.Equal("abc123", envelope.AggregateID)

	var decoded events.LinkClicked
	s.Require().NoError(envelope.Decode(&decoded))
	s.Equal("203.0.113.5", decoded.ClientIP)
	s.Equal("Mozilla/5.0", decoded.UserAgent)
}

func (s *EventBusTestSuite) TestPublishAndSubscribe() {
	// Arrange
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	messages, err := s.sut.Subscriber().Subscribe(ctx, LinkEventsTopic)
	s.Require().NoError(err)

	// Act
	err = s.sut.Publish(ctx, newClick("test123"))
	s.Require().NoError(err)

	// Assert
	select {
	case msg := <-messages:
		envelope, err := MessageToEnvelope(msg)
		s.NoError(err)
		s.Equal("link.clicked", envelope.EventName)
		s.Equal("test123", envelope.AggregateID)
		msg.Ack()
	case <-ctx.Done():
		s.Fail("timeout waiting for message")
	}
}

func (s *EventBusTestSuite) TestPublish_AfterClose_ReturnsErrClosed() {
	// Arrange
	s.Require().NoError(s.sut.Close())

	// Act
	err := s.sut.Publish(context.Background(), newClick("abc123"))

	// Assert
	s.ErrorIs(err, ErrClosed)
	s.NoError(s.sut.Close(), "second close is a no-op")
}

func (s *EventBusTestSuite) TestPublish_CancelledContext_NotPublished() {
	// Arrange
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Act
	err := s.sut.Publish(ctx, newClick("abc123"))

	// Assert
	s.ErrorIs(err, context.Canceled)
}

func (s *EventBusTestSuite) TestDecode_MalformedPayload_ReturnsError() {
	// Arrange
	envelope := &EventEnvelope{EventName: "link.clicked", Payload: []byte(`{"slug":`)}

	// Act
	var decoded events.LinkClicked
	err := envelope.Decode(&decoded)

	// Assert
	s.ErrorContains(err, "link.clicked")
}

package usecase_test

import (
	"context"
	"errors"
	"testing"

	"edge-shortener/internal/testutil/mocks"
	"edge-shortener/internal/urlsafety"
	"edge-shortener/internal/urlservice/domain"
	"edge-shortener/internal/urlservice/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func link(slug, destination string) *domain.Link {
	return &domain.Link{
		Slug:   slug,
		Record: domain.StructuredRecord{URL: destination, CreatedBy: "alice"},
	}
}

// TestResolve_SafeDestination_ReturnsLink verifies a known slug resolves
func TestResolve_SafeDestination_ReturnsLink(t *testing.T) {
	store := mocks.NewMockLinkStore(t)
	service := usecase.NewRedirectService(store, zap.NewNop())

	store.EXPECT().Get(mock.Anything, "abc123").Return(link("abc123", "https://example.com/page"), nil)

	got, err := service.Resolve(context.Background(), "abc123")

	require.NoError(t, err)
	assert.Equal(t, "https://example.com/page", got.Destination())
}

// TestResolve_LegacyRecord_ReturnsLink verifies bare records redirect like structured ones
func TestResolve_LegacyRecord_ReturnsLink(t *testing.T) {
	store := mocks.NewMockLinkStore(t)
	service := usecase.NewRedirectService(store, zap.NewNop())

	store.EXPECT().Get(mock.Anything, "old").Return(&domain.Link{
		Slug:   "old",
		Record: domain.LegacyBareRecord{URL: "https://example.com/legacy"},
	}, nil)

	got, err := service.Resolve(context.Background(), "old")

	require.NoError(t, err)
	assert.Equal(t, "https://example.com/legacy", got.Destination())
}

// TestResolve_UnknownSlug_ReturnsNotFound verifies store misses surface as not found
func TestResolve_UnknownSlug_ReturnsNotFound(t *testing.T) {
	store := mocks.NewMockLinkStore(t)
	service := usecase.NewRedirectService(store, zap.NewNop())

	store.EXPECT().Get(mock.Anything, "missing").Return(nil, domain.ErrSlugNotFound)

	_, err := service.Resolve(context.Background(), "missing")

	assert.ErrorIs(t, err, domain.ErrSlugNotFound)
}

// TestResolve_ReservedSlug_NeverQueriesStore verifies reserved words short-circuit
func TestResolve_ReservedSlug_NeverQueriesStore(t *testing.T) {
	store := mocks.NewMockLinkStore(t)
	service := usecase.NewRedirectService(store, zap.NewNop())

	for _, slug := range []string{"api", "health", "robots.txt", "a/b"} {
		_, err := service.Resolve(context.Background(), slug)
		assert.ErrorIs(t, err, domain.ErrSlugNotFound, slug)
	}
	store.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

// TestResolve_UnsafeDestination_LogsAnomaly verifies unsafe stored URLs are refused and logged
func TestResolve_UnsafeDestination_LogsAnomaly(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	store := mocks.NewMockLinkStore(t)
	service := usecase.NewRedirectService(store, zap.New(core))

	store.EXPECT().Get(mock.Anything, "evil").Return(link("evil", "https://169.254.169.254/latest/meta-data"), nil)

	_, err := service.Resolve(context.Background(), "evil")

	assert.ErrorIs(t, err, domain.ErrDestinationUnsafe)
	assert.ErrorIs(t, err, urlsafety.ErrBlockedHostname)
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "evil", logs.All()[0].ContextMap()["slug"])
}

// TestResolve_CorruptRecord_ReturnsNotFound verifies unreadable records are not redirected
func TestResolve_CorruptRecord_ReturnsNotFound(t *testing.T) {
	store := mocks.NewMockLinkStore(t)
	service := usecase.NewRedirectService(store, zap.NewNop())

	store.EXPECT().Get(mock.Anything, "broken").Return(nil, domain.ErrCorruptRecord)

	_, err := service.Resolve(context.Background(), "broken")

	assert.ErrorIs(t, err, domain.ErrSlugNotFound)
}

// TestResolve_StoreFailure_ReturnsError verifies infrastructure errors are not masked
func TestResolve_StoreFailure_ReturnsError(t *testing.T) {
	store := mocks.NewMockLinkStore(t)
	service := usecase.NewRedirectService(store, zap.NewNop())
	storeErr := errors.New("connection refused")

	store.EXPECT().Get(mock.Anything, "abc123").Return(nil, storeErr)

	_, err := service.Resolve(context.Background(), "abc123")

	assert.ErrorIs(t, err, storeErr)
	assert.NotErrorIs(t, err, domain.ErrSlugNotFound)
}

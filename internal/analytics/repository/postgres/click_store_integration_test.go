//go:build integration

package postgres_test

import (
	"context"
	"testing"
	"time"

	"edge-shortener/internal/analytics/domain"
	"edge-shortener/internal/analytics/repository/postgres"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

type ClickStoreTestSuite struct {
	suite.Suite
	container *tcpostgres.PostgresContainer
	store     *postgres.ClickStore
	closeDB   func() error
}

func TestClickStoreTestSuite(t *testing.T) {
	suite.Run(t, new(ClickStoreTestSuite))
}

func (s *ClickStoreTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("clicks"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	s.Require().NoError(err)
	s.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	s.Require().NoError(err)

	db, err := postgres.Open(ctx, dsn)
	s.Require().NoError(err)
	s.closeDB = db.Close
	s.store = postgres.NewClickStore(db)

	// migrating twice is a no-op
	s.Require().NoError(postgres.RunMigrations(db))
}

func (s *ClickStoreTestSuite) TearDownSuite() {
	if s.closeDB != nil {
		s.closeDB()
	}
	if s.container != nil {
		s.container.Terminate(context.Background())
	}
}

func (s *ClickStoreTestSuite) TestInsertThenList() {
	ctx := context.Background()
	at := time.Date(2026, 2, 15, 12, 0, 0, 0, time.UTC)
	want := domain.ClickEvent{
		Slug:          "abc123",
		ClickedAt:     at,
		Country:       "DE",
		DeviceType:    domain.DeviceTablet,
		Browser:       "Safari",
		OS:            "iOS",
		VisitorHash:   "95f3707183eb27b4",
		TrafficSource: domain.SourceDirect,
	}
	s.Require().NoError(s.store.InsertClick(ctx, want))
	s.Require().NoError(s.store.InsertClick(ctx, domain.ClickEvent{
		Slug: "later", ClickedAt: at.Add(2 * time.Hour), DeviceType: domain.DeviceDesktop,
		Browser: "Chrome", OS: "Linux", VisitorHash: "0123456789abcdef", TrafficSource: domain.SourceSearch,
	}))

	q, err := domain.NewClickQuery(at.Unix(), at.Add(time.Hour).Unix(), 10)
	s.Require().NoError(err)
	got, err := s.store.ListClicks(ctx, q)

	s.Require().NoError(err)
	s.Require().Len(got, 1)
	want.ID = got[0].ID
	s.Equal(want, got[0])
}

func (s *ClickStoreTestSuite) TestPing() {
	s.NoError(s.store.Ping(context.Background()))
}

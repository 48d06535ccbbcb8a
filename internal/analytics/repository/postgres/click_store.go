// Package postgres stores clicks in PostgreSQL for deployments that keep
// analytics apart from the link database.
package postgres

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"edge-shortener/internal/analytics/domain"
	"edge-shortener/internal/analytics/usecase"

	"github.com/golang-migrate/migrate/v4"
	pgmigrate "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Open connects to dsn and migrates the clicks schema.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open click database: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetConnMaxIdleTime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to reach click database: %w", err)
	}
	if err := RunMigrations(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// RunMigrations runs all pending migrations
func RunMigrations(db *sql.DB) error {
	sourceDriver, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to create migration source: %w", err)
	}

	dbDriver, err := pgmigrate.WithInstance(db, &pgmigrate.Config{})
	if err != nil {
		return fmt.Errorf("failed to create database driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", sourceDriver, "postgres", dbDriver)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// ClickStore implements usecase.ClickStore on PostgreSQL.
type ClickStore struct {
	db *sql.DB
}

func NewClickStore(db *sql.DB) *ClickStore {
	return &ClickStore{db: db}
}

var _ usecase.ClickStore = (*ClickStore)(nil)

const insertClick = `
INSERT INTO clicks (slug, clicked_at, referrer, country, city, device_type, browser, os, visitor_hash, user_agent, traffic_source)
VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), NULLIF($5, ''), $6, $7, $8, $9, NULLIF($10, ''), $11)`

func (s *ClickStore) InsertClick(ctx context.Context, c domain.ClickEvent) error {
	_, err := s.db.ExecContext(ctx, insertClick,
		c.Slug,
		c.ClickedAt.Unix(),
		c.Referrer,
		c.Country,
		c.City,
		string(c.DeviceType),
		c.Browser,
		c.OS,
		c.VisitorHash,
		c.UserAgentRaw,
		c.TrafficSource,
	)
	return err
}

const listClicks = `
SELECT id, slug, clicked_at, COALESCE(referrer, ''), COALESCE(country, ''), COALESCE(city, ''),
       device_type, browser, os, visitor_hash, COALESCE(user_agent, ''), traffic_source
FROM clicks
WHERE clicked_at BETWEEN $1 AND $2
ORDER BY clicked_at, id
LIMIT $3`

func (s *ClickStore) ListClicks(ctx context.Context, q domain.ClickQuery) ([]domain.ClickEvent, error) {
	rows, err := s.db.QueryContext(ctx, listClicks, q.Since.Unix(), q.Until.Unix(), q.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	clicks := make([]domain.ClickEvent, 0)
	for rows.Next() {
		var (
			c         domain.ClickEvent
			clickedAt int64
			device    string
		)
		if err := rows.Scan(&c.ID, &c.Slug, &clickedAt, &c.Referrer, &c.Country, &c.City,
			&device, &c.Browser, &c.OS, &c.VisitorHash, &c.UserAgentRaw, &c.TrafficSource); err != nil {
			return nil, err
		}
		c.ClickedAt = time.Unix(clickedAt, 0).UTC()
		c.DeviceType = domain.DeviceType(device)
		clicks = append(clicks, c)
	}
	return clicks, rows.Err()
}

func (s *ClickStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

package sqlite

import (
	"context"
	"database/sql"
	"time"

	"edge-shortener/internal/analytics/domain"
	"edge-shortener/internal/analytics/usecase"
)

// ClickStore implements usecase.ClickStore on the shared SQLite database.
type ClickStore struct {
	db *sql.DB
}

// NewClickStore creates a new SQLite-backed click store
func NewClickStore(db *sql.DB) *ClickStore {
	return &ClickStore{db: db}
}

// Ensure ClickStore implements usecase.ClickStore at compile time
var _ usecase.ClickStore = (*ClickStore)(nil)

const insertClick = `
INSERT INTO clicks (slug, clicked_at, referrer, country, city, device_type, browser, os, visitor_hash, user_agent, traffic_source)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

func (s *ClickStore) InsertClick(ctx context.Context, c domain.ClickEvent) error {
	_, err := s.db.ExecContext(ctx, insertClick,
		c.Slug,
		c.ClickedAt.Unix(),
		nullString(c.Referrer),
		nullString(c.Country),
		nullString(c.City),
		string(c.DeviceType),
		c.Browser,
		c.OS,
		c.VisitorHash,
		nullString(c.UserAgentRaw),
		c.TrafficSource,
	)
	return err
}

const listClicks = `
SELECT id, slug, clicked_at, referrer, country, city, device_type, browser, os, visitor_hash, user_agent, traffic_source
FROM clicks
WHERE clicked_at >= ? AND clicked_at <= ?
ORDER BY clicked_at, id
LIMIT ?`

func (s *ClickStore) ListClicks(ctx context.Context, q domain.ClickQuery) ([]domain.ClickEvent, error) {
	rows, err := s.db.QueryContext(ctx, listClicks, q.Since.Unix(), q.Until.Unix(), q.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	clicks := make([]domain.ClickEvent, 0)
	for rows.Next() {
		var (
			c                                  domain.ClickEvent
			clickedAt                          int64
			device                             string
			referrer, country, city, userAgent sql.NullString
		)
		if err := rows.Scan(&c.ID, &c.Slug, &clickedAt, &referrer, &country, &city,
			&device, &c.Browser, &c.OS, &c.VisitorHash, &userAgent, &c.TrafficSource); err != nil {
			return nil, err
		}
		c.ClickedAt = time.Unix(clickedAt, 0).UTC()
		c.DeviceType = domain.DeviceType(device)
		c.Referrer = referrer.String
		c.Country = country.String
		c.City = city.String
		c.UserAgentRaw = userAgent.String
		clicks = append(clicks, c)
	}
	return clicks, rows.Err()
}

func (s *ClickStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

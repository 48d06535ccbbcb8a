package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"edge-shortener/internal/urlservice/domain"
	"edge-shortener/internal/urlservice/usecase"
)

// LinkStore implements usecase.LinkStore on the links table
type LinkStore struct {
	db *sql.DB
}

// NewLinkStore creates a new SQLite-backed link store
func NewLinkStore(db *sql.DB) *LinkStore {
	return &LinkStore{db: db}
}

// Ensure LinkStore implements usecase.LinkStore at compile time
var _ usecase.LinkStore = (*LinkStore)(nil)

// Get loads and decodes the record stored for slug
func (s *LinkStore) Get(ctx context.Context, slug string) (*domain.Link, error) {
	var (
		value      string
		clickCount int64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT value, click_count FROM links WHERE slug = ?`, slug,
	).Scan(&value, &clickCount)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSlugNotFound
		}
		return nil, err
	}

	record, err := domain.DecodeRecord(value)
	if err != nil {
		return nil, err
	}

	return &domain.Link{
		Slug:       slug,
		Record:     record,
		ClickCount: clickCount,
	}, nil
}

// Put creates or replaces the record for slug, keeping its click count
func (s *LinkStore) Put(ctx context.Context, slug string, record domain.Record) error {
	value, err := domain.EncodeRecord(record)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO links (slug, value) VALUES (?, ?)
		 ON CONFLICT (slug) DO UPDATE SET value = excluded.value, updated_at = unixepoch()`,
		slug, value,
	)
	if err != nil {
		return fmt.Errorf("failed to save link: %w", err)
	}
	return nil
}

// IncrementClicks adds one to the click count of slug
func (s *LinkStore) IncrementClicks(ctx context.Context, slug string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE links SET click_count = click_count + 1 WHERE slug = ?`, slug,
	)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrSlugNotFound
	}
	return nil
}

// Ping checks database connectivity
func (s *LinkStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

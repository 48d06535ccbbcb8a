package usecase

import (
	"context"

	"edge-shortener/internal/safefetch"
)

// LogoFetcher downloads logo bytes with SSRF protection.
type LogoFetcher interface {
	Download(ctx context.Context, rawURL string, limit int64) (*safefetch.Download, error)
}

var _ LogoFetcher = (*safefetch.Fetcher)(nil)

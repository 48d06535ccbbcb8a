package usecase

import (
	"context"
	"fmt"
	"image"

	"edge-shortener/internal/qrservice/cache"
	"edge-shortener/internal/qrservice/domain"
	"edge-shortener/internal/qrservice/imageverify"
	"edge-shortener/internal/qrservice/matrix"
	"edge-shortener/internal/qrservice/render"
	"edge-shortener/internal/urlsafety"
	linkdomain "edge-shortener/internal/urlservice/domain"

	"go.uber.org/zap"
)

// QRService renders QR codes for short links, optionally with a logo pulled
// from an untrusted URL.
type QRService struct {
	fetcher  LogoFetcher
	verifier *imageverify.Verifier
	cache    cache.Cache
	baseURL  string
	logger   *zap.Logger
}

// NewQRService creates a new QR service. A nil cache disables memoization.
func NewQRService(fetcher LogoFetcher, verifier *imageverify.Verifier, c cache.Cache, baseURL string, logger *zap.Logger) *QRService {
	if c == nil {
		c = cache.Noop{}
	}
	return &QRService{
		fetcher:  fetcher,
		verifier: verifier,
		cache:    c,
		baseURL:  baseURL,
		logger:   logger,
	}
}

// Result is a rendered QR image. On a cache hit LogoApplied only reports
// that a usable logo URL was part of the key.
type Result struct {
	Body        []byte
	ContentType string
	CacheHit    bool
	LogoApplied bool
}

// Render produces the QR image for slug. Logo problems never fail the call:
// the code is rendered without a logo and the outcome is not cached.
func (s *QRService) Render(ctx context.Context, slug string, params domain.RenderParams) (*Result, error) {
	if err := linkdomain.ValidateSlug(slug); err != nil {
		return nil, err
	}

	req, err := domain.NewRenderRequest(slug, s.baseURL+"/"+slug, params)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRenderFailed, err)
	}

	logoIdentity := s.resolveLogo(req)
	key := cache.Key(req.Slug, req.SizePx, string(req.Format), req.LogoRatio, logoIdentity)

	if body, ok := s.cache.Get(ctx, key); ok {
		return &Result{
			Body:        body,
			ContentType: req.ContentType(),
			CacheHit:    true,
			LogoApplied: logoIdentity != "",
		}, nil
	}

	var logo *image.NRGBA
	degraded := false
	if logoIdentity != "" {
		logo, err = s.loadLogo(ctx, logoIdentity)
		if err != nil {
			s.logger.Warn("logo unavailable, rendering without it",
				zap.String("slug", slug),
				zap.String("logo_url", logoIdentity),
				zap.Error(err),
			)
			degraded = true
		}
	}

	m, err := matrix.Generate(req.TargetText, matrix.LevelFor(logo != nil), req.SizePx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrRenderFailed, err)
	}

	var out *render.Output
	switch req.Format {
	case domain.FormatSVG:
		out, err = render.SVG(m, logo, req.LogoRatio)
	default:
		out, err = render.PNG(m, logo, req.LogoRatio)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrRenderFailed, err)
	}

	if !degraded {
		s.cache.Put(ctx, key, out.Body)
	}

	return &Result{
		Body:        out.Body,
		ContentType: out.ContentType,
		LogoApplied: out.LogoApplied,
	}, nil
}

// resolveLogo returns the logo URL to fetch, or empty when none was asked
// for or the URL fails validation. Unsafe URLs never reach the network.
func (s *QRService) resolveLogo(req domain.RenderRequest) string {
	if !req.HasLogo() {
		return ""
	}
	if err := urlsafety.Validate(req.LogoURL); err != nil {
		s.logger.Warn("logo url rejected",
			zap.String("slug", req.Slug),
			zap.String("logo_url", req.LogoURL),
			zap.Error(err),
		)
		return ""
	}
	return req.LogoURL
}

func (s *QRService) loadLogo(ctx context.Context, logoURL string) (*image.NRGBA, error) {
	dl, err := s.fetcher.Download(ctx, logoURL, int64(s.verifier.MaxBytes()))
	if err != nil {
		return nil, err
	}

	img, err := s.verifier.Verify(dl.Body, dl.ContentType)
	if err != nil {
		return nil, err
	}
	return img.Raster, nil
}

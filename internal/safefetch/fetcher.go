// Package safefetch performs outbound HTTP requests on behalf of untrusted
// input. Redirects are followed by hand so that every hop goes through the
// URL safety validator before a connection is made.
package safefetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"edge-shortener/internal/urlsafety"

	"go.uber.org/zap"
)

const (
	DefaultMaxRedirects = 5
	DefaultTimeout      = 5 * time.Second

	userAgent = "edge-shortener-fetcher/1.0"
)

// ValidateFunc decides whether a URL may be requested.
type ValidateFunc func(rawURL string) error

// Fetcher issues validated GET requests.
type Fetcher struct {
	client       *http.Client
	transport    http.RoundTripper
	validate     ValidateFunc
	maxRedirects int
	timeout      time.Duration
	logger       *zap.Logger
}

type Option func(*Fetcher)

// WithMaxRedirects sets how many redirect hops are followed. Zero disables
// redirect following: the first redirect response fails the fetch.
func WithMaxRedirects(n int) Option {
	return func(f *Fetcher) {
		if n >= 0 {
			f.maxRedirects = n
		}
	}
}

// WithTimeout bounds the whole fetch including every hop and the body read.
// Zero means no timeout beyond the caller's context.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

func WithTransport(rt http.RoundTripper) Option {
	return func(f *Fetcher) {
		f.transport = rt
	}
}

func WithValidator(v ValidateFunc) Option {
	return func(f *Fetcher) {
		f.validate = v
	}
}

// New creates a Fetcher that validates with urlsafety.Validate and dials
// through NewTransport unless overridden.
func New(logger *zap.Logger, opts ...Option) *Fetcher {
	f := &Fetcher{
		transport:    NewTransport(),
		validate:     urlsafety.Validate,
		maxRedirects: DefaultMaxRedirects,
		timeout:      DefaultTimeout,
		logger:       logger,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Transport: f.transport,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	return f
}

// Fetch GETs rawURL, following at most the configured number of redirects.
// Non-redirect responses are returned unchanged; the caller must close the
// body.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*http.Response, error) {
	cancel := context.CancelFunc(func() {})
	if f.timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
	}

	resp, err := f.follow(ctx, rawURL)
	if err != nil {
		cancel()
		return nil, err
	}
	resp.Body = &cancelOnClose{ReadCloser: resp.Body, cancel: cancel}
	return resp, nil
}

func (f *Fetcher) follow(ctx context.Context, rawURL string) (*http.Response, error) {
	current := rawURL

	for hops := 0; ; hops++ {
		if err := f.validate(current); err != nil {
			f.logger.Warn("fetch target rejected",
				zap.String("url", current),
				zap.Int("hop", hops),
				zap.Error(err),
			)
			return nil, fmt.Errorf("hop %d: %w", hops, err)
		}

		target, err := url.Parse(current)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", urlsafety.ErrMalformedURL, current)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
		if err != nil {
			return nil, fmt.Errorf("failed to build request: %w", err)
		}
		req.Header.Set("User-Agent", userAgent)

		resp, err := f.client.Do(req)
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				return nil, fmt.Errorf("%w: %s", ErrTimeout, current)
			}
			if errors.Is(err, urlsafety.ErrPrivateAddress) || errors.Is(err, urlsafety.ErrBlockedHostname) {
				f.logger.Warn("fetch target resolved to a blocked address",
					zap.String("url", current),
					zap.Int("hop", hops),
					zap.Error(err),
				)
			}
			return nil, fmt.Errorf("failed to fetch %s: %w", current, err)
		}

		if !isRedirect(resp.StatusCode) {
			return resp, nil
		}

		location := resp.Header.Get("Location")
		drain(resp.Body)

		if location == "" {
			return nil, fmt.Errorf("%w: status %d from %s", ErrMissingLocation, resp.StatusCode, current)
		}
		if hops >= f.maxRedirects {
			return nil, fmt.Errorf("%w: limit %d", ErrTooManyRedirects, f.maxRedirects)
		}

		next, err := target.Parse(location)
		if err != nil {
			return nil, fmt.Errorf("%w: location %q", urlsafety.ErrMalformedURL, location)
		}

		f.logger.Debug("following redirect",
			zap.String("from", current),
			zap.String("to", next.String()),
			zap.Int("hop", hops+1),
		)
		current = next.String()
	}
}

// Download is a fully read, successful response body.
type Download struct {
	Body        []byte
	ContentType string
	StatusCode  int
}

// Download fetches rawURL and reads at most limit+1 bytes of a 2xx body, so
// the caller can tell an oversized payload apart from one exactly at the
// limit. A declared Content-Length above the limit fails before reading.
func (f *Fetcher) Download(ctx context.Context, rawURL string, limit int64) (*Download, error) {
	resp, err := f.Fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status %d", ErrUpstreamHTTP, resp.StatusCode)
	}

	if limit > 0 && resp.ContentLength > limit {
		return nil, fmt.Errorf("%w: %d > %d", ErrBodyTooLarge, resp.ContentLength, limit)
	}

	var reader io.Reader = resp.Body
	if limit > 0 {
		reader = io.LimitReader(resp.Body, limit+1)
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: reading body", ErrTimeout)
		}
		return nil, fmt.Errorf("failed to read body: %w", err)
	}

	return &Download{
		Body:        body,
		ContentType: resp.Header.Get("Content-Type"),
		StatusCode:  resp.StatusCode,
	}, nil
}

func isRedirect(status int) bool {
	switch status {
	case http.StatusMovedPermanently, http.StatusFound, http.StatusSeeOther,
		http.StatusTemporaryRedirect, http.StatusPermanentRedirect:
		return true
	}
	return false
}

// drain discards a small remainder so the connection can be reused.
func drain(body io.ReadCloser) {
	io.Copy(io.Discard, io.LimitReader(body, 4<<10))
	body.Close()
}

type cancelOnClose struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (c *cancelOnClose) Close() error {
	err := c.ReadCloser.Close()
	c.cancel()
	return err
}

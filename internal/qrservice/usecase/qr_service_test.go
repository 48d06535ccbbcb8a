package usecase_test

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"io"
	"net/http"
	"sync"
	"testing"

	"edge-shortener/internal/qrservice/cache"
	"edge-shortener/internal/qrservice/domain"
	"edge-shortener/internal/qrservice/imageverify"
	"edge-shortener/internal/qrservice/matrix"
	"edge-shortener/internal/qrservice/render"
	"edge-shortener/internal/qrservice/usecase"
	"edge-shortener/internal/safefetch"
	"edge-shortener/internal/testutil/mocks"
	linkdomain "edge-shortener/internal/urlservice/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const baseURL = "https://sho.rt"

// logoServer serves canned logo responses and counts every request it sees.
type logoServer struct {
	mu     sync.Mutex
	calls  int
	status int
	ctype  string
	body   []byte
}

func (s *logoServer) RoundTrip(r *http.Request) (*http.Response, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	return &http.Response{
		StatusCode:    s.status,
		Header:        http.Header{"Content-Type": []string{s.ctype}},
		Body:          io.NopCloser(bytes.NewReader(s.body)),
		ContentLength: int64(len(s.body)),
		Request:       r,
	}, nil
}

func (s *logoServer) requests() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func redPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 0xff, A: 0xff})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func setupService(t *testing.T, srv *logoServer, c cache.Cache) *usecase.QRService {
	t.Helper()
	fetcher := safefetch.New(zap.NewNop(), safefetch.WithTransport(srv))
	verifier := imageverify.NewVerifier(imageverify.DefaultMaxBytes, imageverify.DefaultMaxDimension)
	return usecase.NewQRService(fetcher, verifier, c, baseURL, zap.NewNop())
}

func memoryCache(t *testing.T) *cache.MemoryCache {
	t.Helper()
	c, err := cache.NewMemoryCache(16)
	require.NoError(t, err)
	return c
}

func decodePNG(t *testing.T, body []byte) image.Image {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(body))
	require.NoError(t, err)
	return img
}

// TestRender_ValidLogo_CentersPlateWithLogo verifies a good logo lands on a centered white plate
func TestRender_ValidLogo_CentersPlateWithLogo(t *testing.T) {
	srv := &logoServer{status: http.StatusOK, ctype: "image/png", body: redPNG(t, 64, 64)}
	svc := setupService(t, srv, memoryCache(t))

	res, err := svc.Render(context.Background(), "abc123", domain.RenderParams{
		Size: "256",
		Logo: "https://good.example/logo.png",
	})

	require.NoError(t, err)
	assert.True(t, res.LogoApplied)
	assert.False(t, res.CacheHit)
	assert.Equal(t, "image/png", res.ContentType)
	assert.Equal(t, 1, srv.requests())

	img := decodePNG(t, res.Body)
	assert.Equal(t, image.Rect(0, 0, 256, 256), img.Bounds())

	m, err := matrix.Generate(baseURL+"/abc123", matrix.LevelH, 256)
	require.NoError(t, err)
	plate, ok := render.PlanLogo(m, domain.DefaultLogoRatio)
	require.True(t, ok)

	half := m.CellSizePx / 2
	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	edge := color.NRGBAModel.Convert(img.At(plate.PlateX+half, plate.PlateY+plate.PlatePx/2)).(color.NRGBA)
	assert.Equal(t, white, edge)

	center := color.NRGBAModel.Convert(img.At(128, 128)).(color.NRGBA)
	assert.Greater(t, center.R, uint8(200))
	assert.Less(t, center.G, uint8(60))
}

// TestRender_MetadataLogo_NoNetworkCall verifies unsafe logo URLs are dropped before any request
func TestRender_MetadataLogo_NoNetworkCall(t *testing.T) {
	srv := &logoServer{status: http.StatusOK, ctype: "image/png", body: redPNG(t, 64, 64)}
	svc := setupService(t, srv, memoryCache(t))

	res, err := svc.Render(context.Background(), "abc123", domain.RenderParams{
		Size: "256",
		Logo: "http://169.254.169.254/evil",
	})

	require.NoError(t, err)
	assert.Zero(t, srv.requests())
	assert.False(t, res.LogoApplied)
	assert.Equal(t, image.Rect(0, 0, 256, 256), decodePNG(t, res.Body).Bounds())
}

// TestRender_WarmCache_ByteIdenticalToCold verifies a hit returns exactly the cold render
func TestRender_WarmCache_ByteIdenticalToCold(t *testing.T) {
	srv := &logoServer{status: http.StatusOK, ctype: "image/png", body: redPNG(t, 64, 64)}
	svc := setupService(t, srv, memoryCache(t))
	params := domain.RenderParams{Size: "300", Logo: "https://good.example/logo.png"}

	cold, err := svc.Render(context.Background(), "abc123", params)
	require.NoError(t, err)
	warm, err := svc.Render(context.Background(), "abc123", params)
	require.NoError(t, err)

	assert.False(t, cold.CacheHit)
	assert.True(t, warm.CacheHit)
	assert.Equal(t, cold.Body, warm.Body)
	assert.Equal(t, cold.ContentType, warm.ContentType)
	assert.Equal(t, 1, srv.requests())
}

// TestRender_LogoUpstreamError_DegradesAndSkipsCache verifies failed logos fall back and are re-fetched later
func TestRender_LogoUpstreamError_DegradesAndSkipsCache(t *testing.T) {
	srv := &logoServer{status: http.StatusNotFound, ctype: "text/plain", body: []byte("nope")}
	svc := setupService(t, srv, memoryCache(t))
	params := domain.RenderParams{Logo: "https://good.example/missing.png"}

	first, err := svc.Render(context.Background(), "abc123", params)
	require.NoError(t, err)
	second, err := svc.Render(context.Background(), "abc123", params)
	require.NoError(t, err)

	assert.False(t, first.LogoApplied)
	assert.False(t, second.CacheHit)
	assert.Equal(t, 2, srv.requests())
}

// TestRender_DegradedRender_NeverWrittenBack verifies Put is not called for a degraded render
func TestRender_DegradedRender_NeverWrittenBack(t *testing.T) {
	srv := &logoServer{status: http.StatusOK, ctype: "image/png", body: []byte("not a png at all")}
	mockCache := mocks.NewMockCache(t)
	svc := setupService(t, srv, mockCache)

	mockCache.EXPECT().Get(mock.Anything, mock.AnythingOfType("string")).Return(nil, false)

	res, err := svc.Render(context.Background(), "abc123", domain.RenderParams{Logo: "https://good.example/logo.png"})

	require.NoError(t, err)
	assert.False(t, res.LogoApplied)
	mockCache.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything)
}

// TestRender_PlainCode_WrittenBackUnderKey verifies the write-back key matches the render parameters
func TestRender_PlainCode_WrittenBackUnderKey(t *testing.T) {
	srv := &logoServer{status: http.StatusOK}
	mockCache := mocks.NewMockCache(t)
	svc := setupService(t, srv, mockCache)
	key := cache.Key("abc123", 512, "svg", 0.25, "")

	mockCache.EXPECT().Get(mock.Anything, key).Return(nil, false)
	mockCache.EXPECT().Put(mock.Anything, key, mock.AnythingOfType("[]uint8")).Return()

	res, err := svc.Render(context.Background(), "abc123", domain.RenderParams{Size: "512", Format: "svg"})

	require.NoError(t, err)
	assert.Equal(t, "image/svg+xml", res.ContentType)
	assert.Contains(t, string(res.Body), `width="512"`)
}

// TestRender_MislabeledLogo_Degrades verifies a signature mismatch is treated as a logo failure
func TestRender_MislabeledLogo_Degrades(t *testing.T) {
	srv := &logoServer{status: http.StatusOK, ctype: "image/jpeg", body: redPNG(t, 32, 32)}
	svc := setupService(t, srv, memoryCache(t))

	res, err := svc.Render(context.Background(), "abc123", domain.RenderParams{Logo: "https://good.example/logo.jpg"})

	require.NoError(t, err)
	assert.False(t, res.LogoApplied)
	assert.Equal(t, 1, srv.requests())
}

// TestRender_InvalidSlug_ReturnsError verifies reserved and malformed slugs are refused
func TestRender_InvalidSlug_ReturnsError(t *testing.T) {
	svc := setupService(t, &logoServer{status: http.StatusOK}, nil)

	for _, slug := range []string{"api", "", "bad slug"} {
		_, err := svc.Render(context.Background(), slug, domain.RenderParams{})
		assert.ErrorIs(t, err, linkdomain.ErrInvalidSlug)
	}
}

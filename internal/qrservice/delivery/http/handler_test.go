package http_test

import (
	"bytes"
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	qrhttp "edge-shortener/internal/qrservice/delivery/http"
	"edge-shortener/internal/qrservice/imageverify"
	"edge-shortener/internal/qrservice/usecase"
	"edge-shortener/internal/safefetch"
	"edge-shortener/pkg/problemdetails"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupRouter(t *testing.T, baseURL string) http.Handler {
	t.Helper()
	fetcher := safefetch.New(zap.NewNop())
	verifier := imageverify.NewVerifier(imageverify.DefaultMaxBytes, imageverify.DefaultMaxDimension)
	service := usecase.NewQRService(fetcher, verifier, nil, baseURL, zap.NewNop())
	handler := qrhttp.NewHandler(service, zap.NewNop())

	r := chi.NewRouter()
	r.Get("/{slug}/qr", handler.QRCode)
	return r
}

// TestQRCode_Defaults_Returns256PNG verifies default parameters and caching headers
func TestQRCode_Defaults_Returns256PNG(t *testing.T) {
	router := setupRouter(t, "https://sho.rt")

	req := httptest.NewRequest(http.MethodGet, "/abc123/qr", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "image/png", rr.Header().Get("Content-Type"))
	assert.Equal(t, "public, max-age=3600", rr.Header().Get("Cache-Control"))

	img, err := png.Decode(bytes.NewReader(rr.Body.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, 256, img.Bounds().Dx())
	assert.Equal(t, 256, img.Bounds().Dy())
}

// TestQRCode_ClampedSize_ReturnsMaximum verifies out-of-range sizes are clamped
func TestQRCode_ClampedSize_ReturnsMaximum(t *testing.T) {
	router := setupRouter(t, "https://sho.rt")

	req := httptest.NewRequest(http.MethodGet, "/abc123/qr?size=99999", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	img, err := png.Decode(bytes.NewReader(rr.Body.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, 1024, img.Bounds().Dx())
}

// TestQRCode_SVGFormat_ReturnsSVG verifies the svg content type
func TestQRCode_SVGFormat_ReturnsSVG(t *testing.T) {
	router := setupRouter(t, "https://sho.rt")

	req := httptest.NewRequest(http.MethodGet, "/abc123/qr?format=svg&size=128", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "image/svg+xml", rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Body.String(), "<svg")
}

// TestQRCode_UnsafeLogo_Returns200WithoutLogo verifies a blocked logo URL never becomes an error
func TestQRCode_UnsafeLogo_Returns200WithoutLogo(t *testing.T) {
	router := setupRouter(t, "https://sho.rt")

	req := httptest.NewRequest(http.MethodGet, "/abc123/qr?size=256&logo=http://169.254.169.254/evil", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	img, err := png.Decode(bytes.NewReader(rr.Body.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, 256, img.Bounds().Dx())
}

// TestQRCode_ReservedSlug_Returns404 verifies reserved words are not rendered
func TestQRCode_ReservedSlug_Returns404(t *testing.T) {
	router := setupRouter(t, "https://sho.rt")

	req := httptest.NewRequest(http.MethodGet, "/admin/qr", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "application/problem+json", rr.Header().Get("Content-Type"))
}

// TestQRCode_EncodingFailure_Returns500WithCorrelationID verifies non-logo failures surface with an instance id
func TestQRCode_EncodingFailure_Returns500WithCorrelationID(t *testing.T) {
	// far too much text for a 64px canvas
	router := setupRouter(t, "https://sho.rt/"+strings.Repeat("x", 600))

	req := httptest.NewRequest(http.MethodGet, "/abc123/qr?size=64", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "application/problem+json", rr.Header().Get("Content-Type"))

	var problem problemdetails.ProblemDetail
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&problem))
	assert.Contains(t, problem.Type, problemdetails.TypeRenderFailed)
	assert.True(t, strings.HasPrefix(problem.Instance, "urn:correlation:"))
	assert.Greater(t, len(problem.Instance), len("urn:correlation:"))
}

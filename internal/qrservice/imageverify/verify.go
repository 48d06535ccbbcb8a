// Package imageverify turns untrusted bytes into a decoded raster, trusting
// neither the declared length nor the declared media type.
package imageverify

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"mime"
	"strings"

	"golang.org/x/image/webp"
)

var (
	ErrInvalidImage      = errors.New("invalid image")
	ErrOversizedPayload  = errors.New("oversized payload")
	ErrSignatureMismatch = errors.New("signature mismatch")
)

const (
	DefaultMaxBytes     = 1 << 20
	DefaultMaxDimension = 4096
)

type signature struct {
	offset int
	magic  []byte
}

type format struct {
	signatures []signature
	decode     func(io.Reader) (image.Image, error)
	config     func(io.Reader) (image.Config, error)
}

// All listed signatures must match.
var formats = map[string]format{
	"image/png": {
		signatures: []signature{{0, []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}}},
		decode:     png.Decode,
		config:     png.DecodeConfig,
	},
	"image/jpeg": {
		signatures: []signature{{0, []byte{0xff, 0xd8, 0xff}}},
		decode:     jpeg.Decode,
		config:     jpeg.DecodeConfig,
	},
	"image/gif": {
		signatures: []signature{{0, []byte("GIF8")}},
		decode:     gif.Decode,
		config:     gif.DecodeConfig,
	},
	"image/webp": {
		signatures: []signature{{0, []byte("RIFF")}, {8, []byte("WEBP")}},
		decode:     webp.Decode,
		config:     webp.DecodeConfig,
	},
}

// VerifiedImage can only be produced by Verify.
type VerifiedImage struct {
	Bytes               []byte
	DeclaredContentType string
	Width               int
	Height              int
	Raster              *image.NRGBA
}

type Verifier struct {
	maxBytes     int
	maxDimension int
}

func NewVerifier(maxBytes, maxDimension int) *Verifier {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	if maxDimension <= 0 {
		maxDimension = DefaultMaxDimension
	}
	return &Verifier{maxBytes: maxBytes, maxDimension: maxDimension}
}

// MaxBytes is the payload ceiling, for callers that bound their reads.
func (v *Verifier) MaxBytes() int {
	return v.maxBytes
}

// Verify checks data against the magic table entry for declaredContentType
// and decodes it into the canonical NRGBA raster.
func (v *Verifier) Verify(data []byte, declaredContentType string) (*VerifiedImage, error) {
	if len(data) > v.maxBytes {
		return nil, fmt.Errorf("%w: %w: %d bytes", ErrInvalidImage, ErrOversizedPayload, len(data))
	}

	mediaType := normalizeMediaType(declaredContentType)
	f, ok := formats[mediaType]
	if !ok {
		return nil, fmt.Errorf("%w: %w: type %q not accepted", ErrInvalidImage, ErrSignatureMismatch, declaredContentType)
	}

	for _, sig := range f.signatures {
		end := sig.offset + len(sig.magic)
		if len(data) < end || !bytes.Equal(data[sig.offset:end], sig.magic) {
			return nil, fmt.Errorf("%w: %w: bytes are not %s", ErrInvalidImage, ErrSignatureMismatch, mediaType)
		}
	}

	cfg, err := f.config(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: header: %v", ErrInvalidImage, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("%w: empty image", ErrInvalidImage)
	}
	if cfg.Width > v.maxDimension || cfg.Height > v.maxDimension {
		return nil, fmt.Errorf("%w: %w: %dx%d", ErrInvalidImage, ErrOversizedPayload, cfg.Width, cfg.Height)
	}

	img, err := f.decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrInvalidImage, err)
	}

	raster := toNRGBA(img)
	return &VerifiedImage{
		Bytes:               data,
		DeclaredContentType: mediaType,
		Width:               raster.Bounds().Dx(),
		Height:              raster.Bounds().Dy(),
		Raster:              raster,
	}, nil
}

func normalizeMediaType(contentType string) string {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(contentType))
	}
	if mediaType == "image/jpg" {
		return "image/jpeg"
	}
	return mediaType
}

// toNRGBA copies img into a zero-origin NRGBA buffer.
func toNRGBA(img image.Image) *image.NRGBA {
	b := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}

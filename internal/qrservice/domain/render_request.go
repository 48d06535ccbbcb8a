package domain

import (
	"math"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/samber/lo"
)

// Format is the output encoding of a QR render.
type Format string

const (
	FormatPNG Format = "png"
	FormatSVG Format = "svg"
)

const (
	MinSize     = 64
	MaxSize     = 1024
	DefaultSize = 256

	MinLogoRatio     = 0.15
	MaxLogoRatio     = 0.35
	DefaultLogoRatio = 0.25
)

// RenderRequest is an immutable, validated QR render configuration.
type RenderRequest struct {
	Slug       string
	TargetText string
	SizePx     int
	Format     Format
	LogoURL    string
	LogoRatio  float64
}

// RenderParams are the raw query values of a render request.
type RenderParams struct {
	Size     string
	Format   string
	Logo     string
	LogoSize string
}

// NewRenderRequest clamps params into range, falling back to defaults for
// unparsable values, and validates the result.
func NewRenderRequest(slug, targetText string, params RenderParams) (RenderRequest, error) {
	req := RenderRequest{
		Slug:       slug,
		TargetText: targetText,
		SizePx:     DefaultSize,
		Format:     FormatPNG,
		LogoURL:    strings.TrimSpace(params.Logo),
		LogoRatio:  DefaultLogoRatio,
	}

	if n, err := strconv.Atoi(strings.TrimSpace(params.Size)); err == nil {
		req.SizePx = lo.Clamp(n, MinSize, MaxSize)
	}

	if strings.EqualFold(strings.TrimSpace(params.Format), string(FormatSVG)) {
		req.Format = FormatSVG
	}

	if f, err := strconv.ParseFloat(strings.TrimSpace(params.LogoSize), 64); err == nil && !math.IsNaN(f) {
		req.LogoRatio = lo.Clamp(f, MinLogoRatio, MaxLogoRatio)
	}

	if err := req.Validate(); err != nil {
		return RenderRequest{}, err
	}
	return req, nil
}

func (r RenderRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Slug, validation.Required),
		validation.Field(&r.TargetText, validation.Required),
		validation.Field(&r.SizePx, validation.Min(MinSize), validation.Max(MaxSize)),
		validation.Field(&r.Format, validation.In(FormatPNG, FormatSVG)),
		validation.Field(&r.LogoRatio, validation.Min(MinLogoRatio), validation.Max(MaxLogoRatio)),
	)
}

// HasLogo reports whether a logo was asked for.
func (r RenderRequest) HasLogo() bool {
	return r.LogoURL != ""
}

// ContentType is the response media type for the requested format.
func (r RenderRequest) ContentType() string {
	if r.Format == FormatSVG {
		return "image/svg+xml"
	}
	return "image/png"
}

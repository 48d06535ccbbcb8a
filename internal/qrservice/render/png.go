// Package render rasterizes QR matrices to PNG or SVG and overlays an
// optional logo on a grid-aligned white plate.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"edge-shortener/internal/qrservice/matrix"

	xdraw "golang.org/x/image/draw"
)

var errEmptyLogo = errors.New("empty logo raster")

var (
	dark  = color.NRGBA{A: 0xff}
	light = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

// Output is a rendered image. LogoApplied is false when no logo was given or
// the logo could not be placed.
type Output struct {
	Body        []byte
	ContentType string
	LogoApplied bool
}

// PNG draws m onto an m.SizePx square. logo may be nil.
func PNG(m *matrix.Matrix, logo *image.NRGBA, ratio float64) (*Output, error) {
	canvas := rasterize(m)

	applied := false
	if logo != nil {
		if plate, ok := PlanLogo(m, ratio); ok {
			fitted, err := fitLogo(logo, plate.LogoPx)
			if err == nil {
				drawPlate(canvas, plate, fitted)
				applied = true
			}
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, canvas); err != nil {
		return nil, fmt.Errorf("failed to encode png: %w", err)
	}

	return &Output{
		Body:        buf.Bytes(),
		ContentType: "image/png",
		LogoApplied: applied,
	}, nil
}

func rasterize(m *matrix.Matrix) *image.NRGBA {
	size := m.SizePx
	canvas := image.NewNRGBA(image.Rect(0, 0, size, size))
	fillRect(canvas, canvas.Bounds(), light)

	cell := m.CellSizePx
	for row := 0; row < m.ModuleCount; row++ {
		for col := 0; col < m.ModuleCount; col++ {
			if !m.IsDark(row, col) {
				continue
			}
			x := m.MarginPx + col*cell
			y := m.MarginPx + row*cell
			fillRect(canvas, image.Rect(x, y, x+cell, y+cell), dark)
		}
	}
	return canvas
}

func fillRect(img *image.NRGBA, r image.Rectangle, c color.NRGBA) {
	r = r.Intersect(img.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
}

// fitLogo scales src into a side x side transparent square, preserving
// aspect ratio and centering the short axis.
func fitLogo(src *image.NRGBA, side int) (*image.NRGBA, error) {
	sb := src.Bounds()
	if sb.Dx() <= 0 || sb.Dy() <= 0 || side <= 0 {
		return nil, errEmptyLogo
	}

	w, h := side, side
	if sb.Dx() > sb.Dy() {
		h = max(1, side*sb.Dy()/sb.Dx())
	} else if sb.Dy() > sb.Dx() {
		w = max(1, side*sb.Dx()/sb.Dy())
	}

	dst := image.NewNRGBA(image.Rect(0, 0, side, side))
	x := (side - w) / 2
	y := (side - h) / 2
	xdraw.CatmullRom.Scale(dst, image.Rect(x, y, x+w, y+h), src, sb, xdraw.Over, nil)
	return dst, nil
}

// drawPlate paints the white plate over whole modules and the fitted logo
// one module in from its edge.
func drawPlate(canvas *image.NRGBA, p Plate, fitted *image.NRGBA) {
	fillRect(canvas, image.Rect(p.PlateX, p.PlateY, p.PlateX+p.PlatePx, p.PlateY+p.PlatePx), light)
	dst := image.Rect(p.LogoX, p.LogoY, p.LogoX+p.LogoPx, p.LogoY+p.LogoPx)
	xdraw.Draw(canvas, dst, fitted, image.Point{}, xdraw.Over)
}

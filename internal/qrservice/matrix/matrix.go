// Package matrix encodes text into a QR module grid sized for a pixel canvas.
package matrix

import (
	"errors"
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

// MarginModules is the quiet zone kept on every side of the grid.
const MarginModules = 2

var ErrCanvasTooSmall = errors.New("canvas too small for qr content")

// Level is a QR error-correction level.
type Level int

const (
	LevelM Level = iota // ~15% recoverable
	LevelH              // ~30% recoverable
)

func (l Level) String() string {
	if l == LevelH {
		return "H"
	}
	return "M"
}

func (l Level) recovery() qrcode.RecoveryLevel {
	if l == LevelH {
		return qrcode.Highest
	}
	return qrcode.Medium
}

// LevelFor picks H when a logo will cover part of the grid.
func LevelFor(hasLogo bool) Level {
	if hasLogo {
		return LevelH
	}
	return LevelM
}

// Matrix is a square module grid placed on a SizePx canvas.
type Matrix struct {
	ModuleCount int
	CellSizePx  int
	// MarginPx is the leading (left and top) margin. The trailing margin
	// absorbs the pixels that do not divide evenly.
	MarginPx int
	SizePx   int
	Level    Level
	bitmap   [][]bool
}

// Generate encodes text at the given level and fits the grid plus a
// MarginModules quiet zone into sizePx.
func Generate(text string, level Level, sizePx int) (*Matrix, error) {
	q, err := qrcode.New(text, level.recovery())
	if err != nil {
		return nil, fmt.Errorf("failed to encode qr: %w", err)
	}
	q.DisableBorder = true
	bitmap := q.Bitmap()

	n := len(bitmap)
	cell := sizePx / (n + 2*MarginModules)
	if cell < 1 {
		return nil, fmt.Errorf("%w: %d modules in %dpx", ErrCanvasTooSmall, n, sizePx)
	}

	return &Matrix{
		ModuleCount: n,
		CellSizePx:  cell,
		MarginPx:    (sizePx - n*cell) / 2,
		SizePx:      sizePx,
		Level:       level,
		bitmap:      bitmap,
	}, nil
}

// IsDark reports whether the module at (row, col) is dark. Out-of-range
// coordinates are light.
func (m *Matrix) IsDark(row, col int) bool {
	if row < 0 || col < 0 || row >= m.ModuleCount || col >= m.ModuleCount {
		return false
	}
	return m.bitmap[row][col]
}

// GridPx is the side of the module grid without margins.
func (m *Matrix) GridPx() int {
	return m.ModuleCount * m.CellSizePx
}

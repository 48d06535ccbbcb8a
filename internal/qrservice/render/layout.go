package render

import (
	"math"

	"edge-shortener/internal/qrservice/matrix"
)

const (
	// finderZone is a finder pattern plus its separator, measured from each edge.
	finderZone = 8

	// maxPlateCoverage is the share of the grid a plate may hide. Level H
	// recovers roughly 30% of codewords.
	maxPlateCoverage = 0.30
)

// Plate is the grid-aligned placement of a logo and its white backing plate.
// Module fields are in grid coordinates, pixel fields in canvas coordinates.
type Plate struct {
	OffsetModules int
	PlateModules  int
	LogoModules   int

	PlateX, PlateY, PlatePx int
	LogoX, LogoY, LogoPx    int
}

// PlanLogo snaps a logo of size*ratio pixels to whole modules. The plate
// span is forced odd so it centers exactly on the grid. PNG and SVG output
// both place the logo from this plan. ok is false when the plate would reach
// a finder pattern or hide more of the grid than error correction restores.
func PlanLogo(m *matrix.Matrix, ratio float64) (Plate, bool) {
	cell := m.CellSizePx
	if cell <= 0 || ratio <= 0 {
		return Plate{}, false
	}

	desiredPx := float64(m.SizePx) * ratio
	logoModules := int(math.Ceil(desiredPx / float64(cell)))

	plateModules := logoModules + 2
	if plateModules%2 == 0 {
		plateModules++
	}
	logoModules = plateModules - 2

	if logoModules < 1 || plateModules > m.ModuleCount-2*finderZone {
		return Plate{}, false
	}
	grid := float64(m.ModuleCount * m.ModuleCount)
	if float64(plateModules*plateModules) > maxPlateCoverage*grid {
		return Plate{}, false
	}

	offset := (m.ModuleCount - plateModules) / 2
	plateX := m.MarginPx + offset*cell

	return Plate{
		OffsetModules: offset,
		PlateModules:  plateModules,
		LogoModules:   logoModules,
		PlateX:        plateX,
		PlateY:        plateX,
		PlatePx:       plateModules * cell,
		LogoX:         plateX + cell,
		LogoY:         plateX + cell,
		LogoPx:        logoModules * cell,
	}, true
}

package render

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"strings"

	"edge-shortener/internal/qrservice/matrix"

	svg "github.com/ajstarks/svgo"
)

// SVG writes m as a single path in pixel user units. The logo, if any, is
// inlined as a PNG data URI so viewers never fetch it from its origin.
func SVG(m *matrix.Matrix, logo *image.NRGBA, ratio float64) (*Output, error) {
	var logoURI string
	var plate Plate
	if logo != nil {
		if p, ok := PlanLogo(m, ratio); ok {
			if fitted, err := fitLogo(logo, p.LogoPx); err == nil {
				if uri, err := pngDataURI(fitted); err == nil {
					logoURI, plate = uri, p
				}
			}
		}
	}

	size := m.SizePx
	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Start(size, size,
		fmt.Sprintf(`viewBox="0 0 %d %d"`, size, size),
		`shape-rendering="crispEdges"`,
	)
	canvas.Rect(0, 0, size, size, "fill:#ffffff")
	canvas.Path(modulePath(m), "fill:#000000")

	if logoURI != "" {
		canvas.Rect(plate.PlateX, plate.PlateY, plate.PlatePx, plate.PlatePx, "fill:#ffffff")
		canvas.Image(plate.LogoX, plate.LogoY, plate.LogoPx, plate.LogoPx, logoURI)
	}
	canvas.End()

	return &Output{
		Body:        buf.Bytes(),
		ContentType: "image/svg+xml",
		LogoApplied: logoURI != "",
	}, nil
}

// modulePath emits one closed square per dark module.
func modulePath(m *matrix.Matrix) string {
	cell := m.CellSizePx
	var b strings.Builder
	for row := 0; row < m.ModuleCount; row++ {
		for col := 0; col < m.ModuleCount; col++ {
			if !m.IsDark(row, col) {
				continue
			}
			fmt.Fprintf(&b, "M%d %dh%dv%dh-%dz",
				m.MarginPx+col*cell, m.MarginPx+row*cell, cell, cell, cell)
		}
	}
	return b.String()
}

func pngDataURI(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

package robot

import "math"

// Viewport maps canvas coordinates onto a grid of terminal cells.
type Viewport struct {
	MinX, MaxX float64
	MinY, MaxY float64
	Cols, Rows int
}

// CenteredViewport returns a square viewport of half-width extent around the
// origin, padded so the robot never sits on the border.
func CenteredViewport(extent float64, cols, rows int) Viewport {
	if extent <= 0 {
		extent = 1
	}
	extent *= 1.25
	return Viewport{
		MinX: -extent, MaxX: extent,
		MinY: -extent, MaxY: extent,
		Cols: cols, Rows: rows,
	}
}

// Cell converts a canvas coordinate into a column and row. ok is false when
// the point falls outside the viewport.
func (v Viewport) Cell(x, y float64) (col, row int, ok bool) {
	if v.Cols <= 0 || v.Rows <= 0 {
		return 0, 0, false
	}
	fx := scale(x, v.MinX, v.MaxX)
	fy := scale(y, v.MinY, v.MaxY)
	if fx < 0 || fx > 1 || fy < 0 || fy > 1 {
		return 0, 0, false
	}
	col = int(math.Round(fx * float64(v.Cols-1)))
	row = int(math.Round(fy * float64(v.Rows-1)))
	return col, row, true
}

// Point converts a cell back to the canvas coordinate at its center.
func (v Viewport) Point(col, row int) (x, y float64) {
	x = v.MinX + unscale(col, v.Cols)*(v.MaxX-v.MinX)
	y = v.MinY + unscale(row, v.Rows)*(v.MaxY-v.MinY)
	return x, y
}

func scale(v, lo, hi float64) float64 {
	if hi == lo {
		return 0
	}
	return (v - lo) / (hi - lo)
}

func unscale(i, n int) float64 {
	if n <= 1 {
		return 0
	}
	return float64(i) / float64(n-1)
}

// HeadingGlyph returns an arrow for a heading in degrees, snapped to the
// nearest 45°.
func HeadingGlyph(deg float64) string {
	glyphs := []string{"↑", "↗", "→", "↘", "↓", "↙", "←", "↖"}
	i := int(math.Round(deg/45)) % len(glyphs)
	if i < 0 {
		i += len(glyphs)
	}
	return glyphs[i]
}

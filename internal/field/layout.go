package field

import "math"

// CellSizeFor picks the target cell edge for a viewport width. Below the
// small breakpoint the small tier is used, below the medium breakpoint the
// medium tier, and the instance's base size otherwise.
func CellSizeFor(viewportWidth float64, t Tunables, base float64) float64 {
	switch {
	case viewportWidth < t.SmallBreakpoint:
		return t.SmallCellSize
	case viewportWidth < t.MediumBreakpoint:
		return t.MediumCellSize
	default:
		return base
	}
}

// Layout is the grid for one render pass.
type Layout struct {
	Columns int
	Rows    int
	// CellSize is the actual cell edge after fitting the columns to the
	// surface width.
	CellSize float64
	OffsetX  float64
	OffsetY  float64
}

// ComputeLayout fits round(width/cellSize) columns across the surface and as
// many whole rows as fit vertically, centering the grid.
func ComputeLayout(width, height, cellSize float64) Layout {
	if !(width > 0) || !(height > 0) || !(cellSize > 0) ||
		math.IsInf(width, 0) || math.IsInf(height, 0) {
		return Layout{}
	}

	cols := int(math.Round(width / cellSize))
	if cols < 1 {
		return Layout{}
	}
	size := width / float64(cols)
	rows := int(math.Floor(height / size))

	return Layout{
		Columns:  cols,
		Rows:     rows,
		CellSize: size,
		OffsetX:  math.Max(0, (width-size*float64(cols))/2),
		OffsetY:  math.Max(0, (height-size*float64(rows))/2),
	}
}

// Cells returns the number of segments a render pass draws.
func (l Layout) Cells() int { return l.Columns * l.Rows }

// Origin returns the top-left corner of a cell, offsets included.
func (l Layout) Origin(row, col int) (float64, float64) {
	return l.CellSize*float64(col) + l.OffsetX, l.CellSize*float64(row) + l.OffsetY
}

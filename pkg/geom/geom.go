// Package geom provides the coordinate transforms used when projecting
// native document rectangles onto rasterized renderings.
//
// Two coordinate systems are supported:
//
// - Continuous point space (page-oriented documents): a rectangle in page
// points is scaled into the pixel space of a raster of the same page.
// - Discrete grid space (spreadsheet-style documents): a cell is located by
// row/column index and mapped through cumulative column widths and row
// heights measured in pixels.
//
// All mappings are pure functions of their inputs.
package geom

import (
	"fmt"
	"image"
)

// Rect is a rectangle in a unit's native coordinate space with a top-down
// Y axis: Top <= Bottom.
type Rect struct {
	X0     float64
	Top    float64
	X1     float64
	Bottom float64
}

// NewRect creates a rectangle, normalizing the corner order so that
// X0 <= X1 and Top <= Bottom.
func NewRect(x0, top, x1, bottom float64) Rect {
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	if bottom < top {
		top, bottom = bottom, top
	}
	return Rect{X0: x0, Top: top, X1: x1, Bottom: bottom}
}

// Width returns the horizontal extent of the rectangle.
func (r Rect) Width() float64 { return r.X1 - r.X0 }

// Height returns the vertical extent of the rectangle.
func (r Rect) Height() float64 { return r.Bottom - r.Top }

// MapRect projects a native-space rectangle into the pixel space of a raster
// with the given dimensions. The native dimensions must be positive; each
// resulting coordinate is truncated to an integer pixel.
//
// Rectangles outside the native bounds are not rejected, the raster boundary
// clips them visually.
func MapRect(r Rect, nativeW, nativeH float64, rasterW, rasterH int) (image.Rectangle, error) {
	if nativeW <= 0 || nativeH <= 0 {
		return image.Rectangle{}, fmt.Errorf("map rect: native dimensions %gx%g: %w",
			nativeW, nativeH, ErrInvalidGeometry)
	}

	scaleX := float64(rasterW) / nativeW
	scaleY := float64(rasterH) / nativeH

	return image.Rect(
		int(r.X0*scaleX),
		int(r.Top*scaleY),
		int(r.X1*scaleX),
		int(r.Bottom*scaleY),
	), nil
}

// GridLayout holds per-unit pixel sizes for a cell grid. Column widths and
// row heights are computed independently per sheet from its content, so cell
// positions come from cumulative offsets rather than a uniform scale factor.
type GridLayout struct {
	ColWidths  []int
	RowHeights []int
}

// ImageSize returns the total pixel dimensions of the grid.
func (g GridLayout) ImageSize() (w, h int) {
	for _, cw := range g.ColWidths {
		w += cw
	}
	for _, rh := range g.RowHeights {
		h += rh
	}
	return w, h
}

// CellBox returns the pixel rectangle of the cell at the given zero-based
// row and column: the cumulative extent of all preceding columns/rows plus
// the cell's own width/height.
func (g GridLayout) CellBox(row, col int) (image.Rectangle, error) {
	if row < 0 || row >= len(g.RowHeights) || col < 0 || col >= len(g.ColWidths) {
		return image.Rectangle{}, fmt.Errorf("cell (%d,%d) outside %dx%d grid: %w",
			row, col, len(g.RowHeights), len(g.ColWidths), ErrInvalidGeometry)
	}

	var x, y int
	for _, cw := range g.ColWidths[:col] {
		x += cw
	}
	for _, rh := range g.RowHeights[:row] {
		y += rh
	}
	return image.Rect(x, y, x+g.ColWidths[col], y+g.RowHeights[row]), nil
}

package sheetdoc

import (
	"strings"

	"github.com/halldor/annotar/pkg/geom"
)

// Sheet raster sizing is heuristic, derived from character counts rather
// than true text metrics. The pixel-rect mapping for grid units depends on
// these exact numbers, so they are a documented approximation, not
// something to recompute from font metrics.
const (
	charPx          = 7  // advance of the 7x13 bitmap face
	cellPaddingPx   = 8  // horizontal padding on each side of a cell
	lineHeightPx    = 13 // height of the 7x13 bitmap face
	lineSpacingPx   = 4
	defaultRowPx    = 30
	minColPx        = 60
	maxColPx        = 800
	minColChars     = 10
	maxColChars     = 60
	colCharsPadding = 2
)

// columnChars estimates a column's width in characters from the longest
// content line it holds, clamped to [minColChars, maxColChars].
func columnChars(rows [][]string, col int) int {
	maxLen := 0
	for _, row := range rows {
		if col >= len(row) {
			continue
		}
		for _, line := range strings.Split(row[col], "\n") {
			if n := len([]rune(line)); n > maxLen {
				maxLen = n
			}
		}
	}
	chars := maxLen + colCharsPadding
	if chars < minColChars {
		chars = minColChars
	}
	if chars > maxColChars {
		chars = maxColChars
	}
	return chars
}

// pixelWidth converts a character-count column width to pixels.
func pixelWidth(chars int) int {
	w := chars*charPx + 2*cellPaddingPx
	if w < minColPx {
		w = minColPx
	}
	if w > maxColPx {
		w = maxColPx
	}
	return w
}

// wrapText splits text into lines no wider than width characters, breaking
// words that are longer than a whole line. Blank source lines survive.
func wrapText(text string, width int) []string {
	if width < 1 {
		width = 1
	}
	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		if strings.TrimSpace(paragraph) == "" {
			lines = append(lines, "")
			continue
		}
		current := ""
		for _, word := range strings.Fields(paragraph) {
			for len([]rune(word)) > width {
				if current != "" {
					lines = append(lines, current)
					current = ""
				}
				r := []rune(word)
				lines = append(lines, string(r[:width]))
				word = string(r[width:])
			}
			switch {
			case current == "":
				current = word
			case len([]rune(current))+1+len([]rune(word)) <= width:
				current += " " + word
			default:
				lines = append(lines, current)
				current = word
			}
		}
		if current != "" {
			lines = append(lines, current)
		}
	}
	if len(lines) == 0 {
		lines = append(lines, "")
	}
	return lines
}

// rowPixels estimates a row's height from the tallest wrapped cell in it.
func rowPixels(row []string, colChars []int) int {
	maxLines := 1
	for c, val := range row {
		if c >= len(colChars) || strings.TrimSpace(val) == "" {
			continue
		}
		if n := len(wrapText(val, colChars[c])); n > maxLines {
			maxLines = n
		}
	}
	h := maxLines*(lineHeightPx+lineSpacingPx) + 2*lineSpacingPx
	if h < defaultRowPx {
		h = defaultRowPx
	}
	return h
}

// buildLayout computes the grid layout for a sheet's rows: per-column pixel
// widths, per-row pixel heights, and the per-column character widths used
// for wrapping. Empty sheets get a single empty cell so a forced render
// still produces a raster.
func buildLayout(rows [][]string) (geom.GridLayout, []int) {
	cols := 0
	for _, row := range rows {
		if len(row) > cols {
			cols = len(row)
		}
	}
	if cols == 0 {
		cols = 1
	}
	nrows := len(rows)
	if nrows == 0 {
		nrows = 1
	}

	colChars := make([]int, cols)
	layout := geom.GridLayout{
		ColWidths:  make([]int, cols),
		RowHeights: make([]int, nrows),
	}
	for c := 0; c < cols; c++ {
		colChars[c] = columnChars(rows, c)
		layout.ColWidths[c] = pixelWidth(colChars[c])
	}
	for r := 0; r < nrows; r++ {
		if r < len(rows) {
			layout.RowHeights[r] = rowPixels(rows[r], colChars)
		} else {
			layout.RowHeights[r] = defaultRowPx
		}
	}
	return layout, colChars
}

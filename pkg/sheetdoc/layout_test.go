package sheetdoc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColumnChars(t *testing.T) {
	rows := [][]string{
		{"id", "a much longer description cell"},
		{"2", "short"},
	}
	assert.Equal(t, minColChars, columnChars(rows, 0), "short columns clamp to the minimum")
	assert.Equal(t, len("a much longer description cell")+colCharsPadding, columnChars(rows, 1))

	long := [][]string{{strings.Repeat("x", 500)}}
	assert.Equal(t, maxColChars, columnChars(long, 0), "long columns clamp to the maximum")
}

func TestPixelWidth(t *testing.T) {
	assert.Equal(t, minColPx, pixelWidth(1))
	assert.Equal(t, 30*charPx+2*cellPaddingPx, pixelWidth(30))
	assert.Equal(t, maxColPx, pixelWidth(1000))
}

func TestWrapText(t *testing.T) {
	assert.Equal(t, []string{"hello world"}, wrapText("hello world", 20))
	assert.Equal(t, []string{"hello", "world"}, wrapText("hello world", 6))
	// Words longer than a line are broken.
	assert.Equal(t, []string{"abcde", "fgh"}, wrapText("abcdefgh", 5))
	// Blank lines survive.
	assert.Equal(t, []string{"a", "", "b"}, wrapText("a\n\nb", 10))
	assert.Equal(t, []string{""}, wrapText("", 10))
}

func TestRowPixels(t *testing.T) {
	colChars := []int{10}
	assert.Equal(t, defaultRowPx, rowPixels([]string{"short"}, colChars))

	// 30 chars in a 10-char column wraps to 3 lines.
	h := rowPixels([]string{"aaaaaaaaaa bbbbbbbbbb cccccccccc"}, colChars)
	assert.Equal(t, 3*(lineHeightPx+lineSpacingPx)+2*lineSpacingPx, h)
}

func TestBuildLayout(t *testing.T) {
	rows := [][]string{
		{"a", "b", "c"},
		{"d"},
	}
	layout, colChars := buildLayout(rows)
	require.Len(t, layout.ColWidths, 3, "ragged rows widen to the longest")
	require.Len(t, layout.RowHeights, 2)
	require.Len(t, colChars, 3)

	// Empty sheet still yields a renderable single cell.
	layout, _ = buildLayout(nil)
	assert.Equal(t, []int{minColPx}, layout.ColWidths)
	assert.Equal(t, []int{defaultRowPx}, layout.RowHeights)
}

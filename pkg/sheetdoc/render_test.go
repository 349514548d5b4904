package sheetdoc

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halldor/annotar/pkg/annotate"
	"github.com/halldor/annotar/pkg/geom"
)

func testSheet(t *testing.T, rows [][]string) *sheet {
	t.Helper()
	s, err := newSheet(0, "Sheet1", rows, annotate.DefaultConfig())
	require.NoError(t, err)
	return s
}

func TestSheetWords(t *testing.T) {
	s := testSheet(t, [][]string{
		{"Name", "Amount"},
		{"Widget", ""},
		{"", "42"},
	})

	ws := s.words()
	require.Len(t, ws, 4)
	assert.Equal(t, "Widget", ws[2].Text)
	assert.Equal(t, geom.Rect{X0: 0, Top: 1, X1: 0, Bottom: 1}, ws[2].Rect)
	assert.Equal(t, geom.Rect{X0: 1, Top: 2, X1: 1, Bottom: 2}, ws[3].Rect)
}

func TestSheetPixelRect(t *testing.T) {
	s := testSheet(t, [][]string{
		{"a", "b"},
		{"c", "d"},
	})

	m := annotate.Match{Rect: geom.Rect{X0: 1, Top: 1, X1: 1, Bottom: 1}}
	got, err := s.PixelRect(m)
	require.NoError(t, err)

	want := image.Rect(
		s.layout.ColWidths[0], s.layout.RowHeights[0],
		s.layout.ColWidths[0]+s.layout.ColWidths[1],
		s.layout.RowHeights[0]+s.layout.RowHeights[1],
	)
	assert.Equal(t, want, got)
}

func TestSheetRasterizeDimensions(t *testing.T) {
	s := testSheet(t, [][]string{{"only cell"}})
	img, err := s.Rasterize()
	require.NoError(t, err)

	w, h := s.layout.ImageSize()
	assert.Equal(t, image.Rect(0, 0, w, h), img.Bounds())
}

func TestSheetAnnotateNative(t *testing.T) {
	s := testSheet(t, [][]string{{"hit", "miss"}})
	out := filepath.Join(t.TempDir(), "sheet_0_annot_native.png")

	matches := []annotate.Match{{Rect: geom.Rect{X0: 0, Top: 0, X1: 0, Bottom: 0}}}
	require.NoError(t, s.AnnotateNative(matches, out))

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)

	// Matched cell border is in the stroke color (red by default).
	r, g, b, _ := img.At(0, 0).RGBA()
	assert.Equal(t, []uint32{0xffff, 0, 0}, []uint32{r, g, b})
	// Unmatched grid lines stay black: sample the second cell's top edge.
	r, g, b, _ = img.At(s.layout.ColWidths[0]+10, 0).RGBA()
	assert.Equal(t, []uint32{0, 0, 0}, []uint32{r, g, b})
}

package sheetdoc

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/halldor/annotar/pkg/annotate"
	"github.com/halldor/annotar/pkg/boxdraw"
	"github.com/halldor/annotar/pkg/geom"
)

// sheet is one worksheet exposed as a renderable unit. Its native
// coordinate space is discrete: a match rect carries (column, row) indices
// that map through the sheet's grid layout.
type sheet struct {
	index    int
	name     string
	rows     [][]string
	layout   geom.GridLayout
	colChars []int

	stroke      color.RGBA
	strokeWidth int
}

func newSheet(index int, name string, rows [][]string, cfg annotate.Config) (*sheet, error) {
	stroke, err := cfg.Stroke()
	if err != nil {
		return nil, err
	}
	layout, colChars := buildLayout(rows)
	return &sheet{
		index:       index,
		name:        name,
		rows:        rows,
		layout:      layout,
		colChars:    colChars,
		stroke:      stroke,
		strokeWidth: cfg.StrokeWidth,
	}, nil
}

func (s *sheet) Index() int { return s.index }

// words returns one positioned word per populated cell. The rect stores
// the cell's column/row indices, not pixels.
func (s *sheet) words() []annotate.Word {
	var ws []annotate.Word
	for r, row := range s.rows {
		for c, val := range row {
			if strings.TrimSpace(val) == "" {
				continue
			}
			ws = append(ws, annotate.Word{
				Text: val,
				Rect: geom.Rect{
					X0: float64(c), Top: float64(r),
					X1: float64(c), Bottom: float64(r),
				},
			})
		}
	}
	return ws
}

func (s *sheet) Rasterize() (draw.Image, error) {
	return s.render(nil), nil
}

func (s *sheet) PixelRect(m annotate.Match) (image.Rectangle, error) {
	return s.layout.CellBox(int(m.Rect.Top), int(m.Rect.X0))
}

// AnnotateNative re-renders the sheet with the matched cell borders drawn
// by the sheet renderer itself, in the stroke color, and persists the
// result as a diagnostic raster.
func (s *sheet) AnnotateNative(matches []annotate.Match, outPath string) error {
	highlight := make(map[[2]int]bool, len(matches))
	for _, m := range matches {
		highlight[[2]int{int(m.Rect.Top), int(m.Rect.X0)}] = true
	}
	img := s.render(highlight)

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create native raster: %w", err)
	}
	defer f.Close()
	return png.Encode(f, img)
}

// render draws the cell grid and wrapped, centered cell text. Cells present
// in highlight get their border drawn in the stroke color instead of black.
func (s *sheet) render(highlight map[[2]int]bool) draw.Image {
	w, h := s.layout.ImageSize()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	black := color.RGBA{A: 255}
	face := basicfont.Face7x13

	y := 0
	for r, rh := range s.layout.RowHeights {
		x := 0
		for c, cw := range s.layout.ColWidths {
			cell := image.Rect(x, y, x+cw, y+rh)
			if highlight[[2]int{r, c}] {
				boxdraw.Box(img, cell, s.stroke, s.strokeWidth)
			} else {
				boxdraw.Box(img, cell, black, 1)
			}

			if r < len(s.rows) && c < len(s.rows[r]) && strings.TrimSpace(s.rows[r][c]) != "" {
				s.drawCellText(img, face, cell, s.rows[r][c], s.colChars[c])
			}
			x += cw
		}
		y += rh
	}
	return img
}

func (s *sheet) drawCellText(img draw.Image, face *basicfont.Face, cell image.Rectangle, text string, widthChars int) {
	lines := wrapText(text, widthChars)
	lineH := lineHeightPx + lineSpacingPx
	totalH := len(lines) * lineH

	ty := cell.Min.Y + (cell.Dy()-totalH)/2
	if ty < cell.Min.Y+lineSpacingPx {
		ty = cell.Min.Y + lineSpacingPx
	}

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.RGBA{A: 255}),
		Face: face,
	}
	for _, line := range lines {
		tw := len([]rune(line)) * charPx
		tx := cell.Min.X + (cell.Dx()-tw)/2
		if tx < cell.Min.X+lineSpacingPx {
			tx = cell.Min.X + lineSpacingPx
		}
		d.Dot = fixed.P(tx, ty+face.Ascent)
		d.DrawString(line)
		ty += lineH
	}
}

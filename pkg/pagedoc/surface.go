package pagedoc

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"

	"codeberg.org/go-pdf/fpdf"
	"github.com/gen2brain/go-fitz"

	"github.com/halldor/annotar/pkg/annotate"
	"github.com/halldor/annotar/pkg/geom"
)

// pageSurface is one PDF page exposed as a renderable unit. The raster
// dimensions depend on the renderer's DPI choice, so PixelRect is only
// valid once Rasterize has run and recorded them.
type pageSurface struct {
	fz      *fitz.Document
	index   int
	nativeW float64
	nativeH float64
	cfg     annotate.Config

	rasterW int
	rasterH int
}

func (s *pageSurface) Index() int { return s.index }

func (s *pageSurface) Rasterize() (draw.Image, error) {
	img, err := s.fz.ImageDPI(s.index, float64(s.cfg.DPI))
	if err != nil {
		return nil, fmt.Errorf("render page %d: %w", s.index, err)
	}
	s.rasterW = img.Bounds().Dx()
	s.rasterH = img.Bounds().Dy()
	return img, nil
}

func (s *pageSurface) PixelRect(m annotate.Match) (image.Rectangle, error) {
	return geom.MapRect(m.Rect, s.nativeW, s.nativeH, s.rasterW, s.rasterH)
}

// AnnotateNative draws the match rectangles as vector strokes in page point
// space: the plain raster is embedded into a single-page PDF together with
// stroked rects, and that page is rendered back to a raster for diagnostic
// parity with the fallback output.
func (s *pageSurface) AnnotateNative(matches []annotate.Match, outPath string) error {
	stroke, err := s.cfg.Stroke()
	if err != nil {
		return err
	}

	plain, err := s.fz.ImageDPI(s.index, float64(s.cfg.DPI))
	if err != nil {
		return fmt.Errorf("render page %d: %w", s.index, err)
	}
	var imgBuf bytes.Buffer
	if err := png.Encode(&imgBuf, plain); err != nil {
		return fmt.Errorf("encode page %d: %w", s.index, err)
	}

	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.AddPageFormat("P", fpdf.SizeType{Wd: s.nativeW, Ht: s.nativeH})

	opts := fpdf.ImageOptions{ImageType: "PNG"}
	name := fmt.Sprintf("page%d", s.index)
	pdf.RegisterImageOptionsReader(name, opts, &imgBuf)
	pdf.ImageOptions(name, 0, 0, s.nativeW, s.nativeH, false, opts, 0, "")

	pdf.SetDrawColor(int(stroke.R), int(stroke.G), int(stroke.B))
	pdf.SetLineWidth(float64(s.cfg.StrokeWidth))
	for _, m := range matches {
		pdf.Rect(m.Rect.X0, m.Rect.Top, m.Rect.Width(), m.Rect.Height(), "D")
	}

	var pdfBuf bytes.Buffer
	if err := pdf.Output(&pdfBuf); err != nil {
		return fmt.Errorf("assemble native page: %w", err)
	}

	native, err := fitz.NewFromMemory(pdfBuf.Bytes())
	if err != nil {
		return fmt.Errorf("reopen native page: %w", err)
	}
	defer native.Close()

	img, err := native.ImageDPI(0, float64(s.cfg.DPI))
	if err != nil {
		return fmt.Errorf("render native page: %w", err)
	}

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create native raster: %w", err)
	}
	defer f.Close()
	return png.Encode(f, img)
}

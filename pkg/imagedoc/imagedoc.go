// Package imagedoc is the annotation pipeline for single-image documents.
// An image carries no embedded text layer, so words and their boxes come
// from a WordSource: a local Tesseract engine, a remote Document AI
// processor, or a pre-computed hOCR sidecar file.
package imagedoc

import (
	"context"
	"fmt"
	"image"
	"image/draw"
	"os"
	"path/filepath"
	"strings"

	_ "image/jpeg"
	_ "image/png"

	"github.com/halldor/annotar/pkg/annotate"
	"github.com/halldor/annotar/pkg/geom"
)

// WordSource produces positioned words for an image file. Coordinates are
// pixels in the image's own space.
type WordSource interface {
	Words(ctx context.Context, imagePath string) ([]annotate.Word, error)
}

// Pipeline annotates standalone raster images. The document is its own
// single unit.
type Pipeline struct {
	aggregator *annotate.Aggregator
	source     WordSource
}

// New creates the image pipeline. The word source is resolved from the
// config at run time.
func New(agg *annotate.Aggregator) *Pipeline {
	return &Pipeline{aggregator: agg}
}

// NewWithSource creates the image pipeline with a fixed word source,
// bypassing config-based resolution.
func NewWithSource(agg *annotate.Aggregator, src WordSource) *Pipeline {
	return &Pipeline{aggregator: agg, source: src}
}

// Run recognizes words in the image, locates query matches, and renders the
// annotated raster plus the single-page combined PDF. With only one unit
// there is nothing to contain a failure to, so recognition and rendering
// errors are fatal.
func (p *Pipeline) Run(ctx context.Context, path, query string, cfg annotate.Config) (*annotate.Result, error) {
	q := annotate.NormalizeQuery(query)
	if q == "" {
		return nil, annotate.ErrEmptyQuery
	}

	src := p.source
	if src == nil {
		var err error
		src, err = resolveSource(cfg.OCR)
		if err != nil {
			return nil, err
		}
	}

	surface, err := openImage(path)
	if err != nil {
		return nil, err
	}

	words, err := src.Words(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("recognize %s: %w", path, err)
	}

	matches := annotate.FindMatches(0, words, q)
	cfg.Log().Info("image scanned", "path", path, "words", len(words), "matches", len(matches))

	if err := annotate.EnsureOutDir(cfg.OutDir); err != nil {
		return nil, err
	}

	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	unit, err := annotate.RenderUnit(surface, matches,
		filepath.Join(cfg.OutDir, stem+"_annot.png"), cfg)
	if err != nil {
		return nil, &annotate.RenderError{Unit: 0, Err: err}
	}

	result := &annotate.Result{}
	var rendered []annotate.RenderedUnit
	if unit != nil {
		result.UnitPaths = append(result.UnitPaths, unit.Path)
		rendered = append(rendered, *unit)
	}

	combined, err := p.aggregator.Combine(rendered,
		filepath.Join(cfg.OutDir, "annotated_combined.pdf"))
	if err != nil {
		return result, err
	}
	result.CombinedPath = combined
	return result, nil
}

// resolveSource picks the word source per the OCR config: an hOCR sidecar
// when one is given, otherwise the named backend.
func resolveSource(cfg annotate.OCRConfig) (WordSource, error) {
	if cfg.HOCRPath != "" {
		return &sidecarSource{path: cfg.HOCRPath}, nil
	}
	switch cfg.Backend {
	case "", "tesseract":
		return &tesseractSource{languages: cfg.Languages}, nil
	case "docai":
		return &docaiSource{cfg: cfg.DocAI}, nil
	default:
		return nil, fmt.Errorf("unknown ocr backend %q", cfg.Backend)
	}
}

// imageSurface wraps a decoded image. Word coordinates are already pixels,
// so the native and raster spaces coincide.
type imageSurface struct {
	img    draw.Image
	bounds image.Rectangle
}

func openImage(path string) (*imageSurface, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image %s: %w", path, err)
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode image %s: %w", path, err)
	}

	rgba := image.NewRGBA(src.Bounds())
	draw.Draw(rgba, rgba.Bounds(), src, src.Bounds().Min, draw.Src)
	return &imageSurface{img: rgba, bounds: rgba.Bounds()}, nil
}

func (s *imageSurface) Index() int { return 0 }

func (s *imageSurface) Rasterize() (draw.Image, error) { return s.img, nil }

func (s *imageSurface) PixelRect(m annotate.Match) (image.Rectangle, error) {
	w, h := s.bounds.Dx(), s.bounds.Dy()
	return geom.MapRect(m.Rect, float64(w), float64(h), w, h)
}

// Package pagedoc is the annotation pipeline for page-oriented documents:
// fixed-layout PDFs whose units are pages with positioned text runs.
//
// Text runs and page dimensions come from the PDF reader; rasters come from
// an independent renderer at the configured DPI. Match rectangles live in
// page point space with a top-down Y axis and are projected into raster
// pixel space by uniform scaling.
package pagedoc

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/gen2brain/go-fitz"
	"github.com/tsawler/tabula/reader"
	"github.com/tsawler/tabula/text"

	"github.com/halldor/annotar/pkg/annotate"
	"github.com/halldor/annotar/pkg/geom"
)

// Pipeline annotates PDF documents page by page.
type Pipeline struct {
	aggregator *annotate.Aggregator
}

// New creates the page pipeline with its aggregator dependency.
func New(agg *annotate.Aggregator) *Pipeline {
	return &Pipeline{aggregator: agg}
}

// Run locates query matches on every page, renders annotated page rasters,
// and combines them into one PDF. Per-page failures are logged and skipped;
// only document-open and aggregation failures are fatal.
func (p *Pipeline) Run(ctx context.Context, path, query string, cfg annotate.Config) (*annotate.Result, error) {
	q := annotate.NormalizeQuery(query)
	if q == "" {
		return nil, annotate.ErrEmptyQuery
	}

	r, err := reader.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open document %s: %w", path, err)
	}
	defer r.Close()

	fz, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("open renderer for %s: %w", path, err)
	}
	defer fz.Close()

	if err := annotate.EnsureOutDir(cfg.OutDir); err != nil {
		return nil, err
	}

	count, err := r.PageCount()
	if err != nil {
		return nil, fmt.Errorf("page count: %w", err)
	}

	log := cfg.Log()

	var surfaces []annotate.Surface
	matchesByIndex := make(map[int][]annotate.Match)

	for i := 0; i < count; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		s, matches, err := p.scanPage(r, fz, i, q, cfg)
		if err != nil {
			log.Error("page skipped", "page", i,
				"error", &annotate.RenderError{Unit: i, Err: err})
			continue
		}
		log.Info("page scanned", "page", i, "matches", len(matches))
		surfaces = append(surfaces, s)
		matchesByIndex[i] = matches
	}

	rendered := annotate.RenderAll(surfaces, matchesByIndex, func(i int) string {
		return filepath.Join(cfg.OutDir, fmt.Sprintf("page_%d_annot.png", i))
	}, cfg)

	result := &annotate.Result{}
	for _, u := range rendered {
		result.UnitPaths = append(result.UnitPaths, u.Path)
	}

	combined, err := p.aggregator.Combine(rendered,
		filepath.Join(cfg.OutDir, "annotated_combined.pdf"))
	if err != nil {
		return result, err
	}
	result.CombinedPath = combined
	return result, nil
}

// scanPage extracts one page's dimensions and text runs and locates the
// query matches on it.
func (p *Pipeline) scanPage(r *reader.Reader, fz *fitz.Document, index int, query string, cfg annotate.Config) (annotate.Surface, []annotate.Match, error) {
	page, err := r.GetPage(index)
	if err != nil {
		return nil, nil, fmt.Errorf("get page: %w", err)
	}
	w, err := page.Width()
	if err != nil {
		return nil, nil, fmt.Errorf("page width: %w", err)
	}
	h, err := page.Height()
	if err != nil {
		return nil, nil, fmt.Errorf("page height: %w", err)
	}
	if w <= 0 || h <= 0 {
		return nil, nil, fmt.Errorf("page dimensions %gx%g: %w", w, h, annotate.ErrInvalidGeometry)
	}

	frags, err := r.ExtractTextFragments(page)
	if err != nil {
		return nil, nil, fmt.Errorf("extract text: %w", err)
	}

	matches := annotate.FindMatches(index, wordsFromFragments(frags, h), query)
	s := &pageSurface{
		fz:      fz,
		index:   index,
		nativeW: w,
		nativeH: h,
		cfg:     cfg,
	}
	return s, matches, nil
}

// wordsFromFragments converts extracted text runs into positioned words.
// Fragment coordinates use the PDF bottom-left origin; match rectangles use
// a top-down axis, so the vertical extent is flipped against the page
// height.
func wordsFromFragments(frags []text.TextFragment, pageH float64) []annotate.Word {
	words := make([]annotate.Word, 0, len(frags))
	for _, f := range frags {
		words = append(words, annotate.Word{
			Text: f.Text,
			Rect: geom.NewRect(
				f.X,
				pageH-(f.Y+f.Height),
				f.X+f.Width,
				pageH-f.Y,
			),
		})
	}
	return words
}

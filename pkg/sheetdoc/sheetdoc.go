// Package sheetdoc is the annotation pipeline for grid-oriented documents:
// spreadsheet workbooks whose units are sheets of cells.
//
// Each sheet is rendered to a raster sized by heuristic, content-derived
// column widths and row heights; a match's native coordinates are the cell's
// row/column indices, mapped to pixels through cumulative offsets. Besides
// the per-sheet rasters and the combined PDF, the pipeline writes a copy of
// the workbook with matched cells marked structurally (red border, wrapped
// text).
package sheetdoc

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/halldor/annotar/pkg/annotate"
)

// Pipeline annotates .xlsx workbooks sheet by sheet.
type Pipeline struct {
	aggregator *annotate.Aggregator
}

// New creates the grid pipeline with its aggregator dependency.
func New(agg *annotate.Aggregator) *Pipeline {
	return &Pipeline{aggregator: agg}
}

// Run locates query matches in every sheet, renders annotated sheet
// rasters, writes the structurally marked workbook copy, and combines the
// rasters into one PDF. Per-sheet failures are logged and skipped; only a
// workbook-open failure or an aggregation failure is fatal.
func (p *Pipeline) Run(ctx context.Context, path, query string, cfg annotate.Config) (*annotate.Result, error) {
	q := annotate.NormalizeQuery(query)
	if q == "" {
		return nil, annotate.ErrEmptyQuery
	}

	wb, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer wb.Close()

	if err := annotate.EnsureOutDir(cfg.OutDir); err != nil {
		return nil, err
	}

	log := cfg.Log()

	var surfaces []annotate.Surface
	matchesByIndex := make(map[int][]annotate.Match)
	matchesBySheet := make(map[string][]annotate.Match)

	for i, name := range wb.GetSheetList() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rows, err := wb.GetRows(name)
		if err != nil {
			log.Error("sheet skipped", "sheet", name,
				"error", &annotate.RenderError{Unit: i, Err: err})
			continue
		}
		s, err := newSheet(i, name, rows, cfg)
		if err != nil {
			return nil, err
		}

		matches := annotate.FindMatches(i, s.words(), q)
		log.Info("sheet scanned", "sheet", name, "matches", len(matches))

		surfaces = append(surfaces, s)
		matchesByIndex[i] = matches
		matchesBySheet[name] = matches
	}

	rendered := annotate.RenderAll(surfaces, matchesByIndex, func(i int) string {
		return filepath.Join(cfg.OutDir, fmt.Sprintf("sheet_%d_annot.png", i))
	}, cfg)

	result := &annotate.Result{}
	for _, u := range rendered {
		result.UnitPaths = append(result.UnitPaths, u.Path)
	}

	// The marked workbook copy is a secondary output; losing it does not
	// abort the run.
	marked, err := markWorkbook(path, cfg.OutDir, matchesBySheet)
	if err != nil {
		log.Warn("marked workbook copy not written", "error", err)
	} else {
		result.Extras = append(result.Extras, marked)
	}

	combined, err := p.aggregator.Combine(rendered,
		filepath.Join(cfg.OutDir, "annotated_combined.pdf"))
	if err != nil {
		return result, err
	}
	result.CombinedPath = combined
	return result, nil
}

// Package annotate implements the core of the query-highlighting pipeline:
// locating matches of a text query inside a document, drawing a rectangle
// around each match on a rasterized rendering of the owning unit, and
// merging the per-unit rasters, in unit-index order, into one combined
// multi-page PDF.
//
// The package is format-agnostic. A format-specific pipeline (see
// pkg/pagedoc, pkg/sheetdoc, pkg/imagedoc) opens its document kind, exposes
// each unit as a Surface, and drives the shared lifecycle:
//
//	FindMatches -> RenderUnit -> Aggregator.Combine
//
// Rendering is dual-strategy. The manual fallback path (rasterize, map
// native rectangles to pixels, draw inflated outlines) is always executed
// and is the canonical output. When a Surface also implements
// NativeAnnotator, the native path is attempted opportunistically and only
// persists a diagnostic raster; its failure is logged and discarded.
//
// Per-unit failures never abort a run. Only document-open failures and
// combined-artifact failures propagate to the caller; an empty result is
// success with no matches, not an error.
package annotate

import (
	"context"
	"fmt"
)

// Result is what a pipeline run produced: the ordered per-unit raster
// paths, the combined artifact path (empty when no unit produced output),
// and any format-specific extra outputs such as a structurally marked
// workbook copy.
type Result struct {
	UnitPaths    []string
	CombinedPath string
	Extras       []string
}

// Pipeline orchestrates match location, unit rendering, and aggregation
// for one document kind.
type Pipeline interface {
	Run(ctx context.Context, path, query string, cfg Config) (*Result, error)
}

// Registry maps document kinds to their pipelines. It is populated once at
// process start; there is no runtime handler discovery.
type Registry struct {
	pipelines map[Kind]Pipeline
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{pipelines: make(map[Kind]Pipeline)}
}

// Register binds a pipeline to a document kind, replacing any previous one.
func (r *Registry) Register(kind Kind, p Pipeline) {
	r.pipelines[kind] = p
}

// Lookup returns the pipeline registered for kind.
func (r *Registry) Lookup(kind Kind) (Pipeline, bool) {
	p, ok := r.pipelines[kind]
	return p, ok
}

// Run detects the document kind from the path, validates the query, and
// dispatches to the registered pipeline.
func (r *Registry) Run(ctx context.Context, path, query string, cfg Config) (*Result, error) {
	if NormalizeQuery(query) == "" {
		return nil, ErrEmptyQuery
	}
	kind := DetectKind(path)
	p, ok := r.pipelines[kind]
	if !ok {
		return nil, fmt.Errorf("unsupported document kind %q for %s", kind, path)
	}
	return p.Run(ctx, path, query, cfg)
}

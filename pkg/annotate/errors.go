package annotate

import (
	"errors"
	"fmt"

	"github.com/halldor/annotar/pkg/geom"
)

// ErrInvalidGeometry reports a degenerate rectangle or unit dimension.
// It is fatal for the affected unit's mapping step only.
var ErrInvalidGeometry = geom.ErrInvalidGeometry

// ErrEmptyQuery is returned by pipeline entry points when the query is empty
// after trimming. Match location itself assumes a non-empty, normalized query.
var ErrEmptyQuery = errors.New("query is empty")

// ErrNoConverter is returned when a document kind needs an external format
// converter and none is available on the system.
var ErrNoConverter = errors.New("no document converter available")

// RenderError wraps a rasterization or drawing failure for a single unit.
// Pipelines catch it, log it, and continue with the remaining units.
type RenderError struct {
	Unit int
	Err  error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render unit %d: %v", e.Unit, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

// AggregationError reports that a persisted raster could not be reopened
// while building the combined artifact. It is fatal for the combined
// artifact only; per-unit rasters already written remain on disk.
type AggregationError struct {
	Path string
	Err  error
}

func (e *AggregationError) Error() string {
	return fmt.Sprintf("aggregate %s: %v", e.Path, e.Err)
}

func (e *AggregationError) Unwrap() error { return e.Err }

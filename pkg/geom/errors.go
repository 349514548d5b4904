package geom

import "errors"

// ErrInvalidGeometry reports a degenerate rectangle or unit dimension.
// Callers are expected to guarantee positive native dimensions upstream;
// hitting this error skips the affected unit, not the whole run.
var ErrInvalidGeometry = errors.New("invalid geometry")

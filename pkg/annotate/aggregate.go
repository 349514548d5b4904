package annotate

import (
	"bytes"
	"fmt"
	"image"
	"os"
	"sort"
	"strings"

	"codeberg.org/go-pdf/fpdf"

	// Raster pages are written as PNG; JPEG is accepted for completeness.
	_ "image/jpeg"
	_ "image/png"
)

// Aggregator merges per-unit rasters into one combined multi-page PDF.
// It is passed explicitly into each pipeline rather than reached through
// shared state.
type Aggregator struct{}

// NewAggregator returns an Aggregator.
func NewAggregator() *Aggregator { return &Aggregator{} }

// Combine sorts the rendered units by ascending unit index and serializes
// their rasters as sequential pages of one PDF written to outPath. Each
// page takes the pixel dimensions of its raster, one point per pixel.
//
// An empty input is a valid "no visual output" outcome: no file is created
// and the returned path is empty. Any raster that cannot be read back is
// fatal for the whole aggregation; no partial artifact is produced.
func (a *Aggregator) Combine(units []RenderedUnit, outPath string) (string, error) {
	if len(units) == 0 {
		return "", nil
	}

	ordered := orderUnits(units)

	pdf := fpdf.New("P", "pt", "A4", "")

	for _, unit := range ordered {
		data, err := os.ReadFile(unit.Path)
		if err != nil {
			return "", &AggregationError{Path: unit.Path, Err: err}
		}
		// A full decode catches rasters whose header parses but whose body
		// is truncated or corrupt; such bytes must never reach fpdf.
		img, format, err := image.Decode(bytes.NewReader(data))
		if err != nil {
			return "", &AggregationError{Path: unit.Path, Err: err}
		}

		bounds := img.Bounds()
		w, h := float64(bounds.Dx()), float64(bounds.Dy())
		pdf.AddPageFormat("P", fpdf.SizeType{Wd: w, Ht: h})

		name := fmt.Sprintf("unit%d", unit.Index)
		opts := fpdf.ImageOptions{ImageType: strings.ToUpper(format)}
		pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(data))
		pdf.ImageOptions(name, 0, 0, w, h, false, opts, 0, "")
		if err := pdf.Error(); err != nil {
			return "", &AggregationError{Path: unit.Path, Err: err}
		}
	}

	// Assemble in memory so a failure never leaves a partial artifact.
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return "", &AggregationError{Path: outPath, Err: err}
	}
	if err := os.WriteFile(outPath, buf.Bytes(), 0o644); err != nil {
		return "", &AggregationError{Path: outPath, Err: err}
	}
	return outPath, nil
}

// orderUnits returns a copy of units sorted by ascending unit index.
// Indices are unique, so the order is total.
func orderUnits(units []RenderedUnit) []RenderedUnit {
	ordered := make([]RenderedUnit, len(units))
	copy(ordered, units)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Index < ordered[j].Index })
	return ordered
}

package annotate

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"
	"strings"

	"github.com/halldor/annotar/pkg/boxdraw"
)

// Surface is one renderable unit of a document: a page, a sheet, or a
// standalone image. Rasterize produces a fresh plain raster at the
// configured resolution; PixelRect maps a match's native rectangle into
// that raster's pixel space and is only meaningful after Rasterize.
type Surface interface {
	Index() int
	Rasterize() (draw.Image, error)
	PixelRect(m Match) (image.Rectangle, error)
}

// NativeAnnotator is an optional Surface capability: the underlying
// document library can draw the annotations on its own rendering surface.
// The native output is persisted for diagnostic parity only; the manual
// fallback raster remains the canonical result, and a native failure never
// affects it.
type NativeAnnotator interface {
	AnnotateNative(matches []Match, outPath string) error
}

// RenderedUnit records the canonical annotated raster written for one unit.
type RenderedUnit struct {
	Index       int
	Path        string
	Annotations int
}

// RenderUnit runs one unit through the rendering lifecycle: rasterize, draw
// each match through the coordinate mapper and box renderer, persist the
// result as outPath, then opportunistically attempt the native path.
//
// A unit with no matches is skipped entirely unless ForceRender is set, in
// which case the plain raster is persisted with zero annotations. The
// returned RenderedUnit is nil when the unit was skipped.
func RenderUnit(s Surface, matches []Match, outPath string, cfg Config) (*RenderedUnit, error) {
	if len(matches) == 0 && !cfg.ForceRender {
		return nil, nil
	}

	stroke, err := cfg.Stroke()
	if err != nil {
		return nil, err
	}

	img, err := s.Rasterize()
	if err != nil {
		return nil, fmt.Errorf("rasterize: %w", err)
	}

	for _, m := range matches {
		rect, err := s.PixelRect(m)
		if err != nil {
			return nil, err
		}
		boxdraw.Box(img, rect, stroke, cfg.StrokeWidth)
	}

	if err := writePNG(outPath, img); err != nil {
		return nil, err
	}

	if na, ok := s.(NativeAnnotator); ok {
		nativePath := nativeVariant(outPath)
		if err := na.AnnotateNative(matches, nativePath); err != nil {
			cfg.Log().Warn("native annotation failed, keeping fallback output",
				"unit", s.Index(), "error", err)
		}
	}

	return &RenderedUnit{
		Index:       s.Index(),
		Path:        outPath,
		Annotations: len(matches),
	}, nil
}

// RenderAll runs every surface through RenderUnit in index order. A unit
// that fails to render is logged and omitted from the result; the run
// continues with the remaining units. Skipped units (no matches, no
// force-render) are omitted silently.
func RenderAll(surfaces []Surface, matches map[int][]Match, pathFor func(index int) string, cfg Config) []RenderedUnit {
	var rendered []RenderedUnit
	for _, s := range surfaces {
		idx := s.Index()
		unit, err := RenderUnit(s, matches[idx], pathFor(idx), cfg)
		if err != nil {
			cfg.Log().Error("unit skipped", "unit", idx, "error", &RenderError{Unit: idx, Err: err})
			continue
		}
		if unit != nil {
			rendered = append(rendered, *unit)
		}
	}
	return rendered
}

// nativeVariant derives the diagnostic raster path from the canonical one,
// e.g. page_0_annot.png -> page_0_annot_native.png.
func nativeVariant(path string) string {
	if i := strings.LastIndex(path, "."); i > 0 {
		return path[:i] + "_native" + path[i:]
	}
	return path + "_native"
}

// EnsureOutDir creates the pipeline output directory if needed.
func EnsureOutDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir %s: %w", dir, err)
	}
	return nil
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create raster %s: %w", path, err)
	}

	if err := png.Encode(f, img); err != nil {
		// A truncated raster must not survive to be picked up by the
		// aggregation step.
		f.Close()
		os.Remove(path)
		return fmt.Errorf("encode raster %s: %w", path, err)
	}
	return f.Close()
}

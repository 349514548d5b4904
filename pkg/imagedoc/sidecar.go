package imagedoc

import (
	"context"
	"fmt"
	"os"

	"github.com/halldor/annotar/pkg/annotate"
	"github.com/halldor/annotar/pkg/geom"
	"github.com/halldor/annotar/pkg/hocr"
)

// sidecarSource reads words from a pre-computed hOCR file instead of running
// OCR. Useful when the image was already recognized by an external engine.
type sidecarSource struct {
	path string
}

func (s *sidecarSource) Words(ctx context.Context, imagePath string) ([]annotate.Word, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read hocr sidecar: %w", err)
	}
	pages, err := hocr.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse hocr sidecar %s: %w", s.path, err)
	}

	var words []annotate.Word
	for _, page := range pages {
		for _, w := range page.Words {
			if w.Text == "" {
				continue
			}
			words = append(words, annotate.Word{
				Text: w.Text,
				Rect: geom.Rect{
					X0:     w.BBox.X1,
					Top:    w.BBox.Y1,
					X1:     w.BBox.X2,
					Bottom: w.BBox.Y2,
				},
			})
		}
	}
	return words, nil
}

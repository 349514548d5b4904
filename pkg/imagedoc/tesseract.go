package imagedoc

import (
	"context"
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"github.com/halldor/annotar/pkg/annotate"
	"github.com/halldor/annotar/pkg/geom"
)

// tesseractSource recognizes words with a local Tesseract installation
// through gosseract. A fresh client is created per call; gosseract clients
// are not safe for reuse across images.
type tesseractSource struct {
	languages []string
}

func (t *tesseractSource) Words(ctx context.Context, imagePath string) ([]annotate.Word, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetImage(imagePath); err != nil {
		return nil, fmt.Errorf("set image: %w", err)
	}
	if len(t.languages) > 0 {
		if err := client.SetLanguage(t.languages...); err != nil {
			return nil, fmt.Errorf("set languages: %w", err)
		}
	}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return nil, fmt.Errorf("bounding boxes: %w", err)
	}

	words := make([]annotate.Word, 0, len(boxes))
	for _, b := range boxes {
		text := strings.TrimSpace(b.Word)
		if text == "" {
			continue
		}
		words = append(words, annotate.Word{
			Text: text,
			Rect: geom.Rect{
				X0:     float64(b.Box.Min.X),
				Top:    float64(b.Box.Min.Y),
				X1:     float64(b.Box.Max.X),
				Bottom: float64(b.Box.Max.Y),
			},
		})
	}
	return words, nil
}

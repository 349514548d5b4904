package imagedoc

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	documentai "cloud.google.com/go/documentai/apiv1"
	"cloud.google.com/go/documentai/apiv1/documentaipb"
	"google.golang.org/api/option"

	"github.com/halldor/annotar/pkg/annotate"
	"github.com/halldor/annotar/pkg/geom"
)

// docaiSource recognizes words with a Google Document AI OCR processor.
// Credentials come from GOOGLE_APPLICATION_CREDENTIALS.
type docaiSource struct {
	cfg annotate.DocAIConfig
}

func (d *docaiSource) Words(ctx context.Context, imagePath string) ([]annotate.Word, error) {
	content, err := os.ReadFile(imagePath)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}

	endpoint := fmt.Sprintf("%s-documentai.googleapis.com:443", d.cfg.Location)
	client, err := documentai.NewDocumentProcessorClient(
		ctx,
		option.WithEndpoint(endpoint),
		option.WithCredentialsFile(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Document AI client: %w", err)
	}
	defer client.Close()

	name := fmt.Sprintf(
		"projects/%s/locations/%s/processors/%s",
		d.cfg.ProjectID, d.cfg.Location, d.cfg.ProcessorID,
	)

	req := &documentaipb.ProcessRequest{
		Name: name,
		Source: &documentaipb.ProcessRequest_RawDocument{
			RawDocument: &documentaipb.RawDocument{
				Content:  content,
				MimeType: mimeTypeFor(imagePath),
			},
		},
		SkipHumanReview: true,
	}

	resp, err := client.ProcessDocument(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to process document: %w", err)
	}

	return wordsFromDocument(resp.Document), nil
}

// wordsFromDocument flattens the token layer of a Document AI response into
// positioned words, scaling normalized vertices to page pixel dimensions.
func wordsFromDocument(doc *documentaipb.Document) []annotate.Word {
	if doc == nil {
		return nil
	}
	var words []annotate.Word
	for _, page := range doc.Pages {
		for _, token := range page.Tokens {
			text := strings.TrimSpace(textFromLayout(token.Layout, doc.Text))
			if text == "" {
				continue
			}
			rect, ok := rectFromLayout(token.Layout, page.Dimension)
			if !ok {
				continue
			}
			words = append(words, annotate.Word{Text: text, Rect: rect})
		}
	}
	return words
}

// textFromLayout extracts text from a layout's text anchor segments.
func textFromLayout(layout *documentaipb.Document_Page_Layout, fullText string) string {
	if layout == nil || layout.TextAnchor == nil {
		return ""
	}
	runes := []rune(fullText)
	result := strings.Builder{}
	totalRunes := len(runes)

	for _, seg := range layout.TextAnchor.TextSegments {
		start := int(seg.StartIndex)
		end := int(seg.EndIndex)
		if start < 0 {
			start = 0
		}
		if end > totalRunes {
			end = totalRunes
		}
		if start > end {
			start = end
		}
		result.WriteString(string(runes[start:end]))
	}
	return result.String()
}

// rectFromLayout converts normalized vertices (0-1) to pixel coordinates
// using the page dimension.
func rectFromLayout(layout *documentaipb.Document_Page_Layout, dim *documentaipb.Document_Page_Dimension) (geom.Rect, bool) {
	if layout == nil || layout.BoundingPoly == nil || dim == nil ||
		len(layout.BoundingPoly.NormalizedVertices) < 4 {
		return geom.Rect{}, false
	}
	v := layout.BoundingPoly.NormalizedVertices
	return geom.NewRect(
		float64(v[0].X)*float64(dim.Width),
		float64(v[0].Y)*float64(dim.Height),
		float64(v[2].X)*float64(dim.Width),
		float64(v[2].Y)*float64(dim.Height),
	), true
}

func mimeTypeFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	default:
		return "application/octet-stream"
	}
}

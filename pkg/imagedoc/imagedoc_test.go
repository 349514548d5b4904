package imagedoc

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halldor/annotar/pkg/annotate"
	"github.com/halldor/annotar/pkg/geom"
)

type fakeSource struct {
	words []annotate.Word
	err   error
}

func (f *fakeSource) Words(ctx context.Context, imagePath string) ([]annotate.Word, error) {
	return f.words, f.err
}

func writeTestImage(t *testing.T, dir string) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 200, 100))
	for y := 0; y < 100; y++ {
		for x := 0; x < 200; x++ {
			img.Set(x, y, color.White)
		}
	}
	path := filepath.Join(dir, "scan.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

func TestPipelineRun(t *testing.T) {
	dir := t.TempDir()
	path := writeTestImage(t, dir)

	src := &fakeSource{words: []annotate.Word{
		{Text: "Invoice", Rect: geom.Rect{X0: 10, Top: 10, X1: 80, Bottom: 30}},
		{Text: "Total", Rect: geom.Rect{X0: 10, Top: 40, X1: 60, Bottom: 60}},
	}}

	cfg := annotate.DefaultConfig()
	cfg.OutDir = filepath.Join(dir, "out")

	result, err := NewWithSource(annotate.NewAggregator(), src).Run(
		context.Background(), path, "invoice", cfg)
	require.NoError(t, err)

	require.Len(t, result.UnitPaths, 1)
	assert.Equal(t, filepath.Join(cfg.OutDir, "scan_annot.png"), result.UnitPaths[0])
	assert.FileExists(t, result.UnitPaths[0])
	assert.FileExists(t, result.CombinedPath)
}

func TestPipelineNoMatch(t *testing.T) {
	dir := t.TempDir()
	path := writeTestImage(t, dir)

	src := &fakeSource{words: []annotate.Word{
		{Text: "Invoice", Rect: geom.Rect{X0: 10, Top: 10, X1: 80, Bottom: 30}},
	}}

	cfg := annotate.DefaultConfig()
	cfg.OutDir = filepath.Join(dir, "out")

	result, err := NewWithSource(annotate.NewAggregator(), src).Run(
		context.Background(), path, "receipt", cfg)
	require.NoError(t, err)
	assert.Empty(t, result.UnitPaths)
	assert.Empty(t, result.CombinedPath)
}

func TestPipelineRecognitionFailure(t *testing.T) {
	dir := t.TempDir()
	path := writeTestImage(t, dir)

	src := &fakeSource{err: errors.New("engine unavailable")}

	cfg := annotate.DefaultConfig()
	cfg.OutDir = filepath.Join(dir, "out")

	_, err := NewWithSource(annotate.NewAggregator(), src).Run(
		context.Background(), path, "invoice", cfg)
	assert.Error(t, err)
}

func TestPipelineEmptyQuery(t *testing.T) {
	_, err := New(annotate.NewAggregator()).Run(
		context.Background(), "scan.png", "  ", annotate.DefaultConfig())
	assert.ErrorIs(t, err, annotate.ErrEmptyQuery)
}

func TestResolveSource(t *testing.T) {
	src, err := resolveSource(annotate.OCRConfig{})
	require.NoError(t, err)
	assert.IsType(t, &tesseractSource{}, src)

	src, err = resolveSource(annotate.OCRConfig{Backend: "docai"})
	require.NoError(t, err)
	assert.IsType(t, &docaiSource{}, src)

	src, err = resolveSource(annotate.OCRConfig{Backend: "tesseract", HOCRPath: "words.hocr"})
	require.NoError(t, err)
	assert.IsType(t, &sidecarSource{}, src, "sidecar overrides backend")

	_, err = resolveSource(annotate.OCRConfig{Backend: "azure"})
	assert.Error(t, err)
}

func TestSidecarSource(t *testing.T) {
	dir := t.TempDir()
	doc := `<html><body>
<div class="ocr_page" id="page_1" title="bbox 0 0 200 100">
 <span class="ocrx_word" title="bbox 10 10 80 30; x_wconf 96">Invoice</span>
 <span class="ocrx_word" title="bbox 10 40 60 60; x_wconf 91">Total</span>
</div>
</body></html>`
	path := filepath.Join(dir, "scan.hocr")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	words, err := (&sidecarSource{path: path}).Words(context.Background(), "scan.png")
	require.NoError(t, err)
	require.Len(t, words, 2)
	assert.Equal(t, "Invoice", words[0].Text)
	assert.Equal(t, geom.Rect{X0: 10, Top: 10, X1: 80, Bottom: 30}, words[0].Rect)
}

func TestMimeTypeFor(t *testing.T) {
	assert.Equal(t, "image/png", mimeTypeFor("scan.PNG"))
	assert.Equal(t, "image/jpeg", mimeTypeFor("photo.jpg"))
	assert.Equal(t, "application/octet-stream", mimeTypeFor("doc.tiff"))
}

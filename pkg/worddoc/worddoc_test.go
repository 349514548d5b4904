package worddoc

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"codeberg.org/go-pdf/fpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halldor/annotar/pkg/annotate"
)

func TestRunEmptyQuery(t *testing.T) {
	_, err := New(annotate.NewAggregator()).Run(
		context.Background(), "doc.docx", "", annotate.DefaultConfig())
	assert.ErrorIs(t, err, annotate.ErrEmptyQuery)
}

func TestRunMissingDocument(t *testing.T) {
	cfg := annotate.DefaultConfig()
	cfg.OutDir = t.TempDir()

	_, err := New(annotate.NewAggregator()).Run(
		context.Background(), filepath.Join(cfg.OutDir, "absent.docx"), "report", cfg)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRunConversionFailure(t *testing.T) {
	dir := t.TempDir()
	docx := filepath.Join(dir, "doc.docx")
	require.NoError(t, os.WriteFile(docx, []byte("not a real docx"), 0o644))

	p := New(annotate.NewAggregator())
	p.convert = func(ctx context.Context, docxPath, outDir string) (string, error) {
		return "", annotate.ErrNoConverter
	}

	cfg := annotate.DefaultConfig()
	cfg.OutDir = filepath.Join(dir, "out")

	_, err := p.Run(context.Background(), docx, "report", cfg)
	assert.ErrorIs(t, err, annotate.ErrNoConverter)
}

func TestRunDelegatesToPagePipeline(t *testing.T) {
	dir := t.TempDir()
	docx := filepath.Join(dir, "doc.docx")
	require.NoError(t, os.WriteFile(docx, []byte("placeholder"), 0o644))

	// Stub the converter with one that writes a real PDF, so the run
	// exercises the page pipeline end to end.
	p := New(annotate.NewAggregator())
	p.convert = func(ctx context.Context, docxPath, outDir string) (string, error) {
		pdf := fpdf.New("P", "pt", "A4", "")
		pdf.SetFont("Helvetica", "", 14)
		pdf.AddPage()
		pdf.Text(100, 200, "Quarterly Report 2024")
		path := filepath.Join(outDir, "doc.pdf")
		return path, pdf.OutputFileAndClose(path)
	}

	cfg := annotate.DefaultConfig()
	cfg.OutDir = filepath.Join(dir, "out")

	result, err := p.Run(context.Background(), docx, "report", cfg)
	require.NoError(t, err)
	require.Len(t, result.UnitPaths, 1)
	assert.FileExists(t, result.UnitPaths[0])
	assert.FileExists(t, result.CombinedPath)

	// The intermediate PDF lives in a temp dir that is removed afterwards.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotEqual(t, "doc.pdf", e.Name())
	}
}

func TestFindConverterMissing(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	_, err := findConverter()
	assert.ErrorIs(t, err, annotate.ErrNoConverter)
}

func TestConversionFailureSurfacesOutput(t *testing.T) {
	if _, err := findConverter(); !errors.Is(err, annotate.ErrNoConverter) {
		t.Skip("a LibreOffice install is present")
	}
	_, err := docxToPDF(context.Background(), "doc.docx", t.TempDir())
	assert.ErrorIs(t, err, annotate.ErrNoConverter)
}

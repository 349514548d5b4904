package worddoc

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/halldor/annotar/pkg/annotate"
)

// converterNames are the LibreOffice binaries probed on the PATH, in order.
var converterNames = []string{"soffice", "libreoffice"}

// findConverter locates a LibreOffice binary, or returns ErrNoConverter.
func findConverter() (string, error) {
	for _, name := range converterNames {
		if path, err := exec.LookPath(name); err == nil {
			return path, nil
		}
	}
	return "", annotate.ErrNoConverter
}

// docxToPDF converts a .docx file to PDF in outDir using headless
// LibreOffice and returns the path of the produced PDF.
func docxToPDF(ctx context.Context, docxPath, outDir string) (string, error) {
	bin, err := findConverter()
	if err != nil {
		return "", err
	}

	cmd := exec.CommandContext(ctx, bin,
		"--headless", "--convert-to", "pdf", "--outdir", outDir, docxPath)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("convert %s: %w: %s", docxPath, err, strings.TrimSpace(string(out)))
	}

	stem := strings.TrimSuffix(filepath.Base(docxPath), filepath.Ext(docxPath))
	pdfPath := filepath.Join(outDir, stem+".pdf")
	if _, err := os.Stat(pdfPath); err != nil {
		return "", fmt.Errorf("converter produced no output for %s: %w", docxPath, err)
	}
	return pdfPath, nil
}

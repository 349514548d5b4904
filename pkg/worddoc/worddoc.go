// Package worddoc is the annotation pipeline for word-processor documents.
// A .docx file has no fixed page geometry of its own, so it is first
// converted to PDF with a LibreOffice installation found on the PATH, then
// handed to the page pipeline.
package worddoc

import (
	"context"
	"fmt"
	"os"

	"github.com/halldor/annotar/pkg/annotate"
	"github.com/halldor/annotar/pkg/pagedoc"
)

// Pipeline annotates .docx documents by converting them to PDF and
// delegating to the page pipeline.
type Pipeline struct {
	pages   *pagedoc.Pipeline
	convert convertFunc
}

type convertFunc func(ctx context.Context, docxPath, outDir string) (string, error)

// New creates the word-processor pipeline on top of a page pipeline.
func New(agg *annotate.Aggregator) *Pipeline {
	return &Pipeline{pages: pagedoc.New(agg), convert: docxToPDF}
}

// Run converts the document to a temporary PDF and runs the page pipeline
// on the result. The intermediate PDF is removed when the run finishes.
func (p *Pipeline) Run(ctx context.Context, path, query string, cfg annotate.Config) (*annotate.Result, error) {
	q := annotate.NormalizeQuery(query)
	if q == "" {
		return nil, annotate.ErrEmptyQuery
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("open document %s: %w", path, err)
	}

	tmpDir, err := os.MkdirTemp("", "annotar-convert-*")
	if err != nil {
		return nil, fmt.Errorf("create conversion dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	pdfPath, err := p.convert(ctx, path, tmpDir)
	if err != nil {
		return nil, err
	}

	cfg.Log().Info("document converted", "source", path, "pdf", pdfPath)
	return p.pages.Run(ctx, pdfPath, query, cfg)
}

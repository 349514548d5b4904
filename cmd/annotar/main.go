// Command annotar finds text matches in a document and produces annotated
// rasters plus a combined PDF.
//
// Usage:
//
//	annotar [flags] <document> <query>
//
// The document kind is detected from the file extension: .pdf, .xlsx/.xlsm,
// .png/.jpg/.jpeg, and .docx are supported.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/halldor/annotar/pkg/annotate"
	"github.com/halldor/annotar/pkg/imagedoc"
	"github.com/halldor/annotar/pkg/pagedoc"
	"github.com/halldor/annotar/pkg/sheetdoc"
	"github.com/halldor/annotar/pkg/worddoc"
)

var (
	flagConfig      string
	flagOut         string
	flagDPI         int
	flagStrokeWidth int
	flagColor       string
	flagForce       bool
	flagOCR         string
	flagLanguages   []string
	flagHOCR        string
)

var rootCmd = &cobra.Command{
	Use:   "annotar <document> <query>",
	Short: "Highlight text matches in documents",
	Long: `Finds case-insensitive matches of a query in a document, draws a
rectangle around each match on a rendering of the containing page, sheet,
or image, and combines the renderings into one multi-page PDF.`,
	Args: cobra.ExactArgs(2),
	RunE: runAnnotate,

	SilenceUsage: true,
}

func init() {
	rootCmd.Flags().StringVarP(&flagConfig, "config", "c", "", "YAML options file")
	rootCmd.Flags().StringVarP(&flagOut, "out", "o", "", "output directory")
	rootCmd.Flags().IntVar(&flagDPI, "dpi", 0, "raster resolution for PDF pages")
	rootCmd.Flags().IntVar(&flagStrokeWidth, "stroke-width", 0, "annotation outline width in pixels")
	rootCmd.Flags().StringVar(&flagColor, "color", "", "annotation color (name or hex)")
	rootCmd.Flags().BoolVar(&flagForce, "force-render", false, "render units even with zero matches")
	rootCmd.Flags().StringVar(&flagOCR, "ocr", "", "OCR backend for images: tesseract or docai")
	rootCmd.Flags().StringSliceVar(&flagLanguages, "lang", nil, "OCR languages")
	rootCmd.Flags().StringVar(&flagHOCR, "hocr", "", "hOCR sidecar file, skips OCR for images")
}

func runAnnotate(cmd *cobra.Command, args []string) error {
	path, query := args[0], args[1]

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	agg := annotate.NewAggregator()
	registry := annotate.NewRegistry()
	registry.Register(annotate.KindPage, pagedoc.New(agg))
	registry.Register(annotate.KindGrid, sheetdoc.New(agg))
	registry.Register(annotate.KindImage, imagedoc.New(agg))
	registry.Register(annotate.KindWord, worddoc.New(agg))

	result, err := registry.Run(cmd.Context(), path, query, cfg)
	if err != nil {
		return err
	}

	if len(result.UnitPaths) == 0 {
		cmd.Println("No matches found.")
		return nil
	}
	for _, p := range result.UnitPaths {
		cmd.Println(p)
	}
	for _, p := range result.Extras {
		cmd.Println(p)
	}
	if result.CombinedPath != "" {
		cmd.Println(result.CombinedPath)
	}
	return nil
}

// buildConfig layers the defaults, the optional config file, and any flags
// the user set, in that order.
func buildConfig() (annotate.Config, error) {
	cfg := annotate.DefaultConfig()
	if flagConfig != "" {
		var err error
		cfg, err = annotate.LoadConfig(flagConfig)
		if err != nil {
			return cfg, err
		}
	}

	if flagOut != "" {
		cfg.OutDir = flagOut
	}
	if flagDPI > 0 {
		cfg.DPI = flagDPI
	}
	if flagStrokeWidth > 0 {
		cfg.StrokeWidth = flagStrokeWidth
	}
	if flagColor != "" {
		cfg.StrokeColor = flagColor
	}
	if flagForce {
		cfg.ForceRender = true
	}
	if flagOCR != "" {
		cfg.OCR.Backend = flagOCR
	}
	if len(flagLanguages) > 0 {
		cfg.OCR.Languages = flagLanguages
	}
	if flagHOCR != "" {
		cfg.OCR.HOCRPath = flagHOCR
	}

	if _, err := cfg.Stroke(); err != nil {
		return cfg, fmt.Errorf("invalid stroke color: %w", err)
	}
	return cfg, nil
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

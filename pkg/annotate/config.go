package annotate

import (
	"fmt"
	"image/color"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/halldor/annotar/pkg/boxdraw"
)

// Config holds the options consumed by every pipeline.
type Config struct {
	DPI         int    `yaml:"dpi"`          // raster resolution for page-oriented units
	StrokeWidth int    `yaml:"stroke_width"` // annotation outline width in pixels
	StrokeColor string `yaml:"stroke_color"` // color name or hex value
	ForceRender bool   `yaml:"force_render"` // render units even with zero matches
	OutDir      string `yaml:"out_dir"`      // destination for rasters and the combined artifact

	OCR OCRConfig `yaml:"ocr"`

	Logger *slog.Logger `yaml:"-"`
}

// OCRConfig selects the word source used for single-image documents.
type OCRConfig struct {
	Backend   string      `yaml:"backend"` // "tesseract" (default) or "docai"
	Languages []string    `yaml:"languages"`
	HOCRPath  string      `yaml:"hocr_path"` // optional hOCR sidecar, overrides Backend
	DocAI     DocAIConfig `yaml:"docai"`
}

// DocAIConfig identifies a Google Document AI processor.
type DocAIConfig struct {
	ProjectID   string `yaml:"project_id"`
	Location    string `yaml:"location"`
	ProcessorID string `yaml:"processor_id"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		DPI:         150,
		StrokeWidth: 3,
		StrokeColor: "red",
		ForceRender: false,
		OutDir:      "output",
		OCR:         OCRConfig{Backend: "tesseract"},
		Logger:      nil, // slog.Default()
	}
}

// LoadConfig reads a YAML options file on top of the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Stroke resolves the configured stroke color.
func (c Config) Stroke() (color.RGBA, error) {
	return boxdraw.ParseColor(c.StrokeColor)
}

// Log returns the configured logger, defaulting to slog.Default.
func (c Config) Log() *slog.Logger {
	if c.Logger == nil {
		return slog.Default()
	}
	return c.Logger
}

package annotate

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 150, cfg.DPI)
	assert.Equal(t, 3, cfg.StrokeWidth)
	assert.Equal(t, "red", cfg.StrokeColor)
	assert.False(t, cfg.ForceRender)
	assert.Equal(t, "tesseract", cfg.OCR.Backend)

	c, err := cfg.Stroke()
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, c)
}

func TestLoadConfigOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "annotar.yaml")
	data := []byte(`
dpi: 300
stroke_color: "#00ff00"
force_render: true
ocr:
  backend: docai
  docai:
    project_id: demo
    location: eu
    processor_id: proc-1
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 300, cfg.DPI)
	assert.Equal(t, "#00ff00", cfg.StrokeColor)
	assert.True(t, cfg.ForceRender)
	// Unset fields keep their defaults.
	assert.Equal(t, 3, cfg.StrokeWidth)
	assert.Equal(t, "docai", cfg.OCR.Backend)
	assert.Equal(t, "demo", cfg.OCR.DocAI.ProjectID)
	assert.Equal(t, "eu", cfg.OCR.DocAI.Location)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

package hocr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `<?xml version="1.0" encoding="UTF-8"?>
<html xmlns="http://www.w3.org/1999/xhtml">
 <head><meta http-equiv="Content-Type" content="text/html;charset=utf-8"/></head>
 <body>
  <div class="ocr_page" id="page_1" title="image &quot;scan.png&quot;; bbox 0 0 1240 1754; ppageno 0">
   <div class="ocr_carea" title="bbox 100 100 1100 300">
    <p class="ocr_par" title="bbox 100 100 1100 200">
     <span class="ocr_line" title="bbox 100 100 700 140; baseline 0 -8">
      <span class="ocrx_word" title="bbox 100 100 260 140; x_wconf 96">Annual</span>
      <span class="ocrx_word" title="bbox 280 100 460 140; x_wconf 91">Report</span>
     </span>
    </p>
   </div>
   <span class="ocr_line" title="bbox 100 220 500 260">
    <span class="ocrx_word" title="bbox 100 220 240 260; x_wconf 88">2024</span>
    <span class="ocrx_word" title="bbox 260 220 270 260">   </span>
   </span>
  </div>
  <div class="ocr_page" id="page_2" title="bbox 0 0 1240 1754; ppageno 1">
   <span class="ocrx_word" title="bbox 10 10 90 40; x_wconf 70">Appendix</span>
  </div>
 </body>
</html>`

func TestParse(t *testing.T) {
	pages, err := Parse([]byte(sample))
	require.NoError(t, err)
	require.Len(t, pages, 2)

	p := pages[0]
	assert.Equal(t, "page_1", p.ID)
	assert.Equal(t, 1, p.Number)
	assert.Equal(t, BoundingBox{0, 0, 1240, 1754}, p.BBox)
	require.Len(t, p.Words, 3, "whitespace-only word dropped")

	assert.Equal(t, "Annual", p.Words[0].Text)
	assert.Equal(t, BoundingBox{100, 100, 260, 140}, p.Words[0].BBox)
	assert.Equal(t, 96.0, p.Words[0].Confidence)
	assert.Equal(t, "Report", p.Words[1].Text)
	assert.Equal(t, "2024", p.Words[2].Text)

	assert.Equal(t, 2, pages[1].Number)
	assert.Equal(t, BoundingBox{10, 10, 90, 40}, pages[1].Words[0].BBox)
	assert.Equal(t, 160.0, p.Words[0].BBox.Width())
	assert.Equal(t, 40.0, p.Words[0].BBox.Height())
}

func TestParseNoPages(t *testing.T) {
	_, err := Parse([]byte("<html><body><p>plain html</p></body></html>"))
	assert.Error(t, err)
}

// Package hocr extracts word bounding boxes from hOCR documents, the
// HTML-based standard format for representing OCR results.
//
// Only the properties the annotation pipeline needs are modeled: pages with
// their pixel dimensions and the flat list of recognized words with their
// bounding boxes. The nested area/paragraph/line hierarchy of the format is
// walked during parsing but not retained.
package hocr

// Page is one recognized page: its bounding box in image pixels and every
// word found anywhere below it in the hOCR hierarchy, in document order.
type Page struct {
	ID     string
	BBox   BoundingBox
	Words  []Word
	Number int // 1-based page number when present in the source
}

// Word is a recognized word with its bounding box in page pixels.
type Word struct {
	Text       string
	BBox       BoundingBox
	Confidence float64 // x_wconf property, 0-100, 0 when absent
}

// BoundingBox is a rectangle in pixel coordinates, top-left origin.
type BoundingBox struct {
	X1 float64
	Y1 float64
	X2 float64
	Y2 float64
}

// Width returns the horizontal extent of the box.
func (b BoundingBox) Width() float64 { return b.X2 - b.X1 }

// Height returns the vertical extent of the box.
func (b BoundingBox) Height() float64 { return b.Y2 - b.Y1 }

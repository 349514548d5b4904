package annotate

import (
	"path/filepath"
	"strings"
)

// Kind identifies the document family a pipeline handles.
type Kind int

const (
	KindUnknown Kind = iota
	KindPage         // fixed-layout pages with positioned text runs (.pdf)
	KindGrid         // spreadsheet-style cell grids (.xlsx)
	KindImage        // a single raster image (.png/.jpg)
	KindWord         // word-processor documents converted to pages (.docx)
)

func (k Kind) String() string {
	switch k {
	case KindPage:
		return "page"
	case KindGrid:
		return "grid"
	case KindImage:
		return "image"
	case KindWord:
		return "word"
	default:
		return "unknown"
	}
}

// DetectKind determines the document kind from the file extension.
func DetectKind(path string) Kind {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return KindPage
	case ".xlsx", ".xlsm":
		return KindGrid
	case ".png", ".jpg", ".jpeg":
		return KindImage
	case ".docx":
		return KindWord
	default:
		return KindUnknown
	}
}

package sheetdoc

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/halldor/annotar/pkg/annotate"
)

// markWorkbook writes a copy of the original workbook with each matched
// cell marked structurally: a thin red border plus wrap-text alignment,
// with columns autosized and row heights adjusted for the wrapped content.
// The cell coordinates come from the same match records used for the
// raster annotations.
func markWorkbook(srcPath, outDir string, matchesBySheet map[string][]annotate.Match) (string, error) {
	wb, err := excelize.OpenFile(srcPath)
	if err != nil {
		return "", fmt.Errorf("reopen workbook: %w", err)
	}
	defer wb.Close()

	styleID, err := wb.NewStyle(&excelize.Style{
		Border: []excelize.Border{
			{Type: "left", Color: "FF0000", Style: 1},
			{Type: "right", Color: "FF0000", Style: 1},
			{Type: "top", Color: "FF0000", Style: 1},
			{Type: "bottom", Color: "FF0000", Style: 1},
		},
		Alignment: &excelize.Alignment{WrapText: true},
	})
	if err != nil {
		return "", fmt.Errorf("create border style: %w", err)
	}

	for _, name := range wb.GetSheetList() {
		rows, err := wb.GetRows(name)
		if err != nil {
			continue
		}
		if err := autosizeSheet(wb, name, rows); err != nil {
			return "", err
		}
		for _, m := range matchesBySheet[name] {
			cell, err := excelize.CoordinatesToCellName(int(m.Rect.X0)+1, int(m.Rect.Top)+1)
			if err != nil {
				continue
			}
			if err := wb.SetCellStyle(name, cell, cell, styleID); err != nil {
				return "", fmt.Errorf("style cell %s!%s: %w", name, cell, err)
			}
		}
	}

	outPath := filepath.Join(outDir, "annotated_"+filepath.Base(srcPath))
	if err := wb.SaveAs(outPath); err != nil {
		return "", fmt.Errorf("save marked workbook: %w", err)
	}
	return outPath, nil
}

// autosizeSheet sets character-based column widths and estimated row
// heights so the wrapped, bordered cells stay readable. Heights use the
// same wrap estimate as the raster layout, converted from pixels to points.
func autosizeSheet(wb *excelize.File, name string, rows [][]string) error {
	cols := 0
	for _, row := range rows {
		if len(row) > cols {
			cols = len(row)
		}
	}

	colChars := make([]int, cols)
	for c := 0; c < cols; c++ {
		colChars[c] = columnChars(rows, c)
		colName, err := excelize.ColumnNumberToName(c + 1)
		if err != nil {
			return err
		}
		if err := wb.SetColWidth(name, colName, colName, float64(colChars[c])); err != nil {
			return fmt.Errorf("set column width %s!%s: %w", name, colName, err)
		}
	}

	for r, row := range rows {
		if !rowHasContent(row) {
			continue
		}
		heightPts := float64(rowPixels(row, colChars)) * 0.75
		if err := wb.SetRowHeight(name, r+1, heightPts); err != nil {
			return fmt.Errorf("set row height %s!%d: %w", name, r+1, err)
		}
	}
	return nil
}

func rowHasContent(row []string) bool {
	for _, val := range row {
		if strings.TrimSpace(val) != "" {
			return true
		}
	}
	return false
}

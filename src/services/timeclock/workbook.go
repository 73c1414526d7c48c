package timeclock

import (
	"io"
	"unicode/utf8"

	"Backend-ShiftFilter/src/models"

	"github.com/xuri/excelize/v2"
)

const (
	outputSheetName = "Sheet1"
	minColWidth     = 10
	maxColWidth     = 60
)

// WriteWorkbook encodes the sheet as a single-sheet xlsx. Blank rows stay blank.
func WriteWorkbook(w io.Writer, sheet *models.Sheet) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if sheet == nil || len(sheet.Header) == 0 {
		return f.Write(w)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return err
	}

	widths := make([]int, len(sheet.Header))
	for col, h := range sheet.Header {
		name, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellStr(outputSheetName, name, h); err != nil {
			return err
		}
		widths[col] = utf8.RuneCountInString(h)
	}
	last, _ := excelize.CoordinatesToCellName(len(sheet.Header), 1)
	if err := f.SetCellStyle(outputSheetName, "A1", last, headerStyle); err != nil {
		return err
	}

	for r, row := range sheet.Rows {
		for col, v := range row {
			if v == "" || col >= len(sheet.Header) {
				continue
			}
			name, err := excelize.CoordinatesToCellName(col+1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetCellStr(outputSheetName, name, v); err != nil {
				return err
			}
			if n := utf8.RuneCountInString(v); n > widths[col] {
				widths[col] = n
			}
		}
	}

	for col, width := range widths {
		colName, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(outputSheetName, colName, colName, clampWidth(width+2)); err != nil {
			return err
		}
	}
	return f.Write(w)
}

func clampWidth(w int) float64 {
	switch {
	case w < minColWidth:
		return minColWidth
	case w > maxColWidth:
		return maxColWidth
	}
	return float64(w)
}

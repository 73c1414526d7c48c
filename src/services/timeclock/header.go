package timeclock

import (
	"bytes"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// FindHeaderRow returns the zero-based row holding the default anchor label.
func FindHeaderRow(content []byte) int {
	return DefaultOptions().FindHeaderRow(content)
}

// FindHeaderRow scans the first MaxHeaderScanRows rows of the first worksheet
// for a cell exactly equal to AnchorLabel. Unreadable workbooks and a missing
// anchor both yield FallbackHeaderRow.
func (o Options) FindHeaderRow(content []byte) int {
	o = o.withDefaults()

	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		zap.L().Debug("header scan: cannot open workbook, using fallback", zap.Error(err))
		return o.FallbackHeaderRow
	}
	defer func() { _ = f.Close() }()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return o.FallbackHeaderRow
	}

	rows, err := f.Rows(sheetName)
	if err != nil {
		return o.FallbackHeaderRow
	}
	defer func() { _ = rows.Close() }()

	for i := 0; i < o.MaxHeaderScanRows && rows.Next(); i++ {
		cols, err := rows.Columns()
		if err != nil {
			return o.FallbackHeaderRow
		}
		for _, cell := range cols {
			if cell == o.AnchorLabel {
				return i
			}
		}
	}
	return o.FallbackHeaderRow
}

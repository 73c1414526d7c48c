package timeclock

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"Backend-ShiftFilter/src/models"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// ErrNoWorksheet is returned for a workbook without any sheet.
var ErrNoWorksheet = errors.New("no worksheet found")

// Upload ไฟล์ที่ผู้ใช้อัปโหลดเข้ามา
type Upload struct {
	Name    string
	Content []byte
}

// ReadSheets parses every upload from its detected header row and stacks the
// results in the given order. A single unreadable file fails the whole batch.
func (o Options) ReadSheets(files []Upload) (*models.Sheet, error) {
	sheets := make([]*models.Sheet, 0, len(files))
	for _, file := range files {
		sheet, err := o.ReadSheet(file)
		if err != nil {
			return nil, fmt.Errorf("read %q: %w", file.Name, err)
		}
		sheets = append(sheets, sheet)
	}
	return ConcatSheets(sheets...), nil
}

// ReadSheet parses one workbook using the located header row as column names.
// Every cell stays text, so identifiers such as NRIC keep their leading zeros.
func (o Options) ReadSheet(file Upload) (*models.Sheet, error) {
	o = o.withDefaults()
	headerRow := o.FindHeaderRow(file.Content)

	f, err := excelize.OpenReader(bytes.NewReader(file.Content))
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, ErrNoWorksheet
	}
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, err
	}
	// ค่าดิบ (ไม่ผ่าน number format) ใช้กับคอลัมน์วันที่/เวลา
	raw, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}
	if headerRow >= len(rows) {
		return nil, fmt.Errorf("header row %d is beyond the last row %d", headerRow+1, len(rows))
	}

	header := append([]string(nil), rows[headerRow]...)
	body := rows[headerRow+1:]
	for _, r := range body {
		if len(r) > len(header) {
			header = append(header, make([]string, len(r)-len(header))...)
		}
	}
	header = normalizeHeader(header)

	typed := []int{indexOf(header, ColumnDate), indexOf(header, ColumnClock)}
	sheet := &models.Sheet{Header: header, Rows: make([][]string, 0, len(body))}
	for i, r := range body {
		if isBlankRow(r) {
			continue
		}
		cells := make([]string, len(header))
		copy(cells, r)
		if n := headerRow + 1 + i; n < len(raw) {
			useSerials(cells, raw[n], typed)
		}
		sheet.Rows = append(sheet.Rows, cells)
	}

	zap.L().Debug("sheet parsed",
		zap.String("file", file.Name),
		zap.Int("headerRow", headerRow),
		zap.Int("rows", len(sheet.Rows)))
	return sheet, nil
}

// useSerials replaces the displayed text of numeric date and time cells with
// their stored serial value, so the cell's number format (dd/mm/yyyy,
// m/d/yyyy, ...) never decides how the date is read.
func useSerials(cells, raw []string, columns []int) {
	for _, idx := range columns {
		if idx < 0 || idx >= len(raw) || idx >= len(cells) {
			continue
		}
		v := strings.TrimSpace(raw[idx])
		if _, err := strconv.ParseFloat(v, 64); err == nil {
			cells[idx] = v
		}
	}
}

// ConcatSheets stacks sheets row-wise. Columns are the union of all headers in
// first-appearance order; cells a sheet does not have are left empty.
func ConcatSheets(sheets ...*models.Sheet) *models.Sheet {
	out := &models.Sheet{}
	pos := map[string]int{}
	for _, s := range sheets {
		if s == nil {
			continue
		}
		for _, h := range s.Header {
			if _, ok := pos[h]; !ok {
				pos[h] = len(out.Header)
				out.Header = append(out.Header, h)
			}
		}
	}
	for _, s := range sheets {
		if s == nil {
			continue
		}
		for _, r := range s.Rows {
			cells := make([]string, len(out.Header))
			for i, h := range s.Header {
				if i < len(r) {
					cells[pos[h]] = r[i]
				}
			}
			out.Rows = append(out.Rows, cells)
		}
	}
	return out
}

// normalizeHeader names blank columns and disambiguates repeated labels.
func normalizeHeader(header []string) []string {
	seen := map[string]int{}
	out := make([]string, len(header))
	for i, h := range header {
		name := strings.TrimSpace(h)
		if name == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		} else {
			name = h
		}
		if n, dup := seen[name]; dup {
			seen[name] = n + 1
			name = fmt.Sprintf("%s.%d", name, n+1)
		} else {
			seen[name] = 0
		}
		out[i] = name
	}
	return out
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

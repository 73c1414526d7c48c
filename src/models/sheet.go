package models

import "time"

// Sheet ตารางข้อมูลจากไฟล์ Excel (ทุกเซลล์เก็บเป็นข้อความ)
type Sheet struct {
	Header []string   `json:"header"`
	Rows   [][]string `json:"rows"`
}

// ColumnIndex returns the position of name in the header, or -1.
func (s *Sheet) ColumnIndex(name string) int {
	for i, h := range s.Header {
		if h == name {
			return i
		}
	}
	return -1
}

// IsEmpty reports whether the sheet carries no data rows.
func (s *Sheet) IsEmpty() bool {
	return s == nil || len(s.Rows) == 0
}

// Punch หนึ่งแถวของการตอกบัตร (เข้า/ออก)
type Punch struct {
	Employee string
	Event    string
	DateTime time.Time
	Cells    []string // แถวต้นฉบับ เรียงตาม Sheet.Header
}

package timeclock

// คอลัมน์มาตรฐานของไฟล์ export จากเครื่องตอกบัตร
const (
	ColumnEmployee = "Emp Name"
	ColumnDate     = "Date"
	ColumnClock    = "Last Clock-In Time"
	ColumnEvent    = "Transaction Event"
	ColumnNRIC     = "NRIC"
	ColumnShiftID  = "Shift ID"
)

// Options controls header detection and shift segmentation.
type Options struct {
	AnchorLabel       string  // ข้อความที่ใช้หาแถว header
	MaxHeaderScanRows int     // จำนวนแถวแรกที่ตรวจหา header
	FallbackHeaderRow int     // แถว header ของ template ปกติ เมื่อหาไม่เจอ
	ShiftGapHours     float64 // ช่องว่างเกินกว่านี้ถือเป็นกะใหม่
}

// DefaultOptions matches the standard timeclock export template.
func DefaultOptions() Options {
	return Options{
		AnchorLabel:       ColumnEmployee,
		MaxHeaderScanRows: 20,
		FallbackHeaderRow: 11,
		ShiftGapHours:     10,
	}
}

// withDefaults fills zero values so a partially populated Options still works.
func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.AnchorLabel == "" {
		o.AnchorLabel = d.AnchorLabel
	}
	if o.MaxHeaderScanRows <= 0 {
		o.MaxHeaderScanRows = d.MaxHeaderScanRows
	}
	if o.FallbackHeaderRow < 0 {
		o.FallbackHeaderRow = d.FallbackHeaderRow
	}
	if o.ShiftGapHours <= 0 {
		o.ShiftGapHours = d.ShiftGapHours
	}
	return o
}

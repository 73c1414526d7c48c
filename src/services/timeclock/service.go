package timeclock

import "Backend-ShiftFilter/src/models"

// Result สรุปผลการประมวลผลไฟล์หนึ่งชุด
type Result struct {
	Sheet      *models.Sheet
	Files      int
	InputRows  int
	OutputRows int // ไม่นับแถวว่างคั่นพนักงาน
	Employees  int
}

// Process runs ingestion and shift segmentation over one upload batch.
func (o Options) Process(files []Upload) (*Result, error) {
	combined, err := o.ReadSheets(files)
	if err != nil {
		return nil, err
	}
	filtered := o.FilterShift(combined)

	res := &Result{
		Sheet:     filtered,
		Files:     len(files),
		InputRows: len(combined.Rows),
	}
	for _, r := range filtered.Rows {
		if isBlankRow(r) {
			res.Employees++
			continue
		}
		res.OutputRows++
	}
	if res.OutputRows > 0 {
		res.Employees++
	}
	return res, nil
}

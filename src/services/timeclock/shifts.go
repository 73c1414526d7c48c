package timeclock

import (
	"regexp"
	"sort"
	"strconv"

	"Backend-ShiftFilter/src/models"

	"go.uber.org/zap"
)

var (
	inPattern  = regexp.MustCompile(`(?i)\bin\b`)
	outPattern = regexp.MustCompile(`(?i)\bout\b`)
)

// IsInEvent reports whether the event label carries "In" as a whole word.
func IsInEvent(event string) bool { return inPattern.MatchString(event) }

// IsOutEvent reports whether the event label carries "Out" as a whole word.
func IsOutEvent(event string) bool { return outPattern.MatchString(event) }

// employeeTimeline punches ของพนักงานหนึ่งคน แบ่งเป็นกะตามลำดับเวลา
type employeeTimeline struct {
	name   string
	shifts [][]models.Punch
}

// FilterShift reduces the combined punch table with the default rules.
func FilterShift(data *models.Sheet) *models.Sheet {
	return DefaultOptions().FilterShift(data)
}

// FilterShift collapses every employee's punches into first-in/last-out rows
// per shift, with one blank row between employees. Unusable input yields an
// empty sheet rather than an error.
func (o Options) FilterShift(data *models.Sheet) *models.Sheet {
	o = o.withDefaults()
	if data.IsEmpty() {
		return &models.Sheet{}
	}

	dateIdx := data.ColumnIndex(ColumnDate)
	clockIdx := data.ColumnIndex(ColumnClock)
	if dateIdx < 0 || clockIdx < 0 {
		zap.L().Warn("Missing Date or Last Clock-In Time column.",
			zap.Strings("columns", data.Header))
		return &models.Sheet{}
	}

	punches := toPunches(data, dateIdx, clockIdx)
	if len(punches) == 0 {
		return &models.Sheet{}
	}
	sortPunches(punches)
	punches = dedupePunches(punches)

	header := append([]string(nil), data.Header...)
	shiftIdx := indexOf(header, ColumnShiftID)
	if shiftIdx < 0 {
		shiftIdx = len(header)
		header = append(header, ColumnShiftID)
	}

	out := &models.Sheet{Header: header}
	for _, emp := range splitShifts(groupByEmployee(punches), o.ShiftGapHours) {
		written := 0
		for i, shift := range emp.shifts {
			for _, p := range firstInLastOut(shift) {
				row := make([]string, len(header))
				copy(row, p.Cells)
				row[dateIdx] = p.DateTime.Format("2006-01-02")
				row[clockIdx] = p.DateTime.Format("15:04:05")
				row[shiftIdx] = strconv.Itoa(i + 1)
				out.Rows = append(out.Rows, row)
				written++
			}
		}
		if written > 0 {
			out.Rows = append(out.Rows, make([]string, len(header)))
		}
	}
	// ตัดแถวว่างท้ายสุดออก
	if n := len(out.Rows); n > 0 {
		out.Rows = out.Rows[:n-1]
	}
	return out
}

// toPunches keeps rows with a parseable timestamp and a named employee.
func toPunches(data *models.Sheet, dateIdx, clockIdx int) []models.Punch {
	empIdx := data.ColumnIndex(ColumnEmployee)
	eventIdx := data.ColumnIndex(ColumnEvent)

	punches := make([]models.Punch, 0, len(data.Rows))
	dropped := 0
	for _, r := range data.Rows {
		dt, ok := ParseDateTime(cell(r, dateIdx), cell(r, clockIdx))
		name := cell(r, empIdx)
		if !ok || name == "" {
			dropped++
			continue
		}
		cells := make([]string, len(data.Header))
		copy(cells, r)
		punches = append(punches, models.Punch{
			Employee: name,
			Event:    cell(r, eventIdx),
			DateTime: dt,
			Cells:    cells,
		})
	}
	if dropped > 0 {
		zap.L().Debug("dropped rows without a usable timestamp", zap.Int("rows", dropped))
	}
	return punches
}

func sortPunches(punches []models.Punch) {
	sort.SliceStable(punches, func(i, j int) bool {
		if punches[i].Employee != punches[j].Employee {
			return punches[i].Employee < punches[j].Employee
		}
		return punches[i].DateTime.Before(punches[j].DateTime)
	})
}

// dedupePunches drops repeats of (employee, timestamp, event), keeping the first.
func dedupePunches(punches []models.Punch) []models.Punch {
	type key struct {
		employee string
		unix     int64
		event    string
	}
	seen := make(map[key]struct{}, len(punches))
	out := punches[:0]
	for _, p := range punches {
		k := key{p.Employee, p.DateTime.UnixNano(), p.Event}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, p)
	}
	return out
}

// groupByEmployee expects punches sorted by employee.
func groupByEmployee(punches []models.Punch) [][]models.Punch {
	var groups [][]models.Punch
	for i, p := range punches {
		if i == 0 || p.Employee != punches[i-1].Employee {
			groups = append(groups, nil)
		}
		groups[len(groups)-1] = append(groups[len(groups)-1], p)
	}
	return groups
}

func splitShifts(groups [][]models.Punch, gapHours float64) []employeeTimeline {
	timelines := make([]employeeTimeline, 0, len(groups))
	for _, g := range groups {
		timelines = append(timelines, employeeTimeline{
			name:   g[0].Employee,
			shifts: segment(g, gapHours),
		})
	}
	return timelines
}

// segment cuts one employee's sorted punches into shifts. The first punch
// always opens a shift.
func segment(timeline []models.Punch, gapHours float64) [][]models.Punch {
	var shifts [][]models.Punch
	for i, p := range timeline {
		if i == 0 || startsShift(timeline[i-1], p, gapHours) {
			shifts = append(shifts, nil)
		}
		shifts[len(shifts)-1] = append(shifts[len(shifts)-1], p)
	}
	return shifts
}

// startsShift applies the gap rule between two consecutive punches. A long
// gap from an "In" straight to an "Out" is one long shift, not two.
func startsShift(prev, cur models.Punch, gapHours float64) bool {
	gap := cur.DateTime.Sub(prev.DateTime).Hours()
	if gap <= gapHours {
		return false
	}
	return !(IsInEvent(prev.Event) && IsOutEvent(cur.Event))
}

// firstInLastOut keeps the first "In" and the last "Out" of one shift.
func firstInLastOut(shift []models.Punch) []models.Punch {
	first, last := -1, -1
	for i, p := range shift {
		if first < 0 && IsInEvent(p.Event) {
			first = i
		}
		if IsOutEvent(p.Event) {
			last = i
		}
	}

	var kept []models.Punch
	if first >= 0 {
		kept = append(kept, shift[first])
	}
	if last >= 0 && last != first {
		kept = append(kept, shift[last])
	}
	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].DateTime.Before(kept[j].DateTime)
	})
	return kept
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func indexOf(values []string, want string) int {
	for i, v := range values {
		if v == want {
			return i
		}
	}
	return -1
}

package timeclock

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// รูปแบบวันที่ของเซลล์ที่เป็นข้อความ (เซลล์ตัวเลขอ่านเป็น serial)
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"1/2/2006",
	"01/02/2006",
	"1/2/06",
	"01-02-06",
	"1-2-06",
	"2 Jan 2006",
	"02 Jan 2006",
	"2-Jan-06",
	"02-Jan-2006",
	"Jan 2, 2006",
	"January 2, 2006",
}

var dateTimeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
	"1/2/2006 3:04:05 PM",
	"1/2/2006 3:04 PM",
	"01-02-06 15:04",
	"1/2/06 15:04",
}

var clockLayouts = []string{
	"15:04:05",
	"15:04",
	"15:04:05.000",
	"3:04:05 PM",
	"3:04 PM",
	"3:04:05PM",
	"3:04PM",
}

// parseDate reads a calendar date, ignoring any time-of-day it carries.
func parseDate(value string) (time.Time, bool) {
	v := strings.TrimSpace(value)
	if v == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, true
		}
	}
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return midnight(t), true
		}
	}
	// Excel serial number เช่น 45296
	if serial, err := strconv.ParseFloat(v, 64); err == nil && serial >= 1 {
		if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
			return midnight(t), true
		}
	}
	return time.Time{}, false
}

// parseClock reads a time of day as an offset from midnight.
func parseClock(value string) (time.Duration, bool) {
	v := strings.TrimSpace(value)
	if v == "" {
		return 0, false
	}
	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return sinceMidnight(t), true
		}
	}
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return sinceMidnight(t), true
		}
	}
	// เศษของวันแบบ Excel เช่น 0.5 = 12:00 หรือ serial วันที่+เวลา เช่น 45296.5
	// จำนวนเต็มตั้งแต่ 1 ขึ้นไปไม่ใช่เวลา
	if serial, err := strconv.ParseFloat(v, 64); err == nil && serial >= 0 {
		whole, frac := math.Modf(serial)
		if whole >= 1 && frac == 0 {
			return 0, false
		}
		secs := math.Round(frac * 24 * 60 * 60)
		return time.Duration(secs) * time.Second, true
	}
	return 0, false
}

// ParseDateTime combines a date cell and a clock cell into one timestamp.
func ParseDateTime(date, clock string) (time.Time, bool) {
	d, ok := parseDate(date)
	if !ok {
		return time.Time{}, false
	}
	c, ok := parseClock(clock)
	if !ok {
		return time.Time{}, false
	}
	return d.Add(c), true
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func sinceMidnight(t time.Time) time.Duration {
	return time.Duration(t.Hour())*time.Hour +
		time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second +
		time.Duration(t.Nanosecond())
}

package timeclock

import (
	"bytes"
	"testing"
	"time"

	"Backend-ShiftFilter/src/models"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadSheets(t *testing.T) {
	opts := DefaultOptions()

	t.Run("empty batch", func(t *testing.T) {
		got, err := opts.ReadSheets(nil)
		require.NoError(t, err)
		assert.True(t, got.IsEmpty())
		assert.Empty(t, got.Header)
	})

	t.Run("files with different banners are stacked in order", func(t *testing.T) {
		first := buildWorkbook(t, exportTemplate(11, punchHeader,
			[]string{"Alice", "0012345A", "2024-01-05", "08:00:00", "Check In"},
			nil,
			[]string{"Alice", "0012345A", "2024-01-05", "17:00:00", "Check Out"},
		))
		second := buildWorkbook(t, exportTemplate(3, punchHeader,
			[]string{"Bob", "0098765B", "2024-01-05", "22:00:00", "In"},
		))

		got, err := opts.ReadSheets([]Upload{{Name: "a.xlsx", Content: first}, {Name: "b.xlsx", Content: second}})
		require.NoError(t, err)

		assert.Equal(t, punchHeader, got.Header)
		want := [][]string{
			{"Alice", "0012345A", "2024-01-05", "08:00:00", "Check In"},
			{"Alice", "0012345A", "2024-01-05", "17:00:00", "Check Out"},
			{"Bob", "0098765B", "2024-01-05", "22:00:00", "In"},
		}
		if diff := cmp.Diff(want, got.Rows); diff != "" {
			t.Errorf("rows mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("column union keeps first appearance order", func(t *testing.T) {
		first := buildWorkbook(t, [][]string{
			{"Emp Name", "Date", "Last Clock-In Time", "Transaction Event"},
			{"Alice", "2024-01-05", "08:00:00", "In"},
		})
		second := buildWorkbook(t, [][]string{
			{"Emp Name", "NRIC", "Date", "Last Clock-In Time", "Transaction Event", "Site"},
			{"Bob", "007", "2024-01-05", "09:00:00", "In", "North"},
		})

		got, err := opts.ReadSheets([]Upload{{Name: "a", Content: first}, {Name: "b", Content: second}})
		require.NoError(t, err)
		assert.Equal(t, []string{"Emp Name", "Date", "Last Clock-In Time", "Transaction Event", "NRIC", "Site"}, got.Header)
		assert.Equal(t, []string{"Alice", "2024-01-05", "08:00:00", "In", "", ""}, got.Rows[0])
		assert.Equal(t, []string{"Bob", "2024-01-05", "09:00:00", "In", "007", "North"}, got.Rows[1])
	})

	t.Run("corrupt file aborts the batch", func(t *testing.T) {
		good := buildWorkbook(t, exportTemplate(0, punchHeader))
		_, err := opts.ReadSheets([]Upload{{Name: "good.xlsx", Content: good}, {Name: "bad.xlsx", Content: []byte("garbage")}})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bad.xlsx")
	})

	t.Run("fallback header beyond the sheet is an error", func(t *testing.T) {
		short := buildWorkbook(t, [][]string{{"Name"}, {"Alice"}})
		_, err := opts.ReadSheets([]Upload{{Name: "short.xlsx", Content: short}})
		assert.Error(t, err)
	})
}

func TestReadSheetTypedDateCells(t *testing.T) {
	const (
		jan13 = 45304.0 // 2024-01-13
		jan05 = 45296.0 // 2024-01-05
		jan06 = 45297.0
	)
	punches := []typedPunch{
		{"Alice", jan13, 8.5 / 24, "Check In"},
		{"Alice", jan13, 17.25 / 24, "Check Out"},
		{"Bob", jan05, 22.0 / 24, "In"},
		{"Bob", jan06, 6.0 / 24, "Out"},
	}
	want := [][]string{
		{"Alice", "0012345A", "2024-01-13", "08:30:00", "Check In", "1"},
		{"Alice", "0012345A", "2024-01-13", "17:15:00", "Check Out", "1"},
		{"", "", "", "", "", ""},
		{"Bob", "0012345A", "2024-01-05", "22:00:00", "In", "1"},
		{"Bob", "0012345A", "2024-01-06", "06:00:00", "Out", "1"},
	}

	cases := []struct {
		dateFormat  string
		clockFormat string
	}{
		{"dd/mm/yyyy", "hh:mm:ss"},
		{"dd.mm.yyyy", "hh:mm:ss"},
		{"d/m/yy", "h:mm AM/PM"},
		{"m/d/yyyy", "h:mm:ss AM/PM"},
		{"yyyy-mm-dd", "hh:mm"},
		{"d-mmm-yyyy", "hh:mm:ss"},
	}
	for _, tc := range cases {
		t.Run(tc.dateFormat+" "+tc.clockFormat, func(t *testing.T) {
			content := buildTypedWorkbook(t, tc.dateFormat, tc.clockFormat, punches...)

			sheet, err := DefaultOptions().ReadSheet(Upload{Name: "typed.xlsx", Content: content})
			require.NoError(t, err)
			require.Len(t, sheet.Rows, 4)
			got, ok := ParseDateTime(sheet.Rows[0][2], sheet.Rows[0][3])
			require.True(t, ok, "date %q clock %q", sheet.Rows[0][2], sheet.Rows[0][3])
			assert.True(t, time.Date(2024, 1, 13, 8, 30, 0, 0, time.UTC).Equal(got), "got %s", got)

			res, err := DefaultOptions().Process([]Upload{{Name: "typed.xlsx", Content: content}})
			require.NoError(t, err)
			if diff := cmp.Diff(want, res.Sheet.Rows); diff != "" {
				t.Errorf("rows mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNormalizeHeader(t *testing.T) {
	got := normalizeHeader([]string{"Emp Name", "", "Date", "Date", " ", "Date"})
	assert.Equal(t, []string{"Emp Name", "Unnamed: 1", "Date", "Date.1", "Unnamed: 4", "Date.2"}, got)
}

func TestConcatSheetsSkipsNil(t *testing.T) {
	a := &models.Sheet{Header: []string{"x"}, Rows: [][]string{{"1"}}}
	got := ConcatSheets(nil, a, nil)
	assert.Equal(t, []string{"x"}, got.Header)
	assert.Equal(t, [][]string{{"1"}}, got.Rows)
}

func TestProcess(t *testing.T) {
	content := buildWorkbook(t, exportTemplate(11, punchHeader,
		[]string{"Alice", "0012345A", "2024-01-05", "08:00:00", "Check In"},
		[]string{"Alice", "0012345A", "2024-01-05", "12:00:00", "Lunch Out"},
		[]string{"Alice", "0012345A", "2024-01-05", "17:00:00", "Check Out"},
		[]string{"Bob", "0098765B", "2024-01-05", "09:00:00", "In"},
	))

	res, err := DefaultOptions().Process([]Upload{{Name: "export.xlsx", Content: content}})
	require.NoError(t, err)

	assert.Equal(t, 1, res.Files)
	assert.Equal(t, 4, res.InputRows)
	assert.Equal(t, 3, res.OutputRows)
	assert.Equal(t, 2, res.Employees)
	require.Len(t, res.Sheet.Rows, 4)
	assert.Equal(t, "0012345A", res.Sheet.Rows[0][1], "NRIC keeps its leading zeros")

	var buf bytes.Buffer
	require.NoError(t, WriteWorkbook(&buf, res.Sheet))
	assert.NotZero(t, buf.Len())
}

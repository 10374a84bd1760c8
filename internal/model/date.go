package model

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the canonical ISO calendar date format of Record.LastUpdated.
const DateLayout = time.DateOnly

// Spreadsheet exports show dates in whatever number format the author picked;
// US month-first is assumed for the ambiguous slash forms.
var dateLayouts = []string{
	DateLayout,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	time.DateTime,
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"01-02-06",
	"1/2/06",
	"02-Jan-2006",
	"2-Jan-06",
	"Jan 2, 2006",
}

var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// maxExcelSerial is 9999-12-31.
const maxExcelSerial = 2958465

// ParseDate recognises the supported date spellings and Excel serial day numbers.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return ExcelSerialToTime(f)
	}

	return time.Time{}, false
}

func ExcelSerialToTime(serial float64) (time.Time, bool) {
	if math.IsNaN(serial) || serial < 1 || serial > maxExcelSerial {
		return time.Time{}, false
	}

	days := math.Floor(serial)
	frac := serial - days

	t := excelEpoch.AddDate(0, 0, int(days))
	return t.Add(time.Duration(frac * float64(24*time.Hour))), true
}

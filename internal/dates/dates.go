package dates

import (
	"strings"
	"time"
)

// Layouts accepted by Parse, in priority order. The first layout that parses
// wins, so a string matching two layouts resolves to the earlier one.
// Day and month may be written with one or two digits.
var Layouts = []string{
	"2/1/2006",
	"2006-01-02",
	"2-1-2006",
	"2006-01",
}

const FullLayout = "02/01/2006"

// Parse normalizes a loosely formatted date into a calendar date (UTC,
// midnight). Year-month inputs resolve to day 1. The second return value is
// false for empty or unparseable input.
func Parse(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range Layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Present reports whether s carries any value at all.
func Present(s string) bool {
	return strings.TrimSpace(s) != ""
}

func FormatFull(t time.Time) string {
	return t.Format(FullLayout)
}

// FormatMonthYear renders t as "mon/YYYY" with the given month table
// (index 0 is January).
func FormatMonthYear(t time.Time, months [12]string) string {
	return months[int(t.Month())-1] + "/" + t.Format("2006")
}

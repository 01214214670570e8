package importer

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var dayMonthYear = regexp.MustCompile(`^(\d{1,2})[./](\d{1,2})[./](\d{4})$`)

// fallbackLayouts are tried when a cell is not in day/month/year form.
var fallbackLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"2 Jan 2006",
	"Jan 2, 2006",
	"January 2, 2006",
	time.RFC3339,
}

// ParseFlexibleDate normalizes the date strings found in uploaded sheets:
// D/M/YYYY or D.M.YYYY, a lifetime sentinel, or anything a generic parse
// can salvage. Malformed input is "no usable expiry", never an error.
func ParseFlexibleDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	lower := strings.ToLower(s)
	if lower == "lifetime" || strings.Contains(lower, "life time") {
		return nil
	}

	if m := dayMonthYear.FindStringSubmatch(s); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])

		d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
		// time.Date normalizes overflow (31 Feb becomes 2/3 Mar), so a
		// round-trip mismatch means the calendar date never existed.
		if d.Day() == day && int(d.Month()) == month && d.Year() == year {
			return &d
		}
		return nil
	}

	for _, layout := range fallbackLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}

	return nil
}

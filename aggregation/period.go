package aggregation

import (
	"fmt"
	"time"
)

// Report period labels use Indonesian short month names, matching the rest
// of the printed documents.
var monthShort = [...]string{
	"Jan", "Feb", "Mar", "Apr", "Mei", "Jun",
	"Jul", "Agu", "Sep", "Okt", "Nov", "Des",
}

func parseISO(date string) (time.Time, bool) {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// FormatDisplayDate renders "2024-01-05" as "5 Jan 2024". Unparseable input
// is passed through so a broken row is still visible rather than blank.
func FormatDisplayDate(date string) string {
	t, ok := parseISO(date)
	if !ok {
		return date
	}
	return fmt.Sprintf("%d %s %d", t.Day(), monthShort[t.Month()-1], t.Year())
}

// FormatPeriodRange renders a min/max date pair as a single label:
// one date when they coincide, "5 Jan – 7 Jan 2024" within a year, and
// two full dates across a year boundary.
func FormatPeriodRange(minDate, maxDate string) string {
	if minDate == maxDate {
		return FormatDisplayDate(minDate)
	}
	lo, okLo := parseISO(minDate)
	hi, okHi := parseISO(maxDate)
	if !okLo || !okHi {
		return minDate + " – " + maxDate
	}
	if lo.Year() == hi.Year() {
		return fmt.Sprintf("%d %s – %d %s %d",
			lo.Day(), monthShort[lo.Month()-1],
			hi.Day(), monthShort[hi.Month()-1], hi.Year())
	}
	return FormatDisplayDate(minDate) + " – " + FormatDisplayDate(maxDate)
}

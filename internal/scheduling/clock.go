package scheduling

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// The whole engine works on "HH:MM" local-clock strings and "YYYY-MM-DD"
// dates with no timezone attached. The shop is one physical location, so a
// wall-clock minute-of-day is all the precision the domain needs. Clock
// values are converted to minutes since midnight at the engine boundary and
// back to strings on the way out.

const dateLayout = "2006-01-02"

// ParseClock converts "HH:MM" to minutes since midnight. A single-digit
// hour ("9:00") is accepted and normalized on the way back out.
func ParseClock(s string) (int, error) {
	i := strings.IndexByte(s, ':')
	if i < 1 || i > 2 || len(s)-i-1 != 2 {
		return 0, fmt.Errorf("invalid clock value %q: want HH:MM", s)
	}
	h, err := strconv.Atoi(s[:i])
	if err != nil {
		return 0, fmt.Errorf("invalid clock value %q: want HH:MM", s)
	}
	m, err := strconv.Atoi(s[i+1:])
	if err != nil {
		return 0, fmt.Errorf("invalid clock value %q: want HH:MM", s)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid clock value %q: out of range", s)
	}
	return h*60 + m, nil
}

// FormatClock converts minutes since midnight back to "HH:MM".
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// Weekday returns the weekday index (0 = Sunday) of a "YYYY-MM-DD" date.
func Weekday(date string) (int, error) {
	t, err := time.Parse(dateLayout, date)
	if err != nil {
		return 0, fmt.Errorf("invalid date %q: want YYYY-MM-DD", date)
	}
	return int(t.Weekday()), nil
}

// overlaps reports whether the half-open minute ranges [aStart, aEnd) and
// [bStart, bEnd) intersect.
func overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && bStart < aEnd
}

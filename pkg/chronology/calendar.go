package chronology

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// reconcileWindowDays is how far the weekday reconciler will move a date
// to honor the header's stated weekday. The value is heuristic but
// load-bearing: widening it changes observable assignments.
const reconcileWindowDays = 3

// monthNames is the immutable month lookup, in calendar order so prefix
// resolution is deterministic.
var monthNames = []string{
	"january", "february", "march", "april", "may", "june",
	"july", "august", "september", "october", "november", "december",
}

var weekdays = map[string]time.Weekday{
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sunday":    time.Sunday,
}

var nonLetterRE = regexp.MustCompile(`[^a-z]`)

// monthNumber resolves a possibly garbled month token to 1..12, or 0 when
// it cannot be resolved. OCR commonly confuses '|' for 'l' and truncates
// or mangles trailing letters, so after normalization an exact full-name
// match is tried first, then a match on the first three letters.
func monthNumber(token string) int {
	tok := strings.ToLower(strings.TrimSpace(token))
	if tok == "" {
		return 0
	}
	tok = strings.ReplaceAll(tok, "|", "l")
	tok = nonLetterRE.ReplaceAllString(tok, "")
	if len(tok) < 3 {
		return 0
	}

	for i, name := range monthNames {
		if tok == name {
			return i + 1
		}
	}

	pref := tok[:3]
	for i, name := range monthNames {
		if strings.HasPrefix(name, pref) {
			return i + 1
		}
	}

	return 0
}

func statedWeekday(token string) (time.Weekday, bool) {
	wd, ok := weekdays[strings.ToLower(strings.TrimSpace(token))]
	return wd, ok
}

// NormalizeDate converts a candidate's tokens into a validated calendar
// date, reconciled against the candidate's stated weekday. Returns nil
// for non-numeric tokens, unresolvable month names, and out-of-range
// calendar dates (Feb 30 fails closed rather than clamping).
func NormalizeDate(c *Candidate) *time.Time {
	year, err := strconv.Atoi(c.YearToken)
	if err != nil {
		return nil
	}
	day, err := strconv.Atoi(c.DayToken)
	if err != nil {
		return nil
	}

	month := monthNumber(c.MonthToken)
	if month == 0 {
		return nil
	}

	d := Date(year, time.Month(month), day)
	if d.Year() != year || d.Month() != time.Month(month) || d.Day() != day {
		return nil
	}

	d = reconcileWeekday(d, c.Weekday)
	return &d
}

// reconcileWeekday nudges d to the nearest date within the reconcile
// window whose weekday matches the header's stated weekday. Journal
// authors commonly write the wrong weekday label over an otherwise
// correct numeric date, so a non-match leaves d unchanged rather than
// failing. Ties on |offset| prefer the earlier date.
func reconcileWeekday(d time.Time, stated string) time.Time {
	want, ok := statedWeekday(stated)
	if !ok || d.Weekday() == want {
		return d
	}

	found := false
	var bestOffset int
	for offset := -reconcileWindowDays; offset <= reconcileWindowDays; offset++ {
		if offset == 0 {
			continue
		}
		if d.AddDate(0, 0, offset).Weekday() != want {
			continue
		}
		if !found || closerOffset(offset, bestOffset) {
			bestOffset = offset
			found = true
		}
	}

	if !found {
		return d
	}
	return d.AddDate(0, 0, bestOffset)
}

// closerOffset reports whether a beats b under the reconcile ordering:
// smallest absolute displacement first, past before future on ties.
func closerOffset(a, b int) bool {
	absA, absB := abs(a), abs(b)
	if absA != absB {
		return absA < absB
	}
	return a < b
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

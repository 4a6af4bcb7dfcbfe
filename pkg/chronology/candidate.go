package chronology

import (
	"regexp"
	"strings"
)

// headerScanLines bounds how far into a page's text the parser looks for
// a date header.
const headerScanLines = 10

// A permissive header pattern: WEEKDAY, MONTH D, YYYY with flexible
// commas and whitespace.
var headerRE = regexp.MustCompile(
	`(?i)^(monday|tuesday|wednesday|thursday|friday|saturday|sunday)\s*,?\s+` +
		`([a-zA-Z]{3,12})\s+` +
		`(\d{1,2})\s*,?\s+(\d{4})\s*$`,
)

var weekdayOnlyRE = regexp.MustCompile(
	`(?i)^(monday|tuesday|wednesday|thursday|friday|saturday|sunday)\s*,?\s*$`,
)

// ParseHeader extracts a date-header candidate from the opening lines of
// a page's text, or returns nil when none is found. The scan covers the
// first non-blank lines top to bottom and the first match wins.
//
// It also handles the Azure OCR quirk where the weekday lands on its own
// line with the month/day/year on the next: the two lines are stitched
// and matched as one.
func ParseHeader(text string) *Candidate {
	lines := headerLines(text)
	if len(lines) == 0 {
		return nil
	}

	if len(lines) >= 2 && weekdayOnlyRE.MatchString(lines[0]) {
		stitched := lines[0] + " " + lines[1]
		if c := matchHeader(stitched); c != nil {
			return c
		}
	}

	for _, line := range lines {
		if c := matchHeader(line); c != nil {
			return c
		}
	}

	return nil
}

func matchHeader(line string) *Candidate {
	m := headerRE.FindStringSubmatch(line)
	if m == nil {
		return nil
	}
	return &Candidate{
		Weekday:    m[1],
		MonthToken: m[2],
		DayToken:   m[3],
		YearToken:  m[4],
		Source:     line,
	}
}

func headerLines(text string) []string {
	lines := make([]string, 0, headerScanLines)
	for _, ln := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(ln); trimmed != "" {
			lines = append(lines, trimmed)
			if len(lines) == headerScanLines {
				break
			}
		}
	}
	return lines
}

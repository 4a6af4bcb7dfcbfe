package formatting

import (
	"regexp"
	"strings"
)

// timeKeyScanLines bounds how far into a page the time-of-day scan looks.
const timeKeyScanLines = 16

var (
	whitespaceRE = regexp.MustCompile(`\s+`)
	clockRE      = regexp.MustCompile(`\b(\d{1,2}):(\d{2})\b`)
)

// Snippet collapses whitespace and truncates text to at most maxChars,
// appending an ellipsis when truncated.
func Snippet(text string, maxChars int) string {
	s := whitespaceRE.ReplaceAllString(strings.TrimSpace(text), " ")
	runes := []rune(s)
	if len(runes) <= maxChars {
		return s
	}
	return strings.TrimRight(string(runes[:maxChars-1]), " ") + "…"
}

// TimeKey extracts the first H:MM clock time from the opening lines of a
// page and returns it as minutes past midnight. Returns -1 when no clock
// time appears; journal entries often open with one, and the key gives
// the search index a within-day sort order.
func TimeKey(text string) int {
	lines := strings.Split(text, "\n")
	if len(lines) > timeKeyScanLines {
		lines = lines[:timeKeyScanLines]
	}

	for _, line := range lines {
		m := clockRE.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		h := atoi(m[1])
		min := atoi(m[2])
		return h*60 + min
	}
	return -1
}

func atoi(s string) int {
	n := 0
	for _, r := range s {
		n = n*10 + int(r-'0')
	}
	return n
}

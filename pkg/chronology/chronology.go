// Package chronology assigns calendar dates to OCR'd journal pages.
// Page headers are frequently missing or corrupted by OCR, so no single
// page is trusted in isolation: candidates parsed from the text are
// validated against the calendar, reconciled against their stated
// weekday, repaired using the chronology of surrounding pages, and
// finally interpolated across short runs of dateless pages.
//
// The engine is pure and deterministic. It performs no I/O, and the only
// failure mode is absence: a page that yields no usable evidence receives
// an assignment with a nil date rather than an error.
package chronology

import "time"

// Method identifies how a page's date assignment was produced.
type Method string

// Assignment methods, in decreasing order of evidence strength.
const (
	MethodParsed   Method = "parsed"
	MethodRepaired Method = "repaired"
	MethodInferred Method = "inferred"
	MethodNone     Method = "none"
)

// Page is a single OCR'd journal page. The engine only reads the first
// few lines of Text; it never mutates a Page.
type Page struct {
	Journal string
	Number  int
	Text    string
}

// Assignment is the engine's verdict for one page. Date is nil exactly
// when Method is MethodNone. Confidence is in [0, 1]; parsed dates always
// carry 1.0. Note is diagnostic only and never interpreted downstream.
type Assignment struct {
	Date       *time.Time
	Method     Method
	Confidence float64
	Note       string
}

// Candidate holds the raw header tokens parsed from a page before any
// calendar validation. Source records the exact line(s) matched.
type Candidate struct {
	Weekday    string
	MonthToken string
	DayToken   string
	YearToken  string
	Source     string
}

// Policy controls the optional heuristic passes. Header parsing is always
// attempted; repair and gap inference are gated.
type Policy struct {
	AllowRepair             bool
	AllowInferContinuations bool

	// MaxWindowDays is the repair search radius around the expected
	// next-entry date.
	MaxWindowDays int

	// AutoMinHits and AutoScanPages configure auto-mode detection:
	// date grouping is considered viable once AutoMinHits pages among
	// the first AutoScanPages produce a valid date.
	AutoMinHits   int
	AutoScanPages int
}

// DefaultPolicy returns the standard heuristic configuration.
func DefaultPolicy() Policy {
	return Policy{
		AllowRepair:             true,
		AllowInferContinuations: true,
		MaxWindowDays:           14,
		AutoMinHits:             3,
		AutoScanPages:           20,
	}
}

// Date constructs a calendar date at UTC midnight. All engine arithmetic
// operates on dates in this form.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}

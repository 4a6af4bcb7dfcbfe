package chronology

import (
	"strconv"
	"strings"
	"time"
)

// Repair heuristics. The scoring constants encode which OCR corruptions
// are common: month-name garbling and dropped day digits are cheap to
// assume, arbitrary day mismatches are not. repairRejectDays is the hard
// cutoff past which a best match is discarded outright; the original
// values are preserved as observable behavior.
const (
	repairRejectDays = 7

	monthMismatchPenalty = 3.0
	dayDigitDropPenalty  = 0.5
	dayMismatchPenalty   = 2.0

	repairConfidenceFloor = 0.2
)

// maxEntryGapDays is the largest forward step between consecutive pages
// considered chronologically plausible. A normalized date further than
// this from the previous page's date (or any backward step) triggers the
// repair search.
const maxEntryGapDays = 3

func implausible(deltaDays int) bool {
	return deltaDays < 0 || deltaDays > maxEntryGapDays
}

// repairWithContext searches for a plausible replacement date when a
// page's parsed date diverges from the chronology of the pages before it.
// The search window is centered on prev+1 (the expected next entry); each
// candidate must match the header's year and weekday exactly and is
// scored by distance plus month/day resemblance penalties. Returns nil
// when no candidate survives, including when the best match lies more
// than repairRejectDays from the target: a poor repair is worse than an
// unrepaired page.
func repairWithContext(c *Candidate, prev time.Time, policy Policy) *Assignment {
	want, ok := statedWeekday(c.Weekday)
	if !ok {
		return nil
	}

	year, err := strconv.Atoi(c.YearToken)
	if err != nil {
		return nil
	}
	ocrDay, err := strconv.Atoi(c.DayToken)
	if err != nil {
		return nil
	}

	parsedMonth := monthNumber(c.MonthToken)

	target := prev.AddDate(0, 0, 1)

	found := false
	var bestScore float64
	var bestDate time.Time

	for offset := -policy.MaxWindowDays; offset <= policy.MaxWindowDays; offset++ {
		cand := target.AddDate(0, 0, offset)
		if cand.Year() != year {
			continue
		}
		if cand.Weekday() != want {
			continue
		}

		score := float64(abs(offset))

		if parsedMonth != 0 && int(cand.Month()) != parsedMonth {
			score += monthMismatchPenalty
		}

		if cand.Day() != ocrDay {
			if strings.HasSuffix(strconv.Itoa(cand.Day()), strconv.Itoa(ocrDay)) {
				score += dayDigitDropPenalty
			} else {
				score += dayMismatchPenalty
			}
		}

		if !found || score < bestScore {
			found = true
			bestScore = score
			bestDate = cand
		}
	}

	if !found {
		return nil
	}
	if abs(daysBetween(target, bestDate)) > repairRejectDays {
		return nil
	}

	confidence := 1.0 - bestScore/10.0
	if confidence < repairConfidenceFloor {
		confidence = repairConfidenceFloor
	}

	return &Assignment{
		Date:       &bestDate,
		Method:     MethodRepaired,
		Confidence: confidence,
	}
}

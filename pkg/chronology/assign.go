package chronology

import "time"

// Inference confidence levels. Neighbor-gap fills rest on two anchoring
// dates; trailing continuations rest on one.
const (
	neighborGapConfidence = 0.3
	trailingConfidence    = 0.2
)

// Diagnostic notes attached to inferred assignments.
const (
	noteNeighborGap = "neighbor-gap"
	noteTrailing    = "trailing"
)

// AssignDates runs the full engine over one document's pages: the
// parse/normalize/reconcile/repair pass followed, when the policy allows,
// by gap inference. The result is index-aligned with pages.
func AssignDates(pages []Page, policy Policy) []Assignment {
	assigns := Assign(pages, policy)
	if !policy.AllowInferContinuations {
		return assigns
	}
	return InferGaps(assigns)
}

// Assign is the first pass. Pages are processed once, in order, threading
// the previously accepted date forward; each page's header candidate is
// parsed, normalized, and — when the result is chronologically
// implausible and the policy allows — repaired against that context.
// Every page receives an assignment, nil-dated when evidence is
// insufficient.
func Assign(pages []Page, policy Policy) []Assignment {
	assigns := make([]Assignment, 0, len(pages))
	var prev *time.Time

	for _, p := range pages {
		cand := ParseHeader(p.Text)
		if cand == nil {
			assigns = append(assigns, none())
			continue
		}

		d := NormalizeDate(cand)
		if d != nil && prev != nil && policy.AllowRepair && implausible(daysBetween(*prev, *d)) {
			if rep := repairWithContext(cand, *prev, policy); rep != nil && rep.Date != nil {
				assigns = append(assigns, *rep)
				prev = rep.Date
				continue
			}
		}

		if d == nil {
			assigns = append(assigns, none())
			continue
		}

		assigns = append(assigns, Assignment{Date: d, Method: MethodParsed, Confidence: 1.0})
		prev = d
	}

	return assigns
}

// InferGaps is the second pass: it fills a conservative subset of the
// nil-dated pages using the dates surrounding them. Between consecutive
// known dates, intervening pages are filled only when the dates are one
// day apart (same-day continuations of a multi-page entry) or two days
// apart (a single skipped header day); larger or non-positive gaps are
// deliberately left unresolved. Pages after the last known date continue
// that date. Pass-1 dates are never overwritten.
func InferGaps(assigns []Assignment) []Assignment {
	out := make([]Assignment, len(assigns))
	copy(out, assigns)

	type known struct {
		index int
		date  time.Time
	}

	var anchors []known
	for i, a := range out {
		if a.Date != nil {
			anchors = append(anchors, known{index: i, date: *a.Date})
		}
	}

	for k := 0; k+1 < len(anchors); k++ {
		a0, a1 := anchors[k], anchors[k+1]
		if a1.index <= a0.index+1 {
			continue
		}

		var fill time.Time
		switch daysBetween(a0.date, a1.date) {
		case 1:
			fill = a0.date
		case 2:
			fill = a0.date.AddDate(0, 0, 1)
		default:
			continue
		}

		for i := a0.index + 1; i < a1.index; i++ {
			if out[i].Date == nil {
				d := fill
				out[i] = Assignment{
					Date:       &d,
					Method:     MethodInferred,
					Confidence: neighborGapConfidence,
					Note:       noteNeighborGap,
				}
			}
		}
	}

	if len(anchors) > 0 {
		last := anchors[len(anchors)-1]
		for i := last.index + 1; i < len(out); i++ {
			if out[i].Date == nil {
				d := last.date
				out[i] = Assignment{
					Date:       &d,
					Method:     MethodInferred,
					Confidence: trailingConfidence,
					Note:       noteTrailing,
				}
			}
		}
	}

	return out
}

// AutoDetect reports whether date-based grouping is viable for a
// document at all. It scans the first Policy.AutoScanPages pages and
// short-circuits once Policy.AutoMinHits of them yield a valid date;
// journals without dates, or with dates in an unsupported format, fail
// the threshold and should be grouped by page instead.
func AutoDetect(pages []Page, policy Policy) bool {
	hits := 0
	for i, p := range pages {
		if i >= policy.AutoScanPages {
			break
		}
		cand := ParseHeader(p.Text)
		if cand == nil {
			continue
		}
		if NormalizeDate(cand) != nil {
			hits++
		}
		if hits >= policy.AutoMinHits {
			return true
		}
	}
	return false
}

func none() Assignment {
	return Assignment{Method: MethodNone, Confidence: 0.0}
}

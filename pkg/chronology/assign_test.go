package chronology_test

import (
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/inkwell-io/inkwell/pkg/chronology"
)

func page(n int, text string) chronology.Page {
	return chronology.Page{Journal: "journal-a", Number: n, Text: text}
}

func dated(d time.Time) chronology.Assignment {
	return chronology.Assignment{Date: &d, Method: chronology.MethodParsed, Confidence: 1.0}
}

func undated() chronology.Assignment {
	return chronology.Assignment{Method: chronology.MethodNone}
}

func checkInvariants(t *testing.T, assigns []chronology.Assignment) {
	t.Helper()
	for i, a := range assigns {
		if (a.Method == chronology.MethodNone) != (a.Date == nil) {
			t.Errorf("assignment %d: method %q with date %v", i, a.Method, a.Date)
		}
		if a.Confidence < 0 || a.Confidence > 1 {
			t.Errorf("assignment %d: confidence %v out of range", i, a.Confidence)
		}
		if a.Method == chronology.MethodParsed && a.Confidence != 1.0 {
			t.Errorf("assignment %d: parsed confidence = %v, want 1.0", i, a.Confidence)
		}
	}
}

func TestAssignParsesHeaders(t *testing.T) {
	pages := []chronology.Page{
		page(1, "FRIDAY, JANUARY 10, 2025\nfirst entry"),
		page(2, "no header on this page"),
		page(3, "SATURDAY, JANUARY 11, 2025\nnext entry"),
	}

	assigns := chronology.Assign(pages, chronology.DefaultPolicy())
	checkInvariants(t, assigns)

	if len(assigns) != len(pages) {
		t.Fatalf("len = %d, want %d", len(assigns), len(pages))
	}
	if assigns[0].Method != chronology.MethodParsed || !assigns[0].Date.Equal(chronology.Date(2025, time.January, 10)) {
		t.Errorf("page 1 = %+v", assigns[0])
	}
	if assigns[1].Method != chronology.MethodNone || assigns[1].Date != nil {
		t.Errorf("page 2 = %+v", assigns[1])
	}
	if assigns[2].Method != chronology.MethodParsed || !assigns[2].Date.Equal(chronology.Date(2025, time.January, 11)) {
		t.Errorf("page 3 = %+v", assigns[2])
	}
}

func TestAssignRepairsImplausibleDate(t *testing.T) {
	// 2025-01-27 is sixteen days past the previous entry, far beyond a
	// plausible page-to-page step. The closest Sunday to the expected
	// next entry (2025-01-11) in 2025 is 2025-01-12, one day out.
	pages := []chronology.Page{
		page(1, "FRIDAY, JANUARY 10, 2025\nfirst entry"),
		page(2, "SUNDAY, JANUARY 27, 2025\nmisread day"),
	}

	assigns := chronology.Assign(pages, chronology.DefaultPolicy())
	checkInvariants(t, assigns)

	if assigns[1].Method != chronology.MethodRepaired {
		t.Fatalf("method = %q, want repaired", assigns[1].Method)
	}
	if !assigns[1].Date.Equal(chronology.Date(2025, time.January, 12)) {
		t.Errorf("date = %v, want 2025-01-12", assigns[1].Date)
	}
	// score 3.0: one day from target plus a flat day mismatch.
	if assigns[1].Confidence != 0.7 {
		t.Errorf("confidence = %v, want 0.7", assigns[1].Confidence)
	}
}

func TestAssignRepairsDroppedDayDigit(t *testing.T) {
	// "3" misread from "13": the repaired day's decimal string ends with
	// the OCR token, so resemblance costs 0.5 instead of 2.0.
	pages := []chronology.Page{
		page(1, "FRIDAY, JANUARY 10, 2025\nfirst entry"),
		page(2, "MONDAY, JANUARY 3, 2025\ndropped digit"),
	}

	assigns := chronology.Assign(pages, chronology.DefaultPolicy())
	checkInvariants(t, assigns)

	if assigns[1].Method != chronology.MethodRepaired {
		t.Fatalf("method = %q, want repaired", assigns[1].Method)
	}
	if !assigns[1].Date.Equal(chronology.Date(2025, time.January, 13)) {
		t.Errorf("date = %v, want 2025-01-13", assigns[1].Date)
	}
	if assigns[1].Confidence != 0.75 {
		t.Errorf("confidence = %v, want 0.75", assigns[1].Confidence)
	}
}

func TestAssignRejectsDistantRepair(t *testing.T) {
	// The only Sunday in 2026 within the search window is fourteen days
	// from the expected next entry; a match that far out is rejected and
	// the page keeps its parsed date.
	pages := []chronology.Page{
		page(1, "SATURDAY, DECEMBER 20, 2025\nyear end"),
		page(2, "SUNDAY, JANUARY 4, 2026\nnew year"),
	}

	assigns := chronology.Assign(pages, chronology.DefaultPolicy())
	checkInvariants(t, assigns)

	if assigns[1].Method != chronology.MethodParsed {
		t.Fatalf("method = %q, want parsed", assigns[1].Method)
	}
	if !assigns[1].Date.Equal(chronology.Date(2026, time.January, 4)) {
		t.Errorf("date = %v, want 2026-01-04", assigns[1].Date)
	}
}

func TestAssignRepairDisabled(t *testing.T) {
	policy := chronology.DefaultPolicy()
	policy.AllowRepair = false

	pages := []chronology.Page{
		page(1, "FRIDAY, JANUARY 10, 2025\nfirst entry"),
		page(2, "SUNDAY, JANUARY 27, 2025\nmisread day"),
	}

	assigns := chronology.Assign(pages, policy)
	checkInvariants(t, assigns)

	if assigns[1].Method != chronology.MethodParsed {
		t.Errorf("method = %q, want parsed", assigns[1].Method)
	}
	// Weekday reconciliation still applies: 2025-01-26 is the Sunday
	// nearest the misread 2025-01-27.
	if !assigns[1].Date.Equal(chronology.Date(2025, time.January, 26)) {
		t.Errorf("date = %v, want 2025-01-26", assigns[1].Date)
	}
}

func TestInferGaps(t *testing.T) {
	t.Run("one-day gap fills continuation", func(t *testing.T) {
		assigns := chronology.InferGaps([]chronology.Assignment{
			dated(chronology.Date(2025, time.January, 1)),
			undated(),
			dated(chronology.Date(2025, time.January, 2)),
		})
		checkInvariants(t, assigns)

		mid := assigns[1]
		if mid.Method != chronology.MethodInferred || !mid.Date.Equal(chronology.Date(2025, time.January, 1)) {
			t.Errorf("middle = %+v, want inferred 2025-01-01", mid)
		}
		if mid.Confidence != 0.3 || mid.Note != "neighbor-gap" {
			t.Errorf("middle = %+v", mid)
		}
	})

	t.Run("two-day gap fills implied day", func(t *testing.T) {
		assigns := chronology.InferGaps([]chronology.Assignment{
			dated(chronology.Date(2025, time.January, 1)),
			undated(),
			dated(chronology.Date(2025, time.January, 3)),
		})
		checkInvariants(t, assigns)

		if !assigns[1].Date.Equal(chronology.Date(2025, time.January, 2)) {
			t.Errorf("middle date = %v, want 2025-01-02", assigns[1].Date)
		}
	})

	t.Run("wide gap left unresolved", func(t *testing.T) {
		assigns := chronology.InferGaps([]chronology.Assignment{
			dated(chronology.Date(2025, time.January, 1)),
			undated(),
			undated(),
			dated(chronology.Date(2025, time.January, 10)),
		})
		checkInvariants(t, assigns)

		if assigns[1].Date != nil || assigns[2].Date != nil {
			t.Errorf("middle pages = %+v, %+v, want undated", assigns[1], assigns[2])
		}
	})

	t.Run("backward gap left unresolved", func(t *testing.T) {
		assigns := chronology.InferGaps([]chronology.Assignment{
			dated(chronology.Date(2025, time.January, 5)),
			undated(),
			dated(chronology.Date(2025, time.January, 4)),
		})
		checkInvariants(t, assigns)

		if assigns[1].Date != nil {
			t.Errorf("middle = %+v, want undated", assigns[1])
		}
	})

	t.Run("trailing pages continue last date", func(t *testing.T) {
		assigns := chronology.InferGaps([]chronology.Assignment{
			dated(chronology.Date(2025, time.January, 5)),
			undated(),
			undated(),
		})
		checkInvariants(t, assigns)

		for i := 1; i < 3; i++ {
			a := assigns[i]
			if a.Method != chronology.MethodInferred || !a.Date.Equal(chronology.Date(2025, time.January, 5)) {
				t.Errorf("page %d = %+v, want inferred 2025-01-05", i, a)
			}
			if a.Confidence != 0.2 || a.Note != "trailing" {
				t.Errorf("page %d = %+v", i, a)
			}
		}
	})

	t.Run("filled dates do not share storage", func(t *testing.T) {
		assigns := chronology.InferGaps([]chronology.Assignment{
			dated(chronology.Date(2025, time.January, 1)),
			undated(),
			undated(),
			dated(chronology.Date(2025, time.January, 2)),
		})
		checkInvariants(t, assigns)

		if assigns[1].Date == assigns[2].Date {
			t.Fatal("expected each inferred assignment to carry its own date")
		}
		*assigns[1].Date = chronology.Date(1999, time.June, 1)
		if !assigns[2].Date.Equal(chronology.Date(2025, time.January, 1)) {
			t.Errorf("page 3 date = %v, want 2025-01-01", assigns[2].Date)
		}
	})

	t.Run("never overwrites pass-1 dates", func(t *testing.T) {
		in := []chronology.Assignment{
			dated(chronology.Date(2025, time.January, 1)),
			dated(chronology.Date(2025, time.January, 2)),
		}
		assigns := chronology.InferGaps(in)
		if !reflect.DeepEqual(assigns, in) {
			t.Errorf("assigns = %+v, want unchanged", assigns)
		}
	})

	t.Run("all undated stays undated", func(t *testing.T) {
		assigns := chronology.InferGaps([]chronology.Assignment{undated(), undated()})
		checkInvariants(t, assigns)
		for i, a := range assigns {
			if a.Date != nil {
				t.Errorf("page %d = %+v, want undated", i, a)
			}
		}
	})
}

func TestAutoDetect(t *testing.T) {
	header := func(day int) string {
		d := chronology.Date(2025, time.March, day)
		return fmt.Sprintf("%s, MARCH %d, 2025\nentry", d.Weekday(), day)
	}

	t.Run("threshold met", func(t *testing.T) {
		pages := []chronology.Page{
			page(1, header(1)),
			page(2, "undated page"),
			page(3, header(2)),
			page(4, header(3)),
		}
		if !chronology.AutoDetect(pages, chronology.DefaultPolicy()) {
			t.Error("AutoDetect = false, want true")
		}
	})

	t.Run("threshold missed", func(t *testing.T) {
		pages := []chronology.Page{
			page(1, header(1)),
			page(2, "undated page"),
			page(3, header(2)),
		}
		if chronology.AutoDetect(pages, chronology.DefaultPolicy()) {
			t.Error("AutoDetect = true, want false")
		}
	})

	t.Run("hits beyond scan window do not count", func(t *testing.T) {
		policy := chronology.DefaultPolicy()
		policy.AutoScanPages = 2

		pages := []chronology.Page{
			page(1, header(1)),
			page(2, "undated page"),
			page(3, header(2)),
			page(4, header(3)),
		}
		if chronology.AutoDetect(pages, policy) {
			t.Error("AutoDetect = true, want false")
		}
	})
}

func TestAssignDatesDeterministic(t *testing.T) {
	pages := []chronology.Page{
		page(1, "FRIDAY, JANUARY 10, 2025\nfirst"),
		page(2, "same-day continuation"),
		page(3, "SATURDAY, JANUARY 11, 2025\nsecond"),
		page(4, "SUNDAY, JANUARY 27, 2025\nmisread"),
		page(5, "trailing page"),
	}
	policy := chronology.DefaultPolicy()

	first := chronology.AssignDates(pages, policy)
	checkInvariants(t, first)

	for range 10 {
		if got := chronology.AssignDates(pages, policy); !reflect.DeepEqual(got, first) {
			t.Fatalf("non-deterministic output: %+v vs %+v", got, first)
		}
	}
}

package chronology_test

import (
	"testing"
	"time"

	"github.com/inkwell-io/inkwell/pkg/chronology"
)

func candidate(weekday, month, day, year string) *chronology.Candidate {
	return &chronology.Candidate{
		Weekday:    weekday,
		MonthToken: month,
		DayToken:   day,
		YearToken:  year,
	}
}

func TestNormalizeDateMonthFuzz(t *testing.T) {
	tests := []struct {
		token string
		want  time.Month
	}{
		{"january", time.January},
		{"Jan", time.January},
		{"Julz", time.July},
		{"Ju|y", time.July},
		{"SEPT", time.September},
		{"octo8er", time.October},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			// Weekday matches the real date so reconciliation is a no-op.
			d := chronology.NormalizeDate(candidate("wednesday", tt.token, "1", "2025"))
			if tt.want == 0 {
				if d != nil {
					t.Fatalf("expected nil, got %v", d)
				}
				return
			}
			if d == nil {
				t.Fatal("expected date, got nil")
			}
			if d.Month() != tt.want {
				t.Errorf("month = %v, want %v", d.Month(), tt.want)
			}
		})
	}

	t.Run("unresolvable token", func(t *testing.T) {
		if d := chronology.NormalizeDate(candidate("monday", "zzz", "1", "2025")); d != nil {
			t.Errorf("expected nil, got %v", d)
		}
	})

	t.Run("too short after stripping", func(t *testing.T) {
		if d := chronology.NormalizeDate(candidate("monday", "j4", "1", "2025")); d != nil {
			t.Errorf("expected nil, got %v", d)
		}
	})
}

func TestNormalizeDateFailsClosed(t *testing.T) {
	tests := []struct {
		name string
		cand *chronology.Candidate
	}{
		{"non-numeric day", candidate("monday", "january", "x", "2025")},
		{"non-numeric year", candidate("monday", "january", "1", "202x")},
		{"out of range day", candidate("monday", "february", "30", "2025")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if d := chronology.NormalizeDate(tt.cand); d != nil {
				t.Errorf("expected nil, got %v", d)
			}
		})
	}
}

func TestWeekdayReconciliation(t *testing.T) {
	t.Run("matching weekday unchanged", func(t *testing.T) {
		// 2025-01-10 is a Friday.
		d := chronology.NormalizeDate(candidate("friday", "january", "10", "2025"))
		if d == nil {
			t.Fatal("expected date, got nil")
		}
		if !d.Equal(chronology.Date(2025, time.January, 10)) {
			t.Errorf("date = %v, want 2025-01-10", d)
		}
	})

	t.Run("nearest future match", func(t *testing.T) {
		// Nearest Monday to 2025-01-10 within 3 days is 2025-01-13.
		d := chronology.NormalizeDate(candidate("monday", "january", "10", "2025"))
		if d == nil {
			t.Fatal("expected date, got nil")
		}
		if !d.Equal(chronology.Date(2025, time.January, 13)) {
			t.Errorf("date = %v, want 2025-01-13", d)
		}
	})

	t.Run("nearest past match", func(t *testing.T) {
		// Nearest Wednesday to 2025-01-10 is 2025-01-08, two days back;
		// the next Wednesday forward is five days out, beyond the window.
		d := chronology.NormalizeDate(candidate("wednesday", "january", "10", "2025"))
		if d == nil {
			t.Fatal("expected date, got nil")
		}
		if !d.Equal(chronology.Date(2025, time.January, 8)) {
			t.Errorf("date = %v, want 2025-01-08", d)
		}
	})

	t.Run("symmetric distances prefer smaller offset", func(t *testing.T) {
		// Sunday is +2 from 2025-01-10 and -5 behind it; only +2 is in
		// window and it wins on displacement.
		d := chronology.NormalizeDate(candidate("sunday", "january", "10", "2025"))
		if d == nil {
			t.Fatal("expected date, got nil")
		}
		if !d.Equal(chronology.Date(2025, time.January, 12)) {
			t.Errorf("date = %v, want 2025-01-12", d)
		}
	})
}

package exports

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

const missingDayNote = "*(no entry parsed for this day)*"

// renderPageGrouped writes a page-ordered export for a single journal.
// An optional note appears under the title.
func renderPageGrouped(journal string, entries []PageEntry, includeSource bool, note string) string {
	parts := []string{fmt.Sprintf("# Journal Pages - %s\n", journal)}
	if note != "" {
		parts = append(parts, "\n"+note+"\n")
	}

	for _, e := range entries {
		parts = append(parts, fmt.Sprintf("\n## Page %04d\n", e.Page))
		if includeSource {
			parts = append(parts, fmt.Sprintf("\n### (%s/page_%04d)\n", e.Journal, e.Page))
		}
		parts = append(parts, strings.TrimRight(e.Text, "\n")+"\n")
	}

	return strings.TrimSpace(strings.Join(parts, "\n")) + "\n"
}

// renderYear writes one yearly export with a heading per day. Entries on
// the same day stay in page order. With fillMissingDays, days between
// entries get a placeholder heading.
func renderYear(year int, entries []PageEntry, includeSource, fillMissingDays bool) string {
	sorted := make([]PageEntry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if !a.Date.Equal(*b.Date) {
			return a.Date.Before(*b.Date)
		}
		if a.Page != b.Page {
			return a.Page < b.Page
		}
		return a.Journal < b.Journal
	})

	parts := []string{fmt.Sprintf("# Journal %d\n", year)}

	var currentDay string
	var currentDate time.Time

	for _, e := range sorted {
		day := e.Date.Format("2006-01-02")

		if fillMissingDays && currentDay != "" {
			for d := currentDate.AddDate(0, 0, 1); d.Before(*e.Date) && d.Year() == year; d = d.AddDate(0, 0, 1) {
				parts = append(parts, fmt.Sprintf("\n## %s\n", d.Format("2006-01-02")))
				parts = append(parts, missingDayNote+"\n")
			}
		}

		if day != currentDay {
			parts = append(parts, fmt.Sprintf("\n## %s\n", day))
			currentDay = day
			currentDate = *e.Date
		}

		if includeSource {
			parts = append(parts, fmt.Sprintf("\n### (%s/page_%04d)\n", e.Journal, e.Page))
		}
		parts = append(parts, strings.TrimRight(e.Text, "\n")+"\n")
	}

	if fillMissingDays && currentDay != "" && currentDate.Year() == year {
		end := time.Date(year, 12, 31, 0, 0, 0, 0, time.UTC)
		for d := currentDate.AddDate(0, 0, 1); !d.After(end); d = d.AddDate(0, 0, 1) {
			parts = append(parts, fmt.Sprintf("\n## %s\n", d.Format("2006-01-02")))
			parts = append(parts, missingDayNote+"\n")
		}
	}

	return strings.TrimSpace(strings.Join(parts, "\n")) + "\n"
}

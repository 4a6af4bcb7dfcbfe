// Package pages implements the page domain for Inkwell. It stores
// recognized page text together with the date assignment produced by
// the chronology engine.
package pages

import (
	"time"

	"github.com/google/uuid"
)

// Page represents one processed journal page. EntryDate is nil when no
// date could be assigned; DateMethod records how the date was obtained.
type Page struct {
	ID             uuid.UUID  `json:"id"`
	JournalID      uuid.UUID  `json:"journal_id"`
	PageNumber     int        `json:"page_number"`
	ImageKey       string     `json:"image_key"`
	Text           string     `json:"text"`
	CorrectedText  string     `json:"corrected_text"`
	OCREngine      string     `json:"ocr_engine"`
	EntryDate      *time.Time `json:"entry_date"`
	DateMethod     string     `json:"date_method"`
	DateConfidence float64    `json:"date_confidence"`
	DateNote       string     `json:"date_note,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// CreateCommand carries one page row for bulk replacement after a
// processing run.
type CreateCommand struct {
	PageNumber     int
	ImageKey       string
	Text           string
	CorrectedText  string
	OCREngine      string
	EntryDate      *time.Time
	DateMethod     string
	DateConfidence float64
	DateNote       string
}

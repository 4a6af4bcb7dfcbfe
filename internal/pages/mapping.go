package pages

import (
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/inkwell-io/inkwell/pkg/query"
	"github.com/inkwell-io/inkwell/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "pages", "p").
	Project("id", "ID").
	Project("journal_id", "JournalID").
	Project("page_number", "PageNumber").
	Project("image_key", "ImageKey").
	Project("text", "Text").
	Project("corrected_text", "CorrectedText").
	Project("ocr_engine", "OCREngine").
	Project("entry_date", "EntryDate").
	Project("date_method", "DateMethod").
	Project("date_confidence", "DateConfidence").
	Project("date_note", "DateNote").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = []query.SortField{
	{Field: "JournalID"},
	{Field: "PageNumber"},
}

// Filters contains optional filtering criteria for page queries.
// Nil fields are ignored. Dated selects pages with (true) or without
// (false) an assigned entry date.
type Filters struct {
	JournalID  *uuid.UUID `json:"journal_id,omitempty"`
	EntryDate  *time.Time `json:"entry_date,omitempty"`
	DateMethod *string    `json:"date_method,omitempty"`
	Dated      *bool      `json:"dated,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	b.
		WhereEquals("JournalID", f.JournalID).
		WhereEquals("EntryDate", f.EntryDate).
		WhereEquals("DateMethod", f.DateMethod)

	if f.Dated != nil {
		b.WhereNull("EntryDate", !*f.Dated)
	}

	return b
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if j := values.Get("journal_id"); j != "" {
		if id, err := uuid.Parse(j); err == nil {
			f.JournalID = &id
		}
	}
	if d := values.Get("entry_date"); d != "" {
		if date, err := time.Parse("2006-01-02", d); err == nil {
			f.EntryDate = &date
		}
	}
	if m := values.Get("date_method"); m != "" {
		f.DateMethod = &m
	}
	if d := values.Get("dated"); d != "" {
		if dated, err := strconv.ParseBool(d); err == nil {
			f.Dated = &dated
		}
	}

	return f
}

func scanPage(s repository.Scanner) (Page, error) {
	var p Page
	err := s.Scan(
		&p.ID,
		&p.JournalID,
		&p.PageNumber,
		&p.ImageKey,
		&p.Text,
		&p.CorrectedText,
		&p.OCREngine,
		&p.EntryDate,
		&p.DateMethod,
		&p.DateConfidence,
		&p.DateNote,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}

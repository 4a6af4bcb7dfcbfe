package journals

import (
	"net/url"

	"github.com/inkwell-io/inkwell/pkg/query"
	"github.com/inkwell-io/inkwell/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "journals", "j").
	Project("id", "ID").
	Project("name", "Name").
	Project("filename", "Filename").
	Project("content_type", "ContentType").
	Project("size_bytes", "SizeBytes").
	Project("page_count", "PageCount").
	Project("storage_key", "StorageKey").
	Project("status", "Status").
	Project("uploaded_at", "UploadedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{
	Field:      "UploadedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for journal queries.
// Nil fields are ignored. Status and ContentType use exact matching.
// Name and Filename use case-insensitive contains matching.
type Filters struct {
	Status      *string `json:"status,omitempty"`
	Name        *string `json:"name,omitempty"`
	Filename    *string `json:"filename,omitempty"`
	ContentType *string `json:"content_type,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("Status", f.Status).
		WhereContains("Name", f.Name).
		WhereContains("Filename", f.Filename).
		WhereEquals("ContentType", f.ContentType)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if s := values.Get("status"); s != "" {
		f.Status = &s
	}
	if n := values.Get("name"); n != "" {
		f.Name = &n
	}
	if fn := values.Get("filename"); fn != "" {
		f.Filename = &fn
	}
	if ct := values.Get("content_type"); ct != "" {
		f.ContentType = &ct
	}

	return f
}

func scanJournal(s repository.Scanner) (Journal, error) {
	var j Journal
	err := s.Scan(
		&j.ID,
		&j.Name,
		&j.Filename,
		&j.ContentType,
		&j.SizeBytes,
		&j.PageCount,
		&j.StorageKey,
		&j.Status,
		&j.UploadedAt,
		&j.UpdatedAt,
	)
	return j, err
}

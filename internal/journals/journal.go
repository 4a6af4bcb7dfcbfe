// Package journals implements the journal domain for Inkwell.
// It provides types, data access, and business logic for journal
// container upload, registration, metadata management, and blob
// storage integration.
package journals

import (
	"time"

	"github.com/google/uuid"
)

// Journal lifecycle statuses.
const (
	StatusRegistered = "registered"
	StatusProcessing = "processing"
	StatusProcessed  = "processed"
	StatusFailed     = "failed"
)

// Journal content types.
const (
	ContentTypeInk = "application/x-ms-journal"
	ContentTypePDF = "application/pdf"
)

// Journal represents a registered journal container with its metadata
// and blob storage reference. Name is the logical journal name derived
// from the filename stem; a "-pdf" suffix marks scanned material whose
// page order carries no chronology.
type Journal struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Filename    string    `json:"filename"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	PageCount   *int      `json:"page_count"`
	StorageKey  string    `json:"storage_key"`
	Status      string    `json:"status"`
	UploadedAt  time.Time `json:"uploaded_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Sequential reports whether page order is expected to follow chronology.
// Scanned PDF imports are browsed page by page instead.
func (j *Journal) Sequential() bool {
	return !hasPDFSuffix(j.Name)
}

// CreateCommand carries the data needed to upload and register a new journal.
// Data holds the raw container bytes. Name defaults to the filename stem when
// empty. PageCount is optional and may be extracted by the caller; nil values
// are stored as NULL.
type CreateCommand struct {
	Data        []byte
	Filename    string
	ContentType string
	Name        string
	PageCount   *int
}

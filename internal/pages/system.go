package pages

import (
	"context"

	"github.com/google/uuid"

	"github.com/inkwell-io/inkwell/pkg/pagination"
)

// System defines the public contract for page domain operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Page], error)

	Find(ctx context.Context, id uuid.UUID) (*Page, error)

	// ListByJournal returns every page of a journal ordered by page number.
	ListByJournal(ctx context.Context, journalID uuid.UUID) ([]Page, error)

	// Replace atomically swaps a journal's pages for the given rows.
	// Reprocessing a journal always produces a full page set.
	Replace(ctx context.Context, journalID uuid.UUID, cmds []CreateCommand) ([]Page, error)
}

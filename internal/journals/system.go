package journals

import (
	"context"

	"github.com/google/uuid"

	"github.com/inkwell-io/inkwell/pkg/pagination"
)

// System defines the public contract for journal domain operations.
type System interface {
	Handler(maxUploadSize int64) *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Journal], error)

	Find(ctx context.Context, id uuid.UUID) (*Journal, error)
	Create(ctx context.Context, cmd CreateCommand) (*Journal, error)
	Delete(ctx context.Context, id uuid.UUID) error

	SetStatus(ctx context.Context, id uuid.UUID, status string) error
	SetPageCount(ctx context.Context, id uuid.UUID, count int) error
}

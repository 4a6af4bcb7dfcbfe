package pages

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/inkwell-io/inkwell/pkg/pagination"
	"github.com/inkwell-io/inkwell/pkg/query"
	"github.com/inkwell-io/inkwell/pkg/repository"
)

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a page repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "pages"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Page], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort...).
		WhereSearch(page.Search, "Text", "CorrectedText")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count pages: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanPage)
	if err != nil {
		return nil, fmt.Errorf("query pages: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Page, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	p, err := repository.QueryOne(ctx, r.db, q, args, scanPage)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &p, nil
}

func (r *repo) ListByJournal(ctx context.Context, journalID uuid.UUID) ([]Page, error) {
	id := journalID
	q, args := query.
		NewBuilder(projection, query.SortField{Field: "PageNumber"}).
		WhereEquals("JournalID", &id).
		Build()

	items, err := repository.QueryMany(ctx, r.db, q, args, scanPage)
	if err != nil {
		return nil, fmt.Errorf("query journal pages: %w", err)
	}

	return items, nil
}

const insertPage = `
	INSERT INTO pages(id, journal_id, page_number, image_key, text, corrected_text, ocr_engine, entry_date, date_method, date_confidence, date_note)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	RETURNING id, journal_id, page_number, image_key, text, corrected_text, ocr_engine, entry_date, date_method, date_confidence, date_note, created_at, updated_at`

func (r *repo) Replace(ctx context.Context, journalID uuid.UUID, cmds []CreateCommand) ([]Page, error) {
	inserted, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) ([]Page, error) {
		if _, err := tx.ExecContext(
			ctx,
			"DELETE FROM pages WHERE journal_id = $1",
			journalID,
		); err != nil {
			return nil, fmt.Errorf("clear journal pages: %w", err)
		}

		out := make([]Page, 0, len(cmds))
		for _, cmd := range cmds {
			args := []any{
				uuid.New(),
				journalID,
				cmd.PageNumber,
				cmd.ImageKey,
				cmd.Text,
				cmd.CorrectedText,
				cmd.OCREngine,
				cmd.EntryDate,
				cmd.DateMethod,
				cmd.DateConfidence,
				cmd.DateNote,
			}

			p, err := repository.QueryOne(ctx, tx, insertPage, args, scanPage)
			if err != nil {
				return nil, fmt.Errorf("insert page %d: %w", cmd.PageNumber, err)
			}
			out = append(out, p)
		}

		return out, nil
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("journal pages replaced", "journal", journalID, "pages", len(inserted))
	return inserted, nil
}

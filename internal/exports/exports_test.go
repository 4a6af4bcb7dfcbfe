package exports

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/inkwell-io/inkwell/internal/journals"
	"github.com/inkwell-io/inkwell/internal/pages"
	"github.com/inkwell-io/inkwell/pkg/chronology"
	"github.com/inkwell-io/inkwell/pkg/lifecycle"
	"github.com/inkwell-io/inkwell/pkg/pagination"
	"github.com/inkwell-io/inkwell/pkg/storage"
)

type fakeJournals struct {
	data []journals.Journal
}

func (f *fakeJournals) Handler(int64) *journals.Handler { return nil }

func (f *fakeJournals) List(
	_ context.Context,
	page pagination.PageRequest,
	_ journals.Filters,
) (*pagination.PageResult[journals.Journal], error) {
	result := pagination.NewPageResult(f.data, len(f.data), page.Page, page.PageSize)
	return &result, nil
}

func (f *fakeJournals) Find(context.Context, uuid.UUID) (*journals.Journal, error) {
	return nil, journals.ErrNotFound
}

func (f *fakeJournals) Create(context.Context, journals.CreateCommand) (*journals.Journal, error) {
	return nil, nil
}

func (f *fakeJournals) Delete(context.Context, uuid.UUID) error            { return nil }
func (f *fakeJournals) SetStatus(context.Context, uuid.UUID, string) error { return nil }
func (f *fakeJournals) SetPageCount(context.Context, uuid.UUID, int) error { return nil }

type fakePages struct {
	data map[uuid.UUID][]pages.Page
}

func (f *fakePages) Handler() *pages.Handler { return nil }

func (f *fakePages) List(
	context.Context,
	pagination.PageRequest,
	pages.Filters,
) (*pagination.PageResult[pages.Page], error) {
	return nil, nil
}

func (f *fakePages) Find(context.Context, uuid.UUID) (*pages.Page, error) { return nil, nil }

func (f *fakePages) ListByJournal(_ context.Context, journalID uuid.UUID) ([]pages.Page, error) {
	return f.data[journalID], nil
}

func (f *fakePages) Replace(context.Context, uuid.UUID, []pages.CreateCommand) ([]pages.Page, error) {
	return nil, nil
}

type fakeStorage struct {
	uploads map[string]string
}

func (f *fakeStorage) Start(*lifecycle.Coordinator) error { return nil }

func (f *fakeStorage) Upload(_ context.Context, key string, reader io.Reader, _ string) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	f.uploads[key] = string(data)
	return nil
}

func (f *fakeStorage) Download(context.Context, string) (io.ReadCloser, error) {
	return nil, storage.ErrNotFound
}

func (f *fakeStorage) Find(context.Context, string) (*storage.DownloadResult, error) {
	return nil, storage.ErrNotFound
}

func (f *fakeStorage) Delete(context.Context, string) error { return storage.ErrNotFound }

func (f *fakeStorage) Exists(context.Context, string) (bool, error) { return false, nil }

func (f *fakeStorage) List(context.Context, string, string, int32) (*storage.ListResult, error) {
	return &storage.ListResult{}, nil
}

func newRunFixture(settings Settings) (System, *fakeStorage) {
	id := uuid.New()

	js := &fakeJournals{data: []journals.Journal{{
		ID:     id,
		Name:   "journal-3",
		Status: journals.StatusProcessed,
	}}}

	ps := &fakePages{data: map[uuid.UUID][]pages.Page{id: {
		{JournalID: id, PageNumber: 1, Text: "first entry", EntryDate: day(2025, time.December, 28)},
		{JournalID: id, PageNumber: 2, Text: "later entry", EntryDate: day(2025, time.December, 30)},
	}}}

	store := &fakeStorage{uploads: map[string]string{}}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return New(js, ps, store, logger, chronology.DefaultPolicy(), settings), store
}

func TestRunFillMissingDaysDefault(t *testing.T) {
	sys, store := newRunFixture(Settings{
		Mode:            ModeDate,
		FillMissingDays: true,
		Prefix:          "exports",
	})

	result, err := sys.Run(context.Background(), Options{})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(result.Files) != 1 {
		t.Fatalf("expected 1 file, got %d", len(result.Files))
	}

	content, ok := store.uploads["exports/journal-2025.md"]
	if !ok {
		t.Fatalf("missing yearly export, uploads = %v", store.uploads)
	}
	if !strings.Contains(content, missingDayNote) {
		t.Error("expected gap placeholders under the configured default")
	}
}

func TestRunFillMissingDaysOverride(t *testing.T) {
	sys, store := newRunFixture(Settings{
		Mode:            ModeDate,
		FillMissingDays: true,
		Prefix:          "exports",
	})

	fill := false
	if _, err := sys.Run(context.Background(), Options{FillMissingDays: &fill}); err != nil {
		t.Fatalf("run: %v", err)
	}

	content, ok := store.uploads["exports/journal-2025.md"]
	if !ok {
		t.Fatalf("missing yearly export, uploads = %v", store.uploads)
	}
	if strings.Contains(content, missingDayNote) {
		t.Error("run option should turn the configured fill off")
	}
}

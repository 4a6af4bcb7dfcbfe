// Package workflow orchestrates journal processing: container download,
// page extraction, recognition, date assignment, persistence, and search
// indexing.
package workflow

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/google/uuid"

	"github.com/inkwell-io/inkwell/internal/index"
	"github.com/inkwell-io/inkwell/internal/journals"
	"github.com/inkwell-io/inkwell/internal/pages"
	"github.com/inkwell-io/inkwell/pkg/chronology"
	"github.com/inkwell-io/inkwell/pkg/formatting"
)

const snippetChars = 240

// Result reports the outcome of one processing run.
type Result struct {
	JournalID   uuid.UUID    `json:"journal_id"`
	Name        string       `json:"name"`
	PageCount   int          `json:"page_count"`
	DatedPages  int          `json:"dated_pages"`
	Pages       []pages.Page `json:"pages"`
	CompletedAt time.Time    `json:"completed_at"`
}

// Execute runs the processing pipeline for a single journal. The journal
// moves through processing to processed, or to failed when any stage
// breaks. Reprocessing replaces the journal's page set.
func Execute(ctx context.Context, rt *Runtime, journalID uuid.UUID) (*Result, error) {
	j, err := rt.Journals.Find(ctx, journalID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrJournalNotFound, err)
	}

	if err := rt.Journals.SetStatus(ctx, journalID, journals.StatusProcessing); err != nil {
		return nil, fmt.Errorf("mark processing: %w", err)
	}

	result, err := run(ctx, rt, j)
	if err != nil {
		if stErr := rt.Journals.SetStatus(ctx, journalID, journals.StatusFailed); stErr != nil {
			rt.Logger.Error("mark failed errored", "journal", journalID, "error", stErr)
		}
		return nil, err
	}

	if err := rt.Journals.SetStatus(ctx, journalID, journals.StatusProcessed); err != nil {
		return nil, fmt.Errorf("mark processed: %w", err)
	}

	return result, nil
}

func run(ctx context.Context, rt *Runtime, j *journals.Journal) (*Result, error) {
	tempDir, err := os.MkdirTemp("", "inkwell-process-*")
	if err != nil {
		return nil, fmt.Errorf("create temp directory: %w", err)
	}
	defer os.RemoveAll(tempDir)

	containerPath, err := downloadContainer(ctx, rt, j, tempDir)
	if err != nil {
		return nil, err
	}

	inkPages, err := extractPages(j, containerPath)
	if err != nil {
		return nil, err
	}

	rt.Logger.Info("pages extracted", "journal", j.ID, "pages", len(inkPages))

	recognized, err := recognizePages(ctx, rt, j.ID, inkPages)
	if err != nil {
		return nil, err
	}

	assigns := assignDates(rt, j, recognized)

	stored, err := persistPages(ctx, rt, j, recognized, assigns)
	if err != nil {
		return nil, err
	}

	if err := indexPages(rt, j, stored); err != nil {
		rt.Logger.Warn("page indexing failed", "journal", j.ID, "error", err)
	}

	if err := rt.Journals.SetPageCount(ctx, j.ID, len(stored)); err != nil {
		rt.Logger.Warn("page count update failed", "journal", j.ID, "error", err)
	}

	dated := 0
	for _, p := range stored {
		if p.EntryDate != nil {
			dated++
		}
	}

	rt.Logger.Info(
		"journal processed",
		"journal", j.ID,
		"pages", len(stored),
		"dated", dated,
	)

	return &Result{
		JournalID:   j.ID,
		Name:        j.Name,
		PageCount:   len(stored),
		DatedPages:  dated,
		Pages:       stored,
		CompletedAt: time.Now(),
	}, nil
}

// assignDates runs the chronology engine over recognized text. Journals
// whose page order carries no chronology get a parse-only pass.
func assignDates(rt *Runtime, j *journals.Journal, recognized []recognizedPage) []chronology.Assignment {
	policy := rt.Policy
	if !j.Sequential() {
		policy.AllowRepair = false
		policy.AllowInferContinuations = false
	}

	scan := make([]chronology.Page, len(recognized))
	for i, p := range recognized {
		scan[i] = chronology.Page{Journal: j.Name, Number: p.Number, Text: p.Corrected}
	}

	return chronology.AssignDates(scan, policy)
}

func persistPages(
	ctx context.Context,
	rt *Runtime,
	j *journals.Journal,
	recognized []recognizedPage,
	assigns []chronology.Assignment,
) ([]pages.Page, error) {
	cmds := make([]pages.CreateCommand, len(recognized))
	for i, p := range recognized {
		a := assigns[i]
		cmds[i] = pages.CreateCommand{
			PageNumber:     p.Number,
			ImageKey:       p.ImageKey,
			Text:           p.Text,
			CorrectedText:  p.Corrected,
			OCREngine:      rt.OCR.Name(),
			EntryDate:      a.Date,
			DateMethod:     string(a.Method),
			DateConfidence: a.Confidence,
			DateNote:       a.Note,
		}
	}

	stored, err := rt.Pages.Replace(ctx, j.ID, cmds)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersistFailed, err)
	}

	return stored, nil
}

func indexPages(rt *Runtime, j *journals.Journal, stored []pages.Page) error {
	docs := make([]index.PageDocument, len(stored))
	for i, p := range stored {
		text := p.CorrectedText
		if text == "" {
			text = p.Text
		}

		doc := index.PageDocument{
			Journal: j.ID.String(),
			Page:    p.PageNumber,
			TimeKey: formatting.TimeKey(text),
			Snippet: formatting.Snippet(text, snippetChars),
			Text:    text,
		}
		if p.EntryDate != nil {
			doc.Date = p.EntryDate.Format("2006-01-02")
		}

		docs[i] = doc
	}

	return rt.Index.Index(docs...)
}

func workerCount(pageCount int) int {
	return max(min(runtime.NumCPU(), pageCount), 1)
}

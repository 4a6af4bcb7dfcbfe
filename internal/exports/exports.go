// Package exports builds grouped markdown exports from processed journal
// pages. Journals with detectable chronology produce yearly date-grouped
// files; the rest fall back to page-grouped files.
package exports

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/inkwell-io/inkwell/internal/journals"
	"github.com/inkwell-io/inkwell/internal/pages"
	"github.com/inkwell-io/inkwell/pkg/chronology"
	"github.com/inkwell-io/inkwell/pkg/pagination"
	"github.com/inkwell-io/inkwell/pkg/storage"
)

// Grouping modes.
const (
	ModeAuto = "auto"
	ModeDate = "date"
	ModePage = "page"
)

// Settings holds construction-time export defaults.
type Settings struct {
	Mode            string
	FillMissingDays bool
	Prefix          string
}

// Options controls a single export run. Unset values fall back to the
// configured defaults.
type Options struct {
	Mode            string `json:"mode,omitempty"`
	IncludeSource   bool   `json:"include_source,omitempty"`
	FillMissingDays *bool  `json:"fill_missing_days,omitempty"`
	MinYear         *int   `json:"min_year,omitempty"`
	MaxYear         *int   `json:"max_year,omitempty"`
}

// File describes one uploaded export artifact.
type File struct {
	Key     string `json:"key"`
	Entries int    `json:"entries"`
}

// RunResult reports the artifacts produced by an export run.
type RunResult struct {
	Files []File `json:"files"`
}

// System defines the public contract for export operations.
type System interface {
	Handler() *Handler
	Run(ctx context.Context, opts Options) (*RunResult, error)
}

type system struct {
	journals journals.System
	pages    pages.System
	storage  storage.System
	logger   *slog.Logger
	policy   chronology.Policy
	settings Settings
}

// New creates an export system over the journal and page domains.
func New(
	js journals.System,
	ps pages.System,
	store storage.System,
	logger *slog.Logger,
	policy chronology.Policy,
	settings Settings,
) System {
	return &system{
		journals: js,
		pages:    ps,
		storage:  store,
		logger:   logger.With("system", "exports"),
		policy:   policy,
		settings: settings,
	}
}

func (s *system) Handler() *Handler {
	return NewHandler(s, s.storage, s.logger, s.settings.Prefix)
}

func (s *system) Run(ctx context.Context, opts Options) (*RunResult, error) {
	mode := opts.Mode
	if mode == "" {
		mode = s.settings.Mode
	}
	if mode != ModeAuto && mode != ModeDate && mode != ModePage {
		return nil, fmt.Errorf("%w: %s", ErrInvalidMode, mode)
	}

	fill := s.settings.FillMissingDays
	if opts.FillMissingDays != nil {
		fill = *opts.FillMissingDays
	}

	processed, err := s.processedJournals(ctx)
	if err != nil {
		return nil, err
	}

	result := &RunResult{Files: []File{}}
	byYear := make(map[int][]PageEntry)

	for _, j := range processed {
		rows, err := s.pages.ListByJournal(ctx, j.ID)
		if err != nil {
			return nil, fmt.Errorf("load pages for %s: %w", j.Name, err)
		}

		entries := pageEntries(j.Name, rows)
		if len(entries) == 0 {
			continue
		}

		journalMode := mode
		if journalMode == ModeAuto {
			journalMode = detectMode(entries, s.policy, j.Sequential())
		}

		if journalMode == ModePage {
			file, err := s.uploadPageGrouped(ctx, j.Name, entries, opts.IncludeSource, "")
			if err != nil {
				return nil, err
			}
			result.Files = append(result.Files, file)
			continue
		}

		dated := datedEntries(entries, opts.MinYear, opts.MaxYear)
		if len(dated) == 0 {
			note := "*(date grouping requested but no dates were parseable; falling back to pages)*"
			file, err := s.uploadPageGrouped(ctx, j.Name, entries, opts.IncludeSource, note)
			if err != nil {
				return nil, err
			}
			result.Files = append(result.Files, file)
			continue
		}

		for _, e := range dated {
			year := e.Date.Year()
			byYear[year] = append(byYear[year], e)
		}
	}

	years := make([]int, 0, len(byYear))
	for year := range byYear {
		years = append(years, year)
	}
	sort.Ints(years)

	for _, year := range years {
		entries := byYear[year]
		content := renderYear(year, entries, opts.IncludeSource, fill)

		key := fmt.Sprintf("%s/journal-%d.md", s.settings.Prefix, year)
		if err := s.upload(ctx, key, content); err != nil {
			return nil, err
		}

		result.Files = append(result.Files, File{Key: key, Entries: len(entries)})
		s.logger.Info("yearly export written", "key", key, "entries", len(entries))
	}

	return result, nil
}

func (s *system) processedJournals(ctx context.Context) ([]journals.Journal, error) {
	status := journals.StatusProcessed
	filters := journals.Filters{Status: &status}

	var out []journals.Journal
	for page := 1; ; page++ {
		req := pagination.PageRequest{Page: page, PageSize: 100}
		result, err := s.journals.List(ctx, req, filters)
		if err != nil {
			return nil, fmt.Errorf("list processed journals: %w", err)
		}

		out = append(out, result.Data...)
		if page >= result.TotalPages {
			break
		}
	}

	return out, nil
}

func (s *system) uploadPageGrouped(
	ctx context.Context,
	journal string,
	entries []PageEntry,
	includeSource bool,
	note string,
) (File, error) {
	content := renderPageGrouped(journal, entries, includeSource, note)
	key := fmt.Sprintf("%s/journal-pages-%s.md", s.settings.Prefix, journal)

	if err := s.upload(ctx, key, content); err != nil {
		return File{}, err
	}

	s.logger.Info("page export written", "key", key, "pages", len(entries))
	return File{Key: key, Entries: len(entries)}, nil
}

func (s *system) upload(ctx context.Context, key, content string) error {
	if err := s.storage.Upload(ctx, key, bytes.NewReader([]byte(content)), "text/markdown"); err != nil {
		return fmt.Errorf("upload export %s: %w", key, err)
	}
	return nil
}

// pageEntries converts stored page rows to export entries, preferring
// corrected text and dropping empty pages.
func pageEntries(journal string, rows []pages.Page) []PageEntry {
	entries := make([]PageEntry, 0, len(rows))
	for _, row := range rows {
		text := row.CorrectedText
		if text == "" {
			text = row.Text
		}
		if text == "" {
			continue
		}

		entries = append(entries, PageEntry{
			Journal: journal,
			Page:    row.PageNumber,
			Text:    text,
			Date:    row.EntryDate,
		})
	}
	return entries
}

// detectMode chooses date or page grouping. Non-sequential journals get a
// header scan without repair so legitimate jumps are left alone.
func detectMode(entries []PageEntry, policy chronology.Policy, sequential bool) string {
	if !sequential {
		policy.AllowRepair = false
		policy.AllowInferContinuations = false
	}

	scan := make([]chronology.Page, len(entries))
	for i, e := range entries {
		scan[i] = chronology.Page{Journal: e.Journal, Number: e.Page, Text: e.Text}
	}

	if chronology.AutoDetect(scan, policy) {
		return ModeDate
	}
	return ModePage
}

func datedEntries(entries []PageEntry, minYear, maxYear *int) []PageEntry {
	out := make([]PageEntry, 0, len(entries))
	for _, e := range entries {
		if e.Date == nil {
			continue
		}
		if minYear != nil && e.Date.Year() < *minYear {
			continue
		}
		if maxYear != nil && e.Date.Year() > *maxYear {
			continue
		}
		out = append(out, e)
	}
	return out
}

// PageEntry is one page's contribution to an export file.
type PageEntry struct {
	Journal string
	Page    int
	Text    string
	Date    *time.Time
}

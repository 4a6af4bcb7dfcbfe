// Package index provides full-text page search backed by a bleve index.
package index

import (
	"fmt"
	"log/slog"

	"github.com/blevesearch/bleve"
	"github.com/blevesearch/bleve/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/mapping"

	"github.com/inkwell-io/inkwell/pkg/lifecycle"
)

// PageDocument is the indexed representation of a journal page.
type PageDocument struct {
	Journal string `json:"journal"`
	Page    int    `json:"page"`
	Date    string `json:"date,omitempty"`
	TimeKey int    `json:"time_key"`
	Snippet string `json:"snippet"`
	Text    string `json:"text"`
}

// DocumentID returns the index key for a journal page.
func DocumentID(journalID string, page int) string {
	return fmt.Sprintf("%s/%06d", journalID, page)
}

// Hit is a single search match with stored fields and highlight fragments.
type Hit struct {
	ID        string              `json:"id"`
	Score     float64             `json:"score"`
	Journal   string              `json:"journal"`
	Page      int                 `json:"page"`
	Date      string              `json:"date,omitempty"`
	Snippet   string              `json:"snippet"`
	Fragments map[string][]string `json:"fragments,omitempty"`
}

// SearchResult holds one page of search hits.
type SearchResult struct {
	Total uint64 `json:"total"`
	Hits  []Hit  `json:"hits"`
}

// System manages the page search index and lifecycle coordination.
type System interface {
	// Start registers a shutdown hook that closes the index.
	Start(lc *lifecycle.Coordinator) error
	// Index upserts page documents in a single batch.
	Index(docs ...PageDocument) error
	// Remove deletes documents by ID in a single batch.
	Remove(ids ...string) error
	// Search runs a query string search returning at most size hits
	// starting at offset from.
	Search(query string, size, from int) (*SearchResult, error)
}

type system struct {
	index  bleve.Index
	logger *slog.Logger
}

// New opens the index at the configured path, creating it when absent.
// MemoryPath selects an in-memory index.
func New(cfg *Config, logger *slog.Logger) (System, error) {
	var (
		idx bleve.Index
		err error
	)

	if cfg.Path == MemoryPath {
		idx, err = bleve.NewMemOnly(pageMapping())
	} else {
		idx, err = bleve.Open(cfg.Path)
		if err == bleve.ErrorIndexPathDoesNotExist {
			idx, err = bleve.New(cfg.Path, pageMapping())
		}
	}
	if err != nil {
		return nil, fmt.Errorf("open index %s: %w", cfg.Path, err)
	}

	return &system{
		index:  idx,
		logger: logger.With("system", "index"),
	}, nil
}

// pageMapping maps date as a keyword text field. The default mapping
// date-detects YYYY-MM-DD strings and stores them as datetime values,
// which come back RFC3339-formatted on retrieval.
func pageMapping() mapping.IndexMapping {
	date := bleve.NewTextFieldMapping()
	date.Analyzer = keyword.Name

	doc := bleve.NewDocumentMapping()
	doc.AddFieldMappingsAt("date", date)

	m := bleve.NewIndexMapping()
	m.DefaultMapping = doc
	return m
}

func (s *system) Start(lc *lifecycle.Coordinator) error {
	s.logger.Info("starting search index")

	lc.OnShutdown(func() {
		<-lc.Context().Done()
		s.logger.Info("closing search index")

		if err := s.index.Close(); err != nil {
			s.logger.Error("index close failed", "error", err)
			return
		}

		s.logger.Info("search index closed")
	})

	return nil
}

func (s *system) Index(docs ...PageDocument) error {
	if len(docs) == 0 {
		return nil
	}

	batch := s.index.NewBatch()
	for _, doc := range docs {
		if err := batch.Index(DocumentID(doc.Journal, doc.Page), doc); err != nil {
			return fmt.Errorf("batch page %s/%d: %w", doc.Journal, doc.Page, err)
		}
	}

	if err := s.index.Batch(batch); err != nil {
		return fmt.Errorf("index batch: %w", err)
	}

	return nil
}

func (s *system) Remove(ids ...string) error {
	if len(ids) == 0 {
		return nil
	}

	batch := s.index.NewBatch()
	for _, id := range ids {
		batch.Delete(id)
	}

	if err := s.index.Batch(batch); err != nil {
		return fmt.Errorf("delete batch: %w", err)
	}

	return nil
}

func (s *system) Search(query string, size, from int) (*SearchResult, error) {
	q := bleve.NewQueryStringQuery(query)
	req := bleve.NewSearchRequestOptions(q, size, from, false)
	req.Fields = []string{"journal", "page", "date", "snippet"}
	req.Highlight = bleve.NewHighlightWithStyle("html")

	res, err := s.index.Search(req)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}

	result := &SearchResult{
		Total: res.Total,
		Hits:  make([]Hit, 0, len(res.Hits)),
	}

	for _, hit := range res.Hits {
		h := Hit{
			ID:        hit.ID,
			Score:     hit.Score,
			Fragments: hit.Fragments,
		}
		if v, ok := hit.Fields["journal"].(string); ok {
			h.Journal = v
		}
		if v, ok := hit.Fields["page"].(float64); ok {
			h.Page = int(v)
		}
		if v, ok := hit.Fields["date"].(string); ok {
			h.Date = v
		}
		if v, ok := hit.Fields["snippet"].(string); ok {
			h.Snippet = v
		}
		result.Hits = append(result.Hits, h)
	}

	return result, nil
}

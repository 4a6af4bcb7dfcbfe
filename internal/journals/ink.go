package journals

import (
	"bytes"
	"database/sql"
	"fmt"
	"sort"

	_ "modernc.org/sqlite"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

// InkPage is one rendered page pulled from a journal container.
type InkPage struct {
	Order int
	PNG   []byte
}

// ExtractInkPages pulls per-page PNG renders from a Microsoft Journal .ink
// file, which is a SQLite database. Each row in pages carries a blob id;
// the blob at ordinal 0 holds the page render. Pages without a PNG blob
// are skipped. Results are ordered by page order.
func ExtractInkPages(path string) ([]InkPage, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open ink container: %w", err)
	}
	defer db.Close()

	rows, err := db.Query("SELECT id, page_order FROM pages ORDER BY page_order")
	if err != nil {
		return nil, fmt.Errorf("query ink pages: %w", err)
	}
	defer rows.Close()

	type pageRow struct {
		id    []byte
		order int
	}

	var pageRows []pageRow
	for i := 0; rows.Next(); i++ {
		var (
			id    []byte
			order sql.NullInt64
		)
		if err := rows.Scan(&id, &order); err != nil {
			return nil, fmt.Errorf("scan ink page: %w", err)
		}

		p := pageRow{id: id, order: i}
		if order.Valid {
			p.order = int(order.Int64)
		}
		pageRows = append(pageRows, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ink pages: %w", err)
	}

	pages := make([]InkPage, 0, len(pageRows))
	for _, p := range pageRows {
		var blob []byte
		err := db.QueryRow(
			"SELECT bytes FROM blobs WHERE owner_id = ? AND ordinal = 0",
			p.id,
		).Scan(&blob)
		if err == sql.ErrNoRows {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("query ink blob: %w", err)
		}

		if !bytes.HasPrefix(blob, pngMagic) {
			continue
		}

		pages = append(pages, InkPage{Order: p.order, PNG: blob})
	}

	sort.Slice(pages, func(i, j int) bool {
		return pages[i].Order < pages[j].Order
	})

	return pages, nil
}

package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/inkwell-io/inkwell/internal/index"
	"github.com/inkwell-io/inkwell/pkg/handlers"
	"github.com/inkwell-io/inkwell/pkg/routes"
)

var errMissingQuery = errors.New("query parameter q required")

type searchHandler struct {
	index    index.System
	logger   *slog.Logger
	pageSize int
}

func newSearchHandler(idx index.System, logger *slog.Logger, pageSize int) *searchHandler {
	return &searchHandler{
		index:    idx,
		logger:   logger.With("handler", "search"),
		pageSize: pageSize,
	}
}

func (h *searchHandler) routes() routes.Group {
	return routes.Group{
		Prefix: "/search",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.search},
		},
	}
}

// search runs a full-text query over indexed pages. Supports size and
// from query parameters for paging through hits.
func (h *searchHandler) search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, errMissingQuery)
		return
	}

	size := h.pageSize
	if v := r.URL.Query().Get("size"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			size = n
		}
	}

	from := 0
	if v := r.URL.Query().Get("from"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			from = n
		}
	}

	result, err := h.index.Search(q, size, from)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

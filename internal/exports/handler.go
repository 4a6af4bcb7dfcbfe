package exports

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/inkwell-io/inkwell/pkg/handlers"
	"github.com/inkwell-io/inkwell/pkg/routes"
	"github.com/inkwell-io/inkwell/pkg/storage"
)

// Handler provides HTTP endpoints for export operations.
type Handler struct {
	sys     System
	storage storage.System
	logger  *slog.Logger
	prefix  string
}

// NewHandler creates a Handler over the export system and its storage prefix.
func NewHandler(sys System, store storage.System, logger *slog.Logger, prefix string) *Handler {
	return &Handler{
		sys:     sys,
		storage: store,
		logger:  logger.With("handler", "exports"),
		prefix:  prefix,
	}
}

// Routes returns the route group definition for export endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/exports",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List},
			{Method: "GET", Pattern: "/{key...}", Handler: h.Download},
			{Method: "POST", Pattern: "/run", Handler: h.Run},
		},
	}
}

// Run executes an export run. The request body optionally carries Options.
func (h *Handler) Run(w http.ResponseWriter, r *http.Request) {
	var opts Options
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&opts); err != nil {
			handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidRequest)
			return
		}
	}

	result, err := h.sys.Run(r.Context(), opts)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// List returns one page of export artifacts from blob storage.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	marker := r.URL.Query().Get("marker")
	maxResults := storage.ParseMaxResults(r.URL.Query().Get("max_results"), 0)

	result, err := h.storage.List(r.Context(), h.prefix+"/", marker, maxResults)
	if err != nil {
		handlers.RespondError(w, h.logger, storage.MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Download streams a single export artifact.
func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	key := h.prefix + "/" + r.PathValue("key")

	result, err := h.storage.Find(r.Context(), key)
	if err != nil {
		handlers.RespondError(w, h.logger, storage.MapHTTPStatus(err), err)
		return
	}
	defer result.Body.Close()

	w.Header().Set("Content-Type", result.ContentType)
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, result.Body); err != nil {
		h.logger.Warn("export stream interrupted", "key", key, "error", err)
	}
}

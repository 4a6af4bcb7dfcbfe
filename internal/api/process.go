package api

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/inkwell-io/inkwell/internal/journals"
	"github.com/inkwell-io/inkwell/internal/workflow"
	"github.com/inkwell-io/inkwell/pkg/handlers"
	"github.com/inkwell-io/inkwell/pkg/routes"
)

type processHandler struct {
	rt     *workflow.Runtime
	logger *slog.Logger
}

func newProcessHandler(rt *workflow.Runtime, logger *slog.Logger) *processHandler {
	return &processHandler{
		rt:     rt,
		logger: logger.With("handler", "process"),
	}
}

func (h *processHandler) routes() routes.Group {
	return routes.Group{
		Prefix: "/journals",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/{id}/process", Handler: h.process},
		},
	}
}

// process runs the full pipeline for one journal and returns the result.
// Reprocessing a journal replaces its page set.
func (h *processHandler) process(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, journals.ErrInvalidFile)
		return
	}

	result, err := workflow.Execute(r.Context(), h.rt, id)
	if err != nil {
		handlers.RespondError(w, h.logger, workflow.MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

package api

import (
	"net/http"

	"github.com/inkwell-io/inkwell/internal/config"
	"github.com/inkwell-io/inkwell/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	cfg *config.Config,
	runtime *Runtime,
) {
	storageHandler := newStorageHandler(
		runtime.Storage,
		runtime.Logger,
		cfg.Storage.MaxListSize,
	)

	processHandler := newProcessHandler(domain.Workflow, runtime.Logger)

	searchHandler := newSearchHandler(
		runtime.Index,
		runtime.Logger,
		cfg.API.Pagination.DefaultPageSize,
	)

	routes.Register(
		mux,
		domain.Journals.Handler(cfg.API.MaxUploadSizeBytes()).Routes(),
		domain.Pages.Handler().Routes(),
		domain.Exports.Handler().Routes(),
		processHandler.routes(),
		searchHandler.routes(),
		storageHandler.routes(),
	)
}

package api

import (
	"github.com/inkwell-io/inkwell/internal/config"
	"github.com/inkwell-io/inkwell/internal/exports"
	"github.com/inkwell-io/inkwell/internal/infrastructure"
	"github.com/inkwell-io/inkwell/pkg/chronology"
	"github.com/inkwell-io/inkwell/pkg/pagination"
)

// Runtime extends Infrastructure with API-specific configuration.
type Runtime struct {
	*infrastructure.Infrastructure
	Pagination pagination.Config
	Policy     chronology.Policy
	Exports    exports.Settings
}

// NewRuntime creates an API runtime with a module-scoped logger.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	return &Runtime{
		Infrastructure: &infrastructure.Infrastructure{
			Lifecycle: infra.Lifecycle,
			Logger:    infra.Logger.With("module", "api"),
			Database:  infra.Database,
			Storage:   infra.Storage,
			Index:     infra.Index,
			OCR:       infra.OCR,
		},
		Pagination: cfg.API.Pagination,
		Policy:     cfg.Engine.Policy(),
		Exports: exports.Settings{
			Mode:            cfg.Exports.Mode,
			FillMissingDays: cfg.Exports.FillMissingDays,
			Prefix:          cfg.Exports.Prefix,
		},
	}
}

package api

import (
	"fmt"

	"github.com/inkwell-io/inkwell/internal/config"
	"github.com/inkwell-io/inkwell/internal/corrections"
	"github.com/inkwell-io/inkwell/internal/exports"
	"github.com/inkwell-io/inkwell/internal/journals"
	"github.com/inkwell-io/inkwell/internal/pages"
	"github.com/inkwell-io/inkwell/internal/workflow"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Journals journals.System
	Pages    pages.System
	Exports  exports.System
	Workflow *workflow.Runtime
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(cfg *config.Config, runtime *Runtime) (*Domain, error) {
	journalsSystem := journals.New(
		runtime.Database.Connection(),
		runtime.Storage,
		runtime.Logger,
		runtime.Pagination,
	)

	pagesSystem := pages.New(
		runtime.Database.Connection(),
		runtime.Logger,
		runtime.Pagination,
	)

	exportsSystem := exports.New(
		journalsSystem,
		pagesSystem,
		runtime.Storage,
		runtime.Logger,
		runtime.Policy,
		runtime.Exports,
	)

	rules, err := corrections.Load(cfg.OCR.Corrections)
	if err != nil {
		return nil, fmt.Errorf("load corrections: %w", err)
	}

	workflowRuntime := &workflow.Runtime{
		Storage:  runtime.Storage,
		Journals: journalsSystem,
		Pages:    pagesSystem,
		Index:    runtime.Index,
		OCR:      runtime.OCR,
		Rules:    rules,
		Policy:   runtime.Policy,
		Logger:   runtime.Logger.With("system", "workflow"),
	}

	return &Domain{
		Journals: journalsSystem,
		Pages:    pagesSystem,
		Exports:  exportsSystem,
		Workflow: workflowRuntime,
	}, nil
}

// Package infrastructure provides core service initialization for application startup.
// It assembles common dependencies (logging, database, storage, search) that
// domain systems require.
package infrastructure

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/inkwell-io/inkwell/internal/config"
	"github.com/inkwell-io/inkwell/internal/index"
	"github.com/inkwell-io/inkwell/internal/ocr"
	"github.com/inkwell-io/inkwell/pkg/database"
	"github.com/inkwell-io/inkwell/pkg/lifecycle"
	"github.com/inkwell-io/inkwell/pkg/storage"
)

// Infrastructure holds the core systems required by all domain modules.
// It provides a single point of initialization for lifecycle coordination,
// logging, database access, blob storage, OCR, and page search.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Database  database.System
	Storage   storage.System
	Index     index.System
	OCR       ocr.Engine
}

// New creates an Infrastructure from the application configuration.
// It initializes all systems but does not start them; call Start separately.
func New(cfg *config.Config) (*Infrastructure, error) {
	lc := lifecycle.New()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	db, err := database.New(&cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}

	store, err := storage.New(&cfg.Storage, logger)
	if err != nil {
		return nil, fmt.Errorf("storage init failed: %w", err)
	}

	idx, err := index.New(&cfg.Index, logger)
	if err != nil {
		return nil, fmt.Errorf("index init failed: %w", err)
	}

	engine, err := ocr.New(&cfg.OCR, logger)
	if err != nil {
		return nil, fmt.Errorf("ocr init failed: %w", err)
	}

	return &Infrastructure{
		Lifecycle: lc,
		Logger:    logger,
		Database:  db,
		Storage:   store,
		Index:     idx,
		OCR:       engine,
	}, nil
}

// Start registers all infrastructure systems with the lifecycle coordinator.
func (i *Infrastructure) Start() error {
	if err := i.Database.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("database start failed: %w", err)
	}
	if err := i.Storage.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("storage start failed: %w", err)
	}
	if err := i.Index.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("index start failed: %w", err)
	}
	return nil
}

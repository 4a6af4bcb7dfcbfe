// Package ocr provides handwriting recognition engines for page images.
package ocr

import (
	"context"
	"fmt"
	"log/slog"
)

// EngineAzure is the Azure Vision Read engine identifier.
const EngineAzure = "azure"

// Engine extracts text from page images.
type Engine interface {
	// Name returns the engine identifier recorded on processed pages.
	Name() string
	// RecognizePNG extracts text from a PNG image. Lines are joined with
	// newlines in reading order.
	RecognizePNG(ctx context.Context, image []byte) (string, error)
}

// New creates the engine selected by the configuration.
func New(cfg *Config, logger *slog.Logger) (Engine, error) {
	switch cfg.Engine {
	case EngineAzure:
		return newAzure(cfg, logger), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownEngine, cfg.Engine)
	}
}

package workflow

import (
	"log/slog"

	"github.com/inkwell-io/inkwell/internal/corrections"
	"github.com/inkwell-io/inkwell/internal/index"
	"github.com/inkwell-io/inkwell/internal/journals"
	"github.com/inkwell-io/inkwell/internal/ocr"
	"github.com/inkwell-io/inkwell/internal/pages"
	"github.com/inkwell-io/inkwell/pkg/chronology"
	"github.com/inkwell-io/inkwell/pkg/storage"
)

// Runtime bundles the dependencies that workflow stages require.
// It is constructed by higher-level composition code from Infrastructure
// and Domain systems.
type Runtime struct {
	Storage  storage.System
	Journals journals.System
	Pages    pages.System
	Index    index.System
	OCR      ocr.Engine
	Rules    *corrections.Rules
	Policy   chronology.Policy
	Logger   *slog.Logger
}

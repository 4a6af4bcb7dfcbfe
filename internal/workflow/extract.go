package workflow

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/inkwell-io/inkwell/internal/journals"
)

const sourceContainer = "source.ink"

// downloadContainer streams the journal blob into the temp directory and
// returns the local path.
func downloadContainer(
	ctx context.Context,
	rt *Runtime,
	j *journals.Journal,
	tempDir string,
) (string, error) {
	blob, err := rt.Storage.Download(ctx, j.StorageKey)
	if err != nil {
		return "", fmt.Errorf("%w: download blob: %w", ErrExtractFailed, err)
	}
	defer blob.Close()

	path := filepath.Join(tempDir, sourceContainer)
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("%w: create temp container: %w", ErrExtractFailed, err)
	}

	if _, err := io.Copy(file, blob); err != nil {
		file.Close()
		return "", fmt.Errorf("%w: write temp container: %w", ErrExtractFailed, err)
	}
	file.Close()

	return path, nil
}

// extractPages pulls page renders from the container. Only .ink containers
// carry extractable renders; PDF journals are browsed through storage instead.
func extractPages(j *journals.Journal, path string) ([]journals.InkPage, error) {
	if j.ContentType != journals.ContentTypeInk {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedContainer, j.ContentType)
	}

	inkPages, err := journals.ExtractInkPages(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExtractFailed, err)
	}
	if len(inkPages) == 0 {
		return nil, fmt.Errorf("%w: container holds no page renders", ErrExtractFailed)
	}

	return inkPages, nil
}

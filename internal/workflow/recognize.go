package workflow

import (
	"bytes"
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/inkwell-io/inkwell/internal/journals"
)

// recognizedPage carries one page through the recognition stage.
type recognizedPage struct {
	Number    int
	ImageKey  string
	Text      string
	Corrected string
}

// recognizePages uploads each page render and runs OCR over it with
// bounded errgroup concurrency. Pages come back in extraction order.
func recognizePages(
	ctx context.Context,
	rt *Runtime,
	journalID uuid.UUID,
	inkPages []journals.InkPage,
) ([]recognizedPage, error) {
	out := make([]recognizedPage, len(inkPages))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workerCount(len(inkPages)))

	for i, page := range inkPages {
		pageNum := i + 1
		imageKey := pageImageKey(journalID, pageNum)
		out[i] = recognizedPage{Number: pageNum, ImageKey: imageKey}

		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}

			if err := rt.Storage.Upload(gctx, imageKey, bytes.NewReader(page.PNG), "image/png"); err != nil {
				return fmt.Errorf("page %d: upload render: %w", pageNum, err)
			}

			text, err := rt.OCR.RecognizePNG(gctx, page.PNG)
			if err != nil {
				return fmt.Errorf("page %d: recognize: %w", pageNum, err)
			}

			out[i].Text = text
			out[i].Corrected = rt.Rules.Apply(text)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRecognizeFailed, err)
	}

	return out, nil
}

func pageImageKey(journalID uuid.UUID, pageNum int) string {
	return fmt.Sprintf("journals/%s/pages/page_%04d.png", journalID, pageNum)
}

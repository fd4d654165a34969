package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/lexsift/lexsift/internal/celex"
	"github.com/lexsift/lexsift/internal/filter"
	"github.com/lexsift/lexsift/internal/structure"
)

// Fetcher retrieves the HTML rendition of a document by CELEX
// identifier.
type Fetcher interface {
	HTMLByCELEX(ctx context.Context, celexID string) (string, error)
}

// Worker processes a single extraction job.
type Worker struct {
	fetcher Fetcher
	log     *slog.Logger
}

func NewWorker(fetcher Fetcher, log *slog.Logger) *Worker {
	return &Worker{
		fetcher: fetcher,
		log:     log,
	}
}

// Process runs the full extraction pipeline for a job.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID)

	hadErrors := false
	produced := 0

	for _, doc := range job.Documents {
		celexID, err := resolveCELEX(doc)
		if err != nil {
			log.Error("invalid document identifier", "document", doc, "error", err)
			job.AddError(fmt.Sprintf("%s: %s", doc, err))
			job.IncrProcessed()
			hadErrors = true
			continue
		}

		job.SetStatus(StatusFetching, "fetching")
		markup, err := w.fetchWithRetry(ctx, log, celexID)
		if err != nil {
			log.Error("fetch failed", "celex_id", celexID, "error", err)
			job.AddError(fmt.Sprintf("fetch %s: %s", celexID, err))
			job.IncrProcessed()
			hadErrors = true
			continue
		}

		job.SetStatus(StatusExtracting, "extracting")
		rows := structure.Extract(markup)
		extracted := len(rows)

		result := DocumentResult{ID: celexID, Rows: rows}
		kept := extracted
		if job.Filtered {
			job.SetStatus(StatusFiltering, "filtering")
			result.Paragraphs = filter.Apply(rowTexts(rows))
			kept = len(result.Paragraphs)
		}

		job.AddResult(result, extracted, kept)
		produced++
		log.Info("document extracted", "celex_id", celexID, "rows", extracted, "kept", kept)

		if ctx.Err() != nil {
			job.AddError(ctx.Err().Error())
			hadErrors = true
			break
		}
	}

	switch {
	case produced > 0 && hadErrors:
		job.SetStatus(StatusPartial, "done")
	case produced > 0:
		job.SetStatus(StatusCompleted, "done")
	default:
		job.SetStatus(StatusFailed, "done")
	}
}

func (w *Worker) fetchWithRetry(ctx context.Context, log *slog.Logger, celexID string) (string, error) {
	var markup string
	var lastErr error
	for attempt := 0; attempt < MaxRetries; attempt++ {
		markup, lastErr = w.fetcher.HTMLByCELEX(ctx, celexID)
		if lastErr == nil || !IsRetryable(lastErr) {
			break
		}
		log.Warn("retryable fetch error", "celex_id", celexID, "attempt", attempt, "error", lastErr)
		select {
		case <-time.After(Backoff(attempt)):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return markup, lastErr
}

// resolveCELEX accepts either a CELEX identifier or slash notation
// like "2019/947" and returns the CELEX form.
func resolveCELEX(doc string) (string, error) {
	doc = strings.TrimSpace(doc)
	if doc == "" {
		return "", fmt.Errorf("empty document identifier")
	}
	if strings.Contains(doc, "/") {
		id, err := celex.FromSlashNotation(doc, "", "")
		if err != nil {
			return "", err
		}
		return id.String(), nil
	}
	return doc, nil
}

func rowTexts(rows []structure.Row) []string {
	texts := make([]string, 0, len(rows))
	for _, row := range rows {
		if row.Text != nil {
			texts = append(texts, *row.Text)
		}
	}
	return texts
}

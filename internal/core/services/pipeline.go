package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/pdfocr/internal/core/domain"
	"github.com/custodia-labs/pdfocr/internal/core/ports/driven"
	"github.com/custodia-labs/pdfocr/internal/core/ports/driving"
	"github.com/custodia-labs/pdfocr/internal/logger"
)

// Ensure PipelineService implements the interface.
var _ driving.PipelineService = (*PipelineService)(nil)

// Stages binds a text service to each remote stage.
// A nil binding makes that stage fall back on every call.
type Stages struct {
	Enhancer   driven.TextService
	Formatter  driven.TextService
	Summariser driven.TextService
}

// Close releases every bound service.
func (s Stages) Close() {
	for _, svc := range []driven.TextService{s.Enhancer, s.Formatter, s.Summariser} {
		if svc != nil {
			_ = svc.Close()
		}
	}
}

// pageState tracks one page through a single run.
type pageState int

const (
	pageQueued pageState = iota
	pageBlank
	pagePersisted
	pageDone
)

// pageWork is one entry in the per-run arena, indexed by page number - 1.
type pageWork struct {
	number int
	state  pageState
}

// PipelineService sequences extraction, enhancement, formatting,
// persistence and summarisation for one document at a time.
type PipelineService struct {
	store     driven.DocumentStore
	extractor driven.PageExtractor
	stages    Stages
	uploads   domain.UploadSettings
}

// NewPipelineService creates a pipeline over the given store and extractor.
// Settings are passed explicitly; the pipeline never reads the environment.
func NewPipelineService(
	store driven.DocumentStore,
	extractor driven.PageExtractor,
	stages Stages,
	settings domain.Settings,
) *PipelineService {
	return &PipelineService{
		store:     store,
		extractor: extractor,
		stages:    stages,
		uploads:   settings.Uploads,
	}
}

// ProcessDocument registers the PDF at path and runs it through every stage.
func (p *PipelineService) ProcessDocument(ctx context.Context, path string) (int64, error) {
	filename := filepath.Base(path)
	logger.Section("Processing " + filename)

	id, err := p.store.Register(ctx, filename, path)
	if err != nil {
		return 0, storageError("register document", err)
	}
	logger.Debug("registered %s as document %d", filename, id)

	if err := p.run(ctx, id, path); err != nil {
		return id, err
	}
	return id, nil
}

// Resume re-runs a pending or failed document from its stored file path.
func (p *PipelineService) Resume(ctx context.Context, documentID int64) error {
	doc, err := p.store.GetDocument(ctx, documentID)
	if err != nil {
		return fmt.Errorf("get document %d: %w", documentID, err)
	}
	if doc.Status.IsTerminal() {
		logger.Info("document %d already %s", documentID, doc.Status)
		return nil
	}

	logger.Section("Resuming " + doc.Filename)
	if err := p.store.SetStatus(ctx, documentID, domain.StatusPending); err != nil {
		return storageError("set status", err)
	}
	return p.run(ctx, documentID, doc.FilePath)
}

// ProcessDirectory processes every admissible file in dir sequentially.
func (p *PipelineService) ProcessDirectory(ctx context.Context, dir string) (*driving.BatchReport, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: read uploads folder: %w", domain.ErrInvalidInput, err)
	}

	report := &driving.BatchReport{}
	for _, entry := range entries {
		if entry.IsDir() || !hasAllowedExtension(entry.Name(), p.uploads.AllowedExtensions) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return report, err
		}

		path := filepath.Join(dir, entry.Name())
		if err := ValidateUploadFile(path, p.uploads); err != nil {
			logger.Warn("skipping %s: %v", entry.Name(), err)
			report.Failures = append(report.Failures, driving.BatchFailure{Path: path, Err: err})
			continue
		}

		id, err := p.ProcessDocument(ctx, path)
		if err != nil {
			logger.Get().Error().Err(err).Str("path", path).Int64("document_id", id).Msg("document failed")
			report.Failures = append(report.Failures, driving.BatchFailure{Path: path, DocumentID: id, Err: err})
			continue
		}
		report.Completed = append(report.Completed, id)
	}
	return report, nil
}

// run executes the page loop and summarisation for a registered document.
// Any fatal error marks the document failed before it is returned.
func (p *PipelineService) run(ctx context.Context, id int64, path string) error {
	it, err := p.extractor.Open(ctx, path)
	if err != nil {
		return p.fail(ctx, id, err)
	}
	defer it.Close()

	existing, err := p.store.GetPageResults(ctx, id)
	if err != nil {
		return p.fail(ctx, id, storageError("get page results", err))
	}
	persisted := make(map[int]bool, len(existing))
	for _, r := range existing {
		persisted[r.PageNumber] = true
	}

	work := make([]pageWork, 0, it.PageCount())
	for it.Next(ctx) {
		page := it.Page()
		work = append(work, pageWork{number: page.Number, state: pageQueued})
		w := &work[len(work)-1]

		logger.Info("page %d/%d", page.Number, it.PageCount())
		switch {
		case persisted[page.Number]:
			w.state = pagePersisted
			logger.Debug("page %d already persisted", page.Number)
			continue
		case page.IsBlank():
			w.state = pageBlank
			logger.Info("page %d appears to be empty or unreadable", page.Number)
			continue
		}

		text := p.refine(ctx, id, page)
		if err := p.store.SavePageResult(ctx, id, page.Number, text); err != nil {
			return p.fail(ctx, id, storageError(fmt.Sprintf("save page %d", page.Number), err))
		}
		w.state = pageDone
		logger.Debug("page %d: stored %d characters", page.Number, len(text))
	}
	if err := it.Err(); err != nil {
		return p.fail(ctx, id, err)
	}
	logWork(id, work)

	if err := p.summarise(ctx, id); err != nil {
		return p.fail(ctx, id, err)
	}

	if err := p.store.SetStatus(ctx, id, domain.StatusCompleted); err != nil {
		return p.fail(ctx, id, storageError("set status", err))
	}
	logger.Info("completed document %d", id)
	return nil
}

// refine pushes one page through enhancement then formatting.
// Each stage falls back to its input on failure.
func (p *PipelineService) refine(ctx context.Context, id int64, page domain.Page) string {
	enhanced, err := transform(ctx, p.stages.Enhancer, domain.TaskEnhance, page.Text)
	if err != nil {
		warnStage(id, page.Number, domain.TaskEnhance, err)
		enhanced = page.Text
	}

	formatted, err := transform(ctx, p.stages.Formatter, domain.TaskFormat, enhanced)
	if err != nil {
		warnStage(id, page.Number, domain.TaskFormat, err)
		formatted = enhanced
	}
	return formatted
}

// summarise stores a summary of the persisted text unless one exists.
// Only storage failures are returned; a failed summary stores nothing.
func (p *PipelineService) summarise(ctx context.Context, id int64) error {
	_, err := p.store.GetSummary(ctx, id)
	switch {
	case err == nil:
		logger.Debug("document %d already summarised", id)
		return nil
	case !errors.Is(err, domain.ErrNotFound):
		return storageError("get summary", err)
	}

	fullText, err := p.store.GetFullText(ctx, id)
	if err != nil {
		return storageError("get full text", err)
	}
	if domain.IsBlank(fullText) {
		logger.Info("document %d has no text to summarise", id)
		return nil
	}

	summary, err := transform(ctx, p.stages.Summariser, domain.TaskSummarise, fullText)
	if err != nil {
		warnStage(id, 0, domain.TaskSummarise, err)
		return nil
	}
	if err := p.store.SaveSummary(ctx, id, summary); err != nil {
		return storageError("save summary", err)
	}
	logger.Info("summary generated for document %d", id)
	return nil
}

// fail marks the document failed and returns err.
// The status write ignores cancellation so an interrupted run is still recorded.
func (p *PipelineService) fail(ctx context.Context, id int64, err error) error {
	if serr := p.store.SetStatus(context.WithoutCancel(ctx), id, domain.StatusFailed); serr != nil {
		logger.Get().Error().Err(serr).Int64("document_id", id).Msg("could not mark document failed")
	}
	return err
}

// transform performs one stage call. Empty output counts as failure.
func transform(ctx context.Context, svc driven.TextService, task domain.TextTask, input string) (string, error) {
	if svc == nil {
		return "", fmt.Errorf("%w: %w", domain.StageError(task), domain.ErrServiceUnavailable)
	}
	out, err := svc.Transform(ctx, domain.TextRequest{Task: task, Text: input})
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.StageError(task), err)
	}
	if domain.IsBlank(out) {
		return "", fmt.Errorf("%w: empty response from %s", domain.StageError(task), svc.ModelName())
	}
	return out, nil
}

func warnStage(id int64, page int, task domain.TextTask, err error) {
	evt := logger.Get().Warn().Int64("document_id", id).Str("stage", task.String()).Err(err)
	if page > 0 {
		evt = evt.Int("page", page)
	}
	evt.Msg("stage failed, using fallback")
}

func logWork(id int64, work []pageWork) {
	var done, blank, skipped int
	for _, w := range work {
		switch w.state {
		case pageDone:
			done++
		case pageBlank:
			blank++
		case pagePersisted:
			skipped++
		}
	}
	logger.Get().Info().
		Int64("document_id", id).
		Int("pages", len(work)).
		Int("stored", done).
		Int("blank", blank).
		Int("already_persisted", skipped).
		Msg("page loop finished")
}

// storageError attaches domain.ErrStorage unless err already carries a taxonomy sentinel.
func storageError(op string, err error) error {
	if errors.Is(err, domain.ErrStorage) || errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%w: %s: %w", domain.ErrStorage, op, err)
}

func hasAllowedExtension(name string, allowed []string) bool {
	ext := filepath.Ext(name)
	for _, a := range allowed {
		if strings.EqualFold(ext, a) {
			return true
		}
	}
	return false
}

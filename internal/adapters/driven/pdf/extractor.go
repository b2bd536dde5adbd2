// Package pdf provides the page extractor: structural validation with pdfcpu
// and per-page plain text with ledongthuc/pdf.
package pdf

import (
	"context"
	"fmt"
	"os"
	"sync"

	ledongthuc "github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/custodia-labs/pdfocr/internal/core/domain"
	"github.com/custodia-labs/pdfocr/internal/core/ports/driven"
	"github.com/custodia-labs/pdfocr/internal/logger"
)

// Ensure Extractor implements the interface.
var _ driven.PageExtractor = (*Extractor)(nil)

var disableConfigDir sync.Once

// Extractor reads raw per-page text from PDF files on local disk.
type Extractor struct {
	conf *model.Configuration
}

// NewExtractor creates an extractor using relaxed pdfcpu validation.
func NewExtractor() *Extractor {
	// pdfcpu otherwise writes a config directory under the user's home.
	disableConfigDir.Do(api.DisableConfigDir)

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &Extractor{conf: conf}
}

// Open validates the file and returns a lazy iterator over its pages.
func (e *Extractor) Open(ctx context.Context, path string) (driven.PageIterator, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrDocumentRead, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", domain.ErrDocumentRead, path)
	}

	if err := api.ValidateFile(path, e.conf); err != nil {
		return nil, fmt.Errorf("%w: invalid PDF %s: %w", domain.ErrDocumentRead, path, err)
	}
	count, err := api.PageCountFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: count pages of %s: %w", domain.ErrDocumentRead, path, err)
	}

	f, r, err := ledongthuc.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", domain.ErrDocumentRead, path, err)
	}

	logger.Debug("opened %s: %d pages", path, count)
	return &pageIterator{
		file:   f,
		reader: r,
		total:  count,
		next:   1,
	}, nil
}

// pageIterator yields pages one at a time, in order.
type pageIterator struct {
	file   *os.File
	reader *ledongthuc.Reader
	total  int
	next   int
	cur    domain.Page
	err    error
}

// Next advances to the next page.
func (it *pageIterator) Next(ctx context.Context) bool {
	if it.err != nil || it.next > it.total {
		return false
	}
	if err := ctx.Err(); err != nil {
		it.err = err
		return false
	}

	n := it.next
	it.next++

	text, err := pageText(it.reader, n)
	if err != nil {
		// An unreadable page is reported as blank; the pipeline skips it.
		logger.Warn("page %d: text extraction failed: %v", n, err)
		text = ""
	}
	it.cur = domain.Page{Number: n, Text: text}
	return true
}

// Page returns the current page.
func (it *pageIterator) Page() domain.Page {
	return it.cur
}

// PageCount returns the number of pages reported by pdfcpu.
func (it *pageIterator) PageCount() int {
	return it.total
}

// Err returns the first error encountered.
func (it *pageIterator) Err() error {
	return it.err
}

// Close releases the underlying file.
func (it *pageIterator) Close() error {
	if it.file == nil {
		return nil
	}
	err := it.file.Close()
	it.file = nil
	return err
}

// pageText returns the plain text of page n. ledongthuc/pdf panics on
// some malformed content streams, so panics become errors.
func pageText(r *ledongthuc.Reader, n int) (text string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("malformed page content: %v", rec)
		}
	}()

	if n > r.NumPage() {
		return "", nil
	}
	page := r.Page(n)
	if page.V.IsNull() {
		return "", nil
	}
	return page.GetPlainText(nil)
}

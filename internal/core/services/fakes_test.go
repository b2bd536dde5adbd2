package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/custodia-labs/pdfocr/internal/core/domain"
	"github.com/custodia-labs/pdfocr/internal/core/ports/driven"
)

// fakeExtractor serves fixed page texts for any path.
type fakeExtractor struct {
	pages   []string
	openErr error
	// failAfter makes iteration fail once this many pages were yielded.
	failAfter int
	opened    []string
}

func (f *fakeExtractor) Open(_ context.Context, path string) (driven.PageIterator, error) {
	f.opened = append(f.opened, path)
	if f.openErr != nil {
		return nil, f.openErr
	}
	return &fakeIterator{pages: f.pages, failAfter: f.failAfter}, nil
}

type fakeIterator struct {
	pages     []string
	failAfter int
	idx       int
	err       error
	closed    bool
}

func (it *fakeIterator) Next(ctx context.Context) bool {
	if err := ctx.Err(); err != nil {
		it.err = err
		return false
	}
	if it.err != nil || it.idx >= len(it.pages) {
		return false
	}
	if it.failAfter > 0 && it.idx >= it.failAfter {
		it.err = fmt.Errorf("%w: corrupt page %d", domain.ErrDocumentRead, it.idx+1)
		return false
	}
	it.idx++
	return true
}

func (it *fakeIterator) Page() domain.Page {
	return domain.Page{Number: it.idx, Text: it.pages[it.idx-1]}
}

func (it *fakeIterator) PageCount() int { return len(it.pages) }
func (it *fakeIterator) Err() error     { return it.err }
func (it *fakeIterator) Close() error   { it.closed = true; return nil }

// fakeText is a deterministic TextService.
type fakeText struct {
	name  string
	fn    func(domain.TextRequest) (string, error)
	calls []domain.TextRequest
}

func (f *fakeText) Transform(_ context.Context, req domain.TextRequest) (string, error) {
	f.calls = append(f.calls, req)
	return f.fn(req)
}

func (f *fakeText) ModelName() string            { return f.name }
func (f *fakeText) Ping(_ context.Context) error { return nil }
func (f *fakeText) Close() error                 { return nil }

func prefixing(prefix string) *fakeText {
	return &fakeText{name: prefix, fn: func(r domain.TextRequest) (string, error) {
		return prefix + "(" + r.Text + ")", nil
	}}
}

func failing(name string) *fakeText {
	return &fakeText{name: name, fn: func(domain.TextRequest) (string, error) {
		return "", errors.New("service exploded")
	}}
}

func returning(name, out string) *fakeText {
	return &fakeText{name: name, fn: func(domain.TextRequest) (string, error) {
		return out, nil
	}}
}

// faultyStore wraps a DocumentStore and fails selected operations.
type faultyStore struct {
	driven.DocumentStore
	failSaveOnPage int
	failSummary    bool
	failStatus     domain.DocumentStatus
}

var errDisk = errors.New("disk I/O error")

func (s *faultyStore) SavePageResult(ctx context.Context, id int64, page int, text string) error {
	if page == s.failSaveOnPage {
		return errDisk
	}
	return s.DocumentStore.SavePageResult(ctx, id, page, text)
}

func (s *faultyStore) SaveSummary(ctx context.Context, id int64, text string) error {
	if s.failSummary {
		return errDisk
	}
	return s.DocumentStore.SaveSummary(ctx, id, text)
}

func (s *faultyStore) SetStatus(ctx context.Context, id int64, status domain.DocumentStatus) error {
	if status == s.failStatus {
		return errDisk
	}
	return s.DocumentStore.SetStatus(ctx, id, status)
}

func upper(r domain.TextRequest) (string, error) {
	return strings.ToUpper(r.Text), nil
}

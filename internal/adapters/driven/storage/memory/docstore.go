package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/custodia-labs/pdfocr/internal/core/domain"
	"github.com/custodia-labs/pdfocr/internal/core/ports/driven"
)

// Ensure DocumentStore implements the interface.
var _ driven.DocumentStore = (*DocumentStore)(nil)

// DocumentStore is an in-memory implementation of driven.DocumentStore.
type DocumentStore struct {
	mu        sync.RWMutex
	nextID    int64
	documents map[int64]domain.Document
	pages     map[int64]map[int]domain.PageResult
	summaries map[int64]domain.Summary
}

// NewDocumentStore creates a new in-memory document store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		documents: make(map[int64]domain.Document),
		pages:     make(map[int64]map[int]domain.PageResult),
		summaries: make(map[int64]domain.Summary),
	}
}

// Register inserts a new pending document.
func (s *DocumentStore) Register(_ context.Context, filename, path string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	s.documents[s.nextID] = domain.Document{
		ID:         s.nextID,
		Filename:   filename,
		FilePath:   path,
		UploadedAt: time.Now(),
		Status:     domain.StatusPending,
	}
	return s.nextID, nil
}

// SavePageResult upserts the text for one page.
func (s *DocumentStore) SavePageResult(_ context.Context, documentID int64, pageNumber int, text string) error {
	if pageNumber < 1 {
		return fmt.Errorf("%w: page number %d", domain.ErrInvalidInput, pageNumber)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.documents[documentID]; !ok {
		return domain.ErrNotFound
	}
	if s.pages[documentID] == nil {
		s.pages[documentID] = make(map[int]domain.PageResult)
	}
	s.pages[documentID][pageNumber] = domain.PageResult{
		DocumentID: documentID,
		PageNumber: pageNumber,
		Text:       text,
		CreatedAt:  time.Now(),
	}
	return nil
}

// GetPageResults returns page results ordered by page number.
func (s *DocumentStore) GetPageResults(_ context.Context, documentID int64) ([]domain.PageResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pageResults(documentID), nil
}

func (s *DocumentStore) pageResults(documentID int64) []domain.PageResult {
	results := make([]domain.PageResult, 0, len(s.pages[documentID]))
	for _, r := range s.pages[documentID] {
		results = append(results, r)
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].PageNumber < results[j].PageNumber
	})
	return results
}

// GetFullText joins page texts in page order.
func (s *DocumentStore) GetFullText(ctx context.Context, documentID int64) (string, error) {
	results, err := s.GetPageResults(ctx, documentID)
	if err != nil {
		return "", err
	}
	return domain.JoinPages(results), nil
}

// SaveSummary upserts the document summary.
func (s *DocumentStore) SaveSummary(_ context.Context, documentID int64, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.documents[documentID]; !ok {
		return domain.ErrNotFound
	}
	s.summaries[documentID] = domain.Summary{
		DocumentID: documentID,
		Text:       text,
		CreatedAt:  time.Now(),
	}
	return nil
}

// GetSummary returns the document summary.
func (s *DocumentStore) GetSummary(_ context.Context, documentID int64) (*domain.Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	summary, ok := s.summaries[documentID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &summary, nil
}

// SetStatus updates the document status.
func (s *DocumentStore) SetStatus(_ context.Context, documentID int64, status domain.DocumentStatus) error {
	if !status.IsValid() {
		return fmt.Errorf("%w: status %q", domain.ErrInvalidInput, status)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.documents[documentID]
	if !ok {
		return domain.ErrNotFound
	}
	doc.Status = status
	s.documents[documentID] = doc
	return nil
}

// GetDocument retrieves a document by ID.
func (s *DocumentStore) GetDocument(_ context.Context, documentID int64) (*domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.documents[documentID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &doc, nil
}

// ListDocuments returns all documents, newest first.
func (s *DocumentStore) ListDocuments(_ context.Context) ([]domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	docs := make([]domain.Document, 0, len(s.documents))
	for _, doc := range s.documents {
		docs = append(docs, doc)
	}
	sort.Slice(docs, func(i, j int) bool {
		if !docs[i].UploadedAt.Equal(docs[j].UploadedAt) {
			return docs[i].UploadedAt.After(docs[j].UploadedAt)
		}
		return docs[i].ID > docs[j].ID
	})
	return docs, nil
}

// GetDocumentDetail returns a document with its pages and summary.
func (s *DocumentStore) GetDocumentDetail(_ context.Context, documentID int64) (*domain.DocumentDetail, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.documents[documentID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	detail := &domain.DocumentDetail{
		Document: doc,
		Pages:    s.pageResults(documentID),
	}
	if summary, ok := s.summaries[documentID]; ok {
		detail.Summary = &summary
	}
	return detail, nil
}

// DeleteDocument removes a document and its pages and summary.
func (s *DocumentStore) DeleteDocument(_ context.Context, documentID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.documents[documentID]; !ok {
		return domain.ErrNotFound
	}
	delete(s.pages, documentID)
	delete(s.summaries, documentID)
	delete(s.documents, documentID)
	return nil
}

package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/pdfocr/internal/core/domain"
	"github.com/custodia-labs/pdfocr/internal/core/ports/driven"
)

// documentStore implements driven.DocumentStore.
type documentStore struct {
	store *Store
}

var _ driven.DocumentStore = (*documentStore)(nil)

// Register inserts a new pending document.
func (s *documentStore) Register(ctx context.Context, filename, path string) (int64, error) {
	res, err := s.store.db.ExecContext(ctx, `
		INSERT INTO documents (filename, file_path, upload_date, status)
		VALUES (?, ?, ?, ?)
	`, filename, path, formatTime(time.Now()), string(domain.StatusPending))
	if err != nil {
		return 0, storageError("registering document", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, storageError("reading document id", err)
	}
	return id, nil
}

// SavePageResult upserts the text for one page.
func (s *documentStore) SavePageResult(ctx context.Context, documentID int64, pageNumber int, text string) error {
	if pageNumber < 1 {
		return fmt.Errorf("%w: page number %d", domain.ErrInvalidInput, pageNumber)
	}
	if err := s.requireDocument(ctx, documentID); err != nil {
		return err
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO page_results (document_id, page_number, text, created_date)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(document_id, page_number) DO UPDATE SET
			text = excluded.text,
			created_date = excluded.created_date
	`, documentID, pageNumber, text, formatTime(time.Now()))
	if err != nil {
		return storageError("saving page result", err)
	}
	return nil
}

// GetPageResults returns page results ordered by page number.
func (s *documentStore) GetPageResults(ctx context.Context, documentID int64) ([]domain.PageResult, error) {
	return queryPageResults(ctx, s.store.db, documentID)
}

// GetFullText joins page texts in page order.
func (s *documentStore) GetFullText(ctx context.Context, documentID int64) (string, error) {
	pages, err := s.GetPageResults(ctx, documentID)
	if err != nil {
		return "", err
	}
	return domain.JoinPages(pages), nil
}

// SaveSummary upserts the document summary.
func (s *documentStore) SaveSummary(ctx context.Context, documentID int64, text string) error {
	if err := s.requireDocument(ctx, documentID); err != nil {
		return err
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO summaries (document_id, text, created_date)
		VALUES (?, ?, ?)
		ON CONFLICT(document_id) DO UPDATE SET
			text = excluded.text,
			created_date = excluded.created_date
	`, documentID, text, formatTime(time.Now()))
	if err != nil {
		return storageError("saving summary", err)
	}
	return nil
}

// GetSummary returns the document summary or domain.ErrNotFound.
func (s *documentStore) GetSummary(ctx context.Context, documentID int64) (*domain.Summary, error) {
	return querySummary(ctx, s.store.db, documentID)
}

// SetStatus updates the document status.
func (s *documentStore) SetStatus(ctx context.Context, documentID int64, status domain.DocumentStatus) error {
	if !status.IsValid() {
		return fmt.Errorf("%w: status %q", domain.ErrInvalidInput, status)
	}

	res, err := s.store.db.ExecContext(ctx,
		"UPDATE documents SET status = ? WHERE id = ?", string(status), documentID)
	if err != nil {
		return storageError("updating status", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return storageError("updating status", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetDocument retrieves a document by ID.
func (s *documentStore) GetDocument(ctx context.Context, documentID int64) (*domain.Document, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, filename, file_path, upload_date, status
		FROM documents WHERE id = ?
	`, documentID)
	return scanDocument(row)
}

// ListDocuments returns all documents, newest first.
func (s *documentStore) ListDocuments(ctx context.Context) ([]domain.Document, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, filename, file_path, upload_date, status
		FROM documents
		ORDER BY upload_date DESC, id DESC
	`)
	if err != nil {
		return nil, storageError("querying documents", err)
	}
	defer rows.Close()

	docs := []domain.Document{}
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, *doc)
	}

	if err := rows.Err(); err != nil {
		return nil, storageError("iterating documents", err)
	}
	return docs, nil
}

// GetDocumentDetail returns a document with its pages and summary.
// Reads happen in one transaction so the parts are consistent.
func (s *documentStore) GetDocumentDetail(ctx context.Context, documentID int64) (*domain.DocumentDetail, error) {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, storageError("beginning read", err)
	}
	defer tx.Rollback() //nolint:errcheck // nothing to commit

	doc, err := scanDocument(tx.QueryRowContext(ctx, `
		SELECT id, filename, file_path, upload_date, status
		FROM documents WHERE id = ?
	`, documentID))
	if err != nil {
		return nil, err
	}

	pages, err := queryPageResults(ctx, tx, documentID)
	if err != nil {
		return nil, err
	}

	detail := &domain.DocumentDetail{
		Document: *doc,
		Pages:    pages,
	}

	summary, err := querySummary(ctx, tx, documentID)
	switch {
	case err == nil:
		detail.Summary = summary
	case !errors.Is(err, domain.ErrNotFound):
		return nil, err
	}

	return detail, nil
}

// DeleteDocument removes a document with its pages and summary in one transaction.
func (s *documentStore) DeleteDocument(ctx context.Context, documentID int64) error {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return storageError("beginning delete", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	// Dependents first; there is no cascade
	if _, err := tx.ExecContext(ctx, "DELETE FROM page_results WHERE document_id = ?", documentID); err != nil {
		return storageError("deleting page results", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM summaries WHERE document_id = ?", documentID); err != nil {
		return storageError("deleting summary", err)
	}

	res, err := tx.ExecContext(ctx, "DELETE FROM documents WHERE id = ?", documentID)
	if err != nil {
		return storageError("deleting document", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return storageError("deleting document", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return storageError("committing delete", err)
	}
	return nil
}

func (s *documentStore) requireDocument(ctx context.Context, documentID int64) error {
	var exists int
	err := s.store.db.QueryRowContext(ctx,
		"SELECT 1 FROM documents WHERE id = ?", documentID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	if err != nil {
		return storageError("looking up document", err)
	}
	return nil
}

// ==================== Helper Functions ====================

// querier is satisfied by *sql.DB and *sql.Tx.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanDocument(row scanner) (*domain.Document, error) {
	var doc domain.Document
	var uploaded, status string

	if err := row.Scan(&doc.ID, &doc.Filename, &doc.FilePath, &uploaded, &status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, storageError("scanning document", err)
	}

	doc.UploadedAt = parseTime(uploaded)
	doc.Status = domain.DocumentStatus(status)
	return &doc, nil
}

func queryPageResults(ctx context.Context, q querier, documentID int64) ([]domain.PageResult, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT document_id, page_number, text, created_date
		FROM page_results
		WHERE document_id = ?
		ORDER BY page_number ASC
	`, documentID)
	if err != nil {
		return nil, storageError("querying page results", err)
	}
	defer rows.Close()

	results := []domain.PageResult{}
	for rows.Next() {
		var r domain.PageResult
		var created string
		if err := rows.Scan(&r.DocumentID, &r.PageNumber, &r.Text, &created); err != nil {
			return nil, storageError("scanning page result", err)
		}
		r.CreatedAt = parseTime(created)
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, storageError("iterating page results", err)
	}
	return results, nil
}

func querySummary(ctx context.Context, q querier, documentID int64) (*domain.Summary, error) {
	var summary domain.Summary
	var created string

	err := q.QueryRowContext(ctx, `
		SELECT document_id, text, created_date
		FROM summaries WHERE document_id = ?
	`, documentID).Scan(&summary.DocumentID, &summary.Text, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, storageError("querying summary", err)
	}

	summary.CreatedAt = parseTime(created)
	return &summary, nil
}

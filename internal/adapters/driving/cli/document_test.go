package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/pdfocr/internal/core/domain"
)

func TestDocumentCmd_HasSubcommands(t *testing.T) {
	names := make([]string, 0)
	for _, c := range documentCmd.Commands() {
		names = append(names, c.Name())
	}

	for _, want := range []string{"list", "show", "content", "export", "resume", "delete"} {
		assert.Contains(t, names, want)
	}
}

func TestDocumentCmd_NotConfigured(t *testing.T) {
	withServices(t, nil, nil, nil)

	for _, args := range [][]string{
		{"document", "list"},
		{"document", "show", "1"},
		{"document", "content", "1"},
		{"document", "export", "1"},
		{"document", "delete", "1", "-f"},
		{"document", "resume", "1"},
	} {
		_, err := runCLI(t, "", args...)
		require.Error(t, err, "args %v", args)
		assert.Contains(t, err.Error(), "not configured")
	}
}

func TestDocumentCmd_InvalidID(t *testing.T) {
	withServices(t, &mockPipelineService{}, &mockDocumentService{}, newMockSettingsService())

	for _, arg := range []string{"abc", "0", "-3"} {
		_, err := runCLI(t, "", "document", "show", "--", arg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid document id")
	}
}

func TestDocumentList_Empty(t *testing.T) {
	withServices(t, nil, &mockDocumentService{}, nil)

	out, err := runCLI(t, "", "document", "list")

	require.NoError(t, err)
	assert.Contains(t, out, "No documents found")
}

func TestDocumentList_ShowsStatus(t *testing.T) {
	now := time.Now()
	docs := &mockDocumentService{docs: []domain.Document{
		{ID: 2, Filename: "second.pdf", UploadedAt: now, Status: domain.StatusFailed},
		{ID: 1, Filename: "first.pdf", UploadedAt: now.Add(-time.Hour), Status: domain.StatusCompleted},
	}}
	withServices(t, nil, docs, nil)

	out, err := runCLI(t, "", "document", "list")

	require.NoError(t, err)
	assert.Contains(t, out, "second.pdf")
	assert.Contains(t, out, "failed")
	assert.Contains(t, out, "completed")
	assert.Contains(t, out, "Total: 2 documents")
	assert.Less(t, strings.Index(out, "second.pdf"), strings.Index(out, "first.pdf"))
}

func TestDocumentShow(t *testing.T) {
	detail := completedDetail(3, "paper.pdf", 2, "It is about tests.")
	detail.Pages[1].Text = "second page body"
	withServices(t, nil, &mockDocumentService{details: map[int64]*domain.DocumentDetail{3: detail}}, nil)

	out, err := runCLI(t, "", "document", "show", "3")

	require.NoError(t, err)
	assert.Contains(t, out, "paper.pdf")
	assert.Contains(t, out, "It is about tests.")
	assert.Contains(t, out, "Page 2")
	assert.Contains(t, out, "second page body")
}

func TestDocumentShow_NoSummary(t *testing.T) {
	withServices(t, nil, &mockDocumentService{details: map[int64]*domain.DocumentDetail{
		3: completedDetail(3, "paper.pdf", 1, ""),
	}}, nil)

	out, err := runCLI(t, "", "document", "show", "3")

	require.NoError(t, err)
	assert.Contains(t, out, "(no summary)")
}

func TestDocumentShow_NotFound(t *testing.T) {
	withServices(t, nil, &mockDocumentService{}, nil)

	_, err := runCLI(t, "", "document", "show", "9")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDocumentContent(t *testing.T) {
	withServices(t, nil, &mockDocumentService{content: map[int64]string{5: "one\n\ntwo"}}, nil)

	out, err := runCLI(t, "", "document", "content", "5")

	require.NoError(t, err)
	assert.Contains(t, out, "one\n\ntwo")
}

func TestDocumentExport_ToFile(t *testing.T) {
	docs := &mockDocumentService{
		exportName:    "paper_ocr_results.txt",
		exportContent: "--- Page 1 ---\nhello",
	}
	withServices(t, nil, docs, nil)
	target := filepath.Join(t.TempDir(), "out.txt")

	out, err := runCLI(t, "", "document", "export", "1", "-o", target)

	require.NoError(t, err)
	assert.Contains(t, out, "Exported document 1 to "+target)
	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "--- Page 1 ---\nhello", string(data))
}

func TestDocumentExport_DefaultName(t *testing.T) {
	docs := &mockDocumentService{
		exportName:    "paper_ocr_results.txt",
		exportContent: "--- Page 1 ---\nhello",
	}
	withServices(t, nil, docs, nil)
	t.Chdir(t.TempDir())

	_, err := runCLI(t, "", "document", "export", "1")

	require.NoError(t, err)
	assert.FileExists(t, "paper_ocr_results.txt")
}

func TestDocumentExport_Stdout(t *testing.T) {
	docs := &mockDocumentService{exportName: "x.txt", exportContent: "--- Page 1 ---\nhello"}
	withServices(t, nil, docs, nil)

	out, err := runCLI(t, "", "document", "export", "1", "-o", "-")

	require.NoError(t, err)
	assert.Equal(t, "--- Page 1 ---\nhello", out)
}

func TestDocumentExport_NoPages(t *testing.T) {
	withServices(t, nil, &mockDocumentService{err: domain.ErrNotFound}, nil)

	_, err := runCLI(t, "", "document", "export", "1")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDocumentDelete_Force(t *testing.T) {
	docs := &mockDocumentService{}
	withServices(t, nil, docs, nil)

	out, err := runCLI(t, "", "document", "delete", "4", "--force")

	require.NoError(t, err)
	assert.Equal(t, []int64{4}, docs.deleted)
	assert.Contains(t, out, "Document 4 deleted.")
}

func TestDocumentDelete_Confirm(t *testing.T) {
	docs := &mockDocumentService{}
	withServices(t, nil, docs, nil)

	_, err := runCLI(t, "y\n", "document", "delete", "4")

	require.NoError(t, err)
	assert.Equal(t, []int64{4}, docs.deleted)
}

func TestDocumentDelete_Cancelled(t *testing.T) {
	docs := &mockDocumentService{}
	withServices(t, nil, docs, nil)

	out, err := runCLI(t, "n\n", "document", "delete", "4")

	require.NoError(t, err)
	assert.Empty(t, docs.deleted)
	assert.Contains(t, out, "Cancelled.")
}

func TestDocumentResume(t *testing.T) {
	pipeline := &mockPipelineService{}
	docs := &mockDocumentService{details: map[int64]*domain.DocumentDetail{
		6: completedDetail(6, "r.pdf", 3, "s"),
	}}
	withServices(t, pipeline, docs, nil)

	out, err := runCLI(t, "", "document", "resume", "6")

	require.NoError(t, err)
	assert.Equal(t, []int64{6}, pipeline.resumed)
	assert.Contains(t, out, "3 pages, summary stored")
}

func TestDocumentResume_Error(t *testing.T) {
	pipeline := &mockPipelineService{resumeErr: domain.ErrDocumentRead}
	withServices(t, pipeline, &mockDocumentService{}, nil)

	_, err := runCLI(t, "", "document", "resume", "6")

	assert.ErrorIs(t, err, domain.ErrDocumentRead)
}

package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/custodia-labs/pdfocr/internal/core/domain"
	"github.com/custodia-labs/pdfocr/internal/core/ports/driving"
)

// ==================== Mock services ====================

type mockPipelineService struct {
	processed  []string
	processErr map[string]error
	nextID     int64

	resumed   []int64
	resumeErr error

	dir       string
	report    *driving.BatchReport
	reportErr error
}

func (m *mockPipelineService) ProcessDocument(_ context.Context, path string) (int64, error) {
	m.processed = append(m.processed, path)
	m.nextID++
	if err, ok := m.processErr[path]; ok {
		return m.nextID, err
	}
	return m.nextID, nil
}

func (m *mockPipelineService) Resume(_ context.Context, documentID int64) error {
	m.resumed = append(m.resumed, documentID)
	return m.resumeErr
}

func (m *mockPipelineService) ProcessDirectory(_ context.Context, dir string) (*driving.BatchReport, error) {
	m.dir = dir
	if m.report == nil {
		return &driving.BatchReport{}, m.reportErr
	}
	return m.report, m.reportErr
}

type mockDocumentService struct {
	docs    []domain.Document
	details map[int64]*domain.DocumentDetail
	content map[int64]string

	exportName    string
	exportContent string

	deleted []int64
	err     error
}

func (m *mockDocumentService) List(context.Context) ([]domain.Document, error) {
	return m.docs, m.err
}

func (m *mockDocumentService) Get(_ context.Context, id int64) (*domain.DocumentDetail, error) {
	if m.err != nil {
		return nil, m.err
	}
	d, ok := m.details[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return d, nil
}

func (m *mockDocumentService) GetContent(_ context.Context, id int64) (string, error) {
	c, ok := m.content[id]
	if !ok {
		return "", domain.ErrNotFound
	}
	return c, nil
}

func (m *mockDocumentService) Export(context.Context, int64) (string, string, error) {
	if m.err != nil {
		return "", "", m.err
	}
	return m.exportName, m.exportContent, nil
}

func (m *mockDocumentService) Delete(_ context.Context, id int64) error {
	if m.err != nil {
		return m.err
	}
	m.deleted = append(m.deleted, id)
	return nil
}

type mockSettingsService struct {
	settings    domain.Settings
	set         map[string]string
	setErr      error
	validateErr map[domain.AIProvider]error
	validated   []domain.AIProvider
}

func newMockSettingsService() *mockSettingsService {
	return &mockSettingsService{
		settings: domain.DefaultSettings(),
		set:      make(map[string]string),
	}
}

func (m *mockSettingsService) Get() (domain.Settings, error) {
	return m.settings, nil
}

func (m *mockSettingsService) Set(key, value string) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.set[key] = value
	return nil
}

func (m *mockSettingsService) Keys() []string {
	return []string{"gemini.api_key", "openai.model"}
}

func (m *mockSettingsService) Validate(p domain.AIProvider) error {
	m.validated = append(m.validated, p)
	return m.validateErr[p]
}

// ==================== Helpers ====================

// withServices injects doubles for the duration of the test.
func withServices(t *testing.T, p driving.PipelineService, d driving.DocumentService, s driving.SettingsService) {
	t.Helper()

	oldP, oldD, oldS, oldWire := pipelineService, documentService, settingsService, wireServices
	pipelineService, documentService, settingsService = p, d, s
	wireServices = func(context.Context) (func(), error) { return func() {}, nil }

	t.Cleanup(func() {
		pipelineService, documentService, settingsService, wireServices = oldP, oldD, oldS, oldWire
	})
}

// resetFlags restores every flag variable to its default.
func resetFlags() {
	verbose, configDir, dataDir, inMemory = false, "", "", false
	processDir, processSummary = false, false
	exportOutput, deleteForce = "", false
}

// runCLI executes the root command with args and stdin, returning combined output.
func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		if cleanup != nil {
			cleanup()
			cleanup = nil
		}
		resetFlags()
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}

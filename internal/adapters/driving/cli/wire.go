package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/custodia-labs/pdfocr/internal/adapters/driven/ai"
	"github.com/custodia-labs/pdfocr/internal/adapters/driven/config/file"
	"github.com/custodia-labs/pdfocr/internal/adapters/driven/llm"
	"github.com/custodia-labs/pdfocr/internal/adapters/driven/pdf"
	"github.com/custodia-labs/pdfocr/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/pdfocr/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/pdfocr/internal/core/ports/driven"
	"github.com/custodia-labs/pdfocr/internal/core/services"
	"github.com/custodia-labs/pdfocr/internal/logger"
)

// wire builds the production object graph from flags, environment and
// the config file.
func wire(ctx context.Context) (func(), error) {
	configStore, err := file.NewConfigStore(configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}

	promptDir := filepath.Join(filepath.Dir(configStore.Path()), "prompts")
	prompts, err := file.NewPromptStore(promptDir, llm.DefaultPrompts)
	if err != nil {
		return nil, fmt.Errorf("failed to open prompts: %w", err)
	}

	settingsSvc := services.NewSettingsService(configStore, ai.NewConfigValidator())
	settings, err := settingsSvc.Get()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve settings: %w", err)
	}
	if dataDir != "" {
		settings.Storage.DataDir = dataDir
	}

	var docStore driven.DocumentStore
	closeStore := func() {}
	if inMemory || settings.Storage.InMemory {
		logger.Debug("using in-memory document store")
		docStore = memory.NewDocumentStore()
	} else {
		store, err := sqlite.NewStore(settings.Storage.DataDir, settings.Storage.DatabaseName)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		logger.Debug("database: %s", store.Path())
		docStore = store.DocumentStore()
		closeStore = func() {
			if err := store.Close(); err != nil {
				logger.Error("close database: %v", err)
			}
		}
	}

	stages := ai.CreateStages(ctx, settings, prompts)
	for _, w := range stages.Warnings {
		logger.Warn("%s", w)
	}

	pipelineService = services.NewPipelineService(docStore, pdf.NewExtractor(), services.Stages{
		Enhancer:   stages.Enhancer,
		Formatter:  stages.Formatter,
		Summariser: stages.Summariser,
	}, settings)
	documentService = services.NewDocumentService(docStore)
	settingsService = settingsSvc

	return func() {
		stages.Close()
		closeStore()
	}, nil
}

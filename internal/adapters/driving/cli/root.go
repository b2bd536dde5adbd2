package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/pdfocr/internal/core/ports/driving"
	"github.com/custodia-labs/pdfocr/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// Services used by the commands. Populated by wireServices before any
// command runs.
var (
	pipelineService driving.PipelineService
	documentService driving.DocumentService
	settingsService driving.SettingsService
)

// Global flags.
var (
	verbose   bool
	configDir string
	dataDir   string
	inMemory  bool
)

// wireServices builds the services for a run and returns a cleanup func.
// Tests replace it to inject doubles.
var wireServices = wire

// cleanup releases resources acquired by wireServices.
var cleanup func()

var rootCmd = &cobra.Command{
	Use:   "pdfocr",
	Short: "Extract, clean up and summarise text from PDF documents",
	Long: `pdfocr extracts the text of each page of a PDF, cleans it with Gemini,
formats it with OpenAI, stores every page and produces a document summary
with Anthropic.

Services without an API key are skipped: enhancement falls back to the raw
page text, formatting falls back to the enhanced text and no summary is
stored.`,
	SilenceUsage: true,
}

func init() {
	// Assigned here: setup refers back to rootCmd.
	rootCmd.PersistentPreRunE = setup

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.pdfocr)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "database directory (overrides storage.data_dir)")
	rootCmd.PersistentFlags().BoolVar(&inMemory, "in-memory", false, "keep results in memory only; nothing is written to the database")
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command. SIGINT and SIGTERM cancel in-flight
// processing; the document being processed is marked failed and can be resumed.
func Execute() error {
	// A missing .env is not an error
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	defer func() {
		if cleanup != nil {
			cleanup()
			cleanup = nil
		}
	}()

	return rootCmd.ExecuteContext(ctx)
}

// setup configures logging and wires services for commands that need them.
func setup(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	if !needsServices(cmd) {
		return nil
	}

	done, err := wireServices(cmd.Context())
	if err != nil {
		return err
	}
	cleanup = done
	return nil
}

// needsServices reports whether cmd uses any of the services.
func needsServices(cmd *cobra.Command) bool {
	if cmd == versionCmd || cmd == rootCmd {
		return false
	}
	for c := cmd; c != nil; c = c.Parent() {
		if c.Name() == "help" || c.Name() == "completion" {
			return false
		}
	}
	return true
}

// errNotConfigured is returned when a command runs without its service.
func errNotConfigured(name string) error {
	return errors.New(name + " service not configured")
}

package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/pdfocr/internal/core/services"
	"github.com/custodia-labs/pdfocr/internal/logger"
)

var processCmd = &cobra.Command{
	Use:   "process [file...]",
	Short: "Process PDF files",
	Long: `Registers each PDF and runs it through extraction, enhancement,
formatting and summarisation. Files are processed one at a time.

With --dir, every PDF in the folder is processed in name order. The folder
defaults to the configured uploads folder (uploads.dir). A file that fails
does not stop the batch.`,
	Example: `  pdfocr process report.pdf
  pdfocr process --dir
  pdfocr process --dir ./inbox`,
	RunE: runProcess,
}

var (
	processDir     bool
	processSummary bool
)

func init() {
	processCmd.Flags().BoolVar(&processDir, "dir", false, "process every PDF in a folder (default: uploads folder)")
	processCmd.Flags().BoolVar(&processSummary, "summary", false, "print the summary of each completed document")
	rootCmd.AddCommand(processCmd)
}

func runProcess(cmd *cobra.Command, args []string) error {
	if pipelineService == nil {
		return errNotConfigured("pipeline")
	}
	if settingsService == nil {
		return errNotConfigured("settings")
	}

	if processDir {
		return runProcessDir(cmd, args)
	}
	if len(args) == 0 {
		return errors.New("no files given; pass PDF paths or use --dir")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	ctx := cmd.Context()
	failed := 0
	for _, path := range args {
		if err := services.ValidateUploadFile(path, settings.Uploads); err != nil {
			cmd.PrintErrf("Skipping %s: %v\n", path, err)
			failed++
			continue
		}

		cmd.Printf("Processing %s...\n", path)
		id, err := pipelineService.ProcessDocument(ctx, path)
		if err != nil {
			printFailure(cmd, path, id, err)
			failed++
			if ctx.Err() != nil {
				break
			}
			continue
		}
		printCompleted(ctx, cmd, id)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(args))
	}
	return nil
}

func runProcessDir(cmd *cobra.Command, args []string) error {
	if len(args) > 1 {
		return errors.New("--dir takes at most one folder")
	}

	var dir string
	if len(args) == 1 {
		dir = args[0]
	} else {
		settings, err := settingsService.Get()
		if err != nil {
			return fmt.Errorf("failed to get settings: %w", err)
		}
		dir = settings.Uploads.Dir
	}

	cmd.Printf("Processing PDFs in %s...\n", dir)
	report, err := pipelineService.ProcessDirectory(cmd.Context(), dir)
	if report != nil {
		for _, id := range report.Completed {
			printCompleted(cmd.Context(), cmd, id)
		}
		for _, f := range report.Failures {
			printFailure(cmd, f.Path, f.DocumentID, f.Err)
		}
	}
	if err != nil {
		return fmt.Errorf("batch stopped: %w", err)
	}

	cmd.Printf("\n%d completed, %d failed\n", len(report.Completed), len(report.Failures))
	if len(report.Failures) > 0 {
		return fmt.Errorf("%d files failed", len(report.Failures))
	}
	return nil
}

// printCompleted reports a finished document, with its summary if requested.
func printCompleted(ctx context.Context, cmd *cobra.Command, id int64) {
	if documentService == nil {
		cmd.Printf("Document %d %s\n", id, okStyle.Render("completed"))
		return
	}

	detail, err := documentService.Get(ctx, id)
	if err != nil {
		cmd.Printf("Document %d %s\n", id, okStyle.Render("completed"))
		return
	}

	summary := "no summary"
	if detail.Summary != nil {
		summary = "summary stored"
	}
	cmd.Printf("Document %d %s: %s (%d pages, %s)\n",
		id, statusBadge(detail.Document.Status), detail.Document.Filename, len(detail.Pages), summary)

	if processSummary && detail.Summary != nil {
		cmd.Println()
		cmd.Println(headerStyle.Render("Summary"))
		cmd.Println(detail.Summary.Text)
		cmd.Println()
	}
}

func printFailure(cmd *cobra.Command, path string, id int64, err error) {
	if id == 0 {
		cmd.PrintErrf("%s %s: %v\n", errStyle.Render("Failed"), path, err)
	} else {
		cmd.PrintErrf("%s %s (document %d): %v\n", errStyle.Render("Failed"), path, id, err)
		cmd.PrintErrf("  Resume with: pdfocr document resume %d\n", id)
	}
	if !logger.IsVerbose() {
		cmd.PrintErrln(mutedStyle.Render("  Run with --verbose to see each service call"))
	}
}

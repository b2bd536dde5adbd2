package cli

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var documentCmd = &cobra.Command{
	Use:     "document",
	Aliases: []string{"doc"},
	Short:   "Manage processed documents",
	Long:    `List, view, export, resume or delete processed documents.`,
}

var documentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List documents, newest first",
	Args:  cobra.NoArgs,
	RunE:  runDocumentList,
}

var documentShowCmd = &cobra.Command{
	Use:   "show <doc-id>",
	Short: "Show a document with its summary and pages",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentShow,
}

var documentContentCmd = &cobra.Command{
	Use:   "content <doc-id>",
	Short: "Print the full document text",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentContent,
}

var documentExportCmd = &cobra.Command{
	Use:   "export <doc-id>",
	Short: "Export per-page results to a text file",
	Long: `Writes the per-page results as "--- Page N ---" blocks.

The file defaults to <name>_ocr_results.txt in the current directory.
Use -o - to write to standard output.`,
	Args: cobra.ExactArgs(1),
	RunE: runDocumentExport,
}

var documentResumeCmd = &cobra.Command{
	Use:   "resume <doc-id>",
	Short: "Resume processing of a pending or failed document",
	Long: `Re-runs the pipeline from the stored file path. Pages and the summary
already stored are kept and skipped. Completed documents are left as they are.`,
	Args: cobra.ExactArgs(1),
	RunE: runDocumentResume,
}

var documentDeleteCmd = &cobra.Command{
	Use:   "delete <doc-id>",
	Short: "Delete a document and all its results",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentDelete,
}

var (
	exportOutput string
	deleteForce  bool
)

func init() {
	documentExportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (- for stdout)")
	documentDeleteCmd.Flags().BoolVarP(&deleteForce, "force", "f", false, "delete without confirmation")

	documentCmd.AddCommand(documentListCmd)
	documentCmd.AddCommand(documentShowCmd)
	documentCmd.AddCommand(documentContentCmd)
	documentCmd.AddCommand(documentExportCmd)
	documentCmd.AddCommand(documentResumeCmd)
	documentCmd.AddCommand(documentDeleteCmd)
	rootCmd.AddCommand(documentCmd)
}

func runDocumentList(cmd *cobra.Command, _ []string) error {
	if documentService == nil {
		return errNotConfigured("document")
	}

	docs, err := documentService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}

	if len(docs) == 0 {
		cmd.Println("No documents found. Process one with: pdfocr process <file.pdf>")
		return nil
	}

	cmd.Println(headerStyle.Render(fmt.Sprintf("%-6s %-40s %-19s %s", "ID", "FILENAME", "UPLOADED", "STATUS")))
	for i := range docs {
		cmd.Printf("%-6d %-40s %-19s %s\n",
			docs[i].ID,
			truncate(docs[i].Filename, 40),
			docs[i].UploadedAt.Local().Format("2006-01-02 15:04:05"),
			statusBadge(docs[i].Status))
	}

	cmd.Printf("\nTotal: %d documents\n", len(docs))
	return nil
}

func runDocumentShow(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errNotConfigured("document")
	}

	id, err := parseDocumentID(args[0])
	if err != nil {
		return err
	}

	detail, err := documentService.Get(cmd.Context(), id)
	if err != nil {
		return fmt.Errorf("failed to get document: %w", err)
	}

	doc := detail.Document
	cmd.Printf("Document: %d\n\n", doc.ID)
	cmd.Printf("  Filename: %s\n", doc.Filename)
	cmd.Printf("  Path:     %s\n", doc.FilePath)
	cmd.Printf("  Uploaded: %s\n", doc.UploadedAt.Local().Format("2006-01-02 15:04:05"))
	cmd.Printf("  Status:   %s\n", statusBadge(doc.Status))
	cmd.Printf("  Pages:    %d\n", len(detail.Pages))
	cmd.Println()

	cmd.Println(headerStyle.Render("Summary"))
	if detail.Summary != nil {
		cmd.Println(detail.Summary.Text)
	} else {
		cmd.Println(mutedStyle.Render("(no summary)"))
	}

	for _, page := range detail.Pages {
		cmd.Println()
		cmd.Println(headerStyle.Render(fmt.Sprintf("Page %d", page.PageNumber)))
		cmd.Println(page.Text)
	}

	return nil
}

func runDocumentContent(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errNotConfigured("document")
	}

	id, err := parseDocumentID(args[0])
	if err != nil {
		return err
	}

	content, err := documentService.GetContent(cmd.Context(), id)
	if err != nil {
		return fmt.Errorf("failed to get document content: %w", err)
	}

	cmd.Println(content)
	return nil
}

func runDocumentExport(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errNotConfigured("document")
	}

	id, err := parseDocumentID(args[0])
	if err != nil {
		return err
	}

	filename, content, err := documentService.Export(cmd.Context(), id)
	if err != nil {
		return fmt.Errorf("failed to export document: %w", err)
	}

	switch exportOutput {
	case "-":
		cmd.Print(content)
		return nil
	case "":
	default:
		filename = exportOutput
	}

	if err := os.WriteFile(filename, []byte(content), 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}
	cmd.Printf("Exported document %d to %s\n", id, filename)
	return nil
}

func runDocumentResume(cmd *cobra.Command, args []string) error {
	if pipelineService == nil {
		return errNotConfigured("pipeline")
	}

	id, err := parseDocumentID(args[0])
	if err != nil {
		return err
	}

	cmd.Printf("Resuming document %d...\n", id)
	if err := pipelineService.Resume(cmd.Context(), id); err != nil {
		return fmt.Errorf("failed to resume document %d: %w", id, err)
	}

	printCompleted(cmd.Context(), cmd, id)
	return nil
}

func runDocumentDelete(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errNotConfigured("document")
	}

	id, err := parseDocumentID(args[0])
	if err != nil {
		return err
	}

	if !deleteForce {
		cmd.Printf("Delete document %d and all its results? [y/N]: ", id)
		answer := strings.ToLower(readLine(bufio.NewReader(cmd.InOrStdin())))
		if answer != "y" && answer != "yes" {
			cmd.Println("Cancelled.")
			return nil
		}
	}

	if err := documentService.Delete(cmd.Context(), id); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}

	cmd.Printf("Document %d deleted.\n", id)
	return nil
}

// parseDocumentID parses a positive document ID argument.
func parseDocumentID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid document id %q", arg)
	}
	return id, nil
}

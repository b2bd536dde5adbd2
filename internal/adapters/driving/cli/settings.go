package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/pdfocr/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the remote text services, storage and upload limits.

Settings are read from environment variables first (GEMINI_API_KEY,
OPENAI_API_KEY, ANTHROPIC_API_KEY, PDFOCR_DATA_DIR, PDFOCR_UPLOAD_DIR, also
loaded from a .env file), then from config.toml, then from defaults.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> [value]",
	Short: "Set a configuration value",
	Long: `Set a configuration value in config.toml.

For API keys the value may be omitted; it is then read from the terminal
without echo. Run 'pdfocr settings keys' to list the recognised keys.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runSettingsSet,
}

var settingsKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List recognised configuration keys",
	Args:  cobra.NoArgs,
	RunE:  runSettingsKeys,
}

var settingsCheckCmd = &cobra.Command{
	Use:   "check [provider]",
	Short: "Check connectivity to the remote text services",
	Long: `Pings each configured service (gemini, openai, anthropic) or only the
one given. Services without an API key are reported as not configured.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSettingsCheck,
}

var settingsWizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Interactive setup wizard",
	Long:  `Run an interactive wizard to configure the API key and model of each service.`,
	RunE:  runSettingsWizard,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsKeysCmd)
	settingsCmd.AddCommand(settingsCheckCmd)
	settingsCmd.AddCommand(settingsWizardCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errNotConfigured("settings")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	for _, provider := range domain.Providers() {
		svc := settings.Service(provider)
		cmd.Printf("[%s]\n", provider.Description())
		cmd.Printf("  Model: %s\n", svc.Model)
		if svc.BaseURL != "" {
			cmd.Printf("  Base URL: %s\n", svc.BaseURL)
		}
		if svc.APIKey != "" {
			cmd.Printf("  API Key: %s\n", maskAPIKey(svc.APIKey))
		} else {
			cmd.Printf("  API Key: (not set)\n")
		}
		if svc.Temperature != nil {
			cmd.Printf("  Temperature: %s\n", strconv.FormatFloat(*svc.Temperature, 'g', -1, 64))
		}
		if svc.MaxTokens > 0 {
			cmd.Printf("  Max Tokens: %d\n", svc.MaxTokens)
		}
		if svc.Timeout > 0 {
			cmd.Printf("  Timeout: %s\n", svc.Timeout)
		}
		status := okStyle.Render("configured")
		if !svc.IsConfigured() {
			status = warnStyle.Render("not configured") + mutedStyle.Render(" (stage falls back)")
		}
		cmd.Printf("  Status: %s\n", status)
		cmd.Println()
	}

	cmd.Println("[Storage]")
	dataDir := settings.Storage.DataDir
	if dataDir == "" {
		dataDir = "~/.pdfocr/data"
	}
	cmd.Printf("  Data Dir: %s\n", dataDir)
	cmd.Printf("  Database: %s\n", settings.Storage.DatabaseName)
	if settings.Storage.InMemory {
		cmd.Printf("  In Memory: %s\n", warnStyle.Render("yes (results are not saved)"))
	}
	cmd.Println()

	cmd.Println("[Uploads]")
	cmd.Printf("  Folder: %s\n", settings.Uploads.Dir)
	cmd.Printf("  Max File Size: %d bytes\n", settings.Uploads.MaxFileSize)
	cmd.Printf("  Allowed: %s\n", strings.Join(settings.Uploads.AllowedExtensions, ", "))
	cmd.Println()

	cmd.Println("[Services]")
	if settings.RequestsPerMinute > 0 {
		cmd.Printf("  Requests Per Minute: %d\n", settings.RequestsPerMinute)
	} else {
		cmd.Printf("  Requests Per Minute: unlimited\n")
	}

	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errNotConfigured("settings")
	}

	key := args[0]
	var value string
	if len(args) == 2 {
		value = args[1]
	} else {
		if !isSecretKey(key) {
			return fmt.Errorf("a value is required for %s", key)
		}
		cmd.Printf("Enter value for %s: ", key)
		value = readPassword(cmd.InOrStdin())
		cmd.Println()
	}

	if err := settingsService.Set(key, value); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			cmd.PrintErrln("Run 'pdfocr settings keys' to list the recognised keys.")
		}
		return fmt.Errorf("failed to set %s: %w", key, err)
	}

	if isSecretKey(key) {
		cmd.Printf("%s set to %s\n", key, maskAPIKey(value))
	} else {
		cmd.Printf("%s set to %s\n", key, value)
	}
	return nil
}

func runSettingsKeys(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errNotConfigured("settings")
	}

	for _, key := range settingsService.Keys() {
		cmd.Println(key)
	}
	return nil
}

func runSettingsCheck(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errNotConfigured("settings")
	}

	providers := domain.Providers()
	if len(args) == 1 {
		p := domain.AIProvider(strings.ToLower(args[0]))
		if !p.IsValid() {
			return fmt.Errorf("unknown provider %q (expected gemini, openai or anthropic)", args[0])
		}
		providers = []domain.AIProvider{p}
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	failed := 0
	for _, p := range providers {
		cmd.Printf("%-10s ", p)
		if !settings.Service(p).IsConfigured() {
			cmd.Println(warnStyle.Render("not configured"))
			continue
		}
		if err := settingsService.Validate(p); err != nil {
			cmd.Printf("%s: %v\n", errStyle.Render("FAILED"), err)
			failed++
			continue
		}
		cmd.Println(okStyle.Render("OK"))
	}

	if failed > 0 {
		return fmt.Errorf("%d service check(s) failed", failed)
	}
	return nil
}

func runSettingsWizard(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errNotConfigured("settings")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	in := cmd.InOrStdin()
	reader := bufio.NewReader(in)

	cmd.Println("pdfocr Setup Wizard")
	cmd.Println("===================")
	cmd.Println()
	cmd.Println("Press Enter to keep the current value.")
	cmd.Println()

	for i, p := range domain.Providers() {
		svc := settings.Service(p)
		title := fmt.Sprintf("Step %d: %s", i+1, p.Description())
		cmd.Println(title)
		cmd.Println(strings.Repeat("-", len(title)))

		current := "(not set)"
		if svc.APIKey != "" {
			current = maskAPIKey(svc.APIKey)
		}
		cmd.Printf("API key [%s]: ", current)
		apiKey := readSecret(in, reader)
		cmd.Println()
		if apiKey != "" {
			if err := settingsService.Set(p.String()+".api_key", apiKey); err != nil {
				return fmt.Errorf("failed to set %s API key: %w", p, err)
			}
		}

		cmd.Printf("Model [%s]: ", svc.Model)
		if model := readLine(reader); model != "" {
			if err := settingsService.Set(p.String()+".model", model); err != nil {
				return fmt.Errorf("failed to set %s model: %w", p, err)
			}
		}
		cmd.Println()
	}

	cmd.Println("Configuration Complete!")
	cmd.Println("=======================")
	cmd.Println("Run 'pdfocr settings check' to verify connectivity.")
	return nil
}

// Helper functions.

func isSecretKey(key string) bool {
	return strings.HasSuffix(key, ".api_key")
}

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

// readPassword reads a secret without echo when in is a terminal.
func readPassword(in io.Reader) string {
	return readSecret(in, bufio.NewReader(in))
}

func readSecret(in io.Reader, reader *bufio.Reader) string {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		password, err := term.ReadPassword(int(f.Fd()))
		if err == nil {
			return strings.TrimSpace(string(password))
		}
	}
	return readLine(reader)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

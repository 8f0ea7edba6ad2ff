package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the stored settings: contact email, directory API
key, directory database, and cache lifetime.

Settings live in a TOML file and apply to every run; command flags
override them per run.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsEmailCmd = &cobra.Command{
	Use:   "email <address>",
	Short: "Set the contact email for directory lookups",
	Long: `Set the contact email sent with every directory request. The directory
service requires one before any lookup runs.`,
	Args: cobra.ExactArgs(1),
	RunE: runSettingsEmail,
}

var settingsAPIKeyCmd = &cobra.Command{
	Use:   "api-key [key]",
	Short: "Set the directory API key",
	Long: `Set the directory API key. A key raises the allowed request rate from
3 to 10 requests per second. With no argument, prompts without echo.

Pass an empty string to clear the key:
  blastdiff settings api-key ""`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSettingsAPIKey,
}

var settingsDatabaseCmd = &cobra.Command{
	Use:   "database <name>",
	Short: "Set the directory database",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsDatabase,
}

var settingsCacheTTLCmd = &cobra.Command{
	Use:   "cache-ttl <days>",
	Short: "Set how many days cached lookups stay fresh",
	Long: `Set how many days cached directory answers stay fresh. Zero disables
the cache entirely.`,
	Args: cobra.ExactArgs(1),
	RunE: runSettingsCacheTTL,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsEmailCmd)
	settingsCmd.AddCommand(settingsAPIKeyCmd)
	settingsCmd.AddCommand(settingsDatabaseCmd)
	settingsCmd.AddCommand(settingsCacheTTLCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	cfg := appConfig

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Directory]")
	if cfg.Email != "" {
		cmd.Printf("  Email: %s\n", cfg.Email)
	} else {
		cmd.Println("  Email: (not set, required before lookups)")
	}
	if cfg.APIKey != "" {
		cmd.Printf("  API Key: %s\n", maskAPIKey(cfg.APIKey))
	} else {
		cmd.Println("  API Key: (not set)")
	}
	cmd.Printf("  Database: %s\n", cfg.Database)
	cmd.Println()

	cmd.Println("[Cache]")
	if cfg.CacheTTLDays > 0 {
		cmd.Printf("  Lookup TTL: %d days\n", cfg.CacheTTLDays)
	} else {
		cmd.Println("  Lookup TTL: disabled")
	}
	cmd.Println()

	cmd.Println("[Comparator]")
	cmd.Printf("  Identity drift: %.2f%%\n", cfg.Tolerances.PctIdentity)
	cmd.Printf("  Coordinate drift: %d bases\n", cfg.Tolerances.Coordinates)
	cmd.Printf("  Bit score drift: %.0f%%\n", cfg.Tolerances.BitScoreFrac*100)
	cmd.Printf("  E-value drift: %.0f orders of magnitude\n", cfg.Tolerances.EValueOrders)
	cmd.Println()

	cmd.Printf("Config file: %s\n", configStore.Path())
	return nil
}

func runSettingsEmail(cmd *cobra.Command, args []string) error {
	email := strings.TrimSpace(args[0])
	if email == "" || !strings.Contains(email, "@") {
		return fmt.Errorf("invalid email address %q", args[0])
	}

	appConfig.Email = email
	if err := configStore.Save(appConfig); err != nil {
		return fmt.Errorf("saving settings: %w", err)
	}
	cmd.Printf("Email set to %s\n", email)
	return nil
}

func runSettingsAPIKey(cmd *cobra.Command, args []string) error {
	var key string
	if len(args) == 1 {
		key = args[0]
	} else {
		cmd.Print("Enter API key: ")
		key = readPassword()
		cmd.Println()
		if key == "" {
			return errors.New("no key entered")
		}
	}

	appConfig.APIKey = key
	if err := configStore.Save(appConfig); err != nil {
		return fmt.Errorf("saving settings: %w", err)
	}

	if key == "" {
		cmd.Println("API key cleared")
	} else {
		cmd.Printf("API key set to %s\n", maskAPIKey(key))
	}
	return nil
}

func runSettingsDatabase(cmd *cobra.Command, args []string) error {
	database := strings.TrimSpace(args[0])
	if database == "" {
		return errors.New("database name must not be empty")
	}

	appConfig.Database = database
	if err := configStore.Save(appConfig); err != nil {
		return fmt.Errorf("saving settings: %w", err)
	}
	cmd.Printf("Database set to %s\n", database)
	return nil
}

func runSettingsCacheTTL(cmd *cobra.Command, args []string) error {
	days, err := strconv.Atoi(args[0])
	if err != nil || days < 0 {
		return fmt.Errorf("invalid day count %q", args[0])
	}

	appConfig.CacheTTLDays = days
	if err := configStore.Save(appConfig); err != nil {
		return fmt.Errorf("saving settings: %w", err)
	}

	if days == 0 {
		cmd.Println("Lookup cache disabled")
	} else {
		cmd.Printf("Cached lookups stay fresh for %d days\n", days)
	}
	return nil
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readPassword() string {
	// Try to read without echo first
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return string(password)
		}
	}
	// Fallback to regular input
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

// Package cli implements the command-line interface. Commands are thin
// adapters: they parse flags, wire adapters to core services, and
// render results; all reconciliation semantics live in the core.
package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/blastwatch/blastdiff/internal/adapters/driven/config/file"
	"github.com/blastwatch/blastdiff/internal/adapters/driven/directory"
	"github.com/blastwatch/blastdiff/internal/adapters/driven/directory/entrez"
	"github.com/blastwatch/blastdiff/internal/adapters/driven/hitfile"
	"github.com/blastwatch/blastdiff/internal/adapters/driven/storage/sqlite"
	"github.com/blastwatch/blastdiff/internal/comparators/blast"
	"github.com/blastwatch/blastdiff/internal/core/domain"
	"github.com/blastwatch/blastdiff/internal/core/ports/driven"
	"github.com/blastwatch/blastdiff/internal/core/ports/driving"
	"github.com/blastwatch/blastdiff/internal/core/services"
	"github.com/blastwatch/blastdiff/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

var verbose bool

// Services injected into commands. Populated by initServices; tests
// override them directly.
var (
	compareService driving.CompareService
	lookupService  driving.LookupService
	hitSource      driven.HitSource
	hitExporter    driven.HitExporter
	configStore    driven.ConfigStore
)

// appConfig is the loaded configuration, available to all commands
// after initServices runs.
var appConfig domain.Config

var rootCmd = &cobra.Command{
	Use:   "blastdiff",
	Short: "Reconcile two snapshots of BLAST search results",
	Long: `blastdiff compares an older and a newer tabular BLAST result for the
same queries and classifies every hit: unchanged, similar, lost but
still live, replaced by a successor record, suppressed from the
database, newly added, or present at a date the old search should
already have seen.`,
	SilenceUsage:      true,
	PersistentPreRunE: initServices,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// initServices wires the file adapters and loads configuration. The
// directory-backed services are built lazily per command because they
// need a caller email.
func initServices(_ *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	if hitSource == nil {
		hitSource = hitfile.NewReader()
	}
	if hitExporter == nil {
		hitExporter = hitfile.NewWriter()
	}

	if configStore == nil {
		store, err := file.NewConfigStore("")
		if err != nil {
			return fmt.Errorf("opening config store: %w", err)
		}
		configStore = store
	}

	cfg, err := configStore.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	appConfig = cfg

	return nil
}

// directoryOptions carries the per-command flag overrides for directory
// access.
type directoryOptions struct {
	email    string
	apiKey   string
	database string
	noCache  bool
}

// newDirectoryService builds the Entrez-backed directory service,
// applying flag overrides on top of the stored configuration.
func newDirectoryService(opts directoryOptions) (driven.DirectoryService, func(), error) {
	cfg := appConfig
	if opts.email != "" {
		cfg.Email = opts.email
	}
	if opts.apiKey != "" {
		cfg.APIKey = opts.apiKey
	}
	if opts.database != "" {
		cfg.Database = opts.database
	}

	client, err := entrez.NewClient(entrez.Config{
		Email:    cfg.Email,
		APIKey:   cfg.APIKey,
		Database: cfg.Database,
	})
	if err != nil {
		if errors.Is(err, domain.ErrEmailRequired) {
			return nil, nil, fmt.Errorf("%w: set one with 'blastdiff settings email <address>' or --email", err)
		}
		return nil, nil, err
	}

	if opts.noCache || cfg.CacheTTLDays <= 0 {
		return client, func() {}, nil
	}

	ttl := time.Duration(cfg.CacheTTLDays) * 24 * time.Hour
	cache, err := sqlite.NewCache("", ttl)
	if err != nil {
		logger.Warn("directory cache unavailable, lookups go straight to the network: %v", err)
		return client, func() {}, nil
	}

	cleanup := func() {
		if err := cache.Close(); err != nil {
			logger.Warn("closing directory cache: %v", err)
		}
	}
	return directory.NewCached(client, cache), cleanup, nil
}

// ensureCompareService returns the compare service, building it from
// the directory options when no test has injected one.
func ensureCompareService(opts directoryOptions) (driving.CompareService, func(), error) {
	if compareService != nil {
		return compareService, func() {}, nil
	}

	dir, cleanup, err := newDirectoryService(opts)
	if err != nil {
		return nil, nil, err
	}
	return services.NewCompareService(blast.New(appConfig.Tolerances), dir), cleanup, nil
}

// ensureLookupService returns the lookup service, building it from the
// directory options when no test has injected one.
func ensureLookupService(opts directoryOptions) (driving.LookupService, func(), error) {
	if lookupService != nil {
		return lookupService, func() {}, nil
	}

	dir, cleanup, err := newDirectoryService(opts)
	if err != nil {
		return nil, nil, err
	}
	return services.NewLookupService(dir), cleanup, nil
}

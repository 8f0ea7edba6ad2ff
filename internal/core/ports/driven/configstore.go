package driven

import "github.com/blastwatch/blastdiff/internal/core/domain"

// ConfigStore persists the application configuration.
type ConfigStore interface {
	// Load returns the stored configuration, with defaults filled in
	// for anything unset.
	Load() (domain.Config, error)

	// Save persists the configuration.
	Save(cfg domain.Config) error

	// Path returns the backing file location, for display.
	Path() string
}

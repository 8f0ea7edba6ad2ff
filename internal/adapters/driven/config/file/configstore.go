// Package file provides a file-based implementation of the config
// store port. Configuration is stored as TOML in the blastdiff config
// directory.
package file

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/blastwatch/blastdiff/internal/core/domain"
	"github.com/blastwatch/blastdiff/internal/core/ports/driven"
)

// Ensure ConfigStore implements the interface.
var _ driven.ConfigStore = (*ConfigStore)(nil)

// ConfigStore is a TOML-backed implementation of driven.ConfigStore.
type ConfigStore struct {
	mu       sync.Mutex
	filePath string
}

// NewConfigStore creates a TOML config store. If configDir is empty,
// defaults to ~/.blastdiff/config.toml.
func NewConfigStore(configDir string) (*ConfigStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		configDir = filepath.Join(home, ".blastdiff")
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, fmt.Errorf("creating config directory: %w", err)
	}

	return &ConfigStore{
		filePath: filepath.Join(configDir, "config.toml"),
	}, nil
}

// Load reads the configuration file. A missing file yields the
// defaults; fields absent from the file keep their default values.
func (s *ConfigStore) Load() (domain.Config, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg := domain.DefaultConfig()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// Save writes the configuration with restricted permissions; the file
// may hold an API key.
func (s *ConfigStore) Save(cfg domain.Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(s.filePath, data, 0600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Path returns the configuration file path.
func (s *ConfigStore) Path() string {
	return s.filePath
}

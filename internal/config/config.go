// Package config handles repository configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Config represents repository configuration stored in .hspace/config.json.
type Config struct {
	ClusteringFile string `json:"clustering_file"`       // GEXF clustering result, relative to the repo root or absolute
	MixmodFile     string `json:"mixmod_file,omitempty"` // MIXMOD cluster table, relative to the repo root or absolute
	ScriptURL      string `json:"script_url,omitempty"`  // Cytoscape.js location for generated pages
}

const (
	HspaceDir      = ".hspace"
	ConfigFile     = "config.json"
	HeuristicsFile = "heuristics.jsonl"
	CacheDir       = "cache"
	DBFile         = "heuristics.db"
)

// Defaults written by NewConfig.
const (
	DefaultClusteringFile = "rvcluster.gexf"
	DefaultMixmodFile     = "mixmod.dat"
)

// ValidKeys lists the keys accepted by Set.
var ValidKeys = []string{"clustering_file", "mixmod_file", "script_url"}

// NewConfig returns a configuration with default file names.
func NewConfig() *Config {
	return &Config{
		ClusteringFile: DefaultClusteringFile,
		MixmodFile:     DefaultMixmodFile,
	}
}

// HspacePath returns the path to the .hspace directory from a root path.
func HspacePath(root string) string {
	return filepath.Join(root, HspaceDir)
}

// ConfigPath returns the path to config.json from a root path.
func ConfigPath(root string) string {
	return filepath.Join(root, HspaceDir, ConfigFile)
}

// HeuristicsPath returns the path to heuristics.jsonl from a root path.
func HeuristicsPath(root string) string {
	return filepath.Join(root, HspaceDir, HeuristicsFile)
}

// CachePath returns the path to the cache directory from a root path.
func CachePath(root string) string {
	return filepath.Join(root, HspaceDir, CacheDir)
}

// DBPath returns the path to heuristics.db from a root path.
func DBPath(root string) string {
	return filepath.Join(root, HspaceDir, CacheDir, DBFile)
}

// IsRepository checks if the given path contains an hspace repository.
func IsRepository(root string) bool {
	info, err := os.Stat(HspacePath(root))
	return err == nil && info.IsDir()
}

// FindRepository walks up from the given path to find an hspace repository.
// Returns the repository root path or an error if not found.
func FindRepository(start string) (string, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	for {
		if IsRepository(abs) {
			return abs, nil
		}

		parent := filepath.Dir(abs)
		if parent == abs {
			return "", fmt.Errorf("not in an hspace repository (no .hspace directory found)")
		}
		abs = parent
	}
}

// Load reads configuration from the repository at the given root.
func Load(root string) (*Config, error) {
	data, err := os.ReadFile(ConfigPath(root))
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return &cfg, nil
}

// Save writes configuration to the repository at the given root.
func (c *Config) Save(root string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(ConfigPath(root), data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// Get returns the value of a configuration key.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "clustering_file":
		return c.ClusteringFile, nil
	case "mixmod_file":
		return c.MixmodFile, nil
	case "script_url":
		return c.ScriptURL, nil
	default:
		return "", fmt.Errorf("unknown config key: %s (valid: %s)", key, strings.Join(ValidKeys, ", "))
	}
}

// Set updates a configuration key.
func (c *Config) Set(key, value string) error {
	switch key {
	case "clustering_file":
		if value == "" {
			return fmt.Errorf("clustering_file cannot be empty")
		}
		c.ClusteringFile = value
	case "mixmod_file":
		c.MixmodFile = value
	case "script_url":
		c.ScriptURL = value
	default:
		return fmt.Errorf("unknown config key: %s (valid: %s)", key, strings.Join(ValidKeys, ", "))
	}
	return nil
}

// ResolvePath resolves a configured file path against the repository root.
// Absolute paths and ~ paths are returned expanded; relative paths are
// joined to root.
func ResolvePath(root, path string) string {
	if path == "" {
		return ""
	}
	expanded := ExpandPath(path)
	if filepath.IsAbs(expanded) {
		return expanded
	}
	return filepath.Join(root, expanded)
}

// ClusteringPath returns the resolved path of the clustering result.
func (c *Config) ClusteringPath(root string) string {
	return ResolvePath(root, c.ClusteringFile)
}

// MixmodPath returns the resolved path of the MIXMOD table, or "" if unset.
func (c *Config) MixmodPath(root string) string {
	return ResolvePath(root, c.MixmodFile)
}

// ExpandPath expands ~ to the user's home directory.
// Returns the original path unchanged if it doesn't start with ~.
func ExpandPath(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path // Return original if we can't get home directory
	}

	return filepath.Join(home, path[1:])
}

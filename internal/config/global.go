package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mash-project/hspace/internal/viz"
	"gopkg.in/yaml.v3"
)

// GlobalConfig represents configuration stored in ~/.config/hspace/config.yml.
type GlobalConfig struct {
	RepoPath string      `yaml:"repo_path,omitempty"`
	User     string      `yaml:"user,omitempty"`
	Toggles  viz.Toggles `yaml:"toggles,omitempty"`
}

const (
	// GlobalConfigDir is the directory name under XDG_CONFIG_HOME.
	GlobalConfigDir = "hspace"
	// GlobalConfigFile is the config file name.
	GlobalConfigFile = "config.yml"
	// UserEnvVar names the viewer when no --user flag is given.
	UserEnvVar = "HSPACE_USER"
)

// globalConfigCache caches the loaded global config.
var globalConfigCache *GlobalConfig

// GlobalConfigPath returns the path to the global config file.
// Respects XDG_CONFIG_HOME, defaults to ~/.config/hspace/config.yml.
func GlobalConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, GlobalConfigDir, GlobalConfigFile)
}

// LoadGlobalConfig loads the global configuration file.
// Returns an empty config (not an error) if the file doesn't exist.
func LoadGlobalConfig() (*GlobalConfig, error) {
	if globalConfigCache != nil {
		return globalConfigCache, nil
	}

	path := GlobalConfigPath()
	if path == "" {
		return &GlobalConfig{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &GlobalConfig{}, nil
		}
		return nil, fmt.Errorf("reading global config: %w", err)
	}

	var cfg GlobalConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing global config: %w", err)
	}

	if cfg.RepoPath != "" {
		cfg.RepoPath = ExpandPath(cfg.RepoPath)
	}

	globalConfigCache = &cfg
	return &cfg, nil
}

// ResetGlobalConfigCache clears the cached global config.
// Useful for testing.
func ResetGlobalConfigCache() {
	globalConfigCache = nil
}

// GetRepoPath returns the configured repository path from global config.
func GetRepoPath() string {
	cfg, err := LoadGlobalConfig()
	if err != nil {
		return ""
	}
	return cfg.RepoPath
}

// GetDefaultToggles returns the toggles configured in global config.
// Unset toggles are nil.
func GetDefaultToggles() viz.Toggles {
	cfg, err := LoadGlobalConfig()
	if err != nil {
		return viz.Toggles{}
	}
	return cfg.Toggles
}

// ResolveUser returns the viewer name: the flag value if set, then the
// HSPACE_USER environment variable, then the global config user.
func ResolveUser(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if env := os.Getenv(UserEnvVar); env != "" {
		return env
	}
	cfg, err := LoadGlobalConfig()
	if err != nil {
		return ""
	}
	return cfg.User
}

// HelpfulConfigMessage returns a helpful message when no repository is found.
func HelpfulConfigMessage() string {
	configPath := GlobalConfigPath()
	return fmt.Sprintf(`No hspace repository found.

Tip: Run 'hspace init' in a directory, or create %s to set a default:
  mkdir -p %s
  echo 'repo_path: /path/to/your/repo' > %s`,
		configPath,
		filepath.Dir(configPath),
		configPath)
}

// ABOUTME: Sportplan configuration management with backend selection.
// ABOUTME: Reads JSON, YAML or TOML config, applies env overrides, and opens the store.

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/harperreed/sportplan/internal/planner"
	"github.com/harperreed/sportplan/internal/storage"
	"gopkg.in/yaml.v3"
)

// Config stores sportplan configuration.
type Config struct {
	// Backend selects the storage backend: "sqlite" (default), "badger",
	// "charm" or "memory".
	Backend string `json:"backend,omitempty" yaml:"backend,omitempty" toml:"backend,omitempty"`

	// DataDir is the root directory for data storage.
	// SQLite puts sportplan.db here, Badger uses a badger/ subdirectory.
	// Supports ~ expansion for home directory. Defaults to ~/.local/share/sportplan.
	DataDir string `json:"data_dir,omitempty" yaml:"data_dir,omitempty" toml:"data_dir,omitempty"`

	LogLevel string `json:"log_level,omitempty" yaml:"log_level,omitempty" toml:"log_level,omitempty"`
	LogFile  string `json:"log_file,omitempty" yaml:"log_file,omitempty" toml:"log_file,omitempty"`
	LogJSON  bool   `json:"log_json,omitempty" yaml:"log_json,omitempty" toml:"log_json,omitempty"`

	// WindowWeeks is the length of the plan window. Defaults to 8.
	WindowWeeks int `json:"window_weeks,omitempty" yaml:"window_weeks,omitempty" toml:"window_weeks,omitempty"`

	// path is the file the config was read from, if any.
	path string
}

// ConfigNames lists config file names in lookup order.
var ConfigNames = []string{"config.json", "config.yaml", "config.yml", "config.toml"}

// GetBackend returns the configured backend, defaulting to "sqlite".
func (c *Config) GetBackend() string {
	if c.Backend == "" {
		return storage.BackendSQLite
	}
	return strings.ToLower(c.Backend)
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return storage.DataDir()
	}
	return ExpandPath(c.DataDir)
}

// GetLogLevel returns the configured log level, defaulting to "warn".
func (c *Config) GetLogLevel() string {
	if c.LogLevel == "" {
		return "warn"
	}
	return c.LogLevel
}

// GetWindowWeeks returns the plan window length.
func (c *Config) GetWindowWeeks() int {
	if c.WindowWeeks <= 0 {
		return planner.DefaultWeeks
	}
	return c.WindowWeeks
}

// Path returns the file the config was loaded from, or "".
func (c *Config) Path() string {
	return c.path
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// OpenStore creates a Store for the configured backend.
func (c *Config) OpenStore() (storage.Store, error) {
	return OpenBackend(c.GetBackend(), c.GetDataDir())
}

// OpenBackend opens the named backend rooted at dataDir.
func OpenBackend(backend, dataDir string) (storage.Store, error) {
	name, err := storage.CheckBackend(backend)
	if err != nil {
		return nil, err
	}

	switch name {
	case storage.BackendSQLite:
		return storage.OpenSQLite(storage.SQLitePath(dataDir))
	case storage.BackendBadger:
		return storage.OpenBadger(filepath.Join(dataDir, "badger"))
	case storage.BackendCharm:
		return storage.OpenCharm()
	default:
		return storage.NewMemoryStore(), nil
	}
}

// GetConfigDir returns the sportplan config directory.
func GetConfigDir() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "sportplan")
}

// GetConfigPath returns the first existing config file, or the default
// config.json path when none exists.
func GetConfigPath() string {
	dir := GetConfigDir()
	for _, name := range ConfigNames {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return filepath.Join(dir, ConfigNames[0])
}

// Load reads config from disk, then applies environment overrides.
func Load() (*Config, error) {
	cfg, err := LoadFile(GetConfigPath())
	if errors.Is(err, os.ErrNotExist) {
		cfg = &Config{}
	} else if err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

// LoadFile parses one config file, choosing the format by extension.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := &Config{path: path}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	case ".toml":
		err = toml.Unmarshal(data, cfg)
	default:
		err = json.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return cfg, nil
}

// Env var names that override file settings.
const (
	EnvBackend  = "SPORTPLAN_BACKEND"
	EnvDataDir  = "SPORTPLAN_DATA_DIR"
	EnvLogLevel = "SPORTPLAN_LOG_LEVEL"
	EnvWeeks    = "SPORTPLAN_WEEKS"
)

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv(EnvBackend); v != "" {
		cfg.Backend = v
	}
	if v := os.Getenv(EnvDataDir); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv(EnvWeeks); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.WindowWeeks = n
		}
	}
}

func (c *Config) validate() error {
	if _, err := storage.CheckBackend(c.Backend); err != nil {
		return err
	}
	if c.WindowWeeks < 0 {
		return fmt.Errorf("window_weeks must not be negative")
	}
	return nil
}

// Save writes config to disk, as JSON unless it was loaded from another format.
func (c *Config) Save() error {
	path := c.path
	if path == "" {
		path = filepath.Join(GetConfigDir(), ConfigNames[0])
	}
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return err
	}

	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(c)
	case ".toml":
		var sb strings.Builder
		err = toml.NewEncoder(&sb).Encode(c)
		data = []byte(sb.String())
	default:
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

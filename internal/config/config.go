package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

const (
	// FilePermissions is the default permission mode for regular files (read/write for owner, read for others)
	FilePermissions = 0644
	// DirPermissions is the default permission mode for directories (rwxr-xr-x)
	DirPermissions = 0755

	// DefaultBaseURL is where the board backend is expected when nothing is configured
	DefaultBaseURL = "http://localhost:8080"
	// DefaultAPIBasePath is the posts collection path
	DefaultAPIBasePath = "/api/posts"
	// DefaultGUIDPath is the GUID generation endpoint
	DefaultGUIDPath = "/api/guid/generate"

	// Notification timings mirror the toast animation of the web client
	DefaultShowDelayMs  = 100
	DefaultHideDelayMs  = 3000
	DefaultTransitionMs = 300
	DefaultMaxVisible   = 5
)

var (
	// ConfigDir is the global configuration directory (~/.postboard)
	ConfigDir string

	// ConfigFile is the global configuration file
	ConfigFile string

	// KeybindsFile holds user keybinding overrides
	KeybindsFile string

	// LocalConfigFile is checked in the current directory before the global file
	LocalConfigFile = ".postboard.yaml"
)

// Notifications configures toast timing and stacking
type Notifications struct {
	ShowDelayMs  int `json:"showDelayMs,omitempty" yaml:"showDelayMs,omitempty"`
	HideDelayMs  int `json:"hideDelayMs,omitempty" yaml:"hideDelayMs,omitempty"`
	TransitionMs int `json:"transitionMs,omitempty" yaml:"transitionMs,omitempty"`
	MaxVisible   int `json:"maxVisible,omitempty" yaml:"maxVisible,omitempty"`
}

// ShowDelay is the delay before a toast becomes visible
func (n Notifications) ShowDelay() time.Duration {
	return time.Duration(n.ShowDelayMs) * time.Millisecond
}

// HideDelay is how long after creation a toast starts hiding
func (n Notifications) HideDelay() time.Duration {
	return time.Duration(n.HideDelayMs) * time.Millisecond
}

// Transition is the length of the hide transition before removal
func (n Notifications) Transition() time.Duration {
	return time.Duration(n.TransitionMs) * time.Millisecond
}

// StyleSpec is a user override for one UI region
type StyleSpec struct {
	Foreground  string `json:"foreground,omitempty" yaml:"foreground,omitempty"`
	Background  string `json:"background,omitempty" yaml:"background,omitempty"`
	BorderColor string `json:"borderColor,omitempty" yaml:"borderColor,omitempty"`
	Bold        *bool  `json:"bold,omitempty" yaml:"bold,omitempty"`
}

// Config is the client configuration
type Config struct {
	BaseURL           string               `json:"baseUrl,omitempty" yaml:"baseUrl,omitempty"`
	APIBasePath       string               `json:"apiBasePath,omitempty" yaml:"apiBasePath,omitempty"`
	GUIDPath          string               `json:"guidPath,omitempty" yaml:"guidPath,omitempty"`
	RequestTimeoutSec int                  `json:"requestTimeoutSec,omitempty" yaml:"requestTimeoutSec,omitempty"` // 0 = no timeout
	Notifications     Notifications        `json:"notifications,omitempty" yaml:"notifications,omitempty"`
	Theme             map[string]StyleSpec `json:"theme,omitempty" yaml:"theme,omitempty"`
}

// Default returns the configuration used when no file exists
func Default() *Config {
	return &Config{
		BaseURL:     DefaultBaseURL,
		APIBasePath: DefaultAPIBasePath,
		GUIDPath:    DefaultGUIDPath,
		Notifications: Notifications{
			ShowDelayMs:  DefaultShowDelayMs,
			HideDelayMs:  DefaultHideDelayMs,
			TransitionMs: DefaultTransitionMs,
			MaxVisible:   DefaultMaxVisible,
		},
	}
}

// RequestTimeout returns the HTTP client timeout (0 = none)
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSec) * time.Second
}

// Initialize sets up the configuration directory
// It creates ~/.postboard/ if it doesn't exist
func Initialize() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}

	ConfigDir = filepath.Join(homeDir, ".postboard")
	ConfigFile = filepath.Join(ConfigDir, "config.yaml")
	KeybindsFile = filepath.Join(ConfigDir, "keybinds.json")

	if err := os.MkdirAll(ConfigDir, DirPermissions); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", ConfigDir, err)
	}

	return nil
}

// GetConfigFilePath returns the config file path (local or global)
func GetConfigFilePath() string {
	if _, err := os.Stat(LocalConfigFile); err == nil {
		return LocalConfigFile
	}
	return ConfigFile
}

// Load reads the configuration at path, layered over the defaults.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
	case ".json", ".jsonc":
		if err := json.Unmarshal(jsonc.ToJSON(data), cfg); err != nil {
			return nil, fmt.Errorf("failed to parse JSON config: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config file format: %s (use .yaml, .yml, .json or .jsonc)", ext)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// applyDefaults fills fields a partial file left empty
func (c *Config) applyDefaults() {
	d := Default()
	if c.BaseURL == "" {
		c.BaseURL = d.BaseURL
	}
	if c.APIBasePath == "" {
		c.APIBasePath = d.APIBasePath
	}
	if c.GUIDPath == "" {
		c.GUIDPath = d.GUIDPath
	}
	if c.Notifications.ShowDelayMs == 0 {
		c.Notifications.ShowDelayMs = d.Notifications.ShowDelayMs
	}
	if c.Notifications.HideDelayMs == 0 {
		c.Notifications.HideDelayMs = d.Notifications.HideDelayMs
	}
	if c.Notifications.TransitionMs == 0 {
		c.Notifications.TransitionMs = d.Notifications.TransitionMs
	}
	if c.Notifications.MaxVisible == 0 {
		c.Notifications.MaxVisible = d.Notifications.MaxVisible
	}
}

// Validate checks values that would break the client at runtime
func (c *Config) Validate() error {
	if !strings.HasPrefix(c.BaseURL, "http://") && !strings.HasPrefix(c.BaseURL, "https://") {
		return fmt.Errorf("baseUrl must start with http:// or https://, got %q", c.BaseURL)
	}
	if !strings.HasPrefix(c.APIBasePath, "/") {
		return fmt.Errorf("apiBasePath must start with '/', got %q", c.APIBasePath)
	}
	if !strings.HasPrefix(c.GUIDPath, "/") {
		return fmt.Errorf("guidPath must start with '/', got %q", c.GUIDPath)
	}
	if c.RequestTimeoutSec < 0 {
		return fmt.Errorf("requestTimeoutSec cannot be negative")
	}
	if c.Notifications.MaxVisible < 0 || c.Notifications.ShowDelayMs < 0 ||
		c.Notifications.HideDelayMs < 0 || c.Notifications.TransitionMs < 0 {
		return fmt.Errorf("notification settings cannot be negative")
	}
	return nil
}

// Save writes the configuration as YAML
func Save(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, FilePermissions); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

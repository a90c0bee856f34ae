package mock

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/studiowebux/postboard/internal/types"
)

// LoadConfig loads a backend configuration from a file
func LoadConfig(path string) (*Config, error) {
	var config Config
	if err := decodeFile(path, &config); err != nil {
		return nil, err
	}

	config.applyDefaults()
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// DefaultConfig returns an in-memory backend on localhost:8080
func DefaultConfig() *Config {
	config := &Config{Logging: true}
	config.applyDefaults()
	return config
}

func (c *Config) applyDefaults() {
	if c.Port == 0 {
		c.Port = 8080
	}
	if c.Host == "" {
		c.Host = "localhost"
	}
	if c.APIBasePath == "" {
		c.APIBasePath = "/api/posts"
	}
	if c.GUIDPath == "" {
		c.GUIDPath = "/api/guid/generate"
	}
	if c.Storage == "" {
		c.Storage = StorageMemory
	}
	if c.GUIDPoolSize == 0 {
		c.GUIDPoolSize = DefaultGUIDPoolSize
	}
}

// Validate fills defaults and checks a configuration built in code or from flags
func (c *Config) Validate() error {
	c.applyDefaults()
	return validateConfig(c)
}

// validateConfig validates the backend configuration
func validateConfig(config *Config) error {
	if config.Storage != StorageMemory && config.Storage != StorageSQLite {
		return fmt.Errorf("storage must be '%s' or '%s'", StorageMemory, StorageSQLite)
	}
	if config.Storage == StorageSQLite && config.DatabasePath == "" {
		return fmt.Errorf("databasePath is required for sqlite storage")
	}
	if !strings.HasPrefix(config.APIBasePath, "/") || !strings.HasPrefix(config.GUIDPath, "/") {
		return fmt.Errorf("apiBasePath and guidPath must start with '/'")
	}
	if config.GUIDPoolSize < 0 {
		return fmt.Errorf("guidPoolSize cannot be negative")
	}
	return nil
}

// OpenStore creates the store selected by the configuration
func OpenStore(config *Config) (Store, error) {
	switch config.Storage {
	case StorageSQLite:
		return NewSQLiteStore(config.DatabasePath)
	default:
		return NewMemoryStore(), nil
	}
}

// LoadSeed reads a seed file (yaml or json)
func LoadSeed(path string) (*Seed, error) {
	var seed Seed
	if err := decodeFile(path, &seed); err != nil {
		return nil, err
	}
	return &seed, nil
}

// ApplySeed inserts the seeded posts and comments in order
func ApplySeed(ctx context.Context, store Store, seed *Seed) error {
	for _, sp := range seed.Posts {
		post, err := store.CreatePost(ctx, types.PostInput{Title: sp.Title, Content: sp.Content})
		if err != nil {
			return fmt.Errorf("failed to seed post %q: %w", sp.Title, err)
		}
		for _, content := range sp.Comments {
			if _, err := store.AddComment(ctx, post.ID, content); err != nil {
				return fmt.Errorf("failed to seed comment on %q: %w", sp.Title, err)
			}
		}
	}
	return nil
}

func decodeFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, v); err != nil {
			return fmt.Errorf("failed to parse YAML config: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, v); err != nil {
			return fmt.Errorf("failed to parse JSON config: %w", err)
		}
	default:
		return fmt.Errorf("unsupported config file format: %s (use .yaml, .yml, or .json)", ext)
	}
	return nil
}

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), FilePermissions); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if cfg.BaseURL != DefaultBaseURL {
		t.Errorf("BaseURL = %q, want %q", cfg.BaseURL, DefaultBaseURL)
	}
	if cfg.APIBasePath != "/api/posts" {
		t.Errorf("APIBasePath = %q", cfg.APIBasePath)
	}
	if cfg.GUIDPath != "/api/guid/generate" {
		t.Errorf("GUIDPath = %q", cfg.GUIDPath)
	}
	if cfg.Notifications.ShowDelay() != 100*time.Millisecond {
		t.Errorf("ShowDelay = %v", cfg.Notifications.ShowDelay())
	}
	if cfg.Notifications.HideDelay() != 3*time.Second {
		t.Errorf("HideDelay = %v", cfg.Notifications.HideDelay())
	}
	if cfg.RequestTimeout() != 0 {
		t.Errorf("RequestTimeout = %v, want no timeout", cfg.RequestTimeout())
	}
}

func TestLoad_YAMLPartialKeepsDefaults(t *testing.T) {
	path := writeFile(t, "config.yaml", `
baseUrl: http://board.local:9000
notifications:
  hideDelayMs: 500
theme:
  status-message-bar:
    foreground: "#ff0000"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if cfg.BaseURL != "http://board.local:9000" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.APIBasePath != DefaultAPIBasePath {
		t.Errorf("APIBasePath = %q, want default", cfg.APIBasePath)
	}
	if cfg.Notifications.HideDelayMs != 500 {
		t.Errorf("HideDelayMs = %d, want 500", cfg.Notifications.HideDelayMs)
	}
	if cfg.Notifications.ShowDelayMs != DefaultShowDelayMs {
		t.Errorf("ShowDelayMs = %d, want default", cfg.Notifications.ShowDelayMs)
	}
	if got := cfg.Theme["status-message-bar"].Foreground; got != "#ff0000" {
		t.Errorf("theme foreground = %q", got)
	}
}

func TestLoad_JSONCWithComments(t *testing.T) {
	path := writeFile(t, "config.jsonc", `{
  // local dev backend
  "baseUrl": "http://127.0.0.1:8081",
  "requestTimeoutSec": 10, /* trailing comment */
}`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cfg.BaseURL != "http://127.0.0.1:8081" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.RequestTimeout() != 10*time.Second {
		t.Errorf("RequestTimeout = %v", cfg.RequestTimeout())
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		wantErr string
	}{
		{name: "bad scheme", file: "c.yaml", content: "baseUrl: ftp://x\n", wantErr: "baseUrl"},
		{name: "relative path", file: "c.yaml", content: "apiBasePath: api/posts\n", wantErr: "apiBasePath"},
		{name: "negative timeout", file: "c.yaml", content: "requestTimeoutSec: -1\n", wantErr: "requestTimeoutSec"},
		{name: "unknown extension", file: "c.toml", content: "x = 1\n", wantErr: "unsupported"},
		{name: "broken yaml", file: "c.yaml", content: "baseUrl: [\n", wantErr: "YAML"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.file, tt.content))
			if err == nil {
				t.Fatal("Expected error but got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := Default()
	cfg.BaseURL = "https://board.example.com"

	if err := Save(cfg, path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.BaseURL != cfg.BaseURL {
		t.Errorf("BaseURL = %q, want %q", loaded.BaseURL, cfg.BaseURL)
	}
}

func TestGetConfigFilePath_PrefersLocal(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory: %v", err)
	}
	t.Cleanup(func() { os.Chdir(wd) })

	original := ConfigFile
	ConfigFile = "/global/config.yaml"
	t.Cleanup(func() { ConfigFile = original })

	if got := GetConfigFilePath(); got != "/global/config.yaml" {
		t.Errorf("without local file got %q", got)
	}

	if err := os.WriteFile(LocalConfigFile, []byte("baseUrl: http://x\n"), FilePermissions); err != nil {
		t.Fatal(err)
	}
	if got := GetConfigFilePath(); got != LocalConfigFile {
		t.Errorf("with local file got %q, want %q", got, LocalConfigFile)
	}
}

package keybinds

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewValidator(t *testing.T) {
	v := NewValidator()

	if v == nil {
		t.Fatal("NewValidator returned nil")
	}

	if !v.reservedKeys["ctrl+c"] {
		t.Error("Expected ctrl+c to be a reserved key")
	}

	if len(v.required) == 0 {
		t.Error("Expected required actions to be initialized")
	}
}

func TestValidationError_Error(t *testing.T) {
	err := ValidationError{
		Type:    "conflict",
		Context: ContextList,
		Key:     "q",
		Message: "key bound 2 times",
	}
	expected := "[conflict] q in context 'list': key bound 2 times"
	if got := err.Error(); got != expected {
		t.Errorf("Error() = %q, want %q", got, expected)
	}
}

func TestValidateRegistry_DefaultsAreClean(t *testing.T) {
	result := NewValidator().ValidateRegistry(NewDefaultRegistry())

	if result.HasErrors() {
		t.Errorf("default registry has errors:\n%s", result.String())
	}
	if result.HasWarnings() {
		t.Errorf("default registry has warnings:\n%s", result.String())
	}
	if result.String() != "No issues found" {
		t.Errorf("String() = %q", result.String())
	}
}

func TestValidateRegistry_MissingRequired(t *testing.T) {
	r := NewDefaultRegistry()
	r.Unbind(ContextConfirm, ActionConfirm)

	result := NewValidator().ValidateRegistry(r)
	if !result.HasErrors() {
		t.Fatal("expected error for unbound confirm")
	}
	if !strings.Contains(result.String(), "confirm") {
		t.Errorf("unexpected report:\n%s", result.String())
	}
}

func TestValidateRegistry_ReservedAndShadowing(t *testing.T) {
	r := NewDefaultRegistry()
	r.Register(ContextList, "ctrl+c", ActionRefresh)

	result := NewValidator().ValidateRegistry(r)
	if result.HasErrors() {
		t.Errorf("unexpected errors:\n%s", result.String())
	}
	if len(result.Warnings) != 2 {
		t.Errorf("expected reserved + shadow warnings, got %d:\n%s", len(result.Warnings), result.String())
	}
}

func TestValidateKey(t *testing.T) {
	tests := []struct {
		key     string
		wantErr bool
	}{
		{"q", false},
		{"ctrl+s", false},
		{"shift+tab", false},
		{"", true},
		{"ctrl+", true},
		{"alt+", true},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			err := ValidateKey(tt.key)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateKey(%q) error = %v, wantErr %v", tt.key, err, tt.wantErr)
			}
		})
	}
}

func TestRegistry_MatchFallsBackToGlobal(t *testing.T) {
	r := NewDefaultRegistry()

	tests := []struct {
		context Context
		key     string
		want    Action
		found   bool
	}{
		{ContextList, "n", ActionNewPost, true},
		{ContextList, "enter", ActionViewPost, true},
		{ContextList, "v", ActionViewPost, true},
		{ContextList, "u", ActionGenerateGUID, true},
		{ContextDetail, "ctrl+s", ActionSave, true},
		{ContextDetail, "esc", ActionCancel, true},
		{ContextDetail, "n", "", false},
		{ContextConfirm, "y", ActionConfirm, true},
		{ContextConfirm, "esc", ActionCancel, true},
		{ContextTextInput, "enter", ActionTextSubmit, true},
		{ContextDetail, "ctrl+c", ActionQuitForce, true},
	}

	for _, tt := range tests {
		action, ok := r.Match(tt.context, tt.key)
		if ok != tt.found || action != tt.want {
			t.Errorf("Match(%s, %q) = %q/%v, want %q/%v", tt.context, tt.key, action, ok, tt.want, tt.found)
		}
	}
}

func TestRegistry_GetBindingString(t *testing.T) {
	r := NewDefaultRegistry()
	if got := r.GetBindingString(ContextList, ActionViewPost); got != "enter/v" {
		t.Errorf("got %q", got)
	}
	if got := r.GetBindingString(ContextList, ActionQuitForce); got != "ctrl+c" {
		t.Errorf("global fallback got %q", got)
	}
	if got := r.GetBindingString(ContextSearch, ActionSave); got != "unbound" {
		t.Errorf("got %q", got)
	}
}

func TestApplyConfig_ReplacesDefaults(t *testing.T) {
	r := NewDefaultRegistry()
	err := ApplyConfig(r, &Config{
		List: map[string]string{"delete_post": "x, D"},
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if r.HasBinding(ContextList, "d") {
		t.Error("default key should be replaced")
	}
	for _, key := range []string{"x", "D"} {
		if action, _ := r.Match(ContextList, key); action != ActionDeletePost {
			t.Errorf("key %q = %q", key, action)
		}
	}
}

func TestApplyConfig_Errors(t *testing.T) {
	tests := []struct {
		name   string
		config *Config
	}{
		{"unknown action", &Config{List: map[string]string{"launch_rockets": "x"}}},
		{"bare modifier", &Config{Detail: map[string]string{"save": "ctrl+"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ApplyConfig(NewDefaultRegistry(), tt.config); err == nil {
				t.Error("Expected error but got nil")
			}
		})
	}
}

func TestLoadOrDefault(t *testing.T) {
	dir := t.TempDir()

	r, err := LoadOrDefault(filepath.Join(dir, "missing.json"))
	if err != nil {
		t.Fatalf("missing file should fall back to defaults: %v", err)
	}
	if !r.HasBinding(ContextList, "n") {
		t.Error("defaults not loaded")
	}

	path := filepath.Join(dir, "keybinds.json")
	content := `{
  // add a second key for new posts
  "version": "1.0",
  "list": {"new_post": "n,a"}
}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	r, err = LoadOrDefault(path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if action, _ := r.Match(ContextList, "a"); action != ActionNewPost {
		t.Errorf("override not applied, got %q", action)
	}

	broken := filepath.Join(dir, "broken.json")
	if err := os.WriteFile(broken, []byte(`{"confirm": {"confirm": ""}}`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadOrDefault(broken); err == nil {
		t.Error("expected error when confirm is left unbound")
	}
}

func TestExportDefaults_RoundTrip(t *testing.T) {
	config := ExportDefaults()
	if config.List["view_post"] != "enter,v" {
		t.Errorf("view_post = %q", config.List["view_post"])
	}

	r := NewRegistry()
	if err := ApplyConfig(r, config); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result := NewValidator().ValidateRegistry(r); result.HasErrors() {
		t.Errorf("exported defaults invalid:\n%s", result.String())
	}
}

func TestWriteDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keybinds.json")

	if err := WriteDefaults(path, false); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	r, err := LoadOrDefault(path)
	if err != nil {
		t.Fatalf("written defaults should load: %v", err)
	}
	if action, ok := r.Match(ContextList, "n"); !ok || action != ActionNewPost {
		t.Errorf("n = %q, want %q", action, ActionNewPost)
	}

	if err := os.WriteFile(path, []byte(`{"list": {"new_post": "a"}}`), 0644); err != nil {
		t.Fatal(err)
	}
	if err := WriteDefaults(path, false); !errors.Is(err, ErrConfigExists) {
		t.Errorf("expected ErrConfigExists, got %v", err)
	}
	if data, _ := os.ReadFile(path); !strings.Contains(string(data), `"a"`) {
		t.Error("existing file should be kept without force")
	}

	if err := WriteDefaults(path, true); err != nil {
		t.Fatalf("Unexpected error with force: %v", err)
	}
	config, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if config.List["new_post"] != "n" {
		t.Errorf("new_post = %q after force", config.List["new_post"])
	}
}

package keybinds

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/tidwall/jsonc"
)

// Config represents the user's keybinding configuration.
// Each section maps an action to a comma separated list of keys.
type Config struct {
	Version   string            `json:"version"`
	Global    map[string]string `json:"global,omitempty"`
	List      map[string]string `json:"list,omitempty"`
	Detail    map[string]string `json:"detail,omitempty"`
	Search    map[string]string `json:"search,omitempty"`
	TextInput map[string]string `json:"text_input,omitempty"`
	Confirm   map[string]string `json:"confirm,omitempty"`
}

func (c *Config) sections() map[Context]map[string]string {
	return map[Context]map[string]string{
		ContextGlobal:    c.Global,
		ContextList:      c.List,
		ContextDetail:    c.Detail,
		ContextSearch:    c.Search,
		ContextTextInput: c.TextInput,
		ContextConfirm:   c.Confirm,
	}
}

// LoadConfig loads keybinding configuration from a JSON file (comments allowed)
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := json.Unmarshal(jsonc.ToJSON(data), &config); err != nil {
		return nil, fmt.Errorf("invalid keybinds.json format: %w", err)
	}

	return &config, nil
}

// SaveConfig saves keybinding configuration to a JSON file
func SaveConfig(config *Config, path string) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// ApplyConfig applies user configuration to a registry.
// A configured action replaces every default key of that action in its context.
func ApplyConfig(registry *Registry, config *Config) error {
	for context, bindings := range config.sections() {
		actions := make([]string, 0, len(bindings))
		for a := range bindings {
			actions = append(actions, a)
		}
		sort.Strings(actions)

		for _, actionStr := range actions {
			action := Action(actionStr)
			if !IsKnownAction(action) {
				return fmt.Errorf("unknown action %q in %s", actionStr, context)
			}

			keys := splitKeys(bindings[actionStr])
			for _, key := range keys {
				if err := ValidateKey(key); err != nil {
					return fmt.Errorf("%s.%s: %w", context, actionStr, err)
				}
			}

			registry.Unbind(context, action)
			registry.RegisterMultiple(context, keys, action)
		}
	}

	return nil
}

func splitKeys(s string) []string {
	var keys []string
	for _, k := range strings.Split(s, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}

// LoadOrDefault loads user config if it exists, otherwise returns default registry
func LoadOrDefault(configPath string) (*Registry, error) {
	registry := NewDefaultRegistry()

	if configPath == "" {
		return registry, nil
	}

	if _, err := os.Stat(configPath); err == nil {
		config, err := LoadConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load keybinds.json: %w", err)
		}

		if err := ApplyConfig(registry, config); err != nil {
			return nil, fmt.Errorf("failed to apply keybinds config: %w", err)
		}

		if result := NewValidator().ValidateRegistry(registry); result.HasErrors() {
			return nil, fmt.Errorf("invalid keybinds.json:\n%s", result.String())
		}
	}

	return registry, nil
}

// ErrConfigExists is returned by WriteDefaults when it would overwrite a file
var ErrConfigExists = errors.New("keybinds file already exists")

// WriteDefaults writes the default bindings to path as a starting point for
// overrides. An existing file is kept unless force is set.
func WriteDefaults(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s: %w", path, ErrConfigExists)
		}
	}
	return SaveConfig(ExportDefaults(), path)
}

// ExportDefaults exports the default keybindings in config form
func ExportDefaults() *Config {
	r := NewDefaultRegistry()
	config := &Config{Version: "1.0"}

	export := func(context Context) map[string]string {
		grouped := make(map[string][]string)
		for key, action := range r.bindings[context] {
			grouped[string(action)] = append(grouped[string(action)], key)
		}
		out := make(map[string]string, len(grouped))
		for action, keys := range grouped {
			sort.Strings(keys)
			out[action] = strings.Join(keys, ",")
		}
		return out
	}

	config.Global = export(ContextGlobal)
	config.List = export(ContextList)
	config.Detail = export(ContextDetail)
	config.Search = export(ContextSearch)
	config.TextInput = export(ContextTextInput)
	config.Confirm = export(ContextConfirm)

	return config
}

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	configDirName  = ".aiwand"
	configFileName = "config.json"

	// EnvConfigDir overrides the preference directory location.
	EnvConfigDir = "AIWAND_CONFIG_DIR"
)

// Preferences holds user defaults persisted between sessions. The zero value
// means no preferences have been stored yet.
type Preferences struct {
	// DefaultProvider is the provider name used when a request does not
	// specify one, e.g. "openai" or "gemini".
	DefaultProvider string `json:"default_provider,omitempty"`

	// Models maps a provider name to the user's preferred model for it.
	Models map[string]string `json:"models,omitempty"`
}

// ModelFor returns the stored model preference for the given provider name,
// or "" when none is stored.
func (p *Preferences) ModelFor(provider string) string {
	if p == nil || p.Models == nil {
		return ""
	}
	return p.Models[provider]
}

// SetModel records a model preference for a provider.
func (p *Preferences) SetModel(provider, model string) {
	if p.Models == nil {
		p.Models = make(map[string]string)
	}
	p.Models[provider] = model
}

// ConfigDir returns the directory holding the preference file. The
// AIWAND_CONFIG_DIR environment variable overrides the default of
// ~/.aiwand. The directory is not created here.
func ConfigDir() (string, error) {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("aiwand: cannot determine home directory: %w", err)
	}
	return filepath.Join(home, configDirName), nil
}

// Load reads preferences from dir. A missing or unreadable file yields empty
// preferences rather than an error so that a fresh install works without
// setup. Corrupted files are treated as empty too; the next Save replaces
// them.
func Load(dir string) *Preferences {
	prefs := &Preferences{}
	data, err := os.ReadFile(filepath.Join(dir, configFileName))
	if err != nil {
		return prefs
	}
	if err := json.Unmarshal(data, prefs); err != nil {
		return &Preferences{}
	}
	return prefs
}

// Save writes preferences to dir, creating the directory if needed.
func Save(dir string, prefs *Preferences) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("aiwand: cannot create config directory: %w", err)
	}
	data, err := json.MarshalIndent(prefs, "", "  ")
	if err != nil {
		return fmt.Errorf("aiwand: cannot encode preferences: %w", err)
	}
	path := filepath.Join(dir, configFileName)
	if err := os.WriteFile(path, append(data, '\n'), 0o600); err != nil {
		return fmt.Errorf("aiwand: cannot write preferences: %w", err)
	}
	return nil
}

package config

import (
	"bytes"
	"strings"
	"testing"

	"github.com/onlyoneaman/aiwand/core/registry"
)

func TestSetupPersistsChoices(t *testing.T) {
	r := newTestResolver(t, map[string]string{EnvGeminiAPIKey: "g-test"})

	// 2 selects gemini, then 1 selects the first gemini model.
	in := strings.NewReader("2\n1\n")
	var out bytes.Buffer

	if err := r.Setup(in, &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	prefs := Load(r.Dir)
	if prefs.DefaultProvider != "gemini" {
		t.Errorf("expected gemini stored, got %q", prefs.DefaultProvider)
	}
	wantModel := registry.SupportedModels(registry.ProviderGemini)[0]
	if prefs.ModelFor("gemini") != wantModel {
		t.Errorf("expected %q stored, got %q", wantModel, prefs.ModelFor("gemini"))
	}

	// Setup choices must drive subsequent resolution.
	resolved, err := r.Resolve("", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resolved.Provider != registry.ProviderGemini {
		t.Errorf("expected resolution to follow setup, got %s", resolved.Provider)
	}
	if resolved.Model != wantModel {
		t.Errorf("expected setup model, got %q", resolved.Model)
	}
}

func TestSetupEmptyInputKeepsCurrent(t *testing.T) {
	r := newTestResolver(t, map[string]string{EnvOpenAIAPIKey: "sk-test"})
	prefs := &Preferences{DefaultProvider: "openai"}
	prefs.SetModel("openai", "gpt-4o-mini")
	if err := Save(r.Dir, prefs); err != nil {
		t.Fatal(err)
	}

	in := strings.NewReader("\n\n")
	var out bytes.Buffer
	if err := r.Setup(in, &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	loaded := Load(r.Dir)
	if loaded.DefaultProvider != "openai" {
		t.Errorf("expected current provider kept, got %q", loaded.DefaultProvider)
	}
	if loaded.ModelFor("openai") != "gpt-4o-mini" {
		t.Errorf("expected current model kept, got %q", loaded.ModelFor("openai"))
	}
}

func TestSetupRejectsInvalidThenAccepts(t *testing.T) {
	r := newTestResolver(t, map[string]string{EnvOpenAIAPIKey: "sk-test"})

	in := strings.NewReader("banana\n9\n1\n1\n")
	var out bytes.Buffer
	if err := r.Setup(in, &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(out.String(), "Please enter a number") {
		t.Error("expected re-prompt message for invalid input")
	}
	if Load(r.Dir).DefaultProvider != "openai" {
		t.Errorf("expected openai stored, got %q", Load(r.Dir).DefaultProvider)
	}
}

func TestSetupWarnsWhenKeyMissing(t *testing.T) {
	r := newTestResolver(t, map[string]string{})

	in := strings.NewReader("1\n1\n")
	var out bytes.Buffer
	if err := r.Setup(in, &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(out.String(), "OPENAI_API_KEY is not set") {
		t.Errorf("expected missing key warning, got: %s", out.String())
	}
}

func TestStatus(t *testing.T) {
	r := newTestResolver(t, map[string]string{EnvOpenAIAPIKey: "sk-test"})
	if err := Save(r.Dir, &Preferences{DefaultProvider: "openai"}); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	r.Status(&out)

	text := out.String()
	if !strings.Contains(text, "Default provider: openai") {
		t.Errorf("expected stored provider in status, got: %s", text)
	}
	if !strings.Contains(text, "OPENAI_API_KEY: set") {
		t.Errorf("expected key presence in status, got: %s", text)
	}
	if !strings.Contains(text, "GEMINI_API_KEY: not set") {
		t.Errorf("expected missing key in status, got: %s", text)
	}
	if !strings.Contains(text, "Active: openai") {
		t.Errorf("expected resolved provider in status, got: %s", text)
	}
}

func TestStatusLongProviderName(t *testing.T) {
	// Column width follows the longest registered name, so a future
	// provider with a long identifier must not break the model listing.
	orig := registry.All
	registry.All = append([]registry.Provider{"openrouter-compatible"}, orig...)
	defer func() { registry.All = orig }()

	r := newTestResolver(t, map[string]string{EnvOpenAIAPIKey: "sk-test"})

	var out bytes.Buffer
	r.Status(&out)

	text := out.String()
	if !strings.Contains(text, "openrouter-compatible model:") {
		t.Errorf("expected long provider row in status, got: %s", text)
	}
	if !strings.Contains(text, "openai") {
		t.Errorf("expected remaining providers listed, got: %s", text)
	}
}

func TestStatusNoCredentials(t *testing.T) {
	r := newTestResolver(t, map[string]string{})

	var out bytes.Buffer
	r.Status(&out)

	if !strings.Contains(out.String(), "Active: none") {
		t.Errorf("expected no active provider, got: %s", out.String())
	}
}

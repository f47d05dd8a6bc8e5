package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestRunNoArgsPrintsUsage(t *testing.T) {
	var out bytes.Buffer
	if err := run(nil, strings.NewReader(""), &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "Usage:") {
		t.Errorf("expected usage output, got: %s", out.String())
	}
}

func TestRunModels(t *testing.T) {
	var out bytes.Buffer
	if err := run([]string{"models"}, strings.NewReader(""), &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	text := out.String()
	if !strings.Contains(text, "openai (default: gpt-4o)") {
		t.Errorf("expected openai listing, got: %s", text)
	}
	if !strings.Contains(text, "gemini-2.5-pro") {
		t.Errorf("expected gemini models, got: %s", text)
	}
}

func TestRunModelsFilter(t *testing.T) {
	var out bytes.Buffer
	if err := run([]string{"models", "-provider", "gemini"}, strings.NewReader(""), &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(out.String(), "gpt-4o\n") {
		t.Errorf("expected only gemini models, got: %s", out.String())
	}
}

func TestRunModelsUnknownProvider(t *testing.T) {
	var out bytes.Buffer
	if err := run([]string{"models", "-provider", "anthropic"}, strings.NewReader(""), &out); err == nil {
		t.Fatal("expected error for unknown provider")
	}
}

func TestRunSetupAndStatus(t *testing.T) {
	t.Setenv("AIWAND_CONFIG_DIR", t.TempDir())
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("GEMINI_API_KEY", "")

	var out bytes.Buffer
	if err := run([]string{"setup"}, strings.NewReader("1\n1\n"), &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "Saved: provider=openai") {
		t.Errorf("expected save confirmation, got: %s", out.String())
	}

	out.Reset()
	if err := run([]string{"status"}, strings.NewReader(""), &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "Default provider: openai") {
		t.Errorf("expected stored provider in status, got: %s", out.String())
	}
}

func TestParseChoiceScores(t *testing.T) {
	scores, err := parseChoiceScores("A=1, B=0.5, C=0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if scores["A"] != 1 || scores["B"] != 0.5 || scores["C"] != 0 {
		t.Errorf("unexpected scores: %v", scores)
	}

	if scores, err := parseChoiceScores(""); err != nil || scores != nil {
		t.Errorf("empty spec should yield nil, got %v, %v", scores, err)
	}

	if _, err := parseChoiceScores("A:1"); err == nil {
		t.Error("expected error for malformed pair")
	}
}

func TestRunGenerateWithoutCredentials(t *testing.T) {
	t.Setenv("AIWAND_CONFIG_DIR", t.TempDir())
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("AIWAND_DEFAULT_PROVIDER", "")

	var out bytes.Buffer
	err := run([]string{"generate", "hello"}, strings.NewReader(""), &out)
	if err == nil {
		t.Fatal("expected error without credentials")
	}
	if !strings.Contains(err.Error(), "no AI provider configured") {
		t.Errorf("unexpected error: %v", err)
	}
}

package config

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/onlyoneaman/aiwand/core/registry"
)

// Setup runs the interactive preference wizard. It prompts on out, reads
// answers from in, and persists the chosen defaults under the resolver's
// directory. Empty answers keep the current value.
func (r *Resolver) Setup(in io.Reader, out io.Writer) error {
	prefs := Load(r.Dir)
	reader := bufio.NewReader(in)

	fmt.Fprintln(out, "AIWand Setup")
	fmt.Fprintln(out, "Choose your default AI provider:")
	for i, provider := range registry.All {
		marker := ""
		if string(provider) == prefs.DefaultProvider {
			marker = " (current)"
		}
		fmt.Fprintf(out, "  %d. %s%s\n", i+1, provider, marker)
	}

	provider, err := promptChoice(reader, out, "Provider", registry.All, registry.Provider(prefs.DefaultProvider))
	if err != nil {
		return err
	}
	prefs.DefaultProvider = string(provider)

	models := registry.SupportedModels(provider)
	fmt.Fprintf(out, "Choose the default model for %s:\n", provider)
	current := prefs.ModelFor(string(provider))
	if current == "" {
		current = registry.DefaultModel(provider)
	}
	for i, model := range models {
		marker := ""
		if model == current {
			marker = " (current)"
		}
		fmt.Fprintf(out, "  %d. %s%s\n", i+1, model, marker)
	}

	model, err := promptChoice(reader, out, "Model", models, current)
	if err != nil {
		return err
	}
	prefs.SetModel(string(provider), model)

	if err := Save(r.Dir, prefs); err != nil {
		return err
	}

	fmt.Fprintf(out, "Saved: provider=%s model=%s\n", provider, model)
	if r.Getenv(keyEnv(provider)) == "" {
		fmt.Fprintf(out, "Note: %s is not set; requests will fail until it is.\n", keyEnv(provider))
	}
	return nil
}

// promptChoice reads one numbered selection from reader. An empty line keeps
// fallback; an out-of-range or non-numeric answer is re-asked.
func promptChoice[T ~string](reader *bufio.Reader, out io.Writer, label string, choices []T, fallback T) (T, error) {
	for {
		fmt.Fprintf(out, "%s [1-%d]: ", label, len(choices))
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			if err == io.EOF {
				return fallback, nil
			}
			return fallback, fmt.Errorf("aiwand: reading setup input: %w", err)
		}

		line = strings.TrimSpace(line)
		if line == "" {
			return fallback, nil
		}

		index, convErr := strconv.Atoi(line)
		if convErr != nil || index < 1 || index > len(choices) {
			fmt.Fprintf(out, "Please enter a number between 1 and %d.\n", len(choices))
			continue
		}
		return choices[index-1], nil
	}
}

// Status writes the current configuration state: stored preferences, which
// API keys are present in the environment, and what a default request would
// resolve to.
func (r *Resolver) Status(out io.Writer) {
	prefs := Load(r.Dir)

	fmt.Fprintln(out, "AIWand Status")
	fmt.Fprintf(out, "  Config dir:       %s\n", r.Dir)

	stored := prefs.DefaultProvider
	if stored == "" {
		stored = "(not set)"
	}
	fmt.Fprintf(out, "  Default provider: %s\n", stored)

	width := 0
	for _, provider := range registry.All {
		if len(provider) > width {
			width = len(provider)
		}
	}
	for _, provider := range registry.All {
		model := prefs.ModelFor(string(provider))
		if model == "" {
			model = registry.DefaultModel(provider) + " (default)"
		}
		fmt.Fprintf(out, "  %-*s model: %s\n", width, provider, model)
	}

	for _, provider := range registry.All {
		state := "not set"
		if r.hasCredentials(provider) {
			state = "set"
		}
		fmt.Fprintf(out, "  %s: %s\n", keyEnv(provider), state)
	}

	resolved, err := r.Resolve("", "")
	if err != nil {
		fmt.Fprintf(out, "  Active: none (%v)\n", err)
		return
	}
	fmt.Fprintf(out, "  Active: %s / %s\n", resolved.Provider, resolved.Model)
}

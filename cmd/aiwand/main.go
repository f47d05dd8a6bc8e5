package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/onlyoneaman/aiwand"
	"github.com/onlyoneaman/aiwand/core/config"
	"github.com/onlyoneaman/aiwand/core/registry"
	"github.com/onlyoneaman/aiwand/internal/utils"
	"github.com/onlyoneaman/aiwand/providers/ai"
)

const usage = `aiwand - AI text helpers for OpenAI and Gemini

Usage:
  aiwand summarize [flags] [text]     Summarize text (stdin when no text given)
  aiwand chat [flags] [message]       One-shot reply, or interactive chat with no message
  aiwand generate [flags] <prompt>    Generate text from a prompt
  aiwand classify [flags]             Grade a response against criteria
  aiwand extract [flags] [links...]   Extract structured JSON from content or links
  aiwand models [flags]               List supported models
  aiwand setup                        Configure default provider and model
  aiwand status                       Show current configuration
  aiwand <prompt>                     Shortcut for "aiwand generate <prompt>"

Common flags:
  -provider string     Provider to use (openai, gemini)
  -model string        Model to use
  -temperature float   Sampling temperature
  -max-tokens int      Completion token limit
`

func main() {
	// A local .env is a convenience for development; absence is not an error.
	_ = godotenv.Load()

	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string, in io.Reader, out io.Writer) error {
	if len(args) == 0 {
		fmt.Fprint(out, usage)
		return nil
	}

	ctx := context.Background()

	switch args[0] {
	case "summarize":
		return runSummarize(ctx, args[1:], in, out)
	case "chat":
		return runChat(ctx, args[1:], in, out)
	case "generate":
		return runGenerate(ctx, args[1:], out)
	case "classify":
		return runClassify(ctx, args[1:], out)
	case "extract":
		return runExtract(ctx, args[1:], in, out)
	case "models":
		return runModels(args[1:], out)
	case "setup":
		return runSetup(in, out)
	case "status":
		return runStatus(out)
	case "help", "-h", "--help":
		fmt.Fprint(out, usage)
		return nil
	default:
		// Anything else is treated as a direct prompt.
		return runGenerate(ctx, append([]string{}, args...), out)
	}
}

// commonFlags registers the flags every model-calling subcommand shares and
// returns a builder for the matching option list.
func commonFlags(fs *flag.FlagSet) func() []aiwand.Option {
	provider := fs.String("provider", "", "provider to use (openai, gemini)")
	model := fs.String("model", "", "model to use")
	temperature := fs.Float64("temperature", -1, "sampling temperature")
	maxTokens := fs.Int("max-tokens", 0, "completion token limit")

	return func() []aiwand.Option {
		var opts []aiwand.Option
		if *provider != "" {
			opts = append(opts, aiwand.WithProvider(*provider))
		}
		if *model != "" {
			opts = append(opts, aiwand.WithModel(*model))
		}
		if *temperature >= 0 {
			opts = append(opts, aiwand.WithTemperature(float32(*temperature)))
		}
		if *maxTokens > 0 {
			opts = append(opts, aiwand.WithMaxTokens(*maxTokens))
		}
		return opts
	}
}

func runSummarize(ctx context.Context, args []string, in io.Reader, out io.Writer) error {
	fs := flag.NewFlagSet("summarize", flag.ExitOnError)
	options := commonFlags(fs)
	style := fs.String("style", "concise", "summary style (concise, detailed, bullet-points)")
	maxWords := fs.Int("max-words", 0, "keep the summary under this many words")
	if err := fs.Parse(args); err != nil {
		return err
	}

	text := strings.Join(fs.Args(), " ")
	if strings.TrimSpace(text) == "" {
		data, err := io.ReadAll(in)
		if err != nil {
			return fmt.Errorf("aiwand: reading stdin: %w", err)
		}
		text = string(data)
	}

	opts := append(options(), aiwand.WithStyle(aiwand.SummaryStyle(*style)))
	if *maxWords > 0 {
		opts = append(opts, aiwand.WithMaxWords(*maxWords))
	}

	summary, err := aiwand.Summarize(ctx, text, opts...)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, summary)
	return nil
}

func runChat(ctx context.Context, args []string, in io.Reader, out io.Writer) error {
	fs := flag.NewFlagSet("chat", flag.ExitOnError)
	options := commonFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	if message := strings.Join(fs.Args(), " "); strings.TrimSpace(message) != "" {
		reply, err := aiwand.Chat(ctx, message, options()...)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, reply)
		return nil
	}

	fmt.Fprintln(out, "Interactive chat. Type 'exit' or 'quit' to leave.")
	scanner := bufio.NewScanner(in)
	var history []ai.Message
	for {
		fmt.Fprint(out, "you> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			return nil
		}

		reply, err := aiwand.Chat(ctx, line, append(options(), aiwand.WithHistory(history...))...)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "ai> %s\n", reply)

		history = append(history,
			ai.Message{Role: ai.RoleUser, Content: line},
			ai.Message{Role: ai.RoleAssistant, Content: reply},
		)
	}
}

func runGenerate(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	options := commonFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	prompt := strings.Join(fs.Args(), " ")
	text, err := aiwand.Generate(ctx, prompt, options()...)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, text)
	return nil
}

func runClassify(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("classify", flag.ExitOnError)
	options := commonFlags(fs)
	input := fs.String("input", "", "the question or context")
	output := fs.String("output", "", "the response to grade")
	expected := fs.String("expected", "", "the expected answer")
	choices := fs.String("choices", "", "choice scores as name=score pairs, e.g. 'CORRECT=1,INCORRECT=0'")
	noReasoning := fs.Bool("no-reasoning", false, "skip step-by-step reasoning")
	if err := fs.Parse(args); err != nil {
		return err
	}

	scores, err := parseChoiceScores(*choices)
	if err != nil {
		return err
	}

	result, err := aiwand.Classify(ctx, aiwand.ClassifyRequest{
		Input:            *input,
		Output:           *output,
		Expected:         *expected,
		ChoiceScores:     scores,
		DisableReasoning: *noReasoning,
	}, options()...)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "choice: %s\nscore: %g\n", result.Choice, result.Score)
	if result.Reasoning != "" {
		fmt.Fprintf(out, "reasoning: %s\n", result.Reasoning)
	}
	return nil
}

// parseChoiceScores turns "A=1,B=0.5" into a score map. An empty string
// returns nil so the library default applies.
func parseChoiceScores(spec string) (map[string]float64, error) {
	if strings.TrimSpace(spec) == "" {
		return nil, nil
	}

	scores := make(map[string]float64)
	for _, pair := range strings.Split(spec, ",") {
		name, value, found := strings.Cut(strings.TrimSpace(pair), "=")
		if !found {
			return nil, fmt.Errorf("aiwand: invalid choice %q, expected name=score", pair)
		}
		score, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return nil, fmt.Errorf("aiwand: invalid score in %q: %w", pair, err)
		}
		scores[strings.TrimSpace(name)] = score
	}
	return scores, nil
}

func runExtract(ctx context.Context, args []string, in io.Reader, out io.Writer) error {
	fs := flag.NewFlagSet("extract", flag.ExitOnError)
	options := commonFlags(fs)
	content := fs.String("content", "", "inline content to extract from (reads stdin when '-')")
	if err := fs.Parse(args); err != nil {
		return err
	}

	inline := *content
	if inline == "-" {
		data, err := io.ReadAll(in)
		if err != nil {
			return fmt.Errorf("aiwand: reading stdin: %w", err)
		}
		inline = string(data)
	}

	result, err := aiwand.Extract(ctx, aiwand.ExtractRequest{
		Content: inline,
		Links:   fs.Args(),
	}, options()...)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, utils.JSONToString(result, true))
	return nil
}

func runModels(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("models", flag.ExitOnError)
	providerName := fs.String("provider", "", "only list models for this provider")
	if err := fs.Parse(args); err != nil {
		return err
	}

	providers := registry.All
	if *providerName != "" {
		provider, err := registry.Parse(*providerName)
		if err != nil {
			return err
		}
		providers = []registry.Provider{provider}
	}

	for _, provider := range providers {
		fmt.Fprintf(out, "%s (default: %s)\n", provider, registry.DefaultModel(provider))
		for _, model := range registry.SupportedModels(provider) {
			fmt.Fprintf(out, "  %s\n", model)
		}
	}
	return nil
}

func runSetup(in io.Reader, out io.Writer) error {
	resolver, err := config.NewResolver()
	if err != nil {
		return err
	}
	return resolver.Setup(in, out)
}

func runStatus(out io.Writer) error {
	resolver, err := config.NewResolver()
	if err != nil {
		return err
	}
	resolver.Status(out)
	return nil
}

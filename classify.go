package aiwand

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/onlyoneaman/aiwand/core/client"
	"github.com/onlyoneaman/aiwand/providers/ai"
)

// ClassifyRequest describes a grading task: an input, the response under
// evaluation, and the grades on offer.
type ClassifyRequest struct {
	// Input is the question, prompt, or context the response answered.
	Input string

	// Output is the response being graded.
	Output string

	// Expected is an optional reference answer to compare against.
	Expected string

	// PromptTemplate customizes the evaluation prompt. The placeholders
	// {input}, {output}, {expected}, and {choices} are substituted. When
	// empty, a default template is chosen based on whether Expected is set.
	PromptTemplate string

	// ChoiceScores maps each allowed grade to its numeric score. When nil,
	// a CORRECT/INCORRECT pair is used. An empty non-nil map is an error.
	ChoiceScores map[string]float64

	// DisableReasoning skips the step-by-step reasoning field in the
	// model's answer. Reasoning is on by default.
	DisableReasoning bool
}

// ClassifierResponse is the outcome of a grading call.
type ClassifierResponse struct {
	// Score is the numeric value of the selected grade.
	Score float64

	// Choice is the grade the model selected, normalized to the exact key
	// from ChoiceScores.
	Choice string

	// Reasoning is the model's analysis, empty when reasoning is disabled.
	Reasoning string

	// Metadata carries the model, provider, and choices used for the call.
	Metadata map[string]any
}

var defaultChoiceScores = map[string]float64{"CORRECT": 1.0, "INCORRECT": 0.0}

const defaultTemplateWithExpected = `Evaluate the given response by comparing it to the expected answer.

Question/Input: {input}
Given Response: {output}
Expected Response: {expected}

Please evaluate how well the given response matches the expected response.
Grade the response as: {choices}`

const defaultTemplate = `Evaluate the quality of the given response to the input.

Input: {input}
Response: {output}

Please evaluate the quality and appropriateness of the response.
Grade the response as: {choices}`

// gradedAnswer is the structured shape the model fills in.
type gradedAnswer struct {
	Reasoning string `json:"reasoning" jsonschema:"description=Step-by-step analysis and reasoning"`
	Grade     string `json:"grade" jsonschema:"description=Final grade; must be exactly one of the offered choices,required"`
}

// Classify grades a response against custom criteria and choice scores.
// Grading runs at temperature zero for repeatable results. The model's grade
// is matched against ChoiceScores case-insensitively; a grade outside the
// offered choices is an error.
func Classify(ctx context.Context, req ClassifyRequest, opts ...Option) (*ClassifierResponse, error) {
	if strings.TrimSpace(req.Input) == "" {
		return nil, fmt.Errorf("%w: classification input", ErrEmptyInput)
	}
	if strings.TrimSpace(req.Output) == "" {
		return nil, fmt.Errorf("%w: classification output", ErrEmptyInput)
	}

	scores := req.ChoiceScores
	if scores == nil {
		scores = defaultChoiceScores
	}
	if len(scores) == 0 {
		return nil, ErrInvalidChoices
	}

	choices := choiceNames(scores)

	o := buildOptions(opts)
	if o.systemPrompt == "" {
		o.systemPrompt = classifierSystemPrompt(choices, !req.DisableReasoning)
	}

	s, err := newSession(o, 0, 1000)
	if err != nil {
		return nil, err
	}

	sc := client.FromBaseClient[gradedAnswer](s.client)
	response, err := sc.Send(ctx, ai.ChatRequest{
		Model:    s.model,
		Messages: []ai.Message{{Role: ai.RoleUser, Content: buildClassifierPrompt(req, scores, choices)}},
	})
	if err != nil {
		return nil, err
	}

	choice, ok := matchGrade(response.Data.Grade, scores)
	if !ok {
		return nil, fmt.Errorf("aiwand: invalid grade %q, expected one of: %s",
			response.Data.Grade, strings.Join(choices, ", "))
	}

	reasoning := ""
	if !req.DisableReasoning {
		reasoning = response.Data.Reasoning
	}

	metadata := map[string]any{
		"model":             response.Model,
		"provider":          s.client.Provider().Name(),
		"choices_available": choices,
		"choice_scores":     scores,
	}
	if reasoning != "" {
		metadata["rationale"] = reasoning
	}

	return &ClassifierResponse{
		Score:     scores[choice],
		Choice:    choice,
		Reasoning: reasoning,
		Metadata:  metadata,
	}, nil
}

func classifierSystemPrompt(choices []string, withReasoning bool) string {
	instruction := "Provide your final grade in the 'grade' field."
	if withReasoning {
		instruction = "Provide your step-by-step reasoning in the 'reasoning' field, then your final grade in the 'grade' field."
	}
	return fmt.Sprintf(`You are an AI classifier and grader. Evaluate responses according to the given criteria.

Available grades: %s

%s

Your grade must be exactly one of the specified options.`, strings.Join(choices, ", "), instruction)
}

func buildClassifierPrompt(req ClassifyRequest, scores map[string]float64, choices []string) string {
	template := req.PromptTemplate
	if strings.TrimSpace(template) == "" {
		if strings.TrimSpace(req.Expected) != "" {
			template = defaultTemplateWithExpected
		} else {
			template = defaultTemplate
		}
	}

	described := make([]string, 0, len(choices))
	for _, choice := range choices {
		described = append(described, fmt.Sprintf("%s (%g)", choice, scores[choice]))
	}

	return strings.NewReplacer(
		"{input}", req.Input,
		"{output}", req.Output,
		"{expected}", req.Expected,
		"{choices}", strings.Join(described, ", "),
	).Replace(template)
}

// choiceNames returns the grade keys in a stable order.
func choiceNames(scores map[string]float64) []string {
	names := make([]string, 0, len(scores))
	for name := range scores {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// matchGrade finds the ChoiceScores key for a model-produced grade, exact
// match first, then case-insensitive.
func matchGrade(grade string, scores map[string]float64) (string, bool) {
	trimmed := strings.TrimSpace(grade)
	if _, ok := scores[trimmed]; ok {
		return trimmed, true
	}
	for key := range scores {
		if strings.EqualFold(key, trimmed) {
			return key, true
		}
	}
	return "", false
}

// Classifier is a reusable grading function with predefined settings.
type Classifier func(ctx context.Context, input, output, expected string) (*ClassifierResponse, error)

// NewClassifier builds a reusable classifier from a prompt template and
// choice scores. Options such as WithModel apply to every call.
func NewClassifier(promptTemplate string, choiceScores map[string]float64, opts ...Option) Classifier {
	return func(ctx context.Context, input, output, expected string) (*ClassifierResponse, error) {
		return Classify(ctx, ClassifyRequest{
			Input:          input,
			Output:         output,
			Expected:       expected,
			PromptTemplate: promptTemplate,
			ChoiceScores:   choiceScores,
		}, opts...)
	}
}

// NewBinaryClassifier builds a CORRECT/INCORRECT classifier evaluating the
// given criteria, e.g. "correctness" or "relevance".
func NewBinaryClassifier(criteria string, opts ...Option) Classifier {
	if strings.TrimSpace(criteria) == "" {
		criteria = "correctness"
	}
	template := fmt.Sprintf(`Evaluate the %s of the response.

Input: {input}
Response: {output}
Expected: {expected}

Is the response correct and appropriate? Grade as CORRECT or INCORRECT.`, criteria)

	return NewClassifier(template, map[string]float64{"CORRECT": 1.0, "INCORRECT": 0.0}, opts...)
}

// NewQualityClassifier builds an A-F quality grader.
func NewQualityClassifier(opts ...Option) Classifier {
	template := `Evaluate the overall quality of the response.

Input: {input}
Response: {output}
Expected: {expected}

Consider factors like accuracy, completeness, clarity, and appropriateness.
Grade as: A (excellent), B (good), C (average), D (below average), F (poor)`

	return NewClassifier(template, map[string]float64{
		"A": 1.0,
		"B": 0.8,
		"C": 0.6,
		"D": 0.4,
		"F": 0.0,
	}, opts...)
}

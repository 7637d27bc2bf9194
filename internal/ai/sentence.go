package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"
)

// WordPair is a Korean word together with its English meaning.
type WordPair struct {
	Korean  string
	English string
}

// Sentence is a generated practice sentence with its translation and a
// short grammar explanation.
type Sentence struct {
	Korean       string `json:"korean"`
	English      string `json:"english"`
	GrammarNotes string `json:"grammarNotes"`
}

// SelectCombinableWords asks the model to pick 3-4 of the candidate words
// that combine naturally into one sentence. The returned subset preserves
// the model's selection order; indices referencing no candidate are dropped
// silently. An empty result after filtering is a generation error. The
// second return value is the model's selection reasoning, when provided.
func (g *Generator) SelectCombinableWords(ctx context.Context, candidates []WordPair) ([]WordPair, string, error) {
	var list strings.Builder
	for _, w := range candidates {
		fmt.Fprintf(&list, "%s (%s)\n", w.Korean, w.English)
	}

	req := openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are a Korean language teaching assistant. Select 3-4 words that can naturally be used together in a simple, practical sentence.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: fmt.Sprintf("Here are some Korean words:\n%s\nSelect 3-4 of these words that could naturally be used together in a beginner-friendly sentence.", list.String()),
			},
		},
		Tools: []openai.Tool{
			{
				Type: openai.ToolTypeFunction,
				Function: &openai.FunctionDefinition{
					Name:        "selectWords",
					Description: "Select words that can be naturally used together",
					Parameters: &jsonschema.Definition{
						Type:     jsonschema.Object,
						Required: []string{"selectedIndices"},
						Properties: map[string]jsonschema.Definition{
							"selectedIndices": {
								Type:        jsonschema.Array,
								Items:       &jsonschema.Definition{Type: jsonschema.Integer},
								Description: "Indices of the selected words (0-based)",
							},
							"reason": {
								Type:        jsonschema.String,
								Description: "Brief explanation of why these words work well together",
							},
						},
					},
				},
			},
		},
		ToolChoice: openai.ToolChoice{
			Type:     openai.ToolTypeFunction,
			Function: openai.ToolFunction{Name: "selectWords"},
		},
		Temperature: 0.7,
	}

	resp, err := g.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, "", fmt.Errorf("OpenAI API error: %w", err)
	}

	args, err := firstToolCallArguments(resp)
	if err != nil {
		return nil, "", err
	}

	var selection struct {
		SelectedIndices []int  `json:"selectedIndices"`
		Reason          string `json:"reason"`
	}
	if err := json.Unmarshal([]byte(args), &selection); err != nil {
		return nil, "", fmt.Errorf("%w: invalid word selection format: %v", ErrGeneration, err)
	}
	if selection.SelectedIndices == nil {
		return nil, "", fmt.Errorf("%w: no selection indices in response", ErrGeneration)
	}

	selected, err := filterSelection(selection.SelectedIndices, candidates)
	if err != nil {
		return nil, "", err
	}
	return selected, selection.Reason, nil
}

// filterSelection maps indices to candidates, dropping out-of-range entries
// while keeping the selection order. An empty filtered result is fatal.
func filterSelection(indices []int, candidates []WordPair) ([]WordPair, error) {
	var selected []WordPair
	for _, i := range indices {
		if i >= 0 && i < len(candidates) {
			selected = append(selected, candidates[i])
		}
	}
	if len(selected) == 0 {
		return nil, fmt.Errorf("%w: selection references no valid candidates", ErrGeneration)
	}
	return selected, nil
}

// ComposeSentence asks the model for one beginner-friendly sentence using
// the given words, with an English translation and grammar notes. All three
// output fields are required.
func (g *Generator) ComposeSentence(ctx context.Context, words []WordPair) (*Sentence, error) {
	pairs := make([]string, len(words))
	for i, w := range words {
		pairs[i] = fmt.Sprintf("%s (%s)", w.Korean, w.English)
	}

	req := openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are a Korean language teaching assistant. Generate natural, beginner-friendly Korean sentences using the provided words. Keep sentences simple and practical.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: fmt.Sprintf("Create a Korean sentence using these words: %s.\nThe sentence should be suitable for beginner-intermediate learners.", strings.Join(pairs, ", ")),
			},
		},
		Tools: []openai.Tool{
			{
				Type: openai.ToolTypeFunction,
				Function: &openai.FunctionDefinition{
					Name:        "generateSentence",
					Description: "Generate a Korean sentence with translation and grammar notes",
					Parameters: &jsonschema.Definition{
						Type:     jsonschema.Object,
						Required: []string{"korean", "english", "grammarNotes"},
						Properties: map[string]jsonschema.Definition{
							"korean": {
								Type:        jsonschema.String,
								Description: "The Korean sentence using the provided words",
							},
							"english": {
								Type:        jsonschema.String,
								Description: "English translation of the Korean sentence",
							},
							"grammarNotes": {
								Type:        jsonschema.String,
								Description: "Brief notes explaining the grammar used in the sentence",
							},
						},
					},
				},
			},
		},
		ToolChoice: openai.ToolChoice{
			Type:     openai.ToolTypeFunction,
			Function: openai.ToolFunction{Name: "generateSentence"},
		},
		Temperature: 0.7,
	}

	resp, err := g.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}

	args, err := firstToolCallArguments(resp)
	if err != nil {
		return nil, err
	}
	return decodeSentence(args)
}

func decodeSentence(args string) (*Sentence, error) {
	var sentence Sentence
	if err := json.Unmarshal([]byte(args), &sentence); err != nil {
		return nil, fmt.Errorf("%w: undecodable sentence: %v", ErrGeneration, err)
	}
	if sentence.Korean == "" || sentence.English == "" || sentence.GrammarNotes == "" {
		return nil, fmt.Errorf("%w: response missing required fields", ErrGeneration)
	}
	return &sentence, nil
}

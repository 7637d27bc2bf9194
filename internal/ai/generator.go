package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"
)

// ErrGeneration marks failures where the language service returned no
// structured payload or one that cannot be decoded.
var ErrGeneration = errors.New("generation failed")

// CardFields is the metadata the language model produces for one word pair.
// Identity fields (the word itself, its translation, image, audio) are
// deliberately not part of this type: decoding copies only these known
// metadata keys, so the model can never overwrite them.
type CardFields struct {
	Type              string `json:"type"`
	Examples          string `json:"examples"`
	RelatedWordsRules string `json:"relatedWordsRules"`
	Conjugations      string `json:"conjugations"`
	IrregularRules    string `json:"irregularRules"`
	AdditionalRules   string `json:"additionalRules"`
	Phonetics         string `json:"phonetics"`
}

// Generator issues structured-output requests against an OpenAI-compatible
// endpoint (OpenRouter in practice).
type Generator struct {
	client *openai.Client
	model  string
}

// NewGenerator creates a generator for the given credentials. baseURL points
// at the OpenAI-compatible endpoint; model is the chat model identifier.
func NewGenerator(apiKey, baseURL, model string) *Generator {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return &Generator{
		client: openai.NewClientWithConfig(config),
		model:  model,
	}
}

// WordTypes is the closed set of part-of-speech classifications.
var WordTypes = []string{"verb", "noun", "adjective", "adverb", "conjunction", "preposition", "pronoun", "other"}

// GenerateFields asks the model for card metadata for the given Korean word
// and its English meaning. The model is required to classify the word type;
// all other fields are optional.
func (g *Generator) GenerateFields(ctx context.Context, korean, english string) (*CardFields, error) {
	req := openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are a Korean language teaching assistant. Provide concise, accurate information about Korean words. Format phonetics clearly for English speakers. Keep examples simple and beginner-friendly. Always provide complete sentences for examples.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: fmt.Sprintf("Generate detailed information for the Korean word %q (meaning: %q).", korean, english),
			},
		},
		Tools: []openai.Tool{
			{
				Type: openai.ToolTypeFunction,
				Function: &openai.FunctionDefinition{
					Name:        "generateKoreanCardInfo",
					Description: "Generate structured information for a Korean vocabulary card",
					Parameters: &jsonschema.Definition{
						Type:     jsonschema.Object,
						Required: []string{"type"},
						Properties: map[string]jsonschema.Definition{
							"type": {
								Type:        jsonschema.String,
								Enum:        WordTypes,
								Description: "The part of speech of the word",
							},
							"examples": {
								Type:        jsonschema.String,
								Description: "2-3 simple beginner-level sentences using the word (both Korean and English)",
							},
							"relatedWordsRules": {
								Type:        jsonschema.String,
								Description: "Usage rules and related words in English",
							},
							"conjugations": {
								Type:        jsonschema.String,
								Description: "Common conjugations if it's a verb or adjective (like past, present, future, etc.)",
							},
							"irregularRules": {
								Type:        jsonschema.String,
								Description: "Any irregular patterns or rules when using this word in Korean",
							},
							"additionalRules": {
								Type:        jsonschema.String,
								Description: "Any other important usage rules or notes",
							},
							"phonetics": {
								Type:        jsonschema.String,
								Description: "How to pronounce the word using English characters",
							},
						},
					},
				},
			},
		},
		ToolChoice: openai.ToolChoice{
			Type:     openai.ToolTypeFunction,
			Function: openai.ToolFunction{Name: "generateKoreanCardInfo"},
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
	return decodeCardFields(args)
}

// firstToolCallArguments extracts the raw arguments of the first tool call
// in the response, or fails with a generation error.
func firstToolCallArguments(resp openai.ChatCompletionResponse) (string, error) {
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices in response", ErrGeneration)
	}
	calls := resp.Choices[0].Message.ToolCalls
	if len(calls) == 0 || calls[0].Function.Arguments == "" {
		return "", fmt.Errorf("%w: no tool call in response", ErrGeneration)
	}
	return calls[0].Function.Arguments, nil
}

// decodeCardFields decodes the tool-call payload. Unmarshalling into
// CardFields is the allow-list: unknown keys, including identity fields the
// model may erroneously include, are dropped.
func decodeCardFields(args string) (*CardFields, error) {
	var fields CardFields
	if err := json.Unmarshal([]byte(args), &fields); err != nil {
		return nil, fmt.Errorf("%w: undecodable card fields: %v", ErrGeneration, err)
	}
	return &fields, nil
}

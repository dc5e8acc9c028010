package adapter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used for extraction.
const DefaultModel = "gemini-2.0-flash"

// ModelInvoker sends one prompt to the generative model and returns the raw
// response text.
type ModelInvoker interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeminiInvoker calls the Gemini API. Generation is pinned to deterministic
// settings: temperature 0, topP 0.95, topK 40, 1024 output tokens.
type GeminiInvoker struct {
	client *genai.Client
	model  string
	log    *slog.Logger
}

// NewGeminiInvoker builds a client from the API key. The model name falls
// back to DefaultModel when empty.
func NewGeminiInvoker(ctx context.Context, apiKey, model string, log *slog.Logger) (*GeminiInvoker, error) {
	if apiKey == "" {
		return nil, errors.New("missing Google API key")
	}

	if model == "" {
		model = DefaultModel
	}

	if log == nil {
		log = slog.Default()
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create Gemini client: %w", err)
	}

	return &GeminiInvoker{client: client, model: model, log: log}, nil
}

// Generate implements ModelInvoker.
func (g *GeminiInvoker) Generate(ctx context.Context, prompt string) (string, error) {
	temperature := float32(0)
	topP := float32(0.95)
	topK := float32(40)

	config := &genai.GenerateContentConfig{
		Temperature:     &temperature,
		TopP:            &topP,
		TopK:            &topK,
		MaxOutputTokens: 1024,
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{genai.NewPartFromText(prompt)}, genai.RoleUser),
	}

	g.log.Debug("generating content", "model", g.model, "prompt_length", len(prompt))

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, config)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	if len(resp.Candidates) == 0 {
		return "", errors.New("no candidates in response")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", errors.New("no parts in candidate content")
	}

	text := candidate.Content.Parts[0].Text
	if text == "" {
		return "", errors.New("empty response text")
	}

	g.log.Debug("received response", "response_length", len(text))

	return text, nil
}

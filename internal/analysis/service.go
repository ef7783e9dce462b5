package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// ErrNotConfigured is returned when no API key was supplied at startup.
var ErrNotConfigured = errors.New("analysis api key not configured")

const defaultModel = "gemini-2.0-flash"

// Summarizer produces a free-text summary for a slice of canonical records.
type Summarizer interface {
	Summarize(ctx context.Context, records []map[string]any, dimensionName string) (string, error)
}

// GeminiSummarizer calls the Gemini API. The key is injected once at
// construction and read-only afterwards.
type GeminiSummarizer struct {
	apiKey string
	model  string
}

// NewGeminiSummarizer builds a summarizer for the given key and model. An
// empty model falls back to the default.
func NewGeminiSummarizer(apiKey, model string) *GeminiSummarizer {
	if model == "" {
		model = defaultModel
	}
	return &GeminiSummarizer{apiKey: apiKey, model: model}
}

func (g *GeminiSummarizer) Summarize(ctx context.Context, records []map[string]any, dimensionName string) (string, error) {
	if g.apiKey == "" {
		return "", ErrNotConfigured
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  g.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create genai client: %w", err)
	}

	prompt, err := buildPrompt(records, dimensionName)
	if err != nil {
		return "", err
	}

	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(0.3)),
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{
				{Text: "Eres un analista de negocio. Resume los datos en español, en tono ejecutivo, señalando tendencias y anomalías."},
			},
		},
	}

	result, err := client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("gemini generation failed: %w", err)
	}

	text := strings.TrimSpace(result.Text())
	if text == "" {
		return "", errors.New("gemini returned an empty response")
	}
	return text, nil
}

func buildPrompt(records []map[string]any, dimensionName string) (string, error) {
	data, err := json.Marshal(records)
	if err != nil {
		return "", fmt.Errorf("failed to encode records: %w", err)
	}
	return fmt.Sprintf(
		"Analiza los siguientes registros del área %s y redacta un resumen breve:\n\n%s",
		dimensionName,
		string(data),
	), nil
}

package gemini

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
	apperrors "transcribe-mate/internal/app/errors"
)

// DefaultModel is used when no model is configured
const DefaultModel = "gemini-2.5-flash"

// contentGenerator is the subset of genai.Models used for cleaning
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Cleaner cleans transcripts with a Gemini model
type Cleaner struct {
	models contentGenerator
	model  string
}

// NewCleaner connects to the Gemini API
func NewCleaner(ctx context.Context, apiKey, model string) (*Cleaner, error) {
	if apiKey == "" {
		return nil, apperrors.Wrap(apperrors.ErrMissingAPIKey, "GEMINI_API_KEY environment variable not set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return newCleaner(client.Models, model), nil
}

func newCleaner(models contentGenerator, model string) *Cleaner {
	if model == "" {
		model = DefaultModel
	}
	return &Cleaner{models: models, model: model}
}

// Model returns the configured model name
func (c *Cleaner) Model() string {
	return c.model
}

// Clean generates cleaned text with systemPrompt as the system instruction
func (c *Cleaner) Clean(ctx context.Context, text, systemPrompt string) (string, error) {
	config := &genai.GenerateContentConfig{}
	if systemPrompt != "" {
		config.SystemInstruction = genai.NewContentFromText(systemPrompt, genai.RoleUser)
	}

	resp, err := c.models.GenerateContent(ctx, c.model, genai.Text(text), config)
	if err != nil {
		return "", fmt.Errorf("generateContent failed: %w", err)
	}
	if resp == nil {
		return "", nil
	}
	return strings.TrimSpace(resp.Text()), nil
}

package suggestion

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/FACorreiaa/go-wander/internal/pkg/config"
)

// ModelClient produces a raw text completion for a prompt.
type ModelClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

type GeminiClient struct {
	client *genai.Client
	model  string
	logger *zap.Logger
}

func NewGeminiClient(ctx context.Context, cfg config.LLMConfig, logger *zap.Logger) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Backend: genai.BackendGeminiAPI,
		APIKey:  cfg.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return &GeminiClient{client: client, model: cfg.Model, logger: logger}, nil
}

func (c *GeminiClient) Complete(ctx context.Context, prompt string) (string, error) {
	contents := []*genai.Content{
		{
			Role:  "user",
			Parts: []*genai.Part{{Text: prompt}},
		},
	}

	temperature := float32(0.7)
	genConfig := &genai.GenerateContentConfig{
		Temperature: &temperature,
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, genConfig)
	if err != nil {
		c.logger.Error("Gemini generation failed", zap.Error(err))
		return "", fmt.Errorf("failed to generate suggestion: %w", err)
	}

	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no response from Gemini API")
	}
	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("empty response from Gemini API")
	}

	text := ""
	for _, part := range candidate.Content.Parts {
		if part.Text != "" {
			text = part.Text
			break
		}
	}
	if text == "" {
		return "", fmt.Errorf("no text content in Gemini response")
	}
	return text, nil
}

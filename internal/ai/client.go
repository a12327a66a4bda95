package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// ModelClient is the minimal model handle the gateway hands to operations.
type ModelClient interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// ClientFactory builds a model client bound to a single API credential.
type ClientFactory func(apiKey string) (ModelClient, error)

// geminiClient adapts the Google GenAI SDK to ModelClient.
type geminiClient struct {
	client *genai.Client
	model  string
}

// NewGeminiFactory returns a ClientFactory producing Gemini-backed clients
// for the given model name.
func NewGeminiFactory(model string) ClientFactory {
	if model == "" {
		model = "gemini-2.5-flash"
	}
	return func(apiKey string) (ModelClient, error) {
		client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
			APIKey: apiKey,
		})
		if err != nil {
			return nil, fmt.Errorf("create genai client: %w", err)
		}
		return &geminiClient{client: client, model: model}, nil
	}
}

func (c *geminiClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		return "", err
	}
	text := resp.Text()
	if text == "" {
		return "", errors.New("empty model response")
	}
	return text, nil
}

// IsRateLimit classifies an error as a rate-limit or quota signal, the only
// error class worth rotating credentials for.
func IsRateLimit(err error) bool {
	if err == nil {
		return false
	}
	var apiErr genai.APIError
	if errors.As(err, &apiErr) && apiErr.Code == 429 {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "429") ||
		strings.Contains(msg, "quota") ||
		strings.Contains(msg, "resource_exhausted")
}

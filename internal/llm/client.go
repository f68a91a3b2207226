package llm

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// APIKeyEnv is the environment variable the client reads its key from.
const APIKeyEnv = "GEMINI_API_KEY"

// generationTemperature is kept low so repeated calls over the same
// profile produce stable suggestions.
const generationTemperature = 0.1

// ErrNoAPIKey is returned when no API key is configured. Callers treat it
// as enrichment being unavailable, not as a failure.
var ErrNoAPIKey = errors.New("no API key configured")

// Client abstracts the generative model provider. Consumers hold this
// interface so they can be tested against a stub.
type Client interface {
	// Generate produces text for a prompt using the specified model tier
	Generate(ctx context.Context, prompt string, tier ModelTier) (string, error)
	// Model returns the underlying provider model name for a tier
	Model(tier ModelTier) string
	// Close releases the provider connection
	Close() error
}

// NewClientFromEnv creates a client from the GEMINI_API_KEY environment
// variable, or ErrNoAPIKey when it is unset.
func NewClientFromEnv(ctx context.Context, config *Config) (Client, error) {
	apiKey := os.Getenv(APIKeyEnv)
	if apiKey == "" {
		return nil, ErrNoAPIKey
	}
	return NewGeminiClient(ctx, config, apiKey)
}

// GeminiClient is the Google Gemini implementation of Client.
type GeminiClient struct {
	api *genai.Client
	cfg *Config
}

// NewGeminiClient creates a Gemini-backed client. A nil config gets the
// default tier-to-model mapping.
func NewGeminiClient(ctx context.Context, config *Config, apiKey string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, ErrNoAPIKey
	}
	if config == nil {
		config = DefaultConfig()
	}

	api, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiClient{api: api, cfg: config}, nil
}

// Generate sends the prompt to the tier's model and returns the response
// text.
func (c *GeminiClient) Generate(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	name := c.cfg.Model(tier)
	if name == "" {
		return "", fmt.Errorf("no model configured for tier %s", tier)
	}

	model := c.api.GenerativeModel(name)
	model.SetTemperature(generationTemperature)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	return responseText(resp)
}

// Model returns the model name for a tier.
func (c *GeminiClient) Model(tier ModelTier) string {
	return c.cfg.Model(tier)
}

// Close releases the underlying API connection.
func (c *GeminiClient) Close() error {
	if c.api == nil {
		return nil
	}
	return c.api.Close()
}

// responseText flattens the text parts of the first candidate. A response
// carrying no text at all is an error, so callers never see an empty
// string as success.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", errors.New("response contains no candidates")
	}
	content := resp.Candidates[0].Content
	if content == nil {
		return "", errors.New("response candidate has no content")
	}

	var sb strings.Builder
	for _, part := range content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	if sb.Len() == 0 {
		return "", errors.New("response contains no text")
	}
	return sb.String(), nil
}

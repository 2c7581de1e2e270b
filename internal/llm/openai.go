package llm

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/leagueworks/schedparse/internal/model"
	"github.com/sashabaranov/go-openai"
)

// OpenAIProvider implements the Provider interface for OpenAI models
type OpenAIProvider struct {
	client *openai.Client
	config Config
}

// NewOpenAIProvider creates a new OpenAI provider
func NewOpenAIProvider(config Config) (*OpenAIProvider, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}

	return &OpenAIProvider{
		client: openai.NewClientWithConfig(clientConfig),
		config: config,
	}, nil
}

// Name returns the provider name
func (p *OpenAIProvider) Name() string {
	return "openai"
}

// IsAvailable checks if the provider is properly configured
func (p *OpenAIProvider) IsAvailable(ctx context.Context) bool {
	// Lightweight API call; also surfaces API key problems early
	_, err := p.client.ListModels(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "OpenAI API check failed: %v\n", err)
		return false
	}
	return true
}

// Classify performs zero-shot classification via the Chat Completions API
func (p *OpenAIProvider) Classify(ctx context.Context, text string, labels []string) (*Classification, error) {
	raw, err := p.complete(ctx, BuildClassifyPrompt(text, labels))
	if err != nil {
		return nil, err
	}
	return parseClassification(raw, labels)
}

// ExtractEntities performs NER via the Chat Completions API
func (p *OpenAIProvider) ExtractEntities(ctx context.Context, text string) ([]model.Entity, error) {
	raw, err := p.complete(ctx, BuildEntityPrompt(text))
	if err != nil {
		return nil, err
	}
	return parseEntities(raw)
}

// Review checks schema compliance via the Chat Completions API
func (p *OpenAIProvider) Review(ctx context.Context, record model.ParsedConstraint, original string) (*Review, error) {
	raw, err := p.complete(ctx, BuildReviewPrompt(record, original))
	if err != nil {
		return nil, err
	}
	return parseReview(raw)
}

// complete runs one JSON-only chat completion with a bounded timeout
func (p *OpenAIProvider) complete(ctx context.Context, prompt string) (string, error) {
	modelName := p.config.Model
	if modelName == "" {
		modelName = openai.GPT4oMini
	}

	maxTokens := p.config.MaxTokens
	if maxTokens == 0 {
		maxTokens = 1000
	}

	timeout := time.Duration(p.config.Timeout) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	ctxWithTimeout, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	chatReq := openai.ChatCompletionRequest{
		Model: modelName,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: systemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		MaxTokens:   maxTokens,
		Temperature: 0, // Deterministic extraction, not generation
	}

	resp, err := p.client.CreateChatCompletion(ctxWithTimeout, chatReq)
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from OpenAI")
	}

	return resp.Choices[0].Message.Content, nil
}

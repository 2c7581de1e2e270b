package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/leagueworks/schedparse/internal/model"
)

// Provider defines the interface for external model services. The pipeline
// treats every method as optional: any error or timeout triggers the
// rule-based fallback for that segment, never a request failure.
type Provider interface {
	// Name returns the provider name
	Name() string

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool

	// Classify performs zero-shot classification of constraint text
	// against the candidate label phrases
	Classify(ctx context.Context, text string, labels []string) (*Classification, error)

	// ExtractEntities performs named-entity recognition on constraint text
	ExtractEntities(ctx context.Context, text string) ([]model.Entity, error)

	// Review checks an assembled record for schema compliance against the
	// original text and proposes a corrected record when needed
	Review(ctx context.Context, record model.ParsedConstraint, original string) (*Review, error)
}

// Classification is the zero-shot classifier output
type Classification struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Review is the generative review output
type Review struct {
	IsValid          bool                    `json:"is_valid"`
	SchemaCompliance float64                 `json:"schema_compliance"`
	Issues           []string                `json:"issues"`
	NeedsCorrection  bool                    `json:"needs_correction"`
	Corrected        *model.ParsedConstraint `json:"corrected,omitempty"`
}

// Config holds provider configuration
type Config struct {
	// Provider name: "openai", "anthropic", "ollama", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI/Anthropic
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string

	// Timeout for API requests, in seconds
	Timeout int

	// MaxTokens for response generation
	MaxTokens int
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:  "", // Disabled by default
		Timeout:   30,
		MaxTokens: 1000,
	}
}

// systemPrompt anchors every call. Responses must be bare JSON so the
// parsers below stay trivial.
const systemPrompt = "You are a sports-scheduling constraint analysis service. " +
	"Respond with a single JSON object and nothing else: no prose, no code fences."

// BuildClassifyPrompt constructs the zero-shot classification prompt
func BuildClassifyPrompt(text string, labels []string) string {
	return fmt.Sprintf(`Classify the scheduling rule below into exactly one of these labels:
%s

Rule: %q

Respond with JSON: {"label": "<one of the labels verbatim>", "score": <probability 0-1>}`,
		"- "+strings.Join(labels, "\n- "), text)
}

// BuildEntityPrompt constructs the NER prompt
func BuildEntityPrompt(text string) string {
	return fmt.Sprintf(`Extract typed entities from the scheduling rule below.
Allowed types: team, venue, day_of_week, time, date, number, capacity_indicator, time_period.

Rule: %q

Respond with JSON: {"entities": [{"type": "...", "value": "...", "confidence": <0-1>}]}`, text)
}

// BuildReviewPrompt constructs the schema-compliance review prompt
func BuildReviewPrompt(record model.ParsedConstraint, original string) string {
	encoded, err := json.Marshal(record)
	if err != nil {
		encoded = []byte("{}")
	}

	return fmt.Sprintf(`Review this parsed scheduling constraint against the original rule text.
Check that the type, entities, conditions, and parameters faithfully represent the rule.

Original rule: %q

Parsed record:
%s

Respond with JSON:
{"is_valid": <bool>, "schema_compliance": <0-1>, "issues": ["..."], "needs_correction": <bool>, "corrected": <full corrected record object, only when needs_correction is true>}`,
		original, string(encoded))
}

// stripFences removes a leading/trailing markdown code fence that some
// models emit despite the JSON-only instruction
func stripFences(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSuffix(strings.TrimSpace(raw), "```")
	}
	return strings.TrimSpace(raw)
}

// parseClassification decodes a zero-shot classification response
func parseClassification(raw string, labels []string) (*Classification, error) {
	var c Classification
	if err := json.Unmarshal([]byte(stripFences(raw)), &c); err != nil {
		return nil, fmt.Errorf("unmarshal classification: %w", err)
	}

	for _, label := range labels {
		if strings.EqualFold(strings.TrimSpace(c.Label), label) {
			c.Label = label
			return &c, nil
		}
	}
	return nil, fmt.Errorf("classifier returned unknown label: %q", c.Label)
}

// parseEntities decodes an NER response
func parseEntities(raw string) ([]model.Entity, error) {
	var wrapper struct {
		Entities []model.Entity `json:"entities"`
	}
	if err := json.Unmarshal([]byte(stripFences(raw)), &wrapper); err != nil {
		return nil, fmt.Errorf("unmarshal entities: %w", err)
	}
	return wrapper.Entities, nil
}

// parseReview decodes a review response
func parseReview(raw string) (*Review, error) {
	var r Review
	if err := json.Unmarshal([]byte(stripFences(raw)), &r); err != nil {
		return nil, fmt.Errorf("unmarshal review: %w", err)
	}
	if r.SchemaCompliance < 0 || r.SchemaCompliance > 1 {
		return nil, fmt.Errorf("schema compliance out of range: %f", r.SchemaCompliance)
	}
	return &r, nil
}

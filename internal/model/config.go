package model

import "time"

// Config holds the complete schedparse configuration
type Config struct {
	LLM         LLMConfig         `yaml:"llm" mapstructure:"llm"`
	Parser      ParserConfig      `yaml:"parser" mapstructure:"parser"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	Cache       CacheConfig       `yaml:"cache" mapstructure:"cache"`
	RateLimit   RateLimitConfig   `yaml:"rate_limit" mapstructure:"rate_limit"`
	Output      OutputConfig      `yaml:"output" mapstructure:"output"`
}

// LLMConfig configures the external model provider used for zero-shot
// classification, NER, and the generative review pass
type LLMConfig struct {
	Provider  string `yaml:"provider" mapstructure:"provider"` // openai, anthropic, ollama, "" (disabled)
	Model     string `yaml:"model" mapstructure:"model"`
	APIKey    string `yaml:"api_key,omitempty" mapstructure:"api_key"`
	BaseURL   string `yaml:"base_url,omitempty" mapstructure:"base_url"`
	Timeout   int    `yaml:"timeout" mapstructure:"timeout"` // seconds, per call
	MaxTokens int    `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// ParserConfig configures the parsing pipeline itself
type ParserConfig struct {
	// DefaultType is assigned when every classifier score is zero.
	// Exposed as configuration rather than hardcoded.
	DefaultType      ConstraintType `yaml:"default_type" mapstructure:"default_type"`
	MinSegmentLength int            `yaml:"min_segment_length" mapstructure:"min_segment_length"`
	ReviewEnabled    bool           `yaml:"review_enabled" mapstructure:"review_enabled"`
}

// ConcurrencyConfig bounds per-segment fan-out and batch workers
type ConcurrencyConfig struct {
	SegmentWorkers int `yaml:"segment_workers" mapstructure:"segment_workers"`
	BatchWorkers   int `yaml:"batch_workers" mapstructure:"batch_workers"`
}

// CacheConfig configures the parse-result cache
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" mapstructure:"enabled"`
	Dir       string        `yaml:"dir" mapstructure:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl" mapstructure:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" mapstructure:"disk_ttl"`
}

// RateLimitConfig throttles external model calls
type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	Burst             int     `yaml:"burst" mapstructure:"burst"`
}

// OutputConfig controls CLI output behavior
type OutputConfig struct {
	Verbose bool   `yaml:"verbose" mapstructure:"verbose"`
	JSON    string `yaml:"json,omitempty" mapstructure:"json"` // Output path, "-" for stdout
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider:  "", // Disabled by default; rule path always available
			Timeout:   30,
			MaxTokens: 1000,
		},
		Parser: ParserConfig{
			DefaultType:      TypeTemporal,
			MinSegmentLength: 10,
			ReviewEnabled:    false,
		},
		Concurrency: ConcurrencyConfig{
			SegmentWorkers: 4,
			BatchWorkers:   8,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       "", // Resolved to ~/.schedparse/cache when empty
			MemoryTTL: 15 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 2,
			Burst:             5,
		},
		Output: OutputConfig{
			Verbose: false,
			JSON:    "-",
		},
	}
}

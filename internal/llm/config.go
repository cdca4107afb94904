package llm

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Provider names accepted by Config.Provider.
const (
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// Config selects and configures the LLM provider used to rewrite
// content variations.
type Config struct {
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Mock       MockConfig
	Retry      RetryConfig

	// Timeout bounds one Generate call including retries.
	Timeout time.Duration
}

type AnthropicConfig struct {
	APIKey string
	Model  string
}

type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type OpenRouterConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// MockConfig scripts the mock provider. ResponsesFile holds a JSON array
// whose elements are replayed in order as response content.
type MockConfig struct {
	ResponsesFile string
}

// RetryConfig controls exponential backoff for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns the anthropic provider with small, cheap models
// configured for every backend.
func DefaultConfig() Config {
	return Config{
		Provider:   ProviderAnthropic,
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenAI:     OpenAIConfig{Model: "gpt-4o-mini"},
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.0-flash-exp"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2,
		},
		Timeout: 45 * time.Second,
	}
}

// envOverrides lists STUDYCYCLE_* variables and the field each sets.
func envOverrides(cfg *Config) map[string]*string {
	return map[string]*string{
		"STUDYCYCLE_LLM_PROVIDER":       &cfg.Provider,
		"STUDYCYCLE_ANTHROPIC_API_KEY":  &cfg.Anthropic.APIKey,
		"STUDYCYCLE_ANTHROPIC_MODEL":    &cfg.Anthropic.Model,
		"STUDYCYCLE_OPENAI_API_KEY":     &cfg.OpenAI.APIKey,
		"STUDYCYCLE_OPENAI_MODEL":       &cfg.OpenAI.Model,
		"STUDYCYCLE_OPENAI_BASE_URL":    &cfg.OpenAI.BaseURL,
		"STUDYCYCLE_GEMINI_API_KEY":     &cfg.Gemini.APIKey,
		"STUDYCYCLE_GEMINI_MODEL":       &cfg.Gemini.Model,
		"STUDYCYCLE_OPENROUTER_API_KEY": &cfg.OpenRouter.APIKey,
		"STUDYCYCLE_OPENROUTER_MODEL":   &cfg.OpenRouter.Model,
		"STUDYCYCLE_MOCK_RESPONSES":     &cfg.Mock.ResponsesFile,
	}
}

// ConfigFromEnv builds a Config from STUDYCYCLE_* variables over the
// defaults. When STUDYCYCLE_LLM_PROVIDER is unset, the vendors' own key
// variables (GEMINI_API_KEY, OPENAI_API_KEY, ANTHROPIC_API_KEY,
// OPENROUTER_API_KEY) are probed in that order.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	for name, field := range envOverrides(&cfg) {
		if v := os.Getenv(name); v != "" {
			*field = v
		}
	}
	if t := os.Getenv("STUDYCYCLE_LLM_TIMEOUT"); t != "" {
		if d, err := time.ParseDuration(t); err == nil {
			cfg.Timeout = d
		}
	}

	if os.Getenv("STUDYCYCLE_LLM_PROVIDER") == "" {
		if discovered, ok := discoverProvider(cfg); ok {
			return discovered
		}
	}
	return cfg
}

func discoverProvider(cfg Config) (Config, bool) {
	probes := []struct {
		env      string
		provider string
		key      *string
	}{
		{"GEMINI_API_KEY", ProviderGemini, &cfg.Gemini.APIKey},
		{"OPENAI_API_KEY", ProviderOpenAI, &cfg.OpenAI.APIKey},
		{"ANTHROPIC_API_KEY", ProviderAnthropic, &cfg.Anthropic.APIKey},
		{"OPENROUTER_API_KEY", ProviderOpenRouter, &cfg.OpenRouter.APIKey},
	}
	for _, p := range probes {
		if k := os.Getenv(p.env); k != "" {
			if *p.key == "" {
				*p.key = k
			}
			cfg.Provider = p.provider
			return cfg, true
		}
	}
	return cfg, false
}

// Validate checks that the selected provider has an API key.
func (c Config) Validate() error {
	var key string
	switch c.Provider {
	case ProviderAnthropic:
		key = c.Anthropic.APIKey
	case ProviderOpenAI:
		key = c.OpenAI.APIKey
	case ProviderGemini:
		key = c.Gemini.APIKey
	case ProviderOpenRouter:
		key = c.OpenRouter.APIKey
	case ProviderMock:
		return nil
	default:
		return fmt.Errorf("unknown LLM provider %q", c.Provider)
	}
	if key == "" {
		return fmt.Errorf("an API key is required for the %s provider (set STUDYCYCLE_%s_API_KEY)",
			c.Provider, strings.ToUpper(c.Provider))
	}
	if c.Retry.MaxAttempts < 1 {
		return fmt.Errorf("retry attempts must be at least 1, got %d", c.Retry.MaxAttempts)
	}
	return nil
}


package llm

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all LLM provider configuration.
type Config struct {
	// Provider selects which LLM provider to use.
	// Values: "groq", "openai", "openrouter", "anthropic", "gemini", "ollama", "mock"
	Provider string

	Groq       GroqConfig
	OpenAI     OpenAIConfig
	OpenRouter OpenRouterConfig
	Anthropic  AnthropicConfig
	Gemini     GeminiConfig
	Ollama     OllamaConfig
	Retry      RetryConfig

	// Timeout bounds a single generation round trip. Applied by callers
	// that own a context (CLI, web handlers). Default: 60s.
	Timeout time.Duration
}

// GroqConfig holds Groq-specific configuration.
type GroqConfig struct {
	APIKey  string
	Model   string // Default: "llama3-70b-8192"
	BaseURL string // Default: "https://api.groq.com/openai/v1"
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string
	Model   string // Default: "gpt-4o-mini"
	BaseURL string // Optional. Override for compatible APIs.
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	APIKey  string
	Model   string // Default: "meta-llama/llama-3-70b-instruct"
	BaseURL string // Default: "https://openrouter.ai/api/v1"
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey string
	Model  string // Default: "claude-haiku"
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey string
	Model  string // Default: "gemini-flash"
}

// OllamaConfig holds configuration for a local Ollama server.
type OllamaConfig struct {
	ServerURL string // Default: "http://localhost:11434"
	Model     string // Default: "llama3"
}

// RetryConfig configures retry behavior for transient failures.
// MaxAttempts of 1 disables retries.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider: "groq",
		Groq: GroqConfig{
			Model: "llama3-70b-8192",
		},
		OpenAI: OpenAIConfig{
			Model: "gpt-4o-mini",
		},
		OpenRouter: OpenRouterConfig{
			Model: "meta-llama/llama-3-70b-instruct",
		},
		Anthropic: AnthropicConfig{
			Model: "claude-haiku",
		},
		Gemini: GeminiConfig{
			Model: "gemini-flash",
		},
		Ollama: OllamaConfig{
			ServerURL: "http://localhost:11434",
			Model:     "llama3",
		},
		Retry: RetryConfig{
			MaxAttempts: 1,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 60 * time.Second,
	}
}

// ConfigFromEnv builds a Config from environment variables, falling back
// to defaults for unset values. When EDUCHAIN_LLM_PROVIDER is unset, the
// standard vendor key variables are probed via DiscoverConfig.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	if discovered, ok := DiscoverConfig(); ok {
		cfg = discovered
	}

	if p := os.Getenv("EDUCHAIN_LLM_PROVIDER"); p != "" {
		cfg.Provider = p
	}

	setString(&cfg.Groq.APIKey, "EDUCHAIN_GROQ_API_KEY")
	setString(&cfg.Groq.Model, "EDUCHAIN_GROQ_MODEL")
	setString(&cfg.Groq.BaseURL, "EDUCHAIN_GROQ_BASE_URL")

	setString(&cfg.OpenAI.APIKey, "EDUCHAIN_OPENAI_API_KEY")
	setString(&cfg.OpenAI.Model, "EDUCHAIN_OPENAI_MODEL")
	setString(&cfg.OpenAI.BaseURL, "EDUCHAIN_OPENAI_BASE_URL")

	setString(&cfg.OpenRouter.APIKey, "EDUCHAIN_OPENROUTER_API_KEY")
	setString(&cfg.OpenRouter.Model, "EDUCHAIN_OPENROUTER_MODEL")

	setString(&cfg.Anthropic.APIKey, "EDUCHAIN_ANTHROPIC_API_KEY")
	setString(&cfg.Anthropic.Model, "EDUCHAIN_ANTHROPIC_MODEL")

	setString(&cfg.Gemini.APIKey, "EDUCHAIN_GEMINI_API_KEY")
	setString(&cfg.Gemini.Model, "EDUCHAIN_GEMINI_MODEL")

	setString(&cfg.Ollama.ServerURL, "EDUCHAIN_OLLAMA_URL")
	setString(&cfg.Ollama.Model, "EDUCHAIN_OLLAMA_MODEL")

	if v := os.Getenv("EDUCHAIN_LLM_MAX_ATTEMPTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Retry.MaxAttempts = n
		}
	}
	if v := os.Getenv("EDUCHAIN_LLM_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Timeout = d
		}
	}

	return cfg
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// vendorKeys lists the standard API key variables in discovery priority.
var vendorKeys = []struct {
	provider string
	env      string
	key      func(*Config) *string
}{
	{"groq", "GROQ_API_KEY", func(c *Config) *string { return &c.Groq.APIKey }},
	{"gemini", "GEMINI_API_KEY", func(c *Config) *string { return &c.Gemini.APIKey }},
	{"openai", "OPENAI_API_KEY", func(c *Config) *string { return &c.OpenAI.APIKey }},
	{"anthropic", "ANTHROPIC_API_KEY", func(c *Config) *string { return &c.Anthropic.APIKey }},
	{"openrouter", "OPENROUTER_API_KEY", func(c *Config) *string { return &c.OpenRouter.APIKey }},
}

// DiscoverConfig reads every standard API key variable into its provider's
// section and selects the first provider (Groq, Gemini, OpenAI, Anthropic,
// OpenRouter) whose key is set. Returns (Config{}, false) if none is set.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()
	found := false
	for _, v := range vendorKeys {
		k := os.Getenv(v.env)
		if k == "" {
			continue
		}
		*v.key(&cfg) = k
		if !found {
			cfg.Provider = v.provider
			found = true
		}
	}
	if !found {
		return Config{}, false
	}
	return cfg, true
}

// SetModel overrides the model of the selected provider.
func (c *Config) SetModel(model string) {
	if model == "" {
		return
	}
	switch c.Provider {
	case "groq":
		c.Groq.Model = model
	case "openai":
		c.OpenAI.Model = model
	case "openrouter":
		c.OpenRouter.Model = model
	case "anthropic":
		c.Anthropic.Model = model
	case "gemini":
		c.Gemini.Model = model
	case "ollama":
		c.Ollama.Model = model
	}
}

// Validate checks that the selected provider has its required API key set.
func (c Config) Validate() error {
	switch c.Provider {
	case "groq":
		if c.Groq.APIKey == "" {
			return fmt.Errorf("GROQ_API_KEY is required for the groq provider")
		}
	case "openai":
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required for the openai provider")
		}
	case "openrouter":
		if c.OpenRouter.APIKey == "" {
			return fmt.Errorf("OPENROUTER_API_KEY is required for the openrouter provider")
		}
	case "anthropic":
		if c.Anthropic.APIKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY is required for the anthropic provider")
		}
	case "gemini":
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY is required for the gemini provider")
		}
	case "ollama", "mock":
		// No API key needed.
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	return nil
}

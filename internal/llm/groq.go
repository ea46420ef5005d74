package llm

import "fmt"

const defaultGroqBaseURL = "https://api.groq.com/openai/v1"

// NewGroqProvider creates a provider targeting Groq's OpenAI-compatible
// chat completions endpoint.
func NewGroqProvider(cfg GroqConfig) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("groq API key is required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultGroqBaseURL
	}
	model := cfg.Model
	if model == "" {
		model = "llama3-70b-8192"
	}

	return newOpenAIProviderRaw(OpenAIConfig{
		APIKey:  cfg.APIKey,
		Model:   model,
		BaseURL: baseURL,
	})
}

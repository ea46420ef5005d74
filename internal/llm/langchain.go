package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
)

// LangChainProvider adapts any langchaingo llms.Model to Provider.
// It backs the local Ollama provider.
type LangChainProvider struct {
	model   llms.Model
	modelID string
}

// NewLangChainProvider wraps an existing langchaingo model.
func NewLangChainProvider(model llms.Model, modelID string) *LangChainProvider {
	return &LangChainProvider{model: model, modelID: modelID}
}

// NewOllamaProvider creates a provider talking to a local Ollama server.
func NewOllamaProvider(cfg OllamaConfig) (*LangChainProvider, error) {
	if cfg.Model == "" {
		return nil, fmt.Errorf("ollama model is required")
	}

	opts := []ollama.Option{ollama.WithModel(cfg.Model)}
	if cfg.ServerURL != "" {
		opts = append(opts, ollama.WithServerURL(cfg.ServerURL))
	}

	m, err := ollama.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("create ollama client: %w", err)
	}
	return NewLangChainProvider(m, cfg.Model), nil
}

func (p *LangChainProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	var messages []llms.MessageContent
	if req.System != "" {
		messages = append(messages, llms.TextParts(llms.ChatMessageTypeSystem, req.System))
	}
	for _, m := range req.Messages {
		role := llms.ChatMessageTypeHuman
		if m.Role == RoleAssistant {
			role = llms.ChatMessageTypeAI
		}
		messages = append(messages, llms.TextParts(role, m.Content))
	}

	opts := []llms.CallOption{llms.WithTemperature(req.Temperature)}
	if req.MaxTokens > 0 {
		opts = append(opts, llms.WithMaxTokens(req.MaxTokens))
	}
	if req.JSONMode || req.Schema != nil {
		opts = append(opts, llms.WithJSONMode())
	}

	resp, err := p.model.GenerateContent(ctx, messages, opts...)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, &ErrProviderUnavailable{Err: err}
	}
	if resp == nil || len(resp.Choices) == 0 {
		return nil, &ErrInvalidResponse{
			Err: fmt.Errorf("no choices in langchain response"),
		}
	}

	choice := resp.Choices[0]
	usage := Usage{
		InputTokens:  intInfo(choice.GenerationInfo, "PromptTokens"),
		OutputTokens: intInfo(choice.GenerationInfo, "CompletionTokens"),
	}
	usage.TotalTokens = intInfo(choice.GenerationInfo, "TotalTokens")
	if usage.TotalTokens == 0 {
		usage.TotalTokens = usage.InputTokens + usage.OutputTokens
	}

	stop := "end"
	if choice.StopReason == "length" || choice.StopReason == "max_tokens" {
		stop = "max_tokens"
	}

	return &Response{
		Text:       choice.Content,
		Usage:      usage,
		Model:      p.modelID,
		StopReason: stop,
	}, nil
}

func (p *LangChainProvider) ModelID() string {
	return p.modelID
}

// intInfo reads a token count from GenerationInfo, whose value types vary
// by backend.
func intInfo(info map[string]any, key string) int {
	switch v := info[key].(type) {
	case int:
		return v
	case int32:
		return int(v)
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}

// Package generator turns a content request into a Result with one round
// trip to an inference endpoint.
package generator

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/shahil5z/QuizAndLessonPlanner/internal/content"
	"github.com/shahil5z/QuizAndLessonPlanner/internal/contract"
	"github.com/shahil5z/QuizAndLessonPlanner/internal/llm"
	"github.com/shahil5z/QuizAndLessonPlanner/internal/logging"
)

// Generator builds a prompt for a request, sends it once, and classifies the
// reply. It holds no mutable state and is safe for concurrent use when its
// provider is.
type Generator struct {
	provider llm.Provider
	config   Config
	logger   *logging.Logger
}

// New creates a Generator. A nil logger discards output.
func New(provider llm.Provider, cfg Config, logger *logging.Logger) *Generator {
	if logger == nil {
		logger = logging.Nop()
	}
	if cfg.MaxQuestions <= 0 {
		cfg.MaxQuestions = content.MaxQuestionsUI
	}
	return &Generator{provider: provider, config: cfg, logger: logger}
}

// ModelID returns the model the underlying provider is configured for.
func (g *Generator) ModelID() string {
	return g.provider.ModelID()
}

// Generate produces exactly one of Success, MalformedFallback or Failure.
// It never retries; retry policy, if any, belongs to the provider chain.
func (g *Generator) Generate(ctx context.Context, req content.Request) Result {
	requestID := uuid.NewString()
	log := g.logger.With("request_id", requestID, "kind", string(req.Kind))

	if err := req.Validate(g.config.MaxQuestions); err != nil {
		log.Warn("rejected generation request", "error", err)
		return Failure{Kind: req.Kind, Message: err.Error(), Err: err}
	}

	c, ok := contract.For(req.Kind)
	if !ok {
		err := fmt.Errorf("no contract for content kind %q", req.Kind)
		return Failure{Kind: req.Kind, Message: err.Error(), Err: err}
	}

	ctx = llm.WithPurpose(ctx, string(req.Kind))
	ctx = llm.WithRequestID(ctx, requestID)

	llmReq := llm.Request{
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildPrompt(req, c)},
		},
		JSONMode:    true,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.temperature(req.Kind),
	}
	if g.config.NativeSchema {
		llmReq.Schema = c.Schema
	}

	log.Debug("generating", "topic", req.Topic, "model", g.provider.ModelID())

	resp, err := g.provider.Generate(ctx, llmReq)
	if err != nil {
		log.Error("error generating content", "error", err)
		return Failure{Kind: req.Kind, Message: err.Error(), Err: err}
	}

	body := stripCodeFence(resp.Text)
	if !json.Valid([]byte(body)) {
		log.Warn("failed to parse JSON response, returning raw content",
			"stop_reason", resp.StopReason,
			"raw_length", len(resp.Text),
		)
		return MalformedFallback{Kind: req.Kind, RawText: resp.Text}
	}
	payload := json.RawMessage(body)

	if verr := g.validate(req, payload); verr != nil {
		if g.config.Validation == ValidationStrict {
			log.Error("generated content failed validation", "validator", verr.Validator, "error", verr.Message)
			return Failure{Kind: req.Kind, Message: verr.Error(), Err: verr}
		}
		log.Warn("generated content failed validation", "validator", verr.Validator, "error", verr.Message)
	}

	return Success{Kind: req.Kind, Payload: payload}
}

func (g *Generator) validate(req content.Request, payload json.RawMessage) *ValidationError {
	if g.config.Validation == ValidationOff || g.config.Validation == "" {
		return nil
	}
	for _, v := range g.config.Validators {
		if verr := v.Validate(req, payload); verr != nil {
			return verr
		}
	}
	return nil
}

// stripCodeFence trims whitespace and a single surrounding Markdown code
// fence (``` or ```json). Nothing else about the text is changed.
func stripCodeFence(text string) string {
	s := strings.TrimSpace(text)
	if !strings.HasPrefix(s, "```") || !strings.HasSuffix(s, "```") || len(s) < 6 {
		return s
	}
	inner := strings.TrimSuffix(s[3:], "```")
	// Drop the info string on the opening line, e.g. "json".
	if nl := strings.IndexByte(inner, '\n'); nl >= 0 {
		if info := strings.TrimSpace(inner[:nl]); !strings.ContainsAny(info, "{[\"") {
			inner = inner[nl+1:]
		}
	}
	return strings.TrimSpace(inner)
}

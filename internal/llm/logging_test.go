package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/shahil5z/QuizAndLessonPlanner/internal/logging"
	"github.com/shahil5z/QuizAndLessonPlanner/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type recordingRepo struct {
	store.EventRepo
	events []store.LLMRequestEventData
	err    error
}

func (r *recordingRepo) AppendLLMRequest(_ context.Context, data store.LLMRequestEventData) error {
	r.events = append(r.events, data)
	return r.err
}

func TestLoggingProvider_RecordsSuccess(t *testing.T) {
	repo := &recordingRepo{}
	core, logs := observer.New(zap.DebugLevel)
	mock := NewMockProvider(MockResponse{Text: `{"ok":true}`, Usage: Usage{InputTokens: 3, OutputTokens: 4}})
	p := WithLogging(mock, "groq", repo, logging.FromZap(zap.New(core)))

	ctx := WithRequestID(WithPurpose(context.Background(), "quiz"), "req-42")
	resp, err := p.Generate(ctx, Request{
		Messages: []Message{{Role: RoleUser, Content: "prompt"}},
		JSONMode: true,
	})
	require.NoError(t, err)
	assert.Equal(t, `{"ok":true}`, resp.Text)

	require.Len(t, repo.events, 1)
	e := repo.events[0]
	assert.Equal(t, "req-42", e.RequestID)
	assert.Equal(t, "groq", e.Provider)
	assert.Equal(t, "mock", e.Model)
	assert.Equal(t, "quiz", e.Purpose)
	assert.True(t, e.Success)
	assert.Equal(t, 3, e.InputTokens)
	assert.Equal(t, `{"ok":true}`, e.ResponseBody)
	assert.Contains(t, e.RequestBody, "[user]\nprompt")
	assert.Contains(t, e.RequestBody, "json_object")

	require.Equal(t, 1, logs.FilterMessage("llm request").Len())
	assert.Equal(t, "req-42", logs.All()[0].ContextMap()["request_id"])
}

func TestLoggingProvider_RecordsFailure(t *testing.T) {
	repo := &recordingRepo{}
	mock := NewMockProvider(MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}})
	p := WithLogging(mock, "groq", repo, nil)

	_, err := p.Generate(context.Background(), Request{})
	require.Error(t, err)
	require.Len(t, repo.events, 1)
	assert.False(t, repo.events[0].Success)
	assert.Contains(t, repo.events[0].ErrorMessage, "down")
}

func TestLoggingProvider_LedgerFailureDoesNotFailRequest(t *testing.T) {
	repo := &recordingRepo{err: errors.New("disk full")}
	core, logs := observer.New(zap.DebugLevel)
	p := WithLogging(NewMockProvider(MockResponse{Text: "{}"}), "groq", repo, logging.FromZap(zap.New(core)))

	_, err := p.Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, 1, logs.FilterMessage("failed to record llm request").Len())
}

func TestLoggingProvider_NilRepo(t *testing.T) {
	p := WithLogging(NewMockProvider(MockResponse{Text: "{}"}), "mock", nil, nil)
	_, err := p.Generate(context.Background(), Request{})
	require.NoError(t, err)
}

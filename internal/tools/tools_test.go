package tools

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shahil5z/QuizAndLessonPlanner/internal/content"
	"github.com/shahil5z/QuizAndLessonPlanner/internal/generator"
	"github.com/shahil5z/QuizAndLessonPlanner/internal/llm"
	"github.com/shahil5z/QuizAndLessonPlanner/internal/registry"
)

// recordingGenerator returns a fixed result and remembers the request.
type recordingGenerator struct {
	result generator.Result
	reqs   []content.Request
}

func (g *recordingGenerator) Generate(_ context.Context, req content.Request) generator.Result {
	g.reqs = append(g.reqs, req)
	return g.result
}

func TestNewRegistry_Describe(t *testing.T) {
	reg, err := NewRegistry(&recordingGenerator{})
	require.NoError(t, err)

	assert.Equal(t, "EduChain Server", reg.Name())
	assert.Equal(t, []string{"generate_mcqs"}, reg.Names(registry.KindTool))
	assert.Equal(t, []string{"lesson_plans"}, reg.Names(registry.KindResource))

	d, ok := reg.Lookup("lesson_plans")
	require.True(t, ok)
	data, err := json.Marshal(d.Parameters)
	require.NoError(t, err)
	var schema map[string]any
	require.NoError(t, json.Unmarshal(data, &schema))
	level := schema["properties"].(map[string]any)["level"].(map[string]any)
	assert.Equal(t, []any{"beginner", "intermediate", "advanced"}, level["enum"])
	assert.Equal(t, "beginner", level["default"])
}

func TestGenerateMCQs_Defaults(t *testing.T) {
	payload := json.RawMessage(`{"topic": "Fractions", "questions": []}`)
	gen := &recordingGenerator{result: generator.Success{Kind: content.KindQuiz, Payload: payload}}
	reg, err := NewRegistry(gen)
	require.NoError(t, err)

	out, err := reg.Dispatch(context.Background(), "generate_mcqs", json.RawMessage(`{"topic": "Fractions"}`))
	require.NoError(t, err)
	assert.Equal(t, payload, out)

	require.Len(t, gen.reqs, 1)
	assert.Equal(t, content.KindQuiz, gen.reqs[0].Kind)
	assert.Equal(t, 5, gen.reqs[0].Options.NumQuestions)
}

func TestGenerateMCQs_Bounds(t *testing.T) {
	gen := &recordingGenerator{result: generator.Success{Kind: content.KindQuiz, Payload: json.RawMessage(`{}`)}}
	reg, err := NewRegistry(gen)
	require.NoError(t, err)

	for _, args := range []string{
		`{"topic": "Fractions", "num_questions": 11}`,
		`{"topic": "Fractions", "num_questions": 0}`,
		`{"topic": "   "}`,
		`{"num_questions": 3}`,
	} {
		out, err := reg.Dispatch(context.Background(), "generate_mcqs", json.RawMessage(args))
		require.NoError(t, err)
		m, ok := out.(map[string]any)
		require.True(t, ok, "args %s: got %T", args, out)
		assert.Equal(t, 400, m["status"], "args %s", args)
	}
	assert.Empty(t, gen.reqs, "invalid arguments must not reach the generator")

	_, err = reg.Dispatch(context.Background(), "generate_mcqs", json.RawMessage(`{"topic": "Fractions", "num_questions": 10}`))
	require.NoError(t, err)
	assert.Len(t, gen.reqs, 1)
}

func TestLessonPlans_Defaults(t *testing.T) {
	gen := &recordingGenerator{result: generator.MalformedFallback{Kind: content.KindLessonPlan, RawText: "not json"}}
	reg, err := NewRegistry(gen)
	require.NoError(t, err)

	out, err := reg.Dispatch(context.Background(), "lesson_plans", json.RawMessage(`{"topic": "Photosynthesis"}`))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"content": "not json"}, out)

	require.Len(t, gen.reqs, 1)
	assert.Equal(t, "60 minutes", gen.reqs[0].Options.Duration)
	assert.Equal(t, content.LevelBeginner, gen.reqs[0].Options.Level)
}

func TestLessonPlans_LevelEnum(t *testing.T) {
	gen := &recordingGenerator{}
	reg, err := NewRegistry(gen)
	require.NoError(t, err)

	out, err := reg.Dispatch(context.Background(), "lesson_plans", json.RawMessage(`{"topic": "Photosynthesis", "level": "expert"}`))
	require.NoError(t, err)
	assert.Equal(t, 400, out.(map[string]any)["status"])
	assert.Empty(t, gen.reqs)
}

func TestDispatch_ThroughGenerator(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrRateLimit{}})
	reg, err := NewRegistry(generator.New(mock, generator.DefaultConfig(), nil))
	require.NoError(t, err)

	out, err := reg.Dispatch(context.Background(), "generate_mcqs", json.RawMessage(`{"topic": "Fractions", "num_questions": 2}`))
	require.NoError(t, err)
	m := out.(map[string]any)
	assert.Equal(t, generator.FailureStatus, m["status"])
	assert.Contains(t, m["error"], "rate limited")

	req, ok := mock.LastRequest()
	require.True(t, ok)
	assert.Contains(t, req.Messages[0].Content, "Generate 2 high-quality multiple-choice questions about Fractions.")
}

package web

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shahil5z/QuizAndLessonPlanner/internal/content"
	"github.com/shahil5z/QuizAndLessonPlanner/internal/generator"
	"github.com/shahil5z/QuizAndLessonPlanner/internal/tools"
)

type stubGenerator struct {
	result generator.Result
	reqs   []content.Request
}

func (g *stubGenerator) Generate(_ context.Context, req content.Request) generator.Result {
	g.reqs = append(g.reqs, req)
	return g.result
}

const quizPayload = `{"topic": "Fractions", "questions": [
	{"question": "What is 1/2 of 4?", "options": ["1", "2", "3", "4"], "correct_answer": "2", "explanation": "Half of four is two."}
]}`

const lessonPayload = `{"topic": "Thermodynamics", "duration": "90 mins",
	"objectives": ["Define entropy"],
	"sections": [{"title": "Warm-up", "content": "Hot and cold.", "duration": "10 mins", "activities": ["Touch test"]}],
	"assessment": "Exit ticket"}`

func newTestServer(t *testing.T, gen *stubGenerator) *httptest.Server {
	t.Helper()
	reg, err := tools.NewRegistry(gen)
	require.NoError(t, err)
	srv, err := New(gen, reg, Options{}, nil)
	require.NoError(t, err)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(data)
}

func TestIndex(t *testing.T) {
	ts := newTestServer(t, &stubGenerator{})

	resp, err := http.Get(ts.URL + "/")
	require.NoError(t, err)
	body := readBody(t, resp)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "✏️ Quiz Generator")
	assert.Contains(t, body, "📖 Lesson Planner")
	assert.Contains(t, body, `<option value="5" selected>5</option>`)
	assert.Contains(t, body, `<option value="15" >15</option>`)
	assert.NotContains(t, body, `<option value="16"`)
	assert.Contains(t, body, `<option value="60 mins" selected>60 mins</option>`)
	assert.Contains(t, body, `<option value="2 hours" >2 hours</option>`)
}

func TestQuiz_Success(t *testing.T) {
	gen := &stubGenerator{result: generator.Success{Kind: content.KindQuiz, Payload: json.RawMessage(quizPayload)}}
	ts := newTestServer(t, gen)

	resp, err := http.PostForm(ts.URL+"/quiz", url.Values{"topic": {"Fractions"}, "num_questions": {"3"}})
	require.NoError(t, err)
	body := readBody(t, resp)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "📝 Quiz: Fractions")
	assert.Contains(t, body, "Show Answer")
	require.Len(t, gen.reqs, 1)
	assert.Equal(t, 3, gen.reqs[0].Options.NumQuestions)
}

func TestQuiz_Malformed(t *testing.T) {
	gen := &stubGenerator{result: generator.MalformedFallback{Kind: content.KindQuiz, RawText: "Sorry, I can't help."}}
	ts := newTestServer(t, gen)

	resp, err := http.PostForm(ts.URL+"/quiz", url.Values{"topic": {"Fractions"}, "num_questions": {"5"}})
	require.NoError(t, err)
	body := readBody(t, resp)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "did not return valid JSON")
	assert.Contains(t, body, "Sorry, I can&#39;t help.")
}

func TestQuiz_Failure(t *testing.T) {
	gen := &stubGenerator{result: generator.Failure{Kind: content.KindQuiz, Message: "LLM provider unavailable"}}
	ts := newTestServer(t, gen)

	resp, err := http.PostForm(ts.URL+"/quiz", url.Values{"topic": {"Fractions"}, "num_questions": {"5"}})
	require.NoError(t, err)
	body := readBody(t, resp)

	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.Contains(t, body, "Generation failed: LLM provider unavailable")
}

func TestQuiz_BadInput(t *testing.T) {
	gen := &stubGenerator{}
	ts := newTestServer(t, gen)

	for _, form := range []url.Values{
		{"topic": {""}, "num_questions": {"5"}},
		{"topic": {"Fractions"}, "num_questions": {"sixteen"}},
		{"topic": {"Fractions"}, "num_questions": {"16"}},
	} {
		resp, err := http.PostForm(ts.URL+"/quiz", form)
		require.NoError(t, err)
		readBody(t, resp)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "form %v", form)
	}
	assert.Empty(t, gen.reqs)
}

func TestLesson_Success(t *testing.T) {
	gen := &stubGenerator{result: generator.Success{Kind: content.KindLessonPlan, Payload: json.RawMessage(lessonPayload)}}
	ts := newTestServer(t, gen)

	resp, err := http.PostForm(ts.URL+"/lesson", url.Values{"topic": {"Thermodynamics"}, "duration": {"90 mins"}})
	require.NoError(t, err)
	body := readBody(t, resp)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "📚 Lesson Plan: Thermodynamics")
	assert.Contains(t, body, "Warm-up (10 mins)")
	require.Len(t, gen.reqs, 1)
	assert.Equal(t, "90 mins", gen.reqs[0].Options.Duration)
	assert.Equal(t, content.LevelBeginner, gen.reqs[0].Options.Level)
}

func TestLesson_BadDuration(t *testing.T) {
	gen := &stubGenerator{}
	ts := newTestServer(t, gen)

	resp, err := http.PostForm(ts.URL+"/lesson", url.Values{"topic": {"Thermodynamics"}, "duration": {"3 weeks"}})
	require.NoError(t, err)
	readBody(t, resp)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Empty(t, gen.reqs)
}

func TestLesson_UndecodablePayloadShownRaw(t *testing.T) {
	gen := &stubGenerator{result: generator.Success{Kind: content.KindLessonPlan, Payload: json.RawMessage(`[1, 2, 3]`)}}
	ts := newTestServer(t, gen)

	resp, err := http.PostForm(ts.URL+"/lesson", url.Values{"topic": {"Thermodynamics"}})
	require.NoError(t, err)
	body := readBody(t, resp)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "[1, 2, 3]")
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t, &stubGenerator{})

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status": "healthy"}`, readBody(t, resp))
}

func TestAPI_ListTools(t *testing.T) {
	ts := newTestServer(t, &stubGenerator{})

	resp, err := http.Get(ts.URL + "/api/tools")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got toolsResponse
	require.NoError(t, json.Unmarshal([]byte(readBody(t, resp)), &got))
	assert.Equal(t, "EduChain Server", got.Name)
	require.Len(t, got.Capabilities, 2)
	assert.Equal(t, "generate_mcqs", got.Capabilities[0].Name)
	assert.Equal(t, "lesson_plans", got.Capabilities[1].Name)
}

func TestAPI_CallTool(t *testing.T) {
	gen := &stubGenerator{result: generator.Success{Kind: content.KindQuiz, Payload: json.RawMessage(quizPayload)}}
	ts := newTestServer(t, gen)

	resp, err := http.Post(ts.URL+"/api/tools/generate_mcqs", "application/json", strings.NewReader(`{"topic": "Fractions"}`))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, quizPayload, readBody(t, resp))

	resp, err = http.Post(ts.URL+"/api/tools/generate_mcqs", "application/json", strings.NewReader(`{"topic": "Fractions", "num_questions": 11}`))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	readBody(t, resp)

	resp, err = http.Post(ts.URL+"/api/tools/lesson_plan", "application/json", strings.NewReader(`{}`))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "lesson_plans")
}

func TestAPI_CallToolFailure(t *testing.T) {
	gen := &stubGenerator{result: generator.Failure{Kind: content.KindQuiz, Message: "boom"}}
	ts := newTestServer(t, gen)

	resp, err := http.Post(ts.URL+"/api/tools/generate_mcqs", "application/json", strings.NewReader(`{"topic": "Fractions"}`))
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.JSONEq(t, `{"error": "boom", "status": 500}`, readBody(t, resp))
}

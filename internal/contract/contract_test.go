package contract

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shahil5z/QuizAndLessonPlanner/internal/content"
	"github.com/shahil5z/QuizAndLessonPlanner/internal/llm"
)

func TestFor(t *testing.T) {
	c, ok := For(content.KindQuiz)
	require.True(t, ok)
	assert.Equal(t, "quiz", c.Name)
	assert.Contains(t, c.Shape, `"correct_answer"`)

	c, ok = For(content.KindLessonPlan)
	require.True(t, ok)
	assert.Contains(t, c.Shape, `"objectives"`)

	_, ok = For("essay")
	assert.False(t, ok)
}

func TestAllAndKinds(t *testing.T) {
	assert.Len(t, All(), 2)
	assert.ElementsMatch(t, []content.Kind{content.KindQuiz, content.KindLessonPlan}, Kinds())
}

func TestCompatible(t *testing.T) {
	c, _ := For(content.KindQuiz)
	assert.True(t, c.Compatible("v1.2.0"))
	assert.False(t, c.Compatible("v2.0.0"))
	assert.False(t, c.Compatible("1.0"))
}

func TestShapesAreValidJSON(t *testing.T) {
	for _, c := range All() {
		var v any
		assert.NoError(t, json.Unmarshal([]byte(c.Shape), &v), c.Name)
	}
}

func TestQuizSchema(t *testing.T) {
	valid := `{"topic":"Fractions","questions":[{"question":"q","options":["a","b","c","d"],"correct_answer":"a","explanation":"e"}]}`
	assert.NoError(t, llm.Validate(QuizSchema, []byte(valid)))

	threeOptions := `{"topic":"Fractions","questions":[{"question":"q","options":["a","b","c"],"correct_answer":"a","explanation":"e"}]}`
	assert.Error(t, llm.Validate(QuizSchema, []byte(threeOptions)))

	noQuestions := `{"topic":"Fractions","questions":[]}`
	assert.Error(t, llm.Validate(QuizSchema, []byte(noQuestions)))

	badDifficulty := `{"topic":"F","questions":[{"question":"q","options":["a","b","c","d"],"correct_answer":"a","explanation":"e","difficulty":"brutal"}]}`
	assert.Error(t, llm.Validate(QuizSchema, []byte(badDifficulty)))
}

func TestLessonPlanSchema(t *testing.T) {
	base := `{"topic":"Newton's Laws","duration":"45 minutes","objectives":["o"],"sections":[{"title":"t","content":"c","duration":"10 minutes","activities":["a"]}],"assessment":%s}`

	for _, assessment := range []string{`"Exit ticket"`, `{"type":"quiz","description":"d"}`} {
		raw := []byte(fmt.Sprintf(base, assessment))
		assert.NoError(t, llm.Validate(LessonPlanSchema, raw), assessment)
	}
	assert.Error(t, llm.Validate(LessonPlanSchema, []byte(fmt.Sprintf(base, `42`))))
	assert.Error(t, llm.Validate(LessonPlanSchema, []byte(`{"topic":"x","duration":"y","objectives":[],"sections":[],"assessment":""}`)))
}

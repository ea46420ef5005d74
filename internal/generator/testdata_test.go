package generator

import (
	"encoding/json"
	"fmt"
	"strings"
)

func quizJSON(topic string, n int) string {
	qs := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		qs = append(qs, fmt.Sprintf(`{
			"question": "Question %d about %s?",
			"options": ["A%d", "B%d", "C%d", "D%d"],
			"correct_answer": "B%d",
			"explanation": "B%d is correct."
		}`, i, topic, i, i, i, i, i, i))
	}
	return fmt.Sprintf(`{"topic": %q, "questions": [%s]}`, topic, strings.Join(qs, ","))
}

func lessonJSON(topic, duration string) string {
	return fmt.Sprintf(`{
		"topic": %q,
		"duration": %q,
		"objectives": ["State the first law", "Apply the second law"],
		"sections": [
			{"title": "Introduction", "content": "Overview", "duration": "10 minutes", "activities": ["Discussion"]},
			{"title": "Practice", "content": "Worked problems", "duration": "35 minutes"}
		],
		"assessment": "Short written quiz"
	}`, topic, duration)
}

func mustRaw(s string) json.RawMessage {
	if !json.Valid([]byte(s)) {
		panic("invalid fixture: " + s)
	}
	return json.RawMessage(s)
}

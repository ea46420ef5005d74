package generator

import (
	"fmt"
	"strings"

	"github.com/shahil5z/QuizAndLessonPlanner/internal/content"
	"github.com/shahil5z/QuizAndLessonPlanner/internal/contract"
)

const quizInstructions = `Requirements:
- Questions should test different cognitive levels
- Include 4 options per question
- Mark the correct answer; correct_answer must repeat the text of one option exactly
- Provide a one-sentence explanation for each answer`

const lessonInstructions = `Include:
- 3-5 learning objectives
- 3-5 sections with titles and durations that add up to the total duration
- Key content points for each section
- Hands-on activities where appropriate
- An assessment method`

// buildPrompt renders the single user message sent for req.
func buildPrompt(req content.Request, c contract.Contract) string {
	var b strings.Builder

	switch req.Kind {
	case content.KindQuiz:
		fmt.Fprintf(&b, "Generate %d high-quality multiple-choice questions about %s.\n\n", req.Options.NumQuestions, req.Topic)
		b.WriteString(quizInstructions)
	case content.KindLessonPlan:
		fmt.Fprintf(&b, "Create a %s lesson plan about %s for %s learners.\n\n", req.Options.Duration, req.Topic, req.Options.Level)
		b.WriteString(lessonInstructions)
	}

	b.WriteString("\n\nReturn only JSON with this exact structure:\n")
	b.WriteString(c.Shape)
	return b.String()
}

package generator

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/shahil5z/QuizAndLessonPlanner/internal/content"
)

// optionsPerQuestion is the number of options every question must carry.
const optionsPerQuestion = 4

// QuizStructureValidator checks quiz invariants the schema cannot express:
// the correct answer is one of the options, and the question count matches
// the request.
type QuizStructureValidator struct{}

func (v *QuizStructureValidator) Name() string { return "quiz-structure" }

func (v *QuizStructureValidator) Validate(req content.Request, payload json.RawMessage) *ValidationError {
	if req.Kind != content.KindQuiz {
		return nil
	}
	quiz, err := content.DecodeQuiz(payload)
	if err != nil {
		return &ValidationError{Validator: v.Name(), Message: err.Error()}
	}
	if len(quiz.Questions) == 0 {
		return &ValidationError{Validator: v.Name(), Message: "questions is empty"}
	}
	if want := req.Options.NumQuestions; want > 0 && len(quiz.Questions) != want {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("expected %d questions, got %d", want, len(quiz.Questions)),
		}
	}
	for i, q := range quiz.Questions {
		n := i + 1
		if strings.TrimSpace(q.Question) == "" {
			return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf("question %d has no text", n)}
		}
		if len(q.Options) != optionsPerQuestion {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("question %d has %d options, want %d", n, len(q.Options), optionsPerQuestion),
			}
		}
		if len(lo.Uniq(q.Options)) != len(q.Options) {
			return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf("question %d repeats an option", n)}
		}
		if !lo.Contains(q.Options, q.CorrectAnswer) {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("question %d: correct answer %q is not one of the options", n, q.CorrectAnswer),
			}
		}
	}
	return nil
}

// LessonStructureValidator checks that a lesson plan has objectives and
// titled sections.
type LessonStructureValidator struct{}

func (v *LessonStructureValidator) Name() string { return "lesson-structure" }

func (v *LessonStructureValidator) Validate(req content.Request, payload json.RawMessage) *ValidationError {
	if req.Kind != content.KindLessonPlan {
		return nil
	}
	plan, err := content.DecodeLessonPlan(payload)
	if err != nil {
		return &ValidationError{Validator: v.Name(), Message: err.Error()}
	}
	if len(plan.Objectives) == 0 {
		return &ValidationError{Validator: v.Name(), Message: "objectives is empty"}
	}
	if len(plan.Sections) == 0 {
		return &ValidationError{Validator: v.Name(), Message: "sections is empty"}
	}
	untitled := lo.CountBy(plan.Sections, func(s content.Section) bool {
		return strings.TrimSpace(s.Title) == ""
	})
	if untitled > 0 {
		return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf("%d section(s) have no title", untitled)}
	}
	if plan.Assessment.IsZero() {
		return &ValidationError{Validator: v.Name(), Message: "assessment is missing"}
	}
	return nil
}

// Package content defines generation requests and the quiz and lesson plan
// payloads the generator produces.
package content

import (
	"fmt"
	"strings"
)

// Kind is a supported generation target.
type Kind string

const (
	KindQuiz       Kind = "quiz"
	KindLessonPlan Kind = "lesson_plan"
)

// Valid reports whether k is a supported kind.
func (k Kind) Valid() bool {
	return k == KindQuiz || k == KindLessonPlan
}

// ParseKind converts a user-supplied name into a Kind. "lesson" and
// "lesson-plan" are accepted as spellings of lesson_plan.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "quiz", "mcq", "mcqs":
		return KindQuiz, nil
	case "lesson_plan", "lesson-plan", "lesson":
		return KindLessonPlan, nil
	default:
		return "", fmt.Errorf("unknown content kind %q", s)
	}
}

// Level is the target audience of a lesson plan.
type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

// Levels lists the accepted audience levels in ascending order.
var Levels = []Level{LevelBeginner, LevelIntermediate, LevelAdvanced}

// Valid reports whether l is one of Levels.
func (l Level) Valid() bool {
	switch l {
	case LevelBeginner, LevelIntermediate, LevelAdvanced:
		return true
	}
	return false
}

// Difficulty is the self-assessed difficulty of a quiz question.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Question count bounds. The web UI and CLI offer up to MaxQuestionsUI
// questions while the capability registry advertises MaxQuestionsTool.
const (
	MinQuestions        = 1
	MaxQuestionsUI      = 15
	MaxQuestionsTool    = 10
	DefaultNumQuestions = 5
)

const (
	DefaultDuration = "60 minutes"
	DefaultLevel    = LevelBeginner
)

// Options carries the kind-specific parameters of a request.
type Options struct {
	// NumQuestions applies to quizzes.
	NumQuestions int

	// Duration and Level apply to lesson plans. Duration is a free-form
	// label such as "45 minutes" or "2 hours".
	Duration string
	Level    Level
}

// Request is one generation request. It is built per user action, passed
// by value and never reused.
type Request struct {
	Kind    Kind
	Topic   string
	Options Options
}

// NewQuizRequest builds a quiz request. A non-positive n selects
// DefaultNumQuestions.
func NewQuizRequest(topic string, n int) Request {
	if n <= 0 {
		n = DefaultNumQuestions
	}
	return Request{
		Kind:    KindQuiz,
		Topic:   strings.TrimSpace(topic),
		Options: Options{NumQuestions: n},
	}
}

// NewLessonPlanRequest builds a lesson plan request, filling in the default
// duration and level when they are empty.
func NewLessonPlanRequest(topic, duration string, level Level) Request {
	duration = strings.TrimSpace(duration)
	if duration == "" {
		duration = DefaultDuration
	}
	if level == "" {
		level = DefaultLevel
	}
	return Request{
		Kind:    KindLessonPlan,
		Topic:   strings.TrimSpace(topic),
		Options: Options{Duration: duration, Level: level},
	}
}

// RequestError describes why a request was rejected before generation.
type RequestError struct {
	Field   string
	Message string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// Validate checks the request against the bounds of the calling surface.
// maxQuestions is MaxQuestionsUI or MaxQuestionsTool.
func (r Request) Validate(maxQuestions int) error {
	if strings.TrimSpace(r.Topic) == "" {
		return &RequestError{Field: "topic", Message: "must not be empty"}
	}
	switch r.Kind {
	case KindQuiz:
		n := r.Options.NumQuestions
		if n < MinQuestions || n > maxQuestions {
			return &RequestError{
				Field:   "num_questions",
				Message: fmt.Sprintf("must be between %d and %d, got %d", MinQuestions, maxQuestions, n),
			}
		}
	case KindLessonPlan:
		if !r.Options.Level.Valid() {
			return &RequestError{
				Field:   "level",
				Message: fmt.Sprintf("must be one of beginner, intermediate, advanced, got %q", r.Options.Level),
			}
		}
	default:
		return &RequestError{Field: "kind", Message: fmt.Sprintf("unsupported content kind %q", r.Kind)}
	}
	return nil
}

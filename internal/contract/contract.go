// Package contract holds the fixed JSON shapes the generator asks the model
// to return, one per content kind.
package contract

import (
	"fmt"

	"github.com/samber/lo"
	"golang.org/x/mod/semver"

	"github.com/shahil5z/QuizAndLessonPlanner/internal/content"
	"github.com/shahil5z/QuizAndLessonPlanner/internal/llm"
)

// Contract describes the exact JSON shape expected back for a content kind.
type Contract struct {
	Kind    content.Kind
	Name    string
	Version string // semantic version, e.g. "v1.0.0"

	// Shape is the literal JSON example embedded in the prompt.
	Shape string

	// Schema is the machine-checkable form of Shape, used by optional
	// validation and by providers with native structured output.
	Schema *llm.Schema
}

var contracts = map[content.Kind]Contract{
	content.KindQuiz: {
		Kind:    content.KindQuiz,
		Name:    "quiz",
		Version: "v1.0.0",
		Shape:   quizShape,
		Schema:  QuizSchema,
	},
	content.KindLessonPlan: {
		Kind:    content.KindLessonPlan,
		Name:    "lesson-plan",
		Version: "v1.0.0",
		Shape:   lessonPlanShape,
		Schema:  LessonPlanSchema,
	},
}

func init() {
	for kind, c := range contracts {
		if !semver.IsValid(c.Version) {
			panic(fmt.Sprintf("contract %s: invalid version %q", kind, c.Version))
		}
	}
}

// For returns the contract for kind.
func For(kind content.Kind) (Contract, bool) {
	c, ok := contracts[kind]
	return c, ok
}

// All returns every contract ordered by kind.
func All() []Contract {
	return []Contract{contracts[content.KindLessonPlan], contracts[content.KindQuiz]}
}

// Kinds returns the kinds that have a contract.
func Kinds() []content.Kind {
	return lo.Map(All(), func(c Contract, _ int) content.Kind { return c.Kind })
}

// Compatible reports whether a payload produced under version v can be read
// by the current contract, i.e. shares its major version.
func (c Contract) Compatible(v string) bool {
	return semver.IsValid(v) && semver.Major(v) == semver.Major(c.Version)
}

const quizShape = `{
    "topic": "string",
    "questions": [
        {
            "question": "string",
            "options": ["A", "B", "C", "D"],
            "correct_answer": "string",
            "explanation": "string",
            "difficulty": "easy|medium|hard"
        }
    ]
}`

const lessonPlanShape = `{
    "topic": "string",
    "duration": "string",
    "level": "string",
    "objectives": ["string"],
    "sections": [
        {
            "title": "string",
            "content": "string",
            "duration": "string",
            "activities": ["string"],
            "materials": ["string"]
        }
    ],
    "assessment": "string",
    "resources": ["string"]
}`

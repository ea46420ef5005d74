package generator

import (
	"fmt"
	"strings"

	"github.com/shahil5z/QuizAndLessonPlanner/internal/content"
)

// ValidationMode selects what happens after a reply parses as JSON.
type ValidationMode string

const (
	// ValidationOff passes any parseable JSON through as Success.
	ValidationOff ValidationMode = "off"

	// ValidationWarn runs the validators and logs violations, but still
	// returns Success.
	ValidationWarn ValidationMode = "warn"

	// ValidationStrict turns a violation into a Failure.
	ValidationStrict ValidationMode = "strict"
)

// ParseValidationMode parses a mode name. The empty string means off.
func ParseValidationMode(s string) (ValidationMode, error) {
	switch m := ValidationMode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return ValidationOff, nil
	case ValidationOff, ValidationWarn, ValidationStrict:
		return m, nil
	default:
		return "", fmt.Errorf("unknown validation mode %q (want off, warn or strict)", s)
	}
}

// Config controls the behavior of the Generator.
type Config struct {
	// MaxQuestions bounds quiz requests. The web UI and CLI use
	// content.MaxQuestionsUI; the tool layer validates its own tighter bound
	// before the request reaches the generator.
	MaxQuestions int

	// QuizTemperature and LessonTemperature control model randomness.
	QuizTemperature   float64
	LessonTemperature float64

	// MaxTokens is the token budget for a reply. Zero leaves the
	// provider default.
	MaxTokens int

	// Validation selects the post-parse behavior.
	Validation ValidationMode

	// Validators run in order when Validation is not off. The first
	// violation stops the chain.
	Validators []Validator

	// NativeSchema also passes the contract schema to the provider, for
	// endpoints with native structured output.
	NativeSchema bool
}

// DefaultConfig returns the permissive pass-through configuration with the
// standard validator chain ready for warn or strict mode.
func DefaultConfig() Config {
	return Config{
		MaxQuestions:      content.MaxQuestionsUI,
		QuizTemperature:   0.7,
		LessonTemperature: 0.5,
		Validation:        ValidationOff,
		Validators: []Validator{
			&SchemaValidator{},
			&QuizStructureValidator{},
			&LessonStructureValidator{},
		},
	}
}

func (c Config) temperature(kind content.Kind) float64 {
	if kind == content.KindLessonPlan {
		return c.LessonTemperature
	}
	return c.QuizTemperature
}

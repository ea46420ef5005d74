package generator

import (
	"encoding/json"
	"fmt"

	"github.com/shahil5z/QuizAndLessonPlanner/internal/content"
	"github.com/shahil5z/QuizAndLessonPlanner/internal/contract"
	"github.com/shahil5z/QuizAndLessonPlanner/internal/llm"
)

// Validator checks a parsed payload against expectations the model was
// asked to meet. Implementations should be stateless and safe for
// concurrent use.
type Validator interface {
	// Name returns a short identifier for this validator, e.g. "schema".
	Name() string

	// Validate returns nil if the payload passes. Validators that do not
	// apply to req.Kind return nil.
	Validate(req content.Request, payload json.RawMessage) *ValidationError
}

// ValidationError describes why a payload failed validation.
type ValidationError struct {
	Validator string // Name of the validator that failed
	Message   string // Human-readable description of the failure
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}

// SchemaValidator checks the payload against the contract's JSON Schema.
type SchemaValidator struct{}

func (v *SchemaValidator) Name() string { return "schema" }

func (v *SchemaValidator) Validate(req content.Request, payload json.RawMessage) *ValidationError {
	c, ok := contract.For(req.Kind)
	if !ok || c.Schema == nil {
		return nil
	}
	if err := llm.Validate(c.Schema, payload); err != nil {
		return &ValidationError{Validator: v.Name(), Message: err.Error()}
	}
	return nil
}

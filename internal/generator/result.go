package generator

import (
	"encoding/json"

	"github.com/shahil5z/QuizAndLessonPlanner/internal/content"
)

// Outcome names the three terminal states of a generation.
type Outcome string

const (
	OutcomeSuccess   Outcome = "success"
	OutcomeMalformed Outcome = "malformed"
	OutcomeFailure   Outcome = "failure"
)

// Result is the outcome of one generation. It is implemented only by
// Success, MalformedFallback and Failure.
type Result interface {
	Outcome() Outcome
	ContentKind() content.Kind
	sealed()
}

// Success carries a payload that parsed as JSON. Payload holds the bytes
// exactly as the model returned them, minus surrounding whitespace and
// code fences.
type Success struct {
	Kind    content.Kind
	Payload json.RawMessage
}

// MalformedFallback carries a reply that was not valid JSON. RawText is the
// completion exactly as returned.
type MalformedFallback struct {
	Kind    content.Kind
	RawText string
}

// Failure means no usable reply was obtained.
type Failure struct {
	Kind    content.Kind
	Message string
	Err     error
}

func (Success) Outcome() Outcome           { return OutcomeSuccess }
func (MalformedFallback) Outcome() Outcome { return OutcomeMalformed }
func (Failure) Outcome() Outcome           { return OutcomeFailure }

func (r Success) ContentKind() content.Kind           { return r.Kind }
func (r MalformedFallback) ContentKind() content.Kind { return r.Kind }
func (r Failure) ContentKind() content.Kind           { return r.Kind }

func (Success) sealed()           {}
func (MalformedFallback) sealed() {}
func (Failure) sealed()           {}

func (f Failure) Error() string { return f.Message }

func (f Failure) Unwrap() error { return f.Err }

// FailureStatus is the status attached to the projection of a Failure.
const FailureStatus = 500

// Project returns the JSON-compatible form handed to tool callers and
// file writers: the payload itself, {"content": raw} for a malformed reply,
// or {"error": message, "status": 500}.
func Project(r Result) any {
	switch r := r.(type) {
	case Success:
		return r.Payload
	case MalformedFallback:
		return map[string]any{"content": r.RawText}
	case Failure:
		return map[string]any{"error": r.Message, "status": FailureStatus}
	default:
		return map[string]any{"error": "unknown result", "status": FailureStatus}
	}
}

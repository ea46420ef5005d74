package content

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Quiz is the payload of a successful quiz generation.
type Quiz struct {
	Topic     string     `json:"topic"`
	Questions []Question `json:"questions"`
}

// Question is a single multiple-choice question.
type Question struct {
	// Question is the prompt shown to the learner.
	Question string `json:"question"`

	// Options holds the choices in display order. Exactly 4 are requested.
	Options []string `json:"options"`

	// CorrectAnswer is expected to equal one of Options. The model is asked
	// for this but nothing enforces it unless validation is enabled.
	CorrectAnswer string `json:"correct_answer"`

	Explanation string `json:"explanation"`

	// Difficulty is only requested by the tool layer.
	Difficulty Difficulty `json:"difficulty,omitempty"`
}

// LessonPlan is the payload of a successful lesson plan generation.
type LessonPlan struct {
	Topic      string     `json:"topic"`
	Duration   string     `json:"duration"`
	Level      string     `json:"level,omitempty"`
	Objectives []string   `json:"objectives"`
	Sections   []Section  `json:"sections"`
	Assessment Assessment `json:"assessment"`
	Resources  []string   `json:"resources,omitempty"`
}

// UnmarshalJSON accepts "learning_objectives" as an alias of "objectives".
func (p *LessonPlan) UnmarshalJSON(data []byte) error {
	type plain LessonPlan
	var aux struct {
		plain
		LearningObjectives []string `json:"learning_objectives"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*p = LessonPlan(aux.plain)
	if len(p.Objectives) == 0 && len(aux.LearningObjectives) > 0 {
		p.Objectives = aux.LearningObjectives
	}
	return nil
}

// Section is one timed block of a lesson.
type Section struct {
	Title      string   `json:"title"`
	Content    string   `json:"content"`
	Duration   string   `json:"duration"`
	Activities []string `json:"activities"`
	Materials  []string `json:"materials,omitempty"`
}

// Assessment is either free text or a typed description. The JSON form
// round-trips: a string stays a string, an object stays an object.
type Assessment struct {
	Text        string
	Type        string
	Description string
	structured  bool
}

// TextAssessment builds a free-text assessment.
func TextAssessment(text string) Assessment {
	return Assessment{Text: text}
}

// TypedAssessment builds a {type, description} assessment.
func TypedAssessment(typ, description string) Assessment {
	return Assessment{Type: typ, Description: description, structured: true}
}

// Structured reports whether the assessment was given as an object.
func (a Assessment) Structured() bool { return a.structured }

// IsZero reports whether no assessment was given.
func (a Assessment) IsZero() bool {
	return !a.structured && a.Text == ""
}

// String renders the assessment as a single line of prose.
func (a Assessment) String() string {
	if !a.structured {
		return a.Text
	}
	switch {
	case a.Type == "":
		return a.Description
	case a.Description == "":
		return a.Type
	default:
		return a.Type + ": " + a.Description
	}
}

func (a Assessment) MarshalJSON() ([]byte, error) {
	if a.structured {
		return json.Marshal(struct {
			Type        string `json:"type"`
			Description string `json:"description"`
		}{a.Type, a.Description})
	}
	return json.Marshal(a.Text)
}

func (a *Assessment) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*a = Assessment{}
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = TextAssessment(s)
		return nil
	case len(data) > 0 && data[0] == '{':
		var obj struct {
			Type        string `json:"type"`
			Description string `json:"description"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		*a = TypedAssessment(obj.Type, obj.Description)
		return nil
	default:
		return fmt.Errorf("assessment must be a string or an object, got %s", data)
	}
}

// DecodeQuiz decodes a quiz payload.
func DecodeQuiz(payload json.RawMessage) (*Quiz, error) {
	var q Quiz
	if err := json.Unmarshal(payload, &q); err != nil {
		return nil, fmt.Errorf("decode quiz: %w", err)
	}
	return &q, nil
}

// DecodeLessonPlan decodes a lesson plan payload.
func DecodeLessonPlan(payload json.RawMessage) (*LessonPlan, error) {
	var p LessonPlan
	if err := json.Unmarshal(payload, &p); err != nil {
		return nil, fmt.Errorf("decode lesson plan: %w", err)
	}
	return &p, nil
}

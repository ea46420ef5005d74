package contract

import "github.com/shahil5z/QuizAndLessonPlanner/internal/llm"

var stringArray = map[string]any{
	"type":  "array",
	"items": map[string]any{"type": "string"},
}

// QuizSchema defines the JSON schema of a quiz payload.
var QuizSchema = &llm.Schema{
	Name:        "quiz",
	Description: "A multiple-choice quiz on a single topic",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"topic": map[string]any{
				"type":        "string",
				"description": "The quiz topic",
			},
			"questions": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question": map[string]any{
							"type":        "string",
							"description": "The question text",
						},
						"options": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"minItems":    4,
							"maxItems":    4,
							"description": "Exactly 4 answer options",
						},
						"correct_answer": map[string]any{
							"type":        "string",
							"description": "The text of the correct option",
						},
						"explanation": map[string]any{
							"type":        "string",
							"description": "Why the correct answer is correct",
						},
						"difficulty": map[string]any{
							"type": "string",
							"enum": []any{"easy", "medium", "hard"},
						},
					},
					"required": []any{"question", "options", "correct_answer", "explanation"},
				},
			},
		},
		"required": []any{"topic", "questions"},
	},
}

// LessonPlanSchema defines the JSON schema of a lesson plan payload.
// The assessment may be prose or a {type, description} object.
var LessonPlanSchema = &llm.Schema{
	Name:        "lesson-plan",
	Description: "A timed lesson plan with objectives, sections and an assessment",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"topic":    map[string]any{"type": "string"},
			"duration": map[string]any{"type": "string"},
			"level": map[string]any{
				"type": "string",
			},
			"objectives": map[string]any{
				"type":     "array",
				"items":    map[string]any{"type": "string"},
				"minItems": 1,
			},
			"sections": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"title":      map[string]any{"type": "string"},
						"content":    map[string]any{"type": "string"},
						"duration":   map[string]any{"type": "string"},
						"activities": stringArray,
						"materials":  stringArray,
					},
					"required": []any{"title", "content", "duration"},
				},
			},
			"assessment": map[string]any{
				"oneOf": []any{
					map[string]any{"type": "string"},
					map[string]any{
						"type": "object",
						"properties": map[string]any{
							"type":        map[string]any{"type": "string"},
							"description": map[string]any{"type": "string"},
						},
						"required": []any{"type", "description"},
					},
				},
			},
			"resources": stringArray,
		},
		"required": []any{"topic", "duration", "objectives", "sections", "assessment"},
	},
}

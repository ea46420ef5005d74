// Package tools declares the EduChain capabilities on a registry.
package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/shahil5z/QuizAndLessonPlanner/internal/content"
	"github.com/shahil5z/QuizAndLessonPlanner/internal/generator"
	"github.com/shahil5z/QuizAndLessonPlanner/internal/registry"
)

const (
	ServerName        = "EduChain Server"
	ServerVersion     = "1.0"
	ServerDescription = "Educational content generator"
)

// Generator is the part of *generator.Generator the capabilities need.
type Generator interface {
	Generate(ctx context.Context, req content.Request) generator.Result
}

// MCQArgs are the arguments of generate_mcqs.
type MCQArgs struct {
	Topic        string `json:"topic" jsonschema:"description=Topic for questions"`
	NumQuestions int    `json:"num_questions,omitempty" jsonschema:"description=Number of questions (1-10),minimum=1,maximum=10,default=5"`
}

// LessonPlanArgs are the arguments of lesson_plans.
type LessonPlanArgs struct {
	Topic    string `json:"topic" jsonschema:"description=Lesson topic"`
	Duration string `json:"duration,omitempty" jsonschema:"description=Total duration (e.g. '90 minutes'),default=60 minutes"`
	Level    string `json:"level,omitempty" jsonschema:"description=Target audience level,enum=beginner,enum=intermediate,enum=advanced,default=beginner"`
}

// NewRegistry creates the EduChain registry with both capabilities.
func NewRegistry(gen Generator) (*registry.Registry, error) {
	reg, err := registry.New(ServerName, ServerVersion, ServerDescription)
	if err != nil {
		return nil, err
	}
	if err := Register(reg, gen); err != nil {
		return nil, err
	}
	return reg, nil
}

// Register adds generate_mcqs and lesson_plans to reg.
func Register(reg *registry.Registry, gen Generator) error {
	if err := reg.Register(registry.Capability{
		Name:        "generate_mcqs",
		Kind:        registry.KindTool,
		Description: "Generate multiple-choice questions for a given topic",
		Params:      registry.ParamsFor[MCQArgs](),
		Handler:     mcqHandler(gen),
	}); err != nil {
		return fmt.Errorf("register generate_mcqs: %w", err)
	}
	if err := reg.Register(registry.Capability{
		Name:        "lesson_plans",
		Kind:        registry.KindResource,
		Description: "Generate structured lesson plans",
		Params:      registry.ParamsFor[LessonPlanArgs](),
		Handler:     lessonPlanHandler(gen),
	}); err != nil {
		return fmt.Errorf("register lesson_plans: %w", err)
	}
	return nil
}

func mcqHandler(gen Generator) registry.Handler {
	return func(ctx context.Context, raw json.RawMessage) (any, error) {
		args := MCQArgs{NumQuestions: content.DefaultNumQuestions}
		if err := json.Unmarshal(raw, &args); err != nil {
			return registry.ErrorResult(err.Error(), registry.InvalidArgsStatus), nil
		}
		req := content.NewQuizRequest(args.Topic, args.NumQuestions)
		if err := req.Validate(content.MaxQuestionsTool); err != nil {
			return registry.ErrorResult(err.Error(), registry.InvalidArgsStatus), nil
		}
		return generator.Project(gen.Generate(ctx, req)), nil
	}
}

func lessonPlanHandler(gen Generator) registry.Handler {
	return func(ctx context.Context, raw json.RawMessage) (any, error) {
		args := LessonPlanArgs{Duration: content.DefaultDuration, Level: string(content.DefaultLevel)}
		if err := json.Unmarshal(raw, &args); err != nil {
			return registry.ErrorResult(err.Error(), registry.InvalidArgsStatus), nil
		}
		req := content.NewLessonPlanRequest(args.Topic, args.Duration, content.Level(args.Level))
		if err := req.Validate(content.MaxQuestionsTool); err != nil {
			return registry.ErrorResult(err.Error(), registry.InvalidArgsStatus), nil
		}
		return generator.Project(gen.Generate(ctx, req)), nil
	}
}

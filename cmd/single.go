package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shahil5z/QuizAndLessonPlanner/internal/content"
	"github.com/shahil5z/QuizAndLessonPlanner/internal/export"
	"github.com/shahil5z/QuizAndLessonPlanner/internal/generator"
	"github.com/shahil5z/QuizAndLessonPlanner/internal/render"
)

var quizCmd = &cobra.Command{
	Use:   "quiz <topic>",
	Short: "Generate a multiple-choice quiz",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, _ := cmd.Flags().GetInt("questions")
		return runSingle(cmd, content.NewQuizRequest(args[0], n))
	},
}

var lessonCmd = &cobra.Command{
	Use:   "lesson <topic>",
	Short: "Generate a lesson plan",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		duration, _ := cmd.Flags().GetString("duration")
		level, _ := cmd.Flags().GetString("level")
		return runSingle(cmd, content.NewLessonPlanRequest(args[0], duration, content.Level(strings.ToLower(level))))
	},
}

func init() {
	quizCmd.Flags().IntP("questions", "n", content.DefaultNumQuestions, "Number of questions (1-15)")
	quizCmd.Flags().StringP("format", "f", "json", "Output format: json or html")
	quizCmd.Flags().StringP("out", "o", "", "Write to this file instead of stdout")

	lessonCmd.Flags().String("duration", content.DefaultDuration, "Total lesson duration")
	lessonCmd.Flags().String("level", string(content.DefaultLevel), "Audience level: beginner, intermediate, advanced")
	lessonCmd.Flags().StringP("format", "f", "json", "Output format: json or markdown")
	lessonCmd.Flags().StringP("out", "o", "", "Write to this file instead of stdout")
}

func runSingle(cmd *cobra.Command, req content.Request) error {
	format, _ := cmd.Flags().GetString("format")
	outPath, _ := cmd.Flags().GetString("out")
	format = strings.ToLower(format)
	if err := checkFormat(req.Kind, format); err != nil {
		return err
	}

	d, err := buildDeps(cmd)
	if err != nil {
		return err
	}
	defer d.close()

	ctx, cancel := d.generationContext(cmd.Context())
	defer cancel()

	res := d.gen.Generate(ctx, req)
	if f, ok := res.(generator.Failure); ok {
		return fmt.Errorf("generate %s: %s", req.Kind, f.Message)
	}

	if format == "json" && outPath != "" {
		if err := export.WriteResult(outPath, res); err != nil {
			return err
		}
		fmt.Fprintln(cmd.ErrOrStderr(), successStyle.Render("✓ saved to "+outPath))
		return nil
	}

	body, err := formatResult(res, format)
	if err != nil {
		return err
	}
	if res.Outcome() == generator.OutcomeMalformed {
		fmt.Fprintln(cmd.ErrOrStderr(), dimStyle.Render("reply was not valid JSON; showing raw content"))
	}

	if outPath == "" {
		_, err = io.WriteString(cmd.OutOrStdout(), body)
		return err
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	if err := os.WriteFile(outPath, []byte(body), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}
	fmt.Fprintln(cmd.ErrOrStderr(), successStyle.Render("✓ saved to "+outPath))
	return nil
}

func checkFormat(kind content.Kind, format string) error {
	switch {
	case format == "json":
		return nil
	case kind == content.KindQuiz && format == "html":
		return nil
	case kind == content.KindLessonPlan && (format == "markdown" || format == "md"):
		return nil
	default:
		return fmt.Errorf("unsupported format %q for %s", format, kind)
	}
}

// formatResult renders a non-failure result in the requested format. A
// malformed reply is passed through as raw text in every format but json.
func formatResult(res generator.Result, format string) (string, error) {
	if format == "json" {
		data, err := export.Encode(generator.Project(res))
		return string(data), err
	}

	switch res := res.(type) {
	case generator.MalformedFallback:
		return res.RawText + "\n", nil
	case generator.Success:
		if res.Kind == content.KindQuiz {
			quiz, err := content.DecodeQuiz(res.Payload)
			if err != nil {
				return "", err
			}
			html, err := render.QuizHTML(quiz)
			return string(html) + "\n", err
		}
		plan, err := content.DecodeLessonPlan(res.Payload)
		if err != nil {
			return "", err
		}
		return render.LessonMarkdown(plan), nil
	default:
		return "", fmt.Errorf("nothing to format")
	}
}

package cmd

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shahil5z/QuizAndLessonPlanner/internal/content"
	"github.com/shahil5z/QuizAndLessonPlanner/internal/export"
	"github.com/shahil5z/QuizAndLessonPlanner/internal/generator"
)

const defaultTopic = "Python Programming Basics"

var generateCmd = &cobra.Command{
	Use:   "generate [topic]",
	Short: "Generate a quiz and a lesson plan and save both as JSON",
	Long: `Generate multiple-choice questions and a lesson plan for one topic and
write them to mcqs.json and lesson_plan.json in the output directory.

A reply that is not valid JSON is saved as {"content": "<raw text>"}.
A failed generation writes nothing.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().IntP("questions", "n", content.DefaultNumQuestions, "Number of questions")
	generateCmd.Flags().String("duration", content.DefaultDuration, "Lesson duration")
	generateCmd.Flags().String("level", string(content.DefaultLevel), "Audience level: beginner, intermediate, advanced")
	generateCmd.Flags().StringP("out-dir", "o", "", "Output directory (default from config)")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	topic := defaultTopic
	if len(args) == 1 {
		topic = args[0]
	}
	n, _ := cmd.Flags().GetInt("questions")
	duration, _ := cmd.Flags().GetString("duration")
	level, _ := cmd.Flags().GetString("level")
	outDir, _ := cmd.Flags().GetString("out-dir")

	d, err := buildDeps(cmd)
	if err != nil {
		return err
	}
	defer d.close()

	if outDir == "" {
		outDir = d.cfg.Output.Dir
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Generating content for: %s\n", headingStyle.Render(topic))

	fmt.Fprintln(out, "\nGenerating multiple-choice questions...")
	quiz := content.NewQuizRequest(topic, n)
	saveGenerated(cmd.Context(), d, out, quiz, filepath.Join(outDir, "mcqs.json"), "MCQs")

	fmt.Fprintln(out, "\nGenerating lesson plan...")
	plan := content.NewLessonPlanRequest(topic, duration, content.Level(strings.ToLower(level)))
	saveGenerated(cmd.Context(), d, out, plan, filepath.Join(outDir, "lesson_plan.json"), "lesson plan")

	fmt.Fprintln(out, "\nProcess completed!")
	return nil
}

// saveGenerated runs one generation and writes its projection to path,
// printing a ✓ or × notice. label is used in the notices.
func saveGenerated(parent context.Context, d *deps, out io.Writer, req content.Request, path, label string) {
	ctx, cancel := d.generationContext(parent)
	defer cancel()

	res := d.gen.Generate(ctx, req)
	if f, ok := res.(generator.Failure); ok {
		fmt.Fprintln(out, errorStyle.Render("× Failed to generate "+label))
		fmt.Fprintln(out, dimStyle.Render("  "+f.Message))
		return
	}
	if err := export.WriteResult(path, res); err != nil {
		fmt.Fprintln(out, errorStyle.Render(fmt.Sprintf("Error saving to %s: %v", path, err)))
		fmt.Fprintln(out, errorStyle.Render("× Failed to generate "+label))
		return
	}
	if res.Outcome() == generator.OutcomeMalformed {
		fmt.Fprintln(out, dimStyle.Render("  reply was not valid JSON; saved raw content"))
	}
	fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("✓ %s saved to %s", capitalize(label), filepath.Base(path))))
}

func capitalize(s string) string {
	if s == "" || strings.ToUpper(s[:1]) == s[:1] {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shahil5z/QuizAndLessonPlanner/internal/content"
	"github.com/shahil5z/QuizAndLessonPlanner/internal/generator"
)

var previewCmd = &cobra.Command{
	Use:   "preview <topic>",
	Short: "Generate a quiz and answer it in the terminal",
	Long: `Generate a quiz and interactively answer its questions.

Nothing is written to disk. Useful for judging question quality for a topic
or a model.`,
	Args: cobra.ExactArgs(1),
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().IntP("questions", "n", content.DefaultNumQuestions, "Number of questions to generate")
}

func runPreview(cmd *cobra.Command, args []string) error {
	n, _ := cmd.Flags().GetInt("questions")

	d, err := buildDeps(cmd)
	if err != nil {
		return err
	}
	defer d.close()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Topic: %s\n", args[0])
	fmt.Fprintf(out, "Generating %d questions...\n\n", n)

	ctx, cancel := d.generationContext(cmd.Context())
	res := d.gen.Generate(ctx, content.NewQuizRequest(args[0], n))
	cancel()

	switch res := res.(type) {
	case generator.Failure:
		return fmt.Errorf("generation failed: %s", res.Message)
	case generator.MalformedFallback:
		fmt.Fprintln(out, dimStyle.Render("The model did not return valid JSON. Raw reply:"))
		fmt.Fprintln(out, res.RawText)
		return nil
	case generator.Success:
		quiz, err := content.DecodeQuiz(res.Payload)
		if err != nil {
			return err
		}
		playQuiz(cmd.InOrStdin(), out, quiz)
	}
	return nil
}

// playQuiz asks each question on out and reads answers from in. An answer
// is either an option number or the option text.
func playQuiz(in io.Reader, out io.Writer, quiz *content.Quiz) (correct int) {
	scanner := bufio.NewScanner(in)
	total := len(quiz.Questions)

	for i, q := range quiz.Questions {
		fmt.Fprintf(out, "── Question %d/%d ──\n", i+1, total)
		fmt.Fprintln(out, q.Question)
		for j, opt := range q.Options {
			fmt.Fprintf(out, "  %d) %s\n", j+1, opt)
		}

		fmt.Fprint(out, "\nYour answer: ")
		if !scanner.Scan() {
			fmt.Fprintln(out, "\n(input closed)")
			break
		}
		answer := strings.TrimSpace(scanner.Text())
		if answer == "" {
			fmt.Fprint(out, "(skipped)\n\n")
			continue
		}

		if isCorrect(answer, q) {
			correct++
			fmt.Fprintln(out, successStyle.Render("✓ Correct!"))
		} else {
			fmt.Fprintf(out, "%s Answer: %s\n", errorStyle.Render("✗ Wrong."), q.CorrectAnswer)
		}

		if q.Explanation != "" {
			fmt.Fprintf(out, "Explanation: %s\n", q.Explanation)
		}
		fmt.Fprintln(out)
	}

	fmt.Fprintf(out, "── Summary: %d/%d correct ──\n", correct, total)
	return correct
}

func isCorrect(answer string, q content.Question) bool {
	if idx, err := strconv.Atoi(answer); err == nil && idx >= 1 && idx <= len(q.Options) {
		answer = q.Options[idx-1]
	}
	return strings.EqualFold(strings.TrimSpace(answer), strings.TrimSpace(q.CorrectAnswer))
}

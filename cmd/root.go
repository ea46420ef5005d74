package cmd

import (
	"github.com/spf13/cobra"

	"github.com/shahil5z/QuizAndLessonPlanner/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "educhain",
	Short: "Generate quizzes and lesson plans with an LLM",
	Long: `EduChain turns a topic into a multiple-choice quiz or a timed lesson plan.

Each generation sends one prompt to the configured inference endpoint and
classifies the reply as structured content, raw text, or a failure.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("config", "educhain.yaml", "Path to YAML config file")
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite LLM ledger (overrides EDUCHAIN_DB; enables request recording)")
	rootCmd.PersistentFlags().String("provider", "", "LLM provider: groq, openai, openrouter, anthropic, gemini, ollama, mock")
	rootCmd.PersistentFlags().String("model", "", "Model for the selected provider")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(lessonCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(toolsCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the ledger path using --db flag (highest priority),
// then EDUCHAIN_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

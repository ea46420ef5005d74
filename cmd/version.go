package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shahil5z/QuizAndLessonPlanner/internal/contract"
)

// version is set via -ldflags at build time.
var version = "(devel)"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version and content contract versions",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "educhain", version)
		for _, c := range contract.All() {
			fmt.Fprintf(out, "  contract %-12s %s\n", c.Name, c.Version)
		}
	},
}

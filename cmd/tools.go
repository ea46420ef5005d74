package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shahil5z/QuizAndLessonPlanner/internal/export"
	"github.com/shahil5z/QuizAndLessonPlanner/internal/generator"
	"github.com/shahil5z/QuizAndLessonPlanner/internal/llm"
	"github.com/shahil5z/QuizAndLessonPlanner/internal/logging"
	"github.com/shahil5z/QuizAndLessonPlanner/internal/registry"
	"github.com/shahil5z/QuizAndLessonPlanner/internal/tools"
)

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "Discover and invoke the EduChain capabilities",
}

var toolsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered tools and resources",
	RunE: func(cmd *cobra.Command, args []string) error {
		host, _ := cmd.Flags().GetString("host")
		port, _ := cmd.Flags().GetInt("port")

		// Discovery needs no endpoint; a mock provider backs the registry.
		gen := generator.New(llm.NewMockProvider(), generator.DefaultConfig(), logging.Nop())
		reg, err := tools.NewRegistry(gen)
		if err != nil {
			return err
		}
		printBanner(cmd, reg, host, port)
		return nil
	},
}

var toolsDescribeCmd = &cobra.Command{
	Use:   "describe [name]",
	Short: "Print capability descriptors with parameter schemas as JSON",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		gen := generator.New(llm.NewMockProvider(), generator.DefaultConfig(), logging.Nop())
		reg, err := tools.NewRegistry(gen)
		if err != nil {
			return err
		}

		var payload any = reg.Describe()
		if len(args) == 1 {
			d, ok := reg.Lookup(args[0])
			if !ok {
				_, err := reg.Dispatch(cmd.Context(), args[0], nil)
				return err
			}
			payload = d
		}
		data, err := export.Encode(payload)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

var toolsCallCmd = &cobra.Command{
	Use:   "call <name> [args-json]",
	Short: "Invoke a capability and print its JSON result",
	Example: `  educhain tools call generate_mcqs '{"topic": "Fractions", "num_questions": 3}'
  educhain tools call lesson_plans '{"topic": "Photosynthesis", "level": "intermediate"}'`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := buildDeps(cmd)
		if err != nil {
			return err
		}
		defer d.close()

		reg, err := tools.NewRegistry(d.gen)
		if err != nil {
			return err
		}

		var raw json.RawMessage
		if len(args) == 2 {
			raw = json.RawMessage(args[1])
		}

		ctx, cancel := d.generationContext(cmd.Context())
		defer cancel()

		out, err := reg.Dispatch(ctx, args[0], raw)
		if err != nil {
			return err
		}
		data, err := export.Encode(out)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

func printBanner(cmd *cobra.Command, reg *registry.Registry, host string, port int) {
	var b strings.Builder
	fmt.Fprintf(&b, "📡 MCP Server '%s' running on %s:%d\n", reg.Name(), host, port)
	b.WriteString("🔧 Tools:\n")
	for _, name := range reg.Names(registry.KindTool) {
		fmt.Fprintf(&b, " - %s\n", name)
	}
	b.WriteString("📚 Resources:\n")
	for _, name := range reg.Names(registry.KindResource) {
		fmt.Fprintf(&b, " - %s\n", name)
	}
	b.WriteString("✅ Server Ready (Mock Mode)\n")
	fmt.Fprint(cmd.OutOrStdout(), b.String())
}

func init() {
	toolsListCmd.Flags().String("host", "0.0.0.0", "Host shown in the banner")
	toolsListCmd.Flags().Int("port", 6000, "Port shown in the banner")

	toolsCmd.AddCommand(toolsListCmd)
	toolsCmd.AddCommand(toolsDescribeCmd)
	toolsCmd.AddCommand(toolsCallCmd)
}

package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/shahil5z/QuizAndLessonPlanner/internal/tools"
	"github.com/shahil5z/QuizAndLessonPlanner/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the quiz generator and lesson planner web UI",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := buildDeps(cmd)
		if err != nil {
			return err
		}
		defer d.close()

		addr := d.cfg.Addr()
		if a, _ := cmd.Flags().GetString("addr"); a != "" {
			addr = a
		}
		return serve(cmd, d, addr)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (default from config, 127.0.0.1:7860)")
}

func serve(cmd *cobra.Command, d *deps, addr string) error {
	reg, err := tools.NewRegistry(d.gen)
	if err != nil {
		return err
	}

	srv, err := web.New(d.gen, reg, web.Options{
		Addr:            addr,
		ReadTimeout:     time.Duration(d.cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout:    time.Duration(d.cfg.Server.WriteTimeoutSeconds) * time.Second,
		GenerateTimeout: d.cfg.LLM.Timeout,
	}, d.logger)
	if err != nil {
		return fmt.Errorf("build server: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(cmd.OutOrStdout(), "🎓 EduChain running on http://%s\n", addr)
	return srv.ListenAndServe(ctx)
}

package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shahil5z/QuizAndLessonPlanner/internal/config"
	"github.com/shahil5z/QuizAndLessonPlanner/internal/generator"
	"github.com/shahil5z/QuizAndLessonPlanner/internal/llm"
	"github.com/shahil5z/QuizAndLessonPlanner/internal/logging"
	"github.com/shahil5z/QuizAndLessonPlanner/internal/store"
)

// deps holds everything a generating command needs.
type deps struct {
	cfg    config.Config
	logger *logging.Logger
	store  *store.Store
	gen    *generator.Generator
}

// loadConfig reads the config file named by --config and applies the
// --db, --provider and --model flags on top.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.Database.Path = p
	}
	if p, _ := cmd.Flags().GetString("provider"); p != "" {
		cfg.LLM.Provider = p
	}
	if m, _ := cmd.Flags().GetString("model"); m != "" {
		cfg.LLM.Model = m
	}
	return cfg, nil
}

// buildDeps wires config, logger, the optional ledger, the provider chain
// and the generator. Callers must call close.
func buildDeps(cmd *cobra.Command) (*deps, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(cfg.Logging.Mode, cfg.Logging.Level)
	if err != nil {
		return nil, err
	}

	d := &deps{cfg: cfg, logger: logger}

	var eventRepo store.EventRepo
	if cfg.Database.Path != "" {
		if err := store.EnsureDir(cfg.Database.Path); err != nil {
			return nil, fmt.Errorf("create ledger directory: %w", err)
		}
		st, err := store.Open(cfg.Database.Path)
		if err != nil {
			return nil, fmt.Errorf("open ledger: %w", err)
		}
		d.store = st
		eventRepo = st.EventRepo()
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	provider, err := llm.NewProvider(ctx, cfg.LLMConfig(), eventRepo, logger)
	if err != nil {
		d.close()
		return nil, fmt.Errorf("LLM provider: %w", err)
	}

	genCfg, err := cfg.GeneratorConfig()
	if err != nil {
		d.close()
		return nil, err
	}
	d.gen = generator.New(provider, genCfg, logger)
	return d, nil
}

// generationContext bounds one generation by the configured timeout.
func (d *deps) generationContext(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	if d.cfg.LLM.Timeout <= 0 {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, d.cfg.LLM.Timeout)
}

func (d *deps) close() {
	if d.store != nil {
		_ = d.store.Close()
	}
	if d.logger != nil {
		d.logger.Sync()
	}
}

// Package config loads educhain settings from defaults, an optional YAML
// file, a .env file and EDUCHAIN_* environment variables, in that order of
// increasing precedence. API keys are read from the environment only.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/shahil5z/QuizAndLessonPlanner/internal/content"
	"github.com/shahil5z/QuizAndLessonPlanner/internal/generator"
	"github.com/shahil5z/QuizAndLessonPlanner/internal/llm"
)

type Config struct {
	LLM        LLMConfig        `yaml:"llm"`
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Logging    LoggingConfig    `yaml:"logging"`
	Generation GenerationConfig `yaml:"generation"`
	Output     OutputConfig     `yaml:"output"`
}

type LLMConfig struct {
	// Provider is empty to pick the first vendor whose API key is set.
	Provider    string        `yaml:"provider"`
	Model       string        `yaml:"model"`
	MaxAttempts int           `yaml:"max_attempts"`
	Timeout     time.Duration `yaml:"timeout"`
}

type ServerConfig struct {
	Host                string `yaml:"host"`
	Port                int    `yaml:"port"`
	ReadTimeoutSeconds  int    `yaml:"read_timeout_seconds"`
	WriteTimeoutSeconds int    `yaml:"write_timeout_seconds"`
}

// DatabaseConfig locates the LLM request ledger. An empty path disables it.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

type LoggingConfig struct {
	Mode  string `yaml:"mode"`
	Level string `yaml:"level"`
}

type GenerationConfig struct {
	Validation        string  `yaml:"validation"`
	QuizTemperature   float64 `yaml:"quiz_temperature"`
	LessonTemperature float64 `yaml:"lesson_temperature"`
	MaxTokens         int     `yaml:"max_tokens"`
	NativeSchema      bool    `yaml:"native_schema"`
}

type OutputConfig struct {
	Dir string `yaml:"dir"`
}

func DefaultConfig() Config {
	return Config{
		LLM: LLMConfig{
			MaxAttempts: 1,
			Timeout:     60 * time.Second,
		},
		Server: ServerConfig{
			Host:                "127.0.0.1",
			Port:                7860,
			ReadTimeoutSeconds:  30,
			WriteTimeoutSeconds: 120,
		},
		Logging: LoggingConfig{
			Mode:  "development",
			Level: "warn",
		},
		Generation: GenerationConfig{
			Validation:        string(generator.ValidationOff),
			QuizTemperature:   0.7,
			LessonTemperature: 0.5,
		},
		Output: OutputConfig{
			Dir: ".",
		},
	}
}

// Load builds the configuration. A missing YAML file or .env file is not
// an error; path may be empty to skip the YAML file entirely.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, fmt.Errorf("load .env: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return cfg, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	setString(&cfg.LLM.Provider, "EDUCHAIN_LLM_PROVIDER")
	setString(&cfg.LLM.Model, "EDUCHAIN_LLM_MODEL")
	setString(&cfg.Server.Host, "EDUCHAIN_HOST")
	setString(&cfg.Database.Path, "EDUCHAIN_DB")
	setString(&cfg.Logging.Mode, "EDUCHAIN_LOG_MODE")
	setString(&cfg.Logging.Level, "EDUCHAIN_LOG_LEVEL")
	setString(&cfg.Generation.Validation, "EDUCHAIN_VALIDATION")
	setString(&cfg.Output.Dir, "EDUCHAIN_OUTPUT_DIR")

	if err := setInt(&cfg.LLM.MaxAttempts, "EDUCHAIN_LLM_MAX_ATTEMPTS"); err != nil {
		return err
	}
	if err := setInt(&cfg.Server.Port, "EDUCHAIN_PORT"); err != nil {
		return err
	}
	if v := os.Getenv("EDUCHAIN_LLM_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("EDUCHAIN_LLM_TIMEOUT: %w", err)
		}
		cfg.LLM.Timeout = d
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = n
	return nil
}

// LLMConfig returns the provider configuration: credentials and per-vendor
// settings from the environment, with the provider, model, retry and
// timeout settings of c applied on top.
func (c Config) LLMConfig() llm.Config {
	lc := llm.ConfigFromEnv()
	if c.LLM.Provider != "" {
		lc.Provider = c.LLM.Provider
	}
	lc.SetModel(c.LLM.Model)
	if c.LLM.MaxAttempts > 0 {
		lc.Retry.MaxAttempts = c.LLM.MaxAttempts
	}
	if c.LLM.Timeout > 0 {
		lc.Timeout = c.LLM.Timeout
	}
	return lc
}

// GeneratorConfig returns the generator settings.
func (c Config) GeneratorConfig() (generator.Config, error) {
	mode, err := generator.ParseValidationMode(c.Generation.Validation)
	if err != nil {
		return generator.Config{}, err
	}
	gc := generator.DefaultConfig()
	gc.MaxQuestions = content.MaxQuestionsUI
	gc.Validation = mode
	gc.QuizTemperature = c.Generation.QuizTemperature
	gc.LessonTemperature = c.Generation.LessonTemperature
	gc.MaxTokens = c.Generation.MaxTokens
	gc.NativeSchema = c.Generation.NativeSchema
	return gc, nil
}

// Addr returns the web server listen address.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

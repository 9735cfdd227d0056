// Package config loads the yaml configuration for wordlebot.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/benjaminjkraft/wordlebot/internal/engine"
)

type Config struct {
	Engine     engine.Config    `yaml:"engine"`
	Corpus     CorpusConfig     `yaml:"corpus"`
	Dictionary DictionaryConfig `yaml:"dictionary"`
	Server     ServerConfig     `yaml:"server"`
	Log        LogConfig        `yaml:"log"`
}

// CorpusConfig points at word files; empty paths use the embedded lists.
type CorpusConfig struct {
	OpenersPath string `yaml:"openers_path"`
	WordsPath   string `yaml:"words_path"`
}

type DictionaryConfig struct {
	// Provider is "none", "wordlist" (the file at WordsPath) or "http".
	Provider          string        `yaml:"provider" validate:"oneof=none wordlist http"`
	WordsPath         string        `yaml:"words_path" validate:"required_if=Provider wordlist"`
	BaseURL           string        `yaml:"base_url" validate:"required_if=Provider http"`
	Timeout           time.Duration `yaml:"timeout" validate:"gte=0"`
	RequestsPerSecond float64       `yaml:"requests_per_second" validate:"gte=0"`
	Burst             int           `yaml:"burst" validate:"gte=0"`
	BatchSize         int           `yaml:"batch_size" validate:"min=1"`
}

type ServerConfig struct {
	Addr string `yaml:"addr" validate:"required"`
}

type LogConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=text json"`
}

func Default() Config {
	return Config{
		Engine: engine.DefaultConfig(),
		Dictionary: DictionaryConfig{
			Provider:          "none",
			BaseURL:           "https://api.dictionaryapi.dev/api/v2/entries/en",
			Timeout:           2 * time.Second,
			RequestsPerSecond: 10,
			Burst:             5,
			BatchSize:         8,
		},
		Server: ServerConfig{Addr: ":8080"},
		Log:    LogConfig{Level: "info", Format: "text"},
	}
}

var validate = validator.New()

// Load reads the file at path over the defaults. An empty path returns the
// defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, cfg.Validate()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read the config file: %w", err)
	}
	if err := Parse(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes yaml onto cfg, keeping any field the document leaves out,
// and validates the result.
func Parse(data []byte, cfg *Config) error {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg.Validate()
}

func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return fmt.Errorf("invalid config: %s: failed %q", verrs[0].Namespace(), verrs[0].Tag())
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// SlogLevel maps the configured log level to slog.
func (l LogConfig) SlogLevel() slog.Level {
	switch l.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Marshal renders cfg as yaml, for writing out a starting config.
func Marshal(cfg Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime/pprof"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/benjaminjkraft/wordlebot/internal/config"
	"github.com/benjaminjkraft/wordlebot/internal/corpus"
	"github.com/benjaminjkraft/wordlebot/internal/dictionary"
	"github.com/benjaminjkraft/wordlebot/internal/engine"
)

var (
	configPath string
	cpuProfile string
	hardMode   bool

	cfg     config.Config
	logger  *slog.Logger
	profile *os.File

	rootCmd = &cobra.Command{
		Use:   "wordlebot",
		Short: "Picks guesses for Wordle-style word games",
		Long: `wordlebot suggests the next guess in a Wordle-style game from the
feedback so far, plays simulated games, and serves the same over HTTP.`,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return stopProfile()
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a yaml config file")
	rootCmd.PersistentFlags().StringVar(&cpuProfile, "cpuprofile", "", "write a CPU profile to this file")
	rootCmd.PersistentFlags().BoolVar(&hardMode, "hard", false, "only guess words that could still be the answer")

	rootCmd.AddCommand(suggestCmd, solveCmd, benchCmd, serveCmd, configCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		_ = stopProfile()
		os.Exit(1)
	}
}

func setup(cmd *cobra.Command, _ []string) error {
	var err error
	if cfg, err = config.Load(configPath); err != nil {
		return err
	}
	if hardMode {
		cfg.Engine.Selector.HardMode = true
	}
	logger = newLogger(cfg.Log, cmd.ErrOrStderr())
	slog.SetDefault(logger)

	if cpuProfile != "" {
		if profile, err = os.Create(cpuProfile); err != nil {
			return fmt.Errorf("failed to create profile: %w", err)
		}
		if err = pprof.StartCPUProfile(profile); err != nil {
			return fmt.Errorf("failed to start profile: %w", err)
		}
	}
	return nil
}

func stopProfile() error {
	if profile == nil {
		return nil
	}
	pprof.StopCPUProfile()
	err := profile.Close()
	profile = nil
	return err
}

func newLogger(lc config.LogConfig, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: lc.SlogLevel()}
	if lc.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// newEngine builds the engine from the loaded config.
func newEngine() (*engine.Engine, error) {
	words, err := corpus.Load(cfg.Corpus.OpenersPath, cfg.Corpus.WordsPath, cfg.Engine.WordLength)
	if err != nil {
		return nil, err
	}
	opts := []engine.Option{engine.WithLogger(logger)}
	v, err := newValidator(cfg.Dictionary)
	if err != nil {
		return nil, err
	}
	if v != nil {
		opts = append(opts, engine.WithValidator(v))
	}
	eng, err := engine.New(cfg.Engine, words.Openers, words.Words, opts...)
	if err != nil {
		return nil, err
	}
	logger.Debug("engine ready",
		slog.Int("words", len(words.Words)),
		slog.Int("openers", len(words.Openers)),
		slog.String("dictionary", cfg.Dictionary.Provider))
	return eng, nil
}

func newValidator(dc config.DictionaryConfig) (dictionary.Validator, error) {
	switch dc.Provider {
	case "wordlist":
		words, err := corpus.ReadWordsFromFile(dc.WordsPath)
		if err != nil {
			return nil, fmt.Errorf("dictionary: %w", err)
		}
		return dictionary.NewWordSet(words), nil
	case "http":
		return dictionary.NewClient(dictionary.ClientConfig{
			BaseURL:           dc.BaseURL,
			Timeout:           dc.Timeout,
			RequestsPerSecond: dc.RequestsPerSecond,
			Burst:             dc.Burst,
			BatchSize:         dc.BatchSize,
		}, dictionary.WithLogger(logger))
	default:
		return nil, nil
	}
}

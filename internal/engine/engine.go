package engine

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"
)

// Config holds the tunables of the engine.
type Config struct {
	WordLength int `yaml:"word_length" validate:"min=2,max=16"`
	// Vowels drive the vowel bonus; the synthesizer also counts y.
	Vowels            string         `yaml:"vowels" validate:"required,alpha"`
	BeamWidth         int            `yaml:"beam_width" validate:"min=1"`
	ValidationTimeout time.Duration  `yaml:"validation_timeout" validate:"gte=0"`
	Selector          SelectorConfig `yaml:"selector"`
	Scoring           ScoringConfig  `yaml:"scoring"`
}

func DefaultConfig() Config {
	return Config{
		WordLength:        5,
		Vowels:            "aeiou",
		BeamWidth:         100,
		ValidationTimeout: 3 * time.Second,
		Selector:          DefaultSelectorConfig(),
		Scoring:           DefaultScoringConfig(),
	}
}

// Turn is one guess and the feedback it got.
type Turn struct {
	Guess    string   `json:"guess"`
	Feedback Feedback `json:"feedback"`
}

// Engine chooses guesses. It is safe for concurrent use by any number of
// games: everything it holds is read-only after New, and per-game state lives
// in the Constraints each game passes in.
type Engine struct {
	cfg     Config
	openers []string
	words   []string
	tables  *FrequencyTables
	scorer  *Scorer
	synth   *Synthesizer
	logger  *slog.Logger

	validator Validator
}

type Option func(*Engine)

// WithValidator sets the dictionary used to vet synthesized words.
func WithValidator(v Validator) Option {
	return func(e *Engine) { e.validator = v }
}

func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// New builds an engine over the given opening words and background word list.
// Both lists are copied and lowercased.
func New(cfg Config, openers, words []string, opts ...Option) (*Engine, error) {
	if cfg.WordLength < minWordLength || cfg.WordLength > maxWordLength {
		return nil, fmt.Errorf("word length %d out of range %d-%d", cfg.WordLength, minWordLength, maxWordLength)
	}
	e := &Engine{cfg: cfg}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}

	var err error
	if e.openers, err = normalize(openers, cfg.WordLength); err != nil {
		return nil, fmt.Errorf("opening words: %w", err)
	}
	if e.words, err = normalize(words, cfg.WordLength); err != nil {
		return nil, fmt.Errorf("word list: %w", err)
	}

	e.tables = NewFrequencyTables(e.words, cfg.WordLength)
	e.scorer = NewScorer(e.tables, cfg.Scoring, cfg.Vowels)
	e.synth = NewSynthesizer(e.tables, e.validator, cfg.BeamWidth, cfg.ValidationTimeout, cfg.Vowels, e.logger)
	return e, nil
}

func normalize(words []string, length int) ([]string, error) {
	out := make([]string, 0, len(words))
	seen := make(map[string]bool, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if err := CheckWord(w, length); err != nil {
			return nil, err
		}
		if !seen[w] {
			seen[w] = true
			out = append(out, w)
		}
	}
	return out, nil
}

func (e *Engine) Config() Config { return e.cfg }

// Words returns the background word list.
func (e *Engine) Words() []string { return slices.Clone(e.words) }

func (e *Engine) Openers() []string { return slices.Clone(e.openers) }

func (e *Engine) Tables() *FrequencyTables { return e.tables }

func (e *Engine) Scorer() *Scorer { return e.scorer }

// NewConstraints returns an empty model for a new game.
func (e *Engine) NewConstraints() *Constraints { return NewConstraints(e.cfg.WordLength) }

// AnalyzeResult returns the facts implied by one guess and its feedback.
func (e *Engine) AnalyzeResult(guess string, fb Feedback) (*Constraints, error) {
	if err := CheckWord(guess, e.cfg.WordLength); err != nil {
		return nil, err
	}
	return AnalyzeResult(guess, fb)
}

// FilterCandidates returns the words in pool consistent with c.
func (e *Engine) FilterCandidates(c *Constraints, pool []string) []string {
	return FilterCandidates(c, pool)
}

// Replay folds a game history into a single model.
func (e *Engine) Replay(turns []Turn) (*Constraints, error) {
	c := e.NewConstraints()
	for i, t := range turns {
		next, err := e.AnalyzeResult(t.Guess, t.Feedback)
		if err != nil {
			return nil, fmt.Errorf("turn %d: %w", i+1, err)
		}
		if c, err = Merge(c, next); err != nil {
			return nil, fmt.Errorf("turn %d: %w", i+1, err)
		}
	}
	return c, nil
}

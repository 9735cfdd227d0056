package engine

import (
	"cmp"
	"context"
	"log/slog"
	"slices"
	"time"
)

// Validator filters invented strings down to real words. Implementations
// should return every word whose validity they could not confirm along with
// the error, since the engine treats unknown words as valid.
type Validator interface {
	FilterKnownWords(ctx context.Context, words []string) ([]string, error)
}

type partial struct {
	word  []byte
	score float64
}

// Synthesizer invents candidate words by beam search over the positional
// letter frequencies of the corpus. It is only used when no known word fits
// the constraints.
type Synthesizer struct {
	tables    *FrequencyTables
	validator Validator
	beamWidth int
	timeout   time.Duration
	isVowel   func(byte) bool
	logger    *slog.Logger
}

func NewSynthesizer(tables *FrequencyTables, validator Validator, beamWidth int, timeout time.Duration, vowels string, logger *slog.Logger) *Synthesizer {
	if logger == nil {
		logger = slog.Default()
	}
	// y carries the vowel sound in enough words (crypt, lynch) that the
	// pruning rules have to treat it as one.
	set := newLetterSet(vowels + "y")
	return &Synthesizer{
		tables:    tables,
		validator: validator,
		beamWidth: beamWidth,
		timeout:   timeout,
		isVowel:   set.has,
		logger:    logger,
	}
}

// Synthesize returns up to beamWidth invented words, best first, leaving out
// anything in exclude. If a validator is configured the words are checked
// against it in one batch.
func (s *Synthesizer) Synthesize(ctx context.Context, c *Constraints, exclude map[string]bool) []string {
	length := s.tables.Length()
	rules := []pruneRule{
		needsVowel(s.isVowel),
		limitConsonantRun(s.isVowel, 3),
		consistentPrefix(c),
	}

	beam := []partial{{}}
	for pos := 0; pos < length && len(beam) > 0; pos++ {
		letters := s.tables.Observed(pos)
		next := make([]partial, 0, len(beam)*len(letters))
		for _, p := range beam {
			for _, l := range letters {
				w := append(slices.Clip(p.word), l)
				if !keepPartial(rules, w, length) {
					continue
				}
				next = append(next, partial{word: w, score: p.score + s.tables.Position(pos, l)})
			}
		}
		slices.SortFunc(next, func(a, b partial) int {
			if d := cmp.Compare(b.score, a.score); d != 0 {
				return d
			}
			return slices.Compare(a.word, b.word)
		})
		if len(next) > s.beamWidth {
			next = next[:s.beamWidth]
		}
		beam = next
	}

	words := make([]string, 0, len(beam))
	for _, p := range beam {
		if w := string(p.word); !exclude[w] {
			words = append(words, w)
		}
	}
	synthesizedWords.Observe(float64(len(words)))
	return s.validate(ctx, words)
}

func (s *Synthesizer) validate(ctx context.Context, words []string) []string {
	if s.validator == nil || len(words) == 0 {
		return words
	}
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	known, err := s.validator.FilterKnownWords(ctx, words)
	if err != nil {
		validationFailures.Inc()
		s.logger.Warn("dictionary validation unavailable, assuming words are valid",
			slog.Int("words", len(words)),
			slog.Int("kept", len(known)),
			slog.Any("error", err))
		if known == nil {
			return words
		}
	}
	return known
}

package engine

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"slices"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

// SelectorConfig sets the pool-size thresholds and weights NextGuess uses.
type SelectorConfig struct {
	// Pools of at most EndgameSize candidates just guess the first one.
	EndgameSize int `yaml:"endgame_size" validate:"min=1"`
	// Pools of at most MinimaxSize candidates minimize the worst bucket.
	MinimaxSize          int     `yaml:"minimax_size" validate:"gtefield=EndgameSize"`
	MinimaxEntropyWeight float64 `yaml:"minimax_entropy_weight" validate:"gte=0,lte=1"`
	// Above MinimaxSize, guesses are ranked by entropy and score, weighting
	// entropy more once the pool exceeds LargePoolSize.
	LargePoolSize          int     `yaml:"large_pool_size" validate:"min=1"`
	LargePoolEntropyWeight float64 `yaml:"large_pool_entropy_weight" validate:"gte=0,lte=1"`
	EntropyWeight          float64 `yaml:"entropy_weight" validate:"gte=0,lte=1"`
	// The entropy ranking only considers the best-scoring
	// clamp(SampleMultiplier * pool size, MinSample, MaxSample) words.
	SampleMultiplier int `yaml:"sample_multiplier" validate:"min=1"`
	MinSample        int `yaml:"min_sample" validate:"min=1"`
	MaxSample        int `yaml:"max_sample" validate:"gtefield=MinSample"`
	// Parallelism bounds concurrent candidate evaluation; 0 means GOMAXPROCS.
	Parallelism int `yaml:"parallelism" validate:"gte=0"`
	// HardMode only guesses words that could still be the answer.
	HardMode bool `yaml:"hard_mode"`
}

// entropyWeight is the weight given to entropy when ranking for a pool of n
// candidates.
func (cfg SelectorConfig) entropyWeight(n int) float64 {
	if n > cfg.LargePoolSize {
		return cfg.LargePoolEntropyWeight
	}
	return cfg.EntropyWeight
}

func DefaultSelectorConfig() SelectorConfig {
	return SelectorConfig{
		EndgameSize:            2,
		MinimaxSize:            20,
		MinimaxEntropyWeight:   0.7,
		LargePoolSize:          100,
		LargePoolEntropyWeight: 0.8,
		EntropyWeight:          0.6,
		SampleMultiplier:       3,
		MinSample:              100,
		MaxSample:              500,
	}
}

// decision is the working state of one NextGuess call.
type decision struct {
	constraints *Constraints
	guessed     map[string]bool
	candidates  []string
	synthesized []string
}

// A strategy returns ok=false when it does not apply or finds nothing, and
// the next one is tried.
type strategy struct {
	name string
	pick func(ctx context.Context, d *decision) (word string, ok bool, err error)
}

func (e *Engine) strategies() []strategy {
	return []strategy{
		{"endgame", e.endgame},
		{"minimax", e.minimax},
		{"entropy", e.entropyRank},
		{"synthesized", e.synthesized},
		{"loose", e.loose},
		{"opener", e.opener},
	}
}

// NextGuess picks the next word to guess given what is known so far. pool is
// the set of possible answers; nil means the engine's word list. Words in
// previous are never suggested again, except as a last resort from the
// opening words.
func (e *Engine) NextGuess(ctx context.Context, c *Constraints, previous []string, pool []string) (string, error) {
	start := time.Now()
	defer func() { decisionDuration.Observe(time.Since(start).Seconds()) }()

	if c == nil {
		c = e.NewConstraints()
	}
	if c.Length != e.cfg.WordLength {
		return "", fmt.Errorf("%w: constraints are for %d letter words, engine plays %d", ErrInvalidWord, c.Length, e.cfg.WordLength)
	}
	if pool == nil {
		pool = e.words
	}

	d := &decision{constraints: c, guessed: make(map[string]bool, len(previous))}
	for _, w := range previous {
		d.guessed[strings.ToLower(w)] = true
	}
	for _, w := range FilterCandidates(c, pool) {
		w = strings.ToLower(w)
		if !d.guessed[w] {
			d.candidates = append(d.candidates, w)
		}
	}
	d.candidates = dedupe(d.candidates)

	for _, s := range e.strategies() {
		word, ok, err := s.pick(ctx, d)
		if err != nil {
			return "", err
		}
		if ok {
			guessDecisions.WithLabelValues(s.name).Inc()
			e.logger.Debug("chose guess",
				slog.String("guess", word),
				slog.String("strategy", s.name),
				slog.Int("candidates", len(d.candidates)),
				slog.Duration("took", time.Since(start)))
			return word, nil
		}
	}
	return "", ErrNoGuessFound
}

func (e *Engine) endgame(_ context.Context, d *decision) (string, bool, error) {
	n := len(d.candidates)
	if n == 0 || n > e.cfg.Selector.EndgameSize {
		return "", false, nil
	}
	return d.candidates[0], true, nil
}

type ranked struct {
	word     string
	worst    int
	entropy  float64
	score    float64
	combined float64
}

func (e *Engine) minimax(ctx context.Context, d *decision) (string, bool, error) {
	n := len(d.candidates)
	if n <= e.cfg.Selector.EndgameSize || n > e.cfg.Selector.MinimaxSize {
		return "", false, nil
	}
	w := e.cfg.Selector.MinimaxEntropyWeight
	results, err := e.evaluate(ctx, e.eligible(d), func(word string) ranked {
		entropy, worst := partitionStats(word, d.candidates)
		score := e.scorer.Score(word, d.constraints, d.candidates)
		return ranked{word: word, worst: worst, entropy: entropy, score: score, combined: w*entropy + (1-w)*score}
	})
	if err != nil || len(results) == 0 {
		return "", false, err
	}
	best := slices.MinFunc(results, func(a, b ranked) int {
		if c := cmp.Compare(a.worst, b.worst); c != 0 {
			return c
		}
		if c := cmp.Compare(b.combined, a.combined); c != 0 {
			return c
		}
		if c := cmp.Compare(b.entropy, a.entropy); c != 0 {
			return c
		}
		return strings.Compare(a.word, b.word)
	})
	return best.word, true, nil
}

func (e *Engine) entropyRank(ctx context.Context, d *decision) (string, bool, error) {
	cfg := e.cfg.Selector
	n := len(d.candidates)
	if n <= cfg.MinimaxSize {
		return "", false, nil
	}

	// Partitioning is the expensive part, so only the best-scoring words
	// get one.
	sample := e.byScore(e.eligible(d), d.constraints)
	limit := min(max(n*cfg.SampleMultiplier, cfg.MinSample), cfg.MaxSample)
	if len(sample) > limit {
		sample = sample[:limit]
	}

	w := cfg.entropyWeight(n)
	results, err := e.evaluate(ctx, sample, func(word string) ranked {
		entropy := Entropy(word, d.candidates)
		score := e.scorer.Score(word, d.constraints, nil)
		return ranked{word: word, entropy: entropy, score: score, combined: w*entropy + (1-w)*score}
	})
	if err != nil || len(results) == 0 {
		return "", false, err
	}
	best := slices.MinFunc(results, func(a, b ranked) int {
		if c := cmp.Compare(b.combined, a.combined); c != 0 {
			return c
		}
		if c := cmp.Compare(b.entropy, a.entropy); c != 0 {
			return c
		}
		return strings.Compare(a.word, b.word)
	})
	return best.word, true, nil
}

func (e *Engine) synthesized(ctx context.Context, d *decision) (string, bool, error) {
	if len(d.candidates) > 0 {
		return "", false, nil
	}
	d.synthesized = e.synth.Synthesize(ctx, d.constraints, d.guessed)
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	var ok []string
	for _, w := range d.synthesized {
		if d.constraints.Matches(w) {
			ok = append(ok, w)
		}
	}
	return e.best(ok, d.constraints)
}

// looseMatch reports whether word uses every letter known to be in the
// secret and no forbidden letter that isn't also known, ignoring positions
// and counts.
func (c *Constraints) looseMatch(word string) bool {
	if len(word) != c.Length {
		return false
	}
	counts := countLetters(word)
	for l, n := range counts {
		if n == 0 && c.MinCounts[l] > 0 {
			return false
		}
		if n > 0 && c.MinCounts[l] == 0 && c.Forbidden.Test(uint(l)) {
			return false
		}
	}
	return true
}

// loose accepts any unguessed word that passes looseMatch, trying the
// synthesized words before the word list.
func (e *Engine) loose(_ context.Context, d *decision) (string, bool, error) {
	if len(d.candidates) > 0 {
		return "", false, nil
	}
	c := d.constraints
	for _, words := range [][]string{d.synthesized, e.words} {
		var ok []string
		for _, w := range words {
			if !d.guessed[w] && c.looseMatch(w) {
				ok = append(ok, w)
			}
		}
		if word, found, _ := e.best(ok, c); found {
			return word, true, nil
		}
	}
	return "", false, nil
}

// opener never fails while there is at least one opening word: if all of
// them have been guessed already the best one is repeated.
func (e *Engine) opener(_ context.Context, d *decision) (string, bool, error) {
	var fresh []string
	for _, w := range e.openers {
		if !d.guessed[w] {
			fresh = append(fresh, w)
		}
	}
	if word, ok, _ := e.best(fresh, d.constraints); ok {
		return word, true, nil
	}
	return e.best(e.openers, d.constraints)
}

// eligible lists the words worth guessing: the candidates first, then the
// rest of the word list, minus anything already guessed.
func (e *Engine) eligible(d *decision) []string {
	if e.cfg.Selector.HardMode {
		return d.candidates
	}
	out := make([]string, 0, len(d.candidates)+len(e.words))
	out = append(out, d.candidates...)
	for _, w := range e.words {
		if !d.guessed[w] {
			out = append(out, w)
		}
	}
	return dedupe(out)
}

// byScore returns words sorted by heuristic score, best first.
func (e *Engine) byScore(words []string, c *Constraints) []string {
	scores := make(map[string]float64, len(words))
	for _, w := range words {
		scores[w] = e.scorer.Score(w, c, nil)
	}
	out := slices.Clone(words)
	slices.SortFunc(out, func(a, b string) int {
		if d := cmp.Compare(scores[b], scores[a]); d != 0 {
			return d
		}
		return strings.Compare(a, b)
	})
	return out
}

func (e *Engine) best(words []string, c *Constraints) (string, bool, error) {
	if len(words) == 0 {
		return "", false, nil
	}
	return e.byScore(words, c)[0], true, nil
}

// evaluate runs fn over words in parallel, keeping results in input order.
func (e *Engine) evaluate(ctx context.Context, words []string, fn func(string) ranked) ([]ranked, error) {
	out := make([]ranked, len(words))
	g, ctx := errgroup.WithContext(ctx)
	limit := e.cfg.Selector.Parallelism
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}
	g.SetLimit(limit)
	for i, w := range words {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out[i] = fn(w)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func dedupe(words []string) []string {
	seen := make(map[string]bool, len(words))
	out := make([]string, 0, len(words))
	for _, w := range words {
		if !seen[w] {
			seen[w] = true
			out = append(out, w)
		}
	}
	return out
}

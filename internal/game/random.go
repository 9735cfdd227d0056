package game

import (
	"context"
	"math/rand/v2"
	"sync"

	"github.com/benjaminjkraft/wordlebot/internal/engine"
)

// RandomSolver guesses a uniformly random word that is still possible. It is
// the baseline the engine is benchmarked against.
type RandomSolver struct {
	words  []string
	length int

	mu  sync.Mutex
	rng *rand.Rand
}

func NewRandomSolver(words []string, length int, seed uint64) *RandomSolver {
	return &RandomSolver{
		words:  words,
		length: length,
		rng:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

func (r *RandomSolver) NewConstraints() *engine.Constraints {
	return engine.NewConstraints(r.length)
}

func (r *RandomSolver) AnalyzeResult(guess string, fb engine.Feedback) (*engine.Constraints, error) {
	return engine.AnalyzeResult(guess, fb)
}

func (r *RandomSolver) NextGuess(_ context.Context, c *engine.Constraints, previous []string, pool []string) (string, error) {
	if pool == nil {
		pool = r.words
	}
	guessed := make(map[string]bool, len(previous))
	for _, w := range previous {
		guessed[w] = true
	}
	var possible []string
	for _, w := range engine.FilterCandidates(c, pool) {
		if !guessed[w] {
			possible = append(possible, w)
		}
	}
	if len(possible) == 0 {
		return "", engine.ErrNoGuessFound
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return possible[r.rng.IntN(len(possible))], nil
}

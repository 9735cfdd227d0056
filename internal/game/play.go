package game

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/benjaminjkraft/wordlebot/internal/engine"
)

// Solver is the part of the engine a game loop needs.
type Solver interface {
	NewConstraints() *engine.Constraints
	AnalyzeResult(guess string, fb engine.Feedback) (*engine.Constraints, error)
	NextGuess(ctx context.Context, c *engine.Constraints, previous []string, pool []string) (string, error)
}

// maxTurns caps a game whose turn limit is unset, so a solver that keeps
// repeating itself still terminates.
const maxTurns = 50

type Result struct {
	Turns []engine.Turn
	Won   bool
}

// Guesses is the number of guesses played.
func (r Result) Guesses() int { return len(r.Turns) }

// Play lets s guess against t until it wins or has made limit guesses.
// limit <= 0 means no limit beyond a safety cap.
func Play(ctx context.Context, s Solver, t Transport, limit int) (Result, error) {
	if limit <= 0 || limit > maxTurns {
		limit = maxTurns
	}
	var (
		res     Result
		guesses []string
	)
	c := s.NewConstraints()
	for len(guesses) < limit {
		guess, err := s.NextGuess(ctx, c, guesses, nil)
		if err != nil {
			return res, fmt.Errorf("guess %d: %w", len(guesses)+1, err)
		}
		fb, err := t.Submit(ctx, guess)
		if err != nil {
			return res, fmt.Errorf("submitting %q: %w", guess, err)
		}
		res.Turns = append(res.Turns, engine.Turn{Guess: guess, Feedback: fb})
		guesses = append(guesses, guess)
		if fb.Won() {
			res.Won = true
			return res, nil
		}

		delta, err := s.AnalyzeResult(guess, fb)
		if err != nil {
			return res, err
		}
		if c, err = engine.Merge(c, delta); err != nil {
			return res, err
		}
	}
	return res, nil
}

type PlayAllOptions struct {
	// Parallelism bounds concurrent games; 0 means unbounded.
	Parallelism int
	// Trials is the number of games per target, for solvers that are not
	// deterministic; 0 means 1.
	Trials int
	// Limit is the per-game guess limit passed to Play.
	Limit    int
	HardMode bool
	// OnDone, if set, is called after each game finishes. It may be called
	// from several goroutines at once.
	OnDone func(target string, res Result)
}

// PlayAll plays every target and returns, per target, how many games took
// each number of guesses. Games that did not finish within the limit count
// as the limit plus one.
func PlayAll(ctx context.Context, s Solver, targets []string, opts PlayAllOptions) (map[string]*Histogram, error) {
	trials := max(opts.Trials, 1)
	results := make(map[string]*Histogram, len(targets))
	for _, target := range targets {
		results[strings.ToLower(target)] = new(Histogram)
	}

	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	if opts.Parallelism > 0 {
		g.SetLimit(opts.Parallelism)
	}
	for _, target := range targets {
		g.Go(func() error {
			for j := 0; j < trials; j++ {
				var popts []PuzzleOption
				if opts.HardMode {
					popts = append(popts, HardMode())
				}
				p, err := NewPuzzle(target, popts...)
				if err != nil {
					return err
				}
				res, err := Play(ctx, s, p, opts.Limit)
				if err != nil {
					return fmt.Errorf("playing %q: %w", target, err)
				}
				n := res.Guesses()
				if !res.Won {
					n++
				}
				mu.Lock()
				results[p.Target()].Add(n)
				mu.Unlock()
				if opts.OnDone != nil {
					opts.OnDone(target, res)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

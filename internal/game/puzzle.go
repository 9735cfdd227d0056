package game

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/benjaminjkraft/wordlebot/internal/engine"
)

var ErrHardMode = errors.New("hard mode")

// Transport submits a guess to a puzzle and returns its feedback. Retrying
// transient failures is the transport's business, not the engine's.
type Transport interface {
	Submit(ctx context.Context, word string) (engine.Feedback, error)
}

// Puzzle is a local Transport that knows the secret.
type Puzzle struct {
	target   string
	hardMode bool
	valid    map[string]bool
	known    *engine.Constraints
	turns    []engine.Turn
}

type PuzzleOption func(*Puzzle)

// HardMode rejects guesses that ignore earlier feedback.
func HardMode() PuzzleOption {
	return func(p *Puzzle) { p.hardMode = true }
}

// AcceptOnly rejects guesses outside words.
func AcceptOnly(words []string) PuzzleOption {
	return func(p *Puzzle) {
		p.valid = make(map[string]bool, len(words))
		for _, w := range words {
			p.valid[strings.ToLower(w)] = true
		}
	}
}

func NewPuzzle(target string, opts ...PuzzleOption) (*Puzzle, error) {
	target = strings.ToLower(target)
	if err := engine.CheckWord(target, len(target)); err != nil || target == "" {
		return nil, fmt.Errorf("invalid target %q: %w", target, engine.ErrInvalidWord)
	}
	p := &Puzzle{target: target, known: engine.NewConstraints(len(target))}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

func (p *Puzzle) Target() string { return p.target }

func (p *Puzzle) Turns() []engine.Turn { return append([]engine.Turn(nil), p.turns...) }

func (p *Puzzle) Submit(_ context.Context, word string) (engine.Feedback, error) {
	word = strings.ToLower(strings.TrimSpace(word))
	if len(word) != len(p.target) {
		return nil, fmt.Errorf("%w: %q has %d letters, want %d", engine.ErrInvalidWord, word, len(word), len(p.target))
	}
	if p.valid != nil && !p.valid[word] {
		return nil, fmt.Errorf("%w: %q is not in the word list", engine.ErrInvalidWord, word)
	}
	if p.hardMode {
		if err := p.known.Violation(word); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrHardMode, err)
		}
	}

	fb := engine.SimulateFeedback(word, p.target)
	known, err := p.known.Apply(word, fb)
	if err != nil {
		return nil, err
	}
	p.known = known
	p.turns = append(p.turns, engine.Turn{Guess: word, Feedback: fb})
	return fb, nil
}

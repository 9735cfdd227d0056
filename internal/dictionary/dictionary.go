// Package dictionary decides whether invented strings are real words.
package dictionary

import (
	"context"
	"errors"
	"strings"
)

// ErrValidationUnavailable means some words could not be checked. Callers
// should treat those words as valid.
var ErrValidationUnavailable = errors.New("dictionary validation unavailable")

type Validator interface {
	IsKnownWord(ctx context.Context, word string) (bool, error)
	// FilterKnownWords returns the subset of words that are known, in order.
	// On ErrValidationUnavailable the result still includes every word that
	// could not be checked.
	FilterKnownWords(ctx context.Context, words []string) ([]string, error)
}

// WordSet is a Validator backed by an in-memory word list.
type WordSet struct {
	words map[string]bool
}

func NewWordSet(words []string) *WordSet {
	s := &WordSet{words: make(map[string]bool, len(words))}
	for _, w := range words {
		s.words[strings.ToLower(w)] = true
	}
	return s
}

func (s *WordSet) Len() int { return len(s.words) }

func (s *WordSet) IsKnownWord(_ context.Context, word string) (bool, error) {
	return s.words[strings.ToLower(word)], nil
}

func (s *WordSet) FilterKnownWords(_ context.Context, words []string) ([]string, error) {
	out := make([]string, 0, len(words))
	for _, w := range words {
		if s.words[strings.ToLower(w)] {
			out = append(out, w)
		}
	}
	return out, nil
}

var (
	_ Validator = (*WordSet)(nil)
	_ Validator = (*Client)(nil)
)

package engine

import (
	"fmt"
	"strings"
)

// AnalyzeResult turns one guess and its feedback into the facts it implies.
//
// An absent letter is forbidden outright unless the same guess also has it
// correct or present somewhere; then it caps the letter at the number of
// confirmed copies.
func AnalyzeResult(guess string, fb Feedback) (*Constraints, error) {
	if len(fb) != len(guess) {
		return nil, fmt.Errorf("%w: %d results for %q", ErrInvalidFeedback, len(fb), guess)
	}
	if err := CheckWord(guess, len(guess)); err != nil {
		return nil, err
	}
	if len(guess) == 0 || len(guess) > maxWordLength {
		return nil, fmt.Errorf("%w: %q must have 1 to %d letters", ErrInvalidWord, guess, maxWordLength)
	}
	guess = strings.ToLower(guess)

	c := NewConstraints(len(guess))
	var confirmed [alphabet]int
	for i := 0; i < len(guess); i++ {
		l := letterIndex(guess[i])
		c.Tested.Set(uint(l))
		switch fb[i] {
		case Correct:
			c.Greens[i] = guess[i]
			confirmed[l]++
		case Present:
			c.Banned[l] |= 1 << i
			confirmed[l]++
		case Absent:
		default:
			return nil, fmt.Errorf("%w: %v at position %d", ErrInvalidFeedback, fb[i], i+1)
		}
	}
	for i := 0; i < len(guess); i++ {
		if fb[i] != Absent {
			continue
		}
		l := letterIndex(guess[i])
		c.Banned[l] |= 1 << i
		if confirmed[l] == 0 {
			c.Forbidden.Set(uint(l))
		} else {
			c.MaxCounts[l] = confirmed[l]
		}
	}
	c.MinCounts = confirmed

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Merge combines the facts in a and b into a new Constraints, keeping the
// tighter bound for every letter. Neither input is modified.
func Merge(a, b *Constraints) (*Constraints, error) {
	if a.Length != b.Length {
		return nil, &ConflictError{Reason: fmt.Sprintf("merging %d letter facts into %d letter facts", b.Length, a.Length)}
	}
	out := a.Clone()
	for i, g := range b.Greens {
		if g == 0 {
			continue
		}
		if have := out.Greens[i]; have != 0 && have != g {
			return nil, &ConflictError{Letter: g, Reason: fmt.Sprintf("position %d is already %c", i+1, have)}
		}
		out.Greens[i] = g
	}
	for l := 0; l < alphabet; l++ {
		out.MinCounts[l] = max(out.MinCounts[l], b.MinCounts[l])
		if m := b.MaxCounts[l]; m != NoMax && (out.MaxCounts[l] == NoMax || m < out.MaxCounts[l]) {
			out.MaxCounts[l] = m
		}
		out.Banned[l] |= b.Banned[l]
	}
	out.Forbidden.InPlaceUnion(b.Forbidden)
	out.Tested.InPlaceUnion(b.Tested)

	// Greens from different guesses can together demand more copies than
	// either guess confirmed on its own.
	greens := countLetters(string(out.Greens))
	for l, n := range greens {
		out.MinCounts[l] = max(out.MinCounts[l], n)
	}

	if err := out.Validate(); err != nil {
		return nil, err
	}
	return out, nil
}

// Apply is Merge(c, AnalyzeResult(guess, fb)).
func (c *Constraints) Apply(guess string, fb Feedback) (*Constraints, error) {
	delta, err := AnalyzeResult(guess, fb)
	if err != nil {
		return nil, err
	}
	return Merge(c, delta)
}

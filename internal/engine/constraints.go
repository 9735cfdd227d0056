package engine

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
)

// maxWordLength bounds the word length so that banned positions fit in a
// uint32 mask and patterns fit in a Pattern.
const maxWordLength = 16

// minWordLength is the shortest word an Engine plays.
const minWordLength = 2

// NoMax marks a letter whose occurrence count has no known upper bound.
const NoMax = -1

// Constraints is everything learned about the secret during one game.
//
// A Constraints is never modified after it has been returned by
// AnalyzeResult, Merge or Apply; merging produces a new value.
type Constraints struct {
	Length int
	// Greens[i] is the lowercase letter confirmed at position i, or 0.
	Greens []byte
	// MinCounts[l] is the number of times letter l is known to occur.
	MinCounts [alphabet]int
	// MaxCounts[l] is the most times letter l can occur, or NoMax.
	MaxCounts [alphabet]int
	// Banned[l] has bit i set if letter l is known not to be at position i.
	Banned [alphabet]uint32
	// Forbidden letters occur nowhere in the secret.
	Forbidden *bitset.BitSet
	// Tested letters have appeared in at least one guess.
	Tested *bitset.BitSet
}

func NewConstraints(length int) *Constraints {
	c := &Constraints{
		Length:    length,
		Greens:    make([]byte, length),
		Forbidden: bitset.New(alphabet),
		Tested:    bitset.New(alphabet),
	}
	for l := range c.MaxCounts {
		c.MaxCounts[l] = NoMax
	}
	return c
}

func (c *Constraints) Clone() *Constraints {
	out := *c
	out.Greens = append([]byte(nil), c.Greens...)
	out.Forbidden = c.Forbidden.Clone()
	out.Tested = c.Tested.Clone()
	return &out
}

// maxFor returns the upper bound for letter l, counting forbidden letters as
// bounded by zero.
func (c *Constraints) maxFor(l int) (int, bool) {
	if c.Forbidden.Test(uint(l)) {
		return 0, true
	}
	if c.MaxCounts[l] == NoMax {
		return 0, false
	}
	return c.MaxCounts[l], true
}

// Known reports whether letter l is confirmed to be in the secret.
func (c *Constraints) Known(l byte) bool {
	i := letterIndex(l)
	return i >= 0 && c.MinCounts[i] > 0
}

// Untested reports whether letter l has not been guessed yet.
func (c *Constraints) Untested(l byte) bool {
	i := letterIndex(l)
	return i >= 0 && !c.Tested.Test(uint(i))
}

// Validate checks that the facts in c can all hold at once.
func (c *Constraints) Validate() error {
	if c.Length <= 0 || c.Length > maxWordLength || len(c.Greens) != c.Length {
		return &ConflictError{Reason: fmt.Sprintf("bad word length %d with %d green slots", c.Length, len(c.Greens))}
	}
	var greens [alphabet]int
	for _, g := range c.Greens {
		if l := letterIndex(g); l >= 0 {
			greens[l]++
		}
	}
	total := 0
	for l := 0; l < alphabet; l++ {
		need := max(c.MinCounts[l], greens[l])
		total += need
		if limit, ok := c.maxFor(l); ok && need > limit {
			reason := "required more times than allowed"
			if c.Forbidden.Test(uint(l)) {
				reason = "both required and forbidden"
			}
			return &ConflictError{Letter: letterAt(l), Min: need, Max: limit, Reason: reason}
		}
	}
	if total > c.Length {
		return &ConflictError{Reason: fmt.Sprintf("%d letters required in a %d letter word", total, c.Length)}
	}
	for i, g := range c.Greens {
		if g == 0 {
			continue
		}
		l := letterIndex(g)
		if l < 0 {
			return &ConflictError{Reason: fmt.Sprintf("non-letter %q at position %d", g, i+1)}
		}
		if c.Banned[l]&(1<<i) != 0 {
			return &ConflictError{
				Letter: g,
				Min:    c.MinCounts[l],
				Max:    c.MaxCounts[l],
				Reason: fmt.Sprintf("both confirmed and banned at position %d", i+1),
			}
		}
	}
	return nil
}

// Violation returns nil if word is consistent with c, and otherwise describes
// the first fact it breaks. It agrees with Matches.
func (c *Constraints) Violation(word string) error {
	if len(word) != c.Length {
		return fmt.Errorf("need %d letters, got %d", c.Length, len(word))
	}
	for i := 0; i < len(word); i++ {
		if letterIndex(word[i]) < 0 {
			return fmt.Errorf("can't use %q", word[i])
		}
	}

	counts := countLetters(word)
	for l, n := range counts {
		ch := letterAt(l)
		need := c.MinCounts[l]
		limit, bounded := c.maxFor(l)
		switch {
		case bounded && limit == 0 && n > 0:
			return fmt.Errorf("can't use %c", ch)
		case bounded && limit == need && n != limit:
			return fmt.Errorf("need to use %c exactly %d times", ch, limit)
		case n < need:
			return fmt.Errorf("need to use %c at least %d times", ch, need)
		case bounded && n > limit:
			return fmt.Errorf("can't use %c more than %d times", ch, limit)
		}
	}

	for i := 0; i < len(word); i++ {
		l := letterIndex(word[i])
		if g := c.Greens[i]; g != 0 && letterIndex(g) != l {
			return fmt.Errorf("need %c as letter %d", g, i+1)
		}
		if c.Banned[l]&(1<<i) != 0 {
			return fmt.Errorf("can't use %c as letter %d", letterAt(l), i+1)
		}
	}
	return nil
}

// Snapshot is a serializable view of Constraints.
type Snapshot struct {
	Length          int              `json:"length"`
	Greens          map[int]string   `json:"greens"`
	MinCounts       map[string]int   `json:"min_counts"`
	MaxCounts       map[string]int   `json:"max_counts"`
	BannedPositions map[string][]int `json:"banned_positions"`
	Forbidden       string           `json:"forbidden"`
	Tested          string           `json:"tested"`
}

func (c *Constraints) Snapshot() Snapshot {
	s := Snapshot{
		Length:          c.Length,
		Greens:          map[int]string{},
		MinCounts:       map[string]int{},
		MaxCounts:       map[string]int{},
		BannedPositions: map[string][]int{},
	}
	for i, g := range c.Greens {
		if g != 0 {
			s.Greens[i] = string(g)
		}
	}
	var forbidden, tested []byte
	for l := 0; l < alphabet; l++ {
		key := string(letterAt(l))
		if c.MinCounts[l] > 0 {
			s.MinCounts[key] = c.MinCounts[l]
		}
		if c.MaxCounts[l] != NoMax {
			s.MaxCounts[key] = c.MaxCounts[l]
		}
		for i := 0; i < c.Length; i++ {
			if c.Banned[l]&(1<<i) != 0 {
				s.BannedPositions[key] = append(s.BannedPositions[key], i)
			}
		}
		if c.Forbidden.Test(uint(l)) {
			forbidden = append(forbidden, letterAt(l))
		}
		if c.Tested.Test(uint(l)) {
			tested = append(tested, letterAt(l))
		}
	}
	s.Forbidden = string(forbidden)
	s.Tested = string(tested)
	return s
}

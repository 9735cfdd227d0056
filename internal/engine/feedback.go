package engine

import (
	"fmt"
	"strings"
)

const alphabet = 26

// Result is the feedback for one letter of one guess.
type Result uint8

const (
	Absent Result = iota
	Present
	Correct
)

func (r Result) String() string {
	switch r {
	case Absent:
		return "absent"
	case Present:
		return "present"
	case Correct:
		return "correct"
	default:
		return fmt.Sprintf("Result(%d)", uint8(r))
	}
}

// Feedback is the per-position result of a guess against the secret.
type Feedback []Result

// Pattern is a Feedback encoded as a base-3 integer, used as a partition key.
type Pattern uint32

func (f Feedback) Code() Pattern {
	var p Pattern
	for _, r := range f {
		p = p*3 + Pattern(r)
	}
	return p
}

func (f Feedback) Won() bool {
	if len(f) == 0 {
		return false
	}
	for _, r := range f {
		if r != Correct {
			return false
		}
	}
	return true
}

// String renders f as one character per position: 'g' correct, 'y' present,
// '.' absent. ParseFeedback accepts the same form.
func (f Feedback) String() string {
	b := make([]byte, len(f))
	for i, r := range f {
		switch r {
		case Correct:
			b[i] = 'g'
		case Present:
			b[i] = 'y'
		default:
			b[i] = '.'
		}
	}
	return string(b)
}

func (f Feedback) MarshalText() ([]byte, error) { return []byte(f.String()), nil }

func (f *Feedback) UnmarshalText(text []byte) error {
	parsed, err := ParseFeedback(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// ParseFeedback parses feedback such as "gy..g" or "21002".
func ParseFeedback(s string) (Feedback, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("%w: empty", ErrInvalidFeedback)
	}
	f := make(Feedback, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case 'g', 'G', '2', '+':
			f[i] = Correct
		case 'y', 'Y', '1', '~':
			f[i] = Present
		case '.', '_', '-', 'b', 'B', 'x', 'X', '0':
			f[i] = Absent
		default:
			return nil, fmt.Errorf("%w: unexpected %q at position %d", ErrInvalidFeedback, s[i], i+1)
		}
	}
	return f, nil
}

// letterIndex maps a-z (either case) to 0-25, and anything else to -1.
func letterIndex(b byte) int {
	b |= 0x20
	if b < 'a' || b > 'z' {
		return -1
	}
	return int(b - 'a')
}

func letterAt(i int) byte { return byte(i) + 'a' }

func countLetters(word string) [alphabet]int {
	var counts [alphabet]int
	for i := 0; i < len(word); i++ {
		if l := letterIndex(word[i]); l >= 0 {
			counts[l]++
		}
	}
	return counts
}

// CheckWord reports whether word is length letters a-z, in either case.
func CheckWord(word string, length int) error {
	if len(word) != length {
		return fmt.Errorf("%w: %q has %d letters, want %d", ErrInvalidWord, word, len(word), length)
	}
	for i := 0; i < len(word); i++ {
		if letterIndex(word[i]) < 0 {
			return fmt.Errorf("%w: %q has non-letter %q", ErrInvalidWord, word, word[i])
		}
	}
	return nil
}

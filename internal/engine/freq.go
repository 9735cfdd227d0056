package engine

import (
	"slices"
)

// FrequencyTables holds letter statistics over the background corpus. It is
// built once and only read afterwards, so one value can be shared by every
// game.
type FrequencyTables struct {
	length int
	words  int
	// letter[l] is the fraction of words containing l at least once.
	letter [alphabet]float64
	// position[i][l] is the fraction of words with l at position i.
	position [][alphabet]float64
	// observed[i] lists the letters seen at position i, most frequent first.
	observed [][]byte
}

// NewFrequencyTables builds tables from the words of the given length; other
// words are skipped.
func NewFrequencyTables(words []string, length int) *FrequencyTables {
	t := &FrequencyTables{
		length:   length,
		position: make([][alphabet]float64, length),
		observed: make([][]byte, length),
	}
	var letterCounts [alphabet]int
	posCounts := make([][alphabet]int, length)
	for _, w := range words {
		if CheckWord(w, length) != nil {
			continue
		}
		t.words++
		var seen [alphabet]bool
		for i := 0; i < len(w); i++ {
			l := letterIndex(w[i])
			posCounts[i][l]++
			if !seen[l] {
				seen[l] = true
				letterCounts[l]++
			}
		}
	}
	if t.words == 0 {
		return t
	}

	n := float64(t.words)
	for l, c := range letterCounts {
		t.letter[l] = float64(c) / n
	}
	for i := range posCounts {
		var letters []byte
		for l, c := range posCounts[i] {
			t.position[i][l] = float64(c) / n
			if c > 0 {
				letters = append(letters, letterAt(l))
			}
		}
		counts := posCounts[i]
		slices.SortStableFunc(letters, func(a, b byte) int {
			return counts[b-'a'] - counts[a-'a']
		})
		t.observed[i] = letters
	}
	return t
}

func (t *FrequencyTables) Length() int { return t.length }

// Words is the number of corpus words the tables were built from.
func (t *FrequencyTables) Words() int { return t.words }

func (t *FrequencyTables) Letter(b byte) float64 {
	l := letterIndex(b)
	if l < 0 {
		return 0
	}
	return t.letter[l]
}

func (t *FrequencyTables) Position(i int, b byte) float64 {
	l := letterIndex(b)
	if l < 0 || i < 0 || i >= t.length {
		return 0
	}
	return t.position[i][l]
}

// Observed returns the letters seen at position i, most frequent first.
func (t *FrequencyTables) Observed(i int) []byte {
	if i < 0 || i >= t.length {
		return nil
	}
	return slices.Clone(t.observed[i])
}

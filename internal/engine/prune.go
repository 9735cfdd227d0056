package engine

// A pruneRule reports whether a partial word is still worth extending toward
// a word of the given length.
type pruneRule func(partial []byte, length int) bool

// needsVowel drops partials of three or more letters with no vowel.
func needsVowel(isVowel func(byte) bool) pruneRule {
	return func(partial []byte, _ int) bool {
		if len(partial) < 3 {
			return true
		}
		for _, b := range partial {
			if isVowel(b) {
				return true
			}
		}
		return false
	}
}

// limitConsonantRun drops partials ending in run consonants in a row, unless
// the run finishes the word.
func limitConsonantRun(isVowel func(byte) bool, run int) pruneRule {
	return func(partial []byte, length int) bool {
		if len(partial) < run || len(partial) >= length {
			return true
		}
		for _, b := range partial[len(partial)-run:] {
			if isVowel(b) {
				return true
			}
		}
		return false
	}
}

// consistentPrefix drops partials that already contradict c: a wrong letter
// on a green, a letter banned at its position or globally, or more copies of
// a letter than c allows.
func consistentPrefix(c *Constraints) pruneRule {
	return func(partial []byte, _ int) bool {
		if c == nil || len(partial) == 0 {
			return true
		}
		i := len(partial) - 1
		l := letterIndex(partial[i])
		if l < 0 {
			return false
		}
		if g := c.Greens[i]; g != 0 && letterIndex(g) != l {
			return false
		}
		if c.Banned[l]&(1<<i) != 0 {
			return false
		}
		limit, bounded := c.maxFor(l)
		if !bounded {
			return true
		}
		n := 0
		for _, b := range partial {
			if letterIndex(b) == l {
				n++
			}
		}
		return n <= limit
	}
}

func keepPartial(rules []pruneRule, partial []byte, length int) bool {
	for _, r := range rules {
		if !r(partial, length) {
			return false
		}
	}
	return true
}

package engine

// Matches reports whether word could still be the secret.
func (c *Constraints) Matches(word string) bool {
	if len(word) != c.Length {
		return false
	}
	var counts [alphabet]int
	for i := 0; i < len(word); i++ {
		l := letterIndex(word[i])
		if l < 0 {
			return false
		}
		if g := c.Greens[i]; g != 0 && letterIndex(g) != l {
			return false
		}
		if c.Banned[l]&(1<<i) != 0 || c.Forbidden.Test(uint(l)) {
			return false
		}
		counts[l]++
	}
	for l, n := range counts {
		if n < c.MinCounts[l] {
			return false
		}
		if m := c.MaxCounts[l]; m != NoMax && n > m {
			return false
		}
	}
	return true
}

// FilterCandidates returns the words in pool that satisfy c, in pool order.
// pool is not modified. A nil c matches everything.
func FilterCandidates(c *Constraints, pool []string) []string {
	out := make([]string, 0, len(pool))
	for _, w := range pool {
		if c == nil || c.Matches(w) {
			out = append(out, w)
		}
	}
	return out
}

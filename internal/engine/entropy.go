package engine

import "math"

// Partition groups pool by the feedback guess would get from each secret,
// returning the size of each bucket.
func Partition(guess string, pool []string) map[Pattern]int {
	buckets := make(map[Pattern]int)
	for _, secret := range pool {
		if len(secret) != len(guess) {
			continue
		}
		buckets[simulatePattern(guess, secret)]++
	}
	return buckets
}

// Entropy is the Shannon entropy, in bits, of the partition of pool by guess.
// It lies in [0, log2(len(pool))].
func Entropy(guess string, pool []string) float64 {
	e, _ := partitionStats(guess, pool)
	return e
}

// WorstCaseBucket is the size of the largest bucket in the partition of pool
// by guess. Smaller is better.
func WorstCaseBucket(guess string, pool []string) int {
	_, worst := partitionStats(guess, pool)
	return worst
}

func partitionStats(guess string, pool []string) (entropy float64, worst int) {
	buckets := Partition(guess, pool)
	total := 0
	for _, n := range buckets {
		total += n
	}
	if total == 0 {
		return 0, 0
	}
	t := float64(total)
	for _, n := range buckets {
		p := float64(n) / t
		entropy -= p * math.Log2(p)
		worst = max(worst, n)
	}
	return entropy, worst
}

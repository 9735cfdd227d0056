package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEntropy(t *testing.T) {
	tests := []struct {
		name    string
		guess   string
		pool    []string
		entropy float64
		worst   int
	}{
		// crane gets ggggg, ..g.g, .yg.g and ygg.g.
		{"all distinct", "crane", []string{"crane", "slate", "stare", "trace"}, 2, 1},
		{"one bucket", "fuzzy", []string{"crane", "trace"}, 0, 2},
		{"empty pool", "crane", nil, 0, 0},
		{"two even buckets", "fuzzy", []string{"crane", "jumbo", "trace", "buxom"}, 1, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.entropy, Entropy(tt.guess, tt.pool), 1e-9)
			assert.Equal(t, tt.worst, WorstCaseBucket(tt.guess, tt.pool))
		})
	}
}

func TestPartition(t *testing.T) {
	buckets := Partition("crane", []string{"crane", "trace", "grace", "brace"})
	assert.Equal(t, map[Pattern]int{
		mustFeedback(t, "ggggg").Code(): 1,
		mustFeedback(t, "ygg.g").Code(): 3,
	}, buckets)
}

func TestEntropyBounds(t *testing.T) {
	pool := sampleWords(t, 80)
	upper := math.Log2(float64(len(pool)))
	for _, g := range pool[:20] {
		e := Entropy(g, pool)
		assert.GreaterOrEqual(t, e, 0.0)
		assert.LessOrEqual(t, e, upper+1e-9)
		worst := WorstCaseBucket(g, pool)
		assert.GreaterOrEqual(t, worst, 1)
		assert.LessOrEqual(t, worst, len(pool))
	}
}

func BenchmarkEntropy(b *testing.B) {
	pool := sampleWords(b, 500)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Entropy(pool[i%len(pool)], pool)
	}
}

package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benjaminjkraft/wordlebot/internal/corpus"
)

func sampleWords(t testing.TB, n int) []string {
	t.Helper()
	words := corpus.Default(5).Words
	require.NotEmpty(t, words)
	// Take every k-th word so the sample spans the alphabet.
	k := max(len(words)/n, 1)
	var out []string
	for i := 0; i < len(words) && len(out) < n; i += k {
		out = append(out, words[i])
	}
	return out
}

func TestSimulateFeedback(t *testing.T) {
	tests := []struct {
		guess, secret string
		want          string
	}{
		{"crane", "crane", "ggggg"},
		{"speed", "abide", "..y.y"},
		{"eerie", "there", "y.y.g"},
		{"llama", "hello", "yy..."},
		{"speed", "there", "..gy."},
		{"fuzzy", "crane", "....."},
		{"CRANE", "trace", "ygg.g"},
	}
	for _, tt := range tests {
		t.Run(tt.guess+"/"+tt.secret, func(t *testing.T) {
			assert.Equal(t, tt.want, SimulateFeedback(tt.guess, tt.secret).String())
		})
	}
}

func TestSimulateFeedbackProperties(t *testing.T) {
	words := sampleWords(t, 60)
	for _, g := range words {
		assert.True(t, SimulateFeedback(g, g).Won(), g)
		for _, s := range words {
			fb := SimulateFeedback(g, s)
			require.Len(t, fb, len(g))
			assert.Equal(t, fb.Won(), g == s, "%s/%s", g, s)

			// No letter is reported present or correct more often than
			// the secret has it.
			secretCounts := countLetters(s)
			var marked [alphabet]int
			for i, r := range fb {
				if r != Absent {
					marked[letterIndex(g[i])]++
				}
				if r == Correct {
					assert.Equal(t, g[i], s[i])
				}
			}
			for l := range marked {
				assert.LessOrEqual(t, marked[l], secretCounts[l], "%s/%s letter %c", g, s, letterAt(l))
			}
		}
	}
}

func TestPatternMatchesFeedback(t *testing.T) {
	words := sampleWords(t, 30)
	for _, g := range words {
		for _, s := range words {
			assert.Equal(t, SimulateFeedback(g, s).Code(), simulatePattern(g, s))
		}
	}
}

func BenchmarkSimulate(b *testing.B) {
	words := corpus.Default(5).Words
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		simulatePattern(words[i%len(words)], words[(i*7)%len(words)])
	}
}

package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benjaminjkraft/wordlebot/internal/corpus"
)

type fakeValidator struct {
	known map[string]bool
	// partial makes FilterKnownWords return the known words along with err.
	partial bool
	err     error
	calls   int
}

func (f *fakeValidator) FilterKnownWords(_ context.Context, words []string) ([]string, error) {
	f.calls++
	if f.err != nil && !f.partial {
		return nil, f.err
	}
	var out []string
	for _, w := range words {
		if f.known[w] {
			out = append(out, w)
		}
	}
	return out, f.err
}

func newTestSynthesizer(v Validator) *Synthesizer {
	tables := NewFrequencyTables(corpus.Default(5).Words, 5)
	return NewSynthesizer(tables, v, 100, 0, "aeiou", nil)
}

func TestSynthesize(t *testing.T) {
	c, err := AnalyzeResult("crane", mustFeedback(t, "g...."))
	require.NoError(t, err)

	words := newTestSynthesizer(nil).Synthesize(context.Background(), c, nil)
	require.NotEmpty(t, words)
	assert.LessOrEqual(t, len(words), 100)
	for _, w := range words {
		assert.Len(t, w, 5)
		assert.True(t, c.Matches(w), w)
	}

	again := newTestSynthesizer(nil).Synthesize(context.Background(), c, map[string]bool{words[0]: true})
	assert.NotContains(t, again, words[0])
}

func TestSynthesizeValidation(t *testing.T) {
	ctx := context.Background()
	c, err := AnalyzeResult("crane", mustFeedback(t, "g...."))
	require.NoError(t, err)
	all := newTestSynthesizer(nil).Synthesize(ctx, c, nil)
	require.GreaterOrEqual(t, len(all), 2)
	known := map[string]bool{all[0]: true, all[1]: true}

	t.Run("filters to known words", func(t *testing.T) {
		v := &fakeValidator{known: known}
		got := newTestSynthesizer(v).Synthesize(ctx, c, nil)
		assert.Equal(t, []string{all[0], all[1]}, got)
		assert.Equal(t, 1, v.calls)
	})
	t.Run("unavailable keeps everything", func(t *testing.T) {
		v := &fakeValidator{err: errors.New("dictionary down")}
		got := newTestSynthesizer(v).Synthesize(ctx, c, nil)
		assert.Equal(t, all, got)
	})
	t.Run("partial failure keeps what came back", func(t *testing.T) {
		v := &fakeValidator{known: known, partial: true, err: errors.New("some lookups failed")}
		got := newTestSynthesizer(v).Synthesize(ctx, c, nil)
		assert.Equal(t, []string{all[0], all[1]}, got)
	})
}

func TestSynthesizeNothingPossible(t *testing.T) {
	tables := NewFrequencyTables([]string{"crane"}, 5)
	s := NewSynthesizer(tables, &fakeValidator{}, 10, 0, "aeiou", nil)
	c, err := AnalyzeResult("crane", mustFeedback(t, "....."))
	require.NoError(t, err)
	assert.Empty(t, s.Synthesize(context.Background(), c, nil))
}

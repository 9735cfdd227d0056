package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPruneRules(t *testing.T) {
	vowels := newLetterSet("aeiouy")
	speed, err := AnalyzeResult("speed", mustFeedback(t, "..y.y"))
	require.NoError(t, err)

	tests := []struct {
		name    string
		rule    pruneRule
		partial string
		want    bool
	}{
		{"vowel: short", needsVowel(vowels.has), "st", true},
		{"vowel: missing", needsVowel(vowels.has), "str", false},
		{"vowel: present", needsVowel(vowels.has), "sta", true},
		{"vowel: y counts", needsVowel(vowels.has), "cry", true},
		{"run: too long", limitConsonantRun(vowels.has, 3), "astr", false},
		{"run: broken", limitConsonantRun(vowels.has, 3), "ast", true},
		{"run: ends the word", limitConsonantRun(vowels.has, 3), "antsy", true},
		{"run: at the last letter", limitConsonantRun(vowels.has, 3), "aistr", true},
		{"prefix: forbidden", consistentPrefix(speed), "s", false},
		{"prefix: fine", consistentPrefix(speed), "ab", true},
		{"prefix: banned slot", consistentPrefix(speed), "abe", false},
		{"prefix: over max", consistentPrefix(speed), "eabce", false},
		{"prefix: nil", consistentPrefix(nil), "zzz", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.rule([]byte(tt.partial), 5))
		})
	}
}

func TestPrefixRespectsGreens(t *testing.T) {
	c, err := AnalyzeResult("crane", mustFeedback(t, "g...."))
	require.NoError(t, err)
	rule := consistentPrefix(c)
	assert.True(t, rule([]byte("c"), 5))
	assert.False(t, rule([]byte("s"), 5))
}

func TestKeepPartial(t *testing.T) {
	vowels := newLetterSet("aeiou")
	rules := []pruneRule{needsVowel(vowels.has), limitConsonantRun(vowels.has, 3)}
	assert.True(t, keepPartial(rules, []byte("sta"), 5))
	assert.False(t, keepPartial(rules, []byte("sts"), 5))
	assert.True(t, keepPartial(nil, []byte("sts"), 5))
}

package corpus

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadWords(t *testing.T) {
	input := `# a comment
Crane 12
slate

  trace extra fields
#skipped
`
	words, err := ReadWords(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []string{"crane", "slate", "trace"}, words)
}

func TestOfLength(t *testing.T) {
	got := OfLength([]string{"crane", "cranes", "cr4ne", "crane", "Slate", "slate", "ox"}, 5)
	assert.Equal(t, []string{"crane", "slate"}, got)
}

func TestDefault(t *testing.T) {
	c := Default(5)
	assert.GreaterOrEqual(t, len(c.Words), 500)
	require.NotEmpty(t, c.Openers)
	assert.Equal(t, "slate", c.Openers[0])
	for _, w := range c.Openers {
		assert.Contains(t, c.Words, w)
	}
	for _, w := range c.Words {
		assert.Len(t, w, 5)
		assert.Equal(t, strings.ToLower(w), w)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	words := filepath.Join(dir, "words.txt")
	require.NoError(t, os.WriteFile(words, []byte("alpha\nbravo\ncharlie\n"), 0o644))

	c, err := Load("", words, 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "bravo"}, c.Words)
	assert.NotEmpty(t, c.Openers)

	_, err = Load("", words, 6)
	assert.ErrorContains(t, err, "no 6 letter words")

	_, err = Load(filepath.Join(dir, "missing.txt"), "", 5)
	assert.Error(t, err)
}

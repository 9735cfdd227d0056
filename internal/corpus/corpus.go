// Package corpus loads the opening words and background word list the engine
// is built from.
package corpus

import (
	"bufio"
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"
)

//go:embed words.txt
var defaultWords []byte

//go:embed openers.txt
var defaultOpeners []byte

type Corpus struct {
	// Openers are hand-picked first guesses, best first.
	Openers []string
	// Words is the background list used for frequency tables and as the
	// default candidate pool.
	Words []string
}

// Default returns the embedded lists, restricted to words of the given length.
func Default(length int) *Corpus {
	c, err := Load("", "", length)
	if err != nil {
		panic(fmt.Sprintf("embedded corpus: %v", err))
	}
	return c
}

// Load reads the opening words and word list from the given files, using
// the embedded lists for empty paths. Words of other lengths, or with
// anything but letters a-z, are skipped.
func Load(openersPath, wordsPath string, length int) (*Corpus, error) {
	openers, err := readSource(openersPath, defaultOpeners)
	if err != nil {
		return nil, fmt.Errorf("opening words: %w", err)
	}
	words, err := readSource(wordsPath, defaultWords)
	if err != nil {
		return nil, fmt.Errorf("word list: %w", err)
	}
	c := &Corpus{Openers: OfLength(openers, length), Words: OfLength(words, length)}
	if len(c.Words) == 0 {
		return nil, fmt.Errorf("word list has no %d letter words", length)
	}
	return c, nil
}

func readSource(path string, fallback []byte) ([]string, error) {
	if path == "" {
		return ReadWords(bytes.NewReader(fallback))
	}
	return ReadWordsFromFile(path)
}

// ReadWordsFromFile uses ReadWords to read from the specified file.
func ReadWordsFromFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open word file: %w", err)
	}
	defer f.Close()
	return ReadWords(f)
}

// ReadWords reads one word per line from r, lowercased. Blank lines and
// lines starting with # are skipped, as is anything after the first field,
// so word-frequency lists can be read directly.
func ReadWords(r io.Reader) ([]string, error) {
	sc := bufio.NewScanner(r)
	var words []string
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, strings.ToLower(strings.Fields(line)[0]))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scanner error: %w", err)
	}
	return words, nil
}

// OfLength returns the words of exactly length letters a-z, dropping
// duplicates and keeping order.
func OfLength(words []string, length int) []string {
	out := make([]string, 0, len(words))
	seen := make(map[string]bool, len(words))
	for _, w := range words {
		if len(w) != length || seen[w] || strings.IndexFunc(w, func(r rune) bool {
			return r < 'a' || r > 'z'
		}) >= 0 {
			continue
		}
		seen[w] = true
		out = append(out, w)
	}
	return out
}

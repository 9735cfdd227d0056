package game

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/exp/constraints"
)

const histogramSize = 100

// Histogram counts games by number of guesses. Anything past the end is
// counted in the last bucket.
type Histogram [histogramSize]int

func (h *Histogram) Add(guesses int) {
	h[min(max(guesses, 0), histogramSize-1)]++
}

func (h *Histogram) Games() int {
	n := 0
	for _, c := range h {
		n += c
	}
	return n
}

type metricImpl[T constraints.Ordered] struct {
	name        string
	badnessFunc func(*Histogram) T
}

// run reports the worst value of the metric across targets and every target
// that attains it.
func (m *metricImpl[T]) run(results map[string]*Histogram) string {
	var worst T
	var worstWords []string
	for w, r := range results {
		if r.Games() == 0 {
			continue
		}
		badness := m.badnessFunc(r)
		switch {
		case len(worstWords) == 0 || worst < badness:
			worstWords = []string{w}
			worst = badness
		case worst == badness:
			worstWords = append(worstWords, w)
		}
	}
	sort.Strings(worstWords)
	return fmt.Sprintf("worst %v: %v (%v)", m.name, worst, strings.Join(worstWords, " "))
}

type metric interface {
	run(results map[string]*Histogram) string
}

// winCutoff is the number of guesses a real game allows.
const winCutoff = 6

var metrics = []metric{
	&metricImpl[int]{"worst", func(r *Histogram) int {
		for i := histogramSize - 1; i >= 0; i-- {
			if r[i] > 0 {
				return i
			}
		}
		return 0
	}},
	&metricImpl[int]{"best", func(r *Histogram) int {
		for i := 0; i < histogramSize; i++ {
			if r[i] > 0 {
				return i
			}
		}
		return 0
	}},
	&metricImpl[float64]{"average", func(r *Histogram) float64 {
		sum := 0
		ct := 0
		for i := 0; i < histogramSize; i++ {
			sum += i * r[i]
			ct += r[i]
		}
		return float64(sum) / float64(ct)
	}},
	&metricImpl[float64]{"not-in-6", func(r *Histogram) float64 {
		win := 0
		loss := 0
		for i := 0; i <= winCutoff; i++ {
			win += r[i]
		}
		for i := winCutoff + 1; i < histogramSize; i++ {
			loss += r[i]
		}
		return 100 * float64(loss) / float64(win+loss)
	}},
}

// Report describes the worst targets under each metric, one line per metric.
func Report(results map[string]*Histogram) []string {
	lines := make([]string, 0, len(metrics))
	for _, m := range metrics {
		lines = append(lines, m.run(results))
	}
	return lines
}

// Summary aggregates results over every target.
type Summary struct {
	Games   int
	Wins    int
	Average float64
	// Distribution[i] is the number of games that took i guesses.
	Distribution Histogram
}

func Summarize(results map[string]*Histogram) Summary {
	var s Summary
	sum := 0
	for _, r := range results {
		for i, c := range r {
			s.Distribution[i] += c
			s.Games += c
			sum += i * c
			if i <= winCutoff {
				s.Wins += c
			}
		}
	}
	if s.Games > 0 {
		s.Average = float64(sum) / float64(s.Games)
	}
	return s
}

// WinRate is the percentage of games won within six guesses.
func (s Summary) WinRate() float64 {
	if s.Games == 0 {
		return 0
	}
	return 100 * float64(s.Wins) / float64(s.Games)
}

func (s Summary) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d games, %.1f%% won, %.3f guesses on average\n", s.Games, s.WinRate(), s.Average)
	w := len(fmt.Sprint(s.Games))
	cum := 0
	for i, c := range s.Distribution {
		if c == 0 {
			continue
		}
		cum += c
		fmt.Fprintf(&b, "%3d: %*d/%d (cum. %*d/%d)\n", i, w, c, s.Games, w, cum, s.Games)
	}
	return b.String()
}

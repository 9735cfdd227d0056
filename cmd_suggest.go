package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vyevs/ansi"

	"github.com/benjaminjkraft/wordlebot/internal/engine"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Suggest guesses for a game you are playing",
	Long: `Prints a guess, then reads the feedback the game gave for it, one line
per turn: g for a correct letter, y for a present one and . for an absent one
(2/1/0 also work). Prefix the feedback with the word you played if you did not
use the suggestion, e.g. "crane ..gy.".`,
	Args: cobra.NoArgs,
	RunE: runSuggest,
}

func runSuggest(cmd *cobra.Command, _ []string) error {
	eng, err := newEngine()
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	in := bufio.NewScanner(cmd.InOrStdin())

	known := eng.NewConstraints()
	var previous []string
	for turn := 1; ; turn++ {
		candidates := eng.FilterCandidates(known, eng.Words())
		fmt.Fprintln(out, "Possible words:", len(candidates))
		suggestion, err := eng.NextGuess(ctx, known, previous, nil)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Guess %d: %s\n", turn, suggestion)

		for {
			fmt.Fprint(out, "Feedback: ")
			if !in.Scan() {
				if err := in.Err(); err != nil {
					return err
				}
				return nil
			}
			guess, fb, err := parseTurn(in.Text(), suggestion, eng.Config().WordLength)
			if err != nil {
				fmt.Fprintln(out, "Invalid feedback:", err)
				continue
			}
			fmt.Fprintln(out, renderTurn(guess, fb))
			if fb.Won() {
				fmt.Fprintf(out, "Solved in %d!\n", turn)
				return nil
			}
			delta, err := eng.AnalyzeResult(guess, fb)
			if err == nil {
				var next *engine.Constraints
				if next, err = engine.Merge(known, delta); err == nil {
					known = next
				}
			}
			if errors.Is(err, engine.ErrConstraintConflict) {
				fmt.Fprintln(out, "That feedback contradicts earlier turns:", err)
				continue
			} else if err != nil {
				fmt.Fprintln(out, "Invalid feedback:", err)
				continue
			}
			previous = append(previous, guess)
			break
		}
	}
}

// parseTurn reads "feedback" or "word feedback".
func parseTurn(line, suggestion string, length int) (string, engine.Feedback, error) {
	fields := strings.Fields(line)
	guess := suggestion
	switch len(fields) {
	case 1:
	case 2:
		guess = strings.ToLower(fields[0])
		fields = fields[1:]
	default:
		return "", nil, fmt.Errorf("%w: want feedback or a word and feedback", engine.ErrInvalidFeedback)
	}
	if err := engine.CheckWord(guess, length); err != nil {
		return "", nil, err
	}
	fb, err := engine.ParseFeedback(fields[0])
	if err != nil {
		return "", nil, err
	}
	if len(fb) != len(guess) {
		return "", nil, fmt.Errorf("%w: %d results for %d letters", engine.ErrInvalidFeedback, len(fb), len(guess))
	}
	return guess, fb, nil
}

var resultColors = map[engine.Result]string{
	engine.Correct: "green",
	engine.Present: "yellow",
	engine.Absent:  "light gray",
}

// renderTurn colours each letter of guess by its result.
func renderTurn(guess string, fb engine.Feedback) string {
	var b strings.Builder
	for i := range fb {
		b.WriteString(ansi.FGColorName(resultColors[fb[i]]))
		b.WriteByte(guess[i])
	}
	b.WriteString(ansi.Clear)
	return b.String()
}

func printTurns(w io.Writer, turns []engine.Turn) {
	for i, t := range turns {
		fmt.Fprintf(w, "%d: %s %v\n", i+1, renderTurn(t.Guess, t.Feedback), t.Feedback)
	}
}

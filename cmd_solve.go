package main

import (
	"fmt"
	"math/rand/v2"

	"github.com/spf13/cobra"

	"github.com/benjaminjkraft/wordlebot/internal/game"
)

var (
	answer     string
	solveLimit int

	solveCmd = &cobra.Command{
		Use:   "solve",
		Short: "Play a simulated game against a known answer",
		Args:  cobra.NoArgs,
		RunE:  runSolve,
	}
)

func init() {
	solveCmd.Flags().StringVar(&answer, "answer", "", "the secret word; a random corpus word if unset")
	solveCmd.Flags().IntVar(&solveLimit, "limit", 0, "give up after this many guesses (0 plays to the end)")
}

func runSolve(cmd *cobra.Command, _ []string) error {
	eng, err := newEngine()
	if err != nil {
		return err
	}
	target := answer
	if target == "" {
		words := eng.Words()
		target = words[rand.IntN(len(words))]
	}
	var opts []game.PuzzleOption
	if hardMode {
		opts = append(opts, game.HardMode())
	}
	p, err := game.NewPuzzle(target, opts...)
	if err != nil {
		return err
	}

	res, err := game.Play(cmd.Context(), eng, p, solveLimit)
	out := cmd.OutOrStdout()
	printTurns(out, res.Turns)
	if err != nil {
		return err
	}
	if res.Won {
		fmt.Fprintf(out, "Solved %s in %d\n", p.Target(), res.Guesses())
	} else {
		fmt.Fprintf(out, "Gave up on %s after %d\n", p.Target(), res.Guesses())
	}
	return nil
}

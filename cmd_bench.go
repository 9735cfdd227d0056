package main

import (
	"fmt"
	"math/rand/v2"
	"runtime"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/benjaminjkraft/wordlebot/internal/game"
)

var (
	trials      int
	sample      int
	parallelism int
	benchLimit  int
	baseline    string
	seed        uint64

	benchCmd = &cobra.Command{
		Use:   "bench",
		Short: "Play every corpus word and report how many guesses it took",
		Args:  cobra.NoArgs,
		RunE:  runBench,
	}
)

func init() {
	f := benchCmd.Flags()
	f.IntVar(&trials, "trials", 1, "games per answer")
	f.IntVar(&sample, "words", 0, "play only this many random answers (0 plays all)")
	f.IntVar(&parallelism, "parallel", runtime.GOMAXPROCS(0), "games to play at once")
	f.IntVar(&benchLimit, "limit", 0, "give up after this many guesses (0 plays to the end)")
	f.StringVar(&baseline, "solver", "engine", `"engine", or "random" to guess any possible word`)
	f.Uint64Var(&seed, "seed", 1, "seed for --words and the random solver")
}

func runBench(cmd *cobra.Command, _ []string) error {
	eng, err := newEngine()
	if err != nil {
		return err
	}
	targets := eng.Words()
	rng := rand.New(rand.NewPCG(seed, seed))
	if sample > 0 && sample < len(targets) {
		rng.Shuffle(len(targets), func(i, j int) { targets[i], targets[j] = targets[j], targets[i] })
		targets = targets[:sample]
	}

	var solver game.Solver
	switch baseline {
	case "engine":
		solver = eng
	case "random":
		solver = game.NewRandomSolver(eng.Words(), eng.Config().WordLength, seed)
	default:
		return fmt.Errorf("unknown solver %q", baseline)
	}

	bar := progressbar.Default(int64(len(targets) * max(trials, 1)))
	results, err := game.PlayAll(cmd.Context(), solver, targets, game.PlayAllOptions{
		Parallelism: parallelism,
		Trials:      trials,
		Limit:       benchLimit,
		HardMode:    hardMode,
		OnDone: func(string, game.Result) {
			_ = bar.Add(1)
		},
	})
	_ = bar.Finish()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, game.Summarize(results))
	for _, line := range game.Report(results) {
		fmt.Fprintln(out, line)
	}
	return nil
}

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"reversi/experiments"
	"reversi/meta"
	"reversi/searcher"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Default tournament line-up
var defaultContestants = []string{
	"random",
	"greedy",
	"generous",
	"greedy:eval=sampling,samples=10",
	"greedy:eval=sampling,samples=100",
	"uct:trials=10",
	"uct:trials=100",
	"ucb1:trials=10",
	"ucb1:trials=100",
	"minimax:depth=3",
	"minimax:depth=4",
	"minimax:depth=5",
}

func main() {
	black := flag.String("black", "human", "Black strategy config, e.g. minimax:depth=3")
	white := flag.String("white", "uct:trials=100", "White strategy config")
	rounds := flag.Int("rounds", 0, "Games per pairing (default 1 for a match, 100 for a tournament)")
	seed := flag.Uint64("seed", uint64(time.Now().UnixNano()), "Seed for all random sources")
	goroutines := flag.Int("goroutines", 0, "Games played concurrently (0 = number of CPUs)")
	tournament := flag.Bool("tournament", false, "Run a round-robin over the strategy configs given as arguments")
	out := flag.String("out", "tournament_data", "Output directory for tournament results")
	format := flag.String("format", "csv", "Tournament output format: csv, parquet or all")
	verbose := flag.Bool("verbose", false, "Log every move")
	list := flag.Bool("list", false, "List strategy names and exit")
	throughput := flag.Int("throughput", 0, "Time the strategy configs given as arguments on this many random positions")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	if *list {
		fmt.Println(strings.Join(searcher.Names(), "\n"))
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if *throughput > 0 {
		configs := flag.Args()
		if len(configs) == 0 {
			configs = defaultContestants
		}
		if err := runThroughput(ctx, configs, *throughput, *seed); err != nil {
			log.Fatal().Err(err).Msg("throughput experiment failed")
		}
		return
	}

	if *tournament {
		contestants := flag.Args()
		if len(contestants) == 0 {
			contestants = defaultContestants
		}
		if err := runTournament(ctx, contestants, *rounds, *seed, *goroutines, *out, *format); err != nil {
			log.Fatal().Err(err).Msg("tournament failed")
		}
		return
	}

	if *rounds <= 0 {
		*rounds = 1
	}
	res, err := experiments.RunMatch(ctx, *black, *white, *rounds, *seed, *goroutines)
	if err != nil {
		log.Fatal().Err(err).Msg("match failed")
	}
	for _, g := range res.Games {
		if g.Err != "" {
			fmt.Printf("game %d aborted: %s\n", g.ID, g.Err)
			continue
		}
		fmt.Printf("%d %d\n", g.WhiteDiscs, g.BlackDiscs)
	}
	fmt.Printf("B %d\n", res.BlackWins)
	fmt.Printf("W %d\n", res.WhiteWins)
}

func runTournament(ctx context.Context, contestants []string, rounds int, seed uint64, goroutines int, out, format string) error {
	if rounds <= 0 {
		rounds = meta.DefaultRounds
	}
	res, err := experiments.RunTournament(ctx, experiments.Config{
		Contestants: contestants,
		Rounds:      rounds,
		Seed:        seed,
		Goroutines:  goroutines,
	})
	if err != nil {
		return err
	}

	dir, err := experiments.WriteResult(res, out, format)
	if err != nil {
		return err
	}
	log.Info().Str("dir", dir).Msg("stored tournament results")
	return nil
}

func runThroughput(ctx context.Context, configs []string, positions int, seed uint64) error {
	results, err := experiments.RunThroughput(ctx, configs, positions, 20, seed)
	if err != nil {
		return err
	}
	for _, r := range results {
		fmt.Printf("%-36s %12s/move %10.0f rollouts/s\n", r.Config, r.PerDecision(), r.RolloutsPerSecond())
	}
	return nil
}

package experiments

import (
	"context"
	"reversi/game"
	"reversi/searcher"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

// Throughput is the average cost of one decision for a strategy config,
// measured over the same set of positions for every config.
type Throughput struct {
	Config      string
	Decisions   int
	Duration    time.Duration // Total search time
	Visits      int
	Rollouts    int
	Evaluations int
}

// PerDecision returns the mean search time.
func (t Throughput) PerDecision() time.Duration {
	if t.Decisions == 0 {
		return 0
	}
	return t.Duration / time.Duration(t.Decisions)
}

// RolloutsPerSecond returns zero for strategies that do not sample games.
func (t Throughput) RolloutsPerSecond() float64 {
	if t.Duration <= 0 {
		return 0
	}
	return float64(t.Rollouts) / t.Duration.Seconds()
}

// RunThroughput times every config on positions reached by plies random
// moves from the opening. Positions and searcher RNGs derive from seed.
func RunThroughput(ctx context.Context, configs []string, positions, plies int, seed uint64) ([]Throughput, error) {
	if positions <= 0 {
		return nil, errors.Errorf("positions must be positive, got %d", positions)
	}
	humans, err := validate(configs, seed)
	if err != nil {
		return nil, err
	}
	if humans > 0 {
		return nil, errors.New("human players cannot be timed")
	}

	boards := samplePositions(positions, plies, seed)
	log.Info().Msgf("starting throughput experiment: %d configs on %d positions...", len(configs), len(boards))

	results := make([]Throughput, 0, len(configs))
	for i, config := range configs {
		s, err := searcher.New(config, rand.New(rand.NewSource(seed+uint64(i)+1)))
		if err != nil {
			return nil, err
		}

		res := Throughput{Config: config}
		for _, b := range boards {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			_, metric, err := searcher.Decide(s, b)
			if err != nil {
				return nil, errors.WithMessagef(err, "timing %s", config)
			}
			res.Decisions++
			res.Duration += metric.Duration
			res.Visits += metric.Visits
			res.Rollouts += metric.Rollouts
			res.Evaluations += metric.Evaluations
		}

		log.Info().
			Str("config", config).
			Dur("per_decision", res.PerDecision()).
			Float64("rollouts_per_sec", res.RolloutsPerSecond()).
			Msg("completed config")
		results = append(results, res)
	}
	return results, nil
}

// samplePositions returns n non-terminal positions where the side to move
// has a choice to make.
func samplePositions(n, plies int, seed uint64) []*game.Board {
	rng := rand.New(rand.NewSource(seed))
	boards := make([]*game.Board, 0, n)
	for attempts := 0; len(boards) < n && attempts < 100*n; attempts++ {
		b := game.NewBoard()
		for i := 0; i < plies && !b.IsTerminal(); i++ {
			b.Play(game.RandomMove(b, rng))
		}
		if len(b.LegalMoves()) > 1 {
			boards = append(boards, b)
		}
	}
	return boards
}

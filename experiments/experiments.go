package experiments

import (
	"context"
	"reversi/engine"
	"reversi/experiments/metrics"
	"reversi/game"
	"reversi/searcher"
	"runtime"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
)

// Config describes a round-robin between strategy configs. Every ordered
// pairing (including a strategy against itself) plays Rounds games with the
// first contestant as Black.
type Config struct {
	Contestants []string
	Rounds      int
	Seed        uint64
	Goroutines  int // Games played concurrently; each game owns its board and RNGs
}

type Result struct {
	ID          uuid.UUID
	Contestants []string
	BlackWins   [][]int // BlackWins[i][j]: games i (Black) won against j
	WhiteWins   [][]int // WhiteWins[i][j]: games j (White) won against i
	Draws       [][]int
	Aborted     int
	Games       []metrics.GameRecord
	Moves       []metrics.MoveRecord
}

type job struct {
	id    int
	black int
	white int
}

type outcome struct {
	winner game.Player
	game   metrics.GameRecord
	moves  []metrics.MoveRecord
}

// RunTournament plays every pairing and aggregates the results. A game whose
// decision aborts is recorded with its error and counted in Aborted; it does
// not stop the tournament.
func RunTournament(ctx context.Context, cfg Config) (*Result, error) {
	if len(cfg.Contestants) == 0 {
		return nil, errors.New("tournament needs at least one contestant")
	}
	if cfg.Rounds <= 0 {
		return nil, errors.Errorf("rounds must be positive, got %d", cfg.Rounds)
	}
	humans, err := validate(cfg.Contestants, cfg.Seed)
	if err != nil {
		return nil, err
	}
	if humans > 0 {
		return nil, errors.New("human players cannot join a tournament")
	}

	jobs := []job{}
	for i := range cfg.Contestants {
		for j := range cfg.Contestants {
			for r := 0; r < cfg.Rounds; r++ {
				jobs = append(jobs, job{id: len(jobs) + 1, black: i, white: j})
			}
		}
	}

	result := &Result{
		ID:          uuid.New(),
		Contestants: cfg.Contestants,
		BlackWins:   square(len(cfg.Contestants)),
		WhiteWins:   square(len(cfg.Contestants)),
		Draws:       square(len(cfg.Contestants)),
	}

	log.Info().Msgf("starting tournament %s: %d contestants, %d games...", result.ID, len(cfg.Contestants), len(jobs))

	outcomes, err := playAll(ctx, cfg, result.ID, jobs)
	if err != nil {
		return nil, err
	}

	// Aggregate in job order
	for k, o := range outcomes {
		jb := jobs[k]
		result.Games = append(result.Games, o.game)
		result.Moves = append(result.Moves, o.moves...)
		switch {
		case o.game.Err != "":
			result.Aborted++
		case o.winner == game.Black:
			result.BlackWins[jb.black][jb.white]++
		case o.winner == game.White:
			result.WhiteWins[jb.black][jb.white]++
		default:
			result.Draws[jb.black][jb.white]++
		}
	}

	log.Info().Msgf("completed tournament %s (%d aborted)", result.ID, result.Aborted)
	return result, nil
}

// MatchResult tallies repeated games between two fixed strategies.
type MatchResult struct {
	ID        uuid.UUID
	BlackWins int
	WhiteWins int
	Draws     int
	Aborted   int
	Games     []metrics.GameRecord
	Moves     []metrics.MoveRecord
}

// RunMatch plays rounds games of black against white. Games with a human
// player run one at a time.
func RunMatch(ctx context.Context, black, white string, rounds int, seed uint64, goroutines int) (*MatchResult, error) {
	if rounds <= 0 {
		return nil, errors.Errorf("rounds must be positive, got %d", rounds)
	}
	humans, err := validate([]string{black, white}, seed)
	if err != nil {
		return nil, err
	}
	if humans > 0 {
		goroutines = 1
	}

	jobs := make([]job, rounds)
	for r := range jobs {
		jobs[r] = job{id: r + 1, black: 0, white: 1}
	}

	m := &MatchResult{ID: uuid.New()}
	cfg := Config{Contestants: []string{black, white}, Rounds: rounds, Seed: seed, Goroutines: goroutines}
	outcomes, err := playAll(ctx, cfg, m.ID, jobs)
	if err != nil {
		return nil, err
	}

	for _, o := range outcomes {
		m.Games = append(m.Games, o.game)
		m.Moves = append(m.Moves, o.moves...)
		switch {
		case o.game.Err != "":
			m.Aborted++
		case o.winner == game.Black:
			m.BlackWins++
		case o.winner == game.White:
			m.WhiteWins++
		default:
			m.Draws++
		}
	}
	return m, nil
}

// validate builds each config once and counts interactive players.
func validate(contestants []string, seed uint64) (humans int, err error) {
	for _, c := range contestants {
		s, err := searcher.New(c, rand.New(rand.NewSource(seed)))
		if err != nil {
			return 0, err
		}
		if _, ok := s.(*searcher.Human); ok {
			humans++
		}
	}
	return humans, nil
}

func playAll(ctx context.Context, cfg Config, id uuid.UUID, jobs []job) ([]outcome, error) {
	goroutines := cfg.Goroutines
	if goroutines <= 0 {
		goroutines = runtime.NumCPU()
	}

	outcomes := make([]outcome, len(jobs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(goroutines)
	for k, jb := range jobs {
		k, jb := k, jb
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			o, err := playOne(cfg.Contestants[jb.black], cfg.Contestants[jb.white], cfg.Seed, id, jb.id)
			if err != nil {
				return err
			}
			outcomes[k] = o
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outcomes, nil
}

// playOne builds fresh searchers with RNGs derived from the game id, so a
// seed reproduces every game regardless of scheduling.
func playOne(black, white string, seed uint64, tournament uuid.UUID, id int) (outcome, error) {
	blackAgent, err := searcher.New(black, rand.New(rand.NewSource(seed+2*uint64(id))))
	if err != nil {
		return outcome{}, err
	}
	whiteAgent, err := searcher.New(white, rand.New(rand.NewSource(seed+2*uint64(id)+1)))
	if err != nil {
		return outcome{}, err
	}

	e := engine.LocalEngine(blackAgent, whiteAgent)
	winner, gameMetric, moveMetrics, runErr := e.Run()

	record := metrics.GameRecord{
		ID:         id,
		Tournament: tournament,
		Black:      black,
		White:      white,
		GameMetric: gameMetric,
	}
	if runErr != nil {
		record.Err = runErr.Error()
		log.Warn().Err(runErr).Msgf("game %d aborted (%s vs %s)", id, black, white)
	} else {
		log.Debug().Msgf("completed game %d (%s vs %s) with winner: %s", id, black, white, winner)
	}

	moves := make([]metrics.MoveRecord, len(moveMetrics))
	for i, mm := range moveMetrics {
		moves[i] = metrics.MoveRecord{Game: id, MoveMetric: mm}
	}
	return outcome{winner: winner, game: record, moves: moves}, nil
}

func square(n int) [][]int {
	m := make([][]int, n)
	for i := range m {
		m[i] = make([]int, n)
	}
	return m
}

// WriteResult stores the tournament under root in the given format ("csv",
// "parquet" or "all") and returns the output directory.
func WriteResult(res *Result, root, format string) (string, error) {
	if format != "csv" && format != "parquet" && format != "all" {
		return "", errors.Errorf("unknown output format %q", format)
	}

	writer, err := metrics.NewWriter(root, "tournament", res.ID)
	if err != nil {
		return "", errors.Wrap(err, "failed to create experiment writer")
	}

	if err := writer.WriteHeader(res.Contestants); err != nil {
		return "", err
	}
	if err := writer.WriteWinMatrix("black.csv", res.BlackWins); err != nil {
		return "", err
	}
	if err := writer.WriteWinMatrix("white.csv", res.WhiteWins); err != nil {
		return "", err
	}
	if err := writer.WriteWinMatrix("draws.csv", res.Draws); err != nil {
		return "", err
	}
	log.Info().Msg("stored win matrices")

	if format != "parquet" {
		if err := writer.WriteGameRecords(res.Games); err != nil {
			return "", err
		}
		if err := writer.WriteMoveRecords(res.Moves); err != nil {
			return "", err
		}
		log.Info().Msg("stored game and move records")
	}
	if format != "csv" {
		if err := writer.WriteGameRecordsParquet(res.Games); err != nil {
			return "", err
		}
		log.Info().Msg("stored parquet game records")
	}
	return writer.Dir(), nil
}

package engine

import (
	"reversi/experiments/metrics"
	"reversi/game"
	"reversi/meta"
	"reversi/searcher"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Engine alternates two searchers over one live board.
type Engine struct {
	Board  *game.Board
	Agents map[game.Player]searcher.Searcher
}

// LocalEngine sets up the standard opening with black to move first.
func LocalEngine(black, white searcher.Searcher) *Engine {
	if black == nil || white == nil {
		panic("need a searcher for both players")
	}
	return &Engine{
		Board: game.NewBoard(),
		Agents: map[game.Player]searcher.Searcher{
			game.Black: black,
			game.White: white,
		},
	}
}

// Run executes the game loop until two consecutive passes. A searcher that
// aborts its decision or returns an illegal move ends the game with an error;
// the board keeps the last committed position.
func (e *Engine) Run() (game.Player, metrics.GameMetric, []metrics.MoveMetric, error) {
	gameMetric := metrics.GameMetric{
		StartingPlayer: e.Board.Active(),
		StartTime:      time.Now(),
	}
	var moveMetrics []metrics.MoveMetric

	log.Debug().Msgf("%s (%s) is starting against %s (%s)",
		e.Board.Active(), e.Agents[e.Board.Active()].Name(),
		e.Board.Active().Opponent(), e.Agents[e.Board.Active().Opponent()].Name())

	for step := 1; !e.Board.IsTerminal(); step++ {
		if step > meta.MAX_PLIES {
			return game.None, e.finish(gameMetric), moveMetrics,
				errors.Errorf("game did not end within %d plies", meta.MAX_PLIES)
		}

		player := e.Board.Active()
		agent := e.Agents[player]
		move, searchMetric, err := searcher.Play(agent, e.Board)
		if err != nil {
			return game.None, e.finish(gameMetric), moveMetrics,
				errors.WithMessagef(err, "ply %d by %s", step, player)
		}

		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         step,
			Player:       player,
			Move:         move,
			SearchMetric: searchMetric,
		})
		gameMetric.TotalMoves++
		if move.IsPass() {
			gameMetric.Passes++
		}

		log.Debug().
			Int("ply", step).
			Str("player", player.String()).
			Str("move", move.String()).
			Int("nodes", searchMetric.Nodes).
			Int("visits", searchMetric.Visits).
			Int("rollouts", searchMetric.Rollouts).
			Floats64("scores", searchMetric.Scores).
			Dur("took", searchMetric.Duration).
			Msg(searchMetric.Strategy)
	}

	winner, err := e.Board.Winner()
	if err != nil {
		return game.None, e.finish(gameMetric), moveMetrics, err
	}
	gameMetric = e.finish(gameMetric)
	gameMetric.Winner = winner
	log.Debug().Msgf("game over after %d plies: %s %d, %s %d, winner %s",
		gameMetric.TotalMoves, game.Black, gameMetric.BlackDiscs, game.White, gameMetric.WhiteDiscs, winner)

	return winner, gameMetric, moveMetrics, nil
}

func (e *Engine) finish(m metrics.GameMetric) metrics.GameMetric {
	m.EndTime = time.Now()
	m.Duration = m.EndTime.Sub(m.StartTime)
	m.BlackDiscs = e.Board.Count(game.Black)
	m.WhiteDiscs = e.Board.Count(game.White)
	return m
}

package searcher

import (
	"reversi/experiments/metrics"
	"reversi/game"
)

// Searcher decides a move for the side to move. Implementations only read b
// and explore on clones; committing the move is the caller's job (see Play).
type Searcher interface {
	Name() string
	FindMove(b *game.Board) (game.Move, metrics.SearchMetric, error)
}

func computeReward(winner, player game.Player) float64 {
	if winner == player {
		return Win
	}
	return Loss
}

package engine

import (
	"reversi/experiments/metrics"
	"reversi/game"
)

type Runner interface {
	// Run plays a game until two consecutive passes or a failed decision
	Run() (winner game.Player, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric, err error)
}

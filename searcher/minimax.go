package searcher

import (
	"fmt"
	"math"
	"reversi/experiments/metrics"
	"reversi/game"
)

// Minimax is a depth-limited minimax search with alpha-beta pruning. Each
// level receives the best value of its parent as the bound to cut against.
type Minimax struct {
	depth    int
	evaluate game.Evaluate
	evalName string
}

func NewMinimax(opts ...Option) *Minimax {
	o := applyOptions(opts)
	return &Minimax{depth: o.depth, evaluate: o.evaluate, evalName: o.evalName}
}

func (m *Minimax) Name() string {
	return fmt.Sprintf("minimax:depth=%d,eval=%s", m.depth, m.evalName)
}

type minimaxRun struct {
	player    game.Player
	evaluate  game.Evaluate
	collector metrics.Collector
}

// FindMove scores every root move by the minimizing reply below it and picks
// the first best. With no legal moves it returns Pass.
func (m *Minimax) FindMove(b *game.Board) (game.Move, metrics.SearchMetric, error) {
	collector := metrics.NewCollector()
	collector.Start(m.Name())

	moves := b.LegalMoves()
	if len(moves) == 0 {
		return game.Pass, collector.Complete(), nil
	}

	run := &minimaxRun{player: b.Active(), evaluate: m.evaluate, collector: collector}
	scores := make([]float64, len(moves))
	bestMove := moves[0]
	bestScore := math.MinInt
	for i, move := range moves {
		next := b.Clone()
		next.Play(move)
		score := run.minimize(next, m.depth, bestScore)
		scores[i] = float64(score)
		if score > bestScore {
			bestScore = score
			bestMove = move
		}
	}

	collector.SetScores(scores)
	return bestMove, collector.Complete(), nil
}

// maximize returns the value of b for the root player to move. Once a reply
// exceeds beta the minimizing parent will never choose this branch, so the
// remaining siblings are skipped.
func (r *minimaxRun) maximize(b *game.Board, depth int, beta int) int {
	r.collector.AddVisit()
	if depth == 0 {
		r.collector.AddEvaluation()
		return r.evaluate(b, r.player)
	}

	moves := b.LegalMoves()
	if len(moves) == 0 {
		next := b.Clone()
		next.Play(game.Pass)
		return r.minimize(next, depth-1, math.MinInt)
	}

	best := math.MinInt
	for _, move := range moves {
		next := b.Clone()
		next.Play(move)
		score := r.minimize(next, depth-1, best)
		if score > beta {
			return beta
		}
		if score > best {
			best = score
		}
	}
	return best
}

// minimize mirrors maximize for the opponent, cutting below alpha.
func (r *minimaxRun) minimize(b *game.Board, depth int, alpha int) int {
	r.collector.AddVisit()
	if depth == 0 {
		r.collector.AddEvaluation()
		return r.evaluate(b, r.player)
	}

	moves := b.LegalMoves()
	if len(moves) == 0 {
		next := b.Clone()
		next.Play(game.Pass)
		return r.maximize(next, depth-1, math.MaxInt)
	}

	best := math.MaxInt
	for _, move := range moves {
		next := b.Clone()
		next.Play(move)
		score := r.maximize(next, depth-1, best)
		if score < alpha {
			return alpha
		}
		if score < best {
			best = score
		}
	}
	return best
}

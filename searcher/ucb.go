package searcher

import (
	"fmt"
	"math"
	"reversi/experiments/metrics"
	"reversi/game"
)

// UCB1 treats the root moves as arms of a flat bandit. Each trial plays one
// random game after the chosen move; no tree is kept beyond the root.
type UCB1 struct {
	trials   int
	cSquared float64
	rng      game.Source
}

func NewUCB1(rng game.Source, opts ...Option) *UCB1 {
	o := applyOptions(opts)
	return &UCB1{trials: o.trials, cSquared: o.cSquared, rng: rng}
}

func (u *UCB1) Name() string {
	return fmt.Sprintf("ucb1:trials=%d", u.trials)
}

// FindMove spends trials*len(moves) rollouts, then picks the move with the
// highest mean reward. The exploration bonus only steers sampling.
func (u *UCB1) FindMove(b *game.Board) (game.Move, metrics.SearchMetric, error) {
	collector := metrics.NewCollector()
	collector.Start(u.Name())

	moves := b.LegalMoves()
	if len(moves) == 0 {
		return game.Pass, collector.Complete(), nil
	}

	player := b.Active()
	rewards := make([]float64, len(moves))
	visits := make([]float64, len(moves))

	for trial := 0; trial < u.trials*len(moves); trial++ {
		j := u.pickArm(trial, rewards, visits)

		next := b.Clone()
		next.Play(moves[j])
		winner := game.Rollout(next, u.rng)
		collector.AddRollout()

		visits[j]++
		rewards[j] += computeReward(winner, player)
	}

	best, means := argmaxMean(rewards, visits)
	collector.SetScores(means)
	if best < 0 {
		// Unreachable with a positive budget; fall back to the first move
		best = 0
	}
	return moves[best], collector.Complete(), nil
}

// pickArm returns the first unvisited arm, otherwise the arm with the highest
// UCB value using the trial index as the total count.
func (u *UCB1) pickArm(trial int, rewards, visits []float64) int {
	for j := range visits {
		if visits[j] == 0 {
			return j
		}
	}

	policy := newUCT(u.cSquared, float64(trial))
	maxIndex := -1
	maxValue := math.Inf(-1)
	for j := range visits {
		if v := policy.evaluate(rewards[j], visits[j]); v > maxValue {
			maxValue = v
			maxIndex = j
		}
	}
	if maxIndex < 0 {
		panic(invariantf("no arm selected at trial %d", trial))
	}
	return maxIndex
}

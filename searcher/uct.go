package searcher

import (
	"fmt"
	"reversi/experiments/metrics"
	"reversi/game"
)

// UCT grows a fresh search tree for every decision.
type UCT struct {
	trials   int
	cSquared float64
	rng      game.Source
}

func NewUCT(rng game.Source, opts ...Option) *UCT {
	o := applyOptions(opts)
	return &UCT{trials: o.trials, cSquared: o.cSquared, rng: rng}
}

func (u *UCT) Name() string {
	return fmt.Sprintf("uct:trials=%d", u.trials)
}

func (u *UCT) FindMove(b *game.Board) (game.Move, metrics.SearchMetric, error) {
	collector := metrics.NewCollector()
	collector.Start(u.Name())

	if len(b.LegalMoves()) == 0 {
		return game.Pass, collector.Complete(), nil
	}

	root := u.buildTree(b, collector)
	move, means := root.findBestMove()
	collector.SetScores(means)
	return move, collector.Complete(), nil
}

func (u *UCT) buildTree(b *game.Board, collector metrics.Collector) *node {
	run := &uctRun{rng: u.rng, cSquared: u.cSquared, collector: collector}
	root := newNode(b.Clone(), collector)
	for i := 0; i < u.trials*len(root.moves); i++ {
		root.play(run)
	}
	return root
}

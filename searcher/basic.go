package searcher

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"reversi/experiments/metrics"
	"reversi/game"

	"github.com/pkg/errors"
)

// Greedy looks one ply ahead and keeps the first move with the best score.
type Greedy struct {
	evaluate game.Evaluate
	evalName string
}

func NewGreedy(opts ...Option) *Greedy {
	o := applyOptions(opts)
	return &Greedy{evaluate: o.evaluate, evalName: o.evalName}
}

// NewGenerous is a greedy player that minimizes its own disc count.
func NewGenerous() *Greedy {
	return NewGreedy(WithEvaluator("inverse", game.EvaluateInversePieces))
}

func (g *Greedy) Name() string {
	return "greedy:eval=" + g.evalName
}

func (g *Greedy) FindMove(b *game.Board) (game.Move, metrics.SearchMetric, error) {
	collector := metrics.NewCollector()
	collector.Start(g.Name())

	moves := b.LegalMoves()
	if len(moves) == 0 {
		return game.Pass, collector.Complete(), nil
	}

	player := b.Active()
	scores := make([]float64, len(moves))
	bestMove := moves[0]
	bestScore := math.MinInt
	for i, move := range moves {
		next := b.Clone()
		next.Play(move)
		score := g.evaluate(next, player)
		collector.AddEvaluation()
		scores[i] = float64(score)
		if score > bestScore {
			bestScore = score
			bestMove = move
		}
	}

	collector.SetScores(scores)
	return bestMove, collector.Complete(), nil
}

// Random plays a uniformly random legal move.
type Random struct {
	rng game.Source
}

func NewRandom(rng game.Source) *Random {
	return &Random{rng: rng}
}

func (r *Random) Name() string {
	return "random"
}

func (r *Random) FindMove(b *game.Board) (game.Move, metrics.SearchMetric, error) {
	collector := metrics.NewCollector()
	collector.Start(r.Name())
	return game.RandomMove(b, r.rng), collector.Complete(), nil
}

// Human reads moves such as "d3" from in, re-prompting on out until the
// input names a legal move.
type Human struct {
	in  *bufio.Scanner
	out io.Writer
}

func NewHuman(in io.Reader, out io.Writer) *Human {
	return &Human{in: bufio.NewScanner(in), out: out}
}

func (h *Human) Name() string {
	return "human"
}

func (h *Human) FindMove(b *game.Board) (game.Move, metrics.SearchMetric, error) {
	collector := metrics.NewCollector()
	collector.Start(h.Name())

	fmt.Fprint(h.out, b.String())
	if len(b.LegalMoves()) == 0 {
		fmt.Fprintf(h.out, "%s has no legal moves and passes\n", b.Active())
		return game.Pass, collector.Complete(), nil
	}

	for {
		fmt.Fprintf(h.out, "%s to move: ", b.Active())
		if !h.in.Scan() {
			err := h.in.Err()
			if err == nil {
				err = io.EOF
			}
			return game.Pass, collector.Complete(), errors.Wrap(err, "read move")
		}

		move, err := game.ParseMove(h.in.Text())
		if err != nil {
			fmt.Fprintln(h.out, err)
			continue
		}
		if !b.IsLegal(move) {
			fmt.Fprintf(h.out, "invalid move %s\n", move)
			continue
		}
		return move, collector.Complete(), nil
	}
}

package searcher

import (
	"math"
	"reversi/experiments/metrics"
	"reversi/game"
)

// node is one position of the UCT tree. It owns its board snapshot and its
// children exclusively; dropping the root releases the whole tree.
type node struct {
	board    *game.Board
	player   game.Player
	moves    []game.Move
	children []*node // nil until expanded, in move order
	rewards  []float64
	visits   []float64
	expanded int
	visited  int
	pass     *node // forced-pass successor, built lazily
}

func newNode(board *game.Board, collector metrics.Collector) *node {
	collector.AddNode()
	moves := board.LegalMoves()
	return &node{
		board:    board,
		player:   board.Active(),
		moves:    moves,
		children: make([]*node, len(moves)),
		rewards:  make([]float64, len(moves)),
		visits:   make([]float64, len(moves)),
	}
}

type uctRun struct {
	rng       game.Source
	cSquared  float64
	collector metrics.Collector
}

// play runs one descent from n and returns the winner of the game it reached.
// While children remain unexpanded, the next one in move order is built and
// scored by a single rollout; afterwards the UCB-best child is followed.
func (n *node) play(run *uctRun) game.Player {
	run.collector.AddVisit()

	if len(n.moves) == 0 {
		if n.board.Passed() {
			winner, err := n.board.Winner()
			if err != nil {
				panic(invariantf("terminal node without a winner: %v", err))
			}
			return winner
		}
		if n.pass == nil {
			next := n.board.Clone()
			next.Play(game.Pass)
			n.pass = newNode(next, run.collector)
		}
		return n.pass.play(run)
	}

	var j int
	var winner game.Player
	if n.expanded < len(n.moves) {
		j = n.expanded
		n.expanded++

		next := n.board.Clone()
		next.Play(n.moves[j])
		n.children[j] = newNode(next, run.collector)

		winner = game.Rollout(next, run.rng)
		run.collector.AddRollout()
	} else {
		j = n.pickChild(run.cSquared)
		winner = n.children[j].play(run)
	}

	n.visited++
	n.visits[j]++
	n.rewards[j] += computeReward(winner, n.player)
	return winner
}

func (n *node) pickChild(cSquared float64) int {
	if n.visited == 0 {
		panic(invariantf("node has children but no visits"))
	}

	policy := newUCT(cSquared, float64(n.visited))
	maxIndex := -1
	maxScore := math.Inf(-1)
	for i := range n.children {
		if n.children[i] == nil || n.visits[i] == 0 {
			panic(invariantf("child %d of %d selected before expansion", i, len(n.children)))
		}
		if score := policy.evaluate(n.rewards[i], n.visits[i]); score > maxScore {
			maxScore = score
			maxIndex = i
		}
	}
	return maxIndex
}

// findBestMove picks the child with the highest mean reward, without any
// exploration bonus.
func (n *node) findBestMove() (game.Move, []float64) {
	if len(n.moves) == 0 {
		panic(invariantf("node has no moves"))
	}
	for i := range n.visits {
		if n.visits[i] == 0 {
			panic(invariantf("root child %s was never visited", n.moves[i]))
		}
	}
	best, means := argmaxMean(n.rewards, n.visits)
	return n.moves[best], means
}

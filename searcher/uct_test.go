package searcher

import (
	"reversi/experiments/metrics"
	"reversi/game"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

// checkTree verifies the visit statistics below n, given how often play was
// called on it.
func checkTree(t *testing.T, n *node, descents int) {
	t.Helper()
	if len(n.moves) == 0 {
		if n.pass != nil {
			checkTree(t, n.pass, descents)
		} else if !n.board.Passed() {
			require.Zero(t, descents, "Pass child should exist once the node was descended")
		}
		return
	}

	require.Equal(t, descents, n.visited, "Node should count every descent")
	total := 0.0
	for j := range n.moves {
		require.LessOrEqual(t, n.rewards[j], n.visits[j], "Rewards cannot exceed visits")
		total += n.visits[j]
		if n.children[j] == nil {
			require.Zero(t, n.visits[j], "Unexpanded child should have no visits")
			continue
		}
		// The expanding visit is scored by a rollout, not by a descent
		checkTree(t, n.children[j], int(n.visits[j])-1)
	}
	require.Equal(t, float64(n.visited), total, "Child visits should sum to the parent's")
}

func TestUCTFindMove(t *testing.T) {
	t.Run("passes without legal moves", func(t *testing.T) {
		b := game.NewBoardFrom([]string{"WB"}, game.Black, false)

		move, metric, err := NewUCT(rand.New(rand.NewSource(1))).FindMove(b)

		require.NoError(t, err)
		require.Equal(t, game.Pass, move)
		require.Zero(t, metric.Nodes)
	})

	t.Run("opening decision is legal and reproducible", func(t *testing.T) {
		b := game.NewBoard()

		m1, s1, err := NewUCT(rand.New(rand.NewSource(21)), WithTrials(25)).FindMove(b)
		require.NoError(t, err)
		m2, s2, err := NewUCT(rand.New(rand.NewSource(21)), WithTrials(25)).FindMove(b)
		require.NoError(t, err)

		require.True(t, b.IsLegal(m1))
		require.Equal(t, m1, m2)
		require.Equal(t, s1.Scores, s2.Scores)
		require.GreaterOrEqual(t, s1.Visits, 25*4, "Each trial descends from the root")
		require.LessOrEqual(t, s1.Rollouts, 25*4, "At most one rollout per trial")
	})
}

func TestBuildTree(t *testing.T) {
	for _, seed := range []uint64{1, 2, 3} {
		b := game.NewBoard()
		rng := rand.New(rand.NewSource(seed))
		for i := 0; i < 20; i++ {
			b.Play(game.RandomMove(b, rng))
		}
		if len(b.LegalMoves()) == 0 {
			continue
		}
		trials := 15
		collector := metrics.NewCollector()
		root := NewUCT(rand.New(rand.NewSource(seed)), WithTrials(trials)).buildTree(b, collector)
		metric := collector.Complete()

		checkTree(t, root, trials*len(root.moves))
		for j := range root.moves {
			require.NotNil(t, root.children[j], "Every root move should be expanded")
			require.Positive(t, root.visits[j])
		}
		require.Equal(t, metric.Nodes-1, metric.Rollouts+countPassNodes(root),
			"Every node but the root comes from an expansion or a forced pass")
	}
}

func countPassNodes(n *node) int {
	count := 0
	if n.pass != nil {
		count += 1 + countPassNodes(n.pass)
	}
	for _, c := range n.children {
		if c != nil {
			count += countPassNodes(c)
		}
	}
	return count
}

func TestNodePlay(t *testing.T) {
	t.Run("terminal node returns the leader", func(t *testing.T) {
		b := game.NewBoardFrom([]string{"WWB"}, game.Black, true)
		require.True(t, b.IsTerminal())
		collector := metrics.NewCollector()
		run := &uctRun{rng: rand.New(rand.NewSource(1)), cSquared: CSquared, collector: collector}

		n := newNode(b, collector)

		require.Equal(t, game.White, n.play(run))
		require.Zero(t, n.visited)
	})

	t.Run("forced pass goes through a pass child", func(t *testing.T) {
		// Black has no moves; White can capture on c1 and end the game
		b := game.NewBoardFrom([]string{"WB"}, game.Black, false)
		collector := metrics.NewCollector()
		run := &uctRun{rng: rand.New(rand.NewSource(1)), cSquared: CSquared, collector: collector}

		n := newNode(b, collector)
		winner := n.play(run)

		require.Equal(t, game.White, winner)
		require.NotNil(t, n.pass, "Pass child should be built on first descent")
		require.Equal(t, game.White, n.pass.player)
		require.Equal(t, []game.Move{game.NewMove(0, 2)}, n.pass.moves)
		require.Equal(t, []float64{1}, n.pass.visits)
		require.Equal(t, []float64{1}, n.pass.rewards, "White wins, which rewards White's node")

		n.play(run)
		require.Equal(t, 2, n.pass.visited, "Pass child should be reused")
	})

	t.Run("rewards are kept from the mover's view", func(t *testing.T) {
		b := game.NewBoardFrom([]string{"WB"}, game.White, false)
		collector := metrics.NewCollector()
		run := &uctRun{rng: rand.New(rand.NewSource(1)), cSquared: CSquared, collector: collector}

		n := newNode(b, collector)
		n.play(run)
		n.play(run)

		require.Equal(t, []float64{2}, n.rewards)
		require.Equal(t, 2, n.visited)
	})
}

func TestPickChild(t *testing.T) {
	t.Run("panics before any visit", func(t *testing.T) {
		n := newNode(game.NewBoard(), metrics.NewCollector())

		require.PanicsWithError(t, "search invariant violated: node has children but no visits", func() {
			n.pickChild(CSquared)
		})
	})

	t.Run("panics on an unexpanded child", func(t *testing.T) {
		n := newNode(game.NewBoard(), metrics.NewCollector())
		n.visited = 1

		require.PanicsWithError(t, "search invariant violated: child 0 of 4 selected before expansion", func() {
			n.pickChild(CSquared)
		})
	})
}

func TestFindBestMove(t *testing.T) {
	t.Run("highest mean wins regardless of visits", func(t *testing.T) {
		n := newNode(game.NewBoard(), metrics.NewCollector())
		n.rewards = []float64{9, 1, 2, 0}
		n.visits = []float64{20, 1, 5, 1}

		move, means := n.findBestMove()

		require.Equal(t, n.moves[1], move)
		require.Equal(t, []float64{0.45, 1, 0.4, 0}, means)
	})

	t.Run("unvisited root child is an invariant violation", func(t *testing.T) {
		n := newNode(game.NewBoard(), metrics.NewCollector())
		n.visits = []float64{1, 1, 0, 1}

		require.Panics(t, func() { n.findBestMove() })
	})
}

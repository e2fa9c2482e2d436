package searcher

import (
	"bytes"
	"io"
	"reversi/game"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

// Black can flip one disc on c1 or two discs on d3.
func captureChoice() *game.Board {
	return game.NewBoardFrom([]string{
		"BW......",
		"........",
		"BWW.....",
	}, game.Black, false)
}

func TestGreedy(t *testing.T) {
	t.Run("takes the biggest capture", func(t *testing.T) {
		move, metric, err := NewGreedy().FindMove(captureChoice())

		require.NoError(t, err)
		require.Equal(t, game.NewMove(2, 3), move)
		require.Equal(t, []float64{4, 5}, metric.Scores)
		require.Equal(t, 2, metric.Evaluations)
	})

	t.Run("generous takes the smallest capture", func(t *testing.T) {
		move, _, err := NewGenerous().FindMove(captureChoice())

		require.NoError(t, err)
		require.Equal(t, game.NewMove(0, 2), move)
	})

	t.Run("keeps the first of equal scores", func(t *testing.T) {
		b := game.NewBoard()

		move, _, err := NewGreedy().FindMove(b)

		require.NoError(t, err)
		require.Equal(t, b.LegalMoves()[0], move, "All opening moves flip one disc")
	})

	t.Run("passes without legal moves", func(t *testing.T) {
		move, _, err := NewGreedy().FindMove(game.NewBoardFrom([]string{"WB"}, game.Black, false))

		require.NoError(t, err)
		require.Equal(t, game.Pass, move)
	})
}

func TestRandom(t *testing.T) {
	t.Run("plays legal moves", func(t *testing.T) {
		r := NewRandom(rand.New(rand.NewSource(4)))
		b := game.NewBoard()
		for !b.IsTerminal() {
			move, _, err := r.FindMove(b)
			require.NoError(t, err)
			require.NoError(t, b.Apply(move))
		}
	})

	t.Run("passes without legal moves", func(t *testing.T) {
		move, _, err := NewRandom(rand.New(rand.NewSource(4))).FindMove(game.NewBoardFrom([]string{"WB"}, game.Black, false))

		require.NoError(t, err)
		require.Equal(t, game.Pass, move)
	})
}

func TestHuman(t *testing.T) {
	t.Run("re-prompts until a legal move is entered", func(t *testing.T) {
		var out bytes.Buffer
		h := NewHuman(strings.NewReader("zz\nh8\nd3\n"), &out)

		move, _, err := h.FindMove(game.NewBoard())

		require.NoError(t, err)
		require.Equal(t, game.NewMove(2, 3), move)
		require.Contains(t, out.String(), "invalid move h8")
		require.Equal(t, 3, strings.Count(out.String(), "Black to move: "))
	})

	t.Run("end of input is an error", func(t *testing.T) {
		h := NewHuman(strings.NewReader("a1\n"), io.Discard)

		_, _, err := h.FindMove(game.NewBoard())

		require.ErrorIs(t, err, io.EOF)
	})

	t.Run("passes without reading", func(t *testing.T) {
		var out bytes.Buffer
		h := NewHuman(strings.NewReader(""), &out)

		move, _, err := h.FindMove(game.NewBoardFrom([]string{"WB"}, game.Black, false))

		require.NoError(t, err)
		require.Equal(t, game.Pass, move)
		require.Contains(t, out.String(), "Black has no legal moves and passes")
	})
}

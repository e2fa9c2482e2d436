package searcher

import (
	"reversi/game"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestNew(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	t.Run("builds configured searchers", func(t *testing.T) {
		tests := []struct {
			config string
			name   string
		}{
			{"random", "random"},
			{"greedy", "greedy:eval=pieces"},
			{"generous", "greedy:eval=inverse"},
			{"greedy:eval=sampling,samples=5", "greedy:eval=sampling,samples=5"},
			{"minimax", "minimax:depth=3,eval=pieces"},
			{" minimax:depth=5, eval=inverse ", "minimax:depth=5,eval=inverse"},
			{"minimax:depth=2,eval=sampling", "minimax:depth=2,eval=sampling,samples=10"},
			{"ucb1", "ucb1:trials=100"},
			{"ucb1:trials=10,c2=0.5", "ucb1:trials=10"},
			{"uct:trials=30", "uct:trials=30"},
			{"human", "human"},
		}
		for _, tt := range tests {
			s, err := New(tt.config, rng)

			require.NoError(t, err, tt.config)
			require.Equal(t, tt.name, s.Name())
		}
	})

	t.Run("applies bandit parameters", func(t *testing.T) {
		s, err := New("uct:trials=7,c2=0.25", rng)
		require.NoError(t, err)

		u := s.(*UCT)
		require.Equal(t, 7, u.trials)
		require.Equal(t, 0.25, u.cSquared)
	})

	t.Run("rejects bad configs", func(t *testing.T) {
		tests := []struct {
			config string
			errMsg string
		}{
			{"alphazero", `unknown strategy "alphazero"`},
			{"uct:trials=0", "trials must be positive, got 0"},
			{"uct:trials=ten", `failed to parse configuration trials="ten" to int`},
			{"ucb1:c2=-1", "c2 must not be negative"},
			{"minimax:depth=-1", "depth must not be negative, got -1"},
			{"greedy:eval=mobility", `unknown evaluator "mobility"`},
			{"greedy:eval=sampling,samples=0", "samples must be positive, got 0"},
			{"random:trials=3", `strategy "random" does not take parameters trials`},
			{"minimax:depth=2,trials=4", `strategy "minimax" does not take parameters trials`},
		}
		for _, tt := range tests {
			_, err := New(tt.config, rng)

			require.Error(t, err, tt.config)
			require.Contains(t, err.Error(), tt.errMsg)
		}
	})
}

func TestRegister(t *testing.T) {
	Register("first", func(params map[string]string, rng game.Source) (Searcher, error) {
		return NewGreedy(), nil
	})
	defer delete(factories, "first")

	require.Contains(t, Names(), "first")
	s, err := New("first", nil)
	require.NoError(t, err)
	require.Equal(t, "greedy:eval=pieces", s.Name())
}

func TestSplitParams(t *testing.T) {
	require.Equal(t, map[string]string{"depth": "3", "eval": "sampling", "flag": ""},
		splitParams("depth=3, eval=sampling,,flag"))
	require.Empty(t, splitParams(""))
}

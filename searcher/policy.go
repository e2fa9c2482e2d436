package searcher

import "math"

// Hyperparameters for bandit and tree search

const CSquared = 2.0 // Exploration constant

const Win = 1.0  // Reward for a rollout won by the player to move
const Loss = 0.0 // Reward for a lost or drawn rollout

type uct struct {
	numerator float64
}

func newUCT(cSquared float64, N float64) *uct {
	if N == 0 {
		panic(invariantf("N cannot be 0"))
	}
	return &uct{numerator: cSquared * math.Log(N)}
}

func (u uct) evaluate(q float64, n float64) float64 {
	if n == 0 {
		panic(invariantf("n cannot be 0"))
	}
	// UCT = q/n + sqrt(c^2*ln(N)/n)
	return q/n + math.Sqrt(u.numerator/n)
}

// argmaxMean returns the index with the highest mean reward among visited
// arms, the first one on ties, or -1 when nothing was visited.
func argmaxMean(rewards, visits []float64) (int, []float64) {
	best := -1
	bestMean := math.Inf(-1)
	means := make([]float64, len(rewards))
	for i := range rewards {
		if visits[i] == 0 {
			continue
		}
		means[i] = rewards[i] / visits[i]
		if means[i] > bestMean {
			bestMean = means[i]
			best = i
		}
	}
	return best, means
}

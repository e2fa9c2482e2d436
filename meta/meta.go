// meta/meta.go
package meta

// DefaultTrials is the rollout budget per legal move for UCB1 and UCT.
const DefaultTrials = 100

// DefaultDepth is the minimax depth below the root reply.
const DefaultDepth = 3

// DefaultSamples is the rollout count of the sampling evaluator.
const DefaultSamples = 10

// DefaultRounds is the number of games per pairing.
const DefaultRounds = 100

// MAX_PLIES bounds a game: 60 placements, each possibly preceded by a pass,
// and the final two passes.
const MAX_PLIES = 2*60 + 2

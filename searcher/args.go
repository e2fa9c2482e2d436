package searcher

import (
	"reversi/game"
	"reversi/meta"
)

type Option func(o *options)

type options struct {
	trials   int
	depth    int
	evaluate game.Evaluate
	evalName string
	cSquared float64
}

func defaultOptions() options {
	return options{
		trials:   meta.DefaultTrials,
		depth:    meta.DefaultDepth,
		evaluate: game.EvaluatePieces,
		evalName: "pieces",
		cSquared: CSquared,
	}
}

func applyOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithTrials sets the rollout budget per legal root move.
func WithTrials(trials int) Option {
	return func(o *options) {
		if trials > 0 {
			o.trials = trials
		}
	}
}

// WithDepth sets the minimax depth below the root reply.
func WithDepth(depth int) Option {
	return func(o *options) {
		if depth >= 0 {
			o.depth = depth
		}
	}
}

// WithEvaluator sets the position evaluator; name is used in reports.
func WithEvaluator(name string, evaluate game.Evaluate) Option {
	return func(o *options) {
		if evaluate != nil {
			o.evaluate = evaluate
			o.evalName = name
		}
	}
}

// WithExploration sets c^2 in the UCB term.
func WithExploration(cSquared float64) Option {
	return func(o *options) {
		if cSquared >= 0 {
			o.cSquared = cSquared
		}
	}
}

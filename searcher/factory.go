package searcher

import (
	"os"
	"reversi/game"
	"reversi/meta"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Factory builds a searcher from parsed config parameters. It must consume
// every parameter it understands with popParam; leftovers are rejected.
type Factory func(params map[string]string, rng game.Source) (Searcher, error)

var factories = map[string]Factory{
	"random": func(params map[string]string, rng game.Source) (Searcher, error) {
		return NewRandom(rng), nil
	},
	"greedy": func(params map[string]string, rng game.Source) (Searcher, error) {
		opt, err := evaluatorOption(params, rng)
		if err != nil {
			return nil, err
		}
		return NewGreedy(opt), nil
	},
	"generous": func(params map[string]string, rng game.Source) (Searcher, error) {
		return NewGenerous(), nil
	},
	"minimax": func(params map[string]string, rng game.Source) (Searcher, error) {
		depth, err := popParam(params, "depth", meta.DefaultDepth)
		if err != nil {
			return nil, err
		}
		if depth < 0 {
			return nil, errors.Errorf("depth must not be negative, got %d", depth)
		}
		opt, err := evaluatorOption(params, rng)
		if err != nil {
			return nil, err
		}
		return NewMinimax(WithDepth(depth), opt), nil
	},
	"ucb1": func(params map[string]string, rng game.Source) (Searcher, error) {
		opts, err := banditOptions(params)
		if err != nil {
			return nil, err
		}
		return NewUCB1(rng, opts...), nil
	},
	"uct": func(params map[string]string, rng game.Source) (Searcher, error) {
		opts, err := banditOptions(params)
		if err != nil {
			return nil, err
		}
		return NewUCT(rng, opts...), nil
	},
	"human": func(params map[string]string, rng game.Source) (Searcher, error) {
		return NewHuman(os.Stdin, os.Stdout), nil
	},
}

// Register adds or replaces a named factory.
func Register(name string, factory Factory) {
	factories[name] = factory
}

// Names lists the registered strategy names.
func Names() []string {
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New builds a searcher from a config string: the strategy name, optionally
// followed by ":" and comma-separated key=value parameters, e.g.
// "minimax:depth=3,eval=sampling,samples=10" or "uct:trials=100".
func New(config string, rng game.Source) (Searcher, error) {
	name := strings.TrimSpace(config)
	rest := ""
	if i := strings.Index(name, ":"); i != -1 {
		name, rest = name[:i], name[i+1:]
	}
	factory, ok := factories[name]
	if !ok {
		return nil, errors.Errorf("unknown strategy %q (known: %s)", name, strings.Join(Names(), ", "))
	}

	params := splitParams(rest)
	s, err := factory(params, rng)
	if err != nil {
		return nil, errors.WithMessagef(err, "failed to create strategy %q", name)
	}
	if len(params) > 0 {
		keys := make([]string, 0, len(params))
		for k := range params {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return nil, errors.Errorf("strategy %q does not take parameters %s", name, strings.Join(keys, ", "))
	}
	return s, nil
}

func splitParams(config string) map[string]string {
	params := make(map[string]string)
	for _, part := range strings.Split(config, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		kv := strings.SplitN(part, "=", 2)
		if len(kv) == 1 {
			params[kv[0]] = ""
		} else {
			params[kv[0]] = kv[1]
		}
	}
	return params
}

// popParam parses and removes key, returning defaultValue when it is absent.
func popParam[T int | float64 | string](params map[string]string, key string, defaultValue T) (T, error) {
	value, exists := params[key]
	if !exists {
		return defaultValue, nil
	}
	delete(params, key)

	var out T
	switch p := any(&out).(type) {
	case *int:
		v, err := strconv.Atoi(value)
		if err != nil {
			return defaultValue, errors.Wrapf(err, "failed to parse configuration %s=%q to int", key, value)
		}
		*p = v
	case *float64:
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return defaultValue, errors.Wrapf(err, "failed to parse configuration %s=%q to float", key, value)
		}
		*p = v
	case *string:
		*p = value
	}
	return out, nil
}

func evaluatorOption(params map[string]string, rng game.Source) (Option, error) {
	name, err := popParam(params, "eval", "pieces")
	if err != nil {
		return nil, err
	}
	switch name {
	case "pieces":
		return WithEvaluator(name, game.EvaluatePieces), nil
	case "inverse":
		return WithEvaluator(name, game.EvaluateInversePieces), nil
	case "sampling":
		samples, err := popParam(params, "samples", meta.DefaultSamples)
		if err != nil {
			return nil, err
		}
		if samples <= 0 {
			return nil, errors.Errorf("samples must be positive, got %d", samples)
		}
		return WithEvaluator("sampling,samples="+strconv.Itoa(samples), game.EvaluateSampling(samples, rng)), nil
	}
	return nil, errors.Errorf("unknown evaluator %q", name)
}

func banditOptions(params map[string]string) ([]Option, error) {
	trials, err := popParam(params, "trials", meta.DefaultTrials)
	if err != nil {
		return nil, err
	}
	if trials <= 0 {
		return nil, errors.Errorf("trials must be positive, got %d", trials)
	}
	cSquared, err := popParam(params, "c2", CSquared)
	if err != nil {
		return nil, err
	}
	if cSquared < 0 {
		return nil, errors.Errorf("c2 must not be negative, got %v", cSquared)
	}
	return []Option{WithTrials(trials), WithExploration(cSquared)}, nil
}

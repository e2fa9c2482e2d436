package searcher

import (
	"fmt"
	"reversi/experiments/metrics"
	"reversi/game"

	"github.com/pkg/errors"
)

// ErrInvariant marks a decision aborted by a broken search invariant, as
// opposed to game.ErrIllegalMove.
var ErrInvariant = errors.New("search invariant violated")

// InvariantError is panicked from inside a search when its statistics are
// inconsistent. Decide turns it back into an error.
type InvariantError struct {
	msg string
}

func invariantf(format string, args ...any) *InvariantError {
	return &InvariantError{msg: fmt.Sprintf(format, args...)}
}

func (e *InvariantError) Error() string {
	return ErrInvariant.Error() + ": " + e.msg
}

func (e *InvariantError) Unwrap() error {
	return ErrInvariant
}

// Decide runs s on a private copy of b. An invariant violation aborts only
// this decision and is returned as an error; other panics propagate.
func Decide(s Searcher, b *game.Board) (move game.Move, metric metrics.SearchMetric, err error) {
	defer func() {
		if r := recover(); r != nil {
			ie, ok := r.(*InvariantError)
			if !ok {
				panic(r)
			}
			move = game.Pass
			err = errors.WithMessagef(ie, "%s aborted", s.Name())
		}
	}()
	return s.FindMove(b.Clone())
}

// Play decides with s and commits the move into b. The move is validated
// against b, so a faulty searcher cannot corrupt the board.
func Play(s Searcher, b *game.Board) (game.Move, metrics.SearchMetric, error) {
	move, metric, err := Decide(s, b)
	if err != nil {
		return move, metric, err
	}
	if err := b.Apply(move); err != nil {
		return move, metric, errors.WithMessagef(err, "%s chose", s.Name())
	}
	return move, metric, nil
}

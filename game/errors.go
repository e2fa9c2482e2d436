package game

import "github.com/pkg/errors"

var (
	// ErrIllegalMove is returned when a move is not in the current legal set.
	ErrIllegalMove = errors.New("illegal move")
	// ErrNotTerminal is returned when a winner is requested before two
	// consecutive passes.
	ErrNotTerminal = errors.New("game is not over")
	// ErrGameOver is returned when a move is applied to a finished game.
	ErrGameOver = errors.New("game is over")
)

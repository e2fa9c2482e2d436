package game

import (
	"slices"
	"strings"

	"github.com/pkg/errors"
)

var directions = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// Board is the full game state: the grid, the side to move and whether the
// previous ply was a pass. The zero value is an empty grid with no side to
// move; use NewBoard for the standard opening.
type Board struct {
	cells  [Size][Size]Player
	active Player
	passed bool
}

// NewBoard returns the standard opening with Black to move.
func NewBoard() *Board {
	b := &Board{active: Black}
	mid := Size / 2
	b.cells[mid-1][mid-1], b.cells[mid][mid] = White, White
	b.cells[mid-1][mid], b.cells[mid][mid-1] = Black, Black
	return b
}

// NewBoardFrom builds a position from rows of '.', 'B' and 'W'. Missing
// rows and columns are empty.
func NewBoardFrom(rows []string, active Player, passed bool) *Board {
	b := &Board{active: active, passed: passed}
	for r, line := range rows {
		for c, ch := range line {
			if !inBounds(r, c) {
				continue
			}
			switch ch {
			case 'B', 'b', 'X', 'x':
				b.cells[r][c] = Black
			case 'W', 'w', 'O', 'o':
				b.cells[r][c] = White
			}
		}
	}
	return b
}

// Clone returns an independent copy.
func (b *Board) Clone() *Board {
	c := *b
	return &c
}

func (b *Board) At(row, col int) Player {
	return b.cells[row][col]
}

func (b *Board) Active() Player {
	return b.active
}

// Passed reports whether the previous ply was a pass.
func (b *Board) Passed() bool {
	return b.passed
}

// Count returns the number of discs owned by player.
func (b *Board) Count(player Player) int {
	n := 0
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if b.cells[r][c] == player {
				n++
			}
		}
	}
	return n
}

// LegalMoves walks outward from every disc of the side to move; a direction
// that crosses one or more opposing discs and lands on an empty cell yields
// that cell. Each destination is reported once. An empty result means the
// side to move must pass.
func (b *Board) LegalMoves() []Move {
	var seen [Size][Size]bool
	moves := make([]Move, 0, 16)
	opponent := b.active.Opponent()

	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if b.cells[r][c] != b.active {
				continue
			}
			for _, d := range directions {
				y, x := r+d[0], c+d[1]
				if !inBounds(y, x) || b.cells[y][x] != opponent {
					continue
				}
				for {
					y, x = y+d[0], x+d[1]
					if !inBounds(y, x) || b.cells[y][x] == b.active {
						break
					}
					if b.cells[y][x] == None {
						if !seen[y][x] {
							seen[y][x] = true
							moves = append(moves, NewMove(y, x))
						}
						break
					}
				}
			}
		}
	}
	return moves
}

// IsLegal reports whether move is in the current legal set. Pass is legal
// only when no placement is.
func (b *Board) IsLegal(move Move) bool {
	moves := b.LegalMoves()
	if move.IsPass() {
		return len(moves) == 0
	}
	return slices.Contains(moves, move)
}

// IsTerminal reports whether two consecutive passes have been reached, or
// the side to move has no moves right after a pass.
func (b *Board) IsTerminal() bool {
	return b.passed && len(b.LegalMoves()) == 0
}

// Apply validates move against the legal set and plays it. The board is left
// untouched on error.
func (b *Board) Apply(move Move) error {
	if b.IsTerminal() {
		return errors.Wrapf(ErrGameOver, "cannot play %s", move)
	}
	if !b.IsLegal(move) {
		return errors.Wrapf(ErrIllegalMove, "%s for %s", move, b.active)
	}
	b.Play(move)
	return nil
}

// Play performs the transition without checking legality. Callers must only
// pass moves taken from LegalMoves, or Pass when that set is empty.
func (b *Board) Play(move Move) {
	if move.IsPass() {
		b.passed = true
		b.active = b.active.Opponent()
		return
	}

	row, col := int(move.Row), int(move.Col)
	if b.cells[row][col] != None {
		panic("play on occupied cell " + move.String())
	}
	b.cells[row][col] = b.active
	b.flip(row, col)
	b.passed = false
	b.active = b.active.Opponent()
}

func (b *Board) flip(row, col int) {
	opponent := b.active.Opponent()
	for _, d := range directions {
		y, x := row+d[0], col+d[1]
		if !inBounds(y, x) || b.cells[y][x] != opponent {
			continue
		}
		for {
			y, x = y+d[0], x+d[1]
			if !inBounds(y, x) || b.cells[y][x] == None {
				break
			}
			if b.cells[y][x] == b.active {
				// Walk back, claiming the run
				for y, x = y-d[0], x-d[1]; y != row || x != col; y, x = y-d[0], x-d[1] {
					b.cells[y][x] = b.active
				}
				break
			}
		}
	}
}

// Winner returns the side with more discs, or None on a tie. Only defined
// once the game is over.
func (b *Board) Winner() (Player, error) {
	if !b.IsTerminal() {
		return None, ErrNotTerminal
	}
	return b.leader(), nil
}

func (b *Board) leader() Player {
	black, white := b.Count(Black), b.Count(White)
	switch {
	case black > white:
		return Black
	case white > black:
		return White
	}
	return None
}

// String renders the grid with legal destinations marked by '_'.
func (b *Board) String() string {
	var legal [Size][Size]bool
	for _, m := range b.LegalMoves() {
		legal[m.Row][m.Col] = true
	}

	var sb strings.Builder
	sb.WriteString(" ")
	for c := 0; c < Size; c++ {
		sb.WriteByte(' ')
		sb.WriteByte(byte('a' + c))
	}
	sb.WriteByte('\n')
	for r := 0; r < Size; r++ {
		sb.WriteByte(byte('1' + r))
		for c := 0; c < Size; c++ {
			sb.WriteByte(' ')
			switch {
			case b.cells[r][c] == Black:
				sb.WriteString("●")
			case b.cells[r][c] == White:
				sb.WriteString("○")
			case legal[r][c]:
				sb.WriteByte('_')
			default:
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

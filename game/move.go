package game

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Move is a board coordinate or the Pass sentinel.
type Move struct {
	Row int8
	Col int8
}

var Pass = Move{Row: -1, Col: -1}

func NewMove(row, col int) Move {
	return Move{Row: int8(row), Col: int8(col)}
}

func (m Move) IsPass() bool {
	return m == Pass
}

func (m Move) InBounds() bool {
	return inBounds(int(m.Row), int(m.Col))
}

// String formats the move as column letter followed by row number, e.g. "d3".
func (m Move) String() string {
	if m.IsPass() {
		return "pass"
	}
	return fmt.Sprintf("%c%d", 'a'+m.Col, m.Row+1)
}

// ParseMove reads the notation produced by Move.String.
func ParseMove(s string) (Move, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "pass" {
		return Pass, nil
	}
	if len(s) != 2 {
		return Pass, errors.Errorf("bad move %q: want column letter and row digit", s)
	}
	m := NewMove(int(s[1]-'1'), int(s[0]-'a'))
	if !m.InBounds() {
		return Pass, errors.Errorf("move %q is out of bounds", s)
	}
	return m, nil
}

func inBounds(row, col int) bool {
	return row >= 0 && row < Size && col >= 0 && col < Size
}

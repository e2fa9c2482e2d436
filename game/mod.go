package game

const Size = 8

// Player is the content of a cell and the side to move. None doubles as the
// empty cell and the neutral (drawn) winner.
type Player int8

const (
	None Player = iota
	Black
	White
)

func (p Player) Opponent() Player {
	switch p {
	case Black:
		return White
	case White:
		return Black
	}
	return None
}

func (p Player) String() string {
	switch p {
	case Black:
		return "Black"
	case White:
		return "White"
	}
	return "None"
}

// Source is the uniform random source consumed by rollouts and random play.
// *rand.Rand from golang.org/x/exp/rand satisfies it.
type Source interface {
	Intn(n int) int
}

// Evaluate scores a position from the perspective of player. Higher is better.
type Evaluate func(b *Board, player Player) int

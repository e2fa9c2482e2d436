package game

// Rollout plays uniformly random legal moves on a private copy of b until two
// consecutive passes and returns the winner. b is not modified.
func Rollout(b *Board, rng Source) Player {
	state := b.Clone()
	for {
		moves := state.LegalMoves()
		if len(moves) == 0 {
			if state.passed {
				return state.leader()
			}
			state.Play(Pass)
			continue
		}
		state.Play(moves[rng.Intn(len(moves))])
	}
}

// RandomMove picks a uniformly random legal move, or Pass if there is none.
func RandomMove(b *Board, rng Source) Move {
	moves := b.LegalMoves()
	if len(moves) == 0 {
		return Pass
	}
	return moves[rng.Intn(len(moves))]
}

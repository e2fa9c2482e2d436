package game

// EvaluatePieces counts the discs player owns.
func EvaluatePieces(b *Board, player Player) int {
	return b.Count(player)
}

// EvaluateInversePieces is the negated disc count, for an opponent that
// tries to lose.
func EvaluateInversePieces(b *Board, player Player) int {
	return -b.Count(player)
}

// EvaluateSampling returns an evaluator that plays n random games from the
// position and counts how many player wins. Larger n trades cost for lower
// variance.
func EvaluateSampling(n int, rng Source) Evaluate {
	return func(b *Board, player Player) int {
		wins := 0
		for i := 0; i < n; i++ {
			if Rollout(b, rng) == player {
				wins++
			}
		}
		return wins
	}
}

package game

// Guess scoring: a correct guess is worth a base amount, docked for every
// player who got there first and boosted by the seconds still on the
// clock, with a floor so late guesses still count. The drawer earns a
// flat bonus per correct guess, uncapped across the round.
const (
	basePoints  = 100
	rankPenalty = 10
	pointsFloor = 50

	// DrawerBonus is credited to the drawer for every correct guess.
	DrawerBonus = 25
)

// GuessPoints computes the points for a correct guess. rank is 1 for the
// first correct guesser of the round, 2 for the second, and so on.
func GuessPoints(rank, timeRemaining int) int {
	p := basePoints - (rank-1)*rankPenalty + timeRemaining
	if p < pointsFloor {
		return pointsFloor
	}
	return p
}

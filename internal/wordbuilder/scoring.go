package wordbuilder

const (
	pointsPerLetter   = 10
	minPoints         = 5
	fastBonus         = 20
	slowBonus         = 10
	fastThreshold     = 30
	hintPenalty       = -15
	streakBonusFactor = 5
)

// Points returns the score awarded for a correct answer.
// streak is the streak before it is incremented for this answer.
func Points(wordLen int, challenge bool, remaining int, hintUsed bool, streak int) int {
	points := pointsPerLetter*wordLen + speedBonus(challenge, remaining) + streakBonusFactor*streak
	if hintUsed {
		points += hintPenalty
	}
	return max(minPoints, points)
}

func speedBonus(challenge bool, remaining int) int {
	switch {
	case !challenge:
		return 0
	case remaining > fastThreshold:
		return fastBonus
	default:
		return slowBonus
	}
}

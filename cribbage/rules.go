package cribbage

// Core constants of two-player cribbage.
const (
	// WinningScore ends the game the moment any player reaches it.
	WinningScore = 121

	// MaxPlayCount is the pegging ceiling; no play may push the count past it.
	MaxPlayCount = 31

	// HandSize is the number of cards dealt to each player.
	HandSize = 6

	// DiscardCount is the number of cards each player sends to the crib.
	DiscardCount = 2

	// PlayHandSize is the number of cards kept for pegging and counting.
	PlayHandSize = HandSize - DiscardCount
)

// IsGameWon reports whether a score has reached the winning threshold.
// Checked after every individual score addition, not just at phase ends.
func IsGameWon(score int) bool {
	return score >= WinningScore
}

// CanPlay reports whether playing card on top of the current count stays
// within the 31 ceiling.
func CanPlay(card Card, count int) bool {
	return count+card.CountValue() <= MaxPlayCount
}

// HasLegalPlay reports whether any card in hand can be played on the
// current count.
func HasLegalPlay(hand []Card, count int) bool {
	for _, c := range hand {
		if CanPlay(c, count) {
			return true
		}
	}
	return false
}

// IsHisHeels reports whether the starter card pays the dealer two: the
// cut turned up a Jack.
func IsHisHeels(starter Card) bool {
	return starter.IsJack()
}

// HasNobs reports whether hand holds the Jack matching the starter's
// suit, worth one point at counting time.
func HasNobs(hand []Card, starter Card) bool {
	for _, c := range hand {
		if c.IsJack() && c.Suit == starter.Suit {
			return true
		}
	}
	return false
}

// GoPoints returns the points the last player to lay a card earns when a
// pegging cycle closes: two if the cycle landed exactly on 31, one
// otherwise. The 31 case is normally paid through the pegging scorer at
// the moment of the play, so engine callers only award this below 31.
func GoPoints(count int) int {
	if count == MaxPlayCount {
		return 2
	}
	return 1
}

package game

import "github.com/lox/cribsim/cribbage"

// Player holds one player's identity and scoring state for a game. The
// play-phase/count-phase split is tracked alongside the cumulative
// score so game summaries can report where points came from.
type Player struct {
	Name string

	score       int
	playPoints  int
	countPoints int

	// Per-deal state. hand shrinks to four at discard; playHand is the
	// copy consumed one card at a time during pegging.
	hand     *cribbage.Hand
	playHand *cribbage.Hand
	dealt    []cribbage.Card
	discards []cribbage.Card
}

// NewPlayer creates a player with an empty hand.
func NewPlayer(name string) *Player {
	return &Player{
		Name:     name,
		hand:     cribbage.NewHand(),
		playHand: cribbage.NewHand(),
	}
}

// Score returns the player's cumulative score.
func (p *Player) Score() int { return p.score }

// PlayPoints returns the points earned during play phases, his heels
// included.
func (p *Player) PlayPoints() int { return p.playPoints }

// CountPoints returns the points earned during counting phases.
func (p *Player) CountPoints() int { return p.countPoints }

// addPoints credits points against the play or count tally. Points are
// never negative, so scores are monotonic.
func (p *Player) addPoints(points int, fromPlay bool) {
	p.score += points
	if fromPlay {
		p.playPoints += points
	} else {
		p.countPoints += points
	}
}

// resetDeal clears the per-deal state ahead of a new deal.
func (p *Player) resetDeal() {
	p.hand.Clear()
	p.playHand.Clear()
	p.dealt = p.dealt[:0]
	p.discards = p.discards[:0]
}

// Kept returns the four cards kept after discarding.
func (p *Player) Kept() []cribbage.Card {
	return p.hand.Cards()
}

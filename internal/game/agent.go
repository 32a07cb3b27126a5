package game

import (
	"math/rand"

	"github.com/lox/cribsim/cribbage"
)

// DiscardView is the immutable state an agent sees when choosing its
// two crib discards.
type DiscardView struct {
	Hand     []cribbage.Card // the six dealt cards
	IsDealer bool            // the crib belongs to this player
	MyScore  int
	OppScore int
}

// PlayView is the immutable state an agent sees when choosing a pegging
// card. Hand holds only legal plays' superset (the remaining play
// hand); Count and Sequence describe the current cycle.
type PlayView struct {
	Hand     []cribbage.Card
	Count    int
	Sequence []cribbage.Card // cards laid this cycle, oldest first
	MyScore  int
	OppScore int
}

// Agent supplies a player's discard and play decisions. Agents receive
// copies of game state and must never mutate it; the engine validates
// every choice and treats an illegal one as a broken implementation,
// not a game condition.
type Agent interface {
	// ChooseDiscards returns exactly two distinct cards from view.Hand
	// to send to the crib.
	ChooseDiscards(view DiscardView) []cribbage.Card

	// ChoosePlay returns the card to lay on the current count, or
	// ok=false to declare go. Declaring go while holding a legal play
	// is a contract violation.
	ChoosePlay(view PlayView) (card cribbage.Card, ok bool)
}

// RandomAgent is the uninformed baseline policy: uniform random
// discards and a uniform random legal play. It draws from an explicit
// RNG so games stay reproducible.
type RandomAgent struct {
	rng *rand.Rand
}

// NewRandomAgent creates a random agent backed by rng.
func NewRandomAgent(rng *rand.Rand) *RandomAgent {
	if rng == nil {
		panic("game: NewRandomAgent requires a non-nil rng")
	}
	return &RandomAgent{rng: rng}
}

// ChooseDiscards picks two distinct cards uniformly at random.
func (a *RandomAgent) ChooseDiscards(view DiscardView) []cribbage.Card {
	idx := a.rng.Perm(len(view.Hand))[:cribbage.DiscardCount]
	discards := make([]cribbage.Card, 0, cribbage.DiscardCount)
	for _, i := range idx {
		discards = append(discards, view.Hand[i])
	}
	return discards
}

// ChoosePlay picks uniformly among the legal plays, declaring go when
// there are none.
func (a *RandomAgent) ChoosePlay(view PlayView) (cribbage.Card, bool) {
	legal := make([]cribbage.Card, 0, len(view.Hand))
	for _, c := range view.Hand {
		if cribbage.CanPlay(c, view.Count) {
			legal = append(legal, c)
		}
	}
	if len(legal) == 0 {
		return cribbage.Card{}, false
	}
	return legal[a.rng.Intn(len(legal))], true
}

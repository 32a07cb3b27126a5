package cribbage

import (
	"errors"
	"math/rand"
)

// ErrDeckExhausted is returned when a deal asks for more cards than the
// deck has left. A cribbage deal consumes 13 of 52 cards, so hitting
// this means an invariant has been broken upstream.
var ErrDeckExhausted = errors.New("deck exhausted")

// Deck deals cards from a shuffled standard 52-card deck.
type Deck struct {
	cards []Card
	next  int
	rng   *rand.Rand // Random source for deterministic shuffling
}

// NewDeck creates a new shuffled deck with explicit RNG. The RNG is
// required: a deck's shuffle order must be reproducible from the seed
// that built the RNG, never from process-global state.
func NewDeck(rng *rand.Rand) *Deck {
	if rng == nil {
		panic("cribbage: NewDeck requires a non-nil rng")
	}
	d := &Deck{rng: rng, cards: make([]Card, 0, 52)}

	for suit := Spades; suit <= Clubs; suit++ {
		for rank := Ace; rank <= King; rank++ {
			d.cards = append(d.cards, NewCard(rank, suit))
		}
	}

	d.Shuffle()
	return d
}

// NewStackedDeck creates a deck that deals the given cards in order,
// front first. It exists to rig exact deals in tests; the stack may
// hold fewer than 52 cards, in which case dealing past the end returns
// ErrDeckExhausted.
func NewStackedDeck(cards ...Card) *Deck {
	return &Deck{cards: append([]Card(nil), cards...)}
}

// Shuffle reshuffles the full deck using Fisher-Yates and rewinds the
// deal position. Stacked decks have no RNG and must not be shuffled.
func (d *Deck) Shuffle() {
	if d.rng == nil {
		panic("cribbage: Shuffle on a stacked deck")
	}
	d.next = 0
	for i := len(d.cards) - 1; i > 0; i-- {
		j := d.rng.Intn(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Deal deals n cards from the deck.
func (d *Deck) Deal(n int) ([]Card, error) {
	if d.next+n > len(d.cards) {
		return nil, ErrDeckExhausted
	}
	cards := make([]Card, n)
	copy(cards, d.cards[d.next:d.next+n])
	d.next += n
	return cards, nil
}

// DealOne deals a single card from the deck.
func (d *Deck) DealOne() (Card, error) {
	if d.next >= len(d.cards) {
		return Card{}, ErrDeckExhausted
	}
	card := d.cards[d.next]
	d.next++
	return card, nil
}

// CardsRemaining returns the number of cards left in the deck.
func (d *Deck) CardsRemaining() int {
	return len(d.cards) - d.next
}

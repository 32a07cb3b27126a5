package cribbage

import "fmt"

// Hand is a multiset of cards owned by one player for the duration of a
// deal. The crib is the same shape with a different owner, so it reuses
// this type. Accessors copy; callers never see the backing slice.
type Hand struct {
	cards []Card
}

// NewHand creates a hand holding the given cards.
func NewHand(cards ...[]Card) *Hand {
	h := &Hand{}
	for _, cs := range cards {
		h.cards = append(h.cards, cs...)
	}
	return h
}

// Add adds cards to the hand.
func (h *Hand) Add(cards ...Card) {
	h.cards = append(h.cards, cards...)
}

// Remove removes one instance of card from the hand. Removing a card
// that is not held is an error; the engine treats it as a broken policy.
func (h *Hand) Remove(card Card) error {
	for i, c := range h.cards {
		if c == card {
			h.cards = append(h.cards[:i], h.cards[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("remove %s: card not in hand", card)
}

// Contains reports whether the hand holds the card.
func (h *Hand) Contains(card Card) bool {
	for _, c := range h.cards {
		if c == card {
			return true
		}
	}
	return false
}

// Cards returns a copy of the held cards.
func (h *Hand) Cards() []Card {
	out := make([]Card, len(h.cards))
	copy(out, h.cards)
	return out
}

// Len returns the number of held cards.
func (h *Hand) Len() int {
	return len(h.cards)
}

// Clear empties the hand for the next deal.
func (h *Hand) Clear() {
	h.cards = h.cards[:0]
}

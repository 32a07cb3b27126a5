package game

import (
	"testing"

	"github.com/lox/cribsim/cribbage"
)

func TestPlayerPointSplit(t *testing.T) {
	p := NewPlayer("Alice")

	p.addPoints(2, true)
	p.addPoints(1, true)
	p.addPoints(8, false)

	if p.Score() != 11 {
		t.Errorf("score = %d, want 11", p.Score())
	}
	if p.PlayPoints() != 3 {
		t.Errorf("play points = %d, want 3", p.PlayPoints())
	}
	if p.CountPoints() != 8 {
		t.Errorf("count points = %d, want 8", p.CountPoints())
	}
}

func TestPlayerResetDealKeepsScore(t *testing.T) {
	p := NewPlayer("Bob")
	card := cribbage.NewCard(cribbage.Five, cribbage.Hearts)

	p.addPoints(10, false)
	p.hand.Add(card)
	p.playHand.Add(card)
	p.dealt = append(p.dealt, card)
	p.discards = append(p.discards, card)

	p.resetDeal()

	if p.Score() != 10 {
		t.Errorf("score = %d after reset, want 10", p.Score())
	}
	if p.hand.Len() != 0 || p.playHand.Len() != 0 {
		t.Error("hands not cleared by reset")
	}
	if len(p.dealt) != 0 || len(p.discards) != 0 {
		t.Error("deal records not cleared by reset")
	}
}

package game

import (
	"math/rand"
	"testing"

	"github.com/lox/cribsim/cribbage"
)

func TestRandomAgentDiscards(t *testing.T) {
	agent := NewRandomAgent(rand.New(rand.NewSource(3)))
	hand := mustCards(t, "KS,QD,5H,5C,TD,6D")

	for trial := 0; trial < 100; trial++ {
		discards := agent.ChooseDiscards(DiscardView{Hand: hand})
		if len(discards) != cribbage.DiscardCount {
			t.Fatalf("trial %d: discarded %d cards", trial, len(discards))
		}
		if discards[0] == discards[1] {
			t.Fatalf("trial %d: duplicate discard %s", trial, discards[0])
		}
		for _, d := range discards {
			held := false
			for _, c := range hand {
				if c == d {
					held = true
				}
			}
			if !held {
				t.Fatalf("trial %d: discarded unheld %s", trial, d)
			}
		}
	}
}

func TestRandomAgentPlaysLegally(t *testing.T) {
	agent := NewRandomAgent(rand.New(rand.NewSource(3)))
	hand := mustCards(t, "KS,9D,5H,2C")

	for count := 0; count <= cribbage.MaxPlayCount; count++ {
		card, ok := agent.ChoosePlay(PlayView{Hand: hand, Count: count})
		if cribbage.HasLegalPlay(hand, count) {
			if !ok {
				t.Fatalf("count %d: declared go with a legal play", count)
			}
			if !cribbage.CanPlay(card, count) {
				t.Fatalf("count %d: played %s over 31", count, card)
			}
		} else if ok {
			t.Fatalf("count %d: played %s with no legal play", count, card)
		}
	}
}

func TestRandomAgentGoOnAllBigCards(t *testing.T) {
	agent := NewRandomAgent(rand.New(rand.NewSource(3)))
	hand := mustCards(t, "KS,QD,JH,TC")

	if card, ok := agent.ChoosePlay(PlayView{Hand: hand, Count: 28}); ok {
		t.Errorf("played %s at count 28 with only tens in hand", card)
	}
}

func TestRandomAgentDeterministic(t *testing.T) {
	hand := mustCards(t, "KS,QD,5H,5C,TD,6D")

	a := NewRandomAgent(rand.New(rand.NewSource(11)))
	b := NewRandomAgent(rand.New(rand.NewSource(11)))
	for trial := 0; trial < 20; trial++ {
		da := a.ChooseDiscards(DiscardView{Hand: hand})
		db := b.ChooseDiscards(DiscardView{Hand: hand})
		if da[0] != db[0] || da[1] != db[1] {
			t.Fatalf("trial %d: same seed chose %v and %v", trial, da, db)
		}
	}
}

func TestNewRandomAgentNilRNGPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("NewRandomAgent(nil) did not panic")
		}
	}()
	NewRandomAgent(nil)
}

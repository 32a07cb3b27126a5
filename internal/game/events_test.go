package game

import (
	"testing"
	"time"

	"github.com/lox/cribsim/cribbage"
)

func TestEventBusDeliversToAllSubscribers(t *testing.T) {
	bus := NewEventBus()
	a := &testEventSubscriber{}
	b := &testEventSubscriber{}
	bus.Subscribe(a)
	bus.Subscribe(b)

	bus.Publish(NewGoEvent("Alice", 1, 28))

	if len(a.events) != 1 || len(b.events) != 1 {
		t.Fatalf("delivered %d and %d events, want 1 and 1", len(a.events), len(b.events))
	}
	if a.events[0].EventType() != EventTypeGo {
		t.Errorf("event type = %s, want %s", a.events[0].EventType(), EventTypeGo)
	}
}

func TestEventBusUnsubscribe(t *testing.T) {
	bus := NewEventBus()
	a := &testEventSubscriber{}
	b := &testEventSubscriber{}
	bus.Subscribe(a)
	bus.Subscribe(b)

	bus.Unsubscribe(a)
	bus.Publish(NewCountResetEvent(31, true))

	if len(a.events) != 0 {
		t.Errorf("unsubscribed subscriber received %d events", len(a.events))
	}
	if len(b.events) != 1 {
		t.Errorf("remaining subscriber received %d events, want 1", len(b.events))
	}
}

func TestEventTimestamps(t *testing.T) {
	before := time.Now()
	e := NewCardPlayedEvent("Bob", cribbage.NewCard(cribbage.Five, cribbage.Hearts), 15, nil)
	after := time.Now()

	ts := e.Timestamp()
	if ts.Before(before) || ts.After(after) {
		t.Errorf("timestamp %v outside construction window", ts)
	}
}

func TestHandCountedEventCopiesCards(t *testing.T) {
	cards := []cribbage.Card{
		cribbage.NewCard(cribbage.Five, cribbage.Hearts),
		cribbage.NewCard(cribbage.Ten, cribbage.Spades),
	}
	e := NewHandCountedEvent("Alice", false, cards,
		cribbage.NewCard(cribbage.King, cribbage.Clubs), nil, 4)

	cards[0] = cribbage.NewCard(cribbage.Two, cribbage.Diamonds)
	if e.Cards[0] != cribbage.NewCard(cribbage.Five, cribbage.Hearts) {
		t.Error("event shares the caller's card slice")
	}
}

func TestNoOpEventBus(t *testing.T) {
	bus := NoOpEventBus{}
	sub := &testEventSubscriber{}
	bus.Subscribe(sub)
	bus.Publish(NewGoEvent("Alice", 1, 28))
	bus.Unsubscribe(sub)

	if len(sub.events) != 0 {
		t.Errorf("no-op bus delivered %d events", len(sub.events))
	}
}

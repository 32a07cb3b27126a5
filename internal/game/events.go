package game

import (
	"time"

	"github.com/lox/cribsim/cribbage"
)

// EventType identifies a game event.
type EventType string

const (
	EventTypeHandStart    EventType = "hand_start"
	EventTypeCardsDealt   EventType = "cards_dealt"
	EventTypeDiscardsMade EventType = "discards_made"
	EventTypeStarterCut   EventType = "starter_cut"
	EventTypeCardPlayed   EventType = "card_played"
	EventTypeGo           EventType = "go"
	EventTypeCountReset   EventType = "count_reset"
	EventTypeHandCounted  EventType = "hand_counted"
	EventTypeHandEnd      EventType = "hand_end"
	EventTypeGameEnd      EventType = "game_end"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// GameEvent represents any event that occurs during a cribbage game.
// Observers receive events synchronously; they watch the game, they
// never steer it.
type GameEvent interface {
	EventType() EventType
	Timestamp() time.Time
}

// HandStartEvent is published when a new deal begins.
type HandStartEvent struct {
	HandNumber int
	Dealer     string
	Scores     [2]int // by player index
	timestamp  time.Time
}

func (e HandStartEvent) EventType() EventType { return EventTypeHandStart }
func (e HandStartEvent) Timestamp() time.Time { return e.timestamp }

// NewHandStartEvent creates a new hand start event
func NewHandStartEvent(handNumber int, dealer string, scores [2]int) HandStartEvent {
	return HandStartEvent{
		HandNumber: handNumber,
		Dealer:     dealer,
		Scores:     scores,
		timestamp:  time.Now(),
	}
}

// CardsDealtEvent is published once per player after the deal, before
// anyone has discarded.
type CardsDealtEvent struct {
	Player    string
	Cards     []cribbage.Card
	timestamp time.Time
}

func (e CardsDealtEvent) EventType() EventType { return EventTypeCardsDealt }
func (e CardsDealtEvent) Timestamp() time.Time { return e.timestamp }

// NewCardsDealtEvent creates a new cards dealt event
func NewCardsDealtEvent(player string, cards []cribbage.Card) CardsDealtEvent {
	copied := make([]cribbage.Card, len(cards))
	copy(copied, cards)
	return CardsDealtEvent{
		Player:    player,
		Cards:     copied,
		timestamp: time.Now(),
	}
}

// DiscardsMadeEvent is published when a player sends two cards to the
// crib. Observers see the discards; the opposing agent never does.
type DiscardsMadeEvent struct {
	Player    string
	Cards     []cribbage.Card
	IsDealer  bool // discarding into their own crib
	timestamp time.Time
}

func (e DiscardsMadeEvent) EventType() EventType { return EventTypeDiscardsMade }
func (e DiscardsMadeEvent) Timestamp() time.Time { return e.timestamp }

// NewDiscardsMadeEvent creates a new discards made event
func NewDiscardsMadeEvent(player string, cards []cribbage.Card, isDealer bool) DiscardsMadeEvent {
	copied := make([]cribbage.Card, len(cards))
	copy(copied, cards)
	return DiscardsMadeEvent{
		Player:    player,
		Cards:     copied,
		IsDealer:  isDealer,
		timestamp: time.Now(),
	}
}

// StarterCutEvent is published after the cut. HeelsPoints is two when
// the starter was a Jack, zero otherwise.
type StarterCutEvent struct {
	Starter     cribbage.Card
	Dealer      string
	HeelsPoints int
	timestamp   time.Time
}

func (e StarterCutEvent) EventType() EventType { return EventTypeStarterCut }
func (e StarterCutEvent) Timestamp() time.Time { return e.timestamp }

// NewStarterCutEvent creates a new starter cut event
func NewStarterCutEvent(starter cribbage.Card, dealer string, heelsPoints int) StarterCutEvent {
	return StarterCutEvent{
		Starter:     starter,
		Dealer:      dealer,
		HeelsPoints: heelsPoints,
		timestamp:   time.Now(),
	}
}

// CardPlayedEvent is published for every pegging play.
type CardPlayedEvent struct {
	Player    string
	Card      cribbage.Card
	Count     int // running count after the play
	Breakdown cribbage.Breakdown
	timestamp time.Time
}

func (e CardPlayedEvent) EventType() EventType { return EventTypeCardPlayed }
func (e CardPlayedEvent) Timestamp() time.Time { return e.timestamp }

// NewCardPlayedEvent creates a new card played event
func NewCardPlayedEvent(player string, card cribbage.Card, count int, breakdown cribbage.Breakdown) CardPlayedEvent {
	return CardPlayedEvent{
		Player:    player,
		Card:      card,
		Count:     count,
		Breakdown: breakdown,
		timestamp: time.Now(),
	}
}

// GoEvent is published when a pegging cycle closes below 31 and the
// last player to lay a card collects the go.
type GoEvent struct {
	Player    string
	Points    int
	Count     int // count at the moment the cycle closed
	timestamp time.Time
}

func (e GoEvent) EventType() EventType { return EventTypeGo }
func (e GoEvent) Timestamp() time.Time { return e.timestamp }

// NewGoEvent creates a new go event
func NewGoEvent(player string, points, count int) GoEvent {
	return GoEvent{
		Player:    player,
		Points:    points,
		Count:     count,
		timestamp: time.Now(),
	}
}

// CountResetEvent is published when the pegging count returns to zero.
type CountResetEvent struct {
	Count     int  // count reached before the reset
	ThirtyOne bool // the cycle ended exactly on 31
	timestamp time.Time
}

func (e CountResetEvent) EventType() EventType { return EventTypeCountReset }
func (e CountResetEvent) Timestamp() time.Time { return e.timestamp }

// NewCountResetEvent creates a new count reset event
func NewCountResetEvent(count int, thirtyOne bool) CountResetEvent {
	return CountResetEvent{
		Count:     count,
		ThirtyOne: thirtyOne,
		timestamp: time.Now(),
	}
}

// HandCountedEvent is published for each of the three counts of the
// counting phase: pone's hand, dealer's hand, then the crib.
type HandCountedEvent struct {
	Player     string
	IsCrib     bool
	Cards      []cribbage.Card
	Starter    cribbage.Card
	Breakdown  cribbage.Breakdown
	Points     int
	ScoreAfter int
	timestamp  time.Time
}

func (e HandCountedEvent) EventType() EventType { return EventTypeHandCounted }
func (e HandCountedEvent) Timestamp() time.Time { return e.timestamp }

// NewHandCountedEvent creates a new hand counted event
func NewHandCountedEvent(player string, isCrib bool, cards []cribbage.Card, starter cribbage.Card, breakdown cribbage.Breakdown, scoreAfter int) HandCountedEvent {
	copied := make([]cribbage.Card, len(cards))
	copy(copied, cards)
	return HandCountedEvent{
		Player:     player,
		IsCrib:     isCrib,
		Cards:      copied,
		Starter:    starter,
		Breakdown:  breakdown,
		Points:     breakdown.Total(),
		ScoreAfter: scoreAfter,
		timestamp:  time.Now(),
	}
}

// HandEndEvent is published when a deal finishes, carrying its
// immutable record.
type HandEndEvent struct {
	Record    *DealRecord
	timestamp time.Time
}

func (e HandEndEvent) EventType() EventType { return EventTypeHandEnd }
func (e HandEndEvent) Timestamp() time.Time { return e.timestamp }

// NewHandEndEvent creates a new hand end event
func NewHandEndEvent(record *DealRecord) HandEndEvent {
	return HandEndEvent{
		Record:    record,
		timestamp: time.Now(),
	}
}

// GameEndEvent is published once per game with the final result.
type GameEndEvent struct {
	Result    *GameResult
	timestamp time.Time
}

func (e GameEndEvent) EventType() EventType { return EventTypeGameEnd }
func (e GameEndEvent) Timestamp() time.Time { return e.timestamp }

// NewGameEndEvent creates a new game end event
func NewGameEndEvent(result *GameResult) GameEndEvent {
	return GameEndEvent{
		Result:    result,
		timestamp: time.Now(),
	}
}

// EventSubscriber can subscribe to game events
type EventSubscriber interface {
	OnEvent(event GameEvent)
}

// EventBus manages event publishing and subscription
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Unsubscribe(subscriber EventSubscriber)
	Publish(event GameEvent)
}

// SimpleEventBus is a basic in-memory event bus implementation
type SimpleEventBus struct {
	subscribers []EventSubscriber
}

// NewEventBus creates a new event bus
func NewEventBus() EventBus {
	return &SimpleEventBus{
		subscribers: make([]EventSubscriber, 0),
	}
}

// Subscribe adds a subscriber to receive events
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) {
	bus.subscribers = append(bus.subscribers, subscriber)
}

// Unsubscribe removes a subscriber from receiving events
func (bus *SimpleEventBus) Unsubscribe(subscriber EventSubscriber) {
	for i, sub := range bus.subscribers {
		if sub == subscriber {
			bus.subscribers = append(bus.subscribers[:i], bus.subscribers[i+1:]...)
			break
		}
	}
}

// Publish sends an event to all subscribers
func (bus *SimpleEventBus) Publish(event GameEvent) {
	for _, subscriber := range bus.subscribers {
		subscriber.OnEvent(event)
	}
}

// NoOpEventBus discards all events; it stands in when nothing observes
// a game.
type NoOpEventBus struct{}

func (NoOpEventBus) Subscribe(EventSubscriber)   {}
func (NoOpEventBus) Unsubscribe(EventSubscriber) {}
func (NoOpEventBus) Publish(GameEvent)           {}

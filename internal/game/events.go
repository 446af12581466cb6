package game

import (
	"time"

	"github.com/lox/blackjack/internal/deck"
)

// EventType represents a game event type with type safety
type EventType string

// EventType constants for round events
const (
	EventTypeRoundStarted     EventType = "round_started"
	EventTypePlayerAction     EventType = "player_action"
	EventTypeHoleCardRevealed EventType = "hole_card_revealed"
	EventTypeDealerDraw       EventType = "dealer_draw"
	EventTypeRoundSettled     EventType = "round_settled"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// GameEvent represents anything that happens during a round
type GameEvent interface {
	EventType() EventType
	Timestamp() time.Time
}

// Action is something a player can do on their turn
type Action int

const (
	Hit Action = iota
	Stay
)

// String returns the action name
func (a Action) String() string {
	switch a {
	case Hit:
		return "hit"
	case Stay:
		return "stay"
	default:
		return "unknown"
	}
}

// RoundStartedEvent is published after the initial deal
type RoundStartedEvent struct {
	RoundID    string
	Round      int
	Players    []string
	DealerCard deck.Card // the face-up card
	timestamp  time.Time
}

func (e RoundStartedEvent) EventType() EventType { return EventTypeRoundStarted }
func (e RoundStartedEvent) Timestamp() time.Time { return e.timestamp }

// PlayerActionEvent is published when a player hits or stays
type PlayerActionEvent struct {
	RoundID   string
	Player    string
	Action    Action
	Card      *deck.Card // drawn card, nil for stay
	Value     int        // hand value after the action
	Bust      bool
	timestamp time.Time
}

func (e PlayerActionEvent) EventType() EventType { return EventTypePlayerAction }
func (e PlayerActionEvent) Timestamp() time.Time { return e.timestamp }

// HoleCardRevealedEvent is published when the dealer turns over the hole card
type HoleCardRevealedEvent struct {
	RoundID   string
	Card      deck.Card
	Value     int
	timestamp time.Time
}

func (e HoleCardRevealedEvent) EventType() EventType { return EventTypeHoleCardRevealed }
func (e HoleCardRevealedEvent) Timestamp() time.Time { return e.timestamp }

// DealerDrawEvent is published for each card the dealer draws
type DealerDrawEvent struct {
	RoundID   string
	Card      deck.Card
	Value     int
	timestamp time.Time
}

func (e DealerDrawEvent) EventType() EventType { return EventTypeDealerDraw }
func (e DealerDrawEvent) Timestamp() time.Time { return e.timestamp }

// RoundSettledEvent is published once payouts are applied
type RoundSettledEvent struct {
	RoundID     string
	Results     []Result
	DealerValue int
	DealerBust  bool
	timestamp   time.Time
}

func (e RoundSettledEvent) EventType() EventType { return EventTypeRoundSettled }
func (e RoundSettledEvent) Timestamp() time.Time { return e.timestamp }

// EventSubscriber can subscribe to game events
type EventSubscriber interface {
	OnEvent(event GameEvent)
}

// EventSubscriberFunc adapts a function to EventSubscriber
type EventSubscriberFunc func(event GameEvent)

// OnEvent calls f(event)
func (f EventSubscriberFunc) OnEvent(event GameEvent) {
	f(event)
}

// Subscribe registers a subscriber. Events are delivered synchronously,
// in order, from inside the action that caused them.
func (g *Game) Subscribe(sub EventSubscriber) {
	g.subscribers = append(g.subscribers, sub)
}

func (g *Game) publish(event GameEvent) {
	for _, sub := range g.subscribers {
		sub.OnEvent(event)
	}
}

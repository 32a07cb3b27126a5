package game

import (
	"github.com/charmbracelet/log"

	"github.com/lox/cribsim/cribbage"
)

// Option configures a Game during creation.
type Option func(*gameConfig)

// gameConfig holds all configuration for creating a game.
type gameConfig struct {
	names       [2]string
	agents      [2]Agent
	logger      *log.Logger
	bus         EventBus
	gameNumber  int
	seed        int64
	firstDealer int // -1 means draw from the RNG
	newDeck     func() *cribbage.Deck
}

// WithNames sets the player names. Defaults are "Player 1" and
// "Player 2".
func WithNames(player1, player2 string) Option {
	return func(c *gameConfig) {
		c.names = [2]string{player1, player2}
	}
}

// WithAgents sets the decision policies for both players. By default
// each player uses the uninformed random agent drawing from the game
// RNG.
func WithAgents(player1, player2 Agent) Option {
	return func(c *gameConfig) {
		c.agents = [2]Agent{player1, player2}
	}
}

// WithLogger sets the game's logger. Games are silent by default.
func WithLogger(logger *log.Logger) Option {
	return func(c *gameConfig) {
		c.logger = logger
	}
}

// WithEventBus sets the bus game events are published to.
func WithEventBus(bus EventBus) Option {
	return func(c *gameConfig) {
		c.bus = bus
	}
}

// WithGameNumber tags records produced by this game with a game number
// within a larger run.
func WithGameNumber(n int) Option {
	return func(c *gameConfig) {
		c.gameNumber = n
	}
}

// WithSeed records the seed this game's RNG was built from, purely for
// reporting; it does not reseed anything.
func WithSeed(seed int64) Option {
	return func(c *gameConfig) {
		c.seed = seed
	}
}

// WithFirstDealer fixes which player deals first instead of drawing
// the first dealer from the RNG.
func WithFirstDealer(idx int) Option {
	return func(c *gameConfig) {
		c.firstDealer = idx
	}
}

// WithDeckFactory replaces how the game obtains a fresh shuffled deck
// each deal. Tests use this to rig exact deals.
func WithDeckFactory(f func() *cribbage.Deck) Option {
	return func(c *gameConfig) {
		c.newDeck = f
	}
}

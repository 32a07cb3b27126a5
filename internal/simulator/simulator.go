package simulator

import (
	"context"
	"fmt"
	"io"
	"runtime"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/cribsim/internal/game"
	"github.com/lox/cribsim/internal/randutil"
	"github.com/lox/cribsim/internal/statistics"
)

// Config holds configuration for running simulations
type Config struct {
	Games   int
	Seed    int64
	Workers int // 0 means one per CPU
	Player1 string
	Player2 string
	Logger  *log.Logger

	// OnProgress is called as games complete, in completion order.
	OnProgress func(done, total int)

	// OnOutcome is called once per game in game-number order, after
	// the game's results have been folded into the statistics.
	// Exporters hook in here.
	OnOutcome func(*GameOutcome)
}

// GameOutcome bundles everything a single game produced: its final
// result and the record of every deal played.
type GameOutcome struct {
	Result  *game.GameResult
	Records []*game.DealRecord
}

// Simulator runs cribbage game simulations across a worker pool. Game
// seeds derive statelessly from the run seed, so results are identical
// regardless of worker count or scheduling.
type Simulator struct {
	config Config
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	if config.Logger == nil {
		config.Logger = log.New(io.Discard)
	}
	if config.Player1 == "" {
		config.Player1 = "Player 1"
	}
	if config.Player2 == "" {
		config.Player2 = "Player 2"
	}
	if config.Workers <= 0 {
		config.Workers = runtime.NumCPU()
	}
	return &Simulator{config: config}
}

// Run executes the simulation and returns the aggregated statistics.
// Any game that breaks an invariant aborts the whole run.
func (s *Simulator) Run(ctx context.Context) (*statistics.Statistics, error) {
	if s.config.Games <= 0 {
		return nil, fmt.Errorf("games must be positive, got %d", s.config.Games)
	}

	s.config.Logger.Debug("starting simulation",
		"games", s.config.Games,
		"seed", s.config.Seed,
		"workers", s.config.Workers)

	g, ctx := errgroup.WithContext(ctx)
	jobs := make(chan int)
	outcomes := make(chan *GameOutcome, s.config.Workers)

	g.Go(func() error {
		defer close(jobs)
		for n := 0; n < s.config.Games; n++ {
			select {
			case jobs <- n:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	for w := 0; w < s.config.Workers; w++ {
		g.Go(func() error {
			for n := range jobs {
				outcome, err := s.playGame(n)
				if err != nil {
					return fmt.Errorf("game %d: %w", n+1, err)
				}
				select {
				case outcomes <- outcome:
				case <-ctx.Done():
					return ctx.Err()
				}
			}
			return nil
		})
	}

	go func() {
		defer close(outcomes)
		g.Wait() //nolint:errcheck // the error is collected after the outcomes drain
	}()

	// Collect in game-number order so statistics and exports are
	// deterministic whatever the interleaving.
	stats := &statistics.Statistics{}
	pending := make(map[int]*GameOutcome)
	next := 1
	done := 0
	for outcome := range outcomes {
		done++
		if s.config.OnProgress != nil {
			s.config.OnProgress(done, s.config.Games)
		}

		pending[outcome.Result.GameNumber] = outcome
		for {
			o, ok := pending[next]
			if !ok {
				break
			}
			delete(pending, next)
			stats.Add(resultFor(o.Result))
			if s.config.OnOutcome != nil {
				s.config.OnOutcome(o)
			}
			next++
		}
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := stats.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}
	return stats, nil
}

// playGame runs one game on a freshly derived seed.
func (s *Simulator) playGame(n int) (*GameOutcome, error) {
	seed := randutil.GameSeed(s.config.Seed, n)
	rng := randutil.New(seed)

	collector := &recordCollector{}
	bus := game.NewEventBus()
	bus.Subscribe(collector)

	cribGame := game.New(rng,
		game.WithNames(s.config.Player1, s.config.Player2),
		game.WithGameNumber(n+1),
		game.WithSeed(seed),
		game.WithEventBus(bus),
		game.WithLogger(s.config.Logger.With("game", n+1)))

	result, err := cribGame.Play()
	if err != nil {
		return nil, err
	}
	return &GameOutcome{Result: result, Records: collector.records}, nil
}

// resultFor maps a game result into the statistics input type.
func resultFor(r *game.GameResult) statistics.Result {
	result := statistics.Result{
		GameNumber:  r.GameNumber,
		Winner:      r.Winner,
		HandsPlayed: r.HandsPlayed,
		FirstDealer: r.FirstDealer,
		Seed:        r.Seed,
	}
	for i, p := range r.Players {
		result.Players[i] = statistics.PlayerResult{
			Name:        p.Name,
			Score:       p.Score,
			PlayPoints:  p.PlayPoints,
			CountPoints: p.CountPoints,
		}
	}
	return result
}

// recordCollector gathers the deal records one game publishes.
type recordCollector struct {
	records []*game.DealRecord
}

func (c *recordCollector) OnEvent(e game.GameEvent) {
	if end, ok := e.(game.HandEndEvent); ok {
		c.records = append(c.records, end.Record)
	}
}

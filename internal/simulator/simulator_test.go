package simulator

import (
	"context"
	"reflect"
	"testing"

	"github.com/lox/cribsim/internal/statistics"
)

func TestNewDefaults(t *testing.T) {
	s := New(Config{Games: 10, Seed: 1})

	if s.config.Workers < 1 {
		t.Errorf("Workers = %d, want at least 1", s.config.Workers)
	}
	if s.config.Player1 != "Player 1" || s.config.Player2 != "Player 2" {
		t.Errorf("default names = %q, %q", s.config.Player1, s.config.Player2)
	}
	if s.config.Logger == nil {
		t.Error("Logger not defaulted")
	}
}

func TestRunSmall(t *testing.T) {
	var progress []int
	var outcomes []*GameOutcome

	s := New(Config{
		Games:   5,
		Seed:    42,
		Workers: 1,
		Player1: "Alice",
		Player2: "Bob",
		OnProgress: func(done, total int) {
			if total != 5 {
				t.Errorf("progress total = %d, want 5", total)
			}
			progress = append(progress, done)
		},
		OnOutcome: func(o *GameOutcome) {
			outcomes = append(outcomes, o)
		},
	})

	stats, err := s.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if stats.Games != 5 {
		t.Errorf("stats.Games = %d, want 5", stats.Games)
	}
	if got := stats.Players[0].Wins + stats.Players[1].Wins; got != 5 {
		t.Errorf("wins sum to %d, want 5", got)
	}
	if len(progress) != 5 || progress[len(progress)-1] != 5 {
		t.Errorf("progress calls = %v", progress)
	}

	if len(outcomes) != 5 {
		t.Fatalf("received %d outcomes, want 5", len(outcomes))
	}
	for i, o := range outcomes {
		if o.Result.GameNumber != i+1 {
			t.Errorf("outcome %d has game number %d", i, o.Result.GameNumber)
		}
		if len(o.Records) != o.Result.HandsPlayed {
			t.Errorf("game %d: %d records for %d hands", i+1, len(o.Records), o.Result.HandsPlayed)
		}
		for _, r := range o.Records {
			if r.GameNumber != o.Result.GameNumber {
				t.Errorf("record tagged game %d inside game %d", r.GameNumber, o.Result.GameNumber)
			}
		}
	}
}

func TestRunDeterministicAcrossWorkers(t *testing.T) {
	run := func(workers int) (*statistics.Statistics, []int) {
		t.Helper()
		var order []int
		s := New(Config{
			Games:   20,
			Seed:    7,
			Workers: workers,
			Player1: "Alice",
			Player2: "Bob",
			OnOutcome: func(o *GameOutcome) {
				order = append(order, o.Result.GameNumber)
			},
		})
		stats, err := s.Run(context.Background())
		if err != nil {
			t.Fatalf("Run with %d workers: %v", workers, err)
		}
		return stats, order
	}

	statsSerial, orderSerial := run(1)
	statsParallel, orderParallel := run(4)

	if !reflect.DeepEqual(statsSerial, statsParallel) {
		t.Errorf("worker count changed the statistics:\nserial:   %+v\nparallel: %+v",
			statsSerial, statsParallel)
	}
	if !reflect.DeepEqual(orderSerial, orderParallel) {
		t.Errorf("outcome order differs: %v vs %v", orderSerial, orderParallel)
	}
	for i, n := range orderParallel {
		if n != i+1 {
			t.Fatalf("outcome %d delivered as game %d", i, n)
		}
	}
}

func TestRunSameSeedSameResults(t *testing.T) {
	run := func(seed int64) *statistics.Statistics {
		t.Helper()
		s := New(Config{Games: 10, Seed: seed, Workers: 2})
		stats, err := s.Run(context.Background())
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
		return stats
	}

	if a, b := run(99), run(99); !reflect.DeepEqual(a, b) {
		t.Error("same seed produced different statistics")
	}
	if a, c := run(99), run(100); reflect.DeepEqual(a, c) {
		t.Error("different seeds produced identical statistics")
	}
}

func TestRunRejectsZeroGames(t *testing.T) {
	s := New(Config{Games: 0, Seed: 1})
	if _, err := s.Run(context.Background()); err == nil {
		t.Error("Run with zero games should error")
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := New(Config{Games: 1000, Seed: 1, Workers: 2})
	if _, err := s.Run(ctx); err == nil {
		t.Error("Run with cancelled context should error")
	}
}

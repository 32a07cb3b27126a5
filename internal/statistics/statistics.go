package statistics

import (
	"fmt"
	"math"
	"sort"

	"github.com/lox/cribsim/cribbage"
)

// PlayerResult is one player's final line of a game, as reported to the
// statistics collector.
type PlayerResult struct {
	Name        string
	Score       int
	PlayPoints  int
	CountPoints int
}

// Result represents the outcome of a single completed game.
type Result struct {
	GameNumber  int
	Winner      string
	Players     [2]PlayerResult
	HandsPlayed int
	FirstDealer string
	Seed        int64 // RNG seed for this game (for replay)
}

// PlayerStats accumulates per-seat aggregates across a run.
type PlayerStats struct {
	Name      string
	Wins      int
	SumScore  float64
	SumScore2 float64
	SumPlay   float64
	SumCount  float64
}

// Statistics tracks aggregate results across a simulation run. Add
// games in any order; derived values depend only on the multiset of
// results.
type Statistics struct {
	Games   int
	Players [2]PlayerStats

	// Margin of victory per game, kept whole for median/percentiles.
	Margins    []float64
	SumMargin  float64
	SumMargin2 float64

	// Deals per game.
	Hands    []float64
	SumHands float64
	MinHands int
	MaxHands int

	// Games won by whoever dealt first.
	FirstDealerWins int

	// Score bounds observed, for validation.
	MinWinnerScore int
	MaxLoserScore  int
}

// Add incorporates a completed game into the statistics.
func (s *Statistics) Add(result Result) {
	s.Games++

	var winnerScore, loserScore int
	for i, p := range result.Players {
		s.Players[i].Name = p.Name
		s.Players[i].SumScore += float64(p.Score)
		s.Players[i].SumScore2 += float64(p.Score) * float64(p.Score)
		s.Players[i].SumPlay += float64(p.PlayPoints)
		s.Players[i].SumCount += float64(p.CountPoints)

		if p.Name == result.Winner {
			s.Players[i].Wins++
			winnerScore = p.Score
		} else {
			loserScore = p.Score
		}
	}

	margin := float64(winnerScore - loserScore)
	s.Margins = append(s.Margins, margin)
	s.SumMargin += margin
	s.SumMargin2 += margin * margin

	hands := result.HandsPlayed
	s.Hands = append(s.Hands, float64(hands))
	s.SumHands += float64(hands)
	if s.Games == 1 || hands < s.MinHands {
		s.MinHands = hands
	}
	if hands > s.MaxHands {
		s.MaxHands = hands
	}

	if result.FirstDealer == result.Winner {
		s.FirstDealerWins++
	}

	if s.Games == 1 || winnerScore < s.MinWinnerScore {
		s.MinWinnerScore = winnerScore
	}
	if loserScore > s.MaxLoserScore {
		s.MaxLoserScore = loserScore
	}
}

// WinRate returns the fraction of games won by the given seat.
func (s *Statistics) WinRate(seat int) float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.Players[seat].Wins) / float64(s.Games)
}

// MeanScore returns the average final score for the given seat.
func (s *Statistics) MeanScore(seat int) float64 {
	if s.Games == 0 {
		return 0
	}
	return s.Players[seat].SumScore / float64(s.Games)
}

// MeanPlayPoints returns the average play-phase points for the seat.
func (s *Statistics) MeanPlayPoints(seat int) float64 {
	if s.Games == 0 {
		return 0
	}
	return s.Players[seat].SumPlay / float64(s.Games)
}

// MeanCountPoints returns the average count-phase points for the seat.
func (s *Statistics) MeanCountPoints(seat int) float64 {
	if s.Games == 0 {
		return 0
	}
	return s.Players[seat].SumCount / float64(s.Games)
}

// MeanMargin returns the average margin of victory.
func (s *Statistics) MeanMargin() float64 {
	if s.Games == 0 {
		return 0
	}
	return s.SumMargin / float64(s.Games)
}

// MarginVariance returns the sample variance of the margins.
func (s *Statistics) MarginVariance() float64 {
	if s.Games < 2 {
		return 0
	}
	mean := s.MeanMargin()
	return (s.SumMargin2 - float64(s.Games)*mean*mean) / float64(s.Games-1)
}

// MarginStdDev returns the sample standard deviation of the margins.
func (s *Statistics) MarginStdDev() float64 {
	return math.Sqrt(s.MarginVariance())
}

// MarginStdError returns the standard error of the mean margin.
func (s *Statistics) MarginStdError() float64 {
	if s.Games == 0 {
		return 0
	}
	return s.MarginStdDev() / math.Sqrt(float64(s.Games))
}

// MarginConfidenceInterval95 returns the 95% confidence interval for
// the mean margin.
func (s *Statistics) MarginConfidenceInterval95() (float64, float64) {
	mean := s.MeanMargin()
	margin := 1.96 * s.MarginStdError()
	return mean - margin, mean + margin
}

// MedianMargin returns the median margin of victory.
func (s *Statistics) MedianMargin() float64 {
	return median(s.Margins)
}

// MarginPercentile returns the margin at the given percentile (0.0 to
// 1.0), linearly interpolated.
func (s *Statistics) MarginPercentile(p float64) float64 {
	return percentile(s.Margins, p)
}

// MeanHands returns the average deals per game.
func (s *Statistics) MeanHands() float64 {
	if s.Games == 0 {
		return 0
	}
	return s.SumHands / float64(s.Games)
}

// MedianHands returns the median deals per game.
func (s *Statistics) MedianHands() float64 {
	return median(s.Hands)
}

// FirstDealerWinRate returns the fraction of games won by the player
// who dealt first.
func (s *Statistics) FirstDealerWinRate() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.FirstDealerWins) / float64(s.Games)
}

func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}

func percentile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1

	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// Validate performs comprehensive validation of statistics data
func (s *Statistics) Validate() error {
	if s.Games <= 0 {
		return fmt.Errorf("invalid games count: %d", s.Games)
	}

	totalWins := s.Players[0].Wins + s.Players[1].Wins
	if totalWins != s.Games {
		return fmt.Errorf("wins (%d + %d) do not sum to games (%d)",
			s.Players[0].Wins, s.Players[1].Wins, s.Games)
	}

	if len(s.Margins) != s.Games {
		return fmt.Errorf("margins length (%d) does not match games count (%d)",
			len(s.Margins), s.Games)
	}
	if len(s.Hands) != s.Games {
		return fmt.Errorf("hands length (%d) does not match games count (%d)",
			len(s.Hands), s.Games)
	}

	if s.MinHands < 1 {
		return fmt.Errorf("game recorded with %d hands", s.MinHands)
	}
	if s.MinWinnerScore < cribbage.WinningScore {
		return fmt.Errorf("winner recorded below the winning score: %d", s.MinWinnerScore)
	}
	if s.MaxLoserScore >= cribbage.WinningScore {
		return fmt.Errorf("loser recorded at or above the winning score: %d", s.MaxLoserScore)
	}
	if s.FirstDealerWins > s.Games {
		return fmt.Errorf("first-dealer wins (%d) exceed games (%d)", s.FirstDealerWins, s.Games)
	}

	return nil
}

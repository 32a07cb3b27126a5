package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/lox/cribsim/cribbage"
	"github.com/lox/cribsim/internal/analysis"
	"github.com/lox/cribsim/internal/statistics"
)

func sampleStats() *statistics.Statistics {
	games := []statistics.Result{
		{GameNumber: 1, Winner: "Alice", HandsPlayed: 9, FirstDealer: "Alice", Players: [2]statistics.PlayerResult{
			{Name: "Alice", Score: 121, PlayPoints: 30, CountPoints: 91},
			{Name: "Bob", Score: 95, PlayPoints: 25, CountPoints: 70},
		}},
		{GameNumber: 2, Winner: "Alice", HandsPlayed: 10, FirstDealer: "Bob", Players: [2]statistics.PlayerResult{
			{Name: "Alice", Score: 121, PlayPoints: 28, CountPoints: 93},
			{Name: "Bob", Score: 111, PlayPoints: 27, CountPoints: 84},
		}},
		{GameNumber: 3, Winner: "Bob", HandsPlayed: 8, FirstDealer: "Bob", Players: [2]statistics.PlayerResult{
			{Name: "Alice", Score: 119, PlayPoints: 27, CountPoints: 92},
			{Name: "Bob", Score: 121, PlayPoints: 29, CountPoints: 92},
		}},
		{GameNumber: 4, Winner: "Alice", HandsPlayed: 9, FirstDealer: "Alice", Players: [2]statistics.PlayerResult{
			{Name: "Alice", Score: 121, PlayPoints: 27, CountPoints: 94},
			{Name: "Bob", Score: 107, PlayPoints: 23, CountPoints: 84},
		}},
	}

	stats := &statistics.Statistics{}
	for _, g := range games {
		stats.Add(g)
	}
	return stats
}

func TestWriteRunSummary(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf, false)
	err := r.WriteRunSummary(sampleStats(), RunInfo{
		Seed:     42,
		Workers:  4,
		Duration: 2 * time.Second,
		RunDir:   "logs/2026-01-02/15-04-05",
	})
	if err != nil {
		t.Fatalf("WriteRunSummary: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"Cribbage Simulation Report",
		"Players: Alice vs Bob",
		"Games: 4",
		"Seed: 42",
		"Workers: 4",
		"Duration: 2s (2 games/sec)",
		"Alice: 3 wins (75.0%)",
		"Bob: 1 wins (25.0%)",
		"Alice: score 120.5 (play 28.0 + count 92.5)",
		"Bob: score 108.5 (play 26.0 + count 82.5)",
		"Margin of victory: mean 13.00 (95% CI 3.20 to 22.80), median 12.0",
		"Hands per game: mean 9.00, median 9.0 (range 8 to 10)",
		"First dealer won 75.0% of games",
		"Results exported to logs/2026-01-02/15-04-05",
		"Replay this run with --seed 42",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q\n%s", want, out)
		}
	}
}

func TestWriteRunSummaryNoGames(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf, false)
	if err := r.WriteRunSummary(&statistics.Statistics{}, RunInfo{}); err != nil {
		t.Fatalf("WriteRunSummary: %v", err)
	}
	if !strings.Contains(buf.String(), "No games played.") {
		t.Errorf("expected empty-run notice, got:\n%s", buf.String())
	}
}

// Styled output wraps whole lines in escape sequences, so the text
// itself must still be present verbatim.
func TestWriteRunSummaryStyled(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf, true)
	if err := r.WriteRunSummary(sampleStats(), RunInfo{Seed: 7}); err != nil {
		t.Fatalf("WriteRunSummary: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"Cribbage Simulation Report", "Alice: 3 wins (75.0%)"} {
		if !strings.Contains(out, want) {
			t.Errorf("styled summary missing %q\n%s", want, out)
		}
	}
}

func TestWriteAnalysis(t *testing.T) {
	rep := &analysis.Report{
		Deals:      2,
		Games:      1,
		HandScores: analysis.NewDistribution([]int{4, 8, 6, 12}),
		CribScores: analysis.NewDistribution([]int{0, 4}),
		Categories: []analysis.CategoryStat{
			{Category: cribbage.CategoryFifteens, MeanPoints: 2.5, PctOfHands: 75},
		},
		Dealer: analysis.DealerAdvantage{
			CribMean: 4.5, CribMedian: 4, CribMax: 12,
			DealerMean: 12, PoneMean: 8, Advantage: 4,
			FirstHandDealerMean: 11, FirstHandPoneMean: 9, FirstHandAdvantage: 2,
		},
		Positions: []analysis.PositionStat{
			{Position: "ahead", Mean: 7.25, Median: 7, Count: 8},
		},
		BestDealt: []analysis.HandGroup{
			{Cards: "5♥,5♣,T♦,J♠,Q♦,K♠", Mean: 12, Max: 12, Count: 2},
		},
		BestKept: []analysis.HandGroup{
			{Cards: "5♥,5♣,T♦,J♠", Mean: 12, Max: 12, Count: 2},
		},
		HighRanks:  []analysis.RankStat{{Rank: cribbage.Five, Count: 3, Pct: 75}},
		RankScores: []analysis.RankAverage{{Rank: cribbage.Jack, MeanScore: 9.5, Count: 4}},
		Fives: analysis.FiveValue{
			MeanWith: 10, MeanWithout: 7, Advantage: 3,
			WithCount: 2, WithoutCount: 6, WithPct: 25,
		},
	}
	summary := &analysis.SummaryStats{
		Games:      4,
		Wins:       map[string]int{"Alice": 3, "Bob": 1},
		MeanMargin: 13.5,
		MeanHands:  9,
	}

	var buf bytes.Buffer
	r := NewReporter(&buf, false)
	if err := r.WriteAnalysis(rep, summary); err != nil {
		t.Fatalf("WriteAnalysis: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"Cribbage Run Analysis",
		"Deals: 2 across 1 games",
		"Mean 7.50, median 7.0, std 3.42 (min 4, max 12)",
		"Zero scores: 0 (0.00%)",
		"fifteens  2.50 pts/hand, in 75.0% of hands",
		"Crib: mean 4.50, median 4.0, max 12",
		"Dealer take (hand + crib): 12.00 vs pone 8.00, advantage +4.00",
		"Opening deal: dealer 11.00 vs pone 9.00, advantage +2.00",
		"ahead:  mean 7.25, median 7.0 (8 hands)",
		" 1. 5♥,5♣,T♦,J♠,Q♦,K♠  mean 12.00, max 12 (seen 2)",
		"Cards In 15+ Point Hands",
		"5: 3 cards (75.0%)",
		"J: 9.50 avg (4 hands)",
		"With: mean 10.00 (2 hands, 25.0%)",
		"Without: mean 7.00 (6 hands)",
		"Advantage: +3.00",
		"Games: 4",
		"Alice: 3 wins (75.0%)",
		"Mean margin: 13.5, mean hands per game: 9.0",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("analysis missing %q\n%s", want, out)
		}
	}
}

func TestWriteAnalysisWithoutSummary(t *testing.T) {
	rep := &analysis.Report{Deals: 1, Games: 1}

	var buf bytes.Buffer
	r := NewReporter(&buf, false)
	if err := r.WriteAnalysis(rep, nil); err != nil {
		t.Fatalf("WriteAnalysis: %v", err)
	}
	if strings.Contains(buf.String(), "Game Results") {
		t.Errorf("unexpected game results section:\n%s", buf.String())
	}
}

func TestWriteScorecard(t *testing.T) {
	hand, err := cribbage.ParseCards("5H 5C 5D JS")
	if err != nil {
		t.Fatalf("parse hand: %v", err)
	}
	starter, err := cribbage.ParseCard("5S")
	if err != nil {
		t.Fatalf("parse starter: %v", err)
	}
	b, err := cribbage.ScoreHand(hand, starter, false)
	if err != nil {
		t.Fatalf("score hand: %v", err)
	}

	var buf bytes.Buffer
	r := NewReporter(&buf, false)
	if err := r.WriteScorecard(hand, starter, false, b); err != nil {
		t.Fatalf("WriteScorecard: %v", err)
	}

	want := `Hand: 5♥ 5♦ 5♣ J♠   Starter: 5♠

fifteens    16
pairs       12
nobs         1
total       29
`
	if buf.String() != want {
		t.Errorf("scorecard mismatch\ngot:\n%s\nwant:\n%s", buf.String(), want)
	}

	buf.Reset()
	if err := r.WriteScorecard(hand, starter, true, b); err != nil {
		t.Fatalf("WriteScorecard crib: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "Crib: ") {
		t.Errorf("expected crib label, got %q", buf.String())
	}
}

func TestWriteRules(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf, false)
	if err := r.WriteRules(); err != nil {
		t.Fatalf("WriteRules: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"Cribbage Scoring Reference",
		"Nobs (Jack of starter suit)",
		"First to 121 wins on the spot",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("rules missing %q", want)
		}
	}
}

func TestStyledHonoursNoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	if Styled() {
		t.Error("expected plain output when NO_COLOR is set")
	}
}

package report

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/cribsim/cribbage"
	"github.com/lox/cribsim/internal/analysis"
	"github.com/lox/cribsim/internal/statistics"
)

// Reporter renders run summaries and analysis reports. With styled set
// it decorates headers and highlights through lipgloss; otherwise the
// same text comes out plain, which is the form saved to report.txt.
type Reporter struct {
	writer io.Writer
	styled bool
}

// NewReporter creates a reporter writing to w. A nil writer falls back
// to stdout.
func NewReporter(w io.Writer, styled bool) *Reporter {
	if w == nil {
		w = os.Stdout
	}
	return &Reporter{writer: w, styled: styled}
}

// RunInfo carries the run parameters printed alongside the aggregated
// statistics.
type RunInfo struct {
	Seed     int64
	Workers  int
	Duration time.Duration
	RunDir   string // empty when export was disabled
}

// WriteRunSummary renders the end-of-run report for a simulation.
func (r *Reporter) WriteRunSummary(stats *statistics.Statistics, info RunInfo) error {
	var sb strings.Builder

	r.title(&sb, "Cribbage Simulation Report")

	if stats.Games == 0 {
		sb.WriteString("No games played.\n")
		_, err := fmt.Fprint(r.writer, sb.String())
		return err
	}

	sb.WriteString(fmt.Sprintf("Players: %s vs %s\n", stats.Players[0].Name, stats.Players[1].Name))
	sb.WriteString(fmt.Sprintf("Games: %d\n", stats.Games))
	sb.WriteString(fmt.Sprintf("Seed: %d\n", info.Seed))
	if info.Workers > 0 {
		sb.WriteString(fmt.Sprintf("Workers: %d\n", info.Workers))
	}
	if info.Duration > 0 {
		sb.WriteString(fmt.Sprintf("Duration: %s (%.0f games/sec)\n",
			info.Duration.Round(time.Millisecond),
			float64(stats.Games)/info.Duration.Seconds()))
	}

	r.section(&sb, "Results")
	for seat := 0; seat < 2; seat++ {
		line := fmt.Sprintf("%s: %d wins (%.1f%%)",
			stats.Players[seat].Name, stats.Players[seat].Wins, stats.WinRate(seat)*100)
		if stats.Players[seat].Wins > stats.Players[1-seat].Wins {
			line = r.sty(WinnerStyle, line)
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	r.section(&sb, "Averages")
	for seat := 0; seat < 2; seat++ {
		sb.WriteString(fmt.Sprintf("%s: score %.1f (play %.1f + count %.1f)\n",
			stats.Players[seat].Name, stats.MeanScore(seat),
			stats.MeanPlayPoints(seat), stats.MeanCountPoints(seat)))
	}

	r.section(&sb, "Margins")
	lo, hi := stats.MarginConfidenceInterval95()
	sb.WriteString(fmt.Sprintf("Margin of victory: mean %.2f (95%% CI %.2f to %.2f), median %.1f\n",
		stats.MeanMargin(), lo, hi, stats.MedianMargin()))
	sb.WriteString(fmt.Sprintf("Hands per game: mean %.2f, median %.1f (range %d to %d)\n",
		stats.MeanHands(), stats.MedianHands(), stats.MinHands, stats.MaxHands))
	sb.WriteString(fmt.Sprintf("First dealer won %.1f%% of games\n", stats.FirstDealerWinRate()*100))

	sb.WriteString("\n")
	if info.RunDir != "" {
		sb.WriteString(r.sty(MutedStyle, fmt.Sprintf("Results exported to %s", info.RunDir)))
		sb.WriteString("\n")
	}
	sb.WriteString(r.sty(MutedStyle, fmt.Sprintf("Replay this run with --seed %d", info.Seed)))
	sb.WriteString("\n")

	_, err := fmt.Fprint(r.writer, sb.String())
	return err
}

// WriteAnalysis renders the full analysis of an exported run. A nil
// summary skips the game results section.
func (r *Reporter) WriteAnalysis(rep *analysis.Report, summary *analysis.SummaryStats) error {
	var sb strings.Builder

	r.title(&sb, "Cribbage Run Analysis")
	sb.WriteString(fmt.Sprintf("Deals: %d across %d games\n", rep.Deals, rep.Games))

	r.section(&sb, "Hand Scores")
	r.distribution(&sb, rep.HandScores)

	r.section(&sb, "Crib Scores")
	r.distribution(&sb, rep.CribScores)

	if len(rep.Categories) > 0 {
		r.section(&sb, "Score Sources")
		for _, c := range rep.Categories {
			sb.WriteString(fmt.Sprintf("%-9s %.2f pts/hand, in %.1f%% of hands\n",
				c.Category, c.MeanPoints, c.PctOfHands))
		}
	}

	r.section(&sb, "Dealer Advantage")
	d := rep.Dealer
	sb.WriteString(fmt.Sprintf("Crib: mean %.2f, median %.1f, max %d\n",
		d.CribMean, d.CribMedian, d.CribMax))
	sb.WriteString(fmt.Sprintf("Dealer take (hand + crib): %.2f vs pone %.2f, advantage %+.2f\n",
		d.DealerMean, d.PoneMean, d.Advantage))
	sb.WriteString(fmt.Sprintf("Opening deal: dealer %.2f vs pone %.2f, advantage %+.2f\n",
		d.FirstHandDealerMean, d.FirstHandPoneMean, d.FirstHandAdvantage))

	if len(rep.Positions) > 0 {
		r.section(&sb, "Score By Standing")
		for _, p := range rep.Positions {
			sb.WriteString(fmt.Sprintf("%-7s mean %.2f, median %.1f (%d hands)\n",
				p.Position+":", p.Mean, p.Median, p.Count))
		}
	}

	r.handGroups(&sb, "Best Dealt Hands", rep.BestDealt)
	r.handGroups(&sb, "Best Kept Hands", rep.BestKept)

	if len(rep.HighRanks) > 0 {
		r.section(&sb, fmt.Sprintf("Cards In %d+ Point Hands", analysis.HighHandThreshold))
		for _, rs := range rep.HighRanks {
			sb.WriteString(fmt.Sprintf("%s: %d cards (%.1f%%)\n", rs.Rank, rs.Count, rs.Pct))
		}
	}

	if len(rep.RankScores) > 0 {
		r.section(&sb, "Mean Hand Score By Rank Held")
		for _, ra := range rep.RankScores {
			sb.WriteString(fmt.Sprintf("%s: %.2f avg (%d hands)\n", ra.Rank, ra.MeanScore, ra.Count))
		}
	}

	r.section(&sb, "Holding A Five")
	f := rep.Fives
	sb.WriteString(fmt.Sprintf("With: mean %.2f (%d hands, %.1f%%)\n", f.MeanWith, f.WithCount, f.WithPct))
	sb.WriteString(fmt.Sprintf("Without: mean %.2f (%d hands)\n", f.MeanWithout, f.WithoutCount))
	sb.WriteString(fmt.Sprintf("Advantage: %+.2f\n", f.Advantage))

	if summary != nil {
		r.section(&sb, "Game Results")
		sb.WriteString(fmt.Sprintf("Games: %d\n", summary.Games))
		names := make([]string, 0, len(summary.Wins))
		for name := range summary.Wins {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			sb.WriteString(fmt.Sprintf("%s: %d wins (%.1f%%)\n",
				name, summary.Wins[name],
				float64(summary.Wins[name])/float64(summary.Games)*100))
		}
		sb.WriteString(fmt.Sprintf("Mean margin: %.1f, mean hands per game: %.1f\n",
			summary.MeanMargin, summary.MeanHands))
	}

	_, err := fmt.Fprint(r.writer, sb.String())
	return err
}

// Count categories in announcement order.
var countCategories = []cribbage.Category{
	cribbage.CategoryFifteens,
	cribbage.CategoryPairs,
	cribbage.CategoryRuns,
	cribbage.CategoryFlush,
	cribbage.CategoryNobs,
}

// WriteScorecard prints one hand's count with its category breakdown.
// Zero-point categories are left out, the way a count is announced.
func (r *Reporter) WriteScorecard(hand []cribbage.Card, starter cribbage.Card, isCrib bool, b cribbage.Breakdown) error {
	var sb strings.Builder

	label := "Hand"
	if isCrib {
		label = "Crib"
	}
	sb.WriteString(fmt.Sprintf("%s: %s   Starter: %s\n", label,
		r.cards(cribbage.SortByRunValue(hand)), r.card(starter)))
	sb.WriteString("\n")

	for _, cat := range countCategories {
		pts := b.Get(cat)
		if pts == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("%-10s %3d\n", cat, pts))
	}
	sb.WriteString(r.sty(TotalStyle, fmt.Sprintf("%-10s %3d", "total", b.Total())))
	sb.WriteString("\n")

	_, err := fmt.Fprint(r.writer, sb.String())
	return err
}

const rulesText = `
Cribbage Scoring Reference
==========================

The play (pegging)
------------------
Fifteen (count reaches 15)       2
Thirty-one (count reaches 31)    2
Pair                             2
Three of a kind                  6
Four of a kind                  12
Run of N (any order)             N
Go / last card                   1

The show (counting)
-------------------
Each combination totalling 15    2
Each distinct pair               2
Run of N                         N
Four-card flush (hand only)      4
Five-card flush                  5
Nobs (Jack of starter suit)      1

His heels (dealer cuts a Jack)   2

Hands count pone first, then the dealer's hand, then the crib. The
crib only flushes with all five cards. First to 121 wins on the spot,
at any point in the deal.
`

// WriteRules prints a scoring quick-reference.
func (r *Reporter) WriteRules() error {
	_, err := fmt.Fprint(r.writer, rulesText)
	return err
}

func (r *Reporter) title(sb *strings.Builder, text string) {
	sb.WriteString("\n")
	sb.WriteString(r.sty(TitleStyle, text))
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", len(text)))
	sb.WriteString("\n")
}

func (r *Reporter) section(sb *strings.Builder, text string) {
	sb.WriteString("\n")
	sb.WriteString(r.sty(SectionStyle, text))
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("-", len(text)))
	sb.WriteString("\n")
}

func (r *Reporter) distribution(sb *strings.Builder, d analysis.Distribution) {
	if d.Count == 0 {
		sb.WriteString("No hands.\n")
		return
	}
	sb.WriteString(fmt.Sprintf("Mean %.2f, median %.1f, std %.2f (min %d, max %d)\n",
		d.Mean, d.Median, d.StdDev, d.Min, d.Max))
	sb.WriteString(fmt.Sprintf("Zero scores: %d (%.2f%%)\n", d.Zero, d.ZeroPct))
	if d.TwentyNine > 0 {
		sb.WriteString(fmt.Sprintf("Perfect 29s: %d (%.2f%%)\n", d.TwentyNine, d.TwentyNinePct))
	}
}

func (r *Reporter) handGroups(sb *strings.Builder, title string, groups []analysis.HandGroup) {
	if len(groups) == 0 {
		return
	}
	r.section(sb, title)
	for i, g := range groups {
		sb.WriteString(fmt.Sprintf("%2d. %s  mean %.2f, max %d (seen %d)\n",
			i+1, g.Cards, g.Mean, g.Max, g.Count))
	}
}

func (r *Reporter) sty(s lipgloss.Style, text string) string {
	if !r.styled {
		return text
	}
	return s.Render(text)
}

func (r *Reporter) card(c cribbage.Card) string {
	if r.styled && (c.Suit == cribbage.Hearts || c.Suit == cribbage.Diamonds) {
		return RedCardStyle.Render(c.String())
	}
	return c.String()
}

func (r *Reporter) cards(cards []cribbage.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = r.card(c)
	}
	return strings.Join(parts, " ")
}

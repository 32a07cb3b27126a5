package analysis

import (
	"math"
	"sort"

	"github.com/lox/cribsim/cribbage"
)

// HighHandThreshold marks a kept hand as high-scoring for the card
// frequency report.
const HighHandThreshold = 15

// Report bundles every analysis over one run's deals.
type Report struct {
	Deals      int
	Games      int
	HandScores Distribution
	CribScores Distribution
	Categories []CategoryStat
	Dealer     DealerAdvantage
	Positions  []PositionStat
	BestDealt  []HandGroup
	BestKept   []HandGroup
	HighRanks  []RankStat
	RankScores []RankAverage
	Fives      FiveValue
}

// Analyze runs the full report over parsed deals.
func Analyze(deals []Deal, topN int) *Report {
	games := make(map[int]struct{}, len(deals))
	for i := range deals {
		games[deals[i].GameNumber] = struct{}{}
	}
	return &Report{
		Deals:      len(deals),
		Games:      len(games),
		HandScores: HandScoreDistribution(deals),
		CribScores: CribScoreDistribution(deals),
		Categories: CategoryBreakdown(deals),
		Dealer:     AnalyzeDealerAdvantage(deals),
		Positions:  PositionalScoring(deals),
		BestDealt:  BestDealtHands(deals, topN),
		BestKept:   BestKeptHands(deals, topN),
		HighRanks:  CardFrequency(deals, HighHandThreshold),
		RankScores: AverageScoreByRank(deals),
		Fives:      AnalyzeFiveValue(deals),
	}
}

// Distribution summarises one score population.
type Distribution struct {
	Count         int
	Mean          float64
	Median        float64
	StdDev        float64
	Min           int
	Max           int
	Zero          int
	ZeroPct       float64
	TwentyNine    int
	TwentyNinePct float64
}

// NewDistribution summarises scores. An empty population yields the
// zero struct.
func NewDistribution(scores []int) Distribution {
	if len(scores) == 0 {
		return Distribution{}
	}

	d := Distribution{
		Count: len(scores),
		Min:   scores[0],
		Max:   scores[0],
	}
	var sum, sum2 float64
	for _, s := range scores {
		sum += float64(s)
		sum2 += float64(s) * float64(s)
		if s < d.Min {
			d.Min = s
		}
		if s > d.Max {
			d.Max = s
		}
		switch s {
		case 0:
			d.Zero++
		case 29:
			d.TwentyNine++
		}
	}
	n := float64(d.Count)
	d.Mean = sum / n
	if d.Count > 1 {
		variance := (sum2 - n*d.Mean*d.Mean) / (n - 1)
		if variance > 0 {
			d.StdDev = math.Sqrt(variance)
		}
	}
	d.Median = medianInts(scores)
	d.ZeroPct = float64(d.Zero) / n * 100
	d.TwentyNinePct = float64(d.TwentyNine) / n * 100
	return d
}

func medianInts(values []int) float64 {
	sorted := make([]int, len(values))
	copy(sorted, values)
	sort.Ints(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return float64(sorted[mid-1]+sorted[mid]) / 2
	}
	return float64(sorted[mid])
}

// HandScoreDistribution summarises kept-hand counting scores across
// both seats. Cribs are excluded.
func HandScoreDistribution(deals []Deal) Distribution {
	scores := make([]int, 0, len(deals)*2)
	for i := range deals {
		scores = append(scores, deals[i].Players[0].HandScore, deals[i].Players[1].HandScore)
	}
	return NewDistribution(scores)
}

// CribScoreDistribution summarises crib counting scores.
func CribScoreDistribution(deals []Deal) Distribution {
	scores := make([]int, 0, len(deals))
	for i := range deals {
		scores = append(scores, deals[i].CribScore)
	}
	return NewDistribution(scores)
}

// CategoryStat is one count category's contribution across kept hands.
type CategoryStat struct {
	Category   cribbage.Category
	MeanPoints float64
	PctOfHands float64
}

// CategoryBreakdown reports, per count category, the average points
// per hand and the share of hands scoring in it.
func CategoryBreakdown(deals []Deal) []CategoryStat {
	if len(deals) == 0 {
		return nil
	}

	categories := []cribbage.Category{
		cribbage.CategoryFifteens,
		cribbage.CategoryPairs,
		cribbage.CategoryRuns,
		cribbage.CategoryFlush,
		cribbage.CategoryNobs,
	}

	stats := make([]CategoryStat, len(categories))
	hands := float64(len(deals) * 2)
	for ci, cat := range categories {
		sum := 0
		present := 0
		for i := range deals {
			for p := range deals[i].Players {
				pts := deals[i].Players[p].Breakdown.Get(cat)
				sum += pts
				if pts > 0 {
					present++
				}
			}
		}
		stats[ci] = CategoryStat{
			Category:   cat,
			MeanPoints: float64(sum) / hands,
			PctOfHands: float64(present) / hands * 100,
		}
	}
	return stats
}

// DealerAdvantage compares the dealer's take (hand plus crib) with the
// pone's hand.
type DealerAdvantage struct {
	CribMean   float64
	CribMedian float64
	CribMax    int

	DealerMean float64
	PoneMean   float64
	Advantage  float64

	FirstHandDealerMean float64
	FirstHandPoneMean   float64
	FirstHandAdvantage  float64
}

// AnalyzeDealerAdvantage measures how much the crib is worth across
// all deals, and separately across each game's opening deal.
func AnalyzeDealerAdvantage(deals []Deal) DealerAdvantage {
	if len(deals) == 0 {
		return DealerAdvantage{}
	}

	var adv DealerAdvantage
	cribScores := make([]int, 0, len(deals))
	var dealerSum, poneSum float64
	var firstDealerSum, firstPoneSum float64
	firstHands := 0

	for i := range deals {
		d := &deals[i]
		cribScores = append(cribScores, d.CribScore)
		dealerTake := float64(d.Dealer().HandScore + d.CribScore)
		poneTake := float64(d.Pone().HandScore)
		dealerSum += dealerTake
		poneSum += poneTake
		if d.HandNumber == 1 {
			firstDealerSum += dealerTake
			firstPoneSum += poneTake
			firstHands++
		}
	}

	crib := NewDistribution(cribScores)
	adv.CribMean = crib.Mean
	adv.CribMedian = crib.Median
	adv.CribMax = crib.Max

	n := float64(len(deals))
	adv.DealerMean = dealerSum / n
	adv.PoneMean = poneSum / n
	adv.Advantage = adv.DealerMean - adv.PoneMean

	if firstHands > 0 {
		fn := float64(firstHands)
		adv.FirstHandDealerMean = firstDealerSum / fn
		adv.FirstHandPoneMean = firstPoneSum / fn
		adv.FirstHandAdvantage = adv.FirstHandDealerMean - adv.FirstHandPoneMean
	}
	return adv
}

// PositionStat buckets hand scores by a player's standing entering the
// count.
type PositionStat struct {
	Position string
	Mean     float64
	Median   float64
	Count    int
}

// PositionalScoring groups hand scores by whether their holder entered
// the count ahead, behind or tied.
func PositionalScoring(deals []Deal) []PositionStat {
	buckets := map[string][]int{}
	for i := range deals {
		d := &deals[i]
		p0, p1 := d.Players[0].ScoreBefore, d.Players[1].ScoreBefore
		pos0, pos1 := "tied", "tied"
		switch {
		case p0 > p1:
			pos0, pos1 = "ahead", "behind"
		case p0 < p1:
			pos0, pos1 = "behind", "ahead"
		}
		buckets[pos0] = append(buckets[pos0], d.Players[0].HandScore)
		buckets[pos1] = append(buckets[pos1], d.Players[1].HandScore)
	}

	var stats []PositionStat
	for _, pos := range []string{"ahead", "behind", "tied"} {
		scores := buckets[pos]
		if len(scores) == 0 {
			continue
		}
		dist := NewDistribution(scores)
		stats = append(stats, PositionStat{
			Position: pos,
			Mean:     dist.Mean,
			Median:   dist.Median,
			Count:    dist.Count,
		})
	}
	return stats
}

// HandGroup aggregates outcomes for one distinct set of cards.
type HandGroup struct {
	Cards string
	Mean  float64
	Max   int
	Count int
}

type groupAgg struct {
	sum   int
	max   int
	count int
}

func accumulate(groups map[string]*groupAgg, key string, score int) {
	g := groups[key]
	if g == nil {
		g = &groupAgg{}
		groups[key] = g
	}
	g.sum += score
	g.count++
	if score > g.max {
		g.max = score
	}
}

func topGroups(groups map[string]*groupAgg, topN int) []HandGroup {
	out := make([]HandGroup, 0, len(groups))
	for cards, g := range groups {
		out = append(out, HandGroup{
			Cards: cards,
			Mean:  float64(g.sum) / float64(g.count),
			Max:   g.max,
			Count: g.count,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Mean != out[j].Mean {
			return out[i].Mean > out[j].Mean
		}
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Cards < out[j].Cards
	})
	if topN > 0 && len(out) > topN {
		out = out[:topN]
	}
	return out
}

// BestDealtHands ranks six-card deals by average total take: the kept
// hand's count plus the crib when the holder dealt. Cards are
// canonicalised by run order so the same deal groups together however
// it arrived.
func BestDealtHands(deals []Deal, topN int) []HandGroup {
	groups := map[string]*groupAgg{}
	for i := range deals {
		d := &deals[i]
		for p := range d.Players {
			total := d.Players[p].HandScore
			if p == d.DealerSeat {
				total += d.CribScore
			}
			key := cribbage.CardsString(cribbage.SortByRunValue(d.Players[p].Dealt))
			accumulate(groups, key, total)
		}
	}
	return topGroups(groups, topN)
}

// BestKeptHands ranks four-card kept hands by average count.
func BestKeptHands(deals []Deal, topN int) []HandGroup {
	groups := map[string]*groupAgg{}
	for i := range deals {
		d := &deals[i]
		for p := range d.Players {
			key := cribbage.CardsString(cribbage.SortByRunValue(d.Players[p].Kept))
			accumulate(groups, key, d.Players[p].HandScore)
		}
	}
	return topGroups(groups, topN)
}

// RankStat is one rank's share of the cards in high-scoring hands.
type RankStat struct {
	Rank  cribbage.Rank
	Count int
	Pct   float64
}

// CardFrequency counts card ranks across kept hands scoring at least
// threshold points.
func CardFrequency(deals []Deal, threshold int) []RankStat {
	counts := map[cribbage.Rank]int{}
	total := 0
	for i := range deals {
		for p := range deals[i].Players {
			pr := &deals[i].Players[p]
			if pr.HandScore < threshold {
				continue
			}
			for _, c := range pr.Kept {
				counts[c.Rank]++
				total++
			}
		}
	}
	if total == 0 {
		return nil
	}

	out := make([]RankStat, 0, len(counts))
	for rank, count := range counts {
		out = append(out, RankStat{
			Rank:  rank,
			Count: count,
			Pct:   float64(count) / float64(total) * 100,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Rank < out[j].Rank
	})
	return out
}

// RankAverage is the mean hand count across kept hands holding a rank.
type RankAverage struct {
	Rank      cribbage.Rank
	MeanScore float64
	Count     int
}

// AverageScoreByRank reports the average hand count across kept hands
// holding each rank. A rank counts once per hand no matter how many
// copies the hand holds.
func AverageScoreByRank(deals []Deal) []RankAverage {
	sums := map[cribbage.Rank]int{}
	counts := map[cribbage.Rank]int{}
	for i := range deals {
		for p := range deals[i].Players {
			pr := &deals[i].Players[p]
			seen := map[cribbage.Rank]bool{}
			for _, c := range pr.Kept {
				if seen[c.Rank] {
					continue
				}
				seen[c.Rank] = true
				sums[c.Rank] += pr.HandScore
				counts[c.Rank]++
			}
		}
	}

	out := make([]RankAverage, 0, len(sums))
	for rank, sum := range sums {
		out = append(out, RankAverage{
			Rank:      rank,
			MeanScore: float64(sum) / float64(counts[rank]),
			Count:     counts[rank],
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].MeanScore != out[j].MeanScore {
			return out[i].MeanScore > out[j].MeanScore
		}
		return out[i].Rank < out[j].Rank
	})
	return out
}

// FiveValue contrasts hands holding a five against hands without one.
type FiveValue struct {
	MeanWith     float64
	MeanWithout  float64
	Advantage    float64
	WithCount    int
	WithoutCount int
	WithPct      float64
}

// AnalyzeFiveValue splits kept hands on whether they hold a five.
func AnalyzeFiveValue(deals []Deal) FiveValue {
	var withSum, withoutSum int
	var v FiveValue
	for i := range deals {
		for p := range deals[i].Players {
			pr := &deals[i].Players[p]
			hasFive := false
			for _, c := range pr.Kept {
				if c.Rank == cribbage.Five {
					hasFive = true
					break
				}
			}
			if hasFive {
				withSum += pr.HandScore
				v.WithCount++
			} else {
				withoutSum += pr.HandScore
				v.WithoutCount++
			}
		}
	}
	if v.WithCount > 0 {
		v.MeanWith = float64(withSum) / float64(v.WithCount)
	}
	if v.WithoutCount > 0 {
		v.MeanWithout = float64(withoutSum) / float64(v.WithoutCount)
	}
	v.Advantage = v.MeanWith - v.MeanWithout
	if total := v.WithCount + v.WithoutCount; total > 0 {
		v.WithPct = float64(v.WithCount) / float64(total) * 100
	}
	return v
}

// SummaryStats aggregates summary.csv rows when the analyze command is
// given one.
type SummaryStats struct {
	Games      int
	Wins       map[string]int
	MeanMargin float64
	MeanHands  float64
}

// AnalyzeSummary tallies winners, margins and game lengths.
func AnalyzeSummary(games []Game) SummaryStats {
	s := SummaryStats{
		Games: len(games),
		Wins:  map[string]int{},
	}
	if len(games) == 0 {
		return s
	}
	marginSum := 0
	handsSum := 0
	for _, g := range games {
		s.Wins[g.Winner]++
		margin := g.Scores[0] - g.Scores[1]
		if margin < 0 {
			margin = -margin
		}
		marginSum += margin
		handsSum += g.HandsPlayed
	}
	n := float64(len(games))
	s.MeanMargin = float64(marginSum) / n
	s.MeanHands = float64(handsSum) / n
	return s
}

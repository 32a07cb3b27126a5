package cribbage

import (
	"fmt"
	"sort"
)

// ScoreHand computes the count-phase breakdown for a kept hand (or the
// crib) together with the shared starter. The four kept cards and the
// starter are evaluated as five; isCrib selects the stricter crib flush
// rule. The returned breakdown's values sum to the hand's total.
//
// Scoring is pure: the same five cards always produce the same
// breakdown, and the inputs are never mutated.
func ScoreHand(hand []Card, starter Card, isCrib bool) (Breakdown, error) {
	if len(hand) != PlayHandSize {
		return nil, fmt.Errorf("score hand: want %d cards, got %d", PlayHandSize, len(hand))
	}

	all := make([]Card, 0, PlayHandSize+1)
	all = append(all, hand...)
	all = append(all, starter)

	seen := make(map[Card]struct{}, len(all))
	for _, c := range all {
		if _, dup := seen[c]; dup {
			return nil, fmt.Errorf("score hand: duplicate card %s", c)
		}
		seen[c] = struct{}{}
	}

	b := Breakdown{}
	b.add(CategoryFifteens, scoreFifteens(all))
	b.add(CategoryPairs, scorePairs(all))
	b.add(CategoryRuns, scoreRuns(all))
	b.add(CategoryFlush, scoreFlush(hand, starter, isCrib))
	if HasNobs(hand, starter) {
		b.add(CategoryNobs, 1)
	}
	return b, nil
}

// scoreFifteens awards two points for every distinct subset of cards
// whose count values sum to fifteen. With five cards there are 31
// non-empty subsets; a bitmask walk enumerates them all.
func scoreFifteens(cards []Card) int {
	points := 0
	for mask := 1; mask < 1<<len(cards); mask++ {
		sum := 0
		for i, c := range cards {
			if mask&(1<<i) != 0 {
				sum += c.CountValue()
			}
		}
		if sum == 15 {
			points += 2
		}
	}
	return points
}

// scorePairs awards n*(n-1) points for each rank held n times, i.e. two
// points per unordered pair of same-rank cards.
func scorePairs(cards []Card) int {
	counts := make(map[Rank]int)
	for _, c := range cards {
		counts[c.Rank]++
	}
	points := 0
	for _, n := range counts {
		points += n * (n - 1)
	}
	return points
}

// scoreRuns awards points for the longest run(s) among the five cards.
// Distinct run values are split into maximal consecutive regions; only
// regions of the greatest length (three or more) score, each worth its
// length times the product of the rank multiplicities inside it. Five
// cards cannot hold two disjoint runs of three, but the region walk
// handles that shape anyway rather than assuming it away.
func scoreRuns(cards []Card) int {
	counts := make(map[int]int)
	for _, c := range cards {
		counts[c.RunValue()]++
	}
	values := make([]int, 0, len(counts))
	for v := range counts {
		values = append(values, v)
	}
	sort.Ints(values)

	type region struct {
		length int
		mult   int
	}
	var regions []region

	for i := 0; i < len(values); {
		j := i
		mult := counts[values[i]]
		for j+1 < len(values) && values[j+1] == values[j]+1 {
			j++
			mult *= counts[values[j]]
		}
		if length := j - i + 1; length >= 3 {
			regions = append(regions, region{length: length, mult: mult})
		}
		i = j + 1
	}

	best := 0
	for _, r := range regions {
		if r.length > best {
			best = r.length
		}
	}
	points := 0
	for _, r := range regions {
		if r.length == best {
			points += r.length * r.mult
		}
	}
	return points
}

// scoreFlush applies the asymmetric flush rule. A hand flush needs the
// four kept cards in one suit (four points), upgraded to five when the
// starter matches. A crib flush only exists when all five cards share a
// suit; four matching crib cards alone score nothing.
func scoreFlush(hand []Card, starter Card, isCrib bool) int {
	suit := hand[0].Suit
	for _, c := range hand[1:] {
		if c.Suit != suit {
			return 0
		}
	}
	if starter.Suit == suit {
		return 5
	}
	if isCrib {
		return 0
	}
	return 4
}

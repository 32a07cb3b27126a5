package cribbage

// ScorePlay computes the incremental pegging breakdown for one played
// card. prior is the sequence already laid in the current cycle (oldest
// first), played the card going down now, and newCount the running count
// after it. The caller owns legality: newCount must not exceed
// MaxPlayCount.
//
// Reaching 31 pays here through the play-thirty-one category; the
// engine resets the cycle afterwards instead of also paying a go.
func ScorePlay(prior []Card, played Card, newCount int) Breakdown {
	b := Breakdown{}

	switch newCount {
	case 15:
		b.add(CategoryPlayFifteen, 2)
	case MaxPlayCount:
		b.add(CategoryPlayThirtyOne, 2)
	}

	// Trailing same-rank streak, newest card included. A single break in
	// rank ends the streak for good.
	streak := 1
	for i := len(prior) - 1; i >= 0; i-- {
		if prior[i].Rank != played.Rank {
			break
		}
		streak++
	}
	if streak >= 2 {
		b.add(CategoryPlayPair, streak*(streak-1))
	}

	// Longest trailing run, checked from the full cycle down to three
	// cards. Unlike count-phase runs, a duplicated rank inside the
	// suffix disqualifies it outright.
	seq := make([]Card, 0, len(prior)+1)
	seq = append(seq, prior...)
	seq = append(seq, played)
	for k := len(seq); k >= 3; k-- {
		if isPlayRun(seq[len(seq)-k:]) {
			b.add(CategoryPlayRun, k)
			break
		}
	}

	return b
}

// isPlayRun reports whether the cards' run values form a set of
// consecutive integers, one per card.
func isPlayRun(cards []Card) bool {
	seen := make(map[int]struct{}, len(cards))
	lo, hi := cards[0].RunValue(), cards[0].RunValue()
	for _, c := range cards {
		v := c.RunValue()
		if _, dup := seen[v]; dup {
			return false
		}
		seen[v] = struct{}{}
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return hi-lo+1 == len(cards)
}

// Package analysis reads exported run CSVs back and computes the
// scoring reports behind the analyze command.
package analysis

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/lox/cribsim/cribbage"
)

// PlayerRow is one seat's slice of a hands.csv row.
type PlayerRow struct {
	Dealt       []cribbage.Card
	Kept        []cribbage.Card
	Discards    []cribbage.Card
	HandScore   int
	Breakdown   cribbage.Breakdown
	ScoreBefore int
	ScoreAfter  int
}

// Deal is one parsed hands.csv row: a fully counted deal.
type Deal struct {
	GameNumber    int
	HandNumber    int
	DealerSeat    int
	Players       [2]PlayerRow
	CribCards     []cribbage.Card
	CribScore     int
	CribBreakdown cribbage.Breakdown
	Starter       cribbage.Card
	HisHeels      bool
}

// Dealer returns the dealing seat's row.
func (d *Deal) Dealer() *PlayerRow {
	return &d.Players[d.DealerSeat]
}

// Pone returns the non-dealing seat's row.
func (d *Deal) Pone() *PlayerRow {
	return &d.Players[1-d.DealerSeat]
}

// Game is one parsed summary.csv row.
type Game struct {
	GameNumber  int
	Winner      string
	Scores      [2]int
	HandsPlayed int
	PlayPoints  [2]int
	CountPoints [2]int
	Seed        int64
}

// ReadHands parses an exported hands.csv. Columns are located by
// header name, so column order does not matter.
func ReadHands(path string) ([]Deal, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open hands file: %w", err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read hands header: %w", err)
	}
	idx := indexHeader(header)

	var deals []Deal
	line := 1
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read hands row: %w", err)
		}
		line++
		d, err := parseDeal(idx, rec)
		if err != nil {
			return nil, fmt.Errorf("hands row %d: %w", line, err)
		}
		deals = append(deals, d)
	}
	if len(deals) == 0 {
		return nil, fmt.Errorf("no deals in %s", path)
	}
	return deals, nil
}

// ReadSummary parses an exported summary.csv.
func ReadSummary(path string) ([]Game, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open summary file: %w", err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read summary header: %w", err)
	}
	idx := indexHeader(header)

	var games []Game
	line := 1
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read summary row: %w", err)
		}
		line++
		g, err := parseGame(idx, rec)
		if err != nil {
			return nil, fmt.Errorf("summary row %d: %w", line, err)
		}
		games = append(games, g)
	}
	if len(games) == 0 {
		return nil, fmt.Errorf("no games in %s", path)
	}
	return games, nil
}

func indexHeader(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[name] = i
	}
	return idx
}

// row reads typed columns out of one CSV record, keeping the first
// error and turning later reads into no-ops.
type row struct {
	idx map[string]int
	rec []string
	err error
}

func (r *row) str(col string) string {
	if r.err != nil {
		return ""
	}
	i, ok := r.idx[col]
	if !ok {
		r.err = fmt.Errorf("missing column %q", col)
		return ""
	}
	if i >= len(r.rec) {
		r.err = fmt.Errorf("row too short for column %q", col)
		return ""
	}
	return r.rec[i]
}

func (r *row) num(col string) int {
	s := r.str(col)
	if r.err != nil {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		r.err = fmt.Errorf("column %q: %w", col, err)
		return 0
	}
	return n
}

func (r *row) seed(col string) int64 {
	s := r.str(col)
	if r.err != nil || s == "" {
		return 0
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		r.err = fmt.Errorf("column %q: %w", col, err)
		return 0
	}
	return n
}

func (r *row) flag(col string) bool {
	s := r.str(col)
	if r.err != nil {
		return false
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		r.err = fmt.Errorf("column %q: %w", col, err)
		return false
	}
	return b
}

func (r *row) cards(col string) []cribbage.Card {
	s := r.str(col)
	if r.err != nil {
		return nil
	}
	cards, err := cribbage.ParseCards(s)
	if err != nil {
		r.err = fmt.Errorf("column %q: %w", col, err)
		return nil
	}
	return cards
}

func (r *row) card(col string) cribbage.Card {
	s := r.str(col)
	if r.err != nil {
		return cribbage.Card{}
	}
	c, err := cribbage.ParseCard(s)
	if err != nil {
		r.err = fmt.Errorf("column %q: %w", col, err)
		return cribbage.Card{}
	}
	return c
}

func (r *row) breakdown(prefix string) cribbage.Breakdown {
	b := cribbage.Breakdown{}
	for _, c := range []struct {
		col string
		cat cribbage.Category
	}{
		{prefix + "_fifteens", cribbage.CategoryFifteens},
		{prefix + "_pairs", cribbage.CategoryPairs},
		{prefix + "_runs", cribbage.CategoryRuns},
		{prefix + "_flush", cribbage.CategoryFlush},
		{prefix + "_nobs", cribbage.CategoryNobs},
	} {
		if n := r.num(c.col); n > 0 {
			b[c.cat] = n
		}
	}
	return b
}

func parseDeal(idx map[string]int, rec []string) (Deal, error) {
	r := &row{idx: idx, rec: rec}

	d := Deal{
		GameNumber: r.num("game_number"),
		HandNumber: r.num("hand_number"),
	}
	switch seat := r.str("dealer"); seat {
	case "player1":
		d.DealerSeat = 0
	case "player2":
		d.DealerSeat = 1
	default:
		if r.err == nil {
			r.err = fmt.Errorf("dealer %q: want player1 or player2", seat)
		}
	}
	for i := range d.Players {
		prefix := fmt.Sprintf("player%d", i+1)
		d.Players[i] = PlayerRow{
			Dealt:       r.cards(prefix + "_dealt"),
			Kept:        r.cards(prefix + "_kept"),
			Discards:    r.cards(prefix + "_discards"),
			HandScore:   r.num(prefix + "_hand_score"),
			Breakdown:   r.breakdown(prefix),
			ScoreBefore: r.num(prefix + "_score_before"),
			ScoreAfter:  r.num(prefix + "_score_after"),
		}
	}
	d.CribCards = r.cards("crib_cards")
	d.CribScore = r.num("crib_score")
	d.CribBreakdown = r.breakdown("crib")
	d.Starter = r.card("starter")
	d.HisHeels = r.flag("his_heels")

	return d, r.err
}

func parseGame(idx map[string]int, rec []string) (Game, error) {
	r := &row{idx: idx, rec: rec}

	g := Game{
		GameNumber:  r.num("game_number"),
		Winner:      r.str("winner"),
		HandsPlayed: r.num("hands_played"),
		Seed:        r.seed("random_seed"),
	}
	for i := range g.Scores {
		prefix := fmt.Sprintf("player%d", i+1)
		g.Scores[i] = r.num(prefix + "_score")
		g.PlayPoints[i] = r.num(prefix + "_play_points")
		g.CountPoints[i] = r.num(prefix + "_count_points")
	}

	return g, r.err
}

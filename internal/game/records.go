package game

import "github.com/lox/cribsim/cribbage"

// PlayerDeal is one player's side of a deal record.
type PlayerDeal struct {
	Name          string
	Dealt         []cribbage.Card // six cards as dealt
	Kept          []cribbage.Card // four cards kept
	Discards      []cribbage.Card // two cards sent to the crib
	HandScore     int
	HandBreakdown cribbage.Breakdown
	ScoreBefore   int // score entering the counting phase
	ScoreAfter    int // score after this deal's counting
}

// DealRecord is the immutable account of one deal, built once when the
// deal ends and handed to observers. Exporters populate their rows from
// this and never reach back into live game state.
type DealRecord struct {
	GameNumber int
	HandNumber int
	Dealer     string
	Players    [2]PlayerDeal

	CribCards     []cribbage.Card
	CribScore     int
	CribBreakdown cribbage.Breakdown

	Starter  cribbage.Card
	HisHeels bool

	// Counted marks that all three counts (pone, dealer, crib)
	// completed. A game won during play or mid-count leaves the deal
	// partially scored and the record uncounted.
	Counted bool
}

// PlayerSummary is one player's final line in a game result.
type PlayerSummary struct {
	Name        string
	Score       int
	PlayPoints  int
	CountPoints int
}

// GameResult summarises a completed game.
type GameResult struct {
	GameNumber  int
	Winner      string
	Players     [2]PlayerSummary
	HandsPlayed int
	FirstDealer string
	Seed        int64
}

package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/lox/cribsim/cribbage"
	"github.com/lox/cribsim/internal/game"
)

// handsHeader is the hands.csv column order. One row per counted deal.
var handsHeader = []string{
	"game_number",
	"hand_number",
	"dealer",
	"player1_dealt",
	"player1_kept",
	"player1_discards",
	"player1_hand_score",
	"player1_fifteens",
	"player1_pairs",
	"player1_runs",
	"player1_flush",
	"player1_nobs",
	"player1_score_before",
	"player1_score_after",
	"player2_dealt",
	"player2_kept",
	"player2_discards",
	"player2_hand_score",
	"player2_fifteens",
	"player2_pairs",
	"player2_runs",
	"player2_flush",
	"player2_nobs",
	"player2_score_before",
	"player2_score_after",
	"crib_cards",
	"crib_score",
	"crib_fifteens",
	"crib_pairs",
	"crib_runs",
	"crib_flush",
	"crib_nobs",
	"starter",
	"his_heels",
}

// HandsWriter appends one CSV row per fully counted deal.
type HandsWriter struct {
	w *csv.Writer
}

// NewHandsWriter writes the header immediately.
func NewHandsWriter(w io.Writer) (*HandsWriter, error) {
	hw := &HandsWriter{w: csv.NewWriter(w)}
	if err := hw.w.Write(handsHeader); err != nil {
		return nil, fmt.Errorf("write hands header: %w", err)
	}
	return hw, nil
}

// WriteRecord appends one deal's row. Uncounted deals (the game ended
// before all three counts) are skipped.
func (h *HandsWriter) WriteRecord(record *game.DealRecord) error {
	if !record.Counted {
		return nil
	}

	// The dealer column carries the seat label, not the display name,
	// so analysis stays exact when players are renamed.
	dealerSeat := "player1"
	if record.Dealer == record.Players[1].Name {
		dealerSeat = "player2"
	}

	row := []string{
		strconv.Itoa(record.GameNumber),
		strconv.Itoa(record.HandNumber),
		dealerSeat,
	}
	for _, p := range record.Players {
		row = append(row,
			cribbage.CardsString(p.Dealt),
			cribbage.CardsString(p.Kept),
			cribbage.CardsString(p.Discards),
			strconv.Itoa(p.HandScore),
		)
		row = append(row, breakdownColumns(p.HandBreakdown)...)
		row = append(row,
			strconv.Itoa(p.ScoreBefore),
			strconv.Itoa(p.ScoreAfter),
		)
	}
	row = append(row,
		cribbage.CardsString(record.CribCards),
		strconv.Itoa(record.CribScore),
	)
	row = append(row, breakdownColumns(record.CribBreakdown)...)
	row = append(row,
		record.Starter.String(),
		strconv.FormatBool(record.HisHeels),
	)

	if err := h.w.Write(row); err != nil {
		return fmt.Errorf("write hands row for game %d hand %d: %w",
			record.GameNumber, record.HandNumber, err)
	}
	return nil
}

// Flush writes any buffered rows through to the underlying writer.
func (h *HandsWriter) Flush() error {
	h.w.Flush()
	return h.w.Error()
}

// breakdownColumns renders the five counting categories in header
// order.
func breakdownColumns(b cribbage.Breakdown) []string {
	return []string{
		strconv.Itoa(b.Get(cribbage.CategoryFifteens)),
		strconv.Itoa(b.Get(cribbage.CategoryPairs)),
		strconv.Itoa(b.Get(cribbage.CategoryRuns)),
		strconv.Itoa(b.Get(cribbage.CategoryFlush)),
		strconv.Itoa(b.Get(cribbage.CategoryNobs)),
	}
}

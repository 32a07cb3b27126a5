package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/coder/quartz"

	"github.com/lox/cribsim/internal/game"
)

// summaryHeader is the summary.csv column order. One row per game.
var summaryHeader = []string{
	"game_number",
	"timestamp",
	"winner",
	"player1_score",
	"player2_score",
	"hands_played",
	"player1_play_points",
	"player1_count_points",
	"player2_play_points",
	"player2_count_points",
	"random_seed",
}

// SummaryWriter appends one CSV row per completed game.
type SummaryWriter struct {
	w          *csv.Writer
	clock      quartz.Clock
	trackSeeds bool
}

// NewSummaryWriter writes the header immediately and returns a writer
// for the games that follow. The seed column stays blank unless seed
// tracking is on.
func NewSummaryWriter(w io.Writer, clock quartz.Clock, trackSeeds bool) (*SummaryWriter, error) {
	sw := &SummaryWriter{
		w:          csv.NewWriter(w),
		clock:      clock,
		trackSeeds: trackSeeds,
	}
	if err := sw.w.Write(summaryHeader); err != nil {
		return nil, fmt.Errorf("write summary header: %w", err)
	}
	return sw, nil
}

// WriteResult appends one game's summary row.
func (s *SummaryWriter) WriteResult(result *game.GameResult) error {
	seed := ""
	if s.trackSeeds {
		seed = strconv.FormatInt(result.Seed, 10)
	}

	row := []string{
		strconv.Itoa(result.GameNumber),
		s.clock.Now().Format(time.RFC3339),
		result.Winner,
		strconv.Itoa(result.Players[0].Score),
		strconv.Itoa(result.Players[1].Score),
		strconv.Itoa(result.HandsPlayed),
		strconv.Itoa(result.Players[0].PlayPoints),
		strconv.Itoa(result.Players[0].CountPoints),
		strconv.Itoa(result.Players[1].PlayPoints),
		strconv.Itoa(result.Players[1].CountPoints),
		seed,
	}
	if err := s.w.Write(row); err != nil {
		return fmt.Errorf("write summary row for game %d: %w", result.GameNumber, err)
	}
	return nil
}

// Flush writes any buffered rows through to the underlying writer.
func (s *SummaryWriter) Flush() error {
	s.w.Flush()
	return s.w.Error()
}

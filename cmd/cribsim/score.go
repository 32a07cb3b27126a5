package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/lox/cribsim/cribbage"
	"github.com/lox/cribsim/internal/report"
)

// ScoreCmd scores one hand against a starter card.
type ScoreCmd struct {
	Cards   []string `arg:"" name:"cards" help:"Four cards held (e.g. 5H 5C 5D JS)"`
	Starter string   `required:"" help:"Starter card"`
	Crib    bool     `help:"Score the hand as a crib"`
}

func (c *ScoreCmd) Run() error {
	hand, err := cribbage.ParseCards(strings.Join(c.Cards, " "))
	if err != nil {
		return err
	}
	starter, err := cribbage.ParseCard(c.Starter)
	if err != nil {
		return fmt.Errorf("starter: %w", err)
	}

	breakdown, err := cribbage.ScoreHand(hand, starter, c.Crib)
	if err != nil {
		return err
	}
	return report.NewReporter(os.Stdout, report.Styled()).WriteScorecard(hand, starter, c.Crib, breakdown)
}

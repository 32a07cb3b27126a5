package main

import (
	"os"

	"github.com/lox/cribsim/internal/report"
)

// RulesCmd prints the scoring rules the simulator plays by.
type RulesCmd struct{}

func (c *RulesCmd) Run() error {
	return report.NewReporter(os.Stdout, report.Styled()).WriteRules()
}

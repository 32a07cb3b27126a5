package main

import (
	"os"

	"github.com/lox/cribsim/internal/analysis"
	"github.com/lox/cribsim/internal/report"
)

// AnalyzeCmd recomputes scoring analytics from an exported run.
type AnalyzeCmd struct {
	Hands   string `arg:"" name:"hands" help:"Path to an exported hands.csv"`
	Summary string `help:"Optional summary.csv for game-level context"`
	Top     int    `default:"10" help:"How many best hands to list"`
}

func (c *AnalyzeCmd) Run() error {
	deals, err := analysis.ReadHands(c.Hands)
	if err != nil {
		return err
	}
	rep := analysis.Analyze(deals, c.Top)

	var summary *analysis.SummaryStats
	if c.Summary != "" {
		games, err := analysis.ReadSummary(c.Summary)
		if err != nil {
			return err
		}
		s := analysis.AnalyzeSummary(games)
		summary = &s
	}

	return report.NewReporter(os.Stdout, report.Styled()).WriteAnalysis(rep, summary)
}

package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/cribsim/internal/config"
	"github.com/lox/cribsim/internal/export"
	"github.com/lox/cribsim/internal/fileutil"
	"github.com/lox/cribsim/internal/report"
	"github.com/lox/cribsim/internal/runid"
	"github.com/lox/cribsim/internal/simulator"
	"github.com/lox/cribsim/internal/statistics"
	"github.com/lox/cribsim/internal/tui"
)

// SimulateCmd runs a batch of games and reports aggregated statistics.
type SimulateCmd struct {
	Games      int    `help:"Number of games to simulate"`
	Seed       int64  `help:"RNG seed (0 for random)"`
	Workers    int    `help:"Worker goroutines (0 for one per CPU)"`
	Player1    string `name:"player1" help:"Name for the first seat"`
	Player2    string `name:"player2" help:"Name for the second seat"`
	Verbosity  int    `help:"Log detail: 0 quiet, 1 per-hand summaries, 2 play-by-play"`
	Debug      bool   `help:"Debug logging with caller locations"`
	TrackSeeds bool   `help:"Record each game's derived seed in summary.csv"`
	Config     string `default:"cribsim.hcl" help:"Config file path"`
	LogDir     string `help:"Directory run output is written under"`
	NoExport   bool   `help:"Skip writing CSVs and the run report"`
	NoTUI      bool   `name:"no-tui" help:"Disable the live dashboard"`
}

func (c *SimulateCmd) Run() error {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}
	c.applyFlags(cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	seed := cfg.Simulation.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	workers := cfg.Simulation.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	names := cfg.PlayerNames()

	logger := setupLogger(cfg.Simulation.Verbosity, cfg.Simulation.Debug)
	ctx, cancel := setupSignalContext(logger)
	defer cancel()

	clock := quartz.NewReal()
	started := clock.Now()
	runID := runid.New()
	logger.Info("starting run",
		"run_id", runID,
		"games", cfg.Simulation.Games,
		"seed", seed,
		"workers", workers)

	var sink export.Sink = export.NoOpSink{}
	var runDir *export.RunDir
	if !cfg.Output.NoExport {
		runDir, err = export.NewRunDir(cfg.Output.LogDir, clock)
		if err != nil {
			return err
		}
		exporter, err := export.NewExporter(runDir, clock, cfg.Simulation.TrackSeeds)
		if err != nil {
			return err
		}
		sink = exporter
	}

	// Export from the collector goroutine, which delivers outcomes in
	// game-number order. The first failure stops further writes and
	// surfaces after the run.
	var exportErr error
	exportOutcome := func(o *simulator.GameOutcome) {
		if exportErr != nil {
			return
		}
		if err := sink.ExportResult(o.Result); err != nil {
			exportErr = err
			return
		}
		for _, rec := range o.Records {
			if err := sink.ExportRecord(rec); err != nil {
				exportErr = err
				return
			}
		}
	}

	simCfg := simulator.Config{
		Games:     cfg.Simulation.Games,
		Seed:      seed,
		Workers:   workers,
		Player1:   names[0],
		Player2:   names[1],
		Logger:    logger,
		OnOutcome: exportOutcome,
	}

	quiet := cfg.Simulation.Verbosity == 0 && !cfg.Simulation.Debug
	useTUI := quiet && !c.NoTUI && report.Styled()

	var stats *statistics.Statistics
	var runErr error
	if useTUI {
		model := tui.New(cfg.Simulation.Games, names,
			tui.WithLogger(logger),
			tui.WithCancel(cancel))
		program := tea.NewProgram(model)

		simCfg.OnProgress = func(done, total int) {
			program.Send(tui.ProgressMsg{Done: done, Total: total})
		}
		simCfg.OnOutcome = func(o *simulator.GameOutcome) {
			exportOutcome(o)
			program.Send(tui.OutcomeMsg{Winner: o.Result.Winner})
		}

		sim := simulator.New(simCfg)
		done := make(chan struct{})
		go func() {
			defer close(done)
			stats, runErr = sim.Run(ctx)
			program.Send(tui.DoneMsg{Err: runErr})
		}()

		if _, err := program.Run(); err != nil {
			cancel()
			<-done
			return fmt.Errorf("dashboard: %w", err)
		}
		<-done
	} else {
		fmt.Printf("Starting simulation: %d games, %s vs %s (seed: %d)\n",
			cfg.Simulation.Games, names[0], names[1], seed)
		if quiet {
			dots := newDotProgress(os.Stdout, clock, cfg.Simulation.Games)
			simCfg.OnProgress = dots.Update
		}
		stats, runErr = simulator.New(simCfg).Run(ctx)
	}

	closeErr := sink.Close()

	if errors.Is(runErr, context.Canceled) {
		logger.Warn("simulation aborted")
		return nil
	}
	if runErr != nil {
		return runErr
	}
	if exportErr != nil {
		return fmt.Errorf("export: %w", exportErr)
	}
	if closeErr != nil {
		return fmt.Errorf("close export files: %w", closeErr)
	}

	finished := clock.Now()
	info := report.RunInfo{
		Seed:     seed,
		Workers:  workers,
		Duration: finished.Sub(started),
	}
	if runDir != nil {
		info.RunDir = runDir.Path()
	}

	reporter := report.NewReporter(os.Stdout, report.Styled())
	if err := reporter.WriteRunSummary(stats, info); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}

	if runDir != nil {
		var buf bytes.Buffer
		if err := report.NewReporter(&buf, false).WriteRunSummary(stats, info); err != nil {
			return fmt.Errorf("render report.txt: %w", err)
		}
		if err := fileutil.WriteFileAtomic(runDir.File("report.txt"), buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("write report.txt: %w", err)
		}
		meta := &export.RunMeta{
			RunID:    runID,
			Started:  started,
			Finished: finished,
			Games:    stats.Games,
			Seed:     seed,
			Workers:  workers,
			Player1:  names[0],
			Player2:  names[1],
		}
		if err := export.WriteMeta(runDir, meta); err != nil {
			return err
		}
	}

	return nil
}

// applyFlags overlays command-line values onto the file configuration.
// Zero values mean unset: the file keeps its say unless a flag names a
// new value.
func (c *SimulateCmd) applyFlags(cfg *config.Config) {
	if c.Games > 0 {
		cfg.Simulation.Games = c.Games
	}
	if c.Seed != 0 {
		cfg.Simulation.Seed = c.Seed
	}
	if c.Workers > 0 {
		cfg.Simulation.Workers = c.Workers
	}
	if c.Verbosity > 0 {
		cfg.Simulation.Verbosity = c.Verbosity
	}
	if c.Debug {
		cfg.Simulation.Debug = true
	}
	if c.TrackSeeds {
		cfg.Simulation.TrackSeeds = true
	}
	if c.LogDir != "" {
		cfg.Output.LogDir = c.LogDir
	}
	if c.NoExport {
		cfg.Output.NoExport = true
	}
	if len(cfg.Players) == 2 {
		if c.Player1 != "" {
			cfg.Players[0].Name = c.Player1
		}
		if c.Player2 != "" {
			cfg.Players[1].Name = c.Player2
		}
	}
}

// setupLogger builds the run logger. Verbosity maps to level: 0 shows
// warnings only, 1 adds per-hand summaries, 2 the full play-by-play.
// Debug wins over verbosity and adds caller locations.
func setupLogger(verbosity int, debug bool) *log.Logger {
	opts := log.Options{Level: log.WarnLevel}
	switch verbosity {
	case 1:
		opts.Level = log.InfoLevel
	case 2:
		opts.Level = log.DebugLevel
	}
	if debug {
		opts.Level = log.DebugLevel
		opts.ReportCaller = true
	}
	return log.NewWithOptions(os.Stderr, opts)
}

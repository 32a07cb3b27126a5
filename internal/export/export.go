// Package export writes simulation results to a per-run directory:
// one summary row per game, one detail row per fully counted deal, and
// a TOML metadata file describing the run.
package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/coder/quartz"

	"github.com/lox/cribsim/internal/game"
)

// Sink receives game results and deal records as a run progresses.
// Sinks observe; they never mutate game state.
type Sink interface {
	ExportResult(result *game.GameResult) error
	ExportRecord(record *game.DealRecord) error
	Close() error
}

// NoOpSink discards everything. It stands in when export is disabled.
type NoOpSink struct{}

func (NoOpSink) ExportResult(*game.GameResult) error { return nil }
func (NoOpSink) ExportRecord(*game.DealRecord) error { return nil }
func (NoOpSink) Close() error                        { return nil }

var (
	_ Sink = (*Exporter)(nil)
	_ Sink = NoOpSink{}
)

// RunDir is a timestamped directory holding one run's output files,
// laid out as <base>/YYYY-MM-DD/HH-MM-SS.
type RunDir struct {
	path string
}

// NewRunDir creates the run directory for the clock's current time.
func NewRunDir(baseDir string, clock quartz.Clock) (*RunDir, error) {
	now := clock.Now()
	path := filepath.Join(baseDir, now.Format("2006-01-02"), now.Format("15-04-05"))
	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, fmt.Errorf("create run directory: %w", err)
	}
	return &RunDir{path: path}, nil
}

// Path returns the run directory path.
func (d *RunDir) Path() string {
	return d.path
}

// File returns the path of a file inside the run directory.
func (d *RunDir) File(name string) string {
	return filepath.Join(d.path, name)
}

// Exporter writes summary.csv and hands.csv into a run directory.
type Exporter struct {
	runDir  *RunDir
	summary *SummaryWriter
	hands   *HandsWriter
	files   []*os.File
}

// NewExporter opens the run's CSV files and writes their headers.
// TrackSeeds controls whether per-game seeds appear in the summary.
func NewExporter(runDir *RunDir, clock quartz.Clock, trackSeeds bool) (*Exporter, error) {
	e := &Exporter{runDir: runDir}

	summaryFile, err := os.Create(runDir.File("summary.csv"))
	if err != nil {
		return nil, fmt.Errorf("create summary.csv: %w", err)
	}
	e.files = append(e.files, summaryFile)

	handsFile, err := os.Create(runDir.File("hands.csv"))
	if err != nil {
		e.Close() //nolint:errcheck // already failing
		return nil, fmt.Errorf("create hands.csv: %w", err)
	}
	e.files = append(e.files, handsFile)

	e.summary, err = NewSummaryWriter(summaryFile, clock, trackSeeds)
	if err != nil {
		e.Close() //nolint:errcheck
		return nil, err
	}
	e.hands, err = NewHandsWriter(handsFile)
	if err != nil {
		e.Close() //nolint:errcheck
		return nil, err
	}
	return e, nil
}

// Path returns the directory this exporter writes into.
func (e *Exporter) Path() string {
	return e.runDir.Path()
}

// ExportResult appends one game to the summary file.
func (e *Exporter) ExportResult(result *game.GameResult) error {
	return e.summary.WriteResult(result)
}

// ExportRecord appends one deal to the hands file. Deals cut short by
// a win before all three counts completed carry no counting data and
// are skipped.
func (e *Exporter) ExportRecord(record *game.DealRecord) error {
	return e.hands.WriteRecord(record)
}

// Close flushes and closes the run's files.
func (e *Exporter) Close() error {
	var errs []error
	if e.summary != nil {
		if err := e.summary.Flush(); err != nil {
			errs = append(errs, err)
		}
	}
	if e.hands != nil {
		if err := e.hands.Flush(); err != nil {
			errs = append(errs, err)
		}
	}
	for _, f := range e.files {
		if err := f.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	e.files = nil
	return errors.Join(errs...)
}

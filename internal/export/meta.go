package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/lox/cribsim/internal/fileutil"
)

// RunMeta describes a completed run: enough to identify it, reproduce
// it, and line its CSVs up against the invocation that produced them.
type RunMeta struct {
	RunID    string    `toml:"run_id"`
	Started  time.Time `toml:"started"`
	Finished time.Time `toml:"finished"`
	Games    int       `toml:"games"`
	Seed     int64     `toml:"seed"`
	Workers  int       `toml:"workers"`
	Player1  string    `toml:"player1"`
	Player2  string    `toml:"player2"`
}

// WriteMeta writes run.toml into the run directory. The write is
// atomic so a crash never leaves a torn metadata file next to
// complete CSVs.
func WriteMeta(runDir *RunDir, meta *RunMeta) error {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.Indent = "\t"
	if err := enc.Encode(meta); err != nil {
		return fmt.Errorf("encode run metadata: %w", err)
	}
	if err := fileutil.WriteFileAtomic(runDir.File("run.toml"), buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write run.toml: %w", err)
	}
	return nil
}

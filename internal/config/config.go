// Package config loads simulator configuration from an HCL file.
package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/cribsim/internal/fileutil"
)

// Config represents the complete simulator configuration
type Config struct {
	Simulation SimulationSettings `hcl:"simulation,block"`
	Players    []PlayerConfig     `hcl:"player,block"`
	Output     OutputSettings     `hcl:"output,block"`
}

// SimulationSettings contains run-level configuration
type SimulationSettings struct {
	Games      int   `hcl:"games,optional"`
	Seed       int64 `hcl:"seed,optional"`
	Workers    int   `hcl:"workers,optional"`
	Verbosity  int   `hcl:"verbosity,optional"`
	TrackSeeds bool  `hcl:"track_seeds,optional"`
	Debug      bool  `hcl:"debug,optional"`
}

// PlayerConfig defines one player. Block order assigns seats: the
// first block is player one in reports and exports.
type PlayerConfig struct {
	Name     string `hcl:"name,label"`
	Strategy string `hcl:"strategy,optional"`
}

// OutputSettings contains export configuration
type OutputSettings struct {
	LogDir   string `hcl:"log_dir,optional"`
	NoExport bool   `hcl:"no_export,optional"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Simulation: SimulationSettings{
			Games: 1000,
		},
		Players: []PlayerConfig{
			{Name: "Player 1", Strategy: "random"},
			{Name: "Player 2", Strategy: "random"},
		},
		Output: OutputSettings{
			LogDir: "logs",
		},
	}
}

// Load reads configuration from an HCL file. A missing file is not an
// error: the defaults come back instead.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parse %s: %s", filename, diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("decode %s: %s", filename, diags.Error())
	}

	// Apply defaults for missing values
	defaults := DefaultConfig()

	if config.Simulation.Games == 0 {
		config.Simulation.Games = defaults.Simulation.Games
	}
	if len(config.Players) == 0 {
		config.Players = defaults.Players
	}
	for i := range config.Players {
		if config.Players[i].Strategy == "" {
			config.Players[i].Strategy = "random"
		}
	}
	if config.Output.LogDir == "" {
		config.Output.LogDir = defaults.Output.LogDir
	}

	return &config, nil
}

// validStrategies are the discard/play policies a player block may name.
var validStrategies = map[string]bool{
	"random": true,
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Simulation.Games <= 0 {
		return fmt.Errorf("games must be positive, got %d", c.Simulation.Games)
	}
	if c.Simulation.Workers < 0 {
		return fmt.Errorf("workers cannot be negative, got %d", c.Simulation.Workers)
	}
	if c.Simulation.Verbosity < 0 || c.Simulation.Verbosity > 2 {
		return fmt.Errorf("verbosity must be 0, 1 or 2, got %d", c.Simulation.Verbosity)
	}

	if len(c.Players) != 2 {
		return fmt.Errorf("exactly two players must be configured, got %d", len(c.Players))
	}
	seen := make(map[string]bool, 2)
	for _, p := range c.Players {
		if p.Name == "" {
			return fmt.Errorf("player name cannot be empty")
		}
		if seen[p.Name] {
			return fmt.Errorf("player %q configured twice", p.Name)
		}
		seen[p.Name] = true
		if !validStrategies[p.Strategy] {
			return fmt.Errorf("player %s: invalid strategy %q", p.Name, p.Strategy)
		}
	}

	if c.Output.LogDir == "" {
		return fmt.Errorf("log directory cannot be empty")
	}

	return nil
}

// PlayerNames returns the two configured player names in seat order.
func (c *Config) PlayerNames() [2]string {
	var names [2]string
	for i, p := range c.Players {
		if i < 2 {
			names[i] = p.Name
		}
	}
	return names
}

// exampleConfig is the annotated starting file WriteExample produces.
// Every value matches the defaults, so a fresh file changes nothing
// until edited.
const exampleConfig = `# cribsim configuration

simulation {
  games       = 1000
  seed        = 0     # 0 picks a fresh seed each run
  workers     = 0     # 0 uses every CPU
  verbosity   = 0     # 0 quiet, 1 per-hand summaries, 2 play-by-play
  track_seeds = false # record each game's derived seed in summary.csv
  debug       = false # annotate log lines with caller locations
}

player "Player 1" {
  strategy = "random"
}

player "Player 2" {
  strategy = "random"
}

output {
  log_dir   = "logs"
  no_export = false
}
`

// WriteExample writes an annotated example configuration to filename.
func WriteExample(filename string) error {
	if err := fileutil.WriteFileAtomic(filename, []byte(exampleConfig), 0o644); err != nil {
		return fmt.Errorf("write example config: %w", err)
	}
	return nil
}

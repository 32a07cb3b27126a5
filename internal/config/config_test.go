package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cribsim.hcl")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.hcl"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultConfig()) {
		t.Errorf("Load = %+v, want defaults", cfg)
	}
}

func TestLoadFullFile(t *testing.T) {
	path := writeConfig(t, `
simulation {
  games       = 250
  seed        = 99
  workers     = 4
  verbosity   = 2
  track_seeds = true
  debug       = true
}

player "Alice" {
  strategy = "random"
}

player "Bob" {}

output {
  log_dir   = "out"
  no_export = true
}
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	want := SimulationSettings{
		Games:      250,
		Seed:       99,
		Workers:    4,
		Verbosity:  2,
		TrackSeeds: true,
		Debug:      true,
	}
	if cfg.Simulation != want {
		t.Errorf("Simulation = %+v, want %+v", cfg.Simulation, want)
	}
	if got := cfg.PlayerNames(); got != [2]string{"Alice", "Bob"} {
		t.Errorf("PlayerNames = %v", got)
	}
	// An empty player block picks up the default strategy.
	if cfg.Players[1].Strategy != "random" {
		t.Errorf("Players[1].Strategy = %q, want random", cfg.Players[1].Strategy)
	}
	if cfg.Output.LogDir != "out" || !cfg.Output.NoExport {
		t.Errorf("Output = %+v", cfg.Output)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestLoadBackfillsDefaults(t *testing.T) {
	path := writeConfig(t, `
simulation {}
output {}
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Simulation.Games != 1000 {
		t.Errorf("Games = %d, want 1000", cfg.Simulation.Games)
	}
	if len(cfg.Players) != 2 {
		t.Fatalf("Players = %v, want two defaults", cfg.Players)
	}
	if cfg.Players[0].Name != "Player 1" || cfg.Players[1].Name != "Player 2" {
		t.Errorf("player names = %q, %q", cfg.Players[0].Name, cfg.Players[1].Name)
	}
	if cfg.Output.LogDir != "logs" {
		t.Errorf("LogDir = %q, want logs", cfg.Output.LogDir)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		errSubstr string
	}{
		{
			name:      "unclosed block",
			content:   "simulation {\n",
			errSubstr: "parse",
		},
		{
			name:      "unknown argument",
			content:   "simulation {\n  bogus = true\n}\noutput {}\n",
			errSubstr: "decode",
		},
		{
			name:      "missing simulation block",
			content:   "output {}\n",
			errSubstr: "decode",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			if err == nil || !strings.Contains(err.Error(), tt.errSubstr) {
				t.Errorf("Load = %v, want error containing %q", err, tt.errSubstr)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"zero games", func(c *Config) { c.Simulation.Games = 0 }, "games must be positive"},
		{"negative workers", func(c *Config) { c.Simulation.Workers = -1 }, "workers cannot be negative"},
		{"verbosity out of range", func(c *Config) { c.Simulation.Verbosity = 3 }, "verbosity must be 0, 1 or 2"},
		{"one player", func(c *Config) { c.Players = c.Players[:1] }, "exactly two players"},
		{"empty player name", func(c *Config) { c.Players[0].Name = "" }, "name cannot be empty"},
		{"duplicate players", func(c *Config) { c.Players[1].Name = c.Players[0].Name }, "configured twice"},
		{"unknown strategy", func(c *Config) { c.Players[1].Strategy = "optimal" }, "invalid strategy"},
		{"empty log dir", func(c *Config) { c.Output.LogDir = "" }, "log directory cannot be empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestWriteExampleRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cribsim.hcl")
	if err := WriteExample(path); err != nil {
		t.Fatalf("WriteExample: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultConfig()) {
		t.Errorf("example config = %+v, want defaults", cfg)
	}
}

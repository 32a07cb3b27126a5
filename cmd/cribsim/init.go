package main

import (
	"fmt"
	"os"

	"github.com/lox/cribsim/internal/config"
)

// InitCmd writes an annotated example configuration file.
type InitCmd struct {
	Path  string `default:"cribsim.hcl" help:"Where to write the config file"`
	Force bool   `help:"Overwrite an existing file"`
}

func (c *InitCmd) Run() error {
	if !c.Force {
		if _, err := os.Stat(c.Path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", c.Path)
		}
	}
	if err := config.WriteExample(c.Path); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", c.Path)
	return nil
}

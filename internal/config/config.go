// Package config parses the command-line surface for the cmd/tis driver.
// The REPL/driver itself is explicitly out of scope for the core (see
// node and grid); this package only resolves what that outer driver needs
// to boot: which programs to load, how big a grid to build, and how to run
// it.
package config

import (
	"flag"
	"fmt"
)

// Config holds the resolved command-line options for a cmd/tis run.
type Config struct {
	// Programs is the ordered list of source files, one per grid cell in
	// row-major order. A dash ("-") or empty entry leaves that cell empty.
	Programs []string

	Rows int
	Cols int

	// Cycles is how many ticks to run before stopping. Zero means run the
	// interactive TUI indefinitely (until the user quits).
	Cycles int

	Debug bool
}

// Load parses args (typically os.Args[1:]) into a Config.
func Load(args []string) (*Config, error) {
	fs := flag.NewFlagSet("tis", flag.ContinueOnError)

	rows := fs.Int("rows", 1, "number of grid rows")
	cols := fs.Int("cols", 1, "number of grid columns")
	cycles := fs.Int("cycles", 0, "ticks to run before stopping (0 = run the interactive TUI)")
	debug := fs.Bool("debug", false, "log READ stall conditions in nodes")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg := &Config{
		Programs: fs.Args(),
		Rows:     *rows,
		Cols:     *cols,
		Cycles:   *cycles,
		Debug:    *debug,
	}

	if cfg.Rows <= 0 || cfg.Cols <= 0 {
		return nil, fmt.Errorf("config: rows and cols must be positive, got %dx%d", cfg.Rows, cfg.Cols)
	}
	if len(cfg.Programs) > cfg.Rows*cfg.Cols {
		return nil, fmt.Errorf("config: %d program(s) given but grid only has %d cell(s)", len(cfg.Programs), cfg.Rows*cfg.Cols)
	}

	return cfg, nil
}

// Command tis wires a grid of nodes together, loads a program into each
// occupied cell, and either runs a fixed number of ticks headlessly or
// drops into the interactive grid visualizer. This binary, and everything
// under internal/, is the textual-REPL-and-driver layer the core
// (asm, isa, node, grid) deliberately leaves to an external collaborator.
package main

import (
	"fmt"
	"os"

	"tis/grid"
	"tis/internal/config"
	"tis/internal/tui"
	"tis/node"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "tis:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := config.Load(args)
	if err != nil {
		return err
	}

	if cfg.Debug {
		node.Debug = true
	}

	g := grid.New(cfg.Rows, cfg.Cols)
	for i, path := range cfg.Programs {
		if path == "" || path == "-" {
			continue
		}
		src, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("tis: reading %s: %w", path, err)
		}
		row, col := i/cfg.Cols, i%cfg.Cols
		g.Set(row, col, node.New(string(src), path))
	}
	g.Wire()

	if cfg.Cycles > 0 {
		return g.TickMany(cfg.Cycles)
	}

	_, err = tui.New(g).Run()
	return err
}

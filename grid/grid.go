// Package grid lays nodes out in a rectangular layout, wires adjacent
// cells together, and drives them: a per-cycle fan-out that steps every
// node once in a fixed order, then advances the shared clock once.
package grid

import (
	"tis/isa"
	"tis/node"
)

// Grid arranges nodes on a rectangular layout and drives their shared
// cycle. The zero value is not usable; construct with New.
type Grid struct {
	Rows, Cols int
	Nodes      []*node.Node // row-major, length Rows*Cols; a slot may be nil
}

// New returns an empty rows x cols grid with no nodes placed.
func New(rows, cols int) *Grid {
	return &Grid{Rows: rows, Cols: cols, Nodes: make([]*node.Node, rows*cols)}
}

func (g *Grid) index(row, col int) int { return row*g.Cols + col }

// Set places n at (row, col). It does not wire neighbors; call Wire once
// every node has been placed.
func (g *Grid) Set(row, col int, n *node.Node) {
	g.Nodes[g.index(row, col)] = n
}

// At returns the node placed at (row, col), or nil if that slot is empty.
func (g *Grid) At(row, col int) *node.Node {
	return g.Nodes[g.index(row, col)]
}

// Wire connects every adjacent pair of placed nodes symmetrically. It only
// needs to set the Right and Down edge of each cell: node.SetNeighbor wires
// the reciprocal Left/Up edge automatically.
func (g *Grid) Wire() {
	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Cols; c++ {
			n := g.At(r, c)
			if n == nil {
				continue
			}
			if c+1 < g.Cols {
				_ = n.SetNeighbor(isa.Right, g.At(r, c+1)) // Right is always a port direction
			}
			if r+1 < g.Rows {
				_ = n.SetNeighbor(isa.Down, g.At(r+1, c)) // Down is always a port direction
			}
		}
	}
}

// Tick steps every placed node exactly once, in row-major order, then
// advances the global cycle exactly once.
// Rendezvous correctness does not depend on this particular order (see
// node's writer-post-state rule), only on every node stepping once before
// the cycle advances.
func (g *Grid) Tick() error {
	for _, n := range g.Nodes {
		if n == nil {
			continue
		}
		if err := n.Step(); err != nil {
			return err
		}
	}
	node.GlobalInc()
	return nil
}

// TickMany calls Tick count times, stopping at the first error.
func (g *Grid) TickMany(count int) error {
	for i := 0; i < count; i++ {
		if err := g.Tick(); err != nil {
			return err
		}
	}
	return nil
}

// GlobalCycle returns the process-wide cycle counter nodes stamp their port
// requests with. It is a thin accessor over node.GlobalCycle so the driver
// and its nodes never disagree about the current tick.
func (g *Grid) GlobalCycle() int64 { return node.GlobalCycle() }

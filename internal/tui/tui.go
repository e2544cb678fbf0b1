// Package tui implements the interactive grid visualizer for cmd/tis: a
// many-node board view built from a bubbletea/lipgloss per-cell box layout,
// with a compact status strip and an optional full-state inspector.
//
// Pretty-printing node state is explicitly out of scope for the core (see
// node and grid); this package is the outer collaborator that renders it.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tis/grid"
	"tis/node"
)

var (
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)

	selectedStyle = boxStyle.BorderForeground(lipgloss.Color("212"))

	modeStyle = map[node.Mode]lipgloss.Style{
		node.Run:   lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		node.Read:  lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		node.Write: lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		node.Pass:  lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
	}
)

// model is the bubbletea model driving the grid view.
type model struct {
	g *grid.Grid

	selRow, selCol int
	inspect        bool
	err            error
}

// New constructs the bubbletea program for g.
func New(g *grid.Grid) *tea.Program {
	return tea.NewProgram(model{g: g})
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit

		case " ", "j":
			if err := m.g.Tick(); err != nil {
				m.err = err
				return m, tea.Quit
			}

		case "left", "h":
			if m.selCol > 0 {
				m.selCol--
			}
		case "right", "l":
			if m.selCol < m.g.Cols-1 {
				m.selCol++
			}
		case "up", "k":
			if m.selRow > 0 {
				m.selRow--
			}
		case "down":
			if m.selRow < m.g.Rows-1 {
				m.selRow++
			}

		case "i":
			m.inspect = !m.inspect
		}
	}
	return m, nil
}

// statusStrip renders a compact hex overview of every node's pc, one
// byte per cell, in a low-ceremony "pc | hex hex hex" line.
func (m model) statusStrip() string {
	var sb strings.Builder
	sb.WriteString("pc     | ")
	for _, n := range m.g.Nodes {
		if n == nil {
			sb.WriteString(" .. ")
			continue
		}
		fmt.Fprintf(&sb, " %02x ", byte(n.PC))
	}
	return sb.String()
}

func (m model) renderCell(row, col int) string {
	n := m.g.At(row, col)
	style := boxStyle
	if row == m.selRow && col == m.selCol {
		style = selectedStyle
	}
	if n == nil {
		return style.Render("empty")
	}

	mode := modeStyle[n.Mode].Render(n.Mode.String())
	body := fmt.Sprintf("%s\nacc %4d\nbak %4d\npc  %4d\n%s",
		nameOrDefault(n, row, col), n.ACC, n.BAK, n.PC, mode)
	return style.Render(body)
}

func nameOrDefault(n *node.Node, row, col int) string {
	if n.Name != "" {
		return n.Name
	}
	return fmt.Sprintf("(%d,%d)", row, col)
}

func (m model) View() string {
	var rows []string
	for r := 0; r < m.g.Rows; r++ {
		var cells []string
		for c := 0; c < m.g.Cols; c++ {
			cells = append(cells, m.renderCell(r, c))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	board := lipgloss.JoinVertical(lipgloss.Left, rows...)
	footer := fmt.Sprintf("\ncycle %d | arrows/h/k/l move, space/j tick, i inspect, q quit\n%s",
		m.g.GlobalCycle(), m.statusStrip())

	out := lipgloss.JoinVertical(lipgloss.Left, board, footer)
	if m.inspect {
		if sel := m.g.At(m.selRow, m.selCol); sel != nil {
			out = lipgloss.JoinVertical(lipgloss.Left, out, "", node.Dump(sel))
		}
	}
	if m.err != nil {
		out += "\nerror: " + m.err.Error()
	}
	return out
}

// Package asm implements the lexical parser for node programs: it lowercases
// source, strips comments, resolves labels, and produces an ordered slot
// listing. It never rejects a program; malformed instruction text is left
// for isa.Decode to reject lazily, at first execution (see node.Node.Step).
package asm

import "strings"

// MaxInstructions and MaxLineLength are the TIS-100-inspired caps a program
// is expected to stay within. They are documented, not enforced: Parse
// accepts programs of any size, matching the hardware's own permissiveness
// about malformed cartridges (the fault shows up at run time, not load time).
const (
	MaxInstructions = 15
	MaxLineLength   = 20
)

// Line is one decoded program slot. A slot whose Text is empty is
// "skippable": pc advancement steps over it without executing anything.
type Line struct {
	Text string
}

// Blank reports whether this slot is empty (a comment-only, label-only, or
// genuinely empty source line) and should be skipped during pc advancement.
func (l Line) Blank() bool { return l.Text == "" }

// Program is the parsed form of a node's source: an ordered slot listing
// plus the label table resolved from it.
type Program struct {
	Lines  []Line
	Labels map[string]int
}

// Parse lowercases src, strips '#' comments, and appends one Line per
// physical line. A line containing ':' is split on the first colon: the
// trimmed left side becomes a label mapped to the index of the slot about to
// be appended (the slot for this same line), and the trimmed right side becomes that
// slot's instruction text (possibly empty).
func Parse(src string) Program {
	p := Program{Labels: map[string]int{}}

	for _, raw := range strings.Split(src, "\n") {
		line := strings.ToLower(raw)

		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}

		text := line
		if i := strings.IndexByte(line, ':'); i >= 0 {
			label := strings.TrimSpace(line[:i])
			text = line[i+1:]
			if label != "" {
				p.Labels[label] = len(p.Lines)
			}
		}

		text = strings.TrimSpace(text)
		p.Lines = append(p.Lines, Line{Text: text})
	}

	return p
}

// Package node implements the per-node execution engine and the port
// handshake protocol that lets a node exchange one integer with a neighbor
// per rendezvous: a fetch/decode/execute loop for many small chips that
// talk only through blocking, unbuffered ports rather than a shared bus.
package node

import (
	"sync/atomic"

	"tis/asm"
	"tis/isa"
)

// Mode is the node's current execution state. Exactly one of Run, Read,
// Write, Pass holds at any time.
type Mode int

const (
	Run Mode = iota
	Read
	Write
	Pass
)

func (m Mode) String() string {
	switch m {
	case Run:
		return "RUN"
	case Read:
		return "READ"
	case Write:
		return "WRITE"
	case Pass:
		return "PASS"
	default:
		return "?"
	}
}

// destKind tags where a completed READ delivers its value.
type destKind int

const (
	destAccMov destKind = iota
	destAccAdd
	destAccSub
	destNil
	destPort
)

// dest is the destination tag a READ carries, including the cascade case
// where the destination is itself an outgoing port.
type dest struct {
	kind destKind
	port isa.Direction
}

// portState is the port request a node carries in Read or Write mode. The
// field is always present on Node and is only consulted in those two modes;
// it is not cleared when the node returns to Run, so it keeps the contents
// of the last request.
type portState struct {
	issueCycle int64
	dir        isa.Direction // READ: requested source; WRITE: announced destination
	payload    int           // WRITE: the value being offered
	dest       dest          // READ: where a completed value is delivered
}

// Node is one compute element: registers, a decoded program, and up to four
// neighbor pointers. The zero value is not usable; construct with New.
type Node struct {
	Name string

	ACC int
	BAK int
	PC  int

	Mode  Mode
	Cycle int64

	Prog asm.Program

	decoded []*isa.Instruction // lazy per-slot decode cache, parallel to Prog.Lines

	port portState

	// neighbors is indexed directly by isa.Direction (Up=0, Right=1,
	// Down=2, Left=3); Any and Last never index this array.
	neighbors [4]*Node

	lastDir isa.Direction
	hasLast bool
}

// globalCycle is the process-wide tick counter nodes stamp into port
// requests. It is owned here, as package-level state, rather than threaded
// through every call, because callers are expected to reach it through a
// module-level accessor rather than carry it themselves.
var globalCycle int64

// GlobalCycle returns the current process-wide cycle counter.
func GlobalCycle() int64 { return atomic.LoadInt64(&globalCycle) }

// GlobalInc advances the process-wide cycle counter by one. A grid driver
// calls this exactly once per tick, after stepping every node.
func GlobalInc() { atomic.AddInt64(&globalCycle, 1) }

// ResetGlobalCycle resets the process-wide cycle counter to zero. Intended
// for test setup, so test cases don't leak state into one another.
func ResetGlobalCycle() { atomic.StoreInt64(&globalCycle, 0) }

// New parses source into a program and returns a fresh node positioned at
// its first non-blank slot. name is optional; at most the first value is
// used.
func New(source string, name ...string) *Node {
	nm := ""
	if len(name) > 0 {
		nm = name[0]
	}
	n := &Node{
		Name: nm,
		Prog: asm.Parse(source),
	}
	n.decoded = make([]*isa.Instruction, len(n.Prog.Lines))
	n.setPC(0)
	return n
}

// SetNeighbor wires n's neighbor in direction d to peer, and symmetrically
// wires peer's neighbor in the reverse direction back to n, since adjacency
// is always symmetric. Passing a nil peer disconnects that side.
func (n *Node) SetNeighbor(d isa.Direction, peer *Node) error {
	if !d.IsPort() {
		return &UnknownDirectionError{Direction: d}
	}
	if old := n.neighbors[d]; old != nil {
		old.neighbors[d.Reverse()] = nil
	}
	n.neighbors[d] = peer
	if peer != nil {
		peer.neighbors[d.Reverse()] = n
	}
	return nil
}

// Neighbor returns n's current neighbor in direction d, or nil if
// unconnected.
func (n *Node) Neighbor(d isa.Direction) *Node {
	if !d.IsPort() {
		return nil
	}
	return n.neighbors[d]
}

// Step advances the node by exactly one call: decoding and executing the
// current instruction in Run mode, attempting a rendezvous in Read mode,
// idling passively in Write mode, or resolving a completed rendezvous in
// Pass mode.
func (n *Node) Step() error {
	n.Cycle++
	switch n.Mode {
	case Run:
		return n.stepRun()
	case Read:
		return n.stepRead()
	case Write:
		return nil // passive: consumed only by a peer's Read (see stepRead)
	case Pass:
		n.Mode = Run
		n.advancePC()
		return nil
	}
	return nil
}

// StepMany calls Step count times. After each call it also advances the
// process-wide global cycle, so that a node exercised in isolation (without
// a grid.Grid driving a shared tick) still observes one cycle of latency
// per step, matching the rendezvous rule that a read and write issued on
// the same cycle complete only once that cycle has passed.
func (n *Node) StepMany(count int) error {
	for i := 0; i < count; i++ {
		if err := n.Step(); err != nil {
			return err
		}
		GlobalInc()
	}
	return nil
}

func (n *Node) stepRun() error {
	if len(n.Prog.Lines) == 0 {
		return nil
	}
	inst, err := n.instructionAt(n.PC)
	if err != nil {
		return err
	}

	switch inst.Op {
	case isa.NOP:
		n.advancePC()
	case isa.MOV:
		n.execMov(inst)
	case isa.ADD, isa.SUB:
		n.execAddSub(inst)
	case isa.NEG:
		n.ACC = isa.Saturate(-n.ACC)
		n.advancePC()
	case isa.SAV:
		n.BAK = n.ACC
		n.advancePC()
	case isa.SWP:
		n.ACC, n.BAK = n.BAK, n.ACC
		n.advancePC()
	case isa.JMP, isa.JEZ, isa.JNZ, isa.JGZ, isa.JLZ:
		return n.execJump(inst)
	case isa.JRO:
		n.execJro(inst)
	}
	return nil
}

func (n *Node) execMov(inst isa.Instruction) {
	src, dst := inst.Src, inst.Dst

	if src.Kind == isa.OperandPort {
		n.enterRead(src.Port, destFromOperand(dst))
		return
	}

	v := n.operandValue(src)
	switch dst.Kind {
	case isa.OperandNil:
		n.advancePC() // MOV lit/ACC, NIL: no effect
	case isa.OperandAcc:
		n.ACC = isa.Saturate(v) // MOV ACC, ACC is a no-op assignment
		n.advancePC()
	case isa.OperandPort:
		n.enterWrite(dst.Port, v)
	}
}

func (n *Node) execAddSub(inst isa.Instruction) {
	if inst.Src.Kind == isa.OperandPort {
		k := destAccAdd
		if inst.Op == isa.SUB {
			k = destAccSub
		}
		n.enterRead(inst.Src.Port, dest{kind: k})
		return
	}

	v := n.operandValue(inst.Src)
	if inst.Op == isa.ADD {
		n.ACC = isa.Saturate(n.ACC + v)
	} else {
		n.ACC = isa.Saturate(n.ACC - v)
	}
	n.advancePC()
}

func (n *Node) execJump(inst isa.Instruction) error {
	idx, ok := n.Prog.Labels[inst.Label]
	if !ok {
		return &UnknownLabelError{Label: inst.Label}
	}

	var taken bool
	switch inst.Op {
	case isa.JMP:
		taken = true
	case isa.JEZ:
		taken = n.ACC == 0
	case isa.JNZ:
		taken = n.ACC != 0
	case isa.JGZ:
		taken = n.ACC > 0
	case isa.JLZ:
		taken = n.ACC < 0
	}

	if taken {
		n.setPC(idx) // jump: no auto-increment, just skip to target then over blanks
	} else {
		n.advancePC()
	}
	return nil
}

func (n *Node) execJro(inst isa.Instruction) {
	offset := n.operandValue(inst.Src)
	n.setPC(n.PC + offset)
}

func (n *Node) operandValue(op isa.Operand) int {
	switch op.Kind {
	case isa.OperandLiteral:
		return op.Literal
	case isa.OperandAcc:
		return n.ACC
	default:
		return 0
	}
}

func destFromOperand(dst isa.Operand) dest {
	switch dst.Kind {
	case isa.OperandAcc:
		return dest{kind: destAccMov}
	case isa.OperandPort:
		return dest{kind: destPort, port: dst.Port}
	default:
		return dest{kind: destNil}
	}
}

func (n *Node) enterRead(dir isa.Direction, d dest) {
	n.port = portState{issueCycle: GlobalCycle(), dir: dir, dest: d}
	n.Mode = Read
}

func (n *Node) enterWrite(dir isa.Direction, value int) {
	n.port = portState{issueCycle: GlobalCycle(), dir: dir, payload: isa.Saturate(value)}
	n.Mode = Write
}

// instructionAt decodes (and caches) the instruction at slot idx. Decoding
// is deferred to first execution per asm.Parse's contract: a line is never
// rejected while parsing, only when it is actually reached.
func (n *Node) instructionAt(idx int) (isa.Instruction, error) {
	if c := n.decoded[idx]; c != nil {
		return *c, nil
	}
	inst, err := isa.Decode(n.Prog.Lines[idx].Text)
	if err != nil {
		return isa.Instruction{}, err
	}
	n.decoded[idx] = &inst
	return inst, nil
}

// setPC moves the program counter to idx (normalized into program bounds,
// wrapping on out-of-range input so JRO offsets never panic), then skips
// forward over any blank/label-only slots.
func (n *Node) setPC(idx int) {
	ln := len(n.Prog.Lines)
	if ln == 0 {
		n.PC = 0
		return
	}
	idx = ((idx % ln) + ln) % ln
	for i := 0; i < ln && n.Prog.Lines[idx].Blank(); i++ {
		idx = (idx + 1) % ln
	}
	n.PC = idx
}

func (n *Node) advancePC() { n.setPC(n.PC + 1) }

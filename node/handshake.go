package node

import "tis/isa"

// stepRead attempts the rendezvous with a neighboring node in Write mode.
// Only the READ side ever calls this; a WRITE's own Step is a passive
// no-op (see Step).
func (n *Node) stepRead() error {
	candidates, ok := n.readCandidates()
	if !ok {
		return nil // e.g. LAST addressed before any ANY has ever resolved: stall
	}

	for _, d := range candidates {
		w := n.neighbors[d]
		if w == nil || w.Mode != Write {
			continue
		}
		if !writerTargets(w, d) {
			continue
		}
		if !n.rendezvousReady(w) {
			continue
		}

		if n.port.dir == isa.Any {
			n.lastDir, n.hasLast = d, true
		}

		value := w.port.payload
		n.completeRead(value)
		consumeWriter(w, n, d)
		return nil
	}

	if Debug {
		Logger.Printf("%s: stalled in READ on %v at cycle %d", n.Name, n.port.dir, n.Cycle)
	}
	return nil // no neighbor ready: stall, remain in Read, pc unchanged
}

// readCandidates resolves the direction(s) this READ should probe. ANY
// probes in a fixed, documented order (left, right, up, down); LAST reuses
// whatever direction a prior ANY resolved to on this node, and stalls
// indefinitely until one has.
func (n *Node) readCandidates() ([]isa.Direction, bool) {
	switch n.port.dir {
	case isa.Any:
		return []isa.Direction{isa.Left, isa.Right, isa.Up, isa.Down}, true
	case isa.Last:
		if !n.hasLast {
			return nil, false
		}
		return []isa.Direction{n.lastDir}, true
	default:
		return []isa.Direction{n.port.dir}, true
	}
}

// writerTargets reports whether w's announced WRITE direction points back
// at whichever node is probing it from direction d, generalized to also
// accept a writer that itself addressed ANY or LAST.
func writerTargets(w *Node, d isa.Direction) bool {
	switch w.port.dir {
	case isa.Any:
		return true
	case isa.Last:
		return w.hasLast && w.lastDir == d.Reverse()
	default:
		return w.port.dir == d.Reverse()
	}
}

// rendezvousReady reports whether the reader's issue cycle strictly
// precedes the writer's, or — if they coincide — that shared cycle is
// already strictly behind the current global cycle. This is what forces at
// least one tick of latency across any same-tick READ/WRITE pair.
func (n *Node) rendezvousReady(w *Node) bool {
	r, wc := n.port.issueCycle, w.port.issueCycle
	if r < wc {
		return true
	}
	if r == wc && wc < GlobalCycle() {
		return true
	}
	return false
}

// completeRead applies the effect of a successful rendezvous for the
// reading node. A cascade (dest is itself a port) transitions straight into
// Write without advancing pc this tick; every other destination applies its
// effect, returns to Run, and advances pc once.
func (n *Node) completeRead(value int) {
	switch n.port.dest.kind {
	case destAccMov:
		n.ACC = isa.Saturate(value)
		n.finishRead()
	case destAccAdd:
		n.ACC = isa.Saturate(n.ACC + value)
		n.finishRead()
	case destAccSub:
		n.ACC = isa.Saturate(n.ACC - value)
		n.finishRead()
	case destNil:
		n.finishRead()
	case destPort:
		n.enterWrite(n.port.dest.port, value)
	}
}

func (n *Node) finishRead() {
	n.Mode = Run
	n.advancePC()
}

// consumeWriter places w into the mode that guarantees its pc advances
// exactly once across the whole transaction, regardless of whether the
// driver stepped w or r first this tick.
//
// If w already stepped this tick (its Cycle count caught up to r's, which
// has just been incremented at the top of r.Step), its own step is done, so
// we transition it to Run and advance its pc right now. Otherwise w hasn't
// been stepped yet this tick; marking it Pass lets its own upcoming Step
// call do exactly that.
func consumeWriter(w, r *Node, d isa.Direction) {
	if w.port.dir == isa.Any {
		w.lastDir, w.hasLast = d.Reverse(), true
	}

	if w.Cycle >= r.Cycle {
		w.Mode = Run
		w.advancePC()
	} else {
		w.Mode = Pass
	}
}

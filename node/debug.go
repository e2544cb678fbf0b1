package node

import (
	"log"
	"os"

	"github.com/davecgh/go-spew/spew"
)

// Logger is the package-level diagnostic logger. Callers that want quiet
// tests redirect it the same way they would log.Default():
// Logger.SetOutput(io.Discard).
var Logger = log.New(os.Stderr, "node: ", log.LstdFlags)

// Debug gates verbose logging of stall conditions. Stalls are expected,
// normal node states, so they are never logged unless a caller opts in.
var Debug = false

// Dump renders n's full internal state with go-spew, unexported fields
// included.
func Dump(n *Node) string {
	return spew.Sdump(n)
}

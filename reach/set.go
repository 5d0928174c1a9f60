// Package reach computes the set of markings reachable from a net's
// initial marking by explicit breadth-first exploration of the firing
// relation. The Set interface it defines is the common capability shared
// with the symbolic engine, so deadlock detection and optimization work
// against either representation.
package reach

import (
	"errors"
	"iter"

	"github.com/pflow-xyz/go-reach/marking"
)

// ErrStateLimit reports that an exploration exceeded its state or
// iteration ceiling. Unlike a malformed net this is recoverable: the
// caller may retry with a higher limit or switch engines. No partial set
// is ever returned alongside it.
var ErrStateLimit = errors.New("state limit exceeded")

// DefaultLimit is the state ceiling used when the caller supplies none.
const DefaultLimit = 10000

// Set is a computed reachable set of markings. Implementations are
// immutable after construction and safe for concurrent readers.
type Set interface {
	// Size returns the number of distinct reachable markings.
	Size() int

	// Contains reports whether m is reachable.
	Contains(m marking.Marking) bool

	// All enumerates every reachable marking. The sequence is finite and
	// restartable; its order is implementation-defined.
	All() iter.Seq[marking.Marking]

	// Initial returns the marking the computation started from. It is
	// always a member of the set.
	Initial() marking.Marking
}

// Package analysis evaluates reachability-based properties over a
// computed reachable set: deadlock existence and linear-objective
// optimization. Both operate through the reach.Set capability only, so
// the explicit and the symbolic representations are interchangeable.
package analysis

import (
	"github.com/pflow-xyz/go-reach/marking"
	"github.com/pflow-xyz/go-reach/petri"
	"github.com/pflow-xyz/go-reach/reach"
)

// FindDeadlock scans the reachable set for a marking in which no
// transition is enabled. It returns the first dead marking in the set's
// enumeration order, or false when the net is deadlock-free. Absence of
// a deadlock is a valid analysis outcome, not an error.
//
// Enumeration order is representation-defined, so when several
// deadlocks exist different set implementations may report different
// ones; all reported markings are valid deadlocks.
func FindDeadlock(net *petri.Net, set reach.Set) (marking.Marking, bool) {
	for m := range set.All() {
		if len(net.EnabledSet(m)) == 0 {
			return m, true
		}
	}
	return marking.Marking{}, false
}

// Deadlocks returns every dead marking in the set, in enumeration
// order. Used by tests to cross-check FindDeadlock against a full scan.
func Deadlocks(net *petri.Net, set reach.Set) []marking.Marking {
	var dead []marking.Marking
	for m := range set.All() {
		if len(net.EnabledSet(m)) == 0 {
			dead = append(dead, m)
		}
	}
	return dead
}

// Package petri implements the structural model of 1-safe Petri nets.
// A net owns an ordered sequence of places (the ordinal index of a place
// fixes its bit position in a marking), transitions with resolved input
// and output place-index sets, and the initial marking.
//
// Nets are immutable once built. The firing rule enforces 1-safety: a
// transition is enabled only when every input place holds a token and no
// output-only place does, so firing can never stack a second token onto
// an occupied place.
package petri

import (
	"errors"
	"fmt"
	"sort"

	"github.com/pflow-xyz/go-reach/marking"
)

// ErrMalformedNet reports a structurally inconsistent net description.
// It is fatal: net construction either fully succeeds or fails with no
// usable partial value.
var ErrMalformedNet = errors.New("malformed net")

// Place is a condition that can hold at most one token.
type Place struct {
	ID    string
	Name  string // optional display name; defaults to ID
	Index int    // ordinal index, fixes the marking bit position
}

// Transition is an event consuming tokens from its input places and
// producing tokens in its output places. Input and output sets need not
// be disjoint: a place appearing in both is read and restored by firing.
type Transition struct {
	ID      string
	Name    string
	Inputs  []int // sorted input place indices
	Outputs []int // sorted output place indices

	// Precomputed masks for constant-time enable/fire checks.
	require marking.Marking // all inputs
	forbid  marking.Marking // outputs that are not inputs
	consume marking.Marking // inputs that are not outputs
	produce marking.Marking // outputs that are not inputs
}

// Net is the immutable structural representation of a 1-safe Petri net.
type Net struct {
	name        string
	places      []Place
	transitions []Transition
	initial     marking.Marking
}

// NewNet builds a net from resolved places, transitions, and an initial
// marking. It fails with ErrMalformedNet if the description is
// inconsistent: no places, more places than the marking codec can hold,
// or a transition referencing a place index outside [0, n).
func NewNet(name string, places []Place, transitions []Transition, initial marking.Marking) (*Net, error) {
	n := len(places)
	if n == 0 {
		return nil, fmt.Errorf("%w: net has no places", ErrMalformedNet)
	}
	if n > marking.MaxPlaces {
		return nil, fmt.Errorf("%w: %d places exceeds the %d-place codec width", ErrMalformedNet, n, marking.MaxPlaces)
	}
	if initial.Len() != n {
		return nil, fmt.Errorf("%w: initial marking covers %d places, net has %d", ErrMalformedNet, initial.Len(), n)
	}
	for i := range places {
		if places[i].Index != i {
			return nil, fmt.Errorf("%w: place %q has ordinal %d at position %d", ErrMalformedNet, places[i].ID, places[i].Index, i)
		}
	}

	ts := make([]Transition, len(transitions))
	copy(ts, transitions)
	for i := range ts {
		t := &ts[i]
		for _, idx := range t.Inputs {
			if idx < 0 || idx >= n {
				return nil, fmt.Errorf("%w: transition %q references input place index %d outside [0,%d)", ErrMalformedNet, t.ID, idx, n)
			}
		}
		for _, idx := range t.Outputs {
			if idx < 0 || idx >= n {
				return nil, fmt.Errorf("%w: transition %q references output place index %d outside [0,%d)", ErrMalformedNet, t.ID, idx, n)
			}
		}
		t.Inputs = append([]int(nil), t.Inputs...)
		t.Outputs = append([]int(nil), t.Outputs...)
		sort.Ints(t.Inputs)
		sort.Ints(t.Outputs)

		in := marking.New(n)
		for _, idx := range t.Inputs {
			in = in.Set(idx)
		}
		out := marking.New(n)
		for _, idx := range t.Outputs {
			out = out.Set(idx)
		}
		t.require = in
		t.forbid = out.Minus(in)
		t.consume = in.Minus(out)
		t.produce = out.Minus(in)
	}

	return &Net{
		name:        name,
		places:      append([]Place(nil), places...),
		transitions: ts,
		initial:     initial,
	}, nil
}

// Name returns the net's display name, possibly empty.
func (net *Net) Name() string { return net.name }

// NumPlaces returns the number of places.
func (net *Net) NumPlaces() int { return len(net.places) }

// NumTransitions returns the number of transitions.
func (net *Net) NumTransitions() int { return len(net.transitions) }

// Places returns the ordered place sequence. The slice is shared and
// must be treated as read-only.
func (net *Net) Places() []Place { return net.places }

// Transitions returns the transition sequence. Read-only.
func (net *Net) Transitions() []Transition { return net.transitions }

// Initial returns the initial marking.
func (net *Net) Initial() marking.Marking { return net.initial }

// Enabled reports whether transition t may fire in m: every input place
// holds a token and every output-only place is empty. The second
// condition is what keeps firing 1-safe.
func (net *Net) Enabled(t int, m marking.Marking) bool {
	tr := &net.transitions[t]
	return m.Covers(tr.require) && m.Disjoint(tr.forbid)
}

// Fire fires transition t in m and returns the successor marking:
// input-only places are emptied, output-only places are filled, places
// that are both input and output keep their token.
//
// Fire panics if t is not enabled in m. That is a contract violation by
// the caller, never an expected runtime condition.
func (net *Net) Fire(t int, m marking.Marking) marking.Marking {
	tr := &net.transitions[t]
	if !net.Enabled(t, m) {
		panic(fmt.Sprintf("petri: fire %q in %s: transition not enabled", tr.ID, m))
	}
	return m.Minus(tr.consume).Union(tr.produce)
}

// EnabledSet returns the indices of all transitions enabled in m, in
// transition order.
func (net *Net) EnabledSet(m marking.Marking) []int {
	var enabled []int
	for t := range net.transitions {
		if net.Enabled(t, m) {
			enabled = append(enabled, t)
		}
	}
	return enabled
}

// PlaceIDs returns the place identifiers in ordinal order.
func (net *Net) PlaceIDs() []string {
	ids := make([]string, len(net.places))
	for i, p := range net.places {
		ids[i] = p.ID
	}
	return ids
}

// TransitionIDs returns the transition identifiers in declaration order.
func (net *Net) TransitionIDs() []string {
	ids := make([]string, len(net.transitions))
	for i, t := range net.transitions {
		ids[i] = t.ID
	}
	return ids
}

// ArcCount returns the number of arcs folded into the transitions'
// input/output sets.
func (net *Net) ArcCount() int {
	count := 0
	for _, t := range net.transitions {
		count += len(t.Inputs) + len(t.Outputs)
	}
	return count
}

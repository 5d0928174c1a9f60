package reach

import (
	"fmt"
	"iter"

	"github.com/pflow-xyz/go-reach/marking"
	"github.com/pflow-xyz/go-reach/petri"
)

// Explorer performs explicit breadth-first reachability analysis.
type Explorer struct {
	net   *petri.Net
	limit int
}

// NewExplorer creates an explorer for the given net with the default
// state ceiling.
func NewExplorer(net *petri.Net) *Explorer {
	return &Explorer{net: net, limit: DefaultLimit}
}

// WithLimit sets the maximum number of distinct markings to admit before
// the exploration aborts with ErrStateLimit.
func (e *Explorer) WithLimit(limit int) *Explorer {
	e.limit = limit
	return e
}

// pred records how a marking was first reached, enough to rebuild one
// witnessing firing sequence per marking.
type pred struct {
	from       marking.Marking
	transition int
}

// StateSpace is the exact reachable set produced by an exploration,
// together with the BFS predecessor map. It implements Set.
type StateSpace struct {
	net   *petri.Net
	order []marking.Marking
	preds map[marking.Marking]pred
}

// Explore runs the BFS to completion: pop a marking, fire every enabled
// transition, admit unseen successors. Each marking is expanded exactly
// once, so the work is bounded by |R| x |T| enabled checks. If the
// visited set would exceed the ceiling the whole computation fails and
// no partial result is returned.
func (e *Explorer) Explore() (*StateSpace, error) {
	initial := e.net.Initial()
	space := &StateSpace{
		net:   e.net,
		order: []marking.Marking{initial},
		preds: map[marking.Marking]pred{initial: {transition: -1}},
	}

	frontier := []marking.Marking{initial}
	for len(frontier) > 0 {
		current := frontier[0]
		frontier = frontier[1:]

		for t := 0; t < e.net.NumTransitions(); t++ {
			if !e.net.Enabled(t, current) {
				continue
			}
			next := e.net.Fire(t, current)
			if _, seen := space.preds[next]; seen {
				continue
			}
			if len(space.preds) >= e.limit {
				return nil, fmt.Errorf("explicit exploration: %w (%d states)", ErrStateLimit, e.limit)
			}
			space.preds[next] = pred{from: current, transition: t}
			space.order = append(space.order, next)
			frontier = append(frontier, next)
		}
	}
	return space, nil
}

// Size returns the number of reachable markings.
func (s *StateSpace) Size() int { return len(s.order) }

// Contains reports whether m was reached.
func (s *StateSpace) Contains(m marking.Marking) bool {
	_, ok := s.preds[m]
	return ok
}

// All enumerates the reachable markings in discovery (BFS) order.
func (s *StateSpace) All() iter.Seq[marking.Marking] {
	return func(yield func(marking.Marking) bool) {
		for _, m := range s.order {
			if !yield(m) {
				return
			}
		}
	}
}

// Initial returns the marking the exploration started from.
func (s *StateSpace) Initial() marking.Marking { return s.order[0] }

// PathTo rebuilds a witnessing firing sequence from the initial marking
// to m using the predecessor map. The boolean is false when m is not
// reachable. The initial marking yields an empty sequence.
func (s *StateSpace) PathTo(m marking.Marking) ([]int, bool) {
	if _, ok := s.preds[m]; !ok {
		return nil, false
	}
	var rev []int
	for cur := m; ; {
		p := s.preds[cur]
		if p.transition < 0 {
			break
		}
		rev = append(rev, p.transition)
		cur = p.from
	}
	path := make([]int, len(rev))
	for i, t := range rev {
		path[len(rev)-1-i] = t
	}
	return path, true
}

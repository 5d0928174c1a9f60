// Package symbolic computes the reachable set of a 1-safe net as a
// canonical boolean function over the place variables, represented as a
// reduced ordered BDD. One variable per place, ordered by place ordinal;
// the order is fixed for the lifetime of a set, which is what makes
// structural equality of BDD nodes coincide with set equality.
//
// Construction is a fixed-point iteration: starting from the cube of the
// initial marking, the per-transition image operator is applied and
// unioned until no new markings appear. The image of a transition is
// computed on the representation itself, never by enumerating markings:
// restrict to the enabling cube, existentially quantify the places the
// firing changes, then re-assert their post-firing literals.
package symbolic

import (
	"fmt"
	"iter"
	"math/big"
	"sync"

	"github.com/dalzilio/rudd"

	"github.com/pflow-xyz/go-reach/marking"
	"github.com/pflow-xyz/go-reach/petri"
	"github.com/pflow-xyz/go-reach/reach"
)

// Builder configures a symbolic reachability computation.
type Builder struct {
	net           *petri.Net
	maxStates     int
	maxIterations int
}

// NewBuilder creates a builder with default ceilings.
func NewBuilder(net *petri.Net) *Builder {
	return &Builder{
		net:           net,
		maxStates:     reach.DefaultLimit,
		maxIterations: reach.DefaultLimit,
	}
}

// WithLimit sets the reachable-marking ceiling. When the fixed-point
// iteration grows past it the computation aborts with ErrStateLimit.
func (b *Builder) WithLimit(states int) *Builder {
	b.maxStates = states
	return b
}

// WithMaxIterations caps the number of fixed-point rounds. The fixed
// point is always reached within 2^n rounds; the cap guards moderate n
// where that bound is impractical.
func (b *Builder) WithMaxIterations(k int) *Builder {
	b.maxIterations = k
	return b
}

// transImage holds the precomputed BDD pieces of one transition's image
// operator.
type transImage struct {
	pre     rudd.Node // enabling cube: inputs set, output-only places empty
	post    rudd.Node // literals of the places the firing changed
	changed rudd.Node // variable set quantified out by the image
	static  bool      // inputs == outputs: firing is the identity
}

// Set is a reachable set in canonical BDD form. It implements reach.Set.
// The BDD universe is owned by the set and reclaimed with it; it is
// never shared between unrelated analyses.
//
// Queries are logically read-only but allocate in the shared BDD node
// table, so Contains and All serialize on an internal mutex. The set is
// safe for concurrent readers.
type Set struct {
	mu         sync.Mutex
	bdd        *rudd.BDD
	root       rudd.Node
	n          int
	size       int
	initial    marking.Marking
	iterations int
}

// Build runs the fixed-point computation and returns the canonical set.
func (b *Builder) Build() (*Set, error) {
	net := b.net
	n := net.NumPlaces()

	bdd, err := rudd.New(n, rudd.Nodesize(10000), rudd.Cachesize(5000))
	if err != nil {
		return nil, fmt.Errorf("symbolic: allocate bdd: %w", err)
	}

	initial := net.Initial()
	reached := bdd.And(literals(bdd, initial, n)...)

	images := make([]transImage, net.NumTransitions())
	for t, tr := range net.Transitions() {
		images[t] = encodeTransition(bdd, tr)
	}

	limit := big.NewInt(int64(b.maxStates))
	iterations := 0
	for {
		if iterations >= b.maxIterations {
			return nil, fmt.Errorf("symbolic fixed point: %w (%d iterations)", reach.ErrStateLimit, b.maxIterations)
		}
		iterations++

		next := reached
		for _, img := range images {
			next = bdd.Or(next, img.apply(bdd, reached))
		}
		if bdd.Equal(next, reached) {
			break
		}
		reached = next

		if bdd.Satcount(reached).Cmp(limit) > 0 {
			return nil, fmt.Errorf("symbolic fixed point: %w (%d states)", reach.ErrStateLimit, b.maxStates)
		}
	}

	return &Set{
		bdd:        bdd,
		root:       reached,
		n:          n,
		size:       int(bdd.Satcount(reached).Int64()),
		initial:    initial,
		iterations: iterations,
	}, nil
}

// Build is shorthand for NewBuilder(net).Build().
func Build(net *petri.Net) (*Set, error) {
	return NewBuilder(net).Build()
}

// encodeTransition precomputes the image operator pieces for one
// transition.
func encodeTransition(bdd *rudd.BDD, tr petri.Transition) transImage {
	inputs := make(map[int]bool, len(tr.Inputs))
	for _, i := range tr.Inputs {
		inputs[i] = true
	}
	outputs := make(map[int]bool, len(tr.Outputs))
	for _, i := range tr.Outputs {
		outputs[i] = true
	}

	pre := []rudd.Node{bdd.True()}
	for _, i := range tr.Inputs {
		pre = append(pre, bdd.Ithvar(i))
	}
	for _, i := range tr.Outputs {
		if !inputs[i] {
			pre = append(pre, bdd.NIthvar(i))
		}
	}

	var changedVars []int
	post := []rudd.Node{bdd.True()}
	for _, i := range tr.Inputs {
		if !outputs[i] {
			changedVars = append(changedVars, i)
			post = append(post, bdd.NIthvar(i))
		}
	}
	for _, i := range tr.Outputs {
		if !inputs[i] {
			changedVars = append(changedVars, i)
			post = append(post, bdd.Ithvar(i))
		}
	}

	img := transImage{
		pre:    bdd.And(pre...),
		post:   bdd.And(post...),
		static: len(changedVars) == 0,
	}
	if !img.static {
		img.changed = bdd.Makeset(changedVars)
	}
	return img
}

// apply computes the image of the set s under this transition:
// Exist changed . (s AND pre), conjoined with the post literals.
func (img transImage) apply(bdd *rudd.BDD, s rudd.Node) rudd.Node {
	if img.static {
		// Firing restores every token it consumes; enabled markings map
		// to themselves.
		return bdd.And(s, img.pre)
	}
	return bdd.And(bdd.AppEx(s, img.pre, rudd.OPand, img.changed), img.post)
}

// literals returns one literal per place variable, positive where the
// marking holds a token.
func literals(bdd *rudd.BDD, m marking.Marking, n int) []rudd.Node {
	lits := make([]rudd.Node, n)
	for i := 0; i < n; i++ {
		if m.Has(i) {
			lits[i] = bdd.Ithvar(i)
		} else {
			lits[i] = bdd.NIthvar(i)
		}
	}
	return lits
}

// Size returns the number of reachable markings.
func (s *Set) Size() int { return s.size }

// Iterations returns how many fixed-point rounds construction took.
func (s *Set) Iterations() int { return s.iterations }

// Initial returns the marking the computation started from.
func (s *Set) Initial() marking.Marking { return s.initial }

// Contains evaluates the set function on m: the conjunction of the
// set with m's cube is nonempty exactly when m is a member. No search
// is involved.
func (s *Set) Contains(m marking.Marking) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	cube := s.bdd.And(literals(s.bdd, m, s.n)...)
	return !s.bdd.Equal(s.bdd.And(s.root, cube), s.bdd.False())
}

// All enumerates every satisfying assignment of the set function, one
// marking per assignment. Assignments where the function does not depend
// on a variable are expanded into both values of that place bit. The
// sequence is finite and restartable.
//
// The assignments are snapshotted under the lock and yielded after it is
// released, so the loop body may query the same set.
func (s *Set) All() iter.Seq[marking.Marking] {
	return func(yield func(marking.Marking) bool) {
		s.mu.Lock()
		var cubes [][]int
		err := s.bdd.Allsat(func(assignment []int) error {
			cubes = append(cubes, append([]int(nil), assignment...))
			return nil
		}, s.root)
		s.mu.Unlock()
		_ = err // the collector never fails

		for _, cube := range cubes {
			if !expand(cube, 0, marking.New(s.n), yield) {
				return
			}
		}
	}
}

// expand walks one Allsat assignment, branching on don't-care entries.
// Returns false as soon as yield does.
func expand(assignment []int, i int, m marking.Marking, yield func(marking.Marking) bool) bool {
	for ; i < len(assignment); i++ {
		switch assignment[i] {
		case 0:
		case 1:
			m = m.Set(i)
		default:
			return expand(assignment, i+1, m, yield) &&
				expand(assignment, i+1, m.Set(i), yield)
		}
	}
	return yield(m)
}

// Equal reports whether two symbolic sets denote the same set of
// markings. Sets built in separate BDD universes cannot be compared
// structurally, so this checks size and mutual membership.
func (s *Set) Equal(o *Set) bool {
	if s.n != o.n || s.size != o.size {
		return false
	}
	for m := range s.All() {
		if !o.Contains(m) {
			return false
		}
	}
	return true
}

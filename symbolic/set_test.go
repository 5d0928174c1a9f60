package symbolic

import (
	"errors"
	"testing"

	"github.com/pflow-xyz/go-reach/marking"
	"github.com/pflow-xyz/go-reach/petri"
	"github.com/pflow-xyz/go-reach/reach"
)

func lineNet(t *testing.T) *petri.Net {
	t.Helper()
	net, err := petri.Build("line").
		Place("p0", 1).
		Place("p1", 0).
		Place("p2", 0).
		Transition("t0").
		Transition("t1").
		Flow("p0", "t0", "p1").
		Flow("p1", "t1", "p2").
		Done()
	if err != nil {
		t.Fatalf("build line net: %v", err)
	}
	return net
}

func mutexNet(t *testing.T) *petri.Net {
	t.Helper()
	net, err := petri.Build("mutex").
		Place("idleA", 1).
		Place("critA", 0).
		Place("idleB", 1).
		Place("critB", 0).
		Place("resource", 1).
		Transition("enterA").
		Transition("exitA").
		Transition("enterB").
		Transition("exitB").
		Arc("idleA", "enterA").
		Arc("resource", "enterA").
		Arc("enterA", "critA").
		Arc("critA", "exitA").
		Arc("exitA", "idleA").
		Arc("exitA", "resource").
		Arc("idleB", "enterB").
		Arc("resource", "enterB").
		Arc("enterB", "critB").
		Arc("critB", "exitB").
		Arc("exitB", "idleB").
		Arc("exitB", "resource").
		Done()
	if err != nil {
		t.Fatalf("build mutex net: %v", err)
	}
	return net
}

func markings(s reach.Set) map[marking.Marking]bool {
	got := make(map[marking.Marking]bool)
	for m := range s.All() {
		got[m] = true
	}
	return got
}

func TestBuildLineNet(t *testing.T) {
	set, err := Build(lineNet(t))
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if set.Size() != 3 {
		t.Fatalf("expected 3 reachable markings, got %d", set.Size())
	}
	for _, v := range [][]int{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}} {
		m, _ := marking.FromVector(v)
		if !set.Contains(m) {
			t.Errorf("missing marking %s", m)
		}
	}
	absent, _ := marking.FromVector([]int{1, 1, 0})
	if set.Contains(absent) {
		t.Errorf("marking %s should be unreachable", absent)
	}
}

func TestEnumerationMatchesSize(t *testing.T) {
	set, err := Build(mutexNet(t))
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	got := markings(set)
	if len(got) != set.Size() {
		t.Errorf("enumerated %d markings, Size reports %d", len(got), set.Size())
	}
	// Restartable: a second pass sees the same markings.
	for m := range set.All() {
		if !got[m] {
			t.Errorf("second enumeration produced new marking %s", m)
		}
	}
}

func TestAgreesWithExplicitExplorer(t *testing.T) {
	for _, build := range []func(*testing.T) *petri.Net{lineNet, mutexNet} {
		net := build(t)
		explicit, err := reach.NewExplorer(net).Explore()
		if err != nil {
			t.Fatalf("explicit: %v", err)
		}
		sym, err := Build(net)
		if err != nil {
			t.Fatalf("symbolic: %v", err)
		}
		if explicit.Size() != sym.Size() {
			t.Fatalf("%s: explicit %d states, symbolic %d", net.Name(), explicit.Size(), sym.Size())
		}
		for m := range explicit.All() {
			if !sym.Contains(m) {
				t.Errorf("%s: symbolic set misses %s", net.Name(), m)
			}
		}
		for m := range sym.All() {
			if !explicit.Contains(m) {
				t.Errorf("%s: symbolic set over-approximates with %s", net.Name(), m)
			}
		}
	}
}

func TestClosureUnderFiring(t *testing.T) {
	net := mutexNet(t)
	set, err := Build(net)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	for m := range set.All() {
		for _, tr := range net.EnabledSet(m) {
			if next := net.Fire(tr, m); !set.Contains(next) {
				t.Errorf("successor %s of %s missing from the set", next, m)
			}
		}
	}
}

func TestInitialIsMember(t *testing.T) {
	net := mutexNet(t)
	set, err := Build(net)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if !set.Contains(net.Initial()) {
		t.Error("initial marking must be in the reachable set")
	}
}

func TestQueryDuringEnumeration(t *testing.T) {
	net := mutexNet(t)
	set, err := Build(net)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	// Contains and successor checks inside the enumeration loop must not
	// block on the set's own lock.
	count := 0
	for m := range set.All() {
		if !set.Contains(m) {
			t.Errorf("enumerated marking %s fails membership", m)
		}
		for _, tr := range net.EnabledSet(m) {
			if !set.Contains(net.Fire(tr, m)) {
				t.Errorf("successor of %s missing during enumeration", m)
			}
		}
		count++
	}
	if count != set.Size() {
		t.Errorf("enumerated %d markings, Size reports %d", count, set.Size())
	}
}

func TestIdempotentBuild(t *testing.T) {
	net := mutexNet(t)
	a, err := Build(net)
	if err != nil {
		t.Fatalf("first build: %v", err)
	}
	b, err := Build(net)
	if err != nil {
		t.Fatalf("second build: %v", err)
	}
	if !a.Equal(b) {
		t.Error("two builds of the same net must denote equal sets")
	}
	if a.Iterations() != b.Iterations() {
		t.Errorf("iteration counts differ: %d vs %d", a.Iterations(), b.Iterations())
	}
}

func TestSelfLoopTransition(t *testing.T) {
	// t0 reads p0 and writes p1; t1's only effect is a self-loop on p1,
	// so its image is the identity on enabled markings.
	net, err := petri.Build("loop").
		Place("p0", 1).
		Place("p1", 0).
		Transition("t0").
		Transition("t1").
		Arc("p0", "t0").
		Arc("t0", "p0").
		Arc("t0", "p1").
		Arc("p1", "t1").
		Arc("t1", "p1").
		Done()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	set, err := Build(net)
	if err != nil {
		t.Fatalf("build set: %v", err)
	}
	explicit, err := reach.NewExplorer(net).Explore()
	if err != nil {
		t.Fatalf("explicit: %v", err)
	}
	if set.Size() != explicit.Size() {
		t.Errorf("self-loop net: explicit %d states, symbolic %d", explicit.Size(), set.Size())
	}
}

func TestStateLimit(t *testing.T) {
	_, err := NewBuilder(mutexNet(t)).WithLimit(1).Build()
	if !errors.Is(err, reach.ErrStateLimit) {
		t.Errorf("expected ErrStateLimit, got %v", err)
	}
}

func TestIterationLimit(t *testing.T) {
	_, err := NewBuilder(lineNet(t)).WithMaxIterations(1).Build()
	if !errors.Is(err, reach.ErrStateLimit) {
		t.Errorf("expected ErrStateLimit, got %v", err)
	}
}

package analysis

import (
	"errors"
	"testing"

	"github.com/pflow-xyz/go-reach/marking"
	"github.com/pflow-xyz/go-reach/petri"
	"github.com/pflow-xyz/go-reach/reach"
	"github.com/pflow-xyz/go-reach/symbolic"
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

// bothSets builds the explicit and symbolic reachable sets so every
// property is checked against both representations.
func bothSets(t *testing.T, net *petri.Net) map[string]reach.Set {
	t.Helper()
	explicit, err := reach.NewExplorer(net).Explore()
	if err != nil {
		t.Fatalf("explicit: %v", err)
	}
	sym, err := symbolic.Build(net)
	if err != nil {
		t.Fatalf("symbolic: %v", err)
	}
	return map[string]reach.Set{"explicit": explicit, "symbolic": sym}
}

func TestFindDeadlockLineNet(t *testing.T) {
	net := lineNet(t)
	want, _ := marking.FromVector([]int{0, 0, 1})
	for name, set := range bothSets(t, net) {
		m, found := FindDeadlock(net, set)
		if !found {
			t.Errorf("%s: expected a deadlock", name)
			continue
		}
		if m != want {
			t.Errorf("%s: expected deadlock %s, got %s", name, want, m)
		}
		if len(net.EnabledSet(m)) != 0 {
			t.Errorf("%s: reported deadlock %s has enabled transitions", name, m)
		}
	}
}

func TestNoDeadlockInMutexNet(t *testing.T) {
	net := mutexNet(t)
	for name, set := range bothSets(t, net) {
		if m, found := FindDeadlock(net, set); found {
			t.Errorf("%s: unexpected deadlock %s", name, m)
		}
		if dead := Deadlocks(net, set); len(dead) != 0 {
			t.Errorf("%s: full scan found deadlocks %v", name, dead)
		}
	}
}

func TestFindDeadlockMatchesFullScan(t *testing.T) {
	net := lineNet(t)
	for name, set := range bothSets(t, net) {
		dead := Deadlocks(net, set)
		m, found := FindDeadlock(net, set)
		if found != (len(dead) > 0) {
			t.Errorf("%s: FindDeadlock disagrees with full scan", name)
		}
		if found && m != dead[0] {
			t.Errorf("%s: FindDeadlock returned %s, scan order starts at %s", name, m, dead[0])
		}
	}
}

func TestOptimizeLineNet(t *testing.T) {
	net := lineNet(t)
	weights := []float64{3, 2, 1}
	wantMarking, _ := marking.FromVector([]int{1, 0, 0})
	for name, set := range bothSets(t, net) {
		opt, err := Optimize(set, weights, Maximize)
		if err != nil {
			t.Fatalf("%s: optimize: %v", name, err)
		}
		if opt.Value != 3 {
			t.Errorf("%s: expected value 3, got %v", name, opt.Value)
		}
		if opt.Marking != wantMarking {
			t.Errorf("%s: expected marking %s, got %s", name, wantMarking, opt.Marking)
		}
	}
}

func TestOptimizeMinimize(t *testing.T) {
	net := lineNet(t)
	for name, set := range bothSets(t, net) {
		opt, err := Optimize(set, []float64{3, 2, 1}, Minimize)
		if err != nil {
			t.Fatalf("%s: optimize: %v", name, err)
		}
		if opt.Value != 1 {
			t.Errorf("%s: expected value 1, got %v", name, opt.Value)
		}
	}
}

func TestOptimizeMatchesLinearScan(t *testing.T) {
	net := mutexNet(t)
	weights := []float64{1, 5, 1, 4, 2}
	for name, set := range bothSets(t, net) {
		opt, err := Optimize(set, weights, Maximize)
		if err != nil {
			t.Fatalf("%s: optimize: %v", name, err)
		}
		best := 0.0
		first := true
		for m := range set.All() {
			v := 0.0
			for i, w := range weights {
				if m.Has(i) {
					v += w
				}
			}
			if first || v > best {
				best = v
				first = false
			}
		}
		if opt.Value != best {
			t.Errorf("%s: optimizer found %v, independent scan found %v", name, opt.Value, best)
		}
		if !set.Contains(opt.Marking) {
			t.Errorf("%s: optimal marking %s not in the set", name, opt.Marking)
		}
	}
}

func TestOptimizeDimensionMismatch(t *testing.T) {
	net := lineNet(t)
	for name, set := range bothSets(t, net) {
		if _, err := Optimize(set, []float64{1, 2}, Maximize); !errors.Is(err, ErrDimensionMismatch) {
			t.Errorf("%s: expected ErrDimensionMismatch, got %v", name, err)
		}
	}
}

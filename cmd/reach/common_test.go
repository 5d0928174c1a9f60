package main

import (
	"fmt"
	"testing"

	"github.com/pflow-xyz/go-reach/petri"
)

// counterNet builds a 1-safe binary counter over the given number of
// bits: each bit is an on/off place pair and each increment transition
// carries the lower bits. The reachable set is every counter value, and
// the firing chain visits them one at a time, so the fixed point needs
// as many rounds as there are states.
func counterNet(t *testing.T, bits int) *petri.Net {
	t.Helper()
	b := petri.Build(fmt.Sprintf("counter%d", bits))
	for i := 0; i < bits; i++ {
		b.Place(fmt.Sprintf("b%doff", i), 1)
		b.Place(fmt.Sprintf("b%don", i), 0)
	}
	for i := 0; i < bits; i++ {
		id := fmt.Sprintf("inc%d", i)
		b.Transition(id)
		b.Arc(fmt.Sprintf("b%doff", i), id)
		b.Arc(id, fmt.Sprintf("b%don", i))
		for j := 0; j < i; j++ {
			b.Arc(fmt.Sprintf("b%don", j), id)
			b.Arc(id, fmt.Sprintf("b%doff", j))
		}
	}
	net, err := b.Done()
	if err != nil {
		t.Fatalf("build counter net: %v", err)
	}
	return net
}

func TestBuildSetDeepChainWithinCeiling(t *testing.T) {
	if testing.Short() {
		t.Skip("deep fixed point")
	}
	// 16384 states along a single firing chain: more fixed-point rounds
	// than the default ceiling, but within the caller's raised one. The
	// iteration cap must follow --limit or the symbolic engine rejects a
	// state space the user explicitly allowed.
	net := counterNet(t, 14)
	log := newLogger(false)

	for _, engine := range []string{"explicit", "symbolic"} {
		ss, err := buildSet(net, engine, 20000, log)
		if err != nil {
			t.Fatalf("%s: %v", engine, err)
		}
		if ss.set.Size() != 16384 {
			t.Errorf("%s: expected 16384 states, got %d", engine, ss.set.Size())
		}
	}
}

func TestBuildSetUnknownEngine(t *testing.T) {
	net := counterNet(t, 2)
	if _, err := buildSet(net, "quantum", 0, newLogger(false)); err == nil {
		t.Error("expected error for unknown engine")
	}
}

func TestParseWeights(t *testing.T) {
	weights, err := parseWeights("3, 2,1", 3)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if weights[0] != 3 || weights[1] != 2 || weights[2] != 1 {
		t.Errorf("wrong weights: %v", weights)
	}
	if _, err := parseWeights("1,2", 3); err == nil {
		t.Error("expected error for short vector")
	}
	if _, err := parseWeights("1,x,3", 3); err == nil {
		t.Error("expected error for non-numeric weight")
	}
}

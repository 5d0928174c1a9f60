package analysis

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/pflow-xyz/go-reach/marking"
	"github.com/pflow-xyz/go-reach/reach"
)

// ErrDimensionMismatch reports a weight vector whose length does not
// match the number of places.
var ErrDimensionMismatch = errors.New("weight vector dimension mismatch")

// Direction selects whether the objective is maximized or minimized.
type Direction int

const (
	Maximize Direction = iota
	Minimize
)

func (d Direction) String() string {
	if d == Minimize {
		return "minimize"
	}
	return "maximize"
}

// Optimum is the result of an optimization: a representative optimal
// marking and its objective value.
type Optimum struct {
	Marking marking.Marking
	Value   float64
}

// Optimize finds the marking extremizing the linear functional
// sum_i weights[i] * m[i] over the reachable set. The scan is linear in
// the set size; for a 1-safe net that is already bounded by 2^n.
//
// Ties are broken by keeping the first optimum in the set's enumeration
// order (the comparison is strict), so the result is stable for a given
// set.
func Optimize(set reach.Set, weights []float64, dir Direction) (Optimum, error) {
	var best Optimum
	found := false
	for m := range set.All() {
		if len(weights) != m.Len() {
			return Optimum{}, fmt.Errorf("%w: %d weights for %d places", ErrDimensionMismatch, len(weights), m.Len())
		}
		value := floats.Dot(weights, m.Vector())
		better := !found ||
			(dir == Maximize && value > best.Value) ||
			(dir == Minimize && value < best.Value)
		if better {
			best = Optimum{Marking: m, Value: value}
			found = true
		}
	}
	if !found {
		// A reachable set always contains the initial marking; an empty
		// set never leaves the constructor.
		return Optimum{}, errors.New("optimize: empty reachable set")
	}
	return best, nil
}

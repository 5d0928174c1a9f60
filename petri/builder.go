package petri

import (
	"fmt"

	"github.com/pflow-xyz/go-reach/marking"
)

// Builder provides a fluent API for constructing 1-safe nets. Arcs are
// declared between identifiers and resolved to place indices when Done
// is called.
//
// Example:
//
//	net, err := petri.Build("line").
//	    Place("p0", 1).
//	    Place("p1", 0).
//	    Place("p2", 0).
//	    Transition("t0").
//	    Transition("t1").
//	    Arc("p0", "t0").
//	    Arc("t0", "p1").
//	    Arc("p1", "t1").
//	    Arc("t1", "p2").
//	    Done()
type Builder struct {
	name        string
	places      []Place
	tokens      []int
	transitions []Transition
	placeIdx    map[string]int
	transIdx    map[string]int
	arcs        []builderArc
	err         error
}

type builderArc struct {
	source, target string
}

// Build starts a new net builder.
func Build(name string) *Builder {
	return &Builder{
		name:     name,
		placeIdx: make(map[string]int),
		transIdx: make(map[string]int),
	}
}

// Place adds a place holding the given initial token count (0 or 1).
// The ordinal index of the place is its declaration position.
func (b *Builder) Place(id string, tokens int) *Builder {
	return b.PlaceNamed(id, id, tokens)
}

// PlaceNamed adds a place with a display name distinct from its id.
func (b *Builder) PlaceNamed(id, name string, tokens int) *Builder {
	if b.err != nil {
		return b
	}
	if _, dup := b.placeIdx[id]; dup {
		b.err = fmt.Errorf("%w: duplicate place %q", ErrMalformedNet, id)
		return b
	}
	if tokens != 0 && tokens != 1 {
		b.err = fmt.Errorf("%w: place %q starts with %d tokens, want 0 or 1", ErrMalformedNet, id, tokens)
		return b
	}
	b.placeIdx[id] = len(b.places)
	b.places = append(b.places, Place{ID: id, Name: name, Index: len(b.places)})
	b.tokens = append(b.tokens, tokens)
	return b
}

// Transition adds a transition.
func (b *Builder) Transition(id string) *Builder {
	if b.err != nil {
		return b
	}
	if _, dup := b.transIdx[id]; dup {
		b.err = fmt.Errorf("%w: duplicate transition %q", ErrMalformedNet, id)
		return b
	}
	if _, clash := b.placeIdx[id]; clash {
		b.err = fmt.Errorf("%w: identifier %q used for both a place and a transition", ErrMalformedNet, id)
		return b
	}
	b.transIdx[id] = len(b.transitions)
	b.transitions = append(b.transitions, Transition{ID: id, Name: id})
	return b
}

// Arc adds a unit-weight arc between a place and a transition, in either
// direction.
func (b *Builder) Arc(source, target string) *Builder {
	if b.err != nil {
		return b
	}
	b.arcs = append(b.arcs, builderArc{source, target})
	return b
}

// Flow is shorthand for the place -> transition -> place pattern.
func (b *Builder) Flow(fromPlace, transition, toPlace string) *Builder {
	return b.Arc(fromPlace, transition).Arc(transition, toPlace)
}

// Done resolves all arcs and returns the completed net, or
// ErrMalformedNet when the description is inconsistent.
func (b *Builder) Done() (*Net, error) {
	if b.err != nil {
		return nil, b.err
	}
	for _, arc := range b.arcs {
		pi, sourceIsPlace := b.placeIdx[arc.source]
		ti, sourceIsTrans := b.transIdx[arc.source]
		switch {
		case sourceIsPlace:
			tt, ok := b.transIdx[arc.target]
			if !ok {
				if _, alsoPlace := b.placeIdx[arc.target]; alsoPlace {
					return nil, fmt.Errorf("%w: arc %s -> %s connects two places", ErrMalformedNet, arc.source, arc.target)
				}
				return nil, fmt.Errorf("%w: arc target %q unknown", ErrMalformedNet, arc.target)
			}
			b.transitions[tt].Inputs = append(b.transitions[tt].Inputs, pi)
		case sourceIsTrans:
			pt, ok := b.placeIdx[arc.target]
			if !ok {
				if _, alsoTrans := b.transIdx[arc.target]; alsoTrans {
					return nil, fmt.Errorf("%w: arc %s -> %s connects two transitions", ErrMalformedNet, arc.source, arc.target)
				}
				return nil, fmt.Errorf("%w: arc target %q unknown", ErrMalformedNet, arc.target)
			}
			b.transitions[ti].Outputs = append(b.transitions[ti].Outputs, pt)
		default:
			return nil, fmt.Errorf("%w: arc source %q unknown", ErrMalformedNet, arc.source)
		}
	}

	initial, err := marking.FromVector(b.tokens)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedNet, err)
	}
	return NewNet(b.name, b.places, b.transitions, initial)
}

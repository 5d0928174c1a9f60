package parser

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/pflow-xyz/go-reach/petri"
)

// JSON net format:
//
//	{
//	  "name": "line",
//	  "places": {
//	    "p0": {"initial": 1, "name": "start"},
//	    "p1": {}
//	  },
//	  "transitions": {
//	    "t0": {}
//	  },
//	  "arcs": [
//	    {"source": "p0", "target": "t0"},
//	    {"source": "t0", "target": "p1"}
//	  ]
//	}
//
// Arcs are unit weight; "initial" defaults to 0 and must be 0 or 1.

type jsonNet struct {
	Name        string                    `json:"name,omitempty"`
	Places      map[string]jsonPlace      `json:"places"`
	Transitions map[string]jsonTransition `json:"transitions"`
	Arcs        []jsonArc                 `json:"arcs"`
}

type jsonPlace struct {
	Initial int    `json:"initial,omitempty"`
	Name    string `json:"name,omitempty"`
}

type jsonTransition struct {
	Name string `json:"name,omitempty"`
}

type jsonArc struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// FromJSON parses the JSON net format. Place ordinals follow sorted
// place-id order, matching the PNML loader.
func FromJSON(data []byte) (*petri.Net, error) {
	var raw jsonNet
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse net JSON: %w", err)
	}

	placeIDs := make([]string, 0, len(raw.Places))
	for id := range raw.Places {
		placeIDs = append(placeIDs, id)
	}
	sort.Strings(placeIDs)
	transIDs := make([]string, 0, len(raw.Transitions))
	for id := range raw.Transitions {
		transIDs = append(transIDs, id)
	}
	sort.Strings(transIDs)

	b := petri.Build(raw.Name)
	for _, id := range placeIDs {
		p := raw.Places[id]
		name := p.Name
		if name == "" {
			name = id
		}
		b.PlaceNamed(id, name, p.Initial)
	}
	for _, id := range transIDs {
		b.Transition(id)
	}
	for _, a := range raw.Arcs {
		b.Arc(a.Source, a.Target)
	}
	return b.Done()
}

// ToJSON serializes a net back to the JSON format.
func ToJSON(net *petri.Net) ([]byte, error) {
	out := jsonNet{
		Name:        net.Name(),
		Places:      make(map[string]jsonPlace, net.NumPlaces()),
		Transitions: make(map[string]jsonTransition, net.NumTransitions()),
	}
	for _, p := range net.Places() {
		jp := jsonPlace{}
		if net.Initial().Has(p.Index) {
			jp.Initial = 1
		}
		if p.Name != p.ID {
			jp.Name = p.Name
		}
		out.Places[p.ID] = jp
	}
	places := net.Places()
	for _, t := range net.Transitions() {
		jt := jsonTransition{}
		if t.Name != t.ID {
			jt.Name = t.Name
		}
		out.Transitions[t.ID] = jt
		for _, in := range t.Inputs {
			out.Arcs = append(out.Arcs, jsonArc{Source: places[in].ID, Target: t.ID})
		}
		for _, o := range t.Outputs {
			out.Arcs = append(out.Arcs, jsonArc{Source: t.ID, Target: places[o].ID})
		}
	}
	return json.MarshalIndent(out, "", "  ")
}

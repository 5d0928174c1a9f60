package parser

import (
	"encoding/xml"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/pflow-xyz/go-reach/petri"
)

// PNML node structures. Tags match by local name, which tolerates the
// 2003 and 2009 PNML namespaces as well as namespace-free files. Places
// and transitions may appear directly under <net> or inside <page>
// elements; both layouts occur in the wild.

type pnmlDoc struct {
	XMLName xml.Name  `xml:"pnml"`
	Nets    []pnmlNet `xml:"net"`
}

type pnmlNet struct {
	ID          string           `xml:"id,attr"`
	Name        pnmlText         `xml:"name"`
	Places      []pnmlPlace      `xml:"place"`
	Transitions []pnmlTransition `xml:"transition"`
	Arcs        []pnmlArc        `xml:"arc"`
	Pages       []pnmlPage       `xml:"page"`
}

type pnmlPage struct {
	Places      []pnmlPlace      `xml:"place"`
	Transitions []pnmlTransition `xml:"transition"`
	Arcs        []pnmlArc        `xml:"arc"`
}

type pnmlPlace struct {
	ID             string   `xml:"id,attr"`
	Name           pnmlText `xml:"name"`
	InitialMarking pnmlText `xml:"initialMarking"`
}

type pnmlTransition struct {
	ID   string   `xml:"id,attr"`
	Name pnmlText `xml:"name"`
}

type pnmlArc struct {
	ID          string   `xml:"id,attr"`
	Source      string   `xml:"source,attr"`
	Target      string   `xml:"target,attr"`
	Inscription pnmlText `xml:"inscription"`
}

type pnmlText struct {
	Text string `xml:"text"`
}

func (t pnmlText) value() string { return strings.TrimSpace(t.Text) }

// FromPNML parses a PNML document into a validated net. Place ordinals
// follow sorted place-id order, so the marking layout is deterministic
// regardless of document order.
func FromPNML(data []byte) (*petri.Net, error) {
	var doc pnmlDoc
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse PNML: %w", err)
	}
	if len(doc.Nets) == 0 {
		return nil, fmt.Errorf("%w: no <net> element in PNML document", petri.ErrMalformedNet)
	}
	net := doc.Nets[0]

	places := net.Places
	transitions := net.Transitions
	arcs := net.Arcs
	for _, page := range net.Pages {
		places = append(places, page.Places...)
		transitions = append(transitions, page.Transitions...)
		arcs = append(arcs, page.Arcs...)
	}

	name := net.Name.value()
	if name == "" {
		name = net.ID
	}

	sort.Slice(places, func(i, j int) bool { return places[i].ID < places[j].ID })
	sort.Slice(transitions, func(i, j int) bool { return transitions[i].ID < transitions[j].ID })

	b := petri.Build(name)
	for _, p := range places {
		if p.ID == "" {
			return nil, fmt.Errorf("%w: place element missing id attribute", petri.ErrMalformedNet)
		}
		tokens := 0
		if raw := p.InitialMarking.value(); raw != "" {
			v, err := strconv.Atoi(raw)
			if err != nil {
				return nil, fmt.Errorf("%w: place %q has initial marking %q", petri.ErrMalformedNet, p.ID, raw)
			}
			tokens = v
		}
		displayName := p.Name.value()
		if displayName == "" {
			displayName = p.ID
		}
		b.PlaceNamed(p.ID, displayName, tokens)
	}
	for _, t := range transitions {
		if t.ID == "" {
			return nil, fmt.Errorf("%w: transition element missing id attribute", petri.ErrMalformedNet)
		}
		b.Transition(t.ID)
	}
	for _, a := range arcs {
		if a.Source == "" || a.Target == "" {
			return nil, fmt.Errorf("%w: arc %q missing source or target", petri.ErrMalformedNet, a.ID)
		}
		if raw := a.Inscription.value(); raw != "" {
			w, err := strconv.Atoi(raw)
			if err != nil || w != 1 {
				return nil, fmt.Errorf("%w: arc %s -> %s has weight %q, 1-safe nets are unweighted", petri.ErrMalformedNet, a.Source, a.Target, raw)
			}
		}
		b.Arc(a.Source, a.Target)
	}
	return b.Done()
}

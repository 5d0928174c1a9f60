// Package parser loads 1-safe Petri nets from structural files and
// lowers them to the index-based core model. Two formats are supported:
// PNML (the standard Petri net interchange XML) and a compact JSON
// description. The parser validates what the core cannot: dangling arc
// endpoints, arcs between two places or two transitions, weighted arcs,
// and non-binary initial markings.
package parser

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pflow-xyz/go-reach/petri"
)

// Load reads a net description file, choosing the format by extension:
// .json for the JSON format, anything else (.pnml, .xml) for PNML.
func Load(path string) (*petri.Net, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read net file: %w", err)
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FromJSON(data)
	}
	return FromPNML(data)
}

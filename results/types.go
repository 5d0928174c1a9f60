// Package results defines the structured output format for analyses.
package results

import (
	"time"

	"github.com/google/uuid"

	"github.com/pflow-xyz/go-reach/petri"
)

const SchemaVersion = "1.0.0"

// Report contains complete analysis output.
type Report struct {
	Version      string        `json:"version"`
	Metadata     Metadata      `json:"metadata"`
	Model        Model         `json:"model"`
	Reachability *Reachability `json:"reachability,omitempty"`
	Deadlock     *Deadlock     `json:"deadlock,omitempty"`
	Optimum      *Optimum      `json:"optimum,omitempty"`
}

// Metadata contains analysis execution information.
type Metadata struct {
	RunID       string    `json:"runId"`
	Timestamp   time.Time `json:"timestamp"`
	Task        string    `json:"task"`   // analyze, deadlock, optimize, validate
	Engine      string    `json:"engine"` // explicit, symbolic, both
	Status      string    `json:"status"` // success, error
	Error       string    `json:"error,omitempty"`
	ComputeTime float64   `json:"computeTime"` // seconds
}

// Model summarizes the Petri net structure.
type Model struct {
	Name        string   `json:"name,omitempty"`
	Places      []string `json:"places"`
	Transitions []string `json:"transitions"`
	Arcs        int      `json:"arcs"`
}

// Reachability reports the reachable-set computation.
type Reachability struct {
	States       int  `json:"states"`
	Iterations   int  `json:"iterations,omitempty"` // symbolic fixed-point rounds
	CrossChecked bool `json:"crossChecked,omitempty"`
}

// Deadlock reports the deadlock search outcome. Found=false is a valid
// result, not an error.
type Deadlock struct {
	Found   bool     `json:"found"`
	Marking []int    `json:"marking,omitempty"`
	Places  []string `json:"places,omitempty"` // places holding a token
	Witness []string `json:"witness,omitempty"`
}

// Optimum reports the objective optimization outcome.
type Optimum struct {
	Direction string    `json:"direction"`
	Weights   []float64 `json:"weights"`
	Marking   []int     `json:"marking"`
	Value     float64   `json:"value"`
}

// New creates a report skeleton for the given net and task.
func New(net *petri.Net, task, engine string) *Report {
	return &Report{
		Version: SchemaVersion,
		Metadata: Metadata{
			RunID:     uuid.NewString(),
			Timestamp: time.Now().UTC(),
			Task:      task,
			Engine:    engine,
			Status:    "success",
		},
		Model: Model{
			Name:        net.Name(),
			Places:      net.PlaceIDs(),
			Transitions: net.TransitionIDs(),
			Arcs:        net.ArcCount(),
		},
	}
}

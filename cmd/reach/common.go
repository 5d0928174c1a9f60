package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/pflow-xyz/go-reach/parser"
	"github.com/pflow-xyz/go-reach/petri"
	"github.com/pflow-xyz/go-reach/reach"
	"github.com/pflow-xyz/go-reach/results"
	"github.com/pflow-xyz/go-reach/runlog"
	"github.com/pflow-xyz/go-reach/symbolic"
)

// newLogger returns a console logger for diagnostics. Non-verbose runs
// only show warnings so report output stays clean on stdout.
func newLogger(verbose bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}

// loadNet reads a net model from a JSON or PNML file.
func loadNet(path string) (*petri.Net, error) {
	net, err := parser.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load net: %w", err)
	}
	return net, nil
}

// stateSpace couples a reachable set with the information only some
// engines produce: a witness-capable state space, fixed-point rounds,
// and whether the two engines were checked against each other.
type stateSpace struct {
	set          reach.Set
	space        *reach.StateSpace // nil for pure symbolic runs
	iterations   int               // 0 for pure explicit runs
	crossChecked bool
}

// buildSet computes the reachable set with the requested engine.
// Engine "both" runs explicit and symbolic and verifies they agree,
// returning the explicit space so witnesses stay available.
func buildSet(net *petri.Net, engine string, limit int, log zerolog.Logger) (stateSpace, error) {
	if limit <= 0 {
		limit = reach.DefaultLimit
	}
	switch engine {
	case "explicit":
		start := time.Now()
		space, err := reach.NewExplorer(net).WithLimit(limit).Explore()
		if err != nil {
			return stateSpace{}, err
		}
		log.Debug().Int("states", space.Size()).
			Dur("elapsed", time.Since(start)).
			Msg("explicit exploration complete")
		return stateSpace{set: space, space: space}, nil

	case "symbolic":
		start := time.Now()
		// A monotone fixed point needs at most one round per admitted
		// state, so the user's ceiling bounds both.
		set, err := symbolic.NewBuilder(net).
			WithLimit(limit).
			WithMaxIterations(limit).
			Build()
		if err != nil {
			return stateSpace{}, err
		}
		log.Debug().Int("states", set.Size()).
			Int("iterations", set.Iterations()).
			Dur("elapsed", time.Since(start)).
			Msg("symbolic fixed point complete")
		return stateSpace{set: set, iterations: set.Iterations()}, nil

	case "both":
		explicit, err := buildSet(net, "explicit", limit, log)
		if err != nil {
			return stateSpace{}, err
		}
		sym, err := buildSet(net, "symbolic", limit, log)
		if err != nil {
			return stateSpace{}, err
		}
		if err := crossCheck(explicit.space, sym.set); err != nil {
			return stateSpace{}, err
		}
		log.Debug().Msg("engines agree")
		return stateSpace{
			set:          explicit.space,
			space:        explicit.space,
			iterations:   sym.iterations,
			crossChecked: true,
		}, nil

	default:
		return stateSpace{}, fmt.Errorf("unknown engine %q (want explicit, symbolic, or both)", engine)
	}
}

// crossCheck verifies two reachable sets hold the same markings.
func crossCheck(explicit *reach.StateSpace, sym reach.Set) error {
	if explicit.Size() != sym.Size() {
		return fmt.Errorf("engine disagreement: explicit found %d states, symbolic found %d",
			explicit.Size(), sym.Size())
	}
	for m := range explicit.All() {
		if !sym.Contains(m) {
			return fmt.Errorf("engine disagreement: %s reached explicitly but absent symbolically", m)
		}
	}
	return nil
}

// parseWeights parses a comma-separated weight vector and checks its
// length against the place count.
func parseWeights(s string, places int) ([]float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != places {
		return nil, fmt.Errorf("expected %d weights, got %d", places, len(parts))
	}
	weights := make([]float64, len(parts))
	for i, p := range parts {
		w, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("weight %d: %w", i, err)
		}
		weights[i] = w
	}
	return weights, nil
}

// transitionNames maps a firing sequence to transition ids.
func transitionNames(net *petri.Net, path []int) []string {
	ids := net.TransitionIDs()
	names := make([]string, len(path))
	for i, t := range path {
		names[i] = ids[t]
	}
	return names
}

// markedPlaces lists the ids of places holding a token in m.
func markedPlaces(net *petri.Net, ints []int) []string {
	var marked []string
	for i, v := range ints {
		if v == 1 {
			marked = append(marked, net.PlaceIDs()[i])
		}
	}
	return marked
}

// finishReport stamps timing, optionally writes the report to a JSON
// file, and appends the run to the history database when one is given.
func finishReport(report *results.Report, start time.Time, jsonOut, logPath, netPath string) error {
	report.Metadata.ComputeTime = time.Since(start).Seconds()

	if jsonOut != "" {
		if err := report.WriteFile(jsonOut); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Report written to %s\n", jsonOut)
	}

	if logPath != "" {
		store, err := runlog.Open(logPath)
		if err != nil {
			return fmt.Errorf("open run log: %w", err)
		}
		defer store.Close()

		run := runlog.Run{
			ID:        report.Metadata.RunID,
			Net:       netPath,
			Task:      report.Metadata.Task,
			Engine:    report.Metadata.Engine,
			Duration:  report.Metadata.ComputeTime,
			Status:    report.Metadata.Status,
			Detail:    report.Metadata.Error,
			StartedAt: report.Metadata.Timestamp,
		}
		if report.Reachability != nil {
			run.States = report.Reachability.States
		}
		if err := store.Append(run); err != nil {
			return fmt.Errorf("append run log: %w", err)
		}
	}
	return nil
}

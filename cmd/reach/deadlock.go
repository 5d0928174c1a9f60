package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pflow-xyz/go-reach/analysis"
	"github.com/pflow-xyz/go-reach/results"
)

func deadlock(args []string) error {
	fs := flag.NewFlagSet("deadlock", flag.ExitOnError)
	engine := fs.String("engine", "both", "Reachability engine: explicit, symbolic, or both")
	limit := fs.Int("limit", 0, "State ceiling (0 uses the default)")
	jsonOut := fs.String("json", "", "Write full report to JSON file")
	logPath := fs.String("log", "", "Append this run to a SQLite history database")
	verbose := fs.Bool("v", false, "Verbose diagnostics")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: reach deadlock <net.json|net.pnml> [options]

Search the reachable markings for one where no transition is enabled.
Finding none is a valid result, not an error.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # Search for a deadlock with a firing witness
  reach deadlock model.json

  # Symbolic search (no witness sequence available)
  reach deadlock model.pnml --engine symbolic
`)
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return fmt.Errorf("net file required")
	}

	return dispatch(deadlockTask{
		setOptions: setOptions{
			netPath: fs.Arg(0),
			engine:  *engine,
			limit:   *limit,
			jsonOut: *jsonOut,
			logPath: *logPath,
			verbose: *verbose,
		},
	})
}

func runDeadlock(t deadlockTask) error {
	log := newLogger(t.verbose)
	start := time.Now()

	net, err := loadNet(t.netPath)
	if err != nil {
		return err
	}

	ss, err := buildSet(net, t.engine, t.limit, log)
	if err != nil {
		return err
	}

	report := results.New(net, "deadlock", t.engine)
	report.Reachability = &results.Reachability{
		States:       ss.set.Size(),
		Iterations:   ss.iterations,
		CrossChecked: ss.crossChecked,
	}

	dead, found := analysis.FindDeadlock(net, ss.set)
	section := &results.Deadlock{Found: found}
	if found {
		section.Marking = dead.Ints()
		section.Places = markedPlaces(net, dead.Ints())
		if ss.space != nil {
			if path, ok := ss.space.PathTo(dead); ok {
				section.Witness = transitionNames(net, path)
			}
		}
	}
	report.Deadlock = section
	if err := finishReport(report, start, t.jsonOut, t.logPath, t.netPath); err != nil {
		return err
	}

	fmt.Printf("=== Deadlock: %s ===\n\n", net.Name())
	fmt.Printf("States searched: %d\n", ss.set.Size())
	if !found {
		fmt.Println("No deadlock: every reachable marking enables a transition")
		return nil
	}
	fmt.Printf("Deadlock found:  %s\n", dead)
	if len(section.Places) > 0 {
		fmt.Printf("Marked places:   %s\n", strings.Join(section.Places, ", "))
	}
	if section.Witness != nil {
		if len(section.Witness) == 0 {
			fmt.Println("Witness:         initial marking is dead")
		} else {
			fmt.Printf("Witness:         %s\n", strings.Join(section.Witness, " -> "))
		}
	}
	return nil
}

package main

import (
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "analyze":
		if err := analyze(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "deadlock":
		if err := deadlock(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "optimize":
		if err := optimize(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "validate":
		if err := validate(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "runs":
		if err := runs(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "help", "-h", "--help":
		printUsage()
	case "version", "-v", "--version":
		fmt.Println("reach version 1.0.0")
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`reach - 1-safe Petri net reachability analyzer

Usage:
  reach <command> [options]

Commands:
  analyze    Compute the reachable state space of a net
  deadlock   Search the reachable states for a deadlock
  optimize   Optimize a linear objective over reachable markings
  validate   Validate net structure
  runs       Show recent analysis runs
  help       Show this help message
  version    Show version information

Examples:
  # Count reachable states with both engines cross-checked
  reach analyze model.json --engine both

  # Find a deadlock and its firing witness
  reach deadlock model.pnml

  # Maximize 3*p0 + 2*p1 + p2 over reachable markings
  reach optimize model.json --weights 3,2,1

  # Save a full report
  reach analyze model.json --json report.json

For command-specific help, run:
  reach <command> --help`)
}

package main

import "fmt"

// The four analysis kinds form a closed set of task variants, each
// carrying its own typed parameters. Subcommands only parse flags into
// a variant; dispatch routes it to the implementation by exhaustive
// type switch, so adding a kind without handling it fails loudly.

type task interface{ isTask() }

// setOptions are the parameters shared by every task that computes a
// reachable set.
type setOptions struct {
	netPath string
	engine  string // explicit, symbolic, both
	limit   int    // 0 means default
	jsonOut string
	logPath string
	verbose bool
}

type analyzeTask struct {
	setOptions
	list bool
}

type deadlockTask struct {
	setOptions
}

type optimizeTask struct {
	setOptions
	rawWeights string // parsed against the place count after loading
	minimize   bool
}

type validateTask struct {
	netPath string
	verbose bool
}

func (analyzeTask) isTask()  {}
func (deadlockTask) isTask() {}
func (optimizeTask) isTask() {}
func (validateTask) isTask() {}

func dispatch(t task) error {
	switch t := t.(type) {
	case analyzeTask:
		return runAnalyze(t)
	case deadlockTask:
		return runDeadlock(t)
	case optimizeTask:
		return runOptimize(t)
	case validateTask:
		return runValidate(t)
	default:
		panic(fmt.Sprintf("unhandled task variant %T", t))
	}
}

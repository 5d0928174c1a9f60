package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/pflow-xyz/go-reach/runlog"
)

func runs(args []string) error {
	fs := flag.NewFlagSet("runs", flag.ExitOnError)
	logPath := fs.String("log", "reach.db", "SQLite history database")
	limit := fs.Int("n", 20, "Number of runs to show")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: reach runs [options]

Show recent analysis runs recorded with --log.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	store, err := runlog.Open(*logPath)
	if err != nil {
		return err
	}
	defer store.Close()

	recent, err := store.Recent(*limit)
	if err != nil {
		return err
	}
	if len(recent) == 0 {
		fmt.Println("No recorded runs.")
		return nil
	}

	fmt.Printf("%-20s %-10s %-9s %-8s %10s  %s\n",
		"STARTED", "TASK", "ENGINE", "STATES", "ELAPSED", "NET")
	for _, r := range recent {
		status := ""
		if r.Status != "success" {
			status = "  [" + r.Status + "]"
		}
		fmt.Printf("%-20s %-10s %-9s %-8d %9.3fs  %s%s\n",
			r.StartedAt.Format("2006-01-02 15:04:05"),
			r.Task, r.Engine, r.States, r.Duration, r.Net, status)
	}
	return nil
}

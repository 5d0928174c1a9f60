package runlog_test

import (
	"testing"
	"time"

	"github.com/pflow-xyz/go-reach/runlog"
)

func TestAppendAndRecent(t *testing.T) {
	store, err := runlog.Open(":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	runs := []runlog.Run{
		{ID: "run-1", Net: "line", Task: "analyze", Engine: "explicit", States: 3, Duration: 0.01, Status: "success", StartedAt: base},
		{ID: "run-2", Net: "mutex", Task: "deadlock", Engine: "symbolic", States: 3, Duration: 0.02, Status: "success", StartedAt: base.Add(time.Minute)},
		{ID: "run-3", Net: "line", Task: "optimize", Engine: "both", Status: "error", Detail: "state limit exceeded", StartedAt: base.Add(2 * time.Minute)},
	}
	for _, r := range runs {
		if err := store.Append(r); err != nil {
			t.Fatalf("append %s: %v", r.ID, err)
		}
	}

	recent, err := store.Recent(10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("expected 3 runs, got %d", len(recent))
	}
	if recent[0].ID != "run-3" || recent[2].ID != "run-1" {
		t.Errorf("wrong order: %s, %s, %s", recent[0].ID, recent[1].ID, recent[2].ID)
	}
	if recent[0].Detail != "state limit exceeded" {
		t.Errorf("detail lost: %q", recent[0].Detail)
	}
	if recent[2].States != 3 || recent[2].Engine != "explicit" {
		t.Errorf("fields lost: %+v", recent[2])
	}
}

func TestRecentLimit(t *testing.T) {
	store, err := runlog.Open(":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		run := runlog.Run{
			ID:        string(rune('a' + i)),
			Net:       "line",
			Task:      "analyze",
			Engine:    "explicit",
			Status:    "success",
			StartedAt: base.Add(time.Duration(i) * time.Second),
		}
		if err := store.Append(run); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	recent, err := store.Recent(2)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(recent) != 2 {
		t.Errorf("expected 2 runs, got %d", len(recent))
	}
}

func TestRecentEmpty(t *testing.T) {
	store, err := runlog.Open(":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()

	recent, err := store.Recent(10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(recent) != 0 {
		t.Errorf("expected no runs, got %d", len(recent))
	}
}

func TestDuplicateIDRejected(t *testing.T) {
	store, err := runlog.Open(":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()

	run := runlog.Run{ID: "run-1", Net: "line", Task: "analyze", Engine: "explicit", Status: "success", StartedAt: time.Now()}
	if err := store.Append(run); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := store.Append(run); err == nil {
		t.Error("expected error for duplicate run id")
	}
}

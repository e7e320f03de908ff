package storage

import (
	"context"
	"testing"

	"oncosim/internal/model"
	"oncosim/internal/search"
	"oncosim/internal/trajectory"
)

func sampleTrajectoryRun(runID, createdAt string) model.TrajectoryRun {
	return model.TrajectoryRun{
		VersionedRecord: Stamp(),
		RunID:           runID,
		CreatedAtUTC:    createdAt,
		Config:          model.TrajectoryConfig{Days: 3, DT: 1, Lambda: 0.0154, Seed: "123456789", Threshold: 0.5},
		Samples: []trajectory.Sample{
			{Step: 0, Time: 0, State: 0.89, Impulse: 0.1, Memory: 0, PRNGState: 123456789},
			{Step: 1, Time: 1, State: 1.0, Impulse: 0.6, Memory: 0.11, PRNGState: 42},
		},
		Events:         []trajectory.Event{{Step: 1, Time: 1, Impulse: 0.6, PRNGState: 42}},
		MappedResidues: []int{43},
	}
}

func sampleSearchRun(runID, createdAt string) model.SearchRun {
	return model.SearchRun{
		VersionedRecord: Stamp(),
		RunID:           runID,
		CreatedAtUTC:    createdAt,
		Config:          model.SearchConfig{DNA: search.DefaultDNA, Iterations: 10, Threshold: 0.02, BaseSeed: 7},
		Result: search.Result{
			OriginalProtein: "CARDSSNWFAY",
			OriginalScore:   0.3,
			BestProtein:     "CARDSSNWFAW",
			BestScore:       0.8,
			History: []search.Record{
				{Iteration: 2, DNA: "TGT", Protein: "C", Score: 0.8},
			},
		},
	}
}

func TestMemoryStoreTrajectoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	if err := store.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}

	input := sampleTrajectoryRun("run-1", "2026-01-01T00:00:00Z")
	if err := store.SaveTrajectoryRun(ctx, input); err != nil {
		t.Fatalf("save trajectory run: %v", err)
	}

	output, ok, err := store.GetTrajectoryRun(ctx, "run-1")
	if err != nil {
		t.Fatalf("get trajectory run: %v", err)
	}
	if !ok {
		t.Fatal("expected persisted run")
	}
	if len(output.Samples) != 2 || output.Samples[0].State != 0.89 {
		t.Fatalf("unexpected samples: %+v", output.Samples)
	}
	if len(output.Events) != 1 || output.Events[0].PRNGState != 42 {
		t.Fatalf("unexpected events: %+v", output.Events)
	}
}

func TestMemoryStoreSearchRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	if err := store.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}

	if err := store.SaveSearchRun(ctx, sampleSearchRun("run-s", "2026-01-01T00:00:00Z")); err != nil {
		t.Fatalf("save search run: %v", err)
	}

	output, ok, err := store.GetSearchRun(ctx, "run-s")
	if err != nil {
		t.Fatalf("get search run: %v", err)
	}
	if !ok {
		t.Fatal("expected persisted run")
	}
	if output.Result.BestProtein != "CARDSSNWFAW" || len(output.Result.History) != 1 {
		t.Fatalf("unexpected result: %+v", output.Result)
	}
}

func TestMemoryStoreListRunsNewestFirst(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	if err := store.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}

	if err := store.SaveTrajectoryRun(ctx, sampleTrajectoryRun("run-1", "2026-01-01T00:00:00Z")); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.SaveSearchRun(ctx, sampleSearchRun("run-2", "2026-01-02T00:00:00Z")); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.SaveTrajectoryRun(ctx, sampleTrajectoryRun("run-3", "2026-01-03T00:00:00Z")); err != nil {
		t.Fatalf("save: %v", err)
	}

	entries, err := store.ListRuns(ctx, 0)
	if err != nil {
		t.Fatalf("list runs: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("entry count = %d, want 3", len(entries))
	}
	if entries[0].RunID != "run-3" || entries[2].RunID != "run-1" {
		t.Fatalf("unexpected order: %+v", entries)
	}
	if entries[1].Kind != model.RunKindSearch || entries[1].BestScore != 0.8 {
		t.Fatalf("unexpected search entry: %+v", entries[1])
	}

	limited, err := store.ListRuns(ctx, 2)
	if err != nil {
		t.Fatalf("list runs limited: %v", err)
	}
	if len(limited) != 2 || limited[0].RunID != "run-3" {
		t.Fatalf("unexpected limited listing: %+v", limited)
	}
}

func TestMemoryStoreResaveReplacesIndexEntry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	if err := store.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}

	if err := store.SaveTrajectoryRun(ctx, sampleTrajectoryRun("run-1", "2026-01-01T00:00:00Z")); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.SaveTrajectoryRun(ctx, sampleTrajectoryRun("run-1", "2026-01-05T00:00:00Z")); err != nil {
		t.Fatalf("resave: %v", err)
	}

	entries, err := store.ListRuns(ctx, 0)
	if err != nil {
		t.Fatalf("list runs: %v", err)
	}
	if len(entries) != 1 || entries[0].CreatedAtUTC != "2026-01-05T00:00:00Z" {
		t.Fatalf("resave did not replace index entry: %+v", entries)
	}
}

func TestMemoryStoreReset(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	if err := store.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}
	if err := store.SaveSearchRun(ctx, sampleSearchRun("run-s", "2026-01-01T00:00:00Z")); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if _, ok, _ := store.GetSearchRun(ctx, "run-s"); ok {
		t.Fatal("run survived reset")
	}
	entries, err := store.ListRuns(ctx, 0)
	if err != nil {
		t.Fatalf("list runs: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("index survived reset: %+v", entries)
	}
}

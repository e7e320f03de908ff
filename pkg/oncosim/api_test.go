package oncosim

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"oncosim/internal/model"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	client, err := New(Options{StoreKind: "memory", ArtifactsDir: filepath.Join(t.TempDir(), "artifacts")})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	t.Cleanup(func() {
		_ = client.Close()
	})
	return client
}

func TestSimulateEndToEnd(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)

	summary, err := client.Simulate(ctx, SimulateRequest{
		Days:      365,
		Lambda:    0.0154,
		Seed:      "123456789",
		Threshold: 0.2,
	})
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	if len(summary.Samples) != 365 {
		t.Fatalf("sample count = %d, want 365", len(summary.Samples))
	}
	if summary.Samples[0].State != 0.89 {
		t.Fatalf("initial state = %v, want 0.89", summary.Samples[0].State)
	}
	if len(summary.MappedResidues) != len(summary.Events) {
		t.Fatalf("residues/events mismatch: %d vs %d", len(summary.MappedResidues), len(summary.Events))
	}
	for _, residue := range summary.MappedResidues {
		if residue < 1 || residue > 393 {
			t.Fatalf("residue %d out of [1,393]", residue)
		}
	}

	for _, name := range []string{"config.json", "trajectory.csv", "events.json"} {
		if _, err := os.Stat(filepath.Join(summary.ArtifactsDir, name)); err != nil {
			t.Fatalf("missing artifact %s: %v", name, err)
		}
	}

	stored, ok, err := client.store.GetTrajectoryRun(ctx, summary.RunID)
	if err != nil || !ok {
		t.Fatalf("persisted run lookup: ok=%v err=%v", ok, err)
	}
	if len(stored.Samples) != 365 {
		t.Fatalf("persisted sample count = %d", len(stored.Samples))
	}
}

func TestSimulateNoOpForNonPositiveDays(t *testing.T) {
	client := newTestClient(t)
	summary, err := client.Simulate(context.Background(), SimulateRequest{Days: 0, Seed: "1"})
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	if summary.RunID != "" || len(summary.Samples) != 0 {
		t.Fatalf("expected empty summary, got %+v", summary)
	}
}

func TestSimulateResolvesLambdaFromTumorProfile(t *testing.T) {
	client := newTestClient(t)
	summary, err := client.Simulate(context.Background(), SimulateRequest{
		Days:      5,
		Seed:      "1",
		TumorType: "prostata",
		Stage:     1,
	})
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	if summary.Lambda != 0.00385 {
		t.Fatalf("resolved lambda = %v, want 0.00385", summary.Lambda)
	}
}

func TestSearchEndToEnd(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)

	summary, err := client.Search(ctx, SearchRequest{Iterations: 200})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if summary.DNA == "" || summary.Result.OriginalProtein != "CARDSSNWFAY" {
		t.Fatalf("unexpected baseline: %+v", summary.Result)
	}
	if summary.Result.BestScore < summary.Result.OriginalScore {
		t.Fatalf("best %v below baseline %v", summary.Result.BestScore, summary.Result.OriginalScore)
	}

	for _, name := range []string{"config.json", "result.json"} {
		if _, err := os.Stat(filepath.Join(summary.ArtifactsDir, name)); err != nil {
			t.Fatalf("missing artifact %s: %v", name, err)
		}
	}

	stored, ok, err := client.store.GetSearchRun(ctx, summary.RunID)
	if err != nil || !ok {
		t.Fatalf("persisted run lookup: ok=%v err=%v", ok, err)
	}
	if stored.Result.BestProtein != summary.Result.BestProtein {
		t.Fatalf("persisted best %q != %q", stored.Result.BestProtein, summary.Result.BestProtein)
	}
}

func TestSearchReadsFASTAFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.fasta")
	if err := os.WriteFile(path, []byte(">epitope\natgatgtaa\n"), 0o644); err != nil {
		t.Fatalf("write fasta: %v", err)
	}

	client := newTestClient(t)
	summary, err := client.Search(context.Background(), SearchRequest{Iterations: 5, DNAFile: path})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if summary.DNA != "ATGATGTAA" {
		t.Fatalf("dna = %q, want ATGATGTAA", summary.DNA)
	}
	if summary.Result.OriginalProtein != "MM" {
		t.Fatalf("baseline = %q, want MM", summary.Result.OriginalProtein)
	}
}

func TestRunsListing(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)

	if _, err := client.Simulate(ctx, SimulateRequest{Days: 3, Seed: "1"}); err != nil {
		t.Fatalf("simulate: %v", err)
	}
	if _, err := client.Search(ctx, SearchRequest{Iterations: 3}); err != nil {
		t.Fatalf("search: %v", err)
	}

	entries, err := client.Runs(ctx, RunsRequest{})
	if err != nil {
		t.Fatalf("runs: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entry count = %d, want 2", len(entries))
	}
	if entries[0].Kind != model.RunKindSearch || entries[1].Kind != model.RunKindTrajectory {
		t.Fatalf("unexpected kinds: %+v", entries)
	}
}

func TestRunIDSeedSanitization(t *testing.T) {
	if got := runIDSeed("patient #1/alpha"); got != "patient__1_alpha" {
		t.Fatalf("sanitized seed = %q", got)
	}
	if got := runIDSeed(""); got != "default" {
		t.Fatalf("empty seed = %q", got)
	}
}

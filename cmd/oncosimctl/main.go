package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"oncosim/internal/stats"
	"oncosim/internal/storage"
	"oncosim/pkg/oncosim"
)

func main() {
	if err := run(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usageError("missing command")
	}

	switch args[0] {
	case "init":
		return runInit(ctx, args[1:])
	case "reset":
		return runReset(ctx, args[1:])
	case "simulate":
		return runSimulate(ctx, args[1:])
	case "search":
		return runSearch(ctx, args[1:])
	case "runs":
		return runRuns(ctx, args[1:])
	default:
		return usageError(fmt.Sprintf("unknown command: %s", args[0]))
	}
}

func usageError(msg string) error {
	return fmt.Errorf("%s\nusage: oncosimctl <init|reset|simulate|search|runs> [flags]", msg)
}

func addStoreFlags(fs *flag.FlagSet) (storeKind, dbPath, artifactsDir *string) {
	storeKind = fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath = fs.String("db-path", "oncosim.db", "sqlite database path")
	artifactsDir = fs.String("artifacts-dir", "artifacts", "run artifacts directory")
	return storeKind, dbPath, artifactsDir
}

func newClient(storeKind, dbPath, artifactsDir string) (*oncosim.Client, error) {
	return oncosim.New(oncosim.Options{
		StoreKind:    storeKind,
		DBPath:       dbPath,
		ArtifactsDir: artifactsDir,
	})
}

func runInit(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	storeKind, dbPath, artifactsDir := addStoreFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := newClient(*storeKind, *dbPath, *artifactsDir)
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	if err := client.InitStore(ctx); err != nil {
		return err
	}
	fmt.Printf("initialized store=%s\n", *storeKind)
	return nil
}

func runReset(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("reset", flag.ContinueOnError)
	storeKind, dbPath, artifactsDir := addStoreFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := newClient(*storeKind, *dbPath, *artifactsDir)
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	if err := client.ResetStore(ctx); err != nil {
		return err
	}
	fmt.Printf("reset store=%s\n", *storeKind)
	return nil
}

func runSimulate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("simulate", flag.ContinueOnError)
	storeKind, dbPath, artifactsDir := addStoreFlags(fs)
	days := fs.Int("days", 365, "number of days/steps to simulate")
	dt := fs.Float64("dt", 1, "discretization step")
	lambda := fs.Float64("lambda", 0, "decay rate; 0 resolves from tumor profile or default")
	seed := fs.String("seed", "123456789", "biological seed (integer or string)")
	threshold := fs.Float64("threshold", oncosim.DefaultDetectionThreshold, "impulse threshold for event detection")
	a := fs.Uint64("a", 0, "generator multiplier (0 = reference default)")
	c := fs.Uint64("c", 0, "generator increment (0 = reference default)")
	m := fs.Uint64("m", 0, "generator modulus (0 = reference default)")
	tumorType := fs.String("tumor-type", "", "tumor type for lambda resolution (prostata|mama|pancreas)")
	stage := fs.Int("stage", 0, "tumor stage 1-4")
	alpha := fs.Float64("alpha", 0, "severity coefficient for lambda resolution")
	proteinLength := fs.Int("protein-length", 393, "protein length for event residue mapping")
	mappingOffset := fs.Int64("mapping-offset", 0, "offset added before residue mapping")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := newClient(*storeKind, *dbPath, *artifactsDir)
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	summary, err := client.Simulate(ctx, oncosim.SimulateRequest{
		Days:          *days,
		DT:            *dt,
		Lambda:        *lambda,
		Seed:          *seed,
		Threshold:     *threshold,
		A:             *a,
		C:             *c,
		M:             *m,
		TumorType:     *tumorType,
		Stage:         *stage,
		Alpha:         *alpha,
		ProteinLength: *proteinLength,
		MappingOffset: *mappingOffset,
	})
	if err != nil {
		return err
	}
	if summary.RunID == "" {
		fmt.Println("no steps simulated")
		return nil
	}

	fmt.Printf("run %s: %d samples, %d events (lambda=%g threshold=%g)\n",
		summary.RunID, len(summary.Samples), len(summary.Events), summary.Lambda, *threshold)
	for i, ev := range summary.Events {
		fmt.Printf("  event step=%d time=%g impulse=%.4f state=%d residue=%d\n",
			ev.Step, ev.Time, ev.Impulse, ev.PRNGState, summary.MappedResidues[i])
	}
	fmt.Printf("artifacts: %s\n", summary.ArtifactsDir)
	return nil
}

func runSearch(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("search", flag.ContinueOnError)
	storeKind, dbPath, artifactsDir := addStoreFlags(fs)
	iterations := fs.Int("n", 100, "mutation iterations")
	dna := fs.String("dna", "", "inline DNA sequence (default: reference epitope)")
	dnaFile := fs.String("dna-file", "", "FASTA file; first sequence is used")
	contextTag := fs.String("context", "", "tumor context tag (e.g. leucemia)")
	modelPath := fs.String("model", "", "scoring model artifact path (JSON)")
	threshold := fs.Float64("threshold", 0, "per-position mutation probability (0 = default)")
	baseSeed := fs.Uint64("seed", 0, "base mutation seed (default derives from the sequence)")
	hasSeed := fs.Bool("explicit-seed", false, "use -seed instead of deriving from the sequence")
	out := fs.String("out", "", "optional path for the result JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := newClient(*storeKind, *dbPath, *artifactsDir)
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	summary, err := client.Search(ctx, oncosim.SearchRequest{
		DNA:         *dna,
		DNAFile:     *dnaFile,
		Iterations:  *iterations,
		Context:     *contextTag,
		ModelPath:   *modelPath,
		Threshold:   *threshold,
		BaseSeed:    *baseSeed,
		HasBaseSeed: *hasSeed,
	})
	if err != nil {
		return err
	}

	res := summary.Result
	fmt.Printf("run %s: baseline %q (%.3f) -> best %q (%.3f), %d retained mutants\n",
		summary.RunID, res.OriginalProtein, res.OriginalScore, res.BestProtein, res.BestScore, len(res.History))
	fmt.Printf("artifacts: %s\n", summary.ArtifactsDir)

	if *out != "" {
		if err := stats.WriteResultJSON(*out, res); err != nil {
			return fmt.Errorf("write result json: %w", err)
		}
		fmt.Printf("result: %s\n", *out)
	}
	return nil
}

func runRuns(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("runs", flag.ContinueOnError)
	storeKind, dbPath, artifactsDir := addStoreFlags(fs)
	limit := fs.Int("limit", 20, "maximum entries to list (0 = all)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := newClient(*storeKind, *dbPath, *artifactsDir)
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	entries, err := client.Runs(ctx, oncosim.RunsRequest{Limit: *limit})
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("no runs recorded")
		return nil
	}
	for _, entry := range entries {
		switch entry.Kind {
		case "search":
			fmt.Printf("%s  %s  seed=%s steps=%d best=%.3f  %s\n",
				entry.RunID, entry.Kind, entry.Seed, entry.Steps, entry.BestScore, entry.CreatedAtUTC)
		default:
			fmt.Printf("%s  %s  seed=%s steps=%d events=%d  %s\n",
				entry.RunID, entry.Kind, entry.Seed, entry.Steps, entry.Events, entry.CreatedAtUTC)
		}
	}
	return nil
}

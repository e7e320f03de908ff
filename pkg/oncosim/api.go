package oncosim

import (
	"context"
	"fmt"
	"strings"
	"time"

	"oncosim/internal/genome"
	"oncosim/internal/model"
	"oncosim/internal/rng"
	"oncosim/internal/scoring"
	"oncosim/internal/search"
	"oncosim/internal/stats"
	"oncosim/internal/storage"
	"oncosim/internal/trajectory"
)

const (
	defaultArtifactsDir = "artifacts"
	defaultDBPath       = "oncosim.db"

	// DefaultDetectionThreshold is the reference event-detection cutoff.
	DefaultDetectionThreshold = 0.2
)

type Options struct {
	StoreKind    string
	DBPath       string
	ArtifactsDir string
}

type Client struct {
	store        storage.Store
	artifactsDir string
	initialized  bool
}

func New(opts Options) (*Client, error) {
	kind := opts.StoreKind
	if kind == "" {
		kind = storage.DefaultStoreKind()
	}
	dbPath := opts.DBPath
	if dbPath == "" {
		dbPath = defaultDBPath
	}
	artifactsDir := opts.ArtifactsDir
	if artifactsDir == "" {
		artifactsDir = defaultArtifactsDir
	}

	store, err := storage.NewStore(kind, dbPath)
	if err != nil {
		return nil, err
	}
	return &Client{store: store, artifactsDir: artifactsDir}, nil
}

func (c *Client) Close() error {
	return storage.CloseIfSupported(c.store)
}

// InitStore prepares the configured backend.
func (c *Client) InitStore(ctx context.Context) error {
	if err := c.store.Init(ctx); err != nil {
		return err
	}
	c.initialized = true
	return nil
}

// ResetStore drops all persisted runs.
func (c *Client) ResetStore(ctx context.Context) error {
	if err := c.ensureStore(ctx); err != nil {
		return err
	}
	return c.store.Reset(ctx)
}

func (c *Client) ensureStore(ctx context.Context) error {
	if c.initialized {
		return nil
	}
	return c.InitStore(ctx)
}

type SimulateRequest struct {
	Days      int
	DT        float64
	Lambda    float64
	Seed      string
	Threshold float64
	A, C, M   uint64

	// TumorType/Stage/Alpha resolve Lambda from the clinical table when
	// Lambda itself is zero.
	TumorType string
	Stage     int
	Alpha     float64

	ProteinLength int
	MappingOffset int64
}

type SimulateSummary struct {
	RunID          string
	ArtifactsDir   string
	Lambda         float64
	Samples        []trajectory.Sample
	Events         []trajectory.Event
	MappedResidues []int
}

// Simulate runs the trajectory recurrence with event detection, persists the
// run and writes its artifacts. Days <= 0 is a no-op returning an empty
// summary.
func (c *Client) Simulate(ctx context.Context, req SimulateRequest) (SimulateSummary, error) {
	if req.Days <= 0 {
		return SimulateSummary{}, nil
	}
	if err := c.ensureStore(ctx); err != nil {
		return SimulateSummary{}, err
	}

	if req.DT == 0 {
		req.DT = 1
	}
	if req.Lambda == 0 {
		if req.TumorType != "" || req.Alpha > 0 {
			req.Lambda = trajectory.LambdaForTumor(req.TumorType, req.Stage, req.Alpha)
		} else {
			req.Lambda = trajectory.DefaultLambda
		}
	}
	if req.Threshold == 0 {
		req.Threshold = DefaultDetectionThreshold
	}
	if req.A == 0 && req.C == 0 && req.M == 0 {
		req.A, req.C, req.M = rng.TrajectoryA, rng.TrajectoryC, rng.TrajectoryM
	}
	if req.ProteinLength <= 0 {
		req.ProteinLength = trajectory.DefaultProteinLength
	}

	samples := trajectory.Run(trajectory.Config{
		Days:   req.Days,
		DT:     req.DT,
		Lambda: req.Lambda,
		Seed:   req.Seed,
		A:      req.A,
		C:      req.C,
		M:      req.M,
	})
	events := trajectory.Detect(samples, req.Threshold)
	residues := make([]int, len(events))
	for i, ev := range events {
		residues[i] = trajectory.MapStateToResidue(ev.PRNGState, req.ProteinLength, req.MappingOffset)
	}

	now := time.Now().UTC()
	runID := fmt.Sprintf("traj-%s-%d", runIDSeed(req.Seed), now.Unix())
	cfg := model.TrajectoryConfig{
		Days:          req.Days,
		DT:            req.DT,
		Lambda:        req.Lambda,
		Seed:          req.Seed,
		Threshold:     req.Threshold,
		A:             req.A,
		C:             req.C,
		M:             req.M,
		ProteinLength: req.ProteinLength,
		MappingOffset: req.MappingOffset,
	}

	run := model.TrajectoryRun{
		VersionedRecord: storage.Stamp(),
		RunID:           runID,
		CreatedAtUTC:    now.Format(time.RFC3339),
		Config:          cfg,
		Samples:         samples,
		Events:          events,
		MappedResidues:  residues,
	}
	if err := c.store.SaveTrajectoryRun(ctx, run); err != nil {
		return SimulateSummary{}, err
	}

	runDir, err := stats.WriteTrajectoryArtifacts(c.artifactsDir, runID, stats.TrajectoryArtifacts{
		Config:         cfg,
		Samples:        samples,
		Events:         events,
		MappedResidues: residues,
	})
	if err != nil {
		return SimulateSummary{}, err
	}
	if err := stats.AppendRunIndex(c.artifactsDir, storage.TrajectoryIndexEntry(run)); err != nil {
		return SimulateSummary{}, err
	}

	return SimulateSummary{
		RunID:          runID,
		ArtifactsDir:   runDir,
		Lambda:         req.Lambda,
		Samples:        samples,
		Events:         events,
		MappedResidues: residues,
	}, nil
}

type SearchRequest struct {
	DNA        string
	DNAFile    string
	Iterations int
	Context    string
	ModelPath  string
	// Threshold is the per-position mutation probability; zero means the
	// reference default.
	Threshold   float64
	BaseSeed    uint64
	HasBaseSeed bool
}

type SearchSummary struct {
	RunID        string
	ArtifactsDir string
	DNA          string
	Result       search.Result
}

// Search runs the mutation search loop, persists the run and writes its
// artifacts. A missing or malformed model artifact degrades to the
// deterministic fallback scorer.
func (c *Client) Search(ctx context.Context, req SearchRequest) (SearchSummary, error) {
	if err := c.ensureStore(ctx); err != nil {
		return SearchSummary{}, err
	}

	dna := req.DNA
	if req.DNAFile != "" {
		read, err := genome.ReadFirstFASTA(req.DNAFile)
		if err != nil {
			return SearchSummary{}, fmt.Errorf("read dna file: %w", err)
		}
		dna = read
	}
	if dna == "" {
		dna = search.DefaultDNA
	}

	mutator := genome.NewMutator()
	if req.Threshold > 0 {
		mutator.Threshold = req.Threshold
	}
	baseSeed := req.BaseSeed
	if !req.HasBaseSeed {
		baseSeed = rng.Normalize(dna, rng.MutationM)
	}

	result, err := search.Run(search.Config{
		DNA:         dna,
		Iterations:  req.Iterations,
		Context:     req.Context,
		Scorer:      scoring.ScorerForModel(req.ModelPath),
		Mutator:     mutator,
		BaseSeed:    baseSeed,
		HasBaseSeed: true,
	})
	if err != nil {
		return SearchSummary{}, err
	}

	now := time.Now().UTC()
	runID := fmt.Sprintf("search-%d-%d", baseSeed, now.Unix())
	cfg := model.SearchConfig{
		DNA:        dna,
		Iterations: req.Iterations,
		Context:    req.Context,
		ModelPath:  req.ModelPath,
		Threshold:  mutator.Threshold,
		BaseSeed:   baseSeed,
	}

	run := model.SearchRun{
		VersionedRecord: storage.Stamp(),
		RunID:           runID,
		CreatedAtUTC:    now.Format(time.RFC3339),
		Config:          cfg,
		Result:          result,
	}
	if err := c.store.SaveSearchRun(ctx, run); err != nil {
		return SearchSummary{}, err
	}

	runDir, err := stats.WriteSearchArtifacts(c.artifactsDir, runID, stats.SearchArtifacts{
		Config: cfg,
		Result: result,
	})
	if err != nil {
		return SearchSummary{}, err
	}
	if err := stats.AppendRunIndex(c.artifactsDir, storage.SearchIndexEntry(run)); err != nil {
		return SearchSummary{}, err
	}

	return SearchSummary{
		RunID:        runID,
		ArtifactsDir: runDir,
		DNA:          dna,
		Result:       result,
	}, nil
}

type RunsRequest struct {
	Limit int
}

// Runs lists persisted runs newest first.
func (c *Client) Runs(ctx context.Context, req RunsRequest) ([]model.RunIndexEntry, error) {
	if err := c.ensureStore(ctx); err != nil {
		return nil, err
	}
	return c.store.ListRuns(ctx, req.Limit)
}

// runIDSeed keeps run identifiers filesystem-safe for arbitrary seeds.
func runIDSeed(seed string) string {
	s := strings.TrimSpace(seed)
	if s == "" {
		return "default"
	}
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}

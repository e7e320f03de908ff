package storage

import (
	"context"
	"sync"

	"oncosim/internal/model"
	"oncosim/internal/search"
	"oncosim/internal/trajectory"
)

type MemoryStore struct {
	mu          sync.RWMutex
	initialized bool
	trajectory  map[string]model.TrajectoryRun
	search      map[string]model.SearchRun
	order       []model.RunIndexEntry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Init(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.initialized = true
	s.trajectory = make(map[string]model.TrajectoryRun)
	s.search = make(map[string]model.SearchRun)
	s.order = nil
	return nil
}

func (s *MemoryStore) Reset(ctx context.Context) error {
	return s.Init(ctx)
}

func (s *MemoryStore) SaveTrajectoryRun(_ context.Context, run model.TrajectoryRun) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := run
	copied.Samples = append([]trajectory.Sample(nil), run.Samples...)
	copied.Events = append([]trajectory.Event(nil), run.Events...)
	copied.MappedResidues = append([]int(nil), run.MappedResidues...)
	s.trajectory[run.RunID] = copied
	s.appendIndex(TrajectoryIndexEntry(run))
	return nil
}

func (s *MemoryStore) GetTrajectoryRun(_ context.Context, runID string) (model.TrajectoryRun, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run, ok := s.trajectory[runID]
	return run, ok, nil
}

func (s *MemoryStore) SaveSearchRun(_ context.Context, run model.SearchRun) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := run
	copied.Result.History = append([]search.Record(nil), run.Result.History...)
	s.search[run.RunID] = copied
	s.appendIndex(SearchIndexEntry(run))
	return nil
}

func (s *MemoryStore) GetSearchRun(_ context.Context, runID string) (model.SearchRun, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run, ok := s.search[runID]
	return run, ok, nil
}

func (s *MemoryStore) ListRuns(_ context.Context, limit int) ([]model.RunIndexEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.RunIndexEntry, 0, len(s.order))
	for i := len(s.order) - 1; i >= 0; i-- {
		out = append(out, s.order[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (s *MemoryStore) appendIndex(entry model.RunIndexEntry) {
	for i, existing := range s.order {
		if existing.RunID == entry.RunID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	s.order = append(s.order, entry)
}

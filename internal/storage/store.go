package storage

import (
	"context"

	"oncosim/internal/model"
)

// Store defines persistence operations for simulation and search runs.
type Store interface {
	Init(ctx context.Context) error
	Reset(ctx context.Context) error
	SaveTrajectoryRun(ctx context.Context, run model.TrajectoryRun) error
	GetTrajectoryRun(ctx context.Context, runID string) (model.TrajectoryRun, bool, error)
	SaveSearchRun(ctx context.Context, run model.SearchRun) error
	GetSearchRun(ctx context.Context, runID string) (model.SearchRun, bool, error)
	// ListRuns returns index entries newest first; limit <= 0 means all.
	ListRuns(ctx context.Context, limit int) ([]model.RunIndexEntry, error)
}

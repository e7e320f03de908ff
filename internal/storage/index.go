package storage

import (
	"strconv"

	"oncosim/internal/model"
)

// TrajectoryIndexEntry summarizes a trajectory run for listing.
func TrajectoryIndexEntry(run model.TrajectoryRun) model.RunIndexEntry {
	return model.RunIndexEntry{
		RunID:        run.RunID,
		Kind:         model.RunKindTrajectory,
		Seed:         run.Config.Seed,
		CreatedAtUTC: run.CreatedAtUTC,
		Steps:        len(run.Samples),
		Events:       len(run.Events),
	}
}

// SearchIndexEntry summarizes a search run for listing.
func SearchIndexEntry(run model.SearchRun) model.RunIndexEntry {
	return model.RunIndexEntry{
		RunID:        run.RunID,
		Kind:         model.RunKindSearch,
		Seed:         strconv.FormatUint(run.Config.BaseSeed, 10),
		CreatedAtUTC: run.CreatedAtUTC,
		Steps:        run.Config.Iterations,
		BestScore:    run.Result.BestScore,
	}
}

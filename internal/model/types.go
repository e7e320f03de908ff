package model

import (
	"oncosim/internal/search"
	"oncosim/internal/trajectory"
)

// VersionedRecord captures schema and codec evolution for persistent data.
type VersionedRecord struct {
	SchemaVersion int `json:"schema_version"`
	CodecVersion  int `json:"codec_version"`
}

// TrajectoryConfig is the serializable parameter set of a trajectory run.
type TrajectoryConfig struct {
	Days          int     `json:"days"`
	DT            float64 `json:"dt"`
	Lambda        float64 `json:"lambda"`
	Seed          string  `json:"seed"`
	Threshold     float64 `json:"threshold"`
	A             uint64  `json:"a"`
	C             uint64  `json:"c"`
	M             uint64  `json:"m"`
	ProteinLength int     `json:"protein_length"`
	MappingOffset int64   `json:"mapping_offset"`
}

// TrajectoryRun is a persisted simulation run with its detected events.
type TrajectoryRun struct {
	VersionedRecord
	RunID          string              `json:"run_id"`
	CreatedAtUTC   string              `json:"created_at_utc"`
	Config         TrajectoryConfig    `json:"config"`
	Samples        []trajectory.Sample `json:"samples"`
	Events         []trajectory.Event  `json:"events"`
	MappedResidues []int               `json:"mapped_residues,omitempty"`
}

// SearchConfig is the serializable parameter set of a mutation search run.
type SearchConfig struct {
	DNA        string  `json:"dna"`
	Iterations int     `json:"iterations"`
	Context    string  `json:"context,omitempty"`
	ModelPath  string  `json:"model_path,omitempty"`
	Threshold  float64 `json:"threshold"`
	BaseSeed   uint64  `json:"base_seed"`
}

// SearchRun is a persisted mutation search run.
type SearchRun struct {
	VersionedRecord
	RunID        string        `json:"run_id"`
	CreatedAtUTC string        `json:"created_at_utc"`
	Config       SearchConfig  `json:"config"`
	Result       search.Result `json:"result"`
}

// RunKind discriminates index entries.
type RunKind string

const (
	RunKindTrajectory RunKind = "trajectory"
	RunKindSearch     RunKind = "search"
)

// RunIndexEntry is the lightweight listing record for persisted runs.
type RunIndexEntry struct {
	RunID        string  `json:"run_id"`
	Kind         RunKind `json:"kind"`
	Seed         string  `json:"seed"`
	CreatedAtUTC string  `json:"created_at_utc"`
	Steps        int     `json:"steps"`
	Events       int     `json:"events,omitempty"`
	BestScore    float64 `json:"best_score,omitempty"`
}

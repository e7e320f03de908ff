package stats

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"oncosim/internal/model"
	"oncosim/internal/search"
	"oncosim/internal/trajectory"
)

const runIndexFile = "run_index.json"

// TrajectoryArtifacts is everything written for one simulation run.
type TrajectoryArtifacts struct {
	Config         model.TrajectoryConfig `json:"config"`
	Samples        []trajectory.Sample    `json:"samples"`
	Events         []trajectory.Event     `json:"events"`
	MappedResidues []int                  `json:"mapped_residues,omitempty"`
}

// MappedEvent is the serialized event row: the detector output joined with
// its residue coordinate for visualization consumers.
type MappedEvent struct {
	trajectory.Event
	Residue int `json:"residue,omitempty"`
}

// WriteTrajectoryArtifacts writes config.json, trajectory.csv and
// events.json under baseDir/<runID> and returns the run directory.
func WriteTrajectoryArtifacts(baseDir, runID string, artifacts TrajectoryArtifacts) (string, error) {
	if runID == "" {
		return "", fmt.Errorf("run id is required")
	}

	runDir := filepath.Join(baseDir, runID)
	if err := os.MkdirAll(runDir, 0o755); err != nil {
		return "", err
	}

	if err := writeJSON(filepath.Join(runDir, "config.json"), artifacts.Config); err != nil {
		return "", err
	}
	if err := writeTrajectoryCSV(filepath.Join(runDir, "trajectory.csv"), artifacts.Samples); err != nil {
		return "", err
	}

	mapped := make([]MappedEvent, len(artifacts.Events))
	for i, ev := range artifacts.Events {
		mapped[i] = MappedEvent{Event: ev}
		if i < len(artifacts.MappedResidues) {
			mapped[i].Residue = artifacts.MappedResidues[i]
		}
	}
	if err := writeJSON(filepath.Join(runDir, "events.json"), mapped); err != nil {
		return "", err
	}
	return runDir, nil
}

// SearchArtifacts is everything written for one mutation search run.
type SearchArtifacts struct {
	Config model.SearchConfig `json:"config"`
	Result search.Result      `json:"result"`
}

// WriteSearchArtifacts writes config.json and result.json under
// baseDir/<runID> and returns the run directory. result.json carries the
// persisted report schema consumed by the dashboard collaborator.
func WriteSearchArtifacts(baseDir, runID string, artifacts SearchArtifacts) (string, error) {
	if runID == "" {
		return "", fmt.Errorf("run id is required")
	}

	runDir := filepath.Join(baseDir, runID)
	if err := os.MkdirAll(runDir, 0o755); err != nil {
		return "", err
	}

	if err := writeJSON(filepath.Join(runDir, "config.json"), artifacts.Config); err != nil {
		return "", err
	}
	if err := writeJSON(filepath.Join(runDir, "result.json"), artifacts.Result); err != nil {
		return "", err
	}
	return runDir, nil
}

// WriteResultJSON writes a bare search result to an explicit path, for the
// CLI -out flag.
func WriteResultJSON(path string, result search.Result) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return writeJSON(path, result)
}

// AppendRunIndex appends entry to run_index.json under baseDir, creating
// the index when absent.
func AppendRunIndex(baseDir string, entry model.RunIndexEntry) error {
	if entry.RunID == "" {
		return fmt.Errorf("run id is required")
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return err
	}

	entries, err := ReadRunIndex(baseDir)
	if err != nil {
		return err
	}
	entries = append(entries, entry)
	return writeJSON(filepath.Join(baseDir, runIndexFile), entries)
}

// ReadRunIndex loads run_index.json; a missing file is an empty index.
func ReadRunIndex(baseDir string) ([]model.RunIndexEntry, error) {
	data, err := os.ReadFile(filepath.Join(baseDir, runIndexFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var entries []model.RunIndexEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse %s: %w", runIndexFile, err)
	}
	return entries, nil
}

func writeTrajectoryCSV(path string, samples []trajectory.Sample) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"step", "time", "state", "impulse", "memory", "prng_state"}); err != nil {
		return err
	}
	for _, s := range samples {
		row := []string{
			strconv.Itoa(s.Step),
			strconv.FormatFloat(s.Time, 'g', -1, 64),
			strconv.FormatFloat(s.State, 'g', -1, 64),
			strconv.FormatFloat(s.Impulse, 'g', -1, 64),
			strconv.FormatFloat(s.Memory, 'g', -1, 64),
			strconv.FormatUint(s.PRNGState, 10),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

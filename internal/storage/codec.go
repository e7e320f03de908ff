package storage

import (
	"encoding/json"
	"errors"

	"oncosim/internal/model"
)

const (
	CurrentSchemaVersion = 1
	CurrentCodecVersion  = 1
)

var ErrVersionMismatch = errors.New("record version mismatch")

// Stamp returns the version header every freshly persisted record carries.
func Stamp() model.VersionedRecord {
	return model.VersionedRecord{
		SchemaVersion: CurrentSchemaVersion,
		CodecVersion:  CurrentCodecVersion,
	}
}

func EncodeTrajectoryRun(run model.TrajectoryRun) ([]byte, error) {
	return json.Marshal(run)
}

func DecodeTrajectoryRun(data []byte) (model.TrajectoryRun, error) {
	var run model.TrajectoryRun
	if err := json.Unmarshal(data, &run); err != nil {
		return model.TrajectoryRun{}, err
	}
	if err := checkVersion(run.VersionedRecord); err != nil {
		return model.TrajectoryRun{}, err
	}
	return run, nil
}

func EncodeSearchRun(run model.SearchRun) ([]byte, error) {
	return json.Marshal(run)
}

func DecodeSearchRun(data []byte) (model.SearchRun, error) {
	var run model.SearchRun
	if err := json.Unmarshal(data, &run); err != nil {
		return model.SearchRun{}, err
	}
	if err := checkVersion(run.VersionedRecord); err != nil {
		return model.SearchRun{}, err
	}
	return run, nil
}

func checkVersion(v model.VersionedRecord) error {
	if v.SchemaVersion != CurrentSchemaVersion || v.CodecVersion != CurrentCodecVersion {
		return ErrVersionMismatch
	}
	return nil
}

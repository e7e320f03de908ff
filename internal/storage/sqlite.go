//go:build sqlite

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"oncosim/internal/model"

	_ "modernc.org/sqlite"
)

type SQLiteStore struct {
	path string

	mu sync.RWMutex
	db *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

func (s *SQLiteStore) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.path == "" {
		return errors.New("sqlite path is required")
	}
	if s.db != nil {
		return nil
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return err
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return err
	}
	if err := createTables(ctx, db); err != nil {
		_ = db.Close()
		return err
	}

	s.db = db
	return nil
}

func (s *SQLiteStore) Reset(ctx context.Context) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, `
		DELETE FROM trajectory_runs;
		DELETE FROM search_runs;
		DELETE FROM run_index;
	`)
	return err
}

func (s *SQLiteStore) SaveTrajectoryRun(ctx context.Context, run model.TrajectoryRun) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}

	payload, err := EncodeTrajectoryRun(run)
	if err != nil {
		return err
	}

	if _, err := db.ExecContext(ctx, `
		INSERT INTO trajectory_runs (run_id, schema_version, codec_version, payload)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(run_id) DO UPDATE SET
			schema_version = excluded.schema_version,
			codec_version = excluded.codec_version,
			payload = excluded.payload
	`, run.RunID, run.SchemaVersion, run.CodecVersion, payload); err != nil {
		return err
	}
	return s.upsertIndex(ctx, TrajectoryIndexEntry(run))
}

func (s *SQLiteStore) GetTrajectoryRun(ctx context.Context, runID string) (model.TrajectoryRun, bool, error) {
	db, err := s.getDB()
	if err != nil {
		return model.TrajectoryRun{}, false, err
	}

	var payload []byte
	err = db.QueryRowContext(ctx, `SELECT payload FROM trajectory_runs WHERE run_id = ?`, runID).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.TrajectoryRun{}, false, nil
		}
		return model.TrajectoryRun{}, false, err
	}

	run, err := DecodeTrajectoryRun(payload)
	if err != nil {
		return model.TrajectoryRun{}, false, fmt.Errorf("decode trajectory run %s: %w", runID, err)
	}
	return run, true, nil
}

func (s *SQLiteStore) SaveSearchRun(ctx context.Context, run model.SearchRun) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}

	payload, err := EncodeSearchRun(run)
	if err != nil {
		return err
	}

	if _, err := db.ExecContext(ctx, `
		INSERT INTO search_runs (run_id, schema_version, codec_version, payload)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(run_id) DO UPDATE SET
			schema_version = excluded.schema_version,
			codec_version = excluded.codec_version,
			payload = excluded.payload
	`, run.RunID, run.SchemaVersion, run.CodecVersion, payload); err != nil {
		return err
	}
	return s.upsertIndex(ctx, SearchIndexEntry(run))
}

func (s *SQLiteStore) GetSearchRun(ctx context.Context, runID string) (model.SearchRun, bool, error) {
	db, err := s.getDB()
	if err != nil {
		return model.SearchRun{}, false, err
	}

	var payload []byte
	err = db.QueryRowContext(ctx, `SELECT payload FROM search_runs WHERE run_id = ?`, runID).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.SearchRun{}, false, nil
		}
		return model.SearchRun{}, false, err
	}

	run, err := DecodeSearchRun(payload)
	if err != nil {
		return model.SearchRun{}, false, fmt.Errorf("decode search run %s: %w", runID, err)
	}
	return run, true, nil
}

func (s *SQLiteStore) ListRuns(ctx context.Context, limit int) ([]model.RunIndexEntry, error) {
	db, err := s.getDB()
	if err != nil {
		return nil, err
	}

	query := `SELECT run_id, kind, seed, created_at_utc, steps, events, best_score
		FROM run_index ORDER BY rowid DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []model.RunIndexEntry
	for rows.Next() {
		var entry model.RunIndexEntry
		var kind string
		if err := rows.Scan(&entry.RunID, &kind, &entry.Seed, &entry.CreatedAtUTC, &entry.Steps, &entry.Events, &entry.BestScore); err != nil {
			return nil, err
		}
		entry.Kind = model.RunKind(kind)
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *SQLiteStore) upsertIndex(ctx context.Context, entry model.RunIndexEntry) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, `
		INSERT INTO run_index (run_id, kind, seed, created_at_utc, steps, events, best_score)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(run_id) DO UPDATE SET
			kind = excluded.kind,
			seed = excluded.seed,
			created_at_utc = excluded.created_at_utc,
			steps = excluded.steps,
			events = excluded.events,
			best_score = excluded.best_score
	`, entry.RunID, string(entry.Kind), entry.Seed, entry.CreatedAtUTC, entry.Steps, entry.Events, entry.BestScore)
	return err
}

func (s *SQLiteStore) getDB() (*sql.DB, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.db == nil {
		return nil, errors.New("store is not initialized")
	}
	return s.db, nil
}

func createTables(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS trajectory_runs (
			run_id TEXT PRIMARY KEY,
			schema_version INTEGER NOT NULL,
			codec_version INTEGER NOT NULL,
			payload BLOB NOT NULL
		);
		CREATE TABLE IF NOT EXISTS search_runs (
			run_id TEXT PRIMARY KEY,
			schema_version INTEGER NOT NULL,
			codec_version INTEGER NOT NULL,
			payload BLOB NOT NULL
		);
		CREATE TABLE IF NOT EXISTS run_index (
			run_id TEXT PRIMARY KEY,
			kind TEXT NOT NULL,
			seed TEXT NOT NULL,
			created_at_utc TEXT NOT NULL,
			steps INTEGER NOT NULL,
			events INTEGER NOT NULL,
			best_score REAL NOT NULL
		);
	`)
	return err
}

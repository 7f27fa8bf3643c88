//go:build sqlite

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"harvestsim/internal/model"

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

func newSQLiteStore(path string) (Store, error) {
	return NewSQLiteStore(path), nil
}

func DefaultStoreKind() string {
	return "sqlite"
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

func (s *SQLiteStore) getDB() (*sql.DB, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.db == nil {
		return nil, errors.New("sqlite store not initialized")
	}
	return s.db, nil
}

func createTables(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS scenarios (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			schema_version INTEGER NOT NULL,
			codec_version INTEGER NOT NULL,
			payload BLOB NOT NULL
		)
	`)
	return err
}

func (s *SQLiteStore) SaveScenario(ctx context.Context, scenario model.Scenario) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}

	payload, err := EncodeScenario(scenario)
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO scenarios (id, name, schema_version, codec_version, payload)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			schema_version = excluded.schema_version,
			codec_version = excluded.codec_version,
			payload = excluded.payload
	`, scenario.ID, scenario.Name, scenario.SchemaVersion, scenario.CodecVersion, payload)
	return err
}

func (s *SQLiteStore) GetScenario(ctx context.Context, id string) (model.Scenario, bool, error) {
	db, err := s.getDB()
	if err != nil {
		return model.Scenario{}, false, err
	}

	var payload []byte
	err = db.QueryRowContext(ctx, `SELECT payload FROM scenarios WHERE id = ?`, id).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Scenario{}, false, nil
		}
		return model.Scenario{}, false, err
	}

	scenario, err := DecodeScenario(payload)
	if err != nil {
		return model.Scenario{}, false, fmt.Errorf("decode scenario %s: %w", id, err)
	}
	return scenario, true, nil
}

func (s *SQLiteStore) ListScenarios(ctx context.Context) ([]model.Scenario, error) {
	db, err := s.getDB()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, `SELECT id, payload FROM scenarios ORDER BY name, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var listed []model.Scenario
	for rows.Next() {
		var id string
		var payload []byte
		if err := rows.Scan(&id, &payload); err != nil {
			return nil, err
		}
		scenario, err := DecodeScenario(payload)
		if err != nil {
			return nil, fmt.Errorf("decode scenario %s: %w", id, err)
		}
		listed = append(listed, scenario)
	}
	return listed, rows.Err()
}

func (s *SQLiteStore) DeleteScenario(ctx context.Context, id string) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `DELETE FROM scenarios WHERE id = ?`, id)
	return err
}

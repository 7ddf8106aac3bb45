package database

import (
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// StateStore is the app_state-backed key-value store behind the refresh
// scheduler. Scheduling state is local to this installation; it survives a
// restart but is not shared across devices.
type StateStore struct {
	db *sqlx.DB
}

func NewStateStore(db *sqlx.DB) *StateStore {
	return &StateStore{db: db}
}

// Get returns "" without error for a key that was never written.
func (s *StateStore) Get(key string) (string, error) {
	var value string
	err := s.db.Get(&value, "SELECT value FROM app_state WHERE key = ?", key)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read state key %q: %w", key, err)
	}
	return value, nil
}

func (s *StateStore) Set(key, value string) error {
	_, err := s.db.Exec(`INSERT INTO app_state (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	if err != nil {
		return fmt.Errorf("failed to write state key %q: %w", key, err)
	}
	return nil
}

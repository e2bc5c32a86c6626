package sessionstore

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hochfrequenz/automation-portal/internal/domain"
	_ "modernc.org/sqlite"
)

// Keys of the persisted client state
const (
	KeyAccessToken  = "access_token"
	KeyRefreshToken = "refresh_token"
	KeyUser         = "user"
	KeyTheme        = "theme"
)

// Store provides SQLite-backed persistence of client session state
type Store struct {
	db *sql.DB
}

// New opens the database at dbPath and applies the schema
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	// :memory: databases are per connection
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// Get returns the value stored under key. ok is false when the key is absent.
func (s *Store) Get(key string) (value string, ok bool, err error) {
	err = s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading %s: %w", key, err)
	}
	return value, true, nil
}

// Set stores value under key, replacing any previous value
func (s *Store) Set(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value, time.Now())
	if err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return nil
}

// Delete removes the given keys. Missing keys are ignored.
func (s *Store) Delete(keys ...string) error {
	for _, key := range keys {
		if _, err := s.db.Exec(`DELETE FROM kv WHERE key = ?`, key); err != nil {
			return fmt.Errorf("deleting %s: %w", key, err)
		}
	}
	return nil
}

// SaveUser persists the signed-in user's profile as JSON
func (s *Store) SaveUser(u domain.User) error {
	data, err := json.Marshal(u)
	if err != nil {
		return err
	}
	return s.Set(KeyUser, string(data))
}

// LoadUser returns the persisted profile. ok is false when nobody is signed in.
func (s *Store) LoadUser() (u domain.User, ok bool, err error) {
	raw, ok, err := s.Get(KeyUser)
	if err != nil || !ok {
		return domain.User{}, false, err
	}
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return domain.User{}, false, fmt.Errorf("decoding stored user: %w", err)
	}
	return u, true, nil
}

// ClearSession removes tokens and the cached profile. The theme preference survives.
func (s *Store) ClearSession() error {
	return s.Delete(KeyAccessToken, KeyRefreshToken, KeyUser)
}

// LastStatus returns the last recorded status of an execution
func (s *Store) LastStatus(executionID string) (domain.StandardStatus, bool, error) {
	var status string
	err := s.db.QueryRow(`SELECT status FROM execution_status WHERE execution_id = ?`, executionID).Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return domain.StandardStatus(status), true, nil
}

// RecordStatus stores the latest observed status of an execution
func (s *Store) RecordStatus(exec domain.Execution) error {
	_, err := s.db.Exec(`
		INSERT INTO execution_status (execution_id, product_name, status, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(execution_id) DO UPDATE SET
			product_name = excluded.product_name,
			status = excluded.status,
			updated_at = excluded.updated_at
	`, exec.ExecutionID, exec.ProductName, string(exec.Status), time.Now())
	return err
}

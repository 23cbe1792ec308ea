package session

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Keys persisted by the client. Both are cleared together on logout.
const (
	KeyUserID        = "userId"
	KeySelectedShift = "selectedShift"
)

// DefaultShift is assumed when no shift preference has been stored
const DefaultShift = "Morning"

// Store persists the session identifier and UI preferences in a local
// SQLite database, surviving between invocations the way browser-local
// storage survives page loads. No expiry, no encryption.
type Store struct {
	conn *sql.DB
}

// Open opens the store and initializes the schema
func Open(path string) (*Store, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening session store: %w", err)
	}

	s := &Store{conn: conn}
	if err := s.initSchema(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}

	return s, nil
}

// Close closes the store
func (s *Store) Close() error {
	return s.conn.Close()
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS state (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);
	`
	_, err := s.conn.Exec(schema)
	return err
}

// Get returns the stored value for key, or "" when the key is absent
func (s *Store) Get(key string) (string, error) {
	var value string
	err := s.conn.QueryRow(`SELECT value FROM state WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", key, err)
	}
	return value, nil
}

// Set stores a value, replacing any previous one
func (s *Store) Set(key, value string) error {
	updatedAt := time.Now().UTC().Format(time.RFC3339)
	_, err := s.conn.Exec(`
	INSERT INTO state (key, value, updated_at) VALUES (?, ?, ?)
	ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value, updatedAt)
	if err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return nil
}

// Delete removes a single key
func (s *Store) Delete(key string) error {
	_, err := s.conn.Exec(`DELETE FROM state WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("deleting %s: %w", key, err)
	}
	return nil
}

// Clear removes every persisted key. Used on logout and before storing a
// fresh identifier at login.
func (s *Store) Clear() error {
	_, err := s.conn.Exec(`DELETE FROM state`)
	if err != nil {
		return fmt.Errorf("clearing session store: %w", err)
	}
	return nil
}

// Keys lists the currently persisted keys
func (s *Store) Keys() ([]string, error) {
	rows, err := s.conn.Query(`SELECT key FROM state ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("listing keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("scanning key: %w", err)
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}

// UserID returns the stored user identifier, or "" when not logged in.
// Treats the literal strings "null" and "undefined" as absent, matching
// what older clients left behind in storage.
func (s *Store) UserID() (string, error) {
	id, err := s.Get(KeyUserID)
	if err != nil {
		return "", err
	}
	if id == "null" || id == "undefined" {
		return "", nil
	}
	return id, nil
}

// SetUserID replaces all persisted state with the new identifier
func (s *Store) SetUserID(id string) error {
	if err := s.Clear(); err != nil {
		return err
	}
	return s.Set(KeyUserID, id)
}

// SelectedShift returns the stored shift preference, defaulting to Morning
func (s *Store) SelectedShift() (string, error) {
	shift, err := s.Get(KeySelectedShift)
	if err != nil {
		return "", err
	}
	if shift == "" {
		return DefaultShift, nil
	}
	return shift, nil
}

// SetSelectedShift persists the shift preference
func (s *Store) SetSelectedShift(shift string) error {
	return s.Set(KeySelectedShift, shift)
}

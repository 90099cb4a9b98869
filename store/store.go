// Package store is the local device storage: per-novel reading
// progress, the reading-settings blob, and the saved access token.
// Writes are last-write-wins; the remote API stays the source of truth
// for everything it owns.
package store

import (
	"database/sql"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS reading_progress (
	novel_id TEXT PRIMARY KEY,
	chapter_index INTEGER NOT NULL,
	updated_ts INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS setting (
	name TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
`

type Store struct {
	db *sql.DB
}

func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open database")
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "failed to apply schema")
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) getSetting(name string) (string, bool, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM setting WHERE name = ?`, name).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.Wrap(err, "failed to get setting")
	}
	return value, true, nil
}

func (s *Store) setSetting(name, value string) error {
	stmt := `
	INSERT INTO setting (name, value) VALUES (?, ?)
	ON CONFLICT(name) DO UPDATE SET value = excluded.value
	`
	if _, err := s.db.Exec(stmt, name, value); err != nil {
		return errors.Wrap(err, "failed to set setting")
	}
	return nil
}

func (s *Store) deleteSetting(name string) error {
	if _, err := s.db.Exec(`DELETE FROM setting WHERE name = ?`, name); err != nil {
		return errors.Wrap(err, "failed to delete setting")
	}
	return nil
}

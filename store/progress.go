package store

import (
	"database/sql"
	"time"

	"github.com/pkg/errors"
)

// Progress returns the stored chapter index for a novel. ok is false
// when no index was ever stored. Bounds checking against the loaded
// chapter list is the caller's concern.
func (s *Store) Progress(novelID string) (idx int, ok bool, err error) {
	err = s.db.QueryRow(`SELECT chapter_index FROM reading_progress WHERE novel_id = ?`, novelID).Scan(&idx)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, errors.Wrap(err, "failed to get reading progress")
	}
	return idx, true, nil
}

func (s *Store) SetProgress(novelID string, idx int) error {
	stmt := `
	INSERT INTO reading_progress (novel_id, chapter_index, updated_ts) VALUES (?, ?, ?)
	ON CONFLICT(novel_id) DO UPDATE SET chapter_index = excluded.chapter_index, updated_ts = excluded.updated_ts
	`
	if _, err := s.db.Exec(stmt, novelID, idx, time.Now().Unix()); err != nil {
		return errors.Wrap(err, "failed to set reading progress")
	}
	return nil
}

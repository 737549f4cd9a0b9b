// Package storage persists level completions and checkpoint saves in SQLite.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/doronn/ggj2026-sub000/internal/game"
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// CompletionEntry is one recorded level completion.
type CompletionEntry struct {
	ID        int64
	LevelID   string
	Ticks     uint64
	Score     int
	Deaths    int
	CreatedAt time.Time
}

// LevelStats aggregates the completions of one level.
type LevelStats struct {
	LevelID    string
	Runs       int
	BestScore  int
	BestTicks  uint64
	LastPlayed time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS completions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			level_id TEXT NOT NULL,
			ticks INTEGER NOT NULL,
			score INTEGER NOT NULL,
			deaths INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_completions_level_id ON completions(level_id);
		CREATE INDEX IF NOT EXISTS idx_completions_top ON completions(level_id, score DESC, ticks ASC);

		CREATE TABLE IF NOT EXISTS saves (
			level_id TEXT PRIMARY KEY,
			snapshot TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveCompletion records a finished level. Returns the inserted record's ID.
func (s *Store) SaveCompletion(levelID string, ticks uint64, score, deaths int) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO completions (level_id, ticks, score, deaths) VALUES (?, ?, ?, ?)",
		levelID, int64(ticks), score, deaths,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save completion: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// TopCompletions retrieves the best completions for the given level, highest
// score first and fastest run breaking ties.
func (s *Store) TopCompletions(levelID string, limit int) ([]CompletionEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, level_id, ticks, score, deaths, created_at
		 FROM completions
		 WHERE level_id = ?
		 ORDER BY score DESC, ticks ASC
		 LIMIT ?`,
		levelID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query completions: %w", err)
	}
	defer rows.Close()

	return scanCompletions(rows)
}

// RecentCompletions retrieves the most recent completions across all levels.
func (s *Store) RecentCompletions(limit int) ([]CompletionEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, level_id, ticks, score, deaths, created_at
		 FROM completions
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query completions: %w", err)
	}
	defer rows.Close()

	return scanCompletions(rows)
}

func scanCompletions(rows *sql.Rows) ([]CompletionEntry, error) {
	var entries []CompletionEntry
	for rows.Next() {
		var e CompletionEntry
		var ticks int64
		var createdAt any
		if err := rows.Scan(&e.ID, &e.LevelID, &ticks, &e.Score, &e.Deaths, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.Ticks = uint64(ticks)
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// BestTicks returns the fastest completion of the given level.
// Returns 0 if the level has never been completed.
func (s *Store) BestTicks(levelID string) (uint64, error) {
	var ticks sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MIN(ticks) FROM completions WHERE level_id = ?",
		levelID,
	).Scan(&ticks)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best ticks: %w", err)
	}

	if !ticks.Valid {
		return 0, nil
	}

	return uint64(ticks.Int64), nil
}

// ClearCompletions deletes all completions for the given level.
func (s *Store) ClearCompletions(levelID string) error {
	_, err := s.db.Exec("DELETE FROM completions WHERE level_id = ?", levelID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear completions: %w", err)
	}
	return nil
}

// AllLevelStats aggregates completions per level for the records screen.
func (s *Store) AllLevelStats() (map[string]*LevelStats, error) {
	rows, err := s.db.Query(
		`SELECT level_id, COUNT(*), MAX(score), MIN(ticks), MAX(created_at)
		 FROM completions
		 GROUP BY level_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get level stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*LevelStats)
	for rows.Next() {
		var st LevelStats
		var ticks int64
		var lastPlayed any
		if err := rows.Scan(&st.LevelID, &st.Runs, &st.BestScore, &ticks, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.BestTicks = uint64(ticks)
		st.LastPlayed = parseTime(lastPlayed)
		stats[st.LevelID] = &st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// SaveCheckpoint upserts the checkpoint save for the snapshot's level. One
// save slot exists per level; a new checkpoint in the same level replaces it.
func (s *Store) SaveCheckpoint(snap game.Snapshot) error {
	blob, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("storage: cannot encode snapshot: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT INTO saves (level_id, snapshot, created_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(level_id) DO UPDATE SET snapshot = excluded.snapshot, created_at = CURRENT_TIMESTAMP`,
		snap.LevelID, string(blob),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save checkpoint: %w", err)
	}
	return nil
}

// LoadCheckpoint retrieves the checkpoint save for one level.
// The second return value is false when no save exists.
func (s *Store) LoadCheckpoint(levelID string) (game.Snapshot, bool, error) {
	var blob string
	err := s.db.QueryRow(
		"SELECT snapshot FROM saves WHERE level_id = ?",
		levelID,
	).Scan(&blob)

	if err == sql.ErrNoRows {
		return game.Snapshot{}, false, nil
	}
	if err != nil {
		return game.Snapshot{}, false, fmt.Errorf("storage: cannot query checkpoint: %w", err)
	}

	return decodeSnapshot(blob)
}

// LatestCheckpoint retrieves the most recently written checkpoint save
// across all levels, which is what play --resume restores.
func (s *Store) LatestCheckpoint() (game.Snapshot, bool, error) {
	var blob string
	err := s.db.QueryRow(
		"SELECT snapshot FROM saves ORDER BY created_at DESC, level_id DESC LIMIT 1",
	).Scan(&blob)

	if err == sql.ErrNoRows {
		return game.Snapshot{}, false, nil
	}
	if err != nil {
		return game.Snapshot{}, false, fmt.Errorf("storage: cannot query checkpoint: %w", err)
	}

	return decodeSnapshot(blob)
}

func decodeSnapshot(blob string) (game.Snapshot, bool, error) {
	var snap game.Snapshot
	if err := json.Unmarshal([]byte(blob), &snap); err != nil {
		return game.Snapshot{}, false, fmt.Errorf("storage: cannot decode snapshot: %w", err)
	}
	return snap, true, nil
}

// DeleteCheckpoint removes the save slot for one level, typically after the
// level is completed.
func (s *Store) DeleteCheckpoint(levelID string) error {
	_, err := s.db.Exec("DELETE FROM saves WHERE level_id = ?", levelID)
	if err != nil {
		return fmt.Errorf("storage: cannot delete checkpoint: %w", err)
	}
	return nil
}

// parseTime converts a scanned DATETIME value, which the driver may surface
// as either time.Time or string.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

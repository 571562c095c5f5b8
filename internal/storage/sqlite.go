// Package storage provides SQLite-based persistence for playthrough results.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for playthrough persistence.
type Store struct {
	db *sql.DB
}

// Playthrough represents a single recorded ascent attempt.
type Playthrough struct {
	ID        int64
	Level     string
	Outcome   string
	Rounds    int
	Score     int
	CreatedAt time.Time
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

	// Create parent directories
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
		CREATE TABLE IF NOT EXISTS playthroughs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			level TEXT NOT NULL,
			outcome TEXT NOT NULL,
			rounds INTEGER NOT NULL,
			score INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_playthroughs_level ON playthroughs(level);
		CREATE INDEX IF NOT EXISTS idx_playthroughs_top ON playthroughs(level, score DESC);
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

// RecordPlaythrough saves the result of a finished ascent.
// Returns the ID of the inserted record.
func (s *Store) RecordPlaythrough(level, outcome string, rounds, score int) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO playthroughs (level, outcome, rounds, score) VALUES (?, ?, ?, ?)",
		level, outcome, rounds, score,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot record playthrough: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// TopPlaythroughs retrieves the top N playthroughs for the given level.
// Results are ordered by score descending, fewest rounds breaking ties.
func (s *Store) TopPlaythroughs(level string, limit int) ([]Playthrough, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, level, outcome, rounds, score, created_at
		 FROM playthroughs
		 WHERE level = ?
		 ORDER BY score DESC, rounds ASC
		 LIMIT ?`,
		level, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query playthroughs: %w", err)
	}
	defer rows.Close()

	return scanPlaythroughs(rows)
}

// LatestPlaythroughs retrieves the most recent playthroughs across all levels.
func (s *Store) LatestPlaythroughs(limit int) ([]Playthrough, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, level, outcome, rounds, score, created_at
		 FROM playthroughs
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query playthroughs: %w", err)
	}
	defer rows.Close()

	return scanPlaythroughs(rows)
}

// BestScore returns the highest score recorded for the given level.
// Returns 0 if no playthroughs exist.
func (s *Store) BestScore(level string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM playthroughs WHERE level = ?",
		level,
	).Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// Levels returns the names of all levels with at least one recorded
// playthrough, ordered alphabetically.
func (s *Store) Levels() ([]string, error) {
	rows, err := s.db.Query("SELECT DISTINCT level FROM playthroughs ORDER BY level")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query levels: %w", err)
	}
	defer rows.Close()

	var levels []string
	for rows.Next() {
		var level string
		if err := rows.Scan(&level); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		levels = append(levels, level)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return levels, nil
}

// ClearLevel deletes all playthroughs for the given level.
func (s *Store) ClearLevel(level string) error {
	_, err := s.db.Exec("DELETE FROM playthroughs WHERE level = ?", level)
	if err != nil {
		return fmt.Errorf("storage: cannot clear playthroughs: %w", err)
	}
	return nil
}

func scanPlaythroughs(rows *sql.Rows) ([]Playthrough, error) {
	var entries []Playthrough
	for rows.Next() {
		var p Playthrough
		var createdAt any
		if err := rows.Scan(&p.ID, &p.Level, &p.Outcome, &p.Rounds, &p.Score, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}

		// Parse the datetime - handle both time.Time and string
		switch v := createdAt.(type) {
		case time.Time:
			p.CreatedAt = v
		case string:
			if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
				p.CreatedAt = parsed
			}
		}
		entries = append(entries, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

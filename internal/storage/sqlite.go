// Package storage provides the SQLite reaction journal.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
//
// The journal records how rounds went (reaction times, how they were lost);
// it keeps no leaderboard.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Journal entry kinds.
const (
	KindHit      = "hit"
	KindEarlyTap = "early_tap"
	KindTimeout  = "timeout"
)

// Store manages the SQLite database connection for the journal.
type Store struct {
	db *sql.DB
}

// Reaction is a single journal entry.
type Reaction struct {
	ID         int64
	GameID     string
	Session    string // player or SSH user; empty for local play
	Kind       string // KindHit, KindEarlyTap or KindTimeout
	ReactionMS int64  // hits only
	Score      int    // score after a hit, or the score lost
	CreatedAt  time.Time
}

// ReactionStats aggregates the journal for one game.
type ReactionStats struct {
	GameID        string
	Hits          int
	EarlyTaps     int
	Timeouts      int
	AvgReactionMS float64
	LastPlayed    time.Time
}

// Rounds returns the number of finished rounds.
func (s ReactionStats) Rounds() int {
	return s.EarlyTaps + s.Timeouts
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
		CREATE TABLE IF NOT EXISTS reactions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			session TEXT NOT NULL DEFAULT '',
			kind TEXT NOT NULL,
			reaction_ms INTEGER NOT NULL DEFAULT 0,
			score INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_reactions_game_id ON reactions(game_id);
		CREATE INDEX IF NOT EXISTS idx_reactions_kind ON reactions(game_id, kind);
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

// Record appends an entry to the journal and returns its ID.
func (s *Store) Record(r Reaction) (int64, error) {
	switch r.Kind {
	case KindHit, KindEarlyTap, KindTimeout:
	default:
		return 0, fmt.Errorf("storage: unknown reaction kind %q", r.Kind)
	}

	result, err := s.db.Exec(
		"INSERT INTO reactions (game_id, session, kind, reaction_ms, score) VALUES (?, ?, ?, ?, ?)",
		r.GameID, r.Session, r.Kind, r.ReactionMS, r.Score,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot record reaction: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// Recent returns the latest entries for a game, newest first.
func (s *Store) Recent(gameID string, limit int) ([]Reaction, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, session, kind, reaction_ms, score, created_at
		 FROM reactions
		 WHERE game_id = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query reactions: %w", err)
	}
	defer rows.Close()

	var entries []Reaction
	for rows.Next() {
		var e Reaction
		var createdAt any
		if err := rows.Scan(&e.ID, &e.GameID, &e.Session, &e.Kind, &e.ReactionMS, &e.Score, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// ReactionStats aggregates the journal for one game.
// A game with no entries yields zero stats.
func (s *Store) ReactionStats(gameID string) (*ReactionStats, error) {
	all, err := s.query(`WHERE game_id = ?`, gameID)
	if err != nil {
		return nil, err
	}
	if st, ok := all[gameID]; ok {
		return st, nil
	}
	return &ReactionStats{GameID: gameID}, nil
}

// AllStats aggregates the journal for every game that has entries.
func (s *Store) AllStats() (map[string]*ReactionStats, error) {
	return s.query("")
}

func (s *Store) query(where string, args ...any) (map[string]*ReactionStats, error) {
	rows, err := s.db.Query(
		`SELECT game_id,
		        COALESCE(SUM(kind = 'hit'), 0),
		        COALESCE(SUM(kind = 'early_tap'), 0),
		        COALESCE(SUM(kind = 'timeout'), 0),
		        COALESCE(AVG(CASE WHEN kind = 'hit' THEN reaction_ms END), 0),
		        MAX(created_at)
		 FROM reactions `+where+`
		 GROUP BY game_id`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get reaction stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*ReactionStats)
	for rows.Next() {
		var st ReactionStats
		var lastPlayed any
		if err := rows.Scan(&st.GameID, &st.Hits, &st.EarlyTaps, &st.Timeouts,
			&st.AvgReactionMS, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastPlayed = parseTime(lastPlayed)
		stats[st.GameID] = &st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// Clear deletes the journal of one game, or of every game when gameID is empty.
func (s *Store) Clear(gameID string) error {
	var err error
	if gameID == "" {
		_, err = s.db.Exec("DELETE FROM reactions")
	} else {
		_, err = s.db.Exec("DELETE FROM reactions WHERE game_id = ?", gameID)
	}
	if err != nil {
		return fmt.Errorf("storage: cannot clear reactions: %w", err)
	}
	return nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

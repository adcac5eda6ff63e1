// Package storage provides the SQLite move journal for match3 sessions.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// ErrSessionNotFound is returned when a session ID has no row.
var ErrSessionNotFound = errors.New("storage: session not found")

// Journal is the write side of the store used while playing.
type Journal interface {
	BeginSession(p SessionParams) (int64, error)
	RecordMove(sessionID int64, m MoveEntry) error
}

// Store manages the SQLite database connection for the journal.
type Store struct {
	db *sql.DB
}

// SessionParams holds everything needed to rebuild a session's initial board.
type SessionParams struct {
	GameID         string
	Seed           int64
	Width          int
	Height         int
	PaletteSize    int
	MinMatch       int
	MaxFillRetries int
}

// SessionEntry is a journaled session with its move count.
type SessionEntry struct {
	ID int64
	SessionParams
	Moves     int
	CreatedAt time.Time
}

// MoveEntry is one journaled swap attempt.
type MoveEntry struct {
	Seq      int
	FromX    int
	FromY    int
	ToX      int
	ToY      int
	Accepted bool
	Passes   int
	Cleared  int
	Spawned  int
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
		CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			seed INTEGER NOT NULL,
			width INTEGER NOT NULL,
			height INTEGER NOT NULL,
			palette_size INTEGER NOT NULL,
			min_match INTEGER NOT NULL,
			max_fill_retries INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_game_id ON sessions(game_id);

		CREATE TABLE IF NOT EXISTS moves (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id INTEGER NOT NULL REFERENCES sessions(id),
			seq INTEGER NOT NULL,
			from_x INTEGER NOT NULL,
			from_y INTEGER NOT NULL,
			to_x INTEGER NOT NULL,
			to_y INTEGER NOT NULL,
			accepted INTEGER NOT NULL,
			passes INTEGER NOT NULL DEFAULT 0,
			cleared INTEGER NOT NULL DEFAULT 0,
			spawned INTEGER NOT NULL DEFAULT 0,
			UNIQUE(session_id, seq)
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

// BeginSession records a new session and returns its ID.
func (s *Store) BeginSession(p SessionParams) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO sessions (game_id, seed, width, height, palette_size, min_match, max_fill_retries)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.GameID, p.Seed, p.Width, p.Height, p.PaletteSize, p.MinMatch, p.MaxFillRetries,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin session: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecordMove appends a swap attempt to a session.
func (s *Store) RecordMove(sessionID int64, m MoveEntry) error {
	_, err := s.db.Exec(
		`INSERT INTO moves (session_id, seq, from_x, from_y, to_x, to_y, accepted, passes, cleared, spawned)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sessionID, m.Seq, m.FromX, m.FromY, m.ToX, m.ToY, m.Accepted, m.Passes, m.Cleared, m.Spawned,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot record move %d of session %d: %w", m.Seq, sessionID, err)
	}
	return nil
}

const sessionColumns = `s.id, s.game_id, s.seed, s.width, s.height, s.palette_size, s.min_match,
	s.max_fill_retries, s.created_at, (SELECT COUNT(*) FROM moves m WHERE m.session_id = s.id)`

type scanner interface {
	Scan(dest ...any) error
}

func scanSession(row scanner) (SessionEntry, error) {
	var e SessionEntry
	var createdAt any
	err := row.Scan(&e.ID, &e.GameID, &e.Seed, &e.Width, &e.Height, &e.PaletteSize,
		&e.MinMatch, &e.MaxFillRetries, &createdAt, &e.Moves)
	if err != nil {
		return e, err
	}
	e.CreatedAt = parseTime(createdAt)
	return e, nil
}

// RecentSessions returns the latest sessions, newest first.
func (s *Store) RecentSessions(limit int) ([]SessionEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+sessionColumns+`
		 FROM sessions s
		 ORDER BY s.id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	defer rows.Close()

	var entries []SessionEntry
	for rows.Next() {
		e, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// Session returns one session by ID.
func (s *Store) Session(id int64) (SessionEntry, error) {
	e, err := scanSession(s.db.QueryRow(
		`SELECT `+sessionColumns+` FROM sessions s WHERE s.id = ?`,
		id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return e, fmt.Errorf("%w: %d", ErrSessionNotFound, id)
	}
	if err != nil {
		return e, fmt.Errorf("storage: cannot load session %d: %w", id, err)
	}
	return e, nil
}

// Moves returns the moves of a session in play order.
func (s *Store) Moves(sessionID int64) ([]MoveEntry, error) {
	rows, err := s.db.Query(
		`SELECT seq, from_x, from_y, to_x, to_y, accepted, passes, cleared, spawned
		 FROM moves
		 WHERE session_id = ?
		 ORDER BY seq`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query moves: %w", err)
	}
	defer rows.Close()

	var moves []MoveEntry
	for rows.Next() {
		var m MoveEntry
		if err := rows.Scan(&m.Seq, &m.FromX, &m.FromY, &m.ToX, &m.ToY, &m.Accepted, &m.Passes, &m.Cleared, &m.Spawned); err != nil {
			return nil, fmt.Errorf("storage: cannot scan move: %w", err)
		}
		moves = append(moves, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return moves, nil
}

// ClearSessions deletes every session of a game, together with its moves.
// An empty gameID clears all games.
func (s *Store) ClearSessions(gameID string) error {
	where, args := "", []any{}
	if gameID != "" {
		where, args = " WHERE game_id = ?", []any{gameID}
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot clear sessions: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after Commit

	if _, err := tx.Exec("DELETE FROM moves WHERE session_id IN (SELECT id FROM sessions"+where+")", args...); err != nil {
		return fmt.Errorf("storage: cannot clear moves: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM sessions"+where, args...); err != nil {
		return fmt.Errorf("storage: cannot clear sessions: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot clear sessions: %w", err)
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
	}
	return time.Time{}
}

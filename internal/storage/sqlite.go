// Package storage provides SQLite-based persistence for presentation session
// statistics. Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
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

// Store manages the SQLite database connection for session statistics.
type Store struct {
	db *sql.DB
}

// SessionRecord summarizes one run of a scene on a canvas.
type SessionRecord struct {
	ID          int64
	SceneID     string
	Width       int
	Height      int
	Frames      int
	FullFrames  int
	DirtyFrames int
	IdleFrames  int
	Bytes       int64
	Dropped     int
	SinkErrors  int
	Duration    time.Duration
	CreatedAt   time.Time
}

// BytesPerFrame returns the average output per presented frame.
func (r SessionRecord) BytesPerFrame() float64 {
	if r.Frames == 0 {
		return 0
	}
	return float64(r.Bytes) / float64(r.Frames)
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
		CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			scene_id TEXT NOT NULL,
			width INTEGER NOT NULL,
			height INTEGER NOT NULL,
			frames INTEGER NOT NULL DEFAULT 0,
			full_frames INTEGER NOT NULL DEFAULT 0,
			dirty_frames INTEGER NOT NULL DEFAULT 0,
			idle_frames INTEGER NOT NULL DEFAULT 0,
			bytes INTEGER NOT NULL DEFAULT 0,
			dropped INTEGER NOT NULL DEFAULT 0,
			sink_errors INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_scene_id ON sessions(scene_id);
		CREATE INDEX IF NOT EXISTS idx_sessions_created ON sessions(scene_id, created_at DESC);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return err
	}

	// Databases created before sink errors were recorded lack the column.
	has, err := s.hasColumn("sessions", "sink_errors")
	if err != nil {
		return err
	}
	if !has {
		_, err = s.db.Exec(`ALTER TABLE sessions ADD COLUMN sink_errors INTEGER NOT NULL DEFAULT 0`)
	}
	return err
}

func (s *Store) hasColumn(table, column string) (bool, error) {
	rows, err := s.db.Query(`SELECT name FROM pragma_table_info(?)`, table)
	if err != nil {
		return false, err
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return false, err
		}
		if name == column {
			return true, nil
		}
	}
	return false, rows.Err()
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveSession records a finished session.
// Returns the ID of the inserted record.
func (s *Store) SaveSession(rec SessionRecord) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO sessions
		 (scene_id, width, height, frames, full_frames, dirty_frames, idle_frames, bytes, dropped, sink_errors, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.SceneID,
		rec.Width,
		rec.Height,
		rec.Frames,
		rec.FullFrames,
		rec.DirtyFrames,
		rec.IdleFrames,
		rec.Bytes,
		rec.Dropped,
		rec.SinkErrors,
		rec.Duration.Milliseconds(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save session: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

const sessionColumns = `id, scene_id, width, height, frames, full_frames, dirty_frames,
		        idle_frames, bytes, dropped, sink_errors, duration_ms, created_at`

// RecentSessions retrieves the most recent sessions for the given scene,
// newest first.
func (s *Store) RecentSessions(sceneID string, limit int) ([]SessionRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+sessionColumns+`
		 FROM sessions
		 WHERE scene_id = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		sceneID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	defer rows.Close()

	var records []SessionRecord
	for rows.Next() {
		rec, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// SessionByID retrieves a single session. Returns nil if it does not exist.
func (s *Store) SessionByID(id int64) (*SessionRecord, error) {
	row := s.db.QueryRow(`SELECT `+sessionColumns+` FROM sessions WHERE id = ?`, id)
	rec, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// ClearSessions deletes all sessions for the given scene.
func (s *Store) ClearSessions(sceneID string) error {
	_, err := s.db.Exec("DELETE FROM sessions WHERE scene_id = ?", sceneID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear sessions: %w", err)
	}
	return nil
}

// SceneStats contains aggregated statistics for a scene.
type SceneStats struct {
	SceneID       string
	Sessions      int
	TotalFrames   int64
	TotalBytes    int64
	FullFrames    int64
	BytesPerFrame float64
	LastPlayed    time.Time
}

// GetSceneStats retrieves aggregated statistics for a specific scene.
func (s *Store) GetSceneStats(sceneID string) (*SceneStats, error) {
	stats := &SceneStats{SceneID: sceneID}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(frames), 0), COALESCE(SUM(bytes), 0),
		        COALESCE(SUM(full_frames), 0), MAX(created_at)
		 FROM sessions WHERE scene_id = ?`,
		sceneID,
	).Scan(&stats.Sessions, &stats.TotalFrames, &stats.TotalBytes, &stats.FullFrames, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get scene stats: %w", err)
	}

	if stats.TotalFrames > 0 {
		stats.BytesPerFrame = float64(stats.TotalBytes) / float64(stats.TotalFrames)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

// GetAllScenesStats retrieves statistics for all scenes that have been played.
func (s *Store) GetAllScenesStats() (map[string]*SceneStats, error) {
	rows, err := s.db.Query(
		`SELECT scene_id, COUNT(*), SUM(frames), SUM(bytes), SUM(full_frames), MAX(created_at)
		 FROM sessions
		 GROUP BY scene_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all scene stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*SceneStats)
	for rows.Next() {
		var st SceneStats
		var lastPlayed any
		if err := rows.Scan(&st.SceneID, &st.Sessions, &st.TotalFrames, &st.TotalBytes, &st.FullFrames, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		if st.TotalFrames > 0 {
			st.BytesPerFrame = float64(st.TotalBytes) / float64(st.TotalFrames)
		}
		st.LastPlayed = parseTime(lastPlayed)
		stats[st.SceneID] = &st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (SessionRecord, error) {
	var rec SessionRecord
	var durationMS int64
	var createdAt any

	err := row.Scan(
		&rec.ID,
		&rec.SceneID,
		&rec.Width,
		&rec.Height,
		&rec.Frames,
		&rec.FullFrames,
		&rec.DirtyFrames,
		&rec.IdleFrames,
		&rec.Bytes,
		&rec.Dropped,
		&rec.SinkErrors,
		&durationMS,
		&createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return rec, err
	}
	if err != nil {
		return rec, fmt.Errorf("storage: cannot scan row: %w", err)
	}

	rec.Duration = time.Duration(durationMS) * time.Millisecond
	rec.CreatedAt = parseTime(createdAt)
	return rec, nil
}

// parseTime handles both time.Time and string datetime values from the driver.
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

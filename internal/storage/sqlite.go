// Package storage provides SQLite-based persistence for saved scenes.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-sand/internal/sim"
)

// QuickSlot is the slot used by the sandbox's save and load keys.
const QuickSlot = "quicksave"

// timeLayout is how timestamps are stored; it sorts lexicographically.
const timeLayout = "2006-01-02 15:04:05.000"

// ErrSceneNotFound is returned when a named slot does not exist.
var ErrSceneNotFound = errors.New("storage: scene not found")

// Store manages the SQLite database connection for scene persistence.
// It is safe for concurrent use by multiple sessions.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// SceneInfo describes a saved scene without its payload.
type SceneInfo struct {
	ID        string // Stable UUID, kept across overwrites
	Name      string // Slot name, unique
	Preset    string // Preset the scene started from, if known
	Width     int
	Height    int
	Particles int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SceneRecord is a saved scene including its JSON payload.
type SceneRecord struct {
	SceneInfo
	Payload []byte
}

// Stats contains aggregated statistics over all saved scenes.
type Stats struct {
	Scenes         int
	TotalParticles int64
	LastSaved      time.Time
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

	store := &Store{db: db, now: time.Now}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS scenes (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			preset TEXT NOT NULL DEFAULT '',
			width INTEGER NOT NULL,
			height INTEGER NOT NULL,
			particles INTEGER NOT NULL DEFAULT 0,
			payload TEXT NOT NULL,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_scenes_updated ON scenes(updated_at DESC);
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

// SaveScene writes g into the named slot, replacing any previous contents.
// The slot keeps its ID and creation time when overwritten.
func (s *Store) SaveScene(name, preset string, g *sim.Grid) (SceneInfo, error) {
	if name == "" {
		return SceneInfo{}, errors.New("storage: scene name must not be empty")
	}

	payload, err := sim.Encode(g)
	if err != nil {
		return SceneInfo{}, fmt.Errorf("storage: cannot encode scene: %w", err)
	}

	now := s.now().UTC().Format(timeLayout)
	_, err = s.db.Exec(
		`INSERT INTO scenes (id, name, preset, width, height, particles, payload, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET
		     preset = excluded.preset,
		     width = excluded.width,
		     height = excluded.height,
		     particles = excluded.particles,
		     payload = excluded.payload,
		     updated_at = excluded.updated_at`,
		uuid.NewString(), name, preset, g.W, g.H, sim.CountParticles(g), string(payload), now, now,
	)
	if err != nil {
		return SceneInfo{}, fmt.Errorf("storage: cannot save scene %q: %w", name, err)
	}

	rec, err := s.Scene(name)
	if err != nil {
		return SceneInfo{}, err
	}
	return rec.SceneInfo, nil
}

// Scene retrieves the named slot including its payload.
// Returns ErrSceneNotFound if the slot does not exist.
func (s *Store) Scene(name string) (*SceneRecord, error) {
	var rec SceneRecord
	var payload, createdAt, updatedAt string

	err := s.db.QueryRow(
		`SELECT id, name, preset, width, height, particles, payload, created_at, updated_at
		 FROM scenes
		 WHERE name = ?`,
		name,
	).Scan(
		&rec.ID,
		&rec.Name,
		&rec.Preset,
		&rec.Width,
		&rec.Height,
		&rec.Particles,
		&payload,
		&createdAt,
		&updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %q", ErrSceneNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scene %q: %w", name, err)
	}

	rec.Payload = []byte(payload)
	rec.CreatedAt = parseTime(createdAt)
	rec.UpdatedAt = parseTime(updatedAt)
	return &rec, nil
}

// LoadScene hydrates the named slot into a fresh grid of w by h cells.
// Payload errors wrap the sim sentinels; the caller's grid is never touched.
func (s *Store) LoadScene(name string, w, h int) (*sim.Grid, error) {
	rec, err := s.Scene(name)
	if err != nil {
		return nil, err
	}
	g, err := sim.Hydrate(rec.Payload, w, h)
	if err != nil {
		return nil, fmt.Errorf("storage: scene %q: %w", name, err)
	}
	return g, nil
}

// ListScenes returns every saved scene, most recently updated first.
func (s *Store) ListScenes() ([]SceneInfo, error) {
	rows, err := s.db.Query(
		`SELECT id, name, preset, width, height, particles, created_at, updated_at
		 FROM scenes
		 ORDER BY updated_at DESC, name ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scenes: %w", err)
	}
	defer rows.Close()

	var scenes []SceneInfo
	for rows.Next() {
		var info SceneInfo
		var createdAt, updatedAt string
		if err := rows.Scan(
			&info.ID,
			&info.Name,
			&info.Preset,
			&info.Width,
			&info.Height,
			&info.Particles,
			&createdAt,
			&updatedAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		info.CreatedAt = parseTime(createdAt)
		info.UpdatedAt = parseTime(updatedAt)
		scenes = append(scenes, info)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return scenes, nil
}

// DeleteScene removes the named slot.
// Returns ErrSceneNotFound if the slot does not exist.
func (s *Store) DeleteScene(name string) error {
	res, err := s.db.Exec("DELETE FROM scenes WHERE name = ?", name)
	if err != nil {
		return fmt.Errorf("storage: cannot delete scene %q: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("storage: cannot delete scene %q: %w", name, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %q", ErrSceneNotFound, name)
	}
	return nil
}

// Stats retrieves aggregated statistics over all saved scenes.
func (s *Store) Stats() (Stats, error) {
	var stats Stats
	var last sql.NullString

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(particles), 0), MAX(updated_at) FROM scenes`,
	).Scan(&stats.Scenes, &stats.TotalParticles, &last)
	if err != nil {
		return Stats{}, fmt.Errorf("storage: cannot get scene stats: %w", err)
	}
	if last.Valid {
		stats.LastSaved = parseTime(last.String)
	}
	return stats, nil
}

// parseTime parses a stored timestamp, returning the zero time on failure.
func parseTime(v string) time.Time {
	t, err := time.Parse(timeLayout, v)
	if err != nil {
		return time.Time{}
	}
	return t
}

package journal

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/example/pixler/internal/tools"

	_ "modernc.org/sqlite"
)

// ErrNoSession is returned when a session id does not exist or the journal
// holds no sessions.
var ErrNoSession = errors.New("no such session")

// Current schema version - increment this when the tables change shape
const schemaVersion = 1

const schema = `
CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY
);

CREATE TABLE IF NOT EXISTS sessions (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    started_at INTEGER NOT NULL,      -- UnixNano
    width INTEGER NOT NULL,
    height INTEGER NOT NULL,
    note TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS events (
    session_id INTEGER NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
    seq INTEGER NOT NULL,
    kind TEXT NOT NULL,
    tool TEXT NOT NULL DEFAULT '',
    button INTEGER NOT NULL DEFAULT 0,
    x INTEGER NOT NULL DEFAULT 0,
    y INTEGER NOT NULL DEFAULT 0,
    key INTEGER NOT NULL DEFAULT 0,
    arg TEXT NOT NULL DEFAULT '',
    PRIMARY KEY (session_id, seq)
);
`

// Store is a journal database.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// SessionInfo summarises a recorded session.
type SessionInfo struct {
	ID        int64
	StartedAt time.Time
	Width     int
	Height    int
	Note      string
	Events    int
}

// Open creates or opens the journal at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	dsn := path +
		"?_pragma=journal_mode(WAL)" +
		"&_pragma=synchronous(NORMAL)" +
		"&_pragma=foreign_keys(ON)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to journal: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	var version int
	if err := db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&version); err != nil && !errors.Is(err, sql.ErrNoRows) {
		db.Close()
		return nil, fmt.Errorf("failed to read schema version: %w", err)
	}
	if version > schemaVersion {
		db.Close()
		return nil, fmt.Errorf("journal schema version %d is newer than supported %d", version, schemaVersion)
	}
	if version < schemaVersion {
		if _, err := db.Exec("INSERT OR REPLACE INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to update schema version: %w", err)
		}
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Begin starts a new session for a surface of the given size.
func (s *Store) Begin(width, height int, note string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	res, err := s.db.Exec("INSERT INTO sessions (started_at, width, height, note) VALUES (?, ?, ?, ?)",
		time.Now().UnixNano(), width, height, note)
	if err != nil {
		return nil, fmt.Errorf("failed to begin session: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	tools.Logger().Debug("journal session started", "id", id, "width", width, "height", height)
	return &Session{ID: id, store: s}, nil
}

// Sessions lists every session, oldest first.
func (s *Store) Sessions() ([]SessionInfo, error) {
	rows, err := s.db.Query(`
SELECT s.id, s.started_at, s.width, s.height, s.note, COUNT(e.seq)
FROM sessions s LEFT JOIN events e ON e.session_id = s.id
GROUP BY s.id ORDER BY s.id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var out []SessionInfo
	for rows.Next() {
		var info SessionInfo
		var started int64
		if err := rows.Scan(&info.ID, &started, &info.Width, &info.Height, &info.Note, &info.Events); err != nil {
			return nil, err
		}
		info.StartedAt = time.Unix(0, started)
		out = append(out, info)
	}
	return out, rows.Err()
}

// Session returns the summary of one session.
func (s *Store) Session(id int64) (SessionInfo, error) {
	all, err := s.Sessions()
	if err != nil {
		return SessionInfo{}, err
	}
	for _, info := range all {
		if info.ID == id {
			return info, nil
		}
	}
	return SessionInfo{}, fmt.Errorf("%w: %d", ErrNoSession, id)
}

// Latest returns the id of the most recent session.
func (s *Store) Latest() (int64, error) {
	var id int64
	err := s.db.QueryRow("SELECT id FROM sessions ORDER BY id DESC LIMIT 1").Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNoSession
	}
	return id, err
}

// Events returns the events of session id in recording order.
func (s *Store) Events(id int64) ([]Event, error) {
	if _, err := s.Session(id); err != nil {
		return nil, err
	}
	rows, err := s.db.Query("SELECT kind, tool, button, x, y, key, arg FROM events WHERE session_id = ? ORDER BY seq", id)
	if err != nil {
		return nil, fmt.Errorf("failed to read events: %w", err)
	}
	defer rows.Close()

	var out []Event
	for rows.Next() {
		var ev Event
		var kind string
		var button, key int
		if err := rows.Scan(&kind, &ev.Tool, &button, &ev.X, &ev.Y, &key, &ev.Arg); err != nil {
			return nil, err
		}
		ev.Kind = Kind(kind)
		ev.Button = tools.Button(button)
		ev.Key = tools.Key(key)
		out = append(out, ev)
	}
	return out, rows.Err()
}

// Delete removes a session and its events.
func (s *Store) Delete(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.db.Exec("DELETE FROM events WHERE session_id = ?", id); err != nil {
		return err
	}
	res, err := s.db.Exec("DELETE FROM sessions WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %d", ErrNoSession, id)
	}
	return nil
}

// Session appends events to one recorded session.
type Session struct {
	ID    int64
	store *Store
	seq   int
}

// Record appends ev.
func (s *Session) Record(ev Event) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	_, err := s.store.db.Exec(
		"INSERT INTO events (session_id, seq, kind, tool, button, x, y, key, arg) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
		s.ID, s.seq, string(ev.Kind), ev.Tool, int(ev.Button), ev.X, ev.Y, int(ev.Key), ev.Arg)
	if err != nil {
		return fmt.Errorf("failed to record event: %w", err)
	}
	s.seq++
	return nil
}

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"github.com/athena-mem/athena/internal/embedding"
	"github.com/athena-mem/athena/internal/model"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db       *sql.DB
	entropy  *rand.Rand
	embedder embedding.Embedder // nil disables semantic ranking
}

// NewSQLiteStore opens or creates a SQLite database at the given path.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &SQLiteStore{
		db:      db,
		entropy: rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) newID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), s.entropy).String()
}

// SetEmbedder attaches a semantic embedding provider. New memories get
// vectors, and retrieval blends cosine similarity into the ranking.
func (s *SQLiteStore) SetEmbedder(e embedding.Embedder) {
	s.embedder = e
}

// embedBlob computes a stored vector for content. Embedding failures
// are swallowed; a memory without a vector just ranks on salience.
func (s *SQLiteStore) embedBlob(ctx context.Context, text string) []byte {
	if s.embedder == nil {
		return nil
	}
	vec, err := s.embedder.Embed(ctx, text)
	if err != nil {
		return nil
	}
	return embedding.Encode(vec)
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS events (
		id          TEXT PRIMARY KEY,
		project     TEXT NOT NULL,
		session_id  TEXT NOT NULL,
		event_type  TEXT NOT NULL,
		outcome     TEXT,
		content     TEXT,
		files       TEXT,
		timestamp   TEXT NOT NULL,
		created_at  TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_events_project_ts ON events(project, timestamp);
	CREATE INDEX IF NOT EXISTS idx_events_session ON events(session_id);

	CREATE TABLE IF NOT EXISTS relations (
		id            TEXT PRIMARY KEY,
		project       TEXT NOT NULL,
		from_event_id TEXT NOT NULL REFERENCES events(id),
		to_event_id   TEXT NOT NULL REFERENCES events(id),
		relation_type TEXT NOT NULL,
		strength      REAL NOT NULL,
		inferred_at   TEXT NOT NULL,
		UNIQUE (from_event_id, to_event_id, relation_type)
	);
	CREATE INDEX IF NOT EXISTS idx_relations_project ON relations(project);

	CREATE TABLE IF NOT EXISTS patterns (
		id           TEXT PRIMARY KEY,
		project      TEXT NOT NULL,
		pattern_type TEXT NOT NULL,
		confidence   REAL NOT NULL,
		description  TEXT,
		event_ids    TEXT NOT NULL,
		detected_at  TEXT NOT NULL,
		UNIQUE (project, pattern_type, event_ids)
	);
	CREATE INDEX IF NOT EXISTS idx_patterns_project ON patterns(project);

	CREATE TABLE IF NOT EXISTS memories (
		id                  TEXT PRIMARY KEY,
		project             TEXT NOT NULL,
		source              TEXT NOT NULL DEFAULT 'manual',
		content             TEXT NOT NULL,
		importance          REAL NOT NULL DEFAULT 0.5,
		last_accessed       TEXT NOT NULL,
		activation_count    INTEGER NOT NULL DEFAULT 0,
		consolidation_score REAL NOT NULL DEFAULT 0,
		actionability_score REAL NOT NULL DEFAULT 0,
		has_next_step       INTEGER NOT NULL DEFAULT 0,
		outcome             TEXT,
		activation_level    REAL NOT NULL DEFAULT 0,
		salience_score      REAL NOT NULL DEFAULT 0,
		created_at          TEXT NOT NULL,
		embedding           BLOB
	);
	CREATE INDEX IF NOT EXISTS idx_memories_project ON memories(project);
	CREATE INDEX IF NOT EXISTS idx_memories_salience ON memories(project, salience_score DESC);
	`
	_, err := s.db.Exec(schema)
	return err
}

// RecordEvent appends one episodic event. A missing session id gets a
// fresh UUID; a zero timestamp defaults to now.
func (s *SQLiteStore) RecordEvent(ctx context.Context, p RecordParams) (*model.EpisodicEvent, error) {
	sessionID := p.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	ts := p.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	event := model.EpisodicEvent{
		ID:        s.newID(),
		SessionID: sessionID,
		Type:      p.Type,
		Outcome:   p.Outcome,
		Content:   p.Content,
		Files:     p.Files,
		Timestamp: ts,
	}
	if err := event.Validate(); err != nil {
		return nil, err
	}
	if p.Project == "" {
		return nil, fmt.Errorf("project is required")
	}

	var filesJSON *string
	if len(event.Files) > 0 {
		b, _ := json.Marshal(event.Files)
		str := string(b)
		filesJSON = &str
	}

	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO events (id, project, session_id, event_type, outcome, content, files, timestamp, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		event.ID, p.Project, event.SessionID, string(event.Type), string(event.Outcome),
		event.Content, filesJSON, event.Timestamp.Format(time.RFC3339Nano), now)
	if err != nil {
		return nil, fmt.Errorf("insert event: %w", err)
	}

	return &event, nil
}

// ListEvents returns events in timestamp order.
func (s *SQLiteStore) ListEvents(ctx context.Context, p ListEventsParams) ([]model.EpisodicEvent, error) {
	where := []string{"project = ?"}
	args := []interface{}{p.Project}

	if p.SessionID != "" {
		where = append(where, "session_id = ?")
		args = append(args, p.SessionID)
	}
	if p.Type != "" {
		where = append(where, "event_type = ?")
		args = append(args, string(p.Type))
	}

	query := `SELECT id, session_id, event_type, outcome, content, files, timestamp
	          FROM events WHERE ` + strings.Join(where, " AND ") + ` ORDER BY timestamp`
	if p.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, p.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEvents(rows)
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanEvent(row scanner) (model.EpisodicEvent, error) {
	var e model.EpisodicEvent
	var eventType, timestamp string
	var outcome, content, filesJSON sql.NullString

	err := row.Scan(&e.ID, &e.SessionID, &eventType, &outcome, &content, &filesJSON, &timestamp)
	if err != nil {
		return e, err
	}

	e.Type = model.EventType(eventType)
	if outcome.Valid {
		e.Outcome = model.Outcome(outcome.String)
	}
	if content.Valid {
		e.Content = content.String
	}
	if filesJSON.Valid {
		json.Unmarshal([]byte(filesJSON.String), &e.Files)
	}
	e.Timestamp, _ = time.Parse(time.RFC3339Nano, timestamp)

	return e, nil
}

func scanEvents(rows *sql.Rows) ([]model.EpisodicEvent, error) {
	var events []model.EpisodicEvent
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

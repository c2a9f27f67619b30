package store

import (
	"context"

	"github.com/athena-mem/athena/internal/model"
)

// SessionStats holds per-session event counts.
type SessionStats struct {
	SessionID string `json:"session_id"`
	Events    int    `json:"events"`
	FirstSeen string `json:"first_seen"`
	LastSeen  string `json:"last_seen"`
}

// SearchEvents finds events whose content matches the query substring.
func (s *SQLiteStore) SearchEvents(ctx context.Context, p SearchEventsParams) ([]model.EpisodicEvent, error) {
	limit := p.Limit
	if limit <= 0 {
		limit = 20
	}

	query := "%" + p.Query + "%"
	where := "content LIKE ?"
	args := []interface{}{query}

	if p.Project != "" {
		where = "project = ? AND " + where
		args = append([]interface{}{p.Project}, args...)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, session_id, event_type, outcome, content, files, timestamp
		 FROM events WHERE `+where+` ORDER BY timestamp DESC LIMIT ?`,
		append(args, limit)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEvents(rows)
}

// ListSessions returns per-session event counts for a project.
func (s *SQLiteStore) ListSessions(ctx context.Context, project string) ([]SessionStats, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT session_id, COUNT(*) AS cnt, MIN(timestamp), MAX(timestamp)
		FROM events WHERE project = ?
		GROUP BY session_id ORDER BY MAX(timestamp) DESC`, project)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []SessionStats
	for rows.Next() {
		var st SessionStats
		if err := rows.Scan(&st.SessionID, &st.Events, &st.FirstSeen, &st.LastSeen); err != nil {
			return nil, err
		}
		sessions = append(sessions, st)
	}
	return sessions, rows.Err()
}

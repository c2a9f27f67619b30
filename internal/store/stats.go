package store

import (
	"context"
	"os"
)

// Stats holds database statistics.
type Stats struct {
	DBPath        string         `json:"db_path"`
	DBSizeBytes   int64          `json:"db_size_bytes"`
	TotalEvents   int            `json:"total_events"`
	TotalRelation int            `json:"total_relations"`
	TotalPatterns int            `json:"total_patterns"`
	TotalMemories int            `json:"total_memories"`
	Sessions      []SessionStats `json:"sessions,omitempty"`
}

// Stats returns database statistics, with per-session event counts
// when a project is given.
func (s *SQLiteStore) Stats(ctx context.Context, dbPath, project string) (*Stats, error) {
	st := &Stats{DBPath: dbPath}

	// DB file size
	if info, err := os.Stat(dbPath); err == nil {
		st.DBSizeBytes = info.Size()
	}

	s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM events`).Scan(&st.TotalEvents)
	s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM relations`).Scan(&st.TotalRelation)
	s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM patterns`).Scan(&st.TotalPatterns)
	s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM memories`).Scan(&st.TotalMemories)

	if project != "" {
		sessions, err := s.ListSessions(ctx, project)
		if err != nil {
			return st, err
		}
		st.Sessions = sessions
	}

	return st, nil
}

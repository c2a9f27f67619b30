package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/athena-mem/athena/internal/model"
	"github.com/athena-mem/athena/internal/temporal"
)

// Consolidate loads a project's events in timestamp order, runs the
// chaining / inference / pattern pipeline, and persists the derived
// relations and patterns. Each detected pattern is promoted to a
// memory row with importance set to its confidence; re-running a pass
// over the same events is a no-op for already-promoted patterns.
func (s *SQLiteStore) Consolidate(ctx context.Context, p ConsolidateParams) (*ConsolidationResult, error) {
	events, err := s.ListEvents(ctx, ListEventsParams{Project: p.Project, SessionID: p.SessionID})
	if err != nil {
		return nil, fmt.Errorf("load events: %w", err)
	}

	result := &ConsolidationResult{Events: len(events)}
	if len(events) == 0 {
		return result, nil
	}

	chains, err := temporal.BuildChains(events, temporal.ChainOptions{
		MaxGap:          p.MaxGap,
		SameSessionOnly: p.SameSessionOnly,
	})
	if err != nil {
		return nil, fmt.Errorf("build chains: %w", err)
	}
	result.Chains = len(chains)

	inf := temporal.NewInferencer()
	relations, err := inf.Relations(events)
	if err != nil {
		return nil, fmt.Errorf("classify relations: %w", err)
	}
	causal, err := inf.CausalRelations(events)
	if err != nil {
		return nil, fmt.Errorf("infer causal relations: %w", err)
	}
	result.Relations = len(relations)
	result.CausalRelations = len(causal)

	var patterns []model.CausalPattern
	for _, chain := range chains {
		found, err := temporal.DetectPatterns(chain.Events)
		if err != nil {
			return nil, fmt.Errorf("detect patterns: %w", err)
		}
		patterns = append(patterns, found...)
	}
	result.Patterns = patterns

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	for _, rel := range append(relations, causal...) {
		_, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO relations (id, project, from_event_id, to_event_id, relation_type, strength, inferred_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			s.newID(), p.Project, rel.FromEventID, rel.ToEventID, string(rel.Type),
			rel.Strength, rel.InferredAt.Format(time.RFC3339))
		if err != nil {
			return nil, fmt.Errorf("insert relation: %w", err)
		}
	}

	now := time.Now().UTC()
	for _, pattern := range patterns {
		ids, _ := json.Marshal(pattern.EventIDs())
		patternID := s.newID()

		res, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO patterns (id, project, pattern_type, confidence, description, event_ids, detected_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			patternID, p.Project, string(pattern.Type), pattern.Confidence,
			pattern.Description, string(ids), now.Format(time.RFC3339))
		if err != nil {
			return nil, fmt.Errorf("insert pattern: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			continue // already extracted in an earlier pass
		}

		if err := s.promote(ctx, tx, p.Project, patternID, pattern, now); err != nil {
			return nil, err
		}
		result.Promoted++
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return result, nil
}

// promote writes a detected pattern into the memories table so decay
// and retrieval see it. Importance starts at the pattern's confidence.
func (s *SQLiteStore) promote(ctx context.Context, tx execer, project, patternID string, pattern model.CausalPattern, now time.Time) error {
	outcome := model.OutcomeUnknown
	if last := pattern.Events[len(pattern.Events)-1]; last.Type == model.EventSuccess || last.Outcome == model.OutcomeSuccess {
		outcome = model.OutcomeSuccess
	}

	_, err := tx.ExecContext(ctx,
		`INSERT INTO memories
		 (id, project, source, content, importance, last_accessed, activation_count,
		  consolidation_score, actionability_score, has_next_step, outcome, activation_level, salience_score, created_at, embedding)
		 VALUES (?, ?, ?, ?, ?, ?, 0, ?, 0, 0, ?, 0, 0, ?, ?)`,
		s.newID(), project, patternID, pattern.Description, pattern.Confidence,
		now.Format(time.RFC3339), pattern.Confidence, string(outcome), now.Format(time.RFC3339),
		s.embedBlob(ctx, pattern.Description))
	if err != nil {
		return fmt.Errorf("promote pattern: %w", err)
	}
	return nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// ListRelations returns persisted relations, newest first.
func (s *SQLiteStore) ListRelations(ctx context.Context, p ListRelationsParams) ([]model.TemporalRelation, error) {
	limit := p.Limit
	if limit <= 0 {
		limit = 50
	}

	where := "project = ?"
	args := []interface{}{p.Project}
	if p.Type != "" {
		where += " AND relation_type = ?"
		args = append(args, string(p.Type))
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT from_event_id, to_event_id, relation_type, strength, inferred_at
		 FROM relations WHERE `+where+` ORDER BY inferred_at DESC LIMIT ?`,
		append(args, limit)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var relations []model.TemporalRelation
	for rows.Next() {
		var rel model.TemporalRelation
		var relType, inferredAt string
		if err := rows.Scan(&rel.FromEventID, &rel.ToEventID, &relType, &rel.Strength, &inferredAt); err != nil {
			return nil, err
		}
		rel.Type = model.RelationType(relType)
		rel.InferredAt, _ = time.Parse(time.RFC3339, inferredAt)
		relations = append(relations, rel)
	}
	return relations, rows.Err()
}

// ListPatterns returns persisted patterns, newest first.
func (s *SQLiteStore) ListPatterns(ctx context.Context, p ListPatternsParams) ([]StoredPattern, error) {
	limit := p.Limit
	if limit <= 0 {
		limit = 50
	}

	where := "project = ?"
	args := []interface{}{p.Project}
	if p.Type != "" {
		where += " AND pattern_type = ?"
		args = append(args, string(p.Type))
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, project, pattern_type, confidence, description, event_ids, detected_at
		 FROM patterns WHERE `+where+` ORDER BY detected_at DESC LIMIT ?`,
		append(args, limit)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var patterns []StoredPattern
	for rows.Next() {
		var sp StoredPattern
		var patternType, idsJSON, detectedAt string
		if err := rows.Scan(&sp.ID, &sp.Project, &patternType, &sp.Confidence, &sp.Description, &idsJSON, &detectedAt); err != nil {
			return nil, err
		}
		sp.Type = model.PatternType(patternType)
		json.Unmarshal([]byte(idsJSON), &sp.EventIDs)
		sp.DetectedAt, _ = time.Parse(time.RFC3339, detectedAt)
		patterns = append(patterns, sp)
	}
	return patterns, rows.Err()
}

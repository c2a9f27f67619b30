package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/athena-mem/athena/internal/decay"
	"github.com/athena-mem/athena/internal/embedding"
	"github.com/athena-mem/athena/internal/model"
)

// ApplyDecay runs one importance-decay cycle over a project's memories
// and persists the new importance/activation/salience values. Cycles
// are serialized by running inside a single transaction; the decay
// math itself lives in the decay package.
func (s *SQLiteStore) ApplyDecay(ctx context.Context, p DecayParams) (*decay.Summary, error) {
	rate := p.Rate
	if rate <= 0 {
		rate = decay.DefaultRate
	}
	threshold := p.DaysThreshold
	if threshold <= 0 {
		threshold = decay.DefaultDaysThreshold
	}

	items, err := s.loadMemories(ctx, p.Project, "")
	if err != nil {
		return nil, fmt.Errorf("load memories: %w", err)
	}

	now := time.Now().UTC()
	summary := decay.ApplyImportanceDecay(items, rate, threshold, now)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	for _, item := range items {
		_, err := tx.ExecContext(ctx,
			`UPDATE memories SET importance = ?, activation_level = ?, salience_score = ? WHERE id = ?`,
			item.Importance, item.ActivationLevel, item.SalienceScore, item.ID)
		if err != nil {
			return nil, fmt.Errorf("update memory %s: %w", item.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &summary, nil
}

// Prune hard-deletes memories whose importance has decayed to zero
// (three-decimal rounding, matching the decay summary's zero count).
func (s *SQLiteStore) Prune(ctx context.Context, project string) (int, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM memories WHERE project = ? AND importance < 0.0005`, project)
	if err != nil {
		return 0, err
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

// loadMemories returns a project's memories, optionally filtered by a
// content substring.
func (s *SQLiteStore) loadMemories(ctx context.Context, project, contentLike string) ([]*model.MemoryItem, error) {
	where := "project = ?"
	args := []interface{}{project}
	if contentLike != "" {
		where += " AND content LIKE ?"
		args = append(args, "%"+contentLike+"%")
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, project, source, content, importance, last_accessed, activation_count,
		        consolidation_score, actionability_score, has_next_step, outcome,
		        activation_level, salience_score, created_at, embedding
		 FROM memories WHERE `+where, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*model.MemoryItem
	for rows.Next() {
		item, err := scanMemory(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func scanMemory(row scanner) (*model.MemoryItem, error) {
	var item model.MemoryItem
	var lastAccessed, createdAt string
	var outcome sql.NullString
	var hasNextStep int
	var embeddingBlob []byte

	err := row.Scan(&item.ID, &item.Project, &item.Source, &item.Content, &item.Importance,
		&lastAccessed, &item.ActivationCount, &item.ConsolidationScore, &item.ActionabilityScore,
		&hasNextStep, &outcome, &item.ActivationLevel, &item.SalienceScore, &createdAt, &embeddingBlob)
	if err != nil {
		return nil, err
	}

	item.HasNextStep = hasNextStep != 0
	if outcome.Valid {
		item.Outcome = model.Outcome(outcome.String)
	}
	item.LastAccessed, _ = time.Parse(time.RFC3339, lastAccessed)
	item.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	item.Embedding = embedding.Decode(embeddingBlob)

	return &item, nil
}

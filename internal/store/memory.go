package store

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/athena-mem/athena/internal/model"
)

// AddMemoryParams holds parameters for storing a memory directly,
// outside the pattern-promotion path.
type AddMemoryParams struct {
	Project            string
	Content            string
	Importance         float64
	ConsolidationScore float64
	ActionabilityScore float64
	HasNextStep        bool
	Outcome            model.Outcome
	LastAccessed       time.Time // defaults to now; imports keep their own
}

// AddMemory stores a manually supplied memory.
func (s *SQLiteStore) AddMemory(ctx context.Context, p AddMemoryParams) (*model.MemoryItem, error) {
	if p.Project == "" {
		return nil, fmt.Errorf("project is required")
	}
	if p.Content == "" {
		return nil, fmt.Errorf("content is required")
	}
	if p.Importance < 0 || p.Importance > 1 {
		return nil, fmt.Errorf("%w: importance %v outside [0,1]", model.ErrValidation, p.Importance)
	}

	now := time.Now().UTC()
	lastAccessed := p.LastAccessed
	if lastAccessed.IsZero() {
		lastAccessed = now
	}

	item := &model.MemoryItem{
		ID:                 s.newID(),
		Project:            p.Project,
		Source:             "manual",
		Content:            p.Content,
		Importance:         p.Importance,
		LastAccessed:       lastAccessed,
		ConsolidationScore: p.ConsolidationScore,
		ActionabilityScore: p.ActionabilityScore,
		HasNextStep:        p.HasNextStep,
		Outcome:            p.Outcome,
		CreatedAt:          now,
	}

	hasNext := 0
	if item.HasNextStep {
		hasNext = 1
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO memories
		 (id, project, source, content, importance, last_accessed, activation_count,
		  consolidation_score, actionability_score, has_next_step, outcome, activation_level, salience_score, created_at, embedding)
		 VALUES (?, ?, ?, ?, ?, ?, 0, ?, ?, ?, ?, 0, 0, ?, ?)`,
		item.ID, item.Project, item.Source, item.Content, item.Importance,
		item.LastAccessed.Format(time.RFC3339), item.ConsolidationScore,
		item.ActionabilityScore, hasNext, string(item.Outcome), now.Format(time.RFC3339),
		s.embedBlob(ctx, item.Content))
	if err != nil {
		return nil, fmt.Errorf("insert memory: %w", err)
	}

	return item, nil
}

// ListMemories returns a project's memories ordered by salience.
func (s *SQLiteStore) ListMemories(ctx context.Context, project string, limit int) ([]*model.MemoryItem, error) {
	items, err := s.loadMemories(ctx, project, "")
	if err != nil {
		return nil, err
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].SalienceScore > items[j].SalienceScore
	})
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

package store

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/athena-mem/athena/internal/decay"
	"github.com/athena-mem/athena/internal/embedding"
	"github.com/athena-mem/athena/internal/excerpt"
)

// Retrieve assembles the most salient memories within a token budget.
// Memories are ranked by the activation/salience formula and greedily
// packed; returned memories get their access tracking bumped. With an
// embedder configured, a query additionally pulls in semantically
// similar memories instead of relying on substring match.
func (s *SQLiteStore) Retrieve(ctx context.Context, p RetrieveParams) (*RetrieveResult, error) {
	budget := p.Budget
	if budget <= 0 {
		budget = 4000
	}
	// Convert token budget to char budget (rough: 4 chars/token)
	charBudget := budget * 4

	var queryVec embedding.Vector
	contentFilter := p.Query
	if s.embedder != nil && p.Query != "" {
		if vec, err := s.embedder.Embed(ctx, p.Query); err == nil {
			queryVec = vec
			contentFilter = ""
		}
	}

	items, err := s.loadMemories(ctx, p.Project, contentFilter)
	if err != nil {
		return nil, err
	}

	result := &RetrieveResult{Budget: budget, Memories: []RetrievedMemory{}}
	if len(items) == 0 {
		return result, nil
	}

	now := time.Now().UTC()
	type scored struct {
		idx      int
		salience float64
	}
	candidates := make([]scored, len(items))
	for i, item := range items {
		_, salience := decay.Score(item, now)
		if queryVec != nil {
			salience += 2.0 * embedding.CosineSimilarity(queryVec, item.Embedding)
		}
		candidates[i] = scored{idx: i, salience: salience}
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].salience > candidates[j].salience
	})

	used := 0
	var accessed []string
	for _, c := range candidates {
		item := items[c.idx]
		rounded := math.Round(c.salience*100) / 100

		if contentLen := len(item.Content); used+contentLen <= charBudget {
			result.Memories = append(result.Memories, RetrievedMemory{
				ID:         item.ID,
				Content:    item.Content,
				Source:     item.Source,
				Importance: item.Importance,
				Salience:   rounded,
			})
			used += contentLen
			accessed = append(accessed, item.ID)
		} else if remaining := charBudget - used; remaining >= 100 {
			clipped := excerpt.Clip(item.Content, remaining)
			if clipped == "" {
				break
			}
			result.Memories = append(result.Memories, RetrievedMemory{
				ID:         item.ID,
				Content:    clipped,
				Source:     item.Source,
				Importance: item.Importance,
				Salience:   rounded,
				Excerpt:    true,
			})
			used += len(clipped)
			accessed = append(accessed, item.ID)
			break // budget full
		} else {
			break
		}
	}

	// Retrieval counts as activation
	nowStr := now.Format(time.RFC3339)
	for _, id := range accessed {
		s.db.ExecContext(ctx,
			`UPDATE memories SET activation_count = activation_count + 1, last_accessed = ? WHERE id = ?`,
			nowStr, id)
	}

	// Convert used chars back to approximate tokens
	result.Used = used / 4

	return result, nil
}

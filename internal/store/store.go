// Package store provides SQLite persistence for episodic events and
// consolidated memories, plus the consolidation and decay entry points
// that feed the temporal pipeline.
package store

import (
	"context"
	"time"

	"github.com/athena-mem/athena/internal/decay"
	"github.com/athena-mem/athena/internal/model"
)

// RecordParams holds parameters for recording an episodic event.
type RecordParams struct {
	Project   string
	SessionID string // generated when empty
	Type      model.EventType
	Outcome   model.Outcome
	Content   string
	Files     []string
	Timestamp time.Time // defaults to now
}

// ListEventsParams holds parameters for listing events.
type ListEventsParams struct {
	Project   string
	SessionID string
	Type      model.EventType
	Limit     int
}

// SearchEventsParams holds parameters for searching event content.
type SearchEventsParams struct {
	Project string
	Query   string
	Limit   int
}

// ConsolidateParams holds parameters for a consolidation pass.
type ConsolidateParams struct {
	Project         string
	SessionID       string // restrict to one session when set
	SameSessionOnly bool
	MaxGap          time.Duration // 0 means the default one hour
}

// ConsolidationResult summarizes one consolidation pass.
type ConsolidationResult struct {
	Events          int                   `json:"events"`
	Chains          int                   `json:"chains"`
	Relations       int                   `json:"relations"`
	CausalRelations int                   `json:"causal_relations"`
	Patterns        []model.CausalPattern `json:"patterns"`
	Promoted        int                   `json:"promoted"`
}

// DecayParams holds parameters for an importance-decay pass.
type DecayParams struct {
	Project       string
	Rate          float64 // 0 means the default
	DaysThreshold int     // 0 means the default
}

// RetrieveParams holds parameters for activation-ranked retrieval.
type RetrieveParams struct {
	Project string
	Query   string
	Budget  int // max tokens in output (rough proxy: 1 token ≈ 4 chars)
}

// RetrievedMemory is a scored memory in a retrieval result.
type RetrievedMemory struct {
	ID         string  `json:"id"`
	Content    string  `json:"content"`
	Source     string  `json:"source,omitempty"`
	Importance float64 `json:"importance"`
	Salience   float64 `json:"salience"`
	Excerpt    bool    `json:"excerpt,omitempty"`
}

// RetrieveResult is the assembled retrieval response.
type RetrieveResult struct {
	Budget   int               `json:"budget"`
	Used     int               `json:"used"`
	Memories []RetrievedMemory `json:"memories"`
}

// ListRelationsParams filters persisted relations.
type ListRelationsParams struct {
	Project string
	Type    model.RelationType
	Limit   int
}

// ListPatternsParams filters persisted patterns.
type ListPatternsParams struct {
	Project string
	Type    model.PatternType
	Limit   int
}

// StoredPattern is a persisted pattern row.
type StoredPattern struct {
	ID          string            `json:"id"`
	Project     string            `json:"project"`
	Type        model.PatternType `json:"pattern_type"`
	Confidence  float64           `json:"confidence"`
	Description string            `json:"description"`
	EventIDs    []string          `json:"event_ids"`
	DetectedAt  time.Time         `json:"detected_at"`
}

// Store defines the persistence interface.
type Store interface {
	// RecordEvent appends one episodic event. Returns the stored event.
	RecordEvent(ctx context.Context, p RecordParams) (*model.EpisodicEvent, error)

	// ListEvents returns events in timestamp order.
	ListEvents(ctx context.Context, p ListEventsParams) ([]model.EpisodicEvent, error)

	// SearchEvents finds events whose content matches the query substring.
	SearchEvents(ctx context.Context, p SearchEventsParams) ([]model.EpisodicEvent, error)

	// ListSessions returns per-session event counts for a project.
	ListSessions(ctx context.Context, project string) ([]SessionStats, error)

	// Consolidate runs the chain/relation/pattern pipeline over stored
	// events and persists the derived structures.
	Consolidate(ctx context.Context, p ConsolidateParams) (*ConsolidationResult, error)

	// ApplyDecay runs one importance-decay cycle over a project's memories.
	ApplyDecay(ctx context.Context, p DecayParams) (*decay.Summary, error)

	// Retrieve assembles activation-ranked memories within a budget.
	Retrieve(ctx context.Context, p RetrieveParams) (*RetrieveResult, error)

	// Prune removes memories whose importance has decayed to zero.
	Prune(ctx context.Context, project string) (int, error)

	// Close closes the store.
	Close() error
}

package model

import (
	"fmt"
	"time"
)

// RelationType classifies how one event follows another.
type RelationType string

const (
	RelationImmediatelyAfter RelationType = "immediately_after"
	RelationShortlyAfter     RelationType = "shortly_after"
	RelationLaterAfter       RelationType = "later_after"
	RelationCaused           RelationType = "caused"
)

// ValidRelationTypes are the allowed relation types.
var ValidRelationTypes = map[RelationType]bool{
	RelationImmediatelyAfter: true,
	RelationShortlyAfter:     true,
	RelationLaterAfter:       true,
	RelationCaused:           true,
}

// TemporalRelation links two events with a typed, weighted edge.
// Immutable once constructed.
type TemporalRelation struct {
	FromEventID string       `json:"from_event_id"`
	ToEventID   string       `json:"to_event_id"`
	Type        RelationType `json:"relation_type"`
	Strength    float64      `json:"strength"`
	InferredAt  time.Time    `json:"inferred_at"`
}

// NewTemporalRelation validates and builds a relation. Out-of-range
// strength or an unknown relation type fails immediately; nothing is
// clamped.
func NewTemporalRelation(fromID, toID string, relType RelationType, strength float64, inferredAt time.Time) (TemporalRelation, error) {
	if fromID == "" || toID == "" {
		return TemporalRelation{}, fmt.Errorf("%w: relation requires both event ids", ErrValidation)
	}
	if !ValidRelationTypes[relType] {
		return TemporalRelation{}, fmt.Errorf("%w: invalid relation type %q", ErrValidation, relType)
	}
	if strength < 0 || strength > 1 {
		return TemporalRelation{}, fmt.Errorf("%w: relation strength %v outside [0,1]", ErrValidation, strength)
	}
	return TemporalRelation{
		FromEventID: fromID,
		ToEventID:   toID,
		Type:        relType,
		Strength:    strength,
		InferredAt:  inferredAt,
	}, nil
}

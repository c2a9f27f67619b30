package model

import (
	"fmt"
	"time"
)

// ChainTypeTemporal is the chain type produced by adjacency chaining.
const ChainTypeTemporal = "temporal"

// EventChain is an ordered, non-empty run of events bounded by session
// and adjacency-gap rules. Chains are transient: they exist for one
// consolidation pass and only derived relations/patterns are persisted.
type EventChain struct {
	Events    []EpisodicEvent `json:"events"`
	ChainType string          `json:"chain_type"`
	SessionID string          `json:"session_id,omitempty"`
	StartTime time.Time       `json:"start_time"`
	EndTime   time.Time       `json:"end_time"`
}

// NewEventChain builds a chain from an ordered event slice. Empty
// chains are never valid.
func NewEventChain(events []EpisodicEvent, sessionID string) (EventChain, error) {
	if len(events) == 0 {
		return EventChain{}, fmt.Errorf("%w: chain requires at least one event", ErrValidation)
	}
	return EventChain{
		Events:    events,
		ChainType: ChainTypeTemporal,
		SessionID: sessionID,
		StartTime: events[0].Timestamp,
		EndTime:   events[len(events)-1].Timestamp,
	}, nil
}

// Len returns the number of events in the chain.
func (c EventChain) Len() int { return len(c.Events) }

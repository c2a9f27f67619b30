package model

import "fmt"

// PatternType names a known causal motif.
type PatternType string

const (
	PatternTDDCycle     PatternType = "tdd_cycle"
	PatternErrorFix     PatternType = "error_fix"
	PatternDebugSession PatternType = "debug_session"
)

// ValidPatternTypes are the allowed pattern types.
var ValidPatternTypes = map[PatternType]bool{
	PatternTDDCycle:     true,
	PatternErrorFix:     true,
	PatternDebugSession: true,
}

// CausalPattern is a confidence-scored motif extracted from a chain.
// Read-only after construction; handed to the promotion step.
type CausalPattern struct {
	Type        PatternType     `json:"pattern_type"`
	Events      []EpisodicEvent `json:"events"`
	Confidence  float64         `json:"confidence"`
	Description string          `json:"description"`
}

// NewCausalPattern validates and builds a pattern. Confidence outside
// [0,1] or an unknown type fails immediately.
func NewCausalPattern(patternType PatternType, events []EpisodicEvent, confidence float64, description string) (CausalPattern, error) {
	if !ValidPatternTypes[patternType] {
		return CausalPattern{}, fmt.Errorf("%w: invalid pattern type %q", ErrValidation, patternType)
	}
	if len(events) == 0 {
		return CausalPattern{}, fmt.Errorf("%w: pattern requires at least one event", ErrValidation)
	}
	if confidence < 0 || confidence > 1 {
		return CausalPattern{}, fmt.Errorf("%w: pattern confidence %v outside [0,1]", ErrValidation, confidence)
	}
	return CausalPattern{
		Type:        patternType,
		Events:      events,
		Confidence:  confidence,
		Description: description,
	}, nil
}

// EventIDs returns the ids of the participating events, in order.
func (p CausalPattern) EventIDs() []string {
	ids := make([]string, len(p.Events))
	for i, e := range p.Events {
		ids[i] = e.ID
	}
	return ids
}

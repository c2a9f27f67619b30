package model

import "time"

// MemoryItem is a consolidated memory subject to importance decay and
// activation-based ranking. Rows are owned by the store; the decay
// scorer only updates the values it is handed.
type MemoryItem struct {
	ID                 string    `json:"id"`
	Project            string    `json:"project"`
	Source             string    `json:"source,omitempty"` // pattern id, or "manual"
	Content            string    `json:"content"`
	Importance         float64   `json:"importance"`
	LastAccessed       time.Time `json:"last_accessed"`
	ActivationCount    int       `json:"activation_count"`
	ConsolidationScore float64   `json:"consolidation_score"`
	ActionabilityScore float64   `json:"actionability_score"`
	HasNextStep        bool      `json:"has_next_step"`
	Outcome            Outcome   `json:"outcome,omitempty"`
	ActivationLevel    float64   `json:"activation_level"`
	SalienceScore      float64   `json:"salience_score"`
	CreatedAt          time.Time `json:"created_at"`
	Embedding          []float32 `json:"-"` // optional semantic vector
}

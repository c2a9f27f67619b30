// Package model defines the core memory data types.
package model

import (
	"errors"
	"fmt"
	"time"
)

// ErrValidation is wrapped by every constructor and Validate error in this
// package, so callers can errors.Is against a single sentinel.
var ErrValidation = errors.New("validation failed")

// EventType classifies an episodic event.
type EventType string

const (
	EventAction     EventType = "action"
	EventFileChange EventType = "file_change"
	EventTestRun    EventType = "test_run"
	EventError      EventType = "error"
	EventDecision   EventType = "decision"
	EventDebugging  EventType = "debugging"
	EventSuccess    EventType = "success"
)

// ValidEventTypes are the allowed event types.
var ValidEventTypes = map[EventType]bool{
	EventAction:     true,
	EventFileChange: true,
	EventTestRun:    true,
	EventError:      true,
	EventDecision:   true,
	EventDebugging:  true,
	EventSuccess:    true,
}

// Outcome is the recorded result of an event, if any.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeFailure Outcome = "failure"
	OutcomeUnknown Outcome = ""
)

// EpisodicEvent is a single timestamped occurrence in a work session.
// Events are produced by the surrounding application; this repository
// only reads them.
type EpisodicEvent struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	Type      EventType `json:"event_type"`
	Outcome   Outcome   `json:"outcome,omitempty"`
	Content   string    `json:"content,omitempty"`
	Files     []string  `json:"files,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Validate checks the fields that chaining and inference depend on.
// Timestamp ordering is load-bearing, so a zero timestamp is an error
// rather than something to silently skip.
func (e EpisodicEvent) Validate() error {
	if e.ID == "" {
		return fmt.Errorf("%w: event missing id", ErrValidation)
	}
	if e.Timestamp.IsZero() {
		return fmt.Errorf("%w: event %s missing timestamp", ErrValidation, e.ID)
	}
	if !ValidEventTypes[e.Type] {
		return fmt.Errorf("%w: event %s has unknown type %q", ErrValidation, e.ID, e.Type)
	}
	return nil
}

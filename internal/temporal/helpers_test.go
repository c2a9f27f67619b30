package temporal

import (
	"time"

	"github.com/athena-mem/athena/internal/model"
)

var baseTime = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

type eventSpec struct {
	id      string
	session string
	offset  time.Duration
	typ     model.EventType
	outcome model.Outcome
	files   []string
}

func makeEvent(spec eventSpec) model.EpisodicEvent {
	session := spec.session
	if session == "" {
		session = "s1"
	}
	typ := spec.typ
	if typ == "" {
		typ = model.EventAction
	}
	return model.EpisodicEvent{
		ID:        spec.id,
		SessionID: session,
		Type:      typ,
		Outcome:   spec.outcome,
		Files:     spec.files,
		Timestamp: baseTime.Add(spec.offset),
	}
}

func makeEvents(specs ...eventSpec) []model.EpisodicEvent {
	events := make([]model.EpisodicEvent, len(specs))
	for i, spec := range specs {
		events[i] = makeEvent(spec)
	}
	return events
}

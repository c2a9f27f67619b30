package store

import (
	"context"

	"github.com/athena-mem/athena/internal/model"
)

// ExportEvents returns all of a project's events in timestamp order.
func (s *SQLiteStore) ExportEvents(ctx context.Context, project string) ([]model.EpisodicEvent, error) {
	return s.ListEvents(ctx, ListEventsParams{Project: project})
}

// ImportEvents records events from an export into the given project,
// keeping their session ids and timestamps. Returns the count stored.
func (s *SQLiteStore) ImportEvents(ctx context.Context, project string, events []model.EpisodicEvent) (int, error) {
	imported := 0
	for _, e := range events {
		_, err := s.RecordEvent(ctx, RecordParams{
			Project:   project,
			SessionID: e.SessionID,
			Type:      e.Type,
			Outcome:   e.Outcome,
			Content:   e.Content,
			Files:     e.Files,
			Timestamp: e.Timestamp,
		})
		if err != nil {
			return imported, err
		}
		imported++
	}
	return imported, nil
}

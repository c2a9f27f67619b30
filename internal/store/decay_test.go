package store

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/athena-mem/athena/internal/model"
)

func addMemoryAgedDays(t *testing.T, s *SQLiteStore, project, content string, importance float64, days int) *model.MemoryItem {
	t.Helper()
	item, err := s.AddMemory(context.Background(), AddMemoryParams{
		Project:      project,
		Content:      content,
		Importance:   importance,
		LastAccessed: time.Now().UTC().Add(-time.Duration(days) * 24 * time.Hour),
	})
	if err != nil {
		t.Fatalf("add memory: %v", err)
	}
	return item
}

func TestApplyDecayPersists(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	addMemoryAgedDays(t, s, "proj", "stale lesson", 0.8, 45)

	summary, err := s.ApplyDecay(ctx, DecayParams{Project: "proj", Rate: 0.1, DaysThreshold: 30})
	if err != nil {
		t.Fatalf("decay: %v", err)
	}
	if summary.ItemsDecayed != 1 {
		t.Fatalf("expected 1 decayed item, got %d", summary.ItemsDecayed)
	}

	memories, _ := s.ListMemories(ctx, "proj", 0)
	if len(memories) != 1 {
		t.Fatalf("expected 1 memory, got %d", len(memories))
	}

	want := 0.8 * math.Exp(-0.1*45)
	if diff := math.Abs(memories[0].Importance - want); diff > 1e-4 {
		t.Errorf("expected importance ~%v, got %v (diff %v)", want, memories[0].Importance, diff)
	}
}

func TestApplyDecayRespectsThreshold(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	addMemoryAgedDays(t, s, "proj", "recent lesson", 0.8, 15)

	summary, err := s.ApplyDecay(ctx, DecayParams{Project: "proj", Rate: 0.1, DaysThreshold: 30})
	if err != nil {
		t.Fatalf("decay: %v", err)
	}
	if summary.ItemsDecayed != 0 {
		t.Errorf("expected no decayed items, got %d", summary.ItemsDecayed)
	}

	memories, _ := s.ListMemories(ctx, "proj", 0)
	if memories[0].Importance != 0.8 {
		t.Errorf("expected importance unchanged at 0.8, got %v", memories[0].Importance)
	}
}

func TestApplyDecayTwiceNeverIncreases(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	addMemoryAgedDays(t, s, "proj", "old lesson", 0.9, 60)

	if _, err := s.ApplyDecay(ctx, DecayParams{Project: "proj", Rate: 0.05, DaysThreshold: 30}); err != nil {
		t.Fatalf("first decay: %v", err)
	}
	memories, _ := s.ListMemories(ctx, "proj", 0)
	afterFirst := memories[0].Importance

	if _, err := s.ApplyDecay(ctx, DecayParams{Project: "proj", Rate: 0.05, DaysThreshold: 30}); err != nil {
		t.Fatalf("second decay: %v", err)
	}
	memories, _ = s.ListMemories(ctx, "proj", 0)
	if memories[0].Importance > afterFirst {
		t.Errorf("importance rose from %v to %v across decay cycles", afterFirst, memories[0].Importance)
	}
}

func TestPruneRemovesZeroedMemories(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	addMemoryAgedDays(t, s, "proj", "long forgotten", 0.4, 500)
	addMemoryAgedDays(t, s, "proj", "still useful", 0.9, 5)

	summary, err := s.ApplyDecay(ctx, DecayParams{Project: "proj", Rate: 0.1, DaysThreshold: 30})
	if err != nil {
		t.Fatalf("decay: %v", err)
	}
	if summary.ItemsWithZeroImportance != 1 {
		t.Fatalf("expected 1 zeroed item, got %d", summary.ItemsWithZeroImportance)
	}

	pruned, err := s.Prune(ctx, "proj")
	if err != nil {
		t.Fatalf("prune: %v", err)
	}
	if pruned != 1 {
		t.Errorf("expected 1 pruned memory, got %d", pruned)
	}

	memories, _ := s.ListMemories(ctx, "proj", 0)
	if len(memories) != 1 {
		t.Fatalf("expected 1 memory left, got %d", len(memories))
	}
	if memories[0].Content != "still useful" {
		t.Errorf("wrong memory survived: %q", memories[0].Content)
	}
}

package store

import (
	"context"
	"strings"
	"testing"

	"github.com/athena-mem/athena/internal/model"
)

func TestRetrieveRanksBySalience(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	// Old, unimportant memory vs fresh, important, actionable one.
	addMemoryAgedDays(t, s, "proj", "stale trivia about logging", 0.2, 20)
	s.AddMemory(ctx, AddMemoryParams{
		Project:            "proj",
		Content:            "critical fix recipe for the parser",
		Importance:         0.9,
		ActionabilityScore: 0.9,
		Outcome:            model.OutcomeSuccess,
	})

	result, err := s.Retrieve(ctx, RetrieveParams{Project: "proj", Budget: 4000})
	if err != nil {
		t.Fatalf("retrieve: %v", err)
	}
	if len(result.Memories) != 2 {
		t.Fatalf("expected 2 memories, got %d", len(result.Memories))
	}
	if !strings.Contains(result.Memories[0].Content, "parser") {
		t.Errorf("expected the important memory first, got %q", result.Memories[0].Content)
	}
	if result.Memories[0].Salience <= result.Memories[1].Salience {
		t.Errorf("expected descending salience, got %v then %v",
			result.Memories[0].Salience, result.Memories[1].Salience)
	}
}

func TestRetrieveBudgetLimit(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	long := strings.Repeat("a lesson about build caching and why it matters. ", 100)
	s.AddMemory(ctx, AddMemoryParams{Project: "proj", Content: long, Importance: 0.9})
	s.AddMemory(ctx, AddMemoryParams{Project: "proj", Content: "short tip", Importance: 0.5})

	result, err := s.Retrieve(ctx, RetrieveParams{Project: "proj", Budget: 50})
	if err != nil {
		t.Fatalf("retrieve: %v", err)
	}
	if len(result.Memories) == 0 {
		t.Fatal("expected at least one memory even with a small budget")
	}
	if result.Used > 50 {
		t.Errorf("used %d tokens over budget 50", result.Used)
	}
}

func TestRetrieveQueryFilter(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	s.AddMemory(ctx, AddMemoryParams{Project: "proj", Content: "parser handles unicode now", Importance: 0.5})
	s.AddMemory(ctx, AddMemoryParams{Project: "proj", Content: "deploy uses blue-green", Importance: 0.5})

	result, err := s.Retrieve(ctx, RetrieveParams{Project: "proj", Query: "parser", Budget: 4000})
	if err != nil {
		t.Fatalf("retrieve: %v", err)
	}
	if len(result.Memories) != 1 {
		t.Fatalf("expected 1 filtered memory, got %d", len(result.Memories))
	}
}

func TestRetrieveBumpsAccessTracking(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	item, err := s.AddMemory(ctx, AddMemoryParams{Project: "proj", Content: "remember me", Importance: 0.5})
	if err != nil {
		t.Fatalf("add memory: %v", err)
	}

	if _, err := s.Retrieve(ctx, RetrieveParams{Project: "proj", Budget: 4000}); err != nil {
		t.Fatalf("retrieve: %v", err)
	}

	memories, _ := s.ListMemories(ctx, "proj", 0)
	if memories[0].ID != item.ID {
		t.Fatalf("unexpected memory %s", memories[0].ID)
	}
	if memories[0].ActivationCount != 1 {
		t.Errorf("expected activation count 1 after retrieval, got %d", memories[0].ActivationCount)
	}
}

func TestRetrieveEmptyProject(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	result, err := s.Retrieve(ctx, RetrieveParams{Project: "nothing", Budget: 4000})
	if err != nil {
		t.Fatalf("retrieve: %v", err)
	}
	if len(result.Memories) != 0 {
		t.Errorf("expected no memories, got %d", len(result.Memories))
	}
}

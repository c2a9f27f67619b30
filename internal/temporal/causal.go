package temporal

import (
	"fmt"
	"math"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/athena-mem/athena/internal/model"
)

// DefaultMaxCausalGap bounds how far apart two events can be and still
// be considered for a causal link.
const DefaultMaxCausalGap = 30 * time.Minute

// overlapCacheSize bounds the pairwise file-overlap cache.
const overlapCacheSize = 4096

// Inferencer classifies temporal distance between adjacent events and
// infers likely causal links. It carries a bounded cache for pairwise
// file-overlap computations; construct a fresh one per test or share
// one per consolidation pass.
type Inferencer struct {
	maxCausalGap time.Duration
	overlap      *lru.Cache[string, float64]
}

// NewInferencer returns an Inferencer with default thresholds.
func NewInferencer() *Inferencer {
	cache, _ := lru.New[string, float64](overlapCacheSize)
	return &Inferencer{maxCausalGap: DefaultMaxCausalGap, overlap: cache}
}

// ClassifyGap maps a non-negative gap between two events to a relation
// type and strength. Strength for later_after decays from 0.9 toward
// 0.3 as the gap grows, and never leaves [0.3, 0.9].
func ClassifyGap(gap time.Duration) (model.RelationType, float64) {
	switch {
	case gap < time.Minute:
		return model.RelationImmediatelyAfter, 0.9
	case gap < time.Hour:
		return model.RelationShortlyAfter, 0.7
	default:
		hours := gap.Hours()
		strength := 0.3 + 0.6*math.Exp(-(hours-1)/12)
		if strength > 0.9 {
			strength = 0.9
		}
		if strength < 0.3 {
			strength = 0.3
		}
		return model.RelationLaterAfter, strength
	}
}

// Relations classifies every adjacent pair of the (sorted) event
// sequence by temporal distance. Chain membership is irrelevant here.
func (inf *Inferencer) Relations(events []model.EpisodicEvent) ([]model.TemporalRelation, error) {
	sorted, err := sortedByTime(events)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	var relations []model.TemporalRelation
	for i := 0; i+1 < len(sorted); i++ {
		a, b := sorted[i], sorted[i+1]
		relType, strength := ClassifyGap(b.Timestamp.Sub(a.Timestamp))
		rel, err := model.NewTemporalRelation(a.ID, b.ID, relType, strength, now)
		if err != nil {
			return nil, fmt.Errorf("classify %s -> %s: %w", a.ID, b.ID, err)
		}
		relations = append(relations, rel)
	}
	return relations, nil
}

// causalRule is one entry in the ordered rule list evaluated by
// LikelyCausal. Rules see the pair after the session/gap gate passed.
type causalRule struct {
	name    string
	applies func(a, b model.EpisodicEvent, fileOverlap float64) bool
}

var causalRules = []causalRule{
	{
		// Error followed by a change to one of the same files.
		name: "error_then_fix",
		applies: func(a, b model.EpisodicEvent, fileOverlap float64) bool {
			return a.Type == model.EventError && fileOverlap > 0
		},
	},
	{
		// Failing test followed by a code change.
		name: "failing_test_then_change",
		applies: func(a, b model.EpisodicEvent, _ float64) bool {
			return a.Type == model.EventTestRun && a.Outcome == model.OutcomeFailure &&
				b.Type == model.EventFileChange
		},
	},
	{
		// Decision followed by the corresponding action.
		name: "decision_then_action",
		applies: func(a, b model.EpisodicEvent, _ float64) bool {
			return a.Type == model.EventDecision && b.Type == model.EventAction
		},
	},
}

// LikelyCausal reports whether a plausibly caused b. Pairs from
// different sessions, or further apart than the causal gap, are never
// considered causal.
func (inf *Inferencer) LikelyCausal(a, b model.EpisodicEvent) bool {
	gap := b.Timestamp.Sub(a.Timestamp)
	if gap < 0 || gap > inf.maxCausalGap {
		return false
	}
	if a.SessionID != b.SessionID {
		return false
	}
	overlap := inf.fileOverlap(a, b)
	for _, rule := range causalRules {
		if rule.applies(a, b, overlap) {
			return true
		}
	}
	return false
}

// CausalStrength scores a candidate causal pair in [0,1] from time
// proximity, shared-file fraction, and a same-session bonus.
func (inf *Inferencer) CausalStrength(a, b model.EpisodicEvent) float64 {
	gap := b.Timestamp.Sub(a.Timestamp)
	if gap < 0 {
		gap = -gap
	}
	timeScore := math.Exp(-gap.Minutes() / 10)

	sessionScore := 0.0
	if a.SessionID != "" && a.SessionID == b.SessionID {
		sessionScore = 1.0
	}

	strength := 0.5*timeScore + 0.3*inf.fileOverlap(a, b) + 0.2*sessionScore
	if strength < 0 {
		return 0
	}
	if strength > 1 {
		return 1
	}
	return strength
}

// CausalRelations emits a "caused" relation for every adjacent pair of
// the (sorted) sequence that LikelyCausal accepts.
func (inf *Inferencer) CausalRelations(events []model.EpisodicEvent) ([]model.TemporalRelation, error) {
	sorted, err := sortedByTime(events)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	var relations []model.TemporalRelation
	for i := 0; i+1 < len(sorted); i++ {
		a, b := sorted[i], sorted[i+1]
		if !inf.LikelyCausal(a, b) {
			continue
		}
		rel, err := model.NewTemporalRelation(a.ID, b.ID, model.RelationCaused, inf.CausalStrength(a, b), now)
		if err != nil {
			return nil, fmt.Errorf("infer %s -> %s: %w", a.ID, b.ID, err)
		}
		relations = append(relations, rel)
	}
	return relations, nil
}

// fileOverlap returns the Jaccard fraction of files the two events
// share: |A∩B| / |A∪B|, 0 when either touched nothing.
func (inf *Inferencer) fileOverlap(a, b model.EpisodicEvent) float64 {
	if len(a.Files) == 0 || len(b.Files) == 0 {
		return 0
	}

	key := a.ID + "\x00" + b.ID
	if a.ID > b.ID {
		key = b.ID + "\x00" + a.ID
	}
	if v, ok := inf.overlap.Get(key); ok {
		return v
	}

	union := make(map[string]bool, len(a.Files)+len(b.Files))
	for _, f := range a.Files {
		union[f] = true
	}
	shared := 0
	for _, f := range b.Files {
		if union[f] {
			shared++
		}
		union[f] = true
	}

	v := float64(shared) / float64(len(union))
	inf.overlap.Add(key, v)
	return v
}

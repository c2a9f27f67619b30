package model

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTemporalRelationValidation(t *testing.T) {
	now := time.Now()

	testcases := []struct {
		name     string
		relType  RelationType
		strength float64
		wantErr  bool
	}{
		{name: "valid-caused", relType: RelationCaused, strength: 0.8},
		{name: "valid-boundary-zero", relType: RelationShortlyAfter, strength: 0},
		{name: "valid-boundary-one", relType: RelationImmediatelyAfter, strength: 1},
		{name: "strength-too-high", relType: RelationCaused, strength: 1.5, wantErr: true},
		{name: "strength-negative", relType: RelationCaused, strength: -0.1, wantErr: true},
		{name: "bogus-type", relType: "bogus", strength: 0.5, wantErr: true},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			rel, err := NewTemporalRelation("e1", "e2", tc.relType, tc.strength, now)
			if tc.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrValidation))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "e1", rel.FromEventID)
			assert.Equal(t, "e2", rel.ToEventID)
			assert.Equal(t, tc.relType, rel.Type)
			assert.Equal(t, tc.strength, rel.Strength)
		})
	}
}

func TestNewTemporalRelationRequiresIDs(t *testing.T) {
	_, err := NewTemporalRelation("", "e2", RelationCaused, 0.5, time.Now())
	assert.ErrorIs(t, err, ErrValidation)
}

func TestNewCausalPatternValidation(t *testing.T) {
	events := []EpisodicEvent{
		{ID: "e1", Type: EventError, Timestamp: time.Now()},
	}

	_, err := NewCausalPattern(PatternErrorFix, events, 1.2, "over-confident")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = NewCausalPattern("made_up", events, 0.5, "unknown type")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = NewCausalPattern(PatternTDDCycle, nil, 0.5, "no events")
	assert.ErrorIs(t, err, ErrValidation)

	p, err := NewCausalPattern(PatternErrorFix, events, 0.8, "fix")
	require.NoError(t, err)
	assert.Equal(t, []string{"e1"}, p.EventIDs())
}

func TestEpisodicEventValidate(t *testing.T) {
	valid := EpisodicEvent{ID: "e1", SessionID: "s1", Type: EventAction, Timestamp: time.Now()}
	assert.NoError(t, valid.Validate())

	noTimestamp := valid
	noTimestamp.Timestamp = time.Time{}
	assert.ErrorIs(t, noTimestamp.Validate(), ErrValidation)

	noType := valid
	noType.Type = ""
	assert.ErrorIs(t, noType.Validate(), ErrValidation)

	noID := valid
	noID.ID = ""
	assert.ErrorIs(t, noID.Validate(), ErrValidation)
}

func TestNewEventChain(t *testing.T) {
	_, err := NewEventChain(nil, "s1")
	assert.ErrorIs(t, err, ErrValidation)

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	events := []EpisodicEvent{
		{ID: "e1", SessionID: "s1", Type: EventAction, Timestamp: base},
		{ID: "e2", SessionID: "s1", Type: EventAction, Timestamp: base.Add(5 * time.Minute)},
	}
	chain, err := NewEventChain(events, "s1")
	require.NoError(t, err)
	assert.Equal(t, ChainTypeTemporal, chain.ChainType)
	assert.Equal(t, base, chain.StartTime)
	assert.Equal(t, base.Add(5*time.Minute), chain.EndTime)
	assert.Equal(t, 2, chain.Len())
}

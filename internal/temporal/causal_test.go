package temporal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/athena-mem/athena/internal/model"
)

func TestClassifyGapBoundaries(t *testing.T) {
	testcases := []struct {
		name     string
		gap      time.Duration
		wantType model.RelationType
	}{
		{name: "59s-is-immediate", gap: 59 * time.Second, wantType: model.RelationImmediatelyAfter},
		{name: "60s-is-shortly", gap: 60 * time.Second, wantType: model.RelationShortlyAfter},
		{name: "61s-is-shortly", gap: 61 * time.Second, wantType: model.RelationShortlyAfter},
		{name: "59m-is-shortly", gap: 59 * time.Minute, wantType: model.RelationShortlyAfter},
		{name: "1h-is-later", gap: time.Hour, wantType: model.RelationLaterAfter},
		{name: "2h-is-later", gap: 2 * time.Hour, wantType: model.RelationLaterAfter},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			relType, strength := ClassifyGap(tc.gap)
			assert.Equal(t, tc.wantType, relType)
			assert.GreaterOrEqual(t, strength, 0.0)
			assert.LessOrEqual(t, strength, 1.0)
		})
	}

	_, immediate := ClassifyGap(30 * time.Second)
	assert.Equal(t, 0.9, immediate)
	_, shortly := ClassifyGap(10 * time.Minute)
	assert.Equal(t, 0.7, shortly)
}

func TestClassifyGapLaterAfterDecreases(t *testing.T) {
	gaps := []time.Duration{time.Hour, 2 * time.Hour, 6 * time.Hour, 24 * time.Hour, 30 * 24 * time.Hour}

	prev := 1.0
	for _, gap := range gaps {
		relType, strength := ClassifyGap(gap)
		require.Equal(t, model.RelationLaterAfter, relType)
		assert.Less(t, strength, prev, "strength must strictly decrease at gap %v", gap)
		assert.GreaterOrEqual(t, strength, 0.3)
		assert.LessOrEqual(t, strength, 0.9)
		prev = strength
	}
}

func TestRelationsClassifiesAdjacentPairs(t *testing.T) {
	inf := NewInferencer()
	events := makeEvents(
		eventSpec{id: "e1"},
		eventSpec{id: "e2", offset: 30 * time.Second},
		eventSpec{id: "e3", offset: 10 * time.Minute},
		eventSpec{id: "e4", offset: 3 * time.Hour},
	)

	relations, err := inf.Relations(events)
	require.NoError(t, err)
	require.Len(t, relations, 3)

	assert.Equal(t, model.RelationImmediatelyAfter, relations[0].Type)
	assert.Equal(t, model.RelationShortlyAfter, relations[1].Type)
	assert.Equal(t, model.RelationLaterAfter, relations[2].Type)
	for _, rel := range relations {
		assert.GreaterOrEqual(t, rel.Strength, 0.0)
		assert.LessOrEqual(t, rel.Strength, 1.0)
	}
}

func TestLikelyCausalRules(t *testing.T) {
	inf := NewInferencer()

	errEvent := makeEvent(eventSpec{id: "err", typ: model.EventError, files: []string{"parser.go"}})
	fix := makeEvent(eventSpec{id: "fix", typ: model.EventFileChange, offset: 2 * time.Minute, files: []string{"parser.go"}})
	assert.True(t, inf.LikelyCausal(errEvent, fix), "error followed by fix to the same file")

	unrelatedFix := makeEvent(eventSpec{id: "fix2", typ: model.EventFileChange, offset: 2 * time.Minute, files: []string{"other.go"}})
	assert.False(t, inf.LikelyCausal(errEvent, unrelatedFix), "no file overlap")

	failedTest := makeEvent(eventSpec{id: "t1", typ: model.EventTestRun, outcome: model.OutcomeFailure})
	change := makeEvent(eventSpec{id: "c1", typ: model.EventFileChange, offset: 3 * time.Minute, files: []string{"code.go"}})
	assert.True(t, inf.LikelyCausal(failedTest, change), "failing test followed by code change")

	passedTest := makeEvent(eventSpec{id: "t2", typ: model.EventTestRun, outcome: model.OutcomeSuccess})
	assert.False(t, inf.LikelyCausal(passedTest, change), "passing test does not cause a change")

	decision := makeEvent(eventSpec{id: "d1", typ: model.EventDecision})
	action := makeEvent(eventSpec{id: "a1", typ: model.EventAction, offset: time.Minute})
	assert.True(t, inf.LikelyCausal(decision, action), "decision followed by action")

	actionA := makeEvent(eventSpec{id: "a2", typ: model.EventAction})
	actionB := makeEvent(eventSpec{id: "a3", typ: model.EventAction, offset: time.Minute})
	assert.False(t, inf.LikelyCausal(actionA, actionB), "two unrelated actions")
}

func TestLikelyCausalGates(t *testing.T) {
	inf := NewInferencer()

	decision := makeEvent(eventSpec{id: "d1", typ: model.EventDecision})

	otherSession := makeEvent(eventSpec{id: "a1", session: "s2", typ: model.EventAction, offset: time.Minute})
	assert.False(t, inf.LikelyCausal(decision, otherSession), "different sessions never causal")

	tooLate := makeEvent(eventSpec{id: "a2", typ: model.EventAction, offset: 31 * time.Minute})
	assert.False(t, inf.LikelyCausal(decision, tooLate), "gap over the causal threshold")

	before := makeEvent(eventSpec{id: "a3", typ: model.EventAction, offset: -time.Minute})
	assert.False(t, inf.LikelyCausal(decision, before), "effect cannot precede cause")
}

func TestCausalStrengthBounds(t *testing.T) {
	inf := NewInferencer()

	pairs := [][2]model.EpisodicEvent{
		{
			makeEvent(eventSpec{id: "a", typ: model.EventError}),
			makeEvent(eventSpec{id: "b", typ: model.EventFileChange, offset: 12 * time.Hour}),
		},
		{
			makeEvent(eventSpec{id: "c", session: "s1", files: []string{"x.go"}}),
			makeEvent(eventSpec{id: "d", session: "s2", offset: time.Second, files: []string{"y.go"}}),
		},
	}
	for _, pair := range pairs {
		strength := inf.CausalStrength(pair[0], pair[1])
		assert.GreaterOrEqual(t, strength, 0.0)
		assert.LessOrEqual(t, strength, 1.0)
	}
}

func TestCausalStrengthHighForTightPair(t *testing.T) {
	inf := NewInferencer()

	files := []string{"a.go", "b.go", "c.go"}
	a := makeEvent(eventSpec{id: "a", typ: model.EventError, files: files})
	b := makeEvent(eventSpec{id: "b", typ: model.EventFileChange, offset: 30 * time.Second, files: files})

	strength := inf.CausalStrength(a, b)
	assert.GreaterOrEqual(t, strength, 0.7, "same session, 30s apart, all files shared")
}

func TestCausalRelations(t *testing.T) {
	inf := NewInferencer()
	events := makeEvents(
		eventSpec{id: "t1", typ: model.EventTestRun, outcome: model.OutcomeFailure},
		eventSpec{id: "c1", typ: model.EventFileChange, offset: 2 * time.Minute, files: []string{"code.go"}},
		eventSpec{id: "t2", typ: model.EventTestRun, outcome: model.OutcomeSuccess, offset: 4 * time.Minute},
	)

	relations, err := inf.CausalRelations(events)
	require.NoError(t, err)
	require.Len(t, relations, 1)
	assert.Equal(t, model.RelationCaused, relations[0].Type)
	assert.Equal(t, "t1", relations[0].FromEventID)
	assert.Equal(t, "c1", relations[0].ToEventID)
	assert.GreaterOrEqual(t, relations[0].Strength, 0.0)
	assert.LessOrEqual(t, relations[0].Strength, 1.0)
}

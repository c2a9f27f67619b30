// Package decay implements exponential importance decay and the
// composite activation/salience formula used to rank memories.
package decay

import (
	"math"
	"time"

	"github.com/athena-mem/athena/internal/model"
)

// Default decay parameters.
const (
	DefaultRate          = 0.05
	DefaultDaysThreshold = 30
)

// Exponential is the single source of truth for the decay law:
// value * e^(-rate * elapsedDays), floored at zero.
func Exponential(value, rate, elapsedDays float64) float64 {
	decayed := value * math.Exp(-rate*elapsedDays)
	if decayed < 0 {
		return 0
	}
	return decayed
}

// ActivationInputs are the inputs to the composite activation formula.
type ActivationInputs struct {
	HoursSinceActivation float64
	ActivationCount      int
	ConsolidationScore   float64
	Importance           float64
	HasNextStep          bool
	ActionabilityScore   float64
	Outcome              model.Outcome
	SameWorktree         bool // comparison-only boost variant
}

// Activation computes the composite activation value. Pure function:
// identical inputs always produce identical output.
func Activation(in ActivationInputs) float64 {
	recency := -0.5 * math.Log(math.Max(in.HoursSinceActivation, 0.1))
	frequency := 0.1 * math.Log(math.Max(float64(in.ActivationCount), 1))

	a := recency + frequency + 1.0*in.ConsolidationScore
	if in.Importance > 0.7 {
		a += 1.5
	}
	if in.HasNextStep || in.ActionabilityScore > 0.7 {
		a += 1.0
	}
	if in.Outcome == model.OutcomeSuccess {
		a += 0.5
	}
	if in.SameWorktree {
		a += 2.0
	}
	return a
}

// Salience scores a memory for retrieval ranking: the (possibly
// decayed) importance plus the activation formula evaluated with that
// importance. Non-decreasing in importance, so decaying importance can
// never raise salience.
func Salience(importance float64, in ActivationInputs) float64 {
	in.Importance = importance
	return importance + Activation(in)
}

// Summary reports one decay pass.
type Summary struct {
	ItemsDecayed            int       `json:"items_decayed"`
	AvgDecayAmount          float64   `json:"avg_decay_amount"`
	ItemsWithZeroImportance int       `json:"items_with_zero_importance"`
	Timestamp               time.Time `json:"timestamp"`
}

// ApplyImportanceDecay decays every item whose last access is more
// than daysThreshold days before now, then recomputes activation and
// salience from the decayed importance. Items accessed within the
// threshold are untouched and not counted. The caller is responsible
// for running at most one decay cycle at a time per item set.
func ApplyImportanceDecay(items []*model.MemoryItem, rate float64, daysThreshold int, now time.Time) Summary {
	summary := Summary{Timestamp: now}

	var totalDecay float64
	for _, item := range items {
		daysInactive := now.Sub(item.LastAccessed).Hours() / 24
		if daysInactive <= float64(daysThreshold) {
			continue
		}

		old := item.Importance
		item.Importance = Exponential(old, rate, daysInactive)

		in := inputsFor(item, now)
		item.ActivationLevel = Activation(in)
		item.SalienceScore = Salience(item.Importance, in)

		summary.ItemsDecayed++
		totalDecay += old - item.Importance
		if math.Round(item.Importance*1000)/1000 == 0 {
			summary.ItemsWithZeroImportance++
		}
	}

	if summary.ItemsDecayed > 0 {
		summary.AvgDecayAmount = totalDecay / float64(summary.ItemsDecayed)
	}
	return summary
}

// Score computes the current activation and salience for an item
// without decaying it. Used for retrieval ranking.
func Score(item *model.MemoryItem, now time.Time) (activation, salience float64) {
	in := inputsFor(item, now)
	activation = Activation(in)
	salience = Salience(item.Importance, in)
	return activation, salience
}

func inputsFor(item *model.MemoryItem, now time.Time) ActivationInputs {
	return ActivationInputs{
		HoursSinceActivation: now.Sub(item.LastAccessed).Hours(),
		ActivationCount:      item.ActivationCount,
		ConsolidationScore:   item.ConsolidationScore,
		Importance:           item.Importance,
		HasNextStep:          item.HasNextStep,
		ActionabilityScore:   item.ActionabilityScore,
		Outcome:              item.Outcome,
	}
}

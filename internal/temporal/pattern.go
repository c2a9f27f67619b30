package temporal

import (
	"fmt"

	"github.com/athena-mem/athena/internal/model"
)

// minPatternEvents is the shortest sequence worth scanning for motifs.
const minPatternEvents = 3

// DetectPatterns scans a (sorted) event sequence for known causal
// motifs. Sequences shorter than three events yield no patterns.
// Overlapping matches across pattern types are each emitted; no
// cross-type deduplication happens here.
func DetectPatterns(events []model.EpisodicEvent) ([]model.CausalPattern, error) {
	sorted, err := sortedByTime(events)
	if err != nil {
		return nil, err
	}
	if len(sorted) < minPatternEvents {
		return nil, nil
	}

	var patterns []model.CausalPattern
	for _, detect := range []func([]model.EpisodicEvent) ([]model.CausalPattern, error){
		detectTDDCycles,
		detectErrorFixes,
		detectDebugSessions,
	} {
		found, err := detect(sorted)
		if err != nil {
			return nil, err
		}
		patterns = append(patterns, found...)
	}
	return patterns, nil
}

// detectTDDCycles finds failing test -> file change -> passing test
// triples. The change and the passing run need not be immediate
// successors of the failure, only later in the sequence. Confidence
// starts high and drops for every error or debugging event caught
// between the failing and passing runs.
func detectTDDCycles(events []model.EpisodicEvent) ([]model.CausalPattern, error) {
	var patterns []model.CausalPattern
	for i := 0; i < len(events); i++ {
		fail := events[i]
		if fail.Type != model.EventTestRun || fail.Outcome != model.OutcomeFailure {
			continue
		}

		change := -1
		pass := -1
		for j := i + 1; j < len(events); j++ {
			e := events[j]
			if change == -1 && e.Type == model.EventFileChange {
				change = j
				continue
			}
			if change != -1 && e.Type == model.EventTestRun && e.Outcome == model.OutcomeSuccess {
				pass = j
				break
			}
		}
		if pass == -1 {
			continue
		}

		confidence := 0.85 - 0.05*float64(countNoisy(events[i+1:pass]))
		if confidence < 0.5 {
			confidence = 0.5
		}

		triple := []model.EpisodicEvent{fail, events[change], events[pass]}
		p, err := model.NewCausalPattern(model.PatternTDDCycle, triple, confidence,
			fmt.Sprintf("failing test %s fixed by %s, passing in %s", fail.ID, events[change].ID, events[pass].ID))
		if err != nil {
			return nil, err
		}
		patterns = append(patterns, p)

		// Resume after the passing run so one cycle is reported once.
		i = pass
	}
	return patterns, nil
}

// detectErrorFixes finds error -> overlapping file change -> positive
// outcome triples. One pattern per matching triple.
func detectErrorFixes(events []model.EpisodicEvent) ([]model.CausalPattern, error) {
	inf := NewInferencer()

	var patterns []model.CausalPattern
	for i := 0; i < len(events); i++ {
		errEvent := events[i]
		if errEvent.Type != model.EventError {
			continue
		}

		change := -1
		var overlap float64
		for j := i + 1; j < len(events); j++ {
			if events[j].Type != model.EventFileChange {
				continue
			}
			if ov := inf.fileOverlap(errEvent, events[j]); ov > 0 {
				change = j
				overlap = ov
				break
			}
		}
		if change == -1 {
			continue
		}

		resolved := -1
		for k := change + 1; k < len(events); k++ {
			if isPositive(events[k]) {
				resolved = k
				break
			}
		}
		if resolved == -1 {
			continue
		}

		confidence := 0.7 + 0.2*overlap
		triple := []model.EpisodicEvent{errEvent, events[change], events[resolved]}
		p, err := model.NewCausalPattern(model.PatternErrorFix, triple, confidence,
			fmt.Sprintf("error %s fixed by change %s, resolved in %s", errEvent.ID, events[change].ID, events[resolved].ID))
		if err != nil {
			return nil, err
		}
		patterns = append(patterns, p)
	}
	return patterns, nil
}

// detectDebugSessions finds runs with at least two errors interleaved
// with debugging work that terminate in a success. The emitted events
// list carries every participating event, not just the endpoints.
func detectDebugSessions(events []model.EpisodicEvent) ([]model.CausalPattern, error) {
	var participants []model.EpisodicEvent
	errorCount := 0
	debugCount := 0

	for _, e := range events {
		switch {
		case e.Type == model.EventError:
			errorCount++
			participants = append(participants, e)
		case e.Type == model.EventDebugging:
			debugCount++
			participants = append(participants, e)
		case isPositive(e):
			if errorCount >= 2 && debugCount >= 1 && len(participants)+1 >= minPatternEvents {
				all := append(append([]model.EpisodicEvent{}, participants...), e)
				confidence := 0.5 + 0.1*float64(errorCount)
				if confidence > 0.9 {
					confidence = 0.9
				}
				p, err := model.NewCausalPattern(model.PatternDebugSession, all, confidence,
					fmt.Sprintf("debug session: %d errors, %d debugging steps, resolved in %s", errorCount, debugCount, e.ID))
				if err != nil {
					return nil, err
				}
				return []model.CausalPattern{p}, nil
			}
		}
	}
	return nil, nil
}

// countNoisy counts error and debugging events, the "high-weight"
// interference that lowers TDD-cycle confidence.
func countNoisy(events []model.EpisodicEvent) int {
	n := 0
	for _, e := range events {
		if e.Type == model.EventError || e.Type == model.EventDebugging {
			n++
		}
	}
	return n
}

// isPositive reports whether an event signals a positive outcome.
func isPositive(e model.EpisodicEvent) bool {
	return e.Type == model.EventSuccess || e.Outcome == model.OutcomeSuccess
}

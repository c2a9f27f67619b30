// Package temporal turns ordered episodic event streams into
// session-bounded chains, inferred causal relations, and extracted
// patterns. All functions are pure transformations over in-memory
// slices; callers own persistence.
package temporal

import (
	"sort"
	"time"

	"github.com/athena-mem/athena/internal/model"
)

// DefaultMaxChainGap is the adjacency threshold: consecutive events
// further apart than this break the chain. A gap of exactly the
// threshold still chains; the cut condition is strictly "greater than".
const DefaultMaxChainGap = time.Hour

// ChainOptions configures chaining behavior.
type ChainOptions struct {
	MaxGap          time.Duration
	SameSessionOnly bool
}

// DefaultChainOptions returns the default chaining options.
func DefaultChainOptions() ChainOptions {
	return ChainOptions{MaxGap: DefaultMaxChainGap, SameSessionOnly: true}
}

// BuildChains groups events into temporal chains. Events are processed
// in timestamp order (the input is sorted internally, stably, so equal
// timestamps keep their input order). Empty input yields no chains;
// chains are never empty.
func BuildChains(events []model.EpisodicEvent, opts ChainOptions) ([]model.EventChain, error) {
	if opts.MaxGap <= 0 {
		opts.MaxGap = DefaultMaxChainGap
	}
	if len(events) == 0 {
		return nil, nil
	}

	sorted, err := sortedByTime(events)
	if err != nil {
		return nil, err
	}

	var chains []model.EventChain
	current := []model.EpisodicEvent{sorted[0]}

	for _, next := range sorted[1:] {
		last := current[len(current)-1]
		gap := next.Timestamp.Sub(last.Timestamp)

		sameSession := !opts.SameSessionOnly || next.SessionID == current[0].SessionID
		if sameSession && gap <= opts.MaxGap {
			current = append(current, next)
			continue
		}

		chain, err := model.NewEventChain(current, chainSession(current, opts))
		if err != nil {
			return nil, err
		}
		chains = append(chains, chain)
		current = []model.EpisodicEvent{next}
	}

	chain, err := model.NewEventChain(current, chainSession(current, opts))
	if err != nil {
		return nil, err
	}
	return append(chains, chain), nil
}

func chainSession(events []model.EpisodicEvent, opts ChainOptions) string {
	if opts.SameSessionOnly {
		return events[0].SessionID
	}
	return ""
}

// sortedByTime validates every event and returns a stably sorted copy.
func sortedByTime(events []model.EpisodicEvent) ([]model.EpisodicEvent, error) {
	for _, e := range events {
		if err := e.Validate(); err != nil {
			return nil, err
		}
	}
	sorted := make([]model.EpisodicEvent, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})
	return sorted, nil
}

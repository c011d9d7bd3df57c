// Package pipeline composes game-rule systems into a deterministic event
// processor. Systems run in a total order derived from their declared
// dependencies; each system sees the proposals of the systems before it but
// never their effects in the store. Re-running the same event batch through
// the same registrations therefore reproduces the same mutation sequence,
// which is what makes replay possible.
package pipeline

import (
	"errors"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"

	"github.com/hearthforge/chronicle/gamestate"
	"github.com/hearthforge/chronicle/log"
	"github.com/hearthforge/chronicle/types"
)

// System is one game-rule concern. It reads entities through the context,
// inspects the event batch and the proposals accumulated so far, and returns
// new mutations. Systems must not mutate the store, perform I/O, or read
// randomness or the clock: any such value must already be in the event.
type System func(ctx Context) ([]types.Mutation, error)

// Registration binds a system to its name and declared predecessors. The
// runner orders systems so that every name in After runs first. Order between
// independent systems follows registration order, and that combined order is
// part of the engine's compatibility contract: changing it invalidates replay
// of existing logs.
type Registration struct {
	Name   string
	System System
	After  []string
}

// Runner executes registered systems in dependency order.
type Runner struct {
	ordered []Registration
}

// NewRunner resolves the registrations into a total order. It fails on
// duplicate names, references to unknown systems, and dependency cycles.
func NewRunner(registrations ...Registration) (*Runner, error) {
	byName := make(map[string]int, len(registrations))
	for i, reg := range registrations {
		if reg.Name == "" {
			return nil, eris.New("system name cannot be empty")
		}
		if reg.System == nil {
			return nil, eris.Errorf("system %q has no function", reg.Name)
		}
		if _, ok := byName[reg.Name]; ok {
			return nil, eris.Errorf("duplicate system %q", reg.Name)
		}
		byName[reg.Name] = i
	}
	for _, reg := range registrations {
		for _, dep := range reg.After {
			if _, ok := byName[dep]; !ok {
				return nil, eris.Errorf("system %q depends on unknown system %q", reg.Name, dep)
			}
		}
	}

	ordered, err := sortByDependency(registrations, byName)
	if err != nil {
		return nil, err
	}
	return &Runner{ordered: ordered}, nil
}

// sortByDependency is Kahn's algorithm with registration order as the
// deterministic tie-break: among the systems whose predecessors have all
// run, the earliest-registered goes next.
func sortByDependency(registrations []Registration, byName map[string]int) ([]Registration, error) {
	n := len(registrations)
	remaining := make([]int, n)
	for i, reg := range registrations {
		remaining[i] = len(reg.After)
	}

	done := make([]bool, n)
	ordered := make([]Registration, 0, n)
	for len(ordered) < n {
		next := -1
		for i := range registrations {
			if !done[i] && remaining[i] == 0 {
				next = i
				break
			}
		}
		if next == -1 {
			return nil, eris.New("system dependency cycle detected")
		}
		done[next] = true
		ordered = append(ordered, registrations[next])
		for i, reg := range registrations {
			if done[i] {
				continue
			}
			for _, dep := range reg.After {
				if byName[dep] == next {
					remaining[i]--
				}
			}
		}
	}
	return ordered, nil
}

// SystemNames returns the resolved execution order.
func (r *Runner) SystemNames() []string {
	names := make([]string, len(r.ordered))
	for i, reg := range r.ordered {
		names[i] = reg.Name
	}
	return names
}

// Run folds the systems over the event batch, threading the accumulating
// mutation sequence from system to system. On success it returns the full
// sequence, not yet applied to the store. On failure it returns a RunError
// carrying the failing system's rule violations and the proposals
// accumulated before it; no later system runs.
func (r *Runner) Run(
	reader gamestate.Reader,
	events []types.Event,
	initial []types.Mutation,
	logger *zerolog.Logger,
) ([]types.Mutation, error) {
	accumulated := make([]types.Mutation, len(initial), len(initial)+16)
	copy(accumulated, initial)

	for _, reg := range r.ordered {
		ctx := &runContext{
			reader:   reader,
			events:   events,
			proposed: accumulated,
			logger:   *log.CreateSystemLogger(logger, reg.Name),
		}
		proposals, err := reg.System(ctx)
		if err != nil {
			return nil, &RunError{
				System:      reg.Name,
				Errs:        stampDomainErrors(reg.Name, err),
				Accumulated: accumulated,
				cause:       err,
			}
		}
		accumulated = append(accumulated, proposals...)
	}
	return accumulated, nil
}

// stampDomainErrors extracts the rule violations from a system error and
// stamps them with the failing system's name. Non-domain failures (e.g. a
// missing entity) yield an empty collection; the cause is still carried by
// the RunError.
func stampDomainErrors(system string, err error) DomainErrors {
	var many DomainErrors
	if errors.As(err, &many) {
		for _, e := range many {
			e.System = system
		}
		return many
	}
	var one *DomainError
	if errors.As(err, &one) {
		one.System = system
		return DomainErrors{one}
	}
	return nil
}

package pipeline_test

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/hearthforge/chronicle/assert"
	"github.com/hearthforge/chronicle/gamestate"
	"github.com/hearthforge/chronicle/pipeline"
	"github.com/hearthforge/chronicle/types"
)

func noop(pipeline.Context) ([]types.Mutation, error) { return nil, nil }

func proposes(mutations ...types.Mutation) pipeline.System {
	return func(pipeline.Context) ([]types.Mutation, error) {
		return mutations, nil
	}
}

func runPipeline(t *testing.T, runner *pipeline.Runner, events ...types.Event) ([]types.Mutation, error) {
	t.Helper()
	logger := zerolog.Nop()
	return runner.Run(gamestate.NewStore(), events, nil, &logger)
}

func TestSystemsRunInDependencyOrder(t *testing.T) {
	runner, err := pipeline.NewRunner(
		pipeline.Registration{Name: "charlie", System: noop, After: []string{"bravo"}},
		pipeline.Registration{Name: "bravo", System: noop, After: []string{"alpha"}},
		pipeline.Registration{Name: "alpha", System: noop},
	)
	assert.NilError(t, err)
	assert.DeepEqual(t, runner.SystemNames(), []string{"alpha", "bravo", "charlie"})
}

func TestIndependentSystemsKeepRegistrationOrder(t *testing.T) {
	runner, err := pipeline.NewRunner(
		pipeline.Registration{Name: "zulu", System: noop},
		pipeline.Registration{Name: "alpha", System: noop},
		pipeline.Registration{Name: "mike", System: noop, After: []string{"zulu"}},
	)
	assert.NilError(t, err)
	assert.DeepEqual(t, runner.SystemNames(), []string{"zulu", "alpha", "mike"})
}

func TestRunnerRejectsBadRegistrations(t *testing.T) {
	testCases := []struct {
		name          string
		registrations []pipeline.Registration
		wantErr       string
	}{
		{
			name:          "empty name",
			registrations: []pipeline.Registration{{Name: "", System: noop}},
			wantErr:       "name cannot be empty",
		},
		{
			name:          "nil system",
			registrations: []pipeline.Registration{{Name: "alpha"}},
			wantErr:       "has no function",
		},
		{
			name: "duplicate name",
			registrations: []pipeline.Registration{
				{Name: "alpha", System: noop},
				{Name: "alpha", System: noop},
			},
			wantErr: "duplicate system",
		},
		{
			name: "unknown dependency",
			registrations: []pipeline.Registration{
				{Name: "alpha", System: noop, After: []string{"ghost"}},
			},
			wantErr: "unknown system",
		},
		{
			name: "cycle",
			registrations: []pipeline.Registration{
				{Name: "alpha", System: noop, After: []string{"bravo"}},
				{Name: "bravo", System: noop, After: []string{"alpha"}},
			},
			wantErr: "cycle",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := pipeline.NewRunner(tc.registrations...)
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestLaterSystemsSeeEarlierProposals(t *testing.T) {
	first := types.DealDamage{ID: "goblin", Amount: 8}
	var seen []types.Mutation
	runner, err := pipeline.NewRunner(
		pipeline.Registration{Name: "first", System: proposes(first)},
		pipeline.Registration{Name: "second", System: func(ctx pipeline.Context) ([]types.Mutation, error) {
			seen = append([]types.Mutation{}, ctx.Proposed()...)
			return []types.Mutation{types.SetComponent{ID: "goblin", Component: types.Trauma{Active: true}}}, nil
		}, After: []string{"first"}},
	)
	assert.NilError(t, err)

	mutations, err := runPipeline(t, runner)
	assert.NilError(t, err)

	assert.Len(t, seen, 1)
	assert.Equal(t, seen[0], types.Mutation(first))
	assert.Len(t, mutations, 2)
	assert.Equal(t, mutations[0], types.Mutation(first))
}

func TestInitialMutationsAreVisibleToEverySystem(t *testing.T) {
	initial := types.CreditCurrency{ID: "hero", Silver: 1}
	var seen int
	runner, err := pipeline.NewRunner(
		pipeline.Registration{Name: "only", System: func(ctx pipeline.Context) ([]types.Mutation, error) {
			seen = len(ctx.Proposed())
			return nil, nil
		}},
	)
	assert.NilError(t, err)

	logger := zerolog.Nop()
	mutations, err := runner.Run(gamestate.NewStore(), nil, []types.Mutation{initial}, &logger)
	assert.NilError(t, err)
	assert.Equal(t, seen, 1)
	assert.Len(t, mutations, 1)
}

func TestPipelineFailsFastOnDomainErrors(t *testing.T) {
	early := types.DebitCurrency{ID: "hero", Silver: 1}
	violation := pipeline.Domainf("insufficient funds")
	var ranAfterFailure bool
	runner, err := pipeline.NewRunner(
		pipeline.Registration{Name: "before", System: proposes(early)},
		pipeline.Registration{Name: "failing", System: func(pipeline.Context) ([]types.Mutation, error) {
			return nil, pipeline.DomainErrors{violation}
		}, After: []string{"before"}},
		pipeline.Registration{Name: "after", System: func(pipeline.Context) ([]types.Mutation, error) {
			ranAfterFailure = true
			return nil, nil
		}, After: []string{"failing"}},
	)
	assert.NilError(t, err)

	_, err = runPipeline(t, runner)
	assert.IsError(t, err)
	assert.False(t, ranAfterFailure)

	var runErr *pipeline.RunError
	assert.True(t, errors.As(err, &runErr))
	assert.Equal(t, runErr.System, "failing")
	assert.Len(t, runErr.Errs, 1)
	assert.Equal(t, runErr.Errs[0].System, "failing")
	// Earlier proposals are context for the caller, never applied.
	assert.Len(t, runErr.Accumulated, 1)
	assert.Equal(t, runErr.Accumulated[0], types.Mutation(early))
}

func TestSingleDomainErrorIsStampedAndWrapped(t *testing.T) {
	runner, err := pipeline.NewRunner(
		pipeline.Registration{Name: "failing", System: func(pipeline.Context) ([]types.Mutation, error) {
			return nil, pipeline.Domainf("invalid equip target")
		}},
	)
	assert.NilError(t, err)

	_, err = runPipeline(t, runner)

	var runErr *pipeline.RunError
	assert.True(t, errors.As(err, &runErr))
	assert.Len(t, runErr.Errs, 1)
	assert.Equal(t, runErr.Errs[0].Error(), "system failing: invalid equip target")
}

func TestNonDomainFailureCarriesNoViolations(t *testing.T) {
	runner, err := pipeline.NewRunner(
		pipeline.Registration{Name: "failing", System: func(ctx pipeline.Context) ([]types.Mutation, error) {
			_, err := ctx.Entity("nobody")
			return nil, err
		}},
	)
	assert.NilError(t, err)

	_, err = runPipeline(t, runner)

	var runErr *pipeline.RunError
	assert.True(t, errors.As(err, &runErr))
	assert.Len(t, runErr.Errs, 0)
	assert.ErrorIs(t, err, gamestate.ErrEntityNotFound)
}

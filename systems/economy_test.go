package systems_test

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/hearthforge/chronicle/assert"
	"github.com/hearthforge/chronicle/gamestate"
	"github.com/hearthforge/chronicle/pipeline"
	"github.com/hearthforge/chronicle/systems"
	"github.com/hearthforge/chronicle/types"
)

func newEconomyStore() *gamestate.Store {
	store := gamestate.NewStore()
	store.Set(types.NewEntity("hero", types.Purse{Silver: 50}))
	store.Set(types.NewEntity("merchant", types.Purse{Silver: 0}))
	return store
}

func TestValidTransferProducesDebitAndCredit(t *testing.T) {
	ctx := newTestContext(newEconomyStore(), types.CurrencyTransferred{
		FromID: "hero", ToID: "merchant", Silver: 12,
	})

	_, err := systems.FundsCheck(ctx)
	assert.NilError(t, err)

	mutations, err := systems.CurrencyTransfer(ctx)
	assert.NilError(t, err)
	assert.Len(t, mutations, 2)
	assert.Equal(t, mutations[0], types.Mutation(types.DebitCurrency{ID: "hero", Silver: 12}))
	assert.Equal(t, mutations[1], types.Mutation(types.CreditCurrency{ID: "merchant", Silver: 12}))
}

func TestFundsCheckRejectsInsufficientFunds(t *testing.T) {
	ctx := newTestContext(newEconomyStore(), types.CurrencyTransferred{
		FromID: "hero", ToID: "merchant", Silver: 51,
	})

	_, err := systems.FundsCheck(ctx)
	var violations pipeline.DomainErrors
	assert.True(t, errors.As(err, &violations))
	assert.Len(t, violations, 1)
	assert.ErrorContains(t, violations, "insufficient funds")
}

func TestFundsCheckRejectsNonPositiveAmounts(t *testing.T) {
	for _, silver := range []int{0, -5} {
		ctx := newTestContext(newEconomyStore(), types.CurrencyTransferred{
			FromID: "hero", ToID: "merchant", Silver: silver,
		})

		_, err := systems.FundsCheck(ctx)
		assert.ErrorContains(t, err, "invalid transfer amount")
	}
}

func TestFundsCheckCollectsEveryViolationInTheBatch(t *testing.T) {
	ctx := newTestContext(newEconomyStore(),
		types.CurrencyTransferred{FromID: "hero", ToID: "merchant", Silver: 100},
		types.CurrencyTransferred{FromID: "hero", ToID: "merchant", Silver: -1},
	)

	_, err := systems.FundsCheck(ctx)
	var violations pipeline.DomainErrors
	assert.True(t, errors.As(err, &violations))
	assert.Len(t, violations, 2)
}

func TestFundsCheckPropagatesMissingParties(t *testing.T) {
	ctx := newTestContext(newEconomyStore(), types.CurrencyTransferred{
		FromID: "ghost", ToID: "merchant", Silver: 1,
	})

	_, err := systems.FundsCheck(ctx)
	assert.ErrorIs(t, err, gamestate.ErrEntityNotFound)
}

func TestTransferScenarioEndToEnd(t *testing.T) {
	// A hero with 50 silver pays a merchant 12: post-state 38 and 12, driven
	// through the full catalogue the way the engine would run it.
	store := newEconomyStore()
	runner, err := pipeline.NewRunner(systems.Registrations()...)
	assert.NilError(t, err)

	logger := zerolog.Nop()
	mutations, err := runner.Run(store,
		[]types.Event{types.CurrencyTransferred{FromID: "hero", ToID: "merchant", Silver: 12}},
		nil, &logger)
	assert.NilError(t, err)
	assert.NilError(t, store.ApplyAll(mutations))

	hero, _ := store.Entity("hero")
	c, _ := hero.Component(types.KindPurse)
	assert.Equal(t, c.(types.Purse).Silver, 38)

	merchant, _ := store.Entity("merchant")
	c, _ = merchant.Component(types.KindPurse)
	assert.Equal(t, c.(types.Purse).Silver, 12)
}

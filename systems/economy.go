package systems

import (
	"github.com/hearthforge/chronicle/pipeline"
	"github.com/hearthforge/chronicle/types"
)

// FundsCheck validates currency transfers before CurrencyTransfer enacts
// them. It emits nothing; it only fails the pass when a transfer is invalid,
// so an uncovered debit never enters the accumulated mutation sequence.
//
// Both parties must exist; a transfer naming a missing entity propagates
// EntityNotFound.
func FundsCheck(ctx pipeline.Context) ([]types.Mutation, error) {
	var violations pipeline.DomainErrors
	for _, event := range ctx.Events() {
		e, ok := event.(types.CurrencyTransferred)
		if !ok {
			continue
		}

		if e.Silver <= 0 {
			violations = append(violations, pipeline.Domainf("invalid transfer amount %d", e.Silver))
			continue
		}

		from, err := ctx.Entity(e.FromID)
		if err != nil {
			return nil, err
		}
		if _, err := ctx.Entity(e.ToID); err != nil {
			return nil, err
		}

		c, ok := from.Component(types.KindPurse)
		if !ok {
			violations = append(violations, pipeline.Domainf("entity %s has no purse", e.FromID))
			continue
		}
		if purse := c.(types.Purse); purse.Silver < e.Silver {
			violations = append(violations, pipeline.Domainf(
				"insufficient funds: entity %s has %d silver, transfer needs %d",
				e.FromID, purse.Silver, e.Silver))
		}
	}
	if len(violations) > 0 {
		return nil, violations
	}
	return nil, nil
}

// CurrencyTransfer turns each validated transfer into its debit and credit
// halves. The pairing is atomic only because both halves travel in the same
// mutation batch.
func CurrencyTransfer(ctx pipeline.Context) ([]types.Mutation, error) {
	var out []types.Mutation
	for _, event := range ctx.Events() {
		e, ok := event.(types.CurrencyTransferred)
		if !ok {
			continue
		}
		ctx.Logger().Debug().
			Str("from", string(e.FromID)).
			Str("to", string(e.ToID)).
			Int("silver", e.Silver).
			Msg("transferring currency")
		out = append(out,
			types.DebitCurrency{ID: e.FromID, Silver: e.Silver},
			types.CreditCurrency{ID: e.ToID, Silver: e.Silver},
		)
	}
	return out, nil
}

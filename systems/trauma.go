package systems

import (
	"errors"

	"github.com/hearthforge/chronicle/gamestate"
	"github.com/hearthforge/chronicle/pipeline"
	"github.com/hearthforge/chronicle/types"
)

// Trauma reacts to the damage proposed earlier in the same pass. When the
// accumulated damage against a target would drop its current health to zero,
// it marks the target traumatized and dead. It reads health as it was before
// the event; the DealDamage proposals have not been applied yet.
func Trauma(ctx pipeline.Context) ([]types.Mutation, error) {
	damage := make(map[types.EntityID]int)
	var order []types.EntityID
	for _, proposed := range ctx.Proposed() {
		m, ok := proposed.(types.DealDamage)
		if !ok {
			continue
		}
		if _, seen := damage[m.ID]; !seen {
			order = append(order, m.ID)
		}
		damage[m.ID] += m.Amount
	}

	var out []types.Mutation
	for _, id := range order {
		target, err := ctx.Entity(id)
		if errors.Is(err, gamestate.ErrEntityNotFound) {
			continue
		} else if err != nil {
			return nil, err
		}

		c, ok := target.Component(types.KindHealth)
		if !ok {
			continue
		}
		health := c.(types.Health)
		if health.Current-damage[id] > 0 {
			continue
		}
		if c, ok := target.Component(types.KindTrauma); ok && c.(types.Trauma).Active {
			continue
		}

		ctx.Logger().Info().Str("entity_id", string(id)).Msg("entity downed")
		out = append(out,
			types.SetComponent{ID: id, Component: types.Trauma{Active: true}},
			types.SetComponent{ID: id, Component: types.Corpse{}},
		)
	}
	return out, nil
}

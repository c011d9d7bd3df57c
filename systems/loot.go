package systems

import (
	"github.com/hearthforge/chronicle/pipeline"
	"github.com/hearthforge/chronicle/types"
)

// EncumbranceCheck validates loot attempts before Looting enacts them. The
// item must be carried by the source, and the looter must have the spare
// carrying capacity for its weight.
func EncumbranceCheck(ctx pipeline.Context) ([]types.Mutation, error) {
	var violations pipeline.DomainErrors
	for _, event := range ctx.Events() {
		e, ok := event.(types.ItemLooted)
		if !ok {
			continue
		}

		source, err := ctx.Entity(e.SourceID)
		if err != nil {
			return nil, err
		}
		looter, err := ctx.Entity(e.LooterID)
		if err != nil {
			return nil, err
		}

		item, ok := sourceItem(source, e.ItemName)
		if !ok {
			violations = append(violations, pipeline.Domainf(
				"entity %s does not carry %q", e.SourceID, e.ItemName))
			continue
		}

		c, ok := looter.Component(types.KindInventory)
		if !ok {
			violations = append(violations, pipeline.Domainf("entity %s has no inventory", e.LooterID))
			continue
		}
		inv := c.(types.Inventory)
		if inv.TotalWeight()+item.Weight > inv.Capacity {
			violations = append(violations, pipeline.Domainf(
				"carrying capacity exceeded: %s at %d/%d cannot take %q (weight %d)",
				e.LooterID, inv.TotalWeight(), inv.Capacity, item.Name, item.Weight))
		}
	}
	if len(violations) > 0 {
		return nil, violations
	}
	return nil, nil
}

// Looting moves the looted item between inventories. Validation already
// happened in EncumbranceCheck.
func Looting(ctx pipeline.Context) ([]types.Mutation, error) {
	var out []types.Mutation
	for _, event := range ctx.Events() {
		e, ok := event.(types.ItemLooted)
		if !ok {
			continue
		}

		source, err := ctx.Entity(e.SourceID)
		if err != nil {
			return nil, err
		}
		item, ok := sourceItem(source, e.ItemName)
		if !ok {
			continue
		}

		ctx.Logger().Debug().
			Str("looter", string(e.LooterID)).
			Str("item", item.Name).
			Msg("looting item")
		out = append(out, types.TransferItem{FromID: e.SourceID, ToID: e.LooterID, Item: item})
	}
	return out, nil
}

func sourceItem(e types.Entity, name string) (types.Item, bool) {
	c, ok := e.Component(types.KindInventory)
	if !ok {
		return types.Item{}, false
	}
	return c.(types.Inventory).Item(name)
}

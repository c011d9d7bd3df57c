package systems

import (
	"github.com/hearthforge/chronicle/pipeline"
	"github.com/hearthforge/chronicle/types"
)

// Equipment slots.
const (
	SlotMainHand = "mainHand"
	SlotOffHand  = "offHand"
	SlotArmor    = "armor"
)

// Equip wears or wields an item the owner already carries. Equipping into an
// occupied slot replaces the previous item; the replaced item stays in the
// inventory.
func Equip(ctx pipeline.Context) ([]types.Mutation, error) {
	var out []types.Mutation
	var violations pipeline.DomainErrors
	for _, event := range ctx.Events() {
		e, ok := event.(types.ItemEquipped)
		if !ok {
			continue
		}

		owner, err := ctx.Entity(e.OwnerID)
		if err != nil {
			return nil, err
		}
		if _, ok := sourceItem(owner, e.ItemName); !ok {
			violations = append(violations, pipeline.Domainf(
				"invalid equip target: entity %s does not carry %q", e.OwnerID, e.ItemName))
			continue
		}

		var equipment types.Equipment
		if c, ok := owner.Component(types.KindEquipment); ok {
			equipment = c.(types.Equipment)
		}
		switch e.Slot {
		case SlotMainHand:
			equipment.MainHand = e.ItemName
		case SlotOffHand:
			equipment.OffHand = e.ItemName
		case SlotArmor:
			equipment.Armor = e.ItemName
		default:
			violations = append(violations, pipeline.Domainf("unknown equipment slot %q", e.Slot))
			continue
		}

		ctx.Logger().Debug().
			Str("entity_id", string(e.OwnerID)).
			Str("item", e.ItemName).
			Str("slot", e.Slot).
			Msg("equipping item")
		out = append(out, types.SetComponent{ID: e.OwnerID, Component: equipment})
	}
	if len(violations) > 0 {
		return nil, violations
	}
	return out, nil
}

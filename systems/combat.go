package systems

import (
	"errors"

	"github.com/hearthforge/chronicle/gamestate"
	"github.com/hearthforge/chronicle/pipeline"
	"github.com/hearthforge/chronicle/types"
)

// CombatToHit resolves attacks. An attack hits when
// attackRoll + meleeBonus + strengthModifier >= target armor class, and deals
// damageRoll + strengthModifier damage. Both rolls were made when the attack
// happened and arrive in the event.
//
// A missing attacker or target is treated permissively: the attack has no
// effect and is skipped with a warning.
func CombatToHit(ctx pipeline.Context) ([]types.Mutation, error) {
	var out []types.Mutation
	for _, event := range ctx.Events() {
		e, ok := event.(types.AttackPerformed)
		if !ok {
			continue
		}

		attacker, err := ctx.Entity(e.AttackerID)
		if errors.Is(err, gamestate.ErrEntityNotFound) {
			ctx.Logger().Warn().Str("entity_id", string(e.AttackerID)).Msg("attacker missing, skipping attack")
			continue
		} else if err != nil {
			return nil, err
		}
		target, err := ctx.Entity(e.TargetID)
		if errors.Is(err, gamestate.ErrEntityNotFound) {
			ctx.Logger().Warn().Str("entity_id", string(e.TargetID)).Msg("target missing, skipping attack")
			continue
		} else if err != nil {
			return nil, err
		}

		strMod := strengthModifier(attacker)
		toHit := e.AttackRoll + meleeBonus(attacker) + strMod
		ac := armorClass(target)
		if toHit < ac {
			ctx.Logger().Debug().
				Int("to_hit", toHit).
				Int("armor_class", ac).
				Msg("attack missed")
			continue
		}

		out = append(out, types.DealDamage{ID: e.TargetID, Amount: e.DamageRoll + strMod})
	}
	return out, nil
}

func strengthModifier(e types.Entity) int {
	c, ok := e.Component(types.KindAttributes)
	if !ok {
		return 0
	}
	return types.Modifier(c.(types.Attributes).Strength)
}

func meleeBonus(e types.Entity) int {
	c, ok := e.Component(types.KindCombat)
	if !ok {
		return 0
	}
	return c.(types.CombatStats).MeleeBonus
}

// armorClass defaults to 10 for entities without combat stats.
func armorClass(e types.Entity) int {
	c, ok := e.Component(types.KindCombat)
	if !ok {
		return 10
	}
	return c.(types.CombatStats).ArmorClass
}

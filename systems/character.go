package systems

import (
	"github.com/hearthforge/chronicle/pipeline"
	"github.com/hearthforge/chronicle/types"
)

// Level-one characters attack with a flat proficiency bonus.
const baseProficiencyBonus = 2

// CharacterCreation materializes new characters. The character id and every
// rolled score arrive in the event itself, so creation is fully replayable.
func CharacterCreation(ctx pipeline.Context) ([]types.Mutation, error) {
	var out []types.Mutation
	for _, event := range ctx.Events() {
		e, ok := event.(types.CharacterCreationStarted)
		if !ok {
			continue
		}

		items := append([]types.Item{}, e.StartingItems...)
		entity := types.NewEntity(e.CharacterID,
			types.Profile{Name: e.Name, Class: e.Class, Level: 1},
			types.Attributes{
				Strength:     e.Strength,
				Dexterity:    e.Dexterity,
				Constitution: e.Constitution,
			},
			types.Health{Current: e.MaxHealth, Max: e.MaxHealth},
			types.CombatStats{
				ArmorClass: 10 + types.Modifier(e.Dexterity),
				MeleeBonus: baseProficiencyBonus,
			},
			types.Inventory{Capacity: e.Capacity, Items: items},
			types.Purse{Silver: e.StartingSilver},
			types.Equipment{},
		)

		ctx.Logger().Debug().
			Str("entity_id", string(e.CharacterID)).
			Str("name", e.Name).
			Msg("creating character")
		out = append(out, types.CreateEntity{Entity: entity})
	}
	return out, nil
}

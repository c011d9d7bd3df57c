package systems

import (
	"sort"

	"github.com/hearthforge/chronicle/pipeline"
	"github.com/hearthforge/chronicle/types"
)

// EncounterSetup materializes the encounter entity itself. Initiative order
// is rolled separately by the Initiative system; here the encounter just
// opens at round one.
func EncounterSetup(ctx pipeline.Context) ([]types.Mutation, error) {
	var out []types.Mutation
	var violations pipeline.DomainErrors
	for _, event := range ctx.Events() {
		e, ok := event.(types.EncounterStarted)
		if !ok {
			continue
		}
		if len(e.Rolls) != len(e.Participants) {
			violations = append(violations, pipeline.Domainf(
				"encounter %s has %d initiative rolls for %d participants",
				e.EncounterID, len(e.Rolls), len(e.Participants)))
			continue
		}
		for _, id := range e.Participants {
			if _, err := ctx.Entity(id); err != nil {
				return nil, err
			}
		}

		ctx.Logger().Debug().
			Str("encounter_id", string(e.EncounterID)).
			Int("participants", len(e.Participants)).
			Msg("starting encounter")
		out = append(out, types.CreateEntity{
			Entity: types.NewEntity(e.EncounterID, types.Encounter{Round: 1}),
		})
	}
	if len(violations) > 0 {
		return nil, violations
	}
	return out, nil
}

// Initiative orders the participants by their rolled initiative, highest
// first. Ties keep the participants' event order, so the order is fully
// determined by the event. The rolls arrived in the event; nothing is rolled
// here.
func Initiative(ctx pipeline.Context) ([]types.Mutation, error) {
	var out []types.Mutation
	for _, event := range ctx.Events() {
		e, ok := event.(types.EncounterStarted)
		if !ok {
			continue
		}
		if len(e.Rolls) != len(e.Participants) {
			continue
		}

		type combatant struct {
			id   types.EntityID
			roll int
		}
		combatants := make([]combatant, len(e.Participants))
		for i, id := range e.Participants {
			combatants[i] = combatant{id: id, roll: e.Rolls[i]}
		}
		sort.SliceStable(combatants, func(i, j int) bool {
			return combatants[i].roll > combatants[j].roll
		})
		order := make([]types.EntityID, len(combatants))
		for i, c := range combatants {
			order[i] = c.id
		}

		out = append(out, types.SetComponent{
			ID: e.EncounterID,
			Component: types.Encounter{
				Round:       1,
				TurnOrder:   order,
				ActiveIndex: 0,
			},
		})
	}
	return out, nil
}

// TurnManagement advances the active combatant pointer; when the last
// combatant's turn ends the round counter increments and the order restarts
// from the top.
func TurnManagement(ctx pipeline.Context) ([]types.Mutation, error) {
	var out []types.Mutation
	var violations pipeline.DomainErrors
	for _, event := range ctx.Events() {
		e, ok := event.(types.TurnEnded)
		if !ok {
			continue
		}

		entity, err := ctx.Entity(e.EncounterID)
		if err != nil {
			return nil, err
		}
		c, ok := entity.Component(types.KindEncounter)
		if !ok {
			violations = append(violations, pipeline.Domainf("entity %s is not an encounter", e.EncounterID))
			continue
		}

		enc := c.(types.Encounter)
		if len(enc.TurnOrder) == 0 {
			violations = append(violations, pipeline.Domainf("encounter %s has no turn order", e.EncounterID))
			continue
		}
		enc.ActiveIndex++
		if enc.ActiveIndex >= len(enc.TurnOrder) {
			enc.ActiveIndex = 0
			enc.Round++
		}

		ctx.Logger().Debug().
			Str("encounter_id", string(e.EncounterID)).
			Int("round", enc.Round).
			Int("active_index", enc.ActiveIndex).
			Msg("advancing turn")
		out = append(out, types.SetComponent{ID: e.EncounterID, Component: enc})
	}
	if len(violations) > 0 {
		return nil, violations
	}
	return out, nil
}

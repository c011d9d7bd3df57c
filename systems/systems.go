// Package systems holds the game-rule systems. Each system implements one
// concern: it inspects the event batch and the proposals accumulated so far,
// reads entities as they were before the event, and proposes new mutations.
//
// Validating systems (funds_check, encumbrance_check) are ordered before the
// systems that enact the change they guard, so an invalid change never makes
// it into the accumulated mutation sequence.
package systems

import (
	"github.com/hearthforge/chronicle/pipeline"
)

// Registrations returns the full system catalogue with its declared
// dependencies. This list is part of the engine's replay compatibility
// contract: logs committed under one catalogue must be replayed under the
// same one.
func Registrations() []pipeline.Registration {
	return []pipeline.Registration{
		{Name: "character_creation", System: CharacterCreation},
		{Name: "encounter_setup", System: EncounterSetup},
		{Name: "initiative", System: Initiative, After: []string{"encounter_setup"}},
		{Name: "turn_management", System: TurnManagement, After: []string{"initiative"}},
		{Name: "combat_to_hit", System: CombatToHit},
		{Name: "trauma", System: Trauma, After: []string{"combat_to_hit"}},
		{Name: "funds_check", System: FundsCheck},
		{Name: "currency_transfer", System: CurrencyTransfer, After: []string{"funds_check"}},
		{Name: "encumbrance_check", System: EncumbranceCheck},
		{Name: "looting", System: Looting, After: []string{"encumbrance_check"}},
		{Name: "equipment", System: Equip},
	}
}

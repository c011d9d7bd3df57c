package types

// Event is an immutable fact describing something that happened. Events are
// the only externally submitted input and the sole source of truth: any
// random or time-dependent value a system needs must already be captured in
// the event's own fields, or replay will diverge.
//
// The set of events is closed; external packages cannot add new ones.
type Event interface {
	// EventName returns the stable wire name of the event type.
	EventName() string

	isEvent()
}

// Event wire names.
const (
	EventNameCharacterCreationStarted = "character.creation_started"
	EventNameAttackPerformed          = "combat.attack_performed"
	EventNameCurrencyTransferred      = "economy.currency_transferred"
	EventNameItemLooted               = "loot.item_looted"
	EventNameItemEquipped             = "equipment.item_equipped"
	EventNameEncounterStarted         = "encounter.started"
	EventNameTurnEnded                = "encounter.turn_ended"
)

// CharacterCreationStarted carries everything needed to materialize a new
// character, including its pre-allocated id. The id is allocated by the
// caller (via an IDSource) before the event is submitted so that replay
// reproduces it exactly.
type CharacterCreationStarted struct {
	CharacterID    EntityID `json:"characterId"`
	Name           string   `json:"name"`
	Class          string   `json:"class"`
	Strength       int      `json:"strength"`
	Dexterity      int      `json:"dexterity"`
	Constitution   int      `json:"constitution"`
	MaxHealth      int      `json:"maxHealth"`
	StartingSilver int      `json:"startingSilver"`
	StartingItems  []Item   `json:"startingItems,omitempty"`
	Capacity       int      `json:"capacity"`
}

func (CharacterCreationStarted) EventName() string { return EventNameCharacterCreationStarted }
func (CharacterCreationStarted) isEvent()          {}

// AttackPerformed records one attack. The attack and damage rolls were made
// when the attack happened; systems never roll dice themselves.
type AttackPerformed struct {
	AttackerID EntityID `json:"attackerId"`
	TargetID   EntityID `json:"targetId"`
	AttackRoll int      `json:"attackRoll"`
	DamageRoll int      `json:"damageRoll"`
}

func (AttackPerformed) EventName() string { return EventNameAttackPerformed }
func (AttackPerformed) isEvent()          {}

// CurrencyTransferred records a transfer of silver between two entities.
type CurrencyTransferred struct {
	FromID EntityID `json:"fromId"`
	ToID   EntityID `json:"toId"`
	Silver int      `json:"silver"`
}

func (CurrencyTransferred) EventName() string { return EventNameCurrencyTransferred }
func (CurrencyTransferred) isEvent()          {}

// ItemLooted records an item being taken from a source entity's inventory.
type ItemLooted struct {
	LooterID EntityID `json:"looterId"`
	SourceID EntityID `json:"sourceId"`
	ItemName string   `json:"itemName"`
}

func (ItemLooted) EventName() string { return EventNameItemLooted }
func (ItemLooted) isEvent()          {}

// ItemEquipped records an item from the owner's inventory being equipped
// into a slot ("mainHand", "offHand" or "armor").
type ItemEquipped struct {
	OwnerID  EntityID `json:"ownerId"`
	ItemName string   `json:"itemName"`
	Slot     string   `json:"slot"`
}

func (ItemEquipped) EventName() string { return EventNameItemEquipped }
func (ItemEquipped) isEvent()          {}

// EncounterStarted opens an encounter between the given participants. The
// initiative rolls are parallel to Participants and were made when the
// encounter started.
type EncounterStarted struct {
	EncounterID  EntityID   `json:"encounterId"`
	Participants []EntityID `json:"participants"`
	Rolls        []int      `json:"rolls"`
}

func (EncounterStarted) EventName() string { return EventNameEncounterStarted }
func (EncounterStarted) isEvent()          {}

// TurnEnded advances the active encounter to the next combatant.
type TurnEnded struct {
	EncounterID EntityID `json:"encounterId"`
}

func (TurnEnded) EventName() string { return EventNameTurnEnded }
func (TurnEnded) isEvent()          {}

package types

// ComponentKind tags a component type. An entity holds at most one component
// per kind; setting a component of an existing kind replaces it atomically.
type ComponentKind string

const (
	KindAttributes ComponentKind = "attributes"
	KindHealth     ComponentKind = "health"
	KindCombat     ComponentKind = "combat_stats"
	KindProfile    ComponentKind = "profile"
	KindInventory  ComponentKind = "inventory"
	KindPurse      ComponentKind = "purse"
	KindEquipment  ComponentKind = "equipment"
	KindTrauma     ComponentKind = "trauma"
	KindCorpse     ComponentKind = "corpse"
	KindEncounter  ComponentKind = "encounter"
)

// Component is an immutable, tagged data fragment describing one facet of an
// entity. Implementations are plain value structs; they must be JSON
// serializable so entities can cross the persistence boundary.
type Component interface {
	// Kind returns the component's kind tag. It must be consistent across
	// program executions.
	Kind() ComponentKind
}

// Attributes holds the raw ability scores of a character.
type Attributes struct {
	Strength     int `json:"strength"`
	Dexterity    int `json:"dexterity"`
	Constitution int `json:"constitution"`
}

func (Attributes) Kind() ComponentKind { return KindAttributes }

// Modifier converts a raw ability score into its bonus: (score-10)/2,
// rounded toward negative infinity.
func Modifier(score int) int {
	if score >= 10 {
		return (score - 10) / 2
	}
	return -((11 - score) / 2)
}

// Health tracks current and maximum hit points. Current never drops below
// zero; the applier clamps it.
type Health struct {
	Current int `json:"current"`
	Max     int `json:"max"`
}

func (Health) Kind() ComponentKind { return KindHealth }

// CombatStats holds the derived combat numbers used by attack resolution.
type CombatStats struct {
	ArmorClass int `json:"armorClass"`
	MeleeBonus int `json:"meleeBonus"`
}

func (CombatStats) Kind() ComponentKind { return KindCombat }

// Profile is descriptive character metadata.
type Profile struct {
	Name  string `json:"name"`
	Class string `json:"class"`
	Level int    `json:"level"`
}

func (Profile) Kind() ComponentKind { return KindProfile }

// Item is a carried object. Damage is dice notation (e.g. "1d8") for weapons
// and empty otherwise.
type Item struct {
	Name   string `json:"name"`
	Weight int    `json:"weight"`
	Damage string `json:"damage,omitempty"`
}

// Inventory is an ordered list of carried items with a weight capacity.
type Inventory struct {
	Capacity int    `json:"capacity"`
	Items    []Item `json:"items"`
}

func (Inventory) Kind() ComponentKind { return KindInventory }

// TotalWeight returns the combined weight of all carried items.
func (inv Inventory) TotalWeight() int {
	total := 0
	for _, item := range inv.Items {
		total += item.Weight
	}
	return total
}

// Item returns the carried item with the given name, if present.
func (inv Inventory) Item(name string) (Item, bool) {
	for _, item := range inv.Items {
		if item.Name == name {
			return item, true
		}
	}
	return Item{}, false
}

// Purse holds a character's currency in silver pieces.
type Purse struct {
	Silver int `json:"silver"`
}

func (Purse) Kind() ComponentKind { return KindPurse }

// Equipment names the items worn or wielded, by slot.
type Equipment struct {
	MainHand string `json:"mainHand,omitempty"`
	OffHand  string `json:"offHand,omitempty"`
	Armor    string `json:"armor,omitempty"`
}

func (Equipment) Kind() ComponentKind { return KindEquipment }

// Trauma marks an entity that has been reduced to zero hit points.
type Trauma struct {
	Active bool `json:"active"`
}

func (Trauma) Kind() ComponentKind { return KindTrauma }

// Corpse marks a dead entity. Death is a domain state, not a store removal.
type Corpse struct{}

func (Corpse) Kind() ComponentKind { return KindCorpse }

// Encounter tracks initiative order and turn progression for one encounter
// entity.
type Encounter struct {
	Round       int        `json:"round"`
	TurnOrder   []EntityID `json:"turnOrder"`
	ActiveIndex int        `json:"activeIndex"`
}

func (Encounter) Kind() ComponentKind { return KindEncounter }

package types

// Mutation is one granular, typed command describing a single state change to
// the read model. The vocabulary is closed: the State Applier dispatches on
// the concrete type with an exhaustive switch, and an unknown mutation is a
// defect, not a no-op.
//
// Applying a mutation is a pure function of (current state, mutation). A
// mutation never branches on wall-clock time or unseeded randomness; any such
// value was captured earlier by the system that proposed it, from the
// triggering event's data.
type Mutation interface {
	isMutation()
}

// CreateEntity brings a new entity into existence. This is the only way an
// entity enters the store; updates targeting a missing entity are hard
// errors.
type CreateEntity struct {
	Entity Entity
}

func (CreateEntity) isMutation() {}

// SetComponent replaces the target entity's component of the same kind, or
// adds it if absent.
type SetComponent struct {
	ID        EntityID
	Component Component
}

func (SetComponent) isMutation() {}

// RemoveComponent removes the component of the given kind from the target
// entity. Removing an absent kind is a no-op.
type RemoveComponent struct {
	ID   EntityID
	Kind ComponentKind
}

func (RemoveComponent) isMutation() {}

// DealDamage reduces the target's current health by Amount, floored at zero.
// Amount >= 0 is a precondition enforced by the proposing system, not by the
// applier.
type DealDamage struct {
	ID     EntityID
	Amount int
}

func (DealDamage) isMutation() {}

// DebitCurrency removes silver from the target's purse. Sufficient funds are
// validated by the proposing pipeline, not re-checked at apply time.
type DebitCurrency struct {
	ID     EntityID
	Silver int
}

func (DebitCurrency) isMutation() {}

// CreditCurrency adds silver to the target's purse.
type CreditCurrency struct {
	ID     EntityID
	Silver int
}

func (CreditCurrency) isMutation() {}

// TransferItem moves one item from one inventory to another. The two halves
// are applied as independent single-entity updates; their pairing is atomic
// only insofar as both live in the same committed batch.
type TransferItem struct {
	FromID EntityID
	ToID   EntityID
	Item   Item
}

func (TransferItem) isMutation() {}

package gamestate

import (
	"github.com/rotisserie/eris"

	"github.com/hearthforge/chronicle/types"
)

// ApplyMutation interprets one mutation against the store. Dispatch is an
// exhaustive switch over the closed mutation vocabulary; an unhandled
// concrete type is a defect and fails loudly.
//
// The applier checks structure only (entity exists, component present).
// Business rules were validated by the pipeline before the batch got here and
// are not re-checked.
func (s *Store) ApplyMutation(mutation types.Mutation) error {
	switch m := mutation.(type) {
	case types.CreateEntity:
		// Last set wins on id collision; uniqueness is the id source's job.
		s.Set(m.Entity)
		return nil

	case types.SetComponent:
		return s.Update(m.ID, func(e types.Entity) (types.Entity, error) {
			return e.WithComponent(m.Component), nil
		})

	case types.RemoveComponent:
		return s.Update(m.ID, func(e types.Entity) (types.Entity, error) {
			return e.WithoutComponent(m.Kind), nil
		})

	case types.DealDamage:
		return s.Update(m.ID, func(e types.Entity) (types.Entity, error) {
			c, ok := e.Component(types.KindHealth)
			if !ok {
				return e, eris.Wrapf(ErrComponentNotOnEntity, "no health on entity %q", m.ID)
			}
			health := c.(types.Health)
			health.Current -= m.Amount
			if health.Current < 0 {
				health.Current = 0
			}
			return e.WithComponent(health), nil
		})

	case types.DebitCurrency:
		return s.adjustSilver(m.ID, -m.Silver)

	case types.CreditCurrency:
		return s.adjustSilver(m.ID, m.Silver)

	case types.TransferItem:
		// Two independent halves. Pairing is guaranteed only by both living
		// in the same committed batch.
		err := s.Update(m.FromID, func(e types.Entity) (types.Entity, error) {
			c, ok := e.Component(types.KindInventory)
			if !ok {
				return e, eris.Wrapf(ErrComponentNotOnEntity, "no inventory on entity %q", m.FromID)
			}
			inv := c.(types.Inventory)
			items, removed := removeItem(inv.Items, m.Item.Name)
			if !removed {
				return e, eris.Wrapf(ErrItemNotInInventory, "item %q on entity %q", m.Item.Name, m.FromID)
			}
			inv.Items = items
			return e.WithComponent(inv), nil
		})
		if err != nil {
			return err
		}
		return s.Update(m.ToID, func(e types.Entity) (types.Entity, error) {
			c, ok := e.Component(types.KindInventory)
			if !ok {
				return e, eris.Wrapf(ErrComponentNotOnEntity, "no inventory on entity %q", m.ToID)
			}
			inv := c.(types.Inventory)
			inv.Items = append(append([]types.Item{}, inv.Items...), m.Item)
			return e.WithComponent(inv), nil
		})

	default:
		return eris.Errorf("unhandled mutation type %T", mutation)
	}
}

// ApplyAll applies the batch strictly in order, stopping at the first
// failure. Mutations applied before the failure stay applied; callers must
// not assume the batch rolls back.
func (s *Store) ApplyAll(mutations []types.Mutation) error {
	for i, m := range mutations {
		if err := s.ApplyMutation(m); err != nil {
			return eris.Wrapf(err, "mutation %d of %d failed", i+1, len(mutations))
		}
	}
	return nil
}

func (s *Store) adjustSilver(id types.EntityID, delta int) error {
	return s.Update(id, func(e types.Entity) (types.Entity, error) {
		c, ok := e.Component(types.KindPurse)
		if !ok {
			return e, eris.Wrapf(ErrComponentNotOnEntity, "no purse on entity %q", id)
		}
		purse := c.(types.Purse)
		purse.Silver += delta
		return e.WithComponent(purse), nil
	})
}

func removeItem(items []types.Item, name string) ([]types.Item, bool) {
	out := make([]types.Item, 0, len(items))
	removed := false
	for _, item := range items {
		if !removed && item.Name == name {
			removed = true
			continue
		}
		out = append(out, item)
	}
	return out, removed
}

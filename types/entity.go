package types

// EntityID is the opaque, unique identifier of an entity. It is assigned once
// at creation time and never reused.
type EntityID string

// Entity is an identity plus a collection of components, at most one per
// kind. Entities are value objects: every change produces a new Entity value
// that replaces the old one in the store. There is no in-place mutation.
type Entity struct {
	ID         EntityID
	Components []Component
}

// NewEntity creates an entity with the given components. Later components of
// a duplicated kind replace earlier ones, preserving the at-most-one-per-kind
// invariant.
func NewEntity(id EntityID, components ...Component) Entity {
	e := Entity{ID: id, Components: make([]Component, 0, len(components))}
	for _, c := range components {
		e = e.WithComponent(c)
	}
	return e
}

// Component returns the component of the given kind, if present.
func (e Entity) Component(kind ComponentKind) (Component, bool) {
	for _, c := range e.Components {
		if c.Kind() == kind {
			return c, true
		}
	}
	return nil, false
}

// Has reports whether the entity holds a component of the given kind.
func (e Entity) Has(kind ComponentKind) bool {
	_, ok := e.Component(kind)
	return ok
}

// WithComponent returns a copy of the entity with the component set. A
// component of the same kind is replaced in place; otherwise the component is
// appended. The receiver is never modified.
func (e Entity) WithComponent(component Component) Entity {
	components := make([]Component, len(e.Components), len(e.Components)+1)
	copy(components, e.Components)
	for i, c := range components {
		if c.Kind() == component.Kind() {
			components[i] = component
			return Entity{ID: e.ID, Components: components}
		}
	}
	components = append(components, component)
	return Entity{ID: e.ID, Components: components}
}

// WithoutComponent returns a copy of the entity with the component of the
// given kind removed. Removing an absent kind is a no-op.
func (e Entity) WithoutComponent(kind ComponentKind) Entity {
	components := make([]Component, 0, len(e.Components))
	for _, c := range e.Components {
		if c.Kind() != kind {
			components = append(components, c)
		}
	}
	return Entity{ID: e.ID, Components: components}
}

package pipeline

import (
	"github.com/rs/zerolog"

	"github.com/hearthforge/chronicle/gamestate"
	"github.com/hearthforge/chronicle/types"
)

// Context is the full capability surface a system sees. Reads observe the
// state prior to the current event's processing; proposals from earlier
// systems in the same pass are visible only through Proposed.
type Context interface {
	// Entity returns the entity with the given id from the read model, or
	// gamestate.ErrEntityNotFound.
	Entity(id types.EntityID) (types.Entity, error)

	// Events returns the event batch being processed.
	Events() []types.Event

	// Proposed returns the mutations accumulated from earlier systems in
	// this pass, in proposal order. The slice must not be modified.
	Proposed() []types.Mutation

	// Logger returns a logger scoped to the running system.
	Logger() *zerolog.Logger
}

type runContext struct {
	reader   gamestate.Reader
	events   []types.Event
	proposed []types.Mutation
	logger   zerolog.Logger
}

var _ Context = &runContext{}

func (c *runContext) Entity(id types.EntityID) (types.Entity, error) {
	return c.reader.Entity(id)
}

func (c *runContext) Events() []types.Event { return c.events }

func (c *runContext) Proposed() []types.Mutation { return c.proposed }

func (c *runContext) Logger() *zerolog.Logger { return &c.logger }

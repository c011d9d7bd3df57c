// Package chronicle is an event-sourced state engine for tabletop campaigns.
// An append-only log of domain events is the source of truth; the entity read
// model is derived by running each event through a deterministic pipeline of
// game-rule systems and can be rebuilt from the log at any time.
package chronicle

import (
	"context"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"

	"github.com/hearthforge/chronicle/eventlog"
	"github.com/hearthforge/chronicle/gamestate"
	"github.com/hearthforge/chronicle/log"
	"github.com/hearthforge/chronicle/pipeline"
	"github.com/hearthforge/chronicle/roll"
	"github.com/hearthforge/chronicle/systems"
	"github.com/hearthforge/chronicle/types"
)

// Engine wires the entity store, the event log and the system pipeline, and
// owns the commit protocol. There is a single logical writer: commits and
// replays serialize behind the engine mutex, while reads stay concurrent.
type Engine struct {
	store         *gamestate.Store
	log           eventlog.Log
	runner        *pipeline.Runner
	registrations []pipeline.Registration
	ids           roll.IDSource
	clock         func() time.Time
	logger        zerolog.Logger

	// mu serializes commits and replays. Reads do not take it.
	mu        sync.Mutex
	processed atomic.Uint64
}

// New builds an engine from the config. The default system catalogue, a
// uuid-backed id source and the wall clock are used unless options override
// them.
func New(cfg Config, opts ...Option) (*Engine, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, eris.Wrapf(err, "unknown log level %q", cfg.LogLevel)
	}

	e := &Engine{
		store:         gamestate.NewStore(),
		registrations: systems.Registrations(),
		ids:           roll.NewUUIDSource(),
		clock:         time.Now,
		logger: zerolog.New(os.Stderr).Level(level).With().
			Timestamp().
			Str("namespace", cfg.Namespace).
			Logger(),
	}
	for _, opt := range opts {
		opt(e)
	}

	e.runner, err = pipeline.NewRunner(e.registrations...)
	if err != nil {
		return nil, err
	}

	if e.log == nil {
		switch cfg.LogBackend {
		case LogBackendRedis:
			client := redis.NewClient(&redis.Options{
				Addr:     cfg.RedisAddress,
				Password: cfg.RedisPassword,
			})
			e.log = eventlog.NewRedisLog(client, cfg.Namespace, eventlog.DefaultRegistry())
		default:
			e.log = eventlog.NewMemoryLog()
		}
	}

	log.Systems(&e.logger, e, zerolog.InfoLevel)
	return e, nil
}

// RegisteredSystems returns the resolved system execution order.
func (e *Engine) RegisteredSystems() []string {
	return e.runner.SystemNames()
}

// Entity returns one entity from the read model.
func (e *Engine) Entity(id types.EntityID) (types.Entity, error) {
	return e.store.Entity(id)
}

// Log returns the engine's event log.
func (e *Engine) Log() eventlog.Log {
	return e.log
}

// Snapshot is the read-only view pulled by dashboards after each commit.
type Snapshot struct {
	ProcessedEvents uint64
	TotalEvents     uint64
	Entities        []types.Entity
}

// Snapshot enumerates the read model along with the engine's progress
// through the log.
func (e *Engine) Snapshot(ctx context.Context) (Snapshot, error) {
	total, err := e.log.Len(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{
		ProcessedEvents: e.processed.Load(),
		TotalEvents:     total,
		Entities:        e.store.All(),
	}, nil
}

// Package log holds zerolog helpers shared by the engine and the systems.
package log

import (
	"github.com/rs/zerolog"

	"github.com/hearthforge/chronicle/types"
)

// Loggable is implemented by the engine so its registered system catalogue
// can be logged at startup.
type Loggable interface {
	RegisteredSystems() []string
}

func loadSystemsIntoEvent(zeroLoggerEvent *zerolog.Event, target Loggable) *zerolog.Event {
	systems := target.RegisteredSystems()
	zeroLoggerEvent.Int("total_systems", len(systems))
	arrayLogger := zerolog.Arr()
	for _, sysName := range systems {
		arrayLogger = arrayLogger.Str(sysName)
	}
	return zeroLoggerEvent.Array("systems", arrayLogger)
}

// Systems logs the resolved system execution order.
func Systems(logger *zerolog.Logger, target Loggable, level zerolog.Level) {
	zeroLoggerEvent := logger.WithLevel(level)
	zeroLoggerEvent = loadSystemsIntoEvent(zeroLoggerEvent, target)
	zeroLoggerEvent.Send()
}

// Entity logs an entity with the kinds of the components it holds.
func Entity(logger *zerolog.Logger, level zerolog.Level, entity types.Entity) {
	zeroLoggerEvent := logger.WithLevel(level)
	arrayLogger := zerolog.Arr()
	for _, component := range entity.Components {
		arrayLogger = arrayLogger.Str(string(component.Kind()))
	}
	zeroLoggerEvent.Array("component_kinds", arrayLogger)
	zeroLoggerEvent.Str("entity_id", string(entity.ID)).Send()
}

// CreateSystemLogger creates a sub logger with the entry {"system": systemName}.
func CreateSystemLogger(logger *zerolog.Logger, systemName string) *zerolog.Logger {
	newLogger := logger.With().Str("system", systemName).Logger()
	return &newLogger
}

// CreateEntryLogger creates a sub logger scoped to one log entry, used to
// follow a single commit or replay step through the pipeline.
func CreateEntryLogger(logger *zerolog.Logger, entryID string) *zerolog.Logger {
	newLogger := logger.With().Str("entry_id", entryID).Logger()
	return &newLogger
}

package chronicle

import (
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/hearthforge/chronicle/eventlog"
	"github.com/hearthforge/chronicle/pipeline"
	"github.com/hearthforge/chronicle/roll"
)

// Option augments how the Engine is built.
type Option func(*Engine)

// WithLogger replaces the engine's logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithPrettyLog switches the engine's logger to human-readable console
// output. Intended for local development.
func WithPrettyLog() Option {
	return func(e *Engine) {
		e.logger = e.logger.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

// WithEventLog replaces the event log built from the config. Tests use this
// to inject an in-memory or miniredis-backed log.
func WithEventLog(log eventlog.Log) Option {
	return func(e *Engine) {
		e.log = log
	}
}

// WithIDSource replaces the entry id source. Tests pass a sequential source
// so committed entry ids are stable.
func WithIDSource(ids roll.IDSource) Option {
	return func(e *Engine) {
		e.ids = ids
	}
}

// WithClock replaces the timestamp source used for log entries.
func WithClock(clock func() time.Time) Option {
	return func(e *Engine) {
		e.clock = clock
	}
}

// WithRegistrations replaces the default system catalogue. The registrations
// used for commits are a replay compatibility contract; replaying a log under
// different registrations diverges.
func WithRegistrations(registrations ...pipeline.Registration) Option {
	return func(e *Engine) {
		e.registrations = registrations
	}
}

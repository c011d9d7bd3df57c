package chronicle

import (
	"context"

	"github.com/hearthforge/chronicle/eventlog"
	"github.com/hearthforge/chronicle/log"
	"github.com/hearthforge/chronicle/types"
)

// Submit runs the event through the system pipeline and commits the result:
// the entry is appended to the log first, then every mutation is applied to
// the read model in order.
//
// A failed append skips state application entirely; the event never happened.
// A failure during application leaves the event durably logged and the state
// possibly partially updated. The returned entry is valid for inspection in
// both failure modes; callers must not treat a failed commit as rolled back.
func (e *Engine) Submit(ctx context.Context, event types.Event) (eventlog.Entry, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	mutations, err := e.runner.Run(e.store, []types.Event{event}, nil, &e.logger)
	if err != nil {
		return eventlog.Entry{}, err
	}

	entry := eventlog.Entry{
		ID:        eventlog.EntryID(e.ids.NewID()),
		Timestamp: e.clock(),
		Event:     event,
		Mutations: mutations,
	}
	entryLogger := log.CreateEntryLogger(&e.logger, string(entry.ID))

	if err := e.log.Append(ctx, &entry); err != nil {
		entryLogger.Error().Err(err).Msg("append failed, state untouched")
		return entry, err
	}

	if err := e.store.ApplyAll(entry.Mutations); err != nil {
		entryLogger.Error().Err(err).Msg("event logged but state application failed")
		return entry, err
	}

	e.processed.Add(1)
	entryLogger.Debug().
		Str("event", event.EventName()).
		Uint64("seq", entry.Seq).
		Int("mutations", len(entry.Mutations)).
		Msg("event committed")
	return entry, nil
}

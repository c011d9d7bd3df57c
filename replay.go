package chronicle

import (
	"context"
	"math"

	"github.com/hearthforge/chronicle/eventlog"
	"github.com/hearthforge/chronicle/log"
	"github.com/hearthforge/chronicle/types"
)

// replayPageSize bounds how many entries are materialized per log read.
const replayPageSize = 64

// Replay rebuilds the read model from the event log alone. The store is
// cleared and every logged event is re-run through the same system pipeline
// used at commit time; cached mutation batches are ignored. With the same
// registrations in place the resulting state is identical to the one the
// original live commits produced.
func (e *Engine) Replay(ctx context.Context) error {
	return e.ReplayTo(ctx, math.MaxUint64)
}

// ReplayTo replays the log prefix up to and including the given sequence
// number.
func (e *Engine) ReplayTo(ctx context.Context, maxSeq uint64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.store.Clear()
	e.processed.Store(0)

	afterSeq := uint64(0)
	for {
		entries, err := e.log.List(ctx, afterSeq, replayPageSize)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			return nil
		}
		for _, entry := range entries {
			if entry.Seq > maxSeq {
				return nil
			}
			if err := e.replayEntry(entry); err != nil {
				return err
			}
			afterSeq = entry.Seq
		}
	}
}

func (e *Engine) replayEntry(entry eventlog.Entry) error {
	entryLogger := log.CreateEntryLogger(&e.logger, string(entry.ID))

	mutations, err := e.runner.Run(e.store, []types.Event{entry.Event}, nil, entryLogger)
	if err != nil {
		return err
	}
	if err := e.store.ApplyAll(mutations); err != nil {
		return err
	}

	e.processed.Add(1)
	entryLogger.Debug().
		Str("event", entry.Event.EventName()).
		Uint64("seq", entry.Seq).
		Msg("entry replayed")
	return nil
}

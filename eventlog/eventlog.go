// Package eventlog holds the append-only journal of domain events. Append is
// the single durability boundary of the engine: once an entry is appended it
// is the permanent record of intent, even if applying its mutations to the
// read model fails afterwards.
package eventlog

import (
	"context"
	"fmt"
	"time"

	"github.com/rotisserie/eris"

	"github.com/hearthforge/chronicle/types"
)

var ErrEntryNotFound = eris.New("event log entry not found")

// EntryID is the unique identifier of a log entry.
type EntryID string

// Entry is one persisted record: an id, a timestamp and the domain event.
// Seq is assigned by the log on append and defines the total order that
// replay must honor.
//
// Mutations optionally caches the batch the event produced, for audit only.
// Replay never reads it; the pipeline recomputes mutations from the event.
type Entry struct {
	ID        EntryID
	Seq       uint64
	Timestamp time.Time
	Event     types.Event
	Mutations []types.Mutation
}

// Log is the append-only event journal. Entries are totally ordered by
// append; that order is the only legitimate replay order.
//
// Append assumes a single logical writer (the committer); reads may run
// concurrently with each other and with the writer.
type Log interface {
	// Append persists the entry and assigns its sequence number. A failed
	// append leaves no trace of the entry in the log.
	Append(ctx context.Context, entry *Entry) error

	// Read returns the entry with the given id, or ErrEntryNotFound.
	Read(ctx context.Context, id EntryID) (Entry, error)

	// List returns up to limit entries with Seq > afterSeq, in log order.
	// An empty result means the end of the log has been reached.
	List(ctx context.Context, afterSeq uint64, limit int) ([]Entry, error)

	// Len returns the number of entries in the log.
	Len(ctx context.Context) (uint64, error)
}

// WriteError reports a failed append. The entry id identifies the record
// that was never durably logged.
type WriteError struct {
	EntryID EntryID
	Err     error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("event log write failed for entry %q: %v", e.EntryID, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

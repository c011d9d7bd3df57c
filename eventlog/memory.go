package eventlog

import (
	"context"
	"sync"

	"github.com/rotisserie/eris"
)

// MemoryLog is the default, in-process event log. Entries live in insertion
// order; the id index serves point reads.
type MemoryLog struct {
	mu      sync.RWMutex
	entries []Entry
	byID    map[EntryID]int
}

var _ Log = &MemoryLog{}

// NewMemoryLog creates an empty in-memory log.
func NewMemoryLog() *MemoryLog {
	return &MemoryLog{byID: make(map[EntryID]int)}
}

func (l *MemoryLog) Append(_ context.Context, entry *Entry) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.byID[entry.ID]; ok {
		return &WriteError{EntryID: entry.ID, Err: eris.Errorf("duplicate entry id %q", entry.ID)}
	}
	entry.Seq = uint64(len(l.entries)) + 1
	l.byID[entry.ID] = len(l.entries)
	l.entries = append(l.entries, *entry)
	return nil
}

func (l *MemoryLog) Read(_ context.Context, id EntryID) (Entry, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	i, ok := l.byID[id]
	if !ok {
		return Entry{}, eris.Wrapf(ErrEntryNotFound, "entry %q", id)
	}
	return l.entries[i], nil
}

func (l *MemoryLog) List(_ context.Context, afterSeq uint64, limit int) ([]Entry, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if afterSeq >= uint64(len(l.entries)) || limit <= 0 {
		return nil, nil
	}
	end := afterSeq + uint64(limit)
	if end > uint64(len(l.entries)) {
		end = uint64(len(l.entries))
	}
	out := make([]Entry, end-afterSeq)
	copy(out, l.entries[afterSeq:end])
	return out, nil
}

func (l *MemoryLog) Len(_ context.Context) (uint64, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return uint64(len(l.entries)), nil
}

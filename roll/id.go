package roll

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// IDSource allocates unique identifiers for entities and log entries.
type IDSource interface {
	NewID() string
}

type uuidSource struct{}

// NewUUIDSource creates the live id source, backed by random UUIDs.
func NewUUIDSource() IDSource {
	return uuidSource{}
}

func (uuidSource) NewID() string {
	return uuid.NewString()
}

// SequentialIDs allocates "prefix-1", "prefix-2", ... Test implementation.
type SequentialIDs struct {
	prefix string
	n      atomic.Uint64
}

// NewSequentialIDs creates a SequentialIDs source with the given prefix.
func NewSequentialIDs(prefix string) *SequentialIDs {
	return &SequentialIDs{prefix: prefix}
}

func (s *SequentialIDs) NewID() string {
	return fmt.Sprintf("%s-%d", s.prefix, s.n.Add(1))
}

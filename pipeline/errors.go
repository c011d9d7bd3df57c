package pipeline

import (
	"fmt"
	"strings"

	"github.com/hearthforge/chronicle/types"
)

// DomainError is a business-rule violation raised by a system (insufficient
// funds, capacity exceeded, invalid equip target). The runner stamps the
// system name when the failure propagates.
type DomainError struct {
	System  string
	Message string
}

func (e *DomainError) Error() string {
	if e.System == "" {
		return e.Message
	}
	return fmt.Sprintf("system %s: %s", e.System, e.Message)
}

// Domainf builds a DomainError from a format string.
func Domainf(format string, args ...any) *DomainError {
	return &DomainError{Message: fmt.Sprintf(format, args...)}
}

// DomainErrors aggregates every rule violation one system raised in a single
// invocation. It is always non-empty when returned.
type DomainErrors []*DomainError

func (e DomainErrors) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

// RunError reports a failed pipeline invocation. Accumulated holds the
// proposals from the systems that ran before the failing one; they are
// returned for context only and were never applied to the store.
type RunError struct {
	System      string
	Errs        DomainErrors
	Accumulated []types.Mutation
	cause       error
}

func (e *RunError) Error() string {
	return fmt.Sprintf("system %s failed: %v", e.System, e.cause)
}

func (e *RunError) Unwrap() error { return e.cause }

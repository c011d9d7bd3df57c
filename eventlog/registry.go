package eventlog

import (
	"time"

	"github.com/goccy/go-json"
	"github.com/rotisserie/eris"

	"github.com/hearthforge/chronicle/types"
)

// Registry maps event wire names to decoders so a serialized entry can be
// turned back into its concrete domain event. Every event that may cross the
// persistence boundary must be registered, or reads will fail.
type Registry struct {
	decoders map[string]func([]byte) (types.Event, error)
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{decoders: make(map[string]func([]byte) (types.Event, error))}
}

// RegisterEvent registers the decoder for event type T under its wire name.
// Registering the same name twice is an error.
func RegisterEvent[T types.Event](r *Registry) error {
	var zero T
	name := zero.EventName()
	if _, ok := r.decoders[name]; ok {
		return eris.Errorf("event %q is already registered", name)
	}
	r.decoders[name] = func(payload []byte) (types.Event, error) {
		var event T
		if err := json.Unmarshal(payload, &event); err != nil {
			return nil, eris.Wrapf(err, "failed to decode event %q", name)
		}
		return event, nil
	}
	return nil
}

// Decode decodes a payload previously produced for the named event type.
func (r *Registry) Decode(name string, payload []byte) (types.Event, error) {
	decode, ok := r.decoders[name]
	if !ok {
		return nil, eris.Errorf("unknown event %q", name)
	}
	return decode(payload)
}

// DefaultRegistry returns a registry with the full domain event catalogue.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	// The catalogue is closed, so registration cannot collide.
	_ = RegisterEvent[types.CharacterCreationStarted](r)
	_ = RegisterEvent[types.AttackPerformed](r)
	_ = RegisterEvent[types.CurrencyTransferred](r)
	_ = RegisterEvent[types.ItemLooted](r)
	_ = RegisterEvent[types.ItemEquipped](r)
	_ = RegisterEvent[types.EncounterStarted](r)
	_ = RegisterEvent[types.TurnEnded](r)
	return r
}

// entryEnvelope is the wire form of an Entry. The mutation cache is
// deliberately not serialized: replay must be able to recompute mutations
// from the event alone.
type entryEnvelope struct {
	ID        EntryID         `json:"id"`
	Seq       uint64          `json:"seq"`
	Timestamp int64           `json:"timestamp"`
	EventName string          `json:"eventName"`
	Payload   json.RawMessage `json:"payload"`
}

func encodeEntry(entry *Entry) ([]byte, error) {
	payload, err := json.Marshal(entry.Event)
	if err != nil {
		return nil, eris.Wrapf(err, "failed to encode event %q", entry.Event.EventName())
	}
	return json.Marshal(entryEnvelope{
		ID:        entry.ID,
		Seq:       entry.Seq,
		Timestamp: entry.Timestamp.UnixMilli(),
		EventName: entry.Event.EventName(),
		Payload:   payload,
	})
}

func decodeEntry(registry *Registry, bz []byte) (Entry, error) {
	var envelope entryEnvelope
	if err := json.Unmarshal(bz, &envelope); err != nil {
		return Entry{}, eris.Wrap(err, "failed to decode event log entry")
	}
	event, err := registry.Decode(envelope.EventName, envelope.Payload)
	if err != nil {
		return Entry{}, err
	}
	return Entry{
		ID:        envelope.ID,
		Seq:       envelope.Seq,
		Timestamp: time.UnixMilli(envelope.Timestamp).UTC(),
		Event:     event,
	}, nil
}

package ws

import "fmt"

// OpCode is the integer "op" field of a gateway payload. Codes below zero are
// synthesized locally and never appear on the wire.
type OpCode int

// EventType is the "t" field of a dispatch payload.
type EventType string

// Event is one decoded gateway payload. Every event reports the op code it
// travels under and, for dispatch events, its event type.
type Event interface {
	Op() OpCode
	EventType() EventType
}

// Op frames an Event with its wire metadata.
type Op struct {
	Code OpCode `json:"op"`
	Data Event  `json:"d,omitempty"`

	// Type is set on dispatch events only.
	Type EventType `json:"t,omitempty"`
	// Sequence is set on dispatch events only.
	Sequence int64 `json:"s,omitempty"`
}

// CloseEvent is synthesized when the websocket closes. It doubles as an
// error.
type CloseEvent struct {
	// Err is what ended the connection.
	Err error
	// Code is the websocket close code, or -1 if the connection died without
	// one.
	Code int
}

// Error formats the close reason.
func (e *CloseEvent) Error() string {
	return fmt.Sprintf("websocket closed: %s", e.Err)
}

// Unwrap returns the underlying error.
func (e *CloseEvent) Unwrap() error { return e.Err }

// Op implements Event with a local op code.
func (e *CloseEvent) Op() OpCode { return -1 }

// EventType implements Event with an opaque local type.
func (e *CloseEvent) EventType() EventType { return "__ws.CloseEvent" }

// OpFunc allocates a zero Event of one concrete type.
type OpFunc func() Event

// OpUnmarshalers maps (op code, event type) pairs to event allocators, which
// is how the codec gives incoming payloads concrete types.
type OpUnmarshalers map[opKey]OpFunc

type opKey struct {
	code OpCode
	typ  EventType
}

// NewOpUnmarshalers builds a registry from the given allocators. Each
// allocator is keyed by what its event reports for Op and EventType.
func NewOpUnmarshalers(funcs ...OpFunc) OpUnmarshalers {
	m := make(OpUnmarshalers, len(funcs))
	m.Add(funcs...)
	return m
}

// Add registers more allocators.
func (m OpUnmarshalers) Add(funcs ...OpFunc) {
	for _, fn := range funcs {
		ev := fn()
		m[opKey{ev.Op(), ev.EventType()}] = fn
	}
}

// Lookup returns the allocator registered for the pair, or nil.
func (m OpUnmarshalers) Lookup(code OpCode, typ EventType) OpFunc {
	return m[opKey{code, typ}]
}

// UnknownEventError is reported when a payload arrives for a pair that no
// allocator covers. Unknown events are skipped, never fatal.
type UnknownEventError struct {
	Op   OpCode
	Type EventType
}

// Error formats the unknown pair.
func (err UnknownEventError) Error() string {
	return fmt.Sprintf("unknown event: op %d, type %q", err.Op, err.Type)
}

package ws

import (
	"io"
	"net/http"

	"github.com/pkg/errors"

	"github.com/quaverlib/quaver/utils/json"
)

// Codec turns wire payloads into typed Ops using a registry of event
// allocators.
type Codec struct {
	Unmarshalers OpUnmarshalers
	Headers      http.Header
}

// NewCodec creates a Codec that advertises zlib transport compression.
func NewCodec(unmarshalers OpUnmarshalers) Codec {
	return Codec{
		Unmarshalers: unmarshalers,
		Headers: http.Header{
			"Accept-Encoding": {"zlib"},
		},
	}
}

// maxKeptBuffer caps the scratch buffer that survives between payloads, so
// one oversized payload doesn't pin its allocation forever.
const maxKeptBuffer = 1 << 15

// DecodeBuffer is the scratch space for Decode. It belongs to a single
// reader goroutine and must not be shared.
type DecodeBuffer struct {
	raw json.Raw
}

// NewDecodeBuffer preallocates a buffer of the given capacity.
func NewDecodeBuffer(cap int) DecodeBuffer {
	if cap > maxKeptBuffer {
		cap = maxKeptBuffer
	}
	return DecodeBuffer{raw: make(json.Raw, 0, cap)}
}

// rawOp is the wire shape of a payload before its data is given a type.
type rawOp struct {
	Op
	Data json.Raw `json:"d,omitempty"`
}

// Decode reads one payload from r. Malformed or unknown payloads come back
// boxed as a BackgroundErrorEvent op rather than an error, so a single bad
// payload never kills the connection.
func (c Codec) Decode(r io.Reader, buf *DecodeBuffer) Op {
	raw := rawOp{Data: buf.raw}

	if err := json.DecodeStream(r, &raw); err != nil {
		return errorOp(errors.Wrap(err, "failed to decode payload"))
	}

	// Keep the possibly grown backing array for the next payload.
	if cap(raw.Data) <= maxKeptBuffer {
		buf.raw = raw.Data[:0]
	}

	alloc := c.Unmarshalers.Lookup(raw.Code, raw.Type)
	if alloc == nil {
		return errorOp(UnknownEventError{Op: raw.Code, Type: raw.Type})
	}

	raw.Op.Data = alloc()
	if err := raw.Data.UnmarshalTo(raw.Op.Data); err != nil {
		return errorOp(errors.Wrap(err, "failed to decode event data"))
	}

	return raw.Op
}

// errorOp boxes err so it can travel the event channel.
func errorOp(err error) Op {
	ev := &BackgroundErrorEvent{Err: err}
	return Op{Code: ev.Op(), Type: ev.EventType(), Data: ev}
}

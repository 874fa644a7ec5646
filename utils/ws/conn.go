package ws

import (
	"compress/zlib"
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
)

// ErrWebsocketClosed is returned when an operation is attempted on a closed
// websocket.
var ErrWebsocketClosed = errors.New("websocket is closed")

// Connection abstracts a websocket transport. Implementations handle their
// own transport compression. A Connection must be redialable after Close.
type Connection interface {
	// Dial connects to addr and returns the channel that incoming ops arrive
	// on. The channel is closed when the connection dies. Dialing over a live
	// connection closes the old one first.
	Dial(ctx context.Context, addr string) (<-chan Op, error)

	// Send writes one payload.
	Send(ctx context.Context, b []byte) error

	// Close tears down the connection. With gracefully set, a close frame is
	// written first.
	Close(gracefully bool) error
}

// Conn is the gorilla/websocket-backed Connection. It inflates zlib binary
// frames transparently.
type Conn struct {
	dialer websocket.Dialer
	codec  Codec

	// mut guards live across Dial/Send/Close.
	mut  sync.Mutex
	live *liveConn

	// CloseTimeout bounds the graceful close handshake. Defaults to 5s.
	CloseTimeout time.Duration
}

var _ Connection = (*Conn)(nil)

// NewConn creates a Conn with sane dialer defaults.
func NewConn(codec Codec) *Conn {
	return &Conn{
		dialer: websocket.Dialer{
			Proxy:             http.ProxyFromEnvironment,
			HandshakeTimeout:  10 * time.Second,
			ReadBufferSize:    1 << 15,
			WriteBufferSize:   1 << 15,
			EnableCompression: true,
		},
		codec:        codec,
		CloseTimeout: 5 * time.Second,
	}
}

// liveConn is one dialed websocket. writeMu serializes writers; holding the
// token means holding the write side of the socket.
type liveConn struct {
	wsconn  *websocket.Conn
	writeMu chan struct{}
	stop    context.CancelFunc
}

// Dial implements Connection.
func (c *Conn) Dial(ctx context.Context, addr string) (<-chan Op, error) {
	c.mut.Lock()
	defer c.mut.Unlock()

	if c.live != nil {
		c.live.close(false, c.CloseTimeout)
		c.live = nil
	}

	wsconn, _, err := c.dialer.DialContext(ctx, addr, c.codec.Headers)
	if err != nil {
		return nil, errors.Wrap(err, "failed to dial websocket")
	}

	// The pump outlives ctx; it stops when the connection closes.
	pumpCtx, stop := context.WithCancel(context.Background())

	ops := make(chan Op, 1)
	go c.readPump(pumpCtx, wsconn, ops)

	c.live = &liveConn{
		wsconn:  wsconn,
		writeMu: make(chan struct{}, 1),
		stop:    stop,
	}

	return ops, nil
}

// Send implements Connection.
func (c *Conn) Send(ctx context.Context, b []byte) error {
	c.mut.Lock()
	live := c.live
	c.mut.Unlock()

	if live == nil {
		return ErrWebsocketClosed
	}

	select {
	case live.writeMu <- struct{}{}:
		defer func() { <-live.writeMu }()
	case <-ctx.Done():
		return ctx.Err()
	}

	if deadline, ok := ctx.Deadline(); ok {
		live.wsconn.SetWriteDeadline(deadline)
		defer live.wsconn.SetWriteDeadline(time.Time{})
	}

	return live.wsconn.WriteMessage(websocket.TextMessage, b)
}

// Close implements Connection.
func (c *Conn) Close(gracefully bool) error {
	c.mut.Lock()
	defer c.mut.Unlock()

	if c.live == nil {
		return ErrWebsocketClosed
	}

	err := c.live.close(gracefully, c.CloseTimeout)
	c.live = nil
	return err
}

func (lc *liveConn) close(gracefully bool, timeout time.Duration) error {
	if gracefully {
		lc.sendCloseFrame(timeout)
	}

	err := lc.wsconn.Close()
	lc.stop()
	return err
}

// sendCloseFrame writes a normal-closure frame, giving up after timeout if a
// writer holds the socket.
func (lc *liveConn) sendCloseFrame(timeout time.Duration) {
	deadline := time.Now().Add(timeout)

	wait := time.NewTimer(timeout)
	defer wait.Stop()

	select {
	case lc.writeMu <- struct{}{}:
		defer func() { <-lc.writeMu }()
	case <-wait.C:
		return
	}

	lc.wsconn.SetWriteDeadline(deadline)

	frame := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	if err := lc.wsconn.WriteMessage(websocket.CloseMessage, frame); err != nil {
		WSError(errors.Wrap(err, "failed to send close frame"))
	}
}

// readPump reads frames until the connection dies, delivering each decoded op
// on ops. The final op is always a CloseEvent, after which ops is closed.
func (c *Conn) readPump(ctx context.Context, wsconn *websocket.Conn, ops chan<- Op) {
	defer close(ops)

	var inflater io.ReadCloser
	buf := NewDecodeBuffer(1 << 14)

	for {
		msgType, r, err := wsconn.NextReader()
		if err != nil {
			deliver(ctx, ops, closeOp(err))
			return
		}

		if msgType == websocket.BinaryMessage {
			// Binary frames are zlib-compressed.
			if inflater, err = resetInflater(inflater, r); err != nil {
				deliver(ctx, ops, closeOp(err))
				return
			}
			r = inflater
		}

		op := c.codec.Decode(r, &buf)

		if msgType == websocket.BinaryMessage {
			inflater.Close()
		}

		if !deliver(ctx, ops, op) {
			return
		}
	}
}

// resetInflater reuses the zlib reader across frames, allocating it on the
// first binary frame.
func resetInflater(inflater io.ReadCloser, r io.Reader) (io.ReadCloser, error) {
	if inflater == nil {
		z, err := zlib.NewReader(r)
		if err != nil {
			return nil, errors.Wrap(err, "failed to create zlib reader")
		}
		return z, nil
	}

	if err := inflater.(zlib.Resetter).Reset(r, nil); err != nil {
		return nil, errors.Wrap(err, "failed to reset zlib reader")
	}
	return inflater, nil
}

// closeOp wraps a read error into the terminal CloseEvent op, extracting the
// close code when the peer sent one.
func closeOp(err error) Op {
	ev := &CloseEvent{Err: err, Code: -1}

	var closeErr *websocket.CloseError
	if errors.As(err, &closeErr) {
		ev.Code = closeErr.Code
		ev.Err = fmt.Errorf("%d %s", closeErr.Code, closeErr.Text)
	}

	return Op{Code: ev.Op(), Type: ev.EventType(), Data: ev}
}

// deliver sends op unless the pump was stopped. It reports whether the pump
// should keep running.
func deliver(ctx context.Context, ops chan<- Op, op Op) bool {
	select {
	case ops <- op:
		return true
	case <-ctx.Done():
		return false
	}
}

package ws

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/quaverlib/quaver/internal/lazytime"
	"github.com/quaverlib/quaver/utils/json"
)

// ConnectionError wraps errors that occur while (re)connecting. Check for it
// with errors.As.
type ConnectionError struct {
	Err error
}

// Unwrap returns the dial error.
func (err ConnectionError) Unwrap() error { return err.Err }

// Error formats the error.
func (err ConnectionError) Error() string {
	return fmt.Sprintf("error reconnecting: %s", err.Err)
}

// BackgroundErrorEvent carries an error that surfaced inside the event loop,
// where no caller is around to receive it.
type BackgroundErrorEvent struct {
	Err error
}

var _ Event = (*BackgroundErrorEvent)(nil)

// Unwrap returns the underlying error.
func (err *BackgroundErrorEvent) Unwrap() error { return err.Err }

// Error formats the error.
func (err *BackgroundErrorEvent) Error() string {
	return "background gateway error: " + err.Err.Error()
}

// Op implements Event with a local op code.
func (err *BackgroundErrorEvent) Op() OpCode { return -1 }

// EventType implements Event with an opaque local type.
func (err *BackgroundErrorEvent) EventType() EventType {
	return "__ws.BackgroundErrorEvent"
}

// GatewayOpts tunes the event loop.
type GatewayOpts struct {
	// ReconnectDelay maps the retry count to a backoff duration.
	ReconnectDelay func(try int) time.Duration

	// FatalCloseCodes lists close codes that stop the loop instead of
	// triggering a reconnect.
	FatalCloseCodes []int

	// DialTimeout bounds each dial attempt. Zero means no bound.
	DialTimeout time.Duration

	// ReconnectAttempt caps consecutive failed dials before the loop gives
	// up. Zero means retry forever.
	ReconnectAttempt int

	// AlwaysCloseGracefully makes the final close send a close frame, ending
	// the session on the other end. Defaults to true.
	AlwaysCloseGracefully bool
}

// DefaultGatewayOpts is the default event loop options.
var DefaultGatewayOpts = GatewayOpts{
	ReconnectDelay: func(try int) time.Duration {
		return time.Duration(4+2*try) * time.Second
	},
	AlwaysCloseGracefully: true,
}

// ErrorIsFatalClose reports whether err is a CloseEvent carrying one of the
// fatal close codes.
func (opts GatewayOpts) ErrorIsFatalClose(err error) bool {
	var closeEv *CloseEvent
	if !errors.As(err, &closeEv) {
		return false
	}

	for _, code := range opts.FatalCloseCodes {
		if code == closeEv.Code {
			return true
		}
	}
	return false
}

// Handler reacts to the gateway's traffic. It supplies the protocol on top of
// the raw event loop: what to send on connect, when to heartbeat, when to ask
// for a reconnect.
type Handler interface {
	// OnOp handles one incoming op. Returning false stops the loop.
	OnOp(ctx context.Context, op Op) (ok bool)
	// SendHeartbeat is called on each heartbeat tick.
	SendHeartbeat(ctx context.Context)
	// Close releases the handler once the loop is done with it.
	Close() error
}

// Gateway runs a Handler over a Websocket, keeping the connection alive
// across drops and delivering every op to the caller.
type Gateway struct {
	ws *Websocket

	// Loop-owned state; only the loop goroutine touches these.
	reconnect chan struct{}
	heartbeat lazytime.Ticker
	incoming  <-chan Op
	lastError error

	// mu guards events and running against concurrent callers.
	mu      sync.Mutex
	events  chan Op
	running bool

	opts GatewayOpts
}

// NewGateway wraps ws in a Gateway. A nil opts means DefaultGatewayOpts.
func NewGateway(ws *Websocket, opts *GatewayOpts) *Gateway {
	if opts == nil {
		opts = &DefaultGatewayOpts
	}

	return &Gateway{
		ws:   ws,
		opts: *opts,
	}
}

// Opts returns a copy of the gateway options.
func (g *Gateway) Opts() *GatewayOpts {
	cpy := g.opts
	return &cpy
}

// URL returns the address that the next (re)connect will dial.
func (g *Gateway) URL() string {
	return g.ws.Addr()
}

// SetURL points future (re)connects at a different address. The current
// connection is left alone.
func (g *Gateway) SetURL(url string) {
	g.ws.SetAddr(url)
}

// Send encodes data and sends it over the websocket.
func (g *Gateway) Send(ctx context.Context, data Event) error {
	op := Op{
		Code: data.Op(),
		Type: data.EventType(),
		Data: data,
	}

	b, err := json.Marshal(op)
	if err != nil {
		return fmt.Errorf("failed to encode payload: %w", err)
	}

	return g.ws.Send(ctx, b)
}

// HasStarted reports whether the event loop is running.
func (g *Gateway) HasStarted() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.running
}

// AssertIsNotRunning panics if the event loop is still running.
func (g *Gateway) AssertIsNotRunning() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.running {
		panic("ws: gateway is still running")
	}
}

// Connect starts the event loop if it isn't running and returns its event
// channel. The channel is closed when the loop stops; LastError tells why.
func (g *Gateway) Connect(ctx context.Context, h Handler) <-chan Op {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.running {
		g.running = true
		g.events = make(chan Op, 1)
		go g.run(ctx, h)
	}

	return g.events
}

// LastError returns the error that stopped the loop, if any. It must only be
// called after the event channel has closed.
func (g *Gateway) LastError() error {
	g.AssertIsNotRunning()
	return g.lastError
}

// QueueReconnect asks the loop to drop the connection and redial. Call it at
// most once per op; the queue has room for a single request.
func (g *Gateway) QueueReconnect() {
	select {
	case g.reconnect <- struct{}{}:
	default:
	}

	g.heartbeat.Stop()
}

// ResetHeartbeat rearms the heartbeat ticker with the given interval.
func (g *Gateway) ResetHeartbeat(d time.Duration) {
	g.heartbeat.Reset(d)
}

// SendError delivers err to the caller as a BackgroundErrorEvent. Loop
// goroutine only.
func (g *Gateway) SendError(err error) {
	ev := &BackgroundErrorEvent{err}

	g.events <- Op{
		Code: ev.Op(),
		Type: ev.EventType(),
		Data: ev,
	}
	g.lastError = err
}

// SendErrorWrap annotates err before delivering it.
func (g *Gateway) SendErrorWrap(err error, message string) {
	g.SendError(fmt.Errorf("%s: %w", message, err))
}

// run is the event loop body. It dials immediately, then keeps multiplexing
// incoming ops, heartbeat ticks and reconnect requests until ctx is done or
// something fatal happens.
func (g *Gateway) run(ctx context.Context, h Handler) {
	defer g.shutdown(h)

	var backoff lazytime.Timer
	defer backoff.Stop()

	g.reconnect = make(chan struct{}, 1)
	g.reconnect <- struct{}{}

	for {
		select {
		case <-ctx.Done():
			return

		case op, ok := <-g.incoming:
			if !ok {
				// Connection died; the handler will have queued a reconnect
				// from the CloseEvent that preceded this.
				continue
			}
			if !g.handleOp(ctx, h, op) {
				return
			}

		case <-g.heartbeat.C:
			h.SendHeartbeat(ctx)

		case <-g.reconnect:
			if !g.redial(ctx, &backoff) {
				return
			}
		}
	}
}

// handleOp runs one op through the handler and hands it to the caller. It
// reports whether the loop should keep going.
func (g *Gateway) handleOp(ctx context.Context, h Handler, op Op) bool {
	if closeEv, ok := op.Data.(*CloseEvent); ok && g.opts.ErrorIsFatalClose(closeEv) {
		// Fatal close codes are piped through untouched.
		g.events <- op
		g.lastError = closeEv
		return false
	}

	keepGoing := h.OnOp(ctx, op)
	g.events <- op
	if !keepGoing {
		return false
	}

	g.lastError = nil
	return true
}

// redial replaces the dead connection, backing off between attempts. It
// reports whether a connection was established.
func (g *Gateway) redial(ctx context.Context, backoff *lazytime.Timer) bool {
	if err := g.ws.Close(); err != nil && !errors.Is(err, ErrWebsocketClosed) {
		g.SendErrorWrap(err, "failed to close old connection")
	}
	g.incoming = nil

	var lastErr error

	for try := 0; g.opts.ReconnectAttempt == 0 || try < g.opts.ReconnectAttempt; try++ {
		ops, err := g.dial(ctx)
		if err == nil {
			g.incoming = ops
			return true
		}
		lastErr = err

		if ctx.Err() != nil {
			g.SendError(ConnectionError{ctx.Err()})
			return false
		}

		g.SendError(ConnectionError{err})

		backoff.Reset(g.opts.ReconnectDelay(try))
		if err := backoff.Wait(ctx); err != nil {
			g.SendError(ConnectionError{err})
			return false
		}
	}

	g.SendError(ConnectionError{
		fmt.Errorf("failed to reconnect after max attempts: %w", lastErr),
	})
	return false
}

func (g *Gateway) dial(ctx context.Context) (<-chan Op, error) {
	if g.opts.DialTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.opts.DialTimeout)
		defer cancel()
	}

	return g.ws.Dial(ctx)
}

// shutdown closes the websocket and the handler, then marks the loop stopped.
func (g *Gateway) shutdown(h Handler) {
	var err error
	if g.opts.AlwaysCloseGracefully {
		err = g.ws.CloseGracefully()
	} else {
		err = g.ws.Close()
	}
	if err != nil && !errors.Is(err, ErrWebsocketClosed) {
		g.SendErrorWrap(err, "failed to close websocket")
	}

	if err := h.Close(); err != nil {
		g.SendError(err)
	}

	g.mu.Lock()
	close(g.events)
	g.running = false
	g.mu.Unlock()
}

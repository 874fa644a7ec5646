// Package ws implements a rate-limited, auto-reconnecting websocket client
// with typed event decoding.
package ws

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/time/rate"
)

var (
	// WSError is called for background errors that have no caller to return
	// to.
	WSError = func(err error) { log.Println("websocket error:", err) }
	// WSDebug logs verbose connection traffic. No-op unless replaced.
	WSDebug = func(v ...interface{}) {}
)

// newSendLimiter allots 120 commands per minute, keeping a small headroom so
// heartbeats always get through.
func newSendLimiter() *rate.Limiter {
	const burst = 5
	return rate.NewLimiter(rate.Every(time.Minute/(120-burst)), burst)
}

// newDialLimiter spaces out connection attempts.
func newDialLimiter() *rate.Limiter {
	return rate.NewLimiter(rate.Every(5*time.Second), 1)
}

// Websocket wraps a Connection with thread safety, send throttling and dial
// throttling.
type Websocket struct {
	mutex sync.Mutex
	conn  Connection
	addr  string

	sendLimiter *rate.Limiter
	dialLimiter *rate.Limiter
}

// NewWebsocket creates an undialed Websocket using the default Conn.
func NewWebsocket(c Codec, addr string) *Websocket {
	return NewCustomWebsocket(NewConn(c), addr)
}

// NewCustomWebsocket creates an undialed Websocket over the given Connection.
func NewCustomWebsocket(conn Connection, addr string) *Websocket {
	return &Websocket{
		conn: conn,
		addr: addr,

		sendLimiter: newSendLimiter(),
		dialLimiter: newDialLimiter(),
	}
}

// Addr returns the address the next Dial will use.
func (ws *Websocket) Addr() string {
	ws.mutex.Lock()
	defer ws.mutex.Unlock()

	return ws.addr
}

// SetAddr changes the address used by future Dials. Live connections are
// unaffected.
func (ws *Websocket) SetAddr(addr string) {
	ws.mutex.Lock()
	defer ws.mutex.Unlock()

	ws.addr = addr
}

// Dial waits out the dial rate limit, then connects.
func (ws *Websocket) Dial(ctx context.Context) (<-chan Op, error) {
	if err := ws.dialLimiter.Wait(ctx); err != nil {
		return nil, errors.Wrap(err, "failed to wait for dial rate limiter")
	}

	ws.mutex.Lock()
	defer ws.mutex.Unlock()

	// A fresh connection starts with a fresh send budget.
	ws.sendLimiter = newSendLimiter()

	return ws.conn.Dial(ctx, ws.addr)
}

// Send throttles then sends b over the connection.
func (ws *Websocket) Send(ctx context.Context, b []byte) error {
	ws.mutex.Lock()
	sendLimiter := ws.sendLimiter
	conn := ws.conn
	ws.mutex.Unlock()

	if err := sendLimiter.Wait(ctx); err != nil {
		return errors.Wrap(err, "failed to wait for send rate limiter")
	}

	return conn.Send(ctx, b)
}

// Close closes the connection without a close frame, keeping the session
// resumable. ErrWebsocketClosed is returned if it was already closed.
func (ws *Websocket) Close() error {
	ws.mutex.Lock()
	defer ws.mutex.Unlock()

	return ws.conn.Close(false)
}

// CloseGracefully closes the connection with a close frame, which invalidates
// the session on the other end.
func (ws *Websocket) CloseGracefully() error {
	ws.mutex.Lock()
	defer ws.mutex.Unlock()

	return ws.conn.Close(true)
}

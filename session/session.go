// Package session abstracts around the REST API and the Gateway, managing
// both at once. It offers a typed handler interface for Gateway events.
package session

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"github.com/quaverlib/quaver/api"
	"github.com/quaverlib/quaver/gateway"
	"github.com/quaverlib/quaver/utils/handler"
	"github.com/quaverlib/quaver/utils/ws"
	"github.com/quaverlib/quaver/utils/ws/ophandler"
)

// Session manages both the API and Gateway. As such, Session inherits all of
// the API client's methods. Gateway events are dispatched into Handlers; use
// the package-level AddHandler to register typed callbacks.
type Session struct {
	*api.Client

	// Handlers is dispatched every event that the gateway receives, including
	// background errors. It is valid throughout the session's lifetime.
	Handlers *handler.Handlers[ws.Event]

	id *gateway.Identifier

	mutex   sync.Mutex
	gateway *gateway.Gateway
	cancel  context.CancelFunc
	done    <-chan struct{}
}

// New creates a new session from the given token.
func New(token string) *Session {
	return NewWithIdentifier(gateway.DefaultIdentifier(token))
}

// NewWithIntents creates a new session with the given gateway intents.
func NewWithIntents(token string, intents ...gateway.Intents) *Session {
	var allIntents gateway.Intents
	for _, intent := range intents {
		allIntents |= intent
	}

	id := gateway.DefaultIdentifier(token)
	id.Intents = allIntents

	return NewWithIdentifier(id)
}

// NewWithIdentifier creates a new session with the given identifier. The
// gateway itself is only created once the session connects.
func NewWithIdentifier(id *gateway.Identifier) *Session {
	return NewCustom(id, api.NewClient(id.Token))
}

// NewCustom creates a new session with the given identifier and API client.
func NewCustom(id *gateway.Identifier, cl *api.Client) *Session {
	return &Session{
		Client:   cl,
		Handlers: handler.New[ws.Event](),
		id:       id,
	}
}

// AddHandler registers fn to be called for every dispatched event assignable
// to EventT. It returns a callback that removes the handler. The callback is
// dispatched in its own goroutine; use AddSyncHandler for ordered handling.
func AddHandler[EventT ws.Event](s *Session, fn func(EventT)) (rm func()) {
	return handler.Add[ws.Event](s.Handlers, fn)
}

// AddSyncHandler is like AddHandler, except fn blocks the dispatch loop. The
// handler must not block for long, and it must absolutely not call any method
// that waits on a gateway event, or the session deadlocks.
func AddSyncHandler[EventT ws.Event](s *Session, fn func(EventT)) (rm func()) {
	return handler.AddSynchronous[ws.Event](s.Handlers, fn)
}

// Expect returns a function that blocks until fn returns true for a
// dispatched event. It is useful for waiting on a specific event.
func Expect[EventT ws.Event](s *Session, fn func(EventT) bool) func(context.Context) (EventT, error) {
	return handler.Expect[ws.Event](s.Handlers, fn)
}

// Gateway returns the session's gateway, or nil if the session has never been
// connected.
func (s *Session) Gateway() *gateway.Gateway {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return s.gateway
}

// GatewayIsAlive returns true if the gateway event loop is running.
func (s *Session) GatewayIsAlive() bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return s.gateway != nil && s.gateway.HasStarted()
}

// AddIntents adds the given intents. It panics if the gateway is currently
// running.
func (s *Session) AddIntents(i gateway.Intents) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.gateway != nil {
		s.gateway.AddIntents(i)
	} else {
		s.id.Intents |= i
	}
}

// HasIntents reports if the session was created with the given intents.
func (s *Session) HasIntents(i gateway.Intents) bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.gateway != nil {
		return s.gateway.HasIntents(i)
	}
	return s.id.Intents.Has(i)
}

// Send sends a command over the gateway. It errors if the session has never
// been connected.
func (s *Session) Send(ctx context.Context, cmd ws.Event) error {
	g := s.Gateway()
	if g == nil {
		return errors.New("session not connected")
	}
	return g.Send(ctx, cmd)
}

// Connect connects the gateway and blocks, dispatching every received event
// into Handlers, until the context expires or the gateway hits a fatal close
// code. The gateway reconnects on its own in between.
func (s *Session) Connect(ctx context.Context) error {
	g, err := s.connectGateway(ctx)
	if err != nil {
		return err
	}

	done := ophandler.Loop(g.Connect(ctx), s.Handlers)

	s.mutex.Lock()
	s.done = done
	s.mutex.Unlock()

	if err := ophandler.WaitForDone(ctx, done); err != nil {
		return errors.Wrap(err, "gateway interrupted")
	}

	return g.LastError()
}

// Open connects the gateway in the background and waits for the first Ready
// event. The session stays connected until Close is called. The context only
// bounds the opening handshake, not the session's lifetime.
func (s *Session) Open(ctx context.Context) error {
	evCh := make(chan ws.Event)
	rm := s.Handlers.HandleChannel(evCh)
	defer rm()

	bgCtx, cancel := context.WithCancel(context.Background())

	s.mutex.Lock()
	s.cancel = cancel
	s.mutex.Unlock()

	errCh := make(chan error, 1)
	go func() { errCh <- s.Connect(bgCtx) }()

	for {
		select {
		case <-ctx.Done():
			cancel()
			return ctx.Err()

		case err := <-errCh:
			cancel()
			if err == nil {
				err = errors.New("gateway closed before Ready")
			}
			return err

		case ev := <-evCh:
			if _, ok := ev.(*gateway.ReadyEvent); ok {
				return nil
			}
		}
	}
}

// Close stops a session opened with Open and waits for the event loop to
// drain.
func (s *Session) Close() error {
	s.mutex.Lock()
	cancel := s.cancel
	done := s.done
	g := s.gateway
	s.cancel = nil
	s.mutex.Unlock()

	if cancel == nil {
		return nil
	}
	cancel()

	if done != nil {
		<-done
	}

	if g != nil {
		if err := g.LastError(); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
	}
	return nil
}

func (s *Session) connectGateway(ctx context.Context) (*gateway.Gateway, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.gateway == nil {
		g, err := gateway.NewWithIdentifier(ctx, s.id)
		if err != nil {
			return nil, errors.Wrap(err, "failed to create gateway")
		}
		s.gateway = g
	}

	return s.gateway, nil
}

// Package gateway handles the Discord gateway (or websocket) connection, its
// events, and everything related to it.
package gateway

import (
	"context"
	"math/rand"
	"net/url"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/quaverlib/quaver/api"
	"github.com/quaverlib/quaver/utils/ws"
)

// CodeInvalidSequence is the code returned by Discord to signal that the
// sequence sent when resuming was invalid.
const CodeInvalidSequence = 4007

// CodeShardingRequired is the code returned by Discord when the bot has too
// many guilds for a single gateway connection.
const CodeShardingRequired = 4011

// DefaultGatewayOpts contains the default event loop options for the Discord
// gateway. The fatal close codes are the ones that a reconnect cannot fix:
// authentication and configuration errors.
var DefaultGatewayOpts = ws.GatewayOpts{
	ReconnectDelay: func(try int) time.Duration {
		// minimum 4 seconds
		return time.Duration(4+(2*try)) * time.Second
	},
	FatalCloseCodes: []int{
		4004, // authentication failed
		4010, // invalid shard
		4011, // sharding required
		4012, // invalid API version
		4013, // invalid intents
		4014, // disallowed intents
	},
	DialTimeout:           0,
	ReconnectAttempt:      0,
	AlwaysCloseGracefully: true,
}

// URL asks Discord for a websocket URL to the gateway.
func URL(ctx context.Context) (string, error) {
	return api.GatewayURL(ctx)
}

// AddGatewayParams appends into the given URL string the gateway URL
// parameters.
func AddGatewayParams(baseURL string) string {
	param := url.Values{
		"v":        {api.APIVersion},
		"encoding": {"json"},
	}

	return baseURL + "?" + param.Encode()
}

// State contains the gateway state. It is a piece of the gateway that's should
// be stored across sessions for resuming.
type State struct {
	Identifier
	SessionID        string
	ResumeGatewayURL string
	Sequence         int64
}

// Gateway describes the Discord gateway, including its reconnection loop,
// heartbeating and identify/resume handling. Its Connect method is the entry
// point; events are delivered over the returned channel.
type Gateway struct {
	gateway *ws.Gateway
	state   State

	// mutex guards state and beat info against concurrent access from the
	// event loop and the caller.
	mutex    sync.Mutex
	beatInfo heartbeatInfo
}

type heartbeatInfo struct {
	interval  time.Duration
	sentBeat  time.Time
	echoBeat  time.Time
	requested bool
}

// New creates a new Gateway with a default identifier. The token must have
// the "Bot " prefix if the account is a bot account.
func New(ctx context.Context, token string) (*Gateway, error) {
	return NewWithIdentifier(ctx, DefaultIdentifier(token))
}

// NewWithIntents creates a new Gateway with the given intents and a default
// identifier.
func NewWithIntents(ctx context.Context, token string, intents ...Intents) (*Gateway, error) {
	var allIntents Intents
	for _, intent := range intents {
		allIntents |= intent
	}

	id := DefaultIdentifier(token)
	id.Intents = allIntents

	return NewWithIdentifier(ctx, id)
}

// NewWithIdentifier creates a new Gateway with the given identifier. It
// queries Discord for the right gateway URL.
func NewWithIdentifier(ctx context.Context, id *Identifier) (*Gateway, error) {
	gatewayURL, err := URL(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get gateway URL")
	}

	return NewFromURL(AddGatewayParams(gatewayURL), id), nil
}

// NewFromURL creates a new Gateway that connects to the given URL. The URL
// should already have the gateway parameters appended.
func NewFromURL(url string, id *Identifier) *Gateway {
	return NewCustom(ws.NewWebsocket(ws.NewCodec(OpUnmarshalers), url), id)
}

// NewCustom creates a new Gateway from a custom websocket.
func NewCustom(websocket *ws.Websocket, id *Identifier) *Gateway {
	return &Gateway{
		gateway: ws.NewGateway(websocket, &DefaultGatewayOpts),
		state:   State{Identifier: *id},
	}
}

// State returns a copy of the gateway's internal state. It panics if the
// gateway is currently running.
func (g *Gateway) State() State {
	g.gateway.AssertIsNotRunning()

	g.mutex.Lock()
	defer g.mutex.Unlock()

	return g.state
}

// SetState sets the gateway's state, overriding the identifier given during
// construction. A previously saved state can be restored this way to resume
// instead of identify. It panics if the gateway is currently running.
func (g *Gateway) SetState(state State) {
	g.gateway.AssertIsNotRunning()

	g.mutex.Lock()
	g.state = state
	g.mutex.Unlock()

	if state.ResumeGatewayURL != "" {
		g.gateway.SetURL(AddGatewayParams(state.ResumeGatewayURL))
	}
}

// AddIntents adds the given intents into the identify data. It panics if the
// gateway is currently running.
func (g *Gateway) AddIntents(i Intents) {
	g.gateway.AssertIsNotRunning()

	g.mutex.Lock()
	defer g.mutex.Unlock()

	g.state.Intents |= i
}

// HasIntents reports if the gateway has the given intents.
func (g *Gateway) HasIntents(i Intents) bool {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	return g.state.Intents.Has(i)
}

// Latency returns the duration between the last heartbeat sent and the last
// heartbeat acknowledgement received. A zero duration is returned before the
// first echo.
func (g *Gateway) Latency() time.Duration {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	if g.beatInfo.echoBeat.IsZero() {
		return 0
	}

	return g.beatInfo.echoBeat.Sub(g.beatInfo.sentBeat)
}

// Send sends a command to the gateway. The command is marshaled into an Op
// before sending.
func (g *Gateway) Send(ctx context.Context, cmd ws.Event) error {
	return g.gateway.Send(ctx, cmd)
}

// RequestGuildMembers is a convenient method over Send for a
// RequestGuildMembersCommand.
func (g *Gateway) RequestGuildMembers(ctx context.Context, cmd RequestGuildMembersCommand) error {
	return g.Send(ctx, &cmd)
}

// HasStarted returns true if the gateway event loop is currently running.
func (g *Gateway) HasStarted() bool {
	return g.gateway.HasStarted()
}

// LastError returns the last error that the gateway received. It must only be
// called after the event channel returned by Connect is closed.
func (g *Gateway) LastError() error {
	return g.gateway.LastError()
}

// Connect starts the background event loop and returns the channel that all
// events (and background errors) are delivered over. The channel is closed
// once the context expires or the gateway hits a fatal close code.
//
// The gateway identifies on the first Hello and resumes on subsequent ones if
// it has a session to resume.
func (g *Gateway) Connect(ctx context.Context) <-chan ws.Op {
	return g.gateway.Connect(ctx, (*gatewayImpl)(g))
}

// gatewayImpl implements ws.Handler over the Gateway.
type gatewayImpl Gateway

func (g *gatewayImpl) OnOp(ctx context.Context, op ws.Op) bool {
	if op.Code == DispatchOp {
		g.mutex.Lock()
		g.state.Sequence = op.Sequence
		g.mutex.Unlock()
	}

	switch data := op.Data.(type) {
	case *HelloEvent:
		interval := data.HeartbeatInterval.Duration()

		g.mutex.Lock()
		g.beatInfo.interval = interval
		g.beatInfo.echoBeat = time.Time{}
		g.beatInfo.sentBeat = time.Time{}
		canResume := g.state.SessionID != "" && g.state.Sequence > 0
		g.mutex.Unlock()

		g.gateway.ResetHeartbeat(interval)

		if canResume {
			g.sendResume(ctx)
		} else {
			g.sendIdentify(ctx)
		}

	case *ReadyEvent:
		g.mutex.Lock()
		g.state.SessionID = data.SessionID
		g.state.ResumeGatewayURL = data.ResumeGatewayURL
		g.mutex.Unlock()

		// Future reconnects must go to the resume endpoint, not the URL that
		// the session was first opened on.
		if data.ResumeGatewayURL != "" {
			g.gateway.SetURL(AddGatewayParams(data.ResumeGatewayURL))
		}

	case *InvalidSessionEvent:
		if !bool(*data) {
			// The session is unrecoverable; wipe it so the next Hello
			// identifies from scratch.
			g.mutex.Lock()
			g.state.SessionID = ""
			g.state.Sequence = 0
			g.mutex.Unlock()
		}

		// Discord wants a random 1-5s wait before the new Identify.
		g.wait(ctx, time.Duration(rand.Intn(4)+1)*time.Second)
		g.sendIdentify(ctx)

	case *ReconnectEvent:
		g.gateway.QueueReconnect()

	case *HeartbeatCommand:
		// Discord asked for an immediate heartbeat.
		g.SendHeartbeat(ctx)

	case *HeartbeatAckEvent:
		g.mutex.Lock()
		g.beatInfo.echoBeat = time.Now()
		g.beatInfo.requested = false
		g.mutex.Unlock()
	}

	return true
}

// SendHeartbeat sends a heartbeat with the gateway's current sequence. If the
// previous heartbeat was never acknowledged, the zombied connection is
// reconnected instead.
func (g *gatewayImpl) SendHeartbeat(ctx context.Context) {
	g.mutex.Lock()
	dead := g.beatInfo.requested && g.beatInfo.echoBeat.Before(g.beatInfo.sentBeat)
	heartbeat := HeartbeatCommand(g.state.Sequence)
	g.mutex.Unlock()

	if dead {
		g.gateway.SendErrorWrap(errHeartbeatTimeout, "heartbeat timed out")
		g.gateway.QueueReconnect()
		return
	}

	if err := g.gateway.Send(ctx, &heartbeat); err != nil {
		g.gateway.SendErrorWrap(err, "heartbeat failed, reconnecting")
		g.gateway.QueueReconnect()
		return
	}

	g.mutex.Lock()
	g.beatInfo.sentBeat = time.Now()
	g.beatInfo.requested = true
	g.mutex.Unlock()
}

var errHeartbeatTimeout = errors.New("no heartbeat ack received")

func (g *gatewayImpl) Close() error {
	return nil
}

func (g *gatewayImpl) sendIdentify(ctx context.Context) {
	g.mutex.Lock()
	id := g.state.Identifier
	g.mutex.Unlock()

	if err := id.Wait(ctx); err != nil {
		g.gateway.SendErrorWrap(err, "can't wait for identify rate limiters")
		return
	}

	if err := g.gateway.Send(ctx, &id.IdentifyCommand); err != nil {
		g.gateway.SendErrorWrap(err, "failed to identify")
	}
}

func (g *gatewayImpl) sendResume(ctx context.Context) {
	g.mutex.Lock()
	resume := ResumeCommand{
		Token:     g.state.Token,
		SessionID: g.state.SessionID,
		Sequence:  g.state.Sequence,
	}
	g.mutex.Unlock()

	if err := g.gateway.Send(ctx, &resume); err != nil {
		g.gateway.SendErrorWrap(err, "failed to resume")
	}
}

func (g *gatewayImpl) wait(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}

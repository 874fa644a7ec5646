package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/quaverlib/quaver/discord"
	"github.com/quaverlib/quaver/utils/ws"
)

func TestAddGatewayParams(t *testing.T) {
	const baseURL = "wss://gateway.discord.gg"

	expect := baseURL + "?encoding=json&v=10"
	if got := AddGatewayParams(baseURL); got != expect {
		t.Fatalf("unexpected URL %q, expected %q", got, expect)
	}
}

func TestOpUnmarshalers(t *testing.T) {
	assert := func(op ws.OpCode, typ ws.EventType, expect ws.Event) {
		t.Helper()

		fn := OpUnmarshalers.Lookup(op, typ)
		if fn == nil {
			t.Fatalf("no unmarshaler for op %d type %q", op, typ)
		}

		got := fn()
		if got.Op() != expect.Op() || got.EventType() != expect.EventType() {
			t.Fatalf("unmarshaler for op %d type %q returned %T", op, typ, got)
		}
	}

	assert(HelloOp, "", &HelloEvent{})
	assert(HeartbeatAckOp, "", &HeartbeatAckEvent{})
	assert(InvalidSessionOp, "", new(InvalidSessionEvent))
	assert(DispatchOp, "READY", &ReadyEvent{})
	assert(DispatchOp, "MESSAGE_CREATE", &MessageCreateEvent{})
	assert(DispatchOp, "INTERACTION_CREATE", &InteractionCreateEvent{})

	if fn := OpUnmarshalers.Lookup(DispatchOp, "NOT_AN_EVENT"); fn != nil {
		t.Fatal("unexpected unmarshaler for an unknown dispatch event")
	}
}

func TestHelloEventDecode(t *testing.T) {
	var hello HelloEvent
	if err := json.Unmarshal([]byte(`{"heartbeat_interval":41250}`), &hello); err != nil {
		t.Fatal("failed to decode hello:", err)
	}

	if dura := hello.HeartbeatInterval.Duration(); dura != 41250*time.Millisecond {
		t.Fatal("unexpected heartbeat interval:", dura)
	}
}

func TestIntents(t *testing.T) {
	i := IntentGuilds | IntentGuildMessages | IntentMessageContent

	if !i.Has(IntentGuilds) {
		t.Error("expected IntentGuilds")
	}
	if i.Has(IntentGuildMembers) {
		t.Error("unexpected IntentGuildMembers")
	}

	presences, member, content := i.IsPrivileged()
	if presences || member {
		t.Error("unexpected privileged presences/members intents")
	}
	if !content {
		t.Error("expected privileged message content intent")
	}

	if EventIntents["MESSAGE_CREATE"]&IntentGuildMessages == 0 {
		t.Error("MESSAGE_CREATE should require IntentGuildMessages")
	}
}

func TestIdentifier(t *testing.T) {
	id := DefaultIdentifier("Bot abc")

	if id.Token != "Bot abc" {
		t.Error("unexpected token:", id.Token)
	}
	if id.Properties != Identity {
		t.Error("unexpected identify properties")
	}
	if !id.Compress || id.LargeThreshold != 50 {
		t.Error("unexpected identify defaults")
	}
	if id.IdentifyShortLimit == nil || id.IdentifyGlobalLimit == nil {
		t.Fatal("missing identify rate limiters")
	}
}

// fakeSession is one dialed connection of a fakeConn. Tests inject server
// payloads into ops.
type fakeSession struct {
	addr string
	ops  chan ws.Op
}

// fakeConn implements ws.Connection in-memory, so tests can play the server
// side of the gateway handshake.
type fakeConn struct {
	mu    sync.Mutex
	live  chan ws.Op
	dials chan fakeSession
	sent  chan []byte
}

var _ ws.Connection = (*fakeConn)(nil)

func newFakeConn() *fakeConn {
	return &fakeConn{
		dials: make(chan fakeSession, 4),
		sent:  make(chan []byte, 16),
	}
}

func (c *fakeConn) Dial(ctx context.Context, addr string) (<-chan ws.Op, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.live != nil {
		close(c.live)
	}
	c.live = make(chan ws.Op, 16)

	c.dials <- fakeSession{addr: addr, ops: c.live}
	return c.live, nil
}

func (c *fakeConn) Send(ctx context.Context, b []byte) error {
	cpy := append([]byte(nil), b...)
	select {
	case c.sent <- cpy:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *fakeConn) Close(gracefully bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.live == nil {
		return ws.ErrWebsocketClosed
	}
	close(c.live)
	c.live = nil
	return nil
}

func (c *fakeConn) waitDial(t *testing.T) fakeSession {
	t.Helper()

	select {
	case session := <-c.dials:
		return session
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for a dial")
		return fakeSession{}
	}
}

// waitSent decodes the next client payload.
func (c *fakeConn) waitSent(t *testing.T) (op int, data json.RawMessage) {
	t.Helper()

	select {
	case b := <-c.sent:
		var payload struct {
			Op int             `json:"op"`
			D  json.RawMessage `json:"d"`
		}
		if err := json.Unmarshal(b, &payload); err != nil {
			t.Fatal("failed to decode sent payload:", err)
		}
		return payload.Op, payload.D
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for a sent payload")
		return 0, nil
	}
}

func helloOp(interval time.Duration) ws.Op {
	ev := &HelloEvent{HeartbeatInterval: discord.DurationToMilliseconds(interval)}
	return ws.Op{Code: ev.Op(), Type: ev.EventType(), Data: ev}
}

func testGateway(t *testing.T) (*fakeConn, *Gateway) {
	t.Helper()

	conn := newFakeConn()
	wsock := ws.NewCustomWebsocket(conn, AddGatewayParams("wss://gateway.discord.gg"))
	return conn, NewCustom(wsock, DefaultIdentifier("Bot abc"))
}

func TestGatewayIdentify(t *testing.T) {
	conn, g := testGateway(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := g.Connect(ctx)

	session := conn.waitDial(t)
	session.ops <- helloOp(time.Minute)

	op, data := conn.waitSent(t)
	if op != int(IdentifyOp) {
		t.Fatalf("expected Identify op %d after Hello, got op %d", IdentifyOp, op)
	}

	var identify IdentifyCommand
	if err := json.Unmarshal(data, &identify); err != nil {
		t.Fatal("failed to decode identify:", err)
	}
	if identify.Token != "Bot abc" {
		t.Error("unexpected token in identify:", identify.Token)
	}

	cancel()
	for range events {
	}
}

func TestGatewayResume(t *testing.T) {
	conn, g := testGateway(t)

	state := g.State()
	state.SessionID = "deadbeef"
	state.Sequence = 42
	g.SetState(state)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := g.Connect(ctx)

	session := conn.waitDial(t)
	session.ops <- helloOp(time.Minute)

	op, data := conn.waitSent(t)
	if op != int(ResumeOp) {
		t.Fatalf("expected Resume op %d after Hello with a session, got op %d", ResumeOp, op)
	}

	var resume ResumeCommand
	if err := json.Unmarshal(data, &resume); err != nil {
		t.Fatal("failed to decode resume:", err)
	}
	if resume.SessionID != "deadbeef" || resume.Sequence != 42 {
		t.Errorf("unexpected resume payload %#v", resume)
	}

	cancel()
	for range events {
	}
}

func TestGatewayResumeURL(t *testing.T) {
	conn, g := testGateway(t)

	originalURL := g.gateway.URL()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := g.Connect(ctx)

	session := conn.waitDial(t)
	if session.addr != originalURL {
		t.Errorf("first dial went to %q, expected %q", session.addr, originalURL)
	}

	session.ops <- helloOp(time.Minute)
	conn.waitSent(t) // identify

	ready := &ReadyEvent{SessionID: "deadbeef", ResumeGatewayURL: "wss://resume.discord.gg"}
	session.ops <- ws.Op{Code: ready.Op(), Type: ready.EventType(), Data: ready}

	// Wait for READY to clear the event loop; once it's delivered here, the
	// dial address has been updated.
	for op := range events {
		if _, ok := op.Data.(*ReadyEvent); ok {
			break
		}
	}

	expect := AddGatewayParams("wss://resume.discord.gg")
	if got := g.gateway.URL(); got != expect {
		t.Errorf("reconnects would dial %q, expected the resume URL %q", got, expect)
	}

	cancel()
	for range events {
	}
}

func TestGatewayHeartbeatTimeout(t *testing.T) {
	conn, g := testGateway(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := g.Connect(ctx)

	session := conn.waitDial(t)

	// A tight interval with no acks coming back; the second tick should
	// declare the connection dead.
	session.ops <- helloOp(20 * time.Millisecond)

	timeout := time.After(5 * time.Second)
	for {
		select {
		case op, ok := <-events:
			if !ok {
				t.Fatal("event channel closed before the heartbeat timeout")
			}

			bg, ok := op.Data.(*ws.BackgroundErrorEvent)
			if ok && errors.Is(bg.Err, errHeartbeatTimeout) {
				cancel()
				for range events {
				}
				return
			}

		case <-timeout:
			t.Fatal("timed out waiting for the heartbeat timeout error")
		}
	}
}

func TestGatewayState(t *testing.T) {
	g := NewFromURL("wss://gateway.discord.gg?v=10&encoding=json", DefaultIdentifier("Bot abc"))

	g.AddIntents(IntentGuilds)
	g.AddIntents(IntentGuildMessages)

	if !g.HasIntents(IntentGuilds | IntentGuildMessages) {
		t.Error("missing added intents")
	}
	if g.HasIntents(IntentGuildMembers) {
		t.Error("unexpected intent")
	}

	state := g.State()
	state.SessionID = "deadbeef"
	state.Sequence = 42
	g.SetState(state)

	if state := g.State(); state.SessionID != "deadbeef" || state.Sequence != 42 {
		t.Errorf("unexpected state %#v", state)
	}
}

package handler_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quaverlib/quaver/discord"
	"github.com/quaverlib/quaver/gateway"
	"github.com/quaverlib/quaver/utils/handler"
	"github.com/quaverlib/quaver/utils/ws"
)

func newMessage(content string) *gateway.MessageCreateEvent {
	return &gateway.MessageCreateEvent{
		Message: discord.Message{Content: content},
	}
}

func TestHandlers(t *testing.T) {
	h := handler.New[ws.Event]()

	t.Run("HandleSynchronousCallback", func(t *testing.T) {
		var got ws.Event
		rm := h.HandleSynchronousCallback(func(ev ws.Event) { got = ev })

		ev := newMessage("quaver")
		h.Dispatch(ev)
		assert.Equal(t, ws.Event(ev), got)

		rm()
		got = nil
		h.Dispatch(ev)
		assert.Nil(t, got, "callback dispatched after removal")
	})

	t.Run("HandleCallback", func(t *testing.T) {
		ch := make(chan ws.Event, 1)
		rm := h.HandleCallback(func(ev ws.Event) { ch <- ev })

		ev := newMessage("quaver")
		h.Dispatch(ev)
		assert.Equal(t, ws.Event(ev), chOnce(t, ch))

		rm()
		h.Dispatch(ev)
		chNone(t, ch)
	})

	addChannelFuncs := []struct {
		name string
		add  func(chan<- ws.Event) func()
	}{
		{"HandleChannel", h.HandleChannel},
		{"HandleBlockingChannel", h.HandleBlockingChannel},
	}

	for _, test := range addChannelFuncs {
		t.Run(test.name, func(t *testing.T) {
			ch := make(chan ws.Event, 1)
			rm := test.add(ch)

			ev := newMessage("quaver")
			h.Dispatch(ev)
			assert.Equal(t, ws.Event(ev), chOnce(t, ch))

			rm()
			h.Dispatch(ev)
			chNone(t, ch)
		})
	}
}

func TestAdd(t *testing.T) {
	h := handler.New[ws.Event]()

	ch := make(chan *gateway.MessageCreateEvent, 1)
	handler.Add[ws.Event](h, func(ev *gateway.MessageCreateEvent) { ch <- ev })

	ev := newMessage("quaver")
	h.Dispatch(ev)
	assert.Equal(t, ev, chOnce(t, ch))

	// Events of other types are skipped, not delivered.
	h.Dispatch(&gateway.ReadyEvent{})
	chNone(t, ch)
}

func TestAddSynchronous(t *testing.T) {
	h := handler.New[ws.Event]()

	var got *gateway.MessageCreateEvent
	handler.AddSynchronous[ws.Event](h, func(ev *gateway.MessageCreateEvent) { got = ev })

	ev := newMessage("quaver")
	h.Dispatch(ev)
	assert.Equal(t, ev, got)

	got = nil
	h.Dispatch(&gateway.ReadyEvent{})
	assert.Nil(t, got)
}

func TestExpect(t *testing.T) {
	events := []ws.Event{
		newMessage("hello world"),
		newMessage("quaver"),
		&gateway.ReadyEvent{},
	}

	h := handler.New[ws.Event]()
	recv := handler.Expect(h, func(ev *gateway.MessageCreateEvent) bool {
		return ev.Content == "quaver"
	})

	go func() {
		for _, ev := range events {
			h.Dispatch(ev)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	v, err := recv(ctx)
	require.NoError(t, err)
	assert.Equal(t, events[1], ws.Event(v))
}

func TestExpectCanceled(t *testing.T) {
	h := handler.New[ws.Event]()
	recv := handler.Expect(h, func(ev *gateway.ReadyEvent) bool { return true })

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := recv(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func BenchmarkHandlerAddRemove(b *testing.B) {
	h := handler.New[ws.Event]()
	for i := 0; i < b.N; i++ {
		rm := h.HandleCallback(func(ev ws.Event) {})
		rm()
	}
}

func chOnce[T any](t *testing.T, ch <-chan T) T {
	timer := time.NewTimer(time.Second)
	defer timer.Stop()

	select {
	case v := <-ch:
		return v
	case <-timer.C:
		t.Fatal("channel timed out")
		panic("unreachable")
	}
}

func chNone[T any](t *testing.T, ch <-chan T) {
	timer := time.NewTimer(10 * time.Millisecond)
	defer timer.Stop()

	select {
	case v := <-ch:
		t.Fatal("unexpected value:", v)
	case <-timer.C:
	}
}

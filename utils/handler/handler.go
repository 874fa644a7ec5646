// Package handler fans typed events out to registered callbacks and channels.
package handler

import (
	"context"
	"sync"
)

// Dispatcher delivers events.
type Dispatcher[T any] interface {
	// Dispatch delivers ev to every registered handler, blocking until all
	// synchronous ones have run.
	Dispatch(ev T)
}

// Handler registers event sinks. Every registration returns a removal
// function; calling it more than once is harmless.
type Handler[T any] interface {
	// HandleCallback calls fn in a new goroutine for each event.
	HandleCallback(fn func(T)) (rm func())
	// HandleSynchronousCallback calls fn inline from Dispatch. fn must not
	// block; it is meant for cheap work like forwarding to other handlers.
	HandleSynchronousCallback(fn func(T)) (rm func())
	// HandleChannel sends each event into ch from a new goroutine. The
	// channel must never be closed by the caller; removal cancels any sends
	// still blocked on it.
	HandleChannel(ch chan<- T) (rm func())
	// HandleBlockingChannel is HandleChannel with the send done inline, so
	// Dispatch blocks until ch accepts the event.
	HandleBlockingChannel(ch chan<- T) (rm func())
}

// Add registers fn for the subset of events that are assertable to EventT.
// Matching events are handed to fn in a new goroutine.
func Add[HandlerT any, EventT any](h Handler[HandlerT], fn func(EventT)) (rm func()) {
	return h.HandleSynchronousCallback(func(ev HandlerT) {
		if e, ok := any(ev).(EventT); ok {
			go fn(e)
		}
	})
}

// AddSynchronous is Add with fn called inline.
func AddSynchronous[HandlerT any, EventT any](h Handler[HandlerT], fn func(EventT)) (rm func()) {
	return h.HandleSynchronousCallback(func(ev HandlerT) {
		if e, ok := any(ev).(EventT); ok {
			fn(e)
		}
	})
}

// Expect registers for events and returns a wait function. The wait blocks
// until an event satisfies fn, returning it, or until ctx expires. The
// registration is removed once the wait returns.
func Expect[HandlerT, EventT any](h Handler[HandlerT], fn func(EventT) bool) func(context.Context) (EventT, error) {
	out := make(chan HandlerT)
	rm := h.HandleChannel(out)

	return func(ctx context.Context) (EventT, error) {
		defer rm()

		for {
			select {
			case <-ctx.Done():
				var zero EventT
				return zero, ctx.Err()
			case ev := <-out:
				if v, ok := any(ev).(EventT); ok && fn(v) {
					return v, nil
				}
			}
		}
	}
}

// sink is one registered destination for events.
type sink[T any] interface {
	deliver(T)
	stop()
}

// registration pairs a sink with a stable id so removal survives the slice
// shifting underneath it.
type registration[T any] struct {
	id uint64
	sink[T]
}

// Handlers is the default Dispatcher and Handler. The zero value is ready to
// use.
type Handlers[T any] struct {
	mu      sync.RWMutex
	entries []registration[T]
	nextID  uint64
}

var (
	_ Dispatcher[struct{}] = (*Handlers[struct{}])(nil)
	_ Handler[struct{}]    = (*Handlers[struct{}])(nil)
)

// New constructs an empty Handlers.
func New[T any]() *Handlers[T] {
	return &Handlers[T]{}
}

// Dispatch implements Dispatcher. Sinks run in registration order.
func (h *Handlers[T]) Dispatch(ev T) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, entry := range h.entries {
		entry.deliver(ev)
	}
}

// HandleCallback implements Handler.
func (h *Handlers[T]) HandleCallback(fn func(T)) (rm func()) {
	return h.register(callbackSink[T]{fn: fn, async: true})
}

// HandleSynchronousCallback implements Handler.
func (h *Handlers[T]) HandleSynchronousCallback(fn func(T)) (rm func()) {
	return h.register(callbackSink[T]{fn: fn})
}

// HandleChannel implements Handler.
func (h *Handlers[T]) HandleChannel(ch chan<- T) (rm func()) {
	return h.register(channelSink[T]{ch: ch, done: make(chan struct{}), async: true})
}

// HandleBlockingChannel implements Handler.
func (h *Handlers[T]) HandleBlockingChannel(ch chan<- T) (rm func()) {
	return h.register(channelSink[T]{ch: ch, done: make(chan struct{})})
}

func (h *Handlers[T]) register(s sink[T]) (rm func()) {
	h.mu.Lock()
	id := h.nextID
	h.nextID++
	h.entries = append(h.entries, registration[T]{id: id, sink: s})
	h.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { h.remove(id) })
	}
}

func (h *Handlers[T]) remove(id uint64) {
	h.mu.Lock()
	for i, entry := range h.entries {
		if entry.id == id {
			h.entries = append(h.entries[:i], h.entries[i+1:]...)
			h.mu.Unlock()
			entry.stop()
			return
		}
	}
	h.mu.Unlock()
}

type callbackSink[T any] struct {
	fn    func(T)
	async bool
}

func (s callbackSink[T]) deliver(v T) {
	if s.async {
		go s.fn(v)
	} else {
		s.fn(v)
	}
}

func (s callbackSink[T]) stop() {}

// channelSink sends into ch until done closes. done is what lets removal
// unblock a send stuck on a full channel.
type channelSink[T any] struct {
	ch    chan<- T
	done  chan struct{}
	async bool
}

func (s channelSink[T]) deliver(v T) {
	select {
	case <-s.done:
		return
	default:
	}

	if s.async {
		go s.send(v)
	} else {
		s.send(v)
	}
}

func (s channelSink[T]) send(v T) {
	select {
	case s.ch <- v:
	case <-s.done:
	}
}

func (s channelSink[T]) stop() {
	close(s.done)
}

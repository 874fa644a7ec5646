// Package ophandler bridges a gateway Op channel into an event dispatcher.
package ophandler

import (
	"context"

	"github.com/quaverlib/quaver/utils/handler"
	"github.com/quaverlib/quaver/utils/ws"
)

// Loop pumps ops from src into dst in a background goroutine until src
// closes, which also closes the returned channel.
func Loop[EventT ws.Event](src <-chan ws.Op, dst handler.Dispatcher[EventT]) <-chan struct{} {
	done := make(chan struct{})

	go func() {
		defer close(done)

		for op := range src {
			dst.Dispatch(op.Data.(EventT))
		}
	}()

	return done
}

// WaitForDone blocks until the channel returned by Loop closes or ctx
// expires.
func WaitForDone(ctx context.Context, done <-chan struct{}) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-done:
		return nil
	}
}

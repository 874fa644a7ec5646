// Package lazytime wraps time.Timer and time.Ticker so they can be declared
// as zero values and armed on first use. Selecting on an unarmed C simply
// never fires, which keeps event loops free of nil-channel bookkeeping.
package lazytime

import (
	"context"
	"time"
)

// Timer is a timer that allocates on the first Reset.
type Timer struct {
	C <-chan time.Time

	t *time.Timer
}

// Reset arms the timer to fire after d. Any stale tick from an earlier run is
// drained first so a Wait can't return early.
func (t *Timer) Reset(d time.Duration) {
	if t.t == nil {
		t.t = time.NewTimer(d)
		t.C = t.t.C
		return
	}

	t.Stop()
	t.t.Reset(d)
}

// Stop disarms the timer and drains a pending tick. Stopping an unarmed timer
// does nothing.
func (t *Timer) Stop() {
	if t.t == nil {
		return
	}

	if !t.t.Stop() {
		select {
		case <-t.t.C:
		default:
		}
	}
}

// Wait blocks until the timer fires or ctx expires.
func (t *Timer) Wait(ctx context.Context) error {
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Ticker is a ticker that allocates on the first Reset.
type Ticker struct {
	C <-chan time.Time

	t *time.Ticker
}

// Reset arms the ticker with the given period.
func (t *Ticker) Reset(d time.Duration) {
	if t.t == nil {
		t.t = time.NewTicker(d)
		t.C = t.t.C
		return
	}

	t.t.Reset(d)
}

// Stop pauses the ticker until the next Reset. Stopping an unarmed ticker
// does nothing.
func (t *Ticker) Stop() {
	if t.t != nil {
		t.t.Stop()
	}
}

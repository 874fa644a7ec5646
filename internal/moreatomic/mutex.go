// Package moreatomic provides synchronization primitives missing from the
// standard sync package.
package moreatomic

import "context"

// CtxMutex is a mutex whose Lock can be abandoned through a context. An
// abandoned Lock leaves the mutex untouched.
type CtxMutex chan struct{}

// NewCtxMutex creates an unlocked CtxMutex.
func NewCtxMutex() CtxMutex {
	return make(CtxMutex, 1)
}

// Lock acquires the mutex, or returns the context's error if it expires
// first.
func (m CtxMutex) Lock(ctx context.Context) error {
	select {
	case m <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Unlock releases the mutex. It panics if the mutex is not held.
func (m CtxMutex) Unlock() {
	select {
	case <-m:
	default:
		panic("moreatomic: Unlock of an unlocked CtxMutex")
	}
}

// TryUnlock releases the mutex if it is held and reports whether it was.
func (m CtxMutex) TryUnlock() bool {
	select {
	case <-m:
		return true
	default:
		return false
	}
}

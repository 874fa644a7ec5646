// Package rate implements Discord's per-route rate limit contract on top of
// the X-RateLimit-* response headers.
package rate

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"

	"github.com/quaverlib/quaver/internal/moreatomic"
)

// ExtraDelay is padded onto every header-derived reset time, since Discord's
// reset timestamps run slightly ahead of when requests actually succeed
// again.
const ExtraDelay = 250 * time.Millisecond

// ErrTimedOutEarly is returned by Limiter.Acquire if a rate limit exceeds the
// deadline of the context.Context, or if AcquireOptions.DontWait is set.
var ErrTimedOutEarly = errors.New(
	"rate: rate limit exceeds context deadline or is blocked by acquire options")

// Limiter tracks one bucket per route. Requests Acquire before being sent and
// Release with the response headers afterwards; the bucket stays locked in
// between, so requests on the same route are serialized.
type Limiter struct {
	// CustomLimits are client-side limits for routes that Discord doesn't
	// return headers for. Only one applies per bucket.
	CustomLimits []*CustomRateLimit

	// Prefix is stripped from paths before bucket keys are derived.
	Prefix string

	// global is a pointer to prevent ARM-compatibility alignment.
	global *int64 // atomic guarded, unixnano

	bucketMu sync.Mutex
	buckets  map[string]*bucket
}

// CustomRateLimit describes a client-side rate limit applied to every route
// whose bucket key contains the given substring.
type CustomRateLimit struct {
	Contains string
	Reset    time.Duration
}

type contextKey uint8

const (
	acquireOptionsKey contextKey = iota
)

// AcquireOptions change how Acquire behaves. Wrap them into the request
// context with Context.
type AcquireOptions struct {
	// DontWait makes Acquire return ErrTimedOutEarly instead of sleeping
	// until the rate limit expires.
	DontWait bool
}

// Context wraps the given ctx to carry the AcquireOptions.
func (opts AcquireOptions) Context(ctx context.Context) context.Context {
	return context.WithValue(ctx, acquireOptionsKey, opts)
}

type bucket struct {
	lock   moreatomic.CtxMutex
	custom *CustomRateLimit

	remaining uint64

	reset     time.Time
	lastReset time.Time // only for custom
}

func newBucket() *bucket {
	return &bucket{
		lock:      moreatomic.NewCtxMutex(),
		remaining: 1,
	}
}

// NewLimiter creates a new Limiter that strips the given prefix from paths.
func NewLimiter(prefix string) *Limiter {
	return &Limiter{
		Prefix:       prefix,
		global:       new(int64),
		buckets:      map[string]*bucket{},
		CustomLimits: []*CustomRateLimit{},
	}
}

func (l *Limiter) getBucket(path string, store bool) *bucket {
	path = ParseBucketKey(strings.TrimPrefix(path, l.Prefix))

	l.bucketMu.Lock()
	defer l.bucketMu.Unlock()

	b, ok := l.buckets[path]
	if ok {
		return b
	}

	if !store {
		return nil
	}

	b = newBucket()

	for _, limit := range l.CustomLimits {
		if strings.Contains(path, limit.Contains) {
			b.custom = limit
			break
		}
	}

	l.buckets[path] = b
	return b
}

// Acquire acquires the rate limiter for the given URL bucket. The bucket
// stays locked until Release is called with the same path.
func (l *Limiter) Acquire(ctx context.Context, path string) error {
	var options AcquireOptions

	if untyped := ctx.Value(acquireOptionsKey); untyped != nil {
		// The zero value is the default anyway, so ok can be ignored.
		options, _ = untyped.(AcquireOptions)
	}

	b := l.getBucket(path, true)

	if err := b.lock.Lock(ctx); err != nil {
		return err
	}

	// Deadline until the limiter is released.
	until := time.Time{}
	now := time.Now()

	if b.remaining == 0 && b.reset.After(now) {
		// Out of turns, so wait until the bucket resets.
		until = b.reset
	} else {
		// Maybe the global rate limit has it.
		until = time.Unix(0, atomic.LoadInt64(l.global))
	}

	if until.After(now) {
		// Bail out before sleeping, releasing the bucket for later attempts.
		if options.DontWait {
			b.lock.Unlock()
			return ErrTimedOutEarly
		}
		if deadline, ok := ctx.Deadline(); ok && until.After(deadline) {
			b.lock.Unlock()
			return ErrTimedOutEarly
		}

		select {
		case <-ctx.Done():
			b.lock.Unlock()
			return ctx.Err()
		case <-time.After(until.Sub(now)):
		}
	}

	if b.remaining > 0 {
		b.remaining--
	}

	return nil
}

// Release updates the bucket from the response headers and releases the lock
// acquired by Acquire. It doesn't need a context, since it never blocks for
// long.
func (l *Limiter) Release(path string, headers http.Header) error {
	b := l.getBucket(path, false)
	if b == nil {
		return nil
	}

	// TryUnlock because Release may be called when Acquire has not been.
	defer b.lock.TryUnlock()

	if b.custom != nil {
		now := time.Now()

		if now.Sub(b.lastReset) >= b.custom.Reset {
			b.lastReset = now
			b.reset = now.Add(b.custom.Reset)
		}

		return nil
	}

	// Happens when the request never made it out.
	if headers == nil {
		return nil
	}

	var (
		// boolean
		global = headers.Get("X-RateLimit-Global")

		remaining  = headers.Get("X-RateLimit-Remaining")
		reset      = headers.Get("X-RateLimit-Reset") // float, unix seconds
		retryAfter = headers.Get("Retry-After")       // integer seconds
	)

	switch {
	case retryAfter != "":
		i, err := strconv.Atoi(retryAfter)
		if err != nil {
			return errors.Wrapf(err, "invalid Retry-After %q", retryAfter)
		}

		at := time.Now().Add(time.Duration(i) * time.Second)

		if global != "" { // probably "true"
			atomic.StoreInt64(l.global, at.UnixNano())
		} else {
			b.reset = at
		}

	case reset != "":
		unix, err := strconv.ParseFloat(reset, 64)
		if err != nil {
			return errors.Wrap(err, "invalid X-RateLimit-Reset "+reset)
		}

		sec := int64(unix)
		nsec := int64((unix - float64(sec)) * float64(time.Second))

		b.reset = time.Unix(sec, nsec).Add(ExtraDelay)
	}

	if remaining != "" {
		u, err := strconv.ParseUint(remaining, 10, 64)
		if err != nil {
			return errors.Wrap(err, "invalid X-RateLimit-Remaining "+remaining)
		}

		b.remaining = u
	}

	return nil
}

package rate

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"
)

func mockRequest(t *testing.T, l *Limiter, path string, headers http.Header) {
	t.Helper()

	if err := l.Acquire(context.Background(), path); err != nil {
		t.Fatal("failed to acquire lock:", err)
	}

	if err := l.Release(path, headers); err != nil {
		t.Fatal("failed to release lock:", err)
	}
}

// This test takes ~2 seconds to run.
func TestLimiterReset(t *testing.T) {
	l := NewLimiter("")

	const msToSec = time.Second / time.Millisecond

	until := time.Now().Add(2 * time.Second)
	reset := float64(until.UnixNano()/int64(time.Millisecond)) / float64(msToSec)

	headers := http.Header{}
	headers.Set("X-RateLimit-Remaining", "0")
	headers.Set("X-RateLimit-Reset", fmt.Sprintf("%.3f", reset))
	headers.Set("Date", time.Now().Format(time.RFC850))

	sent := time.Now()
	mockRequest(t, l, "/guilds/99/channels", headers)
	mockRequest(t, l, "/guilds/55/channels", headers)
	mockRequest(t, l, "/guilds/66/channels", headers)

	// Hit the same three buckets again; each should wait out its reset.
	mockRequest(t, l, "/guilds/99/channels", headers)
	mockRequest(t, l, "/guilds/55/channels", headers)
	mockRequest(t, l, "/guilds/66/channels", headers)

	// Each bucket was exhausted once, so the second round should block for
	// about 2 seconds total and certainly less than 4.
	if since := time.Since(sent); since >= time.Second && since < 4*time.Second {
		t.Log("OK", since)
	} else {
		t.Error("did not rate limit correctly, got:", since)
	}
}

// This test takes ~1 second to run.
func TestLimiterGlobal(t *testing.T) {
	l := NewLimiter("")

	headers := http.Header{}
	headers.Set("X-RateLimit-Global", "true")
	headers.Set("Retry-After", "1")

	sent := time.Now()

	// This should arm the global rate limit.
	mockRequest(t, l, "/guilds/99/channels", headers)
	time.Sleep(100 * time.Millisecond)

	// A different bucket must still wait for the global limit.
	mockRequest(t, l, "/guilds/55/channels", headers)

	if since := time.Since(sent); since >= time.Second && since < 2*time.Second {
		t.Log("OK", since)
	} else {
		t.Error("did not rate limit correctly, got:", time.Since(sent))
	}
}

func TestLimiterDontWait(t *testing.T) {
	l := NewLimiter("")

	headers := http.Header{}
	headers.Set("X-RateLimit-Remaining", "0")
	headers.Set("Retry-After", "2")

	mockRequest(t, l, "/channels/1/messages", headers)

	ctx := AcquireOptions{DontWait: true}.Context(context.Background())

	if err := l.Acquire(ctx, "/channels/1/messages"); err != ErrTimedOutEarly {
		t.Error("expected ErrTimedOutEarly, got:", err)
	}
}

// This test takes ~1 second to run.
func TestLimiterDontWaitReleasesBucket(t *testing.T) {
	l := NewLimiter("")

	headers := http.Header{}
	headers.Set("X-RateLimit-Remaining", "0")
	headers.Set("Retry-After", "1")

	mockRequest(t, l, "/channels/1/messages", headers)

	ctx := AcquireOptions{DontWait: true}.Context(context.Background())

	if err := l.Acquire(ctx, "/channels/1/messages"); err != ErrTimedOutEarly {
		t.Fatal("expected ErrTimedOutEarly, got:", err)
	}

	// The failed acquire must leave the bucket unlocked, so a patient acquire
	// afterwards only waits out the rate limit itself.
	waitCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := l.Acquire(waitCtx, "/channels/1/messages"); err != nil {
		t.Fatal("acquire after fail-fast acquire did not succeed:", err)
	}

	if err := l.Release("/channels/1/messages", nil); err != nil {
		t.Fatal("failed to release:", err)
	}
}

func TestLimiterContextDeadline(t *testing.T) {
	l := NewLimiter("")

	headers := http.Header{}
	headers.Set("X-RateLimit-Remaining", "0")
	headers.Set("Retry-After", "5")

	mockRequest(t, l, "/channels/1/messages", headers)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	if err := l.Acquire(ctx, "/channels/1/messages"); err != ErrTimedOutEarly {
		t.Error("expected ErrTimedOutEarly, got:", err)
	}
}

func TestLimiterCustom(t *testing.T) {
	l := NewLimiter("")
	l.CustomLimits = append(l.CustomLimits, &CustomRateLimit{
		Contains: "/typing",
		Reset:    5 * time.Second,
	})

	b := l.getBucket("/channels/1/typing", true)
	if b.custom == nil {
		t.Fatal("custom limit was not attached to the bucket")
	}

	if b := l.getBucket("/channels/1/messages", true); b.custom != nil {
		t.Fatal("custom limit attached to an unrelated bucket")
	}
}

func TestLimiterPrefix(t *testing.T) {
	l := NewLimiter("https://discord.com/api/v10")

	mockRequest(t, l, "https://discord.com/api/v10/channels/1/messages", nil)

	if b := l.getBucket("https://discord.com/api/v10/channels/1/messages", false); b == nil {
		t.Fatal("bucket was not stored under the stripped path")
	}
}

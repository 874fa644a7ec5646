package bot

import (
	"sync"
	"time"

	"github.com/quaverlib/quaver/discord"
	"github.com/quaverlib/quaver/gateway"
)

// BucketType determines what a cooldown is keyed by.
type BucketType uint8

const (
	// BucketGlobal shares one bucket across every invocation.
	BucketGlobal BucketType = iota
	// BucketUser keys the bucket by the author's user ID.
	BucketUser
	// BucketChannel keys the bucket by the channel the message was sent in.
	BucketChannel
	// BucketGuild keys the bucket by guild, falling back to the author for
	// direct messages.
	BucketGuild
)

// Key derives the bucket key from the triggering message.
func (t BucketType) Key(msg *gateway.MessageCreateEvent) discord.Snowflake {
	switch t {
	case BucketUser:
		return discord.Snowflake(msg.Author.ID)
	case BucketChannel:
		return discord.Snowflake(msg.ChannelID)
	case BucketGuild:
		if !msg.GuildID.IsValid() {
			return discord.Snowflake(msg.Author.ID)
		}
		return discord.Snowflake(msg.GuildID)
	default:
		return discord.NullSnowflake
	}
}

// Cooldown describes a rate-per-window cooldown: at most Rate invocations
// every Per, tracked per Bucket.
type Cooldown struct {
	Rate   int
	Per    time.Duration
	Bucket BucketType
}

// NewCooldown is a convenience constructor for a Cooldown.
func NewCooldown(rate int, per time.Duration, bucket BucketType) *Cooldown {
	return &Cooldown{Rate: rate, Per: per, Bucket: bucket}
}

// cooldownWindow is a single bucket's token window.
type cooldownWindow struct {
	tokens int
	start  time.Time
}

// CooldownMapping tracks the cooldown windows of a single command across all
// of its bucket keys. Windows are pruned lazily once they expire.
type CooldownMapping struct {
	cooldown Cooldown

	mutex   sync.Mutex
	windows map[discord.Snowflake]*cooldownWindow
}

// NewCooldownMapping creates a mapping for the given cooldown.
func NewCooldownMapping(c Cooldown) *CooldownMapping {
	return &CooldownMapping{
		cooldown: c,
		windows:  map[discord.Snowflake]*cooldownWindow{},
	}
}

// Reserve consumes a token from the bucket that the message maps to. If the
// bucket is exhausted, it returns the duration until the window resets and
// false; no token is consumed.
func (m *CooldownMapping) Reserve(msg *gateway.MessageCreateEvent) (time.Duration, bool) {
	return m.reserve(m.cooldown.Bucket.Key(msg), time.Now())
}

func (m *CooldownMapping) reserve(key discord.Snowflake, now time.Time) (time.Duration, bool) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.prune(now)

	w, ok := m.windows[key]
	if !ok || now.Sub(w.start) >= m.cooldown.Per {
		w = &cooldownWindow{tokens: m.cooldown.Rate, start: now}
		m.windows[key] = w
	}

	if w.tokens == 0 {
		return w.start.Add(m.cooldown.Per).Sub(now), false
	}

	w.tokens--
	return 0, true
}

// Reset drops the bucket that the message maps to, refilling its tokens on
// the next reservation.
func (m *CooldownMapping) Reset(msg *gateway.MessageCreateEvent) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	delete(m.windows, m.cooldown.Bucket.Key(msg))
}

// prune drops expired windows so idle keys don't accumulate forever. It must
// be called with the mutex held.
func (m *CooldownMapping) prune(now time.Time) {
	if len(m.windows) < 64 {
		return
	}
	for key, w := range m.windows {
		if now.Sub(w.start) >= m.cooldown.Per {
			delete(m.windows, key)
		}
	}
}

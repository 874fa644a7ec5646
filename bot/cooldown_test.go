package bot

import (
	"testing"
	"time"

	"github.com/quaverlib/quaver/discord"
)

func TestCooldownWindow(t *testing.T) {
	m := NewCooldownMapping(Cooldown{Rate: 2, Per: 10 * time.Second, Bucket: BucketUser})

	now := time.Now()
	key := discord.Snowflake(1)

	for i := 0; i < 2; i++ {
		if _, ok := m.reserve(key, now); !ok {
			t.Fatal("reservation within rate denied")
		}
	}

	retryAfter, ok := m.reserve(key, now.Add(3*time.Second))
	if ok {
		t.Fatal("reservation over rate allowed")
	}
	if retryAfter != 7*time.Second {
		t.Fatal("unexpected retry-after:", retryAfter)
	}

	// The window resets Per after its first reservation.
	if _, ok := m.reserve(key, now.Add(10*time.Second)); !ok {
		t.Fatal("reservation after window reset denied")
	}

	// Other keys are unaffected throughout.
	if _, ok := m.reserve(discord.Snowflake(2), now); !ok {
		t.Fatal("unrelated key denied")
	}
}

func TestBucketTypeKey(t *testing.T) {
	msg := message("!x")

	tests := []struct {
		name   string
		bucket BucketType
		expect discord.Snowflake
	}{
		{"global", BucketGlobal, discord.NullSnowflake},
		{"user", BucketUser, discord.Snowflake(msg.Author.ID)},
		{"channel", BucketChannel, discord.Snowflake(msg.ChannelID)},
		{"guild", BucketGuild, discord.Snowflake(msg.GuildID)},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if key := test.bucket.Key(msg); key != test.expect {
				t.Fatalf("unexpected key %v, expected %v", key, test.expect)
			}
		})
	}

	// Guild buckets fall back to the author in DMs.
	dm := message("!x")
	dm.GuildID = 0
	if key := BucketGuild.Key(dm); key != discord.Snowflake(dm.Author.ID) {
		t.Fatal("unexpected DM guild key:", key)
	}
}

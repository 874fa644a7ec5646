// Package discord provides the object model for Discord entities: snowflake
// IDs, users, guilds, channels, messages, interactions and application
// commands. All structs mirror the JSON payloads Discord sends, with typed
// IDs to prevent mixups.
package discord

import (
	"strconv"
	"strings"
	"time"
)

// Epoch is the Discord epoch constant in time.Duration (nanoseconds) since
// the Unix epoch.
const Epoch = 1420070400000 * time.Millisecond

// DurationSinceEpoch returns the duration from the Discord epoch to current.
func DurationSinceEpoch(t time.Time) time.Duration {
	return time.Duration(t.UnixNano()) - Epoch
}

// Snowflake is the format of Discord's ID type. It is a format that can be
// sorted chronologically.
type Snowflake uint64

// NullSnowflake gets encoded into a null. This is used for optional and
// nullable snowflake fields.
const NullSnowflake = ^Snowflake(0)

// NewSnowflake creates a new snowflake from the given time.
func NewSnowflake(t time.Time) Snowflake {
	return Snowflake((DurationSinceEpoch(t) / time.Millisecond) << 22)
}

// ParseSnowflake parses a snowflake.
func ParseSnowflake(sf string) (Snowflake, error) {
	if sf == "null" {
		return NullSnowflake, nil
	}

	u, err := strconv.ParseUint(sf, 10, 64)
	if err != nil {
		return 0, err
	}

	return Snowflake(u), nil
}

func (s *Snowflake) UnmarshalJSON(v []byte) error {
	p, err := ParseSnowflake(strings.Trim(string(v), `"`))
	if err != nil {
		return err
	}

	*s = p
	return nil
}

func (s Snowflake) MarshalJSON() ([]byte, error) {
	// This includes 0 and null, because MarshalJSON does not dictate when a
	// value gets omitted.
	if !s.IsValid() {
		return []byte("null"), nil
	} else {
		return []byte(`"` + strconv.FormatUint(uint64(s), 10) + `"`), nil
	}
}

// String returns the ID, or nothing if the snowflake isn't valid.
func (s Snowflake) String() string {
	// Check if negative.
	if !s.IsValid() {
		return ""
	}
	return strconv.FormatUint(uint64(s), 10)
}

// IsValid returns whether or not the snowflake is valid.
func (s Snowflake) IsValid() bool {
	return !(int64(s) == 0 || s == NullSnowflake)
}

// IsNull returns whether or not the snowflake is null.
func (s Snowflake) IsNull() bool {
	return s == NullSnowflake
}

func (s Snowflake) Time() time.Time {
	unixnano := ((time.Duration(s) >> 22) * time.Millisecond) + Epoch
	return time.Unix(0, int64(unixnano))
}

func (s Snowflake) Worker() uint8 {
	return uint8(s & 0x3E0000 >> 17)
}

func (s Snowflake) PID() uint8 {
	return uint8(s & 0x1F000 >> 12)
}

func (s Snowflake) Increment() uint16 {
	return uint16(s & 0xFFF)
}

// AppID is the snowflake type for an application ID.
type AppID Snowflake

// NullAppID gets encoded into a null.
const NullAppID = AppID(NullSnowflake)

func (s AppID) String() string  { return Snowflake(s).String() }
func (s AppID) IsValid() bool   { return Snowflake(s).IsValid() }
func (s AppID) IsNull() bool    { return Snowflake(s).IsNull() }
func (s AppID) Time() time.Time { return Snowflake(s).Time() }

// ChannelID is the snowflake type for a channel ID.
type ChannelID Snowflake

// NullChannelID gets encoded into a null.
const NullChannelID = ChannelID(NullSnowflake)

func (s ChannelID) String() string  { return Snowflake(s).String() }
func (s ChannelID) IsValid() bool   { return Snowflake(s).IsValid() }
func (s ChannelID) IsNull() bool    { return Snowflake(s).IsNull() }
func (s ChannelID) Time() time.Time { return Snowflake(s).Time() }
func (s ChannelID) Mention() string { return "<#" + s.String() + ">" }

// CommandID is the snowflake type for an application command ID.
type CommandID Snowflake

// NullCommandID gets encoded into a null.
const NullCommandID = CommandID(NullSnowflake)

func (s CommandID) String() string  { return Snowflake(s).String() }
func (s CommandID) IsValid() bool   { return Snowflake(s).IsValid() }
func (s CommandID) IsNull() bool    { return Snowflake(s).IsNull() }
func (s CommandID) Time() time.Time { return Snowflake(s).Time() }

// EmojiID is the snowflake type for an emoji ID.
type EmojiID Snowflake

// NullEmojiID gets encoded into a null.
const NullEmojiID = EmojiID(NullSnowflake)

func (s EmojiID) String() string  { return Snowflake(s).String() }
func (s EmojiID) IsValid() bool   { return Snowflake(s).IsValid() }
func (s EmojiID) IsNull() bool    { return Snowflake(s).IsNull() }
func (s EmojiID) Time() time.Time { return Snowflake(s).Time() }

// GuildID is the snowflake type for a guild ID.
type GuildID Snowflake

// NullGuildID gets encoded into a null.
const NullGuildID = GuildID(NullSnowflake)

func (s GuildID) String() string  { return Snowflake(s).String() }
func (s GuildID) IsValid() bool   { return Snowflake(s).IsValid() }
func (s GuildID) IsNull() bool    { return Snowflake(s).IsNull() }
func (s GuildID) Time() time.Time { return Snowflake(s).Time() }

// InteractionID is the snowflake type for an interaction ID.
type InteractionID Snowflake

// NullInteractionID gets encoded into a null.
const NullInteractionID = InteractionID(NullSnowflake)

func (s InteractionID) String() string  { return Snowflake(s).String() }
func (s InteractionID) IsValid() bool   { return Snowflake(s).IsValid() }
func (s InteractionID) IsNull() bool    { return Snowflake(s).IsNull() }
func (s InteractionID) Time() time.Time { return Snowflake(s).Time() }

// MessageID is the snowflake type for a message ID.
type MessageID Snowflake

// NullMessageID gets encoded into a null.
const NullMessageID = MessageID(NullSnowflake)

func (s MessageID) String() string  { return Snowflake(s).String() }
func (s MessageID) IsValid() bool   { return Snowflake(s).IsValid() }
func (s MessageID) IsNull() bool    { return Snowflake(s).IsNull() }
func (s MessageID) Time() time.Time { return Snowflake(s).Time() }

// RoleID is the snowflake type for a role ID.
type RoleID Snowflake

// NullRoleID gets encoded into a null.
const NullRoleID = RoleID(NullSnowflake)

func (s RoleID) String() string  { return Snowflake(s).String() }
func (s RoleID) IsValid() bool   { return Snowflake(s).IsValid() }
func (s RoleID) IsNull() bool    { return Snowflake(s).IsNull() }
func (s RoleID) Time() time.Time { return Snowflake(s).Time() }
func (s RoleID) Mention() string { return "<@&" + s.String() + ">" }

// UserID is the snowflake type for a user ID.
type UserID Snowflake

// NullUserID gets encoded into a null.
const NullUserID = UserID(NullSnowflake)

func (s UserID) String() string  { return Snowflake(s).String() }
func (s UserID) IsValid() bool   { return Snowflake(s).IsValid() }
func (s UserID) IsNull() bool    { return Snowflake(s).IsNull() }
func (s UserID) Time() time.Time { return Snowflake(s).Time() }
func (s UserID) Mention() string { return "<@" + s.String() + ">" }

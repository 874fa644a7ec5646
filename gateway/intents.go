package gateway

import (
	"github.com/quaverlib/quaver/discord"
	"github.com/quaverlib/quaver/utils/ws"
)

// Intents is the bitfield that tells Discord which event groups the session
// wants delivered. See
// https://discord.com/developers/docs/topics/gateway#gateway-intents.
type Intents uint32

const (
	IntentGuilds Intents = 1 << iota
	IntentGuildMembers
	IntentGuildModeration
	IntentGuildEmojis
	IntentGuildIntegrations
	IntentGuildWebhooks
	IntentGuildInvites
	IntentGuildVoiceStates
	IntentGuildPresences
	IntentGuildMessages
	IntentGuildMessageReactions
	IntentGuildMessageTyping
	IntentDirectMessages
	IntentDirectMessageReactions
	IntentDirectMessageTyping
	IntentMessageContent
	IntentGuildScheduledEvents
)

// PrivilegedIntents lists the intents that must be enabled for the bot in the
// Developer Portal before the gateway will grant them.
var PrivilegedIntents = []Intents{
	IntentGuildPresences,
	IntentGuildMembers,
	IntentMessageContent,
}

// Has reports whether all given intents are set in i.
func (i Intents) Has(intents Intents) bool {
	return discord.HasFlag(uint64(i), uint64(intents))
}

// IsPrivileged breaks down which privileged intents i carries.
func (i Intents) IsPrivileged() (presences, member, content bool) {
	// Keep this in sync with PrivilegedIntents.
	return i.Has(IntentGuildPresences), i.Has(IntentGuildMembers), i.Has(IntentMessageContent)
}

// EventIntents maps each dispatch event type to the intents that make the
// gateway deliver it.
var EventIntents = map[ws.EventType]Intents{
	"GUILD_CREATE":      IntentGuilds,
	"GUILD_UPDATE":      IntentGuilds,
	"GUILD_DELETE":      IntentGuilds,
	"GUILD_ROLE_CREATE": IntentGuilds,
	"GUILD_ROLE_UPDATE": IntentGuilds,
	"GUILD_ROLE_DELETE": IntentGuilds,
	"CHANNEL_CREATE":    IntentGuilds,
	"CHANNEL_UPDATE":    IntentGuilds,
	"CHANNEL_DELETE":    IntentGuilds,

	"GUILD_MEMBER_ADD":    IntentGuildMembers,
	"GUILD_MEMBER_REMOVE": IntentGuildMembers,
	"GUILD_MEMBER_UPDATE": IntentGuildMembers,

	"MESSAGE_CREATE":      IntentGuildMessages | IntentDirectMessages,
	"MESSAGE_UPDATE":      IntentGuildMessages | IntentDirectMessages,
	"MESSAGE_DELETE":      IntentGuildMessages | IntentDirectMessages,
	"MESSAGE_DELETE_BULK": IntentGuildMessages,

	"TYPING_START": IntentGuildMessageTyping | IntentDirectMessageTyping,
}

package gateway

import "github.com/quaverlib/quaver/discord"

// Lifecycle events.
type (
	// HelloEvent is the event sent when the client first connects. It
	// carries the heartbeat interval to pace at.
	HelloEvent struct {
		HeartbeatInterval discord.Milliseconds `json:"heartbeat_interval"`
	}

	// HeartbeatAckEvent is sent by the server in response to a heartbeat.
	HeartbeatAckEvent struct{}

	// ReconnectEvent is sent by the server when the client should reconnect
	// and resume.
	ReconnectEvent struct{}

	// ResumedEvent is sent after a successful resume.
	ResumedEvent struct{}

	// InvalidSessionEvent indicates whether the session is resumable.
	InvalidSessionEvent bool
)

// ReadyEvent is the event that is sent when the session has finished
// identifying.
type ReadyEvent struct {
	Version          int          `json:"v"`
	User             discord.User `json:"user"`
	SessionID        string       `json:"session_id"`
	ResumeGatewayURL string       `json:"resume_gateway_url"`
	Shard            *[2]int      `json:"shard,omitempty"`
	Application struct {
		ID    discord.AppID            `json:"id"`
		Flags discord.ApplicationFlags `json:"flags"`
	} `json:"application"`

	Guilds []UnavailableGuild `json:"guilds"`
}

// UnavailableGuild is a guild that is initially unavailable when the session
// starts. A GuildCreateEvent follows for each available guild.
type UnavailableGuild struct {
	ID          discord.GuildID `json:"id"`
	Unavailable bool            `json:"unavailable"`
}

// Channel events.
type (
	ChannelCreateEvent struct {
		discord.Channel
	}
	ChannelUpdateEvent struct {
		discord.Channel
	}
	ChannelDeleteEvent struct {
		discord.Channel
	}
)

// Guild events.
type (
	GuildCreateEvent struct {
		discord.Guild

		Joined      discord.Timestamp `json:"joined_at,omitempty"`
		Large       bool              `json:"large,omitempty"`
		Unavailable bool              `json:"unavailable,omitempty"`
		MemberCount uint64            `json:"member_count,omitempty"`

		Members  []discord.Member  `json:"members,omitempty"`
		Channels []discord.Channel `json:"channels,omitempty"`
	}
	GuildUpdateEvent struct {
		discord.Guild
	}
	GuildDeleteEvent struct {
		ID discord.GuildID `json:"id"`
		// Unavailable is false if the user was removed from the guild.
		Unavailable bool `json:"unavailable"`
	}

	GuildMemberAddEvent struct {
		discord.Member
		GuildID discord.GuildID `json:"guild_id"`
	}
	GuildMemberRemoveEvent struct {
		GuildID discord.GuildID `json:"guild_id"`
		User    discord.User    `json:"user"`
	}
	GuildMemberUpdateEvent struct {
		GuildID discord.GuildID  `json:"guild_id"`
		RoleIDs []discord.RoleID `json:"roles"`
		User    discord.User     `json:"user"`
		Nick    string           `json:"nick"`
	}

	// GuildMembersChunkEvent is sent in response to a
	// RequestGuildMembersCommand.
	GuildMembersChunkEvent struct {
		GuildID discord.GuildID  `json:"guild_id"`
		Members []discord.Member `json:"members"`

		ChunkIndex int `json:"chunk_index"`
		ChunkCount int `json:"chunk_count"`

		// NotFound contains whatever couldn't be matched.
		NotFound []string `json:"not_found,omitempty"`

		Nonce string `json:"nonce,omitempty"`
	}

	GuildRoleCreateEvent struct {
		GuildID discord.GuildID `json:"guild_id"`
		Role    discord.Role    `json:"role"`
	}
	GuildRoleUpdateEvent struct {
		GuildID discord.GuildID `json:"guild_id"`
		Role    discord.Role    `json:"role"`
	}
	GuildRoleDeleteEvent struct {
		GuildID discord.GuildID `json:"guild_id"`
		RoleID  discord.RoleID  `json:"role_id"`
	}
)

// Update copies the updated fields into the given member.
func (u GuildMemberUpdateEvent) Update(m *discord.Member) {
	m.RoleIDs = u.RoleIDs
	m.User = u.User
	m.Nick = u.Nick
}

// Message events.
type (
	MessageCreateEvent struct {
		discord.Message
		Member *discord.Member `json:"member,omitempty"`
	}
	MessageUpdateEvent struct {
		discord.Message
		Member *discord.Member `json:"member,omitempty"`
	}
	MessageDeleteEvent struct {
		ID        discord.MessageID `json:"id"`
		ChannelID discord.ChannelID `json:"channel_id"`
		GuildID   discord.GuildID   `json:"guild_id,omitempty"`
	}
	MessageDeleteBulkEvent struct {
		IDs       []discord.MessageID `json:"ids"`
		ChannelID discord.ChannelID   `json:"channel_id"`
		GuildID   discord.GuildID     `json:"guild_id,omitempty"`
	}
)

// User events.
type (
	TypingStartEvent struct {
		ChannelID discord.ChannelID `json:"channel_id"`
		UserID    discord.UserID    `json:"user_id"`
		Timestamp int64             `json:"timestamp"`

		GuildID discord.GuildID `json:"guild_id,omitempty"`
		Member  *discord.Member `json:"member,omitempty"`
	}

	UserUpdateEvent struct {
		discord.User
	}
)

// InteractionCreateEvent is sent when a user uses an application command or
// another interaction.
type InteractionCreateEvent struct {
	discord.InteractionEvent
}

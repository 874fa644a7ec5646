package discord

import "time"

type Channel struct {
	ID   ChannelID   `json:"id"`
	Type ChannelType `json:"type"`

	GuildID GuildID `json:"guild_id,omitempty"`

	Position int    `json:"position,omitempty"`
	Name     string `json:"name,omitempty"`
	Topic    string `json:"topic,omitempty"`
	NSFW     bool   `json:"nsfw,omitempty"`

	LastMessageID MessageID `json:"last_message_id,omitempty"`

	// DMRecipients are the recipients of the DM.
	DMRecipients []User `json:"recipients,omitempty"`

	OwnerID  UserID    `json:"owner_id,omitempty"`
	ParentID ChannelID `json:"parent_id,omitempty"`

	RateLimitPerUser uint `json:"rate_limit_per_user,omitempty"`
}

// CreatedAt returns a time object representing when the channel was created.
func (ch Channel) CreatedAt() time.Time {
	return Snowflake(ch.ID).Time()
}

// Mention returns a mention of the channel.
func (ch Channel) Mention() string {
	return ch.ID.Mention()
}

type ChannelType uint16

const (
	// GuildText is a text channel within a server.
	GuildText ChannelType = iota
	// DirectMessage is a direct message between users.
	DirectMessage
	// GuildVoice is a voice channel within a server.
	GuildVoice
	// GroupDM is a direct message between multiple users.
	GroupDM
	// GuildCategory is an organizational category.
	GuildCategory
	// GuildAnnouncement is a channel that users can follow.
	GuildAnnouncement
	_
	_
	_
	_
	// GuildAnnouncementThread is a thread within an announcement channel.
	GuildAnnouncementThread
	// GuildPublicThread is a thread within a text channel.
	GuildPublicThread
	// GuildPrivateThread is a private thread.
	GuildPrivateThread
	// GuildStageVoice is a stage channel.
	GuildStageVoice
)

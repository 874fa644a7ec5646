package discord

import "time"

type Message struct {
	ID        MessageID   `json:"id"`
	Type      MessageType `json:"type"`
	ChannelID ChannelID   `json:"channel_id"`
	GuildID   GuildID     `json:"guild_id,omitempty"`

	// Author may not be a valid user; see the Webhook ID field.
	Author User `json:"author"`

	Content string `json:"content"`

	Timestamp       Timestamp `json:"timestamp,omitempty"`
	EditedTimestamp Timestamp `json:"edited_timestamp,omitempty"`

	TTS    bool `json:"tts"`
	Pinned bool `json:"pinned"`

	MentionEveryone bool        `json:"mention_everyone"`
	Mentions        []User      `json:"mentions"`
	MentionRoleIDs  []RoleID    `json:"mention_roles"`
	MentionChannels []ChannelID `json:"-"`

	Attachments []Attachment `json:"attachments"`
	Embeds      []Embed      `json:"embeds"`
	Reactions   []Reaction   `json:"reactions,omitempty"`

	// Nonce is used for validating a message was sent.
	Nonce string `json:"-"`

	WebhookID Snowflake `json:"webhook_id,omitempty"`

	Reference *MessageReference `json:"message_reference,omitempty"`

	// ReferencedMessage is the message that was replied to, if any.
	ReferencedMessage *Message `json:"referenced_message,omitempty"`

	Flags MessageFlags `json:"flags,omitempty"`

	// Interaction is the interaction that the message is a response to, if
	// any.
	Interaction *MessageInteraction `json:"interaction,omitempty"`
}

// CreatedAt returns a time object representing when the message was created.
func (m Message) CreatedAt() time.Time {
	return Snowflake(m.ID).Time()
}

// URL generates a Discord client URL to the message.
func (m Message) URL() string {
	var guildID = "@me"
	if m.GuildID.IsValid() {
		guildID = m.GuildID.String()
	}

	return "https://discord.com/channels/" +
		guildID + "/" + m.ChannelID.String() + "/" + m.ID.String()
}

type MessageType uint8

const (
	DefaultMessage MessageType = iota
	RecipientAddMessage
	RecipientRemoveMessage
	CallMessage
	ChannelNameChangeMessage
	ChannelIconChangeMessage
	ChannelPinnedMessage
	GuildMemberJoinMessage
	NitroBoostMessage
	NitroTier1Message
	NitroTier2Message
	NitroTier3Message
	ChannelFollowAddMessage
	_
	GuildDiscoveryDisqualifiedMessage
	GuildDiscoveryRequalifiedMessage
	_
	_
	ThreadCreatedMessage
	InlinedReplyMessage
	ChatInputCommandMessage
	ThreadStarterMessage
	GuildInviteReminderMessage
	ContextMenuCommandMessage
)

type MessageFlags uint32

const (
	// CrosspostedMessage specifies whether the message has been published to
	// subscribed channels.
	CrosspostedMessage MessageFlags = 1 << iota
	// MessageIsCrosspost specifies whether the message is a crosspost.
	MessageIsCrosspost
	// SuppressEmbeds specifies whether to not include any embeds when
	// serializing the message.
	SuppressEmbeds
	// SourceMessageDeleted specifies whether the source message for the
	// crosspost has been deleted.
	SourceMessageDeleted
	// UrgentMessage specifies whether the message came from the urgent
	// message system.
	UrgentMessage
	_
	// EphemeralMessage specifies whether the message is only visible to the
	// user who invoked the interaction.
	EphemeralMessage
	// MessageLoading specifies whether the message is an interaction response
	// that's still "thinking".
	MessageLoading
)

// MessageReference is used in four situations: crossposts, channel follow
// adds, pins, and replies.
type MessageReference struct {
	MessageID MessageID `json:"message_id,omitempty"`
	ChannelID ChannelID `json:"channel_id,omitempty"`
	GuildID   GuildID   `json:"guild_id,omitempty"`
}

// MessageInteraction is sent on message objects when the message is a
// response to an interaction.
type MessageInteraction struct {
	ID   InteractionID       `json:"id"`
	Type InteractionDataType `json:"type"`
	Name string              `json:"name"`
	User User                `json:"user"`
}

type Attachment struct {
	ID       Snowflake `json:"id"`
	Filename string    `json:"filename"`

	Description string `json:"description,omitempty"`
	ContentType string `json:"content_type,omitempty"`

	Size uint64 `json:"size"`

	URL      string `json:"url"`
	ProxyURL string `json:"proxy_url"`

	// Height and Width are only present if the file is an image.
	Height uint `json:"height,omitempty"`
	Width  uint `json:"width,omitempty"`
}

type Reaction struct {
	Count int   `json:"count"`
	Me    bool  `json:"me"` // for current user
	Emoji Emoji `json:"emoji"`
}

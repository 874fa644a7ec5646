package discord

import "time"

type Guild struct {
	ID     GuildID `json:"id"`
	Name   string  `json:"name"`
	Icon   Hash    `json:"icon"`
	Splash Hash    `json:"splash,omitempty"`

	OwnerID UserID `json:"owner_id"`
	Owner   bool   `json:"owner,omitempty"`

	Permissions Permissions `json:"permissions,omitempty"`

	VerificationLevel int `json:"verification_level"`

	Roles  []Role  `json:"roles"`
	Emojis []Emoji `json:"emojis"`

	Features []string `json:"features"`

	MFA int `json:"mfa_level"`

	SystemChannelID ChannelID `json:"system_channel_id,omitempty"`
	RulesChannelID  ChannelID `json:"rules_channel_id,omitempty"`

	MaxMembers      uint   `json:"max_members,omitempty"`
	Description     string `json:"description,omitempty"`
	PremiumTier     int    `json:"premium_tier"`
	PreferredLocale string `json:"preferred_locale"`

	ApproximateMembers uint `json:"approximate_member_count,omitempty"`
}

// CreatedAt returns a time object representing when the guild was created.
func (g Guild) CreatedAt() time.Time {
	return Snowflake(g.ID).Time()
}

// IconURL returns the URL to the guild icon, or an empty string if the guild
// has no icon.
func (g Guild) IconURL() string {
	if g.Icon == "" {
		return ""
	}
	return "https://cdn.discordapp.com/icons/" + g.ID.String() + "/" + g.Icon + ".png"
}

type Role struct {
	ID   RoleID `json:"id"`
	Name string `json:"name"`

	Color    Color `json:"color"`
	Hoist    bool  `json:"hoist"`
	Position int   `json:"position"`

	Permissions Permissions `json:"permissions"`

	Managed     bool `json:"managed"`
	Mentionable bool `json:"mentionable"`
}

// CreatedAt returns a time object representing when the role was created.
func (r Role) CreatedAt() time.Time {
	return Snowflake(r.ID).Time()
}

// Mention returns the mention of the role.
func (r Role) Mention() string {
	return r.ID.Mention()
}

type Member struct {
	User User   `json:"user"`
	Nick string `json:"nick,omitempty"`

	RoleIDs []RoleID `json:"roles"`

	Joined       Timestamp `json:"joined_at"`
	BoostedSince Timestamp `json:"premium_since,omitempty"`

	Deaf bool `json:"deaf"`
	Mute bool `json:"mute"`

	// Permissions is only given in an interaction payload.
	Permissions Permissions `json:"permissions,omitempty"`
}

// Mention returns the mention of the member's user.
func (m Member) Mention() string {
	return m.User.Mention()
}

type Emoji struct {
	ID   EmojiID `json:"id"` // null for unicode emojis
	Name string  `json:"name"`

	RoleIDs []RoleID `json:"roles,omitempty"`
	User    User     `json:"user,omitempty"`

	RequireColons bool `json:"require_colons,omitempty"`
	Managed       bool `json:"managed,omitempty"`
	Animated      bool `json:"animated,omitempty"`
	Available     bool `json:"available,omitempty"`
}

// IsCustom returns whether the emoji is a custom emoji.
func (e Emoji) IsCustom() bool {
	return e.ID.IsValid()
}

// IsUnicode returns whether the emoji is a unicode emoji.
func (e Emoji) IsUnicode() bool {
	return !e.IsCustom()
}

// APIString returns a string usable for sending over to the API.
func (e Emoji) APIString() string {
	if e.IsUnicode() {
		return e.Name
	}
	return e.Name + ":" + e.ID.String()
}

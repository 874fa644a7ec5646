package discord

import "time"

type User struct {
	ID            UserID    `json:"id"`
	Username      string    `json:"username"`
	Discriminator string    `json:"discriminator"`
	DisplayName   string    `json:"global_name,omitempty"`
	Avatar        Hash      `json:"avatar,omitempty"`
	Banner        Hash      `json:"banner,omitempty"`
	Bot           bool      `json:"bot,omitempty"`
	MFA           bool      `json:"mfa_enabled,omitempty"`
	Verified      bool      `json:"verified,omitempty"`
	Email         string    `json:"email,omitempty"`
	Flags         UserFlags `json:"flags,omitempty"`
	Locale        string    `json:"locale,omitempty"`
	AccentColor   uint32    `json:"accent_color,omitempty"`
}

// Hash is the string type for image hashes.
type Hash = string

// CreatedAt returns a time object representing when the user was created.
func (u User) CreatedAt() time.Time {
	return Snowflake(u.ID).Time()
}

// Mention returns a mention of the user.
func (u User) Mention() string {
	return u.ID.Mention()
}

// Tag returns a tag of the user. Users on the new username system have no
// discriminator.
func (u User) Tag() string {
	if u.Discriminator == "" || u.Discriminator == "0" {
		return u.Username
	}
	return u.Username + "#" + u.Discriminator
}

// AvatarURL returns the URL of the Avatar Image. It automatically detects a
// suitable type.
func (u User) AvatarURL() string {
	if u.Avatar == "" {
		return ""
	}
	return "https://cdn.discordapp.com/avatars/" + u.ID.String() + "/" + u.Avatar + ".png"
}

type UserFlags uint32

const NoFlag UserFlags = 0

const (
	Employee UserFlags = 1 << iota
	Partner
	HypeSquadEvents
	BugHunterLvl1
	_
	_
	HouseBravery
	HouseBrilliance
	HouseBalance
	EarlySupporter
	TeamUser
	_
	System
	_
	BugHunterLvl2
	_
	VerifiedBot
	VerifiedBotDeveloper
	CertifiedModerator
	BotHTTPInteractions
)

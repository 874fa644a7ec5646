package discord

import "time"

// Application is a Discord application, usually a bot.
type Application struct {
	ID          AppID  `json:"id"`
	Name        string `json:"name"`
	Icon        *Hash  `json:"icon"`
	Description string `json:"description"`

	RPCOrigins []string `json:"rpc_origins,omitempty"`

	BotPublic           bool `json:"bot_public"`
	BotRequireCodeGrant bool `json:"bot_require_code_grant"`

	TermsOfServiceURL string `json:"terms_of_service_url,omitempty"`
	PrivacyPolicyURL  string `json:"privacy_policy_url,omitempty"`

	// Owner is a partial user object.
	Owner *User `json:"owner,omitempty"`

	VerifyKey string `json:"verify_key"`

	GuildID GuildID `json:"guild_id,omitempty"`

	Flags ApplicationFlags `json:"flags,omitempty"`
}

// CreatedAt returns a time object representing when the application was
// created.
func (a Application) CreatedAt() time.Time {
	return Snowflake(a.ID).Time()
}

type ApplicationFlags uint32

const (
	AppFlagGatewayPresence ApplicationFlags = 1 << (iota + 12)
	AppFlagGatewayPresenceLimited
	AppFlagGatewayGuildMembers
	AppFlagGatewayGuildMembersLimited
	AppFlagVerificationPendingGuildLimit
	AppFlagEmbedded
	AppFlagGatewayMessageContent
	AppFlagGatewayMessageContentLimited
)

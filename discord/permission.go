package discord

import "strconv"

// Permissions is the Discord permission bitfield. It is sent over the wire as
// a string.
type Permissions uint64

var (
	_ interface {
		MarshalJSON() ([]byte, error)
		UnmarshalJSON([]byte) error
	} = (*Permissions)(nil)
)

const (
	// PermissionCreateInstantInvite allows creation of instant invites.
	PermissionCreateInstantInvite Permissions = 1 << iota
	// PermissionKickMembers allows kicking members.
	PermissionKickMembers
	// PermissionBanMembers allows banning members.
	PermissionBanMembers
	// PermissionAdministrator allows all permissions and bypasses channel
	// permission overwrites.
	PermissionAdministrator
	// PermissionManageChannels allows management and editing of channels.
	PermissionManageChannels
	// PermissionManageGuild allows management and editing of the guild.
	PermissionManageGuild
	// PermissionAddReactions allows adding reactions to messages.
	PermissionAddReactions
	// PermissionViewAuditLog allows viewing the audit log.
	PermissionViewAuditLog
	// PermissionPrioritySpeaker allows using priority speaker in a voice
	// channel.
	PermissionPrioritySpeaker
	// PermissionStream allows the user to go live.
	PermissionStream
	// PermissionViewChannel allows guild members to view a channel.
	PermissionViewChannel
	// PermissionSendMessages allows sending messages in a channel.
	PermissionSendMessages
	// PermissionSendTTSMessages allows sending of /tts messages.
	PermissionSendTTSMessages
	// PermissionManageMessages allows deletion of other users' messages.
	PermissionManageMessages
	// PermissionEmbedLinks embeds links sent by users.
	PermissionEmbedLinks
	// PermissionAttachFiles allows uploading images and files.
	PermissionAttachFiles
	// PermissionReadMessageHistory allows reading of message history.
	PermissionReadMessageHistory
	// PermissionMentionEveryone allows @everyone and @here mentions.
	PermissionMentionEveryone
	// PermissionUseExternalEmojis allows using custom emojis from other
	// servers.
	PermissionUseExternalEmojis
	// PermissionViewGuildInsights allows viewing guild insights.
	PermissionViewGuildInsights
	// PermissionConnect allows joining of a voice channel.
	PermissionConnect
	// PermissionSpeak allows speaking in a voice channel.
	PermissionSpeak
	// PermissionMuteMembers allows muting members in a voice channel.
	PermissionMuteMembers
	// PermissionDeafenMembers allows deafening members in a voice channel.
	PermissionDeafenMembers
	// PermissionMoveMembers allows moving members between voice channels.
	PermissionMoveMembers
	// PermissionUseVAD allows using voice activity detection.
	PermissionUseVAD
	// PermissionChangeNickname allows modification of own nickname.
	PermissionChangeNickname
	// PermissionManageNicknames allows modification of other users'
	// nicknames.
	PermissionManageNicknames
	// PermissionManageRoles allows management and editing of roles.
	PermissionManageRoles
	// PermissionManageWebhooks allows management and editing of webhooks.
	PermissionManageWebhooks
	// PermissionManageEmojisAndStickers allows managing emojis and stickers.
	PermissionManageEmojisAndStickers
	// PermissionUseSlashCommands allows using slash commands.
	PermissionUseSlashCommands

	PermissionAllText = 0 |
		PermissionViewChannel |
		PermissionSendMessages |
		PermissionSendTTSMessages |
		PermissionManageMessages |
		PermissionEmbedLinks |
		PermissionAttachFiles |
		PermissionReadMessageHistory |
		PermissionMentionEveryone |
		PermissionUseExternalEmojis |
		PermissionUseSlashCommands

	PermissionAll = 0 |
		PermissionCreateInstantInvite |
		PermissionKickMembers |
		PermissionBanMembers |
		PermissionAdministrator |
		PermissionManageChannels |
		PermissionManageGuild |
		PermissionAddReactions |
		PermissionViewAuditLog |
		PermissionPrioritySpeaker |
		PermissionStream |
		PermissionViewGuildInsights |
		PermissionChangeNickname |
		PermissionManageNicknames |
		PermissionManageRoles |
		PermissionManageWebhooks |
		PermissionManageEmojisAndStickers |
		PermissionAllText
)

// Has returns true if p contains the given permission, or if p has
// Administrator.
func (p Permissions) Has(perm Permissions) bool {
	if p&PermissionAdministrator == PermissionAdministrator {
		return true
	}
	return p&perm == perm
}

// Add adds the given permissions and returns the new set.
func (p Permissions) Add(perm Permissions) Permissions {
	return p | perm
}

func (p *Permissions) UnmarshalJSON(v []byte) error {
	str := string(v)
	if len(str) >= 2 && str[0] == '"' {
		str = str[1 : len(str)-1]
	}
	if str == "null" {
		*p = 0
		return nil
	}

	u, err := strconv.ParseUint(str, 10, 64)
	if err != nil {
		return err
	}

	*p = Permissions(u)
	return nil
}

func (p Permissions) MarshalJSON() ([]byte, error) {
	return []byte(`"` + strconv.FormatUint(uint64(p), 10) + `"`), nil
}

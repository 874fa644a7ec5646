package gateway

import "github.com/quaverlib/quaver/utils/ws"

// Op implements ws.Event.
func (*HelloEvent) Op() ws.OpCode { return HelloOp }

// EventType implements ws.Event.
func (*HelloEvent) EventType() ws.EventType { return "" }

// Op implements ws.Event.
func (*HeartbeatAckEvent) Op() ws.OpCode { return HeartbeatAckOp }

// EventType implements ws.Event.
func (*HeartbeatAckEvent) EventType() ws.EventType { return "" }

// Op implements ws.Event.
func (*ReconnectEvent) Op() ws.OpCode { return ReconnectOp }

// EventType implements ws.Event.
func (*ReconnectEvent) EventType() ws.EventType { return "" }

// Op implements ws.Event.
func (*InvalidSessionEvent) Op() ws.OpCode { return InvalidSessionOp }

// EventType implements ws.Event.
func (*InvalidSessionEvent) EventType() ws.EventType { return "" }

// Op implements ws.Event.
func (*ReadyEvent) Op() ws.OpCode { return DispatchOp }

// EventType implements ws.Event.
func (*ReadyEvent) EventType() ws.EventType { return "READY" }

// Op implements ws.Event.
func (*ResumedEvent) Op() ws.OpCode { return DispatchOp }

// EventType implements ws.Event.
func (*ResumedEvent) EventType() ws.EventType { return "RESUMED" }

// Op implements ws.Event.
func (*ChannelCreateEvent) Op() ws.OpCode { return DispatchOp }

// EventType implements ws.Event.
func (*ChannelCreateEvent) EventType() ws.EventType { return "CHANNEL_CREATE" }

// Op implements ws.Event.
func (*ChannelUpdateEvent) Op() ws.OpCode { return DispatchOp }

// EventType implements ws.Event.
func (*ChannelUpdateEvent) EventType() ws.EventType { return "CHANNEL_UPDATE" }

// Op implements ws.Event.
func (*ChannelDeleteEvent) Op() ws.OpCode { return DispatchOp }

// EventType implements ws.Event.
func (*ChannelDeleteEvent) EventType() ws.EventType { return "CHANNEL_DELETE" }

// Op implements ws.Event.
func (*GuildCreateEvent) Op() ws.OpCode { return DispatchOp }

// EventType implements ws.Event.
func (*GuildCreateEvent) EventType() ws.EventType { return "GUILD_CREATE" }

// Op implements ws.Event.
func (*GuildUpdateEvent) Op() ws.OpCode { return DispatchOp }

// EventType implements ws.Event.
func (*GuildUpdateEvent) EventType() ws.EventType { return "GUILD_UPDATE" }

// Op implements ws.Event.
func (*GuildDeleteEvent) Op() ws.OpCode { return DispatchOp }

// EventType implements ws.Event.
func (*GuildDeleteEvent) EventType() ws.EventType { return "GUILD_DELETE" }

// Op implements ws.Event.
func (*GuildMemberAddEvent) Op() ws.OpCode { return DispatchOp }

// EventType implements ws.Event.
func (*GuildMemberAddEvent) EventType() ws.EventType { return "GUILD_MEMBER_ADD" }

// Op implements ws.Event.
func (*GuildMemberRemoveEvent) Op() ws.OpCode { return DispatchOp }

// EventType implements ws.Event.
func (*GuildMemberRemoveEvent) EventType() ws.EventType { return "GUILD_MEMBER_REMOVE" }

// Op implements ws.Event.
func (*GuildMemberUpdateEvent) Op() ws.OpCode { return DispatchOp }

// EventType implements ws.Event.
func (*GuildMemberUpdateEvent) EventType() ws.EventType { return "GUILD_MEMBER_UPDATE" }

// Op implements ws.Event.
func (*GuildMembersChunkEvent) Op() ws.OpCode { return DispatchOp }

// EventType implements ws.Event.
func (*GuildMembersChunkEvent) EventType() ws.EventType { return "GUILD_MEMBERS_CHUNK" }

// Op implements ws.Event.
func (*GuildRoleCreateEvent) Op() ws.OpCode { return DispatchOp }

// EventType implements ws.Event.
func (*GuildRoleCreateEvent) EventType() ws.EventType { return "GUILD_ROLE_CREATE" }

// Op implements ws.Event.
func (*GuildRoleUpdateEvent) Op() ws.OpCode { return DispatchOp }

// EventType implements ws.Event.
func (*GuildRoleUpdateEvent) EventType() ws.EventType { return "GUILD_ROLE_UPDATE" }

// Op implements ws.Event.
func (*GuildRoleDeleteEvent) Op() ws.OpCode { return DispatchOp }

// EventType implements ws.Event.
func (*GuildRoleDeleteEvent) EventType() ws.EventType { return "GUILD_ROLE_DELETE" }

// Op implements ws.Event.
func (*MessageCreateEvent) Op() ws.OpCode { return DispatchOp }

// EventType implements ws.Event.
func (*MessageCreateEvent) EventType() ws.EventType { return "MESSAGE_CREATE" }

// Op implements ws.Event.
func (*MessageUpdateEvent) Op() ws.OpCode { return DispatchOp }

// EventType implements ws.Event.
func (*MessageUpdateEvent) EventType() ws.EventType { return "MESSAGE_UPDATE" }

// Op implements ws.Event.
func (*MessageDeleteEvent) Op() ws.OpCode { return DispatchOp }

// EventType implements ws.Event.
func (*MessageDeleteEvent) EventType() ws.EventType { return "MESSAGE_DELETE" }

// Op implements ws.Event.
func (*MessageDeleteBulkEvent) Op() ws.OpCode { return DispatchOp }

// EventType implements ws.Event.
func (*MessageDeleteBulkEvent) EventType() ws.EventType { return "MESSAGE_DELETE_BULK" }

// Op implements ws.Event.
func (*TypingStartEvent) Op() ws.OpCode { return DispatchOp }

// EventType implements ws.Event.
func (*TypingStartEvent) EventType() ws.EventType { return "TYPING_START" }

// Op implements ws.Event.
func (*UserUpdateEvent) Op() ws.OpCode { return DispatchOp }

// EventType implements ws.Event.
func (*UserUpdateEvent) EventType() ws.EventType { return "USER_UPDATE" }

// Op implements ws.Event.
func (*InteractionCreateEvent) Op() ws.OpCode { return DispatchOp }

// EventType implements ws.Event.
func (*InteractionCreateEvent) EventType() ws.EventType { return "INTERACTION_CREATE" }

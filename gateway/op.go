package gateway

import "github.com/quaverlib/quaver/utils/ws"

// Op codes that the gateway sends and receives.
const (
	DispatchOp            ws.OpCode = 0 // recv
	HeartbeatOp           ws.OpCode = 1 // send/recv
	IdentifyOp            ws.OpCode = 2 // send
	UpdatePresenceOp      ws.OpCode = 3 // send
	UpdateVoiceStateOp    ws.OpCode = 4 // send
	ResumeOp              ws.OpCode = 6 // send
	ReconnectOp           ws.OpCode = 7 // recv
	RequestGuildMembersOp ws.OpCode = 8 // send
	InvalidSessionOp      ws.OpCode = 9 // recv
	HelloOp               ws.OpCode = 10
	HeartbeatAckOp        ws.OpCode = 11
)

// OpUnmarshalers contains the ws.OpUnmarshalers for the gateway events. It
// is used by the gateway codec to look up the right event constructor.
var OpUnmarshalers = ws.NewOpUnmarshalers(
	// Gateway lifecycle events.
	func() ws.Event { return new(HelloEvent) },
	func() ws.Event { return new(ReadyEvent) },
	func() ws.Event { return new(ResumedEvent) },
	func() ws.Event { return new(InvalidSessionEvent) },
	func() ws.Event { return new(ReconnectEvent) },
	func() ws.Event { return new(HeartbeatCommand) },
	func() ws.Event { return new(HeartbeatAckEvent) },

	// Dispatch events.
	func() ws.Event { return new(ChannelCreateEvent) },
	func() ws.Event { return new(ChannelUpdateEvent) },
	func() ws.Event { return new(ChannelDeleteEvent) },
	func() ws.Event { return new(GuildCreateEvent) },
	func() ws.Event { return new(GuildUpdateEvent) },
	func() ws.Event { return new(GuildDeleteEvent) },
	func() ws.Event { return new(GuildMemberAddEvent) },
	func() ws.Event { return new(GuildMemberRemoveEvent) },
	func() ws.Event { return new(GuildMemberUpdateEvent) },
	func() ws.Event { return new(GuildMembersChunkEvent) },
	func() ws.Event { return new(GuildRoleCreateEvent) },
	func() ws.Event { return new(GuildRoleUpdateEvent) },
	func() ws.Event { return new(GuildRoleDeleteEvent) },
	func() ws.Event { return new(MessageCreateEvent) },
	func() ws.Event { return new(MessageUpdateEvent) },
	func() ws.Event { return new(MessageDeleteEvent) },
	func() ws.Event { return new(MessageDeleteBulkEvent) },
	func() ws.Event { return new(TypingStartEvent) },
	func() ws.Event { return new(UserUpdateEvent) },
	func() ws.Event { return new(InteractionCreateEvent) },
)

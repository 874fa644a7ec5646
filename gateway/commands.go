package gateway

import (
	"context"
	"runtime"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/time/rate"

	"github.com/quaverlib/quaver/discord"
	"github.com/quaverlib/quaver/utils/ws"
)

// Identity is used as the default identity when initializing a new Gateway.
var Identity = IdentifyProperties{
	OS:      runtime.GOOS,
	Browser: "quaver",
	Device:  "quaver",
}

// IdentifyProperties is the connection properties object of an
// IdentifyCommand.
type IdentifyProperties struct {
	OS      string `json:"os"`
	Browser string `json:"browser"`
	Device  string `json:"device"`
}

// IdentifyCommand is a command for Op 2. It is sent by the client to trigger
// the initial handshake.
type IdentifyCommand struct {
	Token      string             `json:"token"`
	Properties IdentifyProperties `json:"properties"`

	Compress       bool `json:"compress,omitempty"`        // true
	LargeThreshold uint `json:"large_threshold,omitempty"` // 50

	Intents Intents `json:"intents"`
}

// Identifier wraps an IdentifyCommand with the rate limiters mandated by
// Discord for identifying.
type Identifier struct {
	IdentifyCommand

	IdentifyShortLimit  *rate.Limiter `json:"-"`
	IdentifyGlobalLimit *rate.Limiter `json:"-"`
}

// DefaultIdentifier creates a new default Identifier.
func DefaultIdentifier(token string) *Identifier {
	return NewIdentifier(IdentifyCommand{
		Token:      token,
		Properties: Identity,

		Compress:       true,
		LargeThreshold: 50,
	})
}

// NewIdentifier creates a new identifier with the given IdentifyCommand and
// default rate limiters.
func NewIdentifier(data IdentifyCommand) *Identifier {
	return &Identifier{
		IdentifyCommand:     data,
		IdentifyShortLimit:  rate.NewLimiter(rate.Every(5*time.Second), 1),
		IdentifyGlobalLimit: rate.NewLimiter(rate.Every(24*time.Hour), 1000),
	}
}

// Wait waits for the identify rate limiters to pass.
func (id *Identifier) Wait(ctx context.Context) error {
	if err := id.IdentifyShortLimit.Wait(ctx); err != nil {
		return errors.Wrap(err, "can't wait for short limit")
	}
	if err := id.IdentifyGlobalLimit.Wait(ctx); err != nil {
		return errors.Wrap(err, "can't wait for global limit")
	}
	return nil
}

// ResumeCommand is a command for Op 6. It replays missed events when a
// disconnected client resumes.
type ResumeCommand struct {
	Token     string `json:"token"`
	SessionID string `json:"session_id"`
	Sequence  int64  `json:"seq"`
}

// HeartbeatCommand is a command for Op 1. It is the last sequence number to
// be sent.
type HeartbeatCommand int64

// RequestGuildMembersCommand is a command for Op 8.
type RequestGuildMembersCommand struct {
	// GuildIDs contains the IDs of the guilds to request data from.
	GuildIDs []discord.GuildID `json:"guild_id"`
	// UserIDs contains the IDs of the users to request data for. This field
	// is mutually exclusive with Query.
	UserIDs []discord.UserID `json:"user_ids,omitempty"`
	// Query is a string prefix to match usernames against. This field is
	// mutually exclusive with UserIDs.
	Query string `json:"query"`
	// Limit is the maximum number of members to send matching the Query. A
	// limit of 0 with an empty Query returns all members.
	Limit uint `json:"limit"`
	// Presences is whether to request the presences of the matched members.
	Presences bool `json:"presences,omitempty"`
	// Nonce is echoed back in the GuildMembersChunkEvent.
	Nonce string `json:"nonce,omitempty"`
}

// Op implements ws.Event.
func (*IdentifyCommand) Op() ws.OpCode { return IdentifyOp }

// EventType implements ws.Event.
func (*IdentifyCommand) EventType() ws.EventType { return "" }

// Op implements ws.Event.
func (*ResumeCommand) Op() ws.OpCode { return ResumeOp }

// EventType implements ws.Event.
func (*ResumeCommand) EventType() ws.EventType { return "" }

// Op implements ws.Event.
func (*HeartbeatCommand) Op() ws.OpCode { return HeartbeatOp }

// EventType implements ws.Event.
func (*HeartbeatCommand) EventType() ws.EventType { return "" }

// Op implements ws.Event.
func (*RequestGuildMembersCommand) Op() ws.OpCode { return RequestGuildMembersOp }

// EventType implements ws.Event.
func (*RequestGuildMembersCommand) EventType() ws.EventType { return "" }

package bot

import (
	"context"
	"regexp"
	"strings"

	"github.com/pkg/errors"

	"github.com/quaverlib/quaver/discord"
	"github.com/quaverlib/quaver/gateway"
)

type (
	// RunFunc is a command handler.
	RunFunc func(ctx *Context) error
	// CheckFunc guards an invocation. A non-nil error rejects the command;
	// the error is surfaced wrapped in a CheckError.
	CheckFunc func(ctx *Context) error
	// HookFunc runs around a command invocation.
	HookFunc func(ctx *Context)
)

// nameRegex is the pattern command names and aliases must match. It matches
// what Discord allows for application command names.
var nameRegex = regexp.MustCompile(`^[\w-]{1,32}$`)

// Command is a single prefix command.
type Command struct {
	// Name is the primary name the command is invoked by.
	Name string
	// Aliases are alternative names, resolved exactly like Name.
	Aliases []string
	// Description is shown in help listings.
	Description string
	// Hidden commands are resolvable but excluded from listings.
	Hidden bool

	// Run is the handler. It must be non-nil.
	Run RunFunc
	// Checks run before the cooldown is reserved; all must pass.
	Checks []CheckFunc
	// Cooldown, if non-nil, rate limits invocations per its bucket type.
	Cooldown *Cooldown

	cog       *Cog
	cooldowns *CooldownMapping
}

// Cog returns the cog this command was registered through, if any.
func (c *Command) Cog() *Cog { return c.cog }

// Matches reports whether name resolves to this command. Matching is
// case-insensitive across the name and all aliases.
func (c *Command) Matches(name string) bool {
	if strings.EqualFold(c.Name, name) {
		return true
	}
	for _, alias := range c.Aliases {
		if strings.EqualFold(alias, name) {
			return true
		}
	}
	return false
}

// ResetCooldown drops the cooldown bucket that the given message maps to.
func (c *Command) ResetCooldown(msg *gateway.MessageCreateEvent) {
	if c.cooldowns != nil {
		c.cooldowns.Reset(msg)
	}
}

func (c *Command) validate() error {
	if c.Run == nil {
		return errors.New("command has no handler")
	}
	if !nameRegex.MatchString(c.Name) {
		return errors.Errorf("invalid command name %q", c.Name)
	}
	for _, alias := range c.Aliases {
		if !nameRegex.MatchString(alias) {
			return errors.Errorf("invalid command alias %q", alias)
		}
	}
	return nil
}

// Replier is the surface a command uses to respond. api.Client satisfies it.
type Replier interface {
	SendMessage(channelID discord.ChannelID, content string, embeds ...discord.Embed) (*discord.Message, error)
	SendMessageReply(channelID discord.ChannelID, content string, referenceID discord.MessageID) (*discord.Message, error)
	SendEmbeds(channelID discord.ChannelID, embeds ...discord.Embed) (*discord.Message, error)
}

// Context carries everything a command invocation needs. It embeds the
// context.Context that scopes the invocation.
type Context struct {
	context.Context

	// Message is the triggering message event.
	Message *gateway.MessageCreateEvent
	// Command is the resolved command.
	Command *Command
	// Prefix is the prefix that matched.
	Prefix string
	// Invoked is the name or alias the command was invoked by.
	Invoked string
	// RawArgs is everything after the command name, untrimmed of quotes.
	RawArgs string
	// Args is RawArgs split into words, honoring double quotes.
	Args []string

	replier Replier
}

// Reply sends content to the channel the command was invoked in, as a reply
// to the triggering message.
func (ctx *Context) Reply(content string) (*discord.Message, error) {
	return ctx.replier.SendMessageReply(ctx.Message.ChannelID, content, ctx.Message.ID)
}

// Send sends content to the channel the command was invoked in.
func (ctx *Context) Send(content string) (*discord.Message, error) {
	return ctx.replier.SendMessage(ctx.Message.ChannelID, content)
}

// SendEmbeds sends embeds to the channel the command was invoked in.
func (ctx *Context) SendEmbeds(embeds ...discord.Embed) (*discord.Message, error) {
	return ctx.replier.SendEmbeds(ctx.Message.ChannelID, embeds...)
}

// splitArgs splits s on whitespace, keeping double-quoted spans together.
// Quotes around a span are stripped; an unterminated quote runs to the end.
func splitArgs(s string) []string {
	var args []string
	var quoted bool
	var cur strings.Builder

	flush := func() {
		if cur.Len() > 0 {
			args = append(args, cur.String())
			cur.Reset()
		}
	}

	for _, r := range s {
		switch {
		case r == '"':
			quoted = !quoted
			flush()
		case !quoted && (r == ' ' || r == '\t' || r == '\n'):
			flush()
		default:
			cur.WriteRune(r)
		}
	}
	flush()

	return args
}

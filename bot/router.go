// Package bot implements a prefix command framework: command registration
// with aliases, a resolution and invocation pipeline with checks, cooldown
// buckets and hooks, and cog-style grouping.
package bot

import (
	"context"
	"strings"
	"sync"

	"github.com/pkg/errors"

	"github.com/quaverlib/quaver/gateway"
	"github.com/quaverlib/quaver/session"
)

// Prefixer returns the prefix that matched the message content, or false if
// none did. The router strips the returned prefix before resolving.
type Prefixer func(msg *gateway.MessageCreateEvent) (string, bool)

// NewPrefixer builds a Prefixer matching any of the given static prefixes.
func NewPrefixer(prefixes ...string) Prefixer {
	return func(msg *gateway.MessageCreateEvent) (string, bool) {
		for _, prefix := range prefixes {
			if strings.HasPrefix(msg.Content, prefix) {
				return prefix, true
			}
		}
		return "", false
	}
}

// Router resolves prefixed messages to commands and runs them through the
// invocation pipeline: prefix match, command resolution, checks, cooldown
// reservation, before hook, handler, after hook.
type Router struct {
	// Prefixer decides whether a message triggers the router.
	Prefixer Prefixer
	// IgnoreBots drops messages authored by bots. Default true via NewRouter.
	IgnoreBots bool
	// BeforeInvoke, if non-nil, runs after the cooldown is reserved and
	// before the handler.
	BeforeInvoke HookFunc
	// AfterInvoke, if non-nil, runs once the handler ran, whether or not it
	// errored.
	AfterInvoke HookFunc

	replier Replier

	mutex    sync.RWMutex
	commands []*Command
	cogs     map[string]*Cog
	checks   []CheckFunc
}

// NewRouter creates a router that replies through the given Replier and
// triggers on the given static prefixes.
func NewRouter(replier Replier, prefixes ...string) *Router {
	return &Router{
		Prefixer:   NewPrefixer(prefixes...),
		IgnoreBots: true,
		replier:    replier,
		cogs:       map[string]*Cog{},
	}
}

// AddCommand registers a command. It errors if the command is invalid or any
// of its names is already registered.
func (r *Router) AddCommand(cmd *Command) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if err := r.validateUnregistered(cmd); err != nil {
		return err
	}

	r.register(cmd)
	return nil
}

// MustAddCommand is AddCommand but panics on error. Useful for static
// registration at startup.
func (r *Router) MustAddCommand(cmd *Command) {
	if err := r.AddCommand(cmd); err != nil {
		panic("bot: " + err.Error())
	}
}

// RemoveCommand removes the command resolved by name. It is a no-op for
// unknown names.
func (r *Router) RemoveCommand(name string) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if cmd := r.lookup(name); cmd != nil {
		r.unregister(cmd)
	}
}

// Command resolves name (or an alias) to a registered command.
func (r *Router) Command(name string) *Command {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	return r.lookup(name)
}

// Commands returns the registered commands, excluding hidden ones.
func (r *Router) Commands() []*Command {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	cmds := make([]*Command, 0, len(r.commands))
	for _, cmd := range r.commands {
		if !cmd.Hidden {
			cmds = append(cmds, cmd)
		}
	}
	return cmds
}

// AddCheck adds a check that guards every command on this router.
func (r *Router) AddCheck(fn CheckFunc) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.checks = append(r.checks, fn)
}

// Bind subscribes the router to the session's message events. Pipeline errors
// are passed to onErr along with the invocation context; onErr may be nil to
// drop them. The returned function unsubscribes.
func (r *Router) Bind(s *session.Session, onErr func(*Context, error)) (rm func()) {
	return session.AddHandler(s, func(msg *gateway.MessageCreateEvent) {
		ctx, err := r.HandleMessage(context.Background(), msg)
		if err != nil && onErr != nil {
			onErr(ctx, err)
		}
	})
}

// HandleMessage runs the full pipeline for one message. It returns nil, nil
// if the message carries no prefix. The returned Context is non-nil whenever
// a command was resolved, including when the invocation errored.
func (r *Router) HandleMessage(ctx context.Context, msg *gateway.MessageCreateEvent) (*Context, error) {
	if r.IgnoreBots && msg.Author.Bot {
		return nil, nil
	}

	prefix, ok := r.Prefixer(msg)
	if !ok {
		return nil, nil
	}

	stripped := strings.TrimSpace(strings.TrimPrefix(msg.Content, prefix))
	if stripped == "" {
		return nil, nil
	}

	name, rawArgs := stripped, ""
	if i := strings.IndexAny(stripped, " \t\n"); i >= 0 {
		name, rawArgs = stripped[:i], strings.TrimSpace(stripped[i+1:])
	}

	cmd := r.Command(name)
	if cmd == nil {
		return nil, &UnknownCommandError{Name: name, Prefix: prefix}
	}

	cctx := &Context{
		Context: ctx,
		Message: msg,
		Command: cmd,
		Prefix:  prefix,
		Invoked: name,
		RawArgs: rawArgs,
		Args:    splitArgs(rawArgs),
		replier: r.replier,
	}

	return cctx, r.invoke(cctx)
}

// invoke runs checks, reserves the cooldown and calls the handler with its
// hooks. The cooldown token is only consumed once every check has passed.
func (r *Router) invoke(ctx *Context) error {
	cmd := ctx.Command

	r.mutex.RLock()
	checks := make([]CheckFunc, 0, len(r.checks)+len(cmd.Checks)+1)
	checks = append(checks, r.checks...)
	if cmd.cog != nil && cmd.cog.Check != nil {
		checks = append(checks, cmd.cog.Check)
	}
	checks = append(checks, cmd.Checks...)
	r.mutex.RUnlock()

	for _, check := range checks {
		if err := check(ctx); err != nil {
			return &CheckError{Command: cmd.Name, Err: err}
		}
	}

	if cmd.cooldowns != nil {
		if retryAfter, ok := cmd.cooldowns.Reserve(ctx.Message); !ok {
			return &OnCooldownError{Command: cmd.Name, RetryAfter: retryAfter}
		}
	}

	if r.BeforeInvoke != nil {
		r.BeforeInvoke(ctx)
	}

	err := cmd.Run(ctx)

	if r.AfterInvoke != nil {
		r.AfterInvoke(ctx)
	}

	return err
}

// lookup must be called with the mutex held.
func (r *Router) lookup(name string) *Command {
	for _, cmd := range r.commands {
		if cmd.Matches(name) {
			return cmd
		}
	}
	return nil
}

// validateUnregistered must be called with the mutex held.
func (r *Router) validateUnregistered(cmd *Command) error {
	if err := cmd.validate(); err != nil {
		return err
	}

	for _, name := range append([]string{cmd.Name}, cmd.Aliases...) {
		if r.lookup(name) != nil {
			return errors.Errorf("command name %q is already registered", name)
		}
	}
	return nil
}

// register must be called with the mutex held.
func (r *Router) register(cmd *Command) {
	if cmd.Cooldown != nil {
		cmd.cooldowns = NewCooldownMapping(*cmd.Cooldown)
	}
	r.commands = append(r.commands, cmd)
}

// unregister must be called with the mutex held.
func (r *Router) unregister(cmd *Command) {
	for i, c := range r.commands {
		if c == cmd {
			r.commands = append(r.commands[:i], r.commands[i+1:]...)
			break
		}
	}
	cmd.cooldowns = nil
}

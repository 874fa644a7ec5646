// Package cmdroute routes slash command and autocompletion interactions to
// registered handlers, with middleware support.
package cmdroute

import (
	"context"

	"github.com/quaverlib/quaver/api"
	"github.com/quaverlib/quaver/discord"
)

// Router dispatches command interactions by name, recursing into subrouters
// for subcommands. The zero value is usable.
type Router struct {
	routes map[string]route
	mws    []Middleware
	parent *Router
}

// route is one name in a router. A name is either a subrouter or a command,
// never both; a command may additionally carry an autocompleter.
type route struct {
	sub          *Router
	command      CommandHandler
	autocomplete Autocompleter
}

var _ InteractionHandler = (*Router)(nil)

// NewRouter creates an empty Router.
func NewRouter() *Router {
	r := &Router{}
	r.init()
	return r
}

func (r *Router) init() {
	if r.routes == nil {
		r.routes = make(map[string]route, 4)
	}
}

// Use appends middlewares to this router. They run after any middlewares of
// parent routers, in the order added.
func (r *Router) Use(mws ...Middleware) {
	r.init()
	r.mws = append(r.mws, mws...)
}

// Sub routes every subcommand under name to a new subrouter, which f
// populates. It panics if name is already a command.
func (r *Router) Sub(name string, f func(r *Router)) {
	r.init()

	if existing, ok := r.routes[name]; ok && existing.sub == nil {
		panic("cmdroute: command " + name + " already exists")
	}

	sub := NewRouter()
	sub.parent = r
	f(sub)

	r.routes[name] = route{sub: sub}
}

// Add registers the handler for a command name. It panics if the name is
// taken.
func (r *Router) Add(name string, h CommandHandler) {
	r.init()

	if _, ok := r.routes[name]; ok {
		panic("cmdroute: command " + name + " already exists")
	}

	r.routes[name] = route{command: h}
}

// AddFunc registers a CommandHandlerFunc for a command name.
func (r *Router) AddFunc(name string, f CommandHandlerFunc) {
	r.Add(name, f)
}

// AddAutocompleter attaches an autocompleter to an existing command. It
// panics if the command was never added.
func (r *Router) AddAutocompleter(name string, ac Autocompleter) {
	r.init()

	existing, ok := r.routes[name]
	if !ok || existing.command == nil {
		panic("cmdroute: command " + name + " does not exist or is not a (sub)command")
	}

	existing.autocomplete = ac
	r.routes[name] = existing
}

// AddAutocompleterFunc attaches an AutocompleterFunc to an existing command.
func (r *Router) AddAutocompleterFunc(name string, f AutocompleterFunc) {
	r.AddAutocompleter(name, f)
}

// HandleInteraction implements InteractionHandler. Interactions that aren't
// commands or autocompletions return nil.
func (r *Router) HandleInteraction(ctx context.Context, ev *discord.InteractionEvent) *api.InteractionResponse {
	switch data := ev.Data.(type) {
	case *discord.CommandInteraction:
		return r.HandleCommand(ctx, ev, data)
	case *discord.AutocompleteInteraction:
		return r.HandleAutocompletion(ctx, ev, data)
	default:
		return nil
	}
}

// wrap applies the middlewares of this router and all its ancestors around h.
// Ancestor middlewares end up outermost, so they run first.
func (r *Router) wrap(h InteractionHandler) InteractionHandler {
	for node := r; node != nil; node = node.parent {
		for i := len(node.mws) - 1; i >= 0; i-- {
			h = node.mws[i](h)
		}
	}
	return h
}

// HandleCommand resolves data down the router tree and invokes the command's
// handler with middlewares applied. Unknown commands return nil.
func (r *Router) HandleCommand(ctx context.Context, ev *discord.InteractionEvent, data *discord.CommandInteraction) *api.InteractionResponse {
	optType := discord.SubcommandOptionType
	if commandIsGroup(data.Options) {
		optType = discord.SubcommandGroupOptionType
	}

	owner, handler, opt, ok := r.resolveCommand(discord.CommandInteractionOption{
		Type:    optType,
		Name:    data.Name,
		Options: data.Options,
	})
	if !ok {
		return nil
	}

	wrapped := owner.wrap(InteractionHandlerFunc(
		func(ctx context.Context, ev *discord.InteractionEvent) *api.InteractionResponse {
			resp := handler.HandleCommand(ctx, CommandData{
				CommandInteractionOption: opt,
				Event:                    ev,
			})
			if resp == nil {
				return nil
			}

			return &api.InteractionResponse{
				Type: api.MessageInteractionWithSource,
				Data: resp,
			}
		},
	))

	return wrapped.HandleInteraction(ctx, ev)
}

// resolveCommand walks the option tree until it lands on a command handler,
// returning the router that owns it and the innermost option.
func (r *Router) resolveCommand(opt discord.CommandInteractionOption) (*Router, CommandHandler, discord.CommandInteractionOption, bool) {
	found, ok := r.routes[opt.Name]
	if !ok {
		return nil, nil, opt, false
	}

	switch {
	case found.sub != nil:
		if opt.Type == discord.SubcommandGroupOptionType && len(opt.Options) == 1 {
			return found.sub.resolveCommand(opt.Options[0])
		}
	case found.command != nil:
		if opt.Type == discord.SubcommandOptionType {
			return r, found.command, opt, true
		}
	}

	return nil, nil, opt, false
}

// HandleAutocompletion is HandleCommand's counterpart for autocompletion
// interactions.
func (r *Router) HandleAutocompletion(ctx context.Context, ev *discord.InteractionEvent, data *discord.AutocompleteInteraction) *api.InteractionResponse {
	optType := discord.SubcommandOptionType
	if autocompleteIsGroup(data.Options) {
		optType = discord.SubcommandGroupOptionType
	}

	owner, completer, opt, ok := r.resolveAutocompleter(discord.AutocompleteOption{
		Type:    optType,
		Name:    data.Name,
		Options: data.Options,
	})
	if !ok {
		return nil
	}

	wrapped := owner.wrap(InteractionHandlerFunc(
		func(ctx context.Context, ev *discord.InteractionEvent) *api.InteractionResponse {
			choices := completer.Autocomplete(ctx, AutocompleteData{
				AutocompleteOption: opt,
				Event:              ev,
			})
			if choices == nil {
				return nil
			}

			return &api.InteractionResponse{
				Type: api.AutocompleteResult,
				Data: &api.InteractionResponseData{
					Choices: choices,
				},
			}
		},
	))

	return wrapped.HandleInteraction(ctx, ev)
}

func (r *Router) resolveAutocompleter(opt discord.AutocompleteOption) (*Router, Autocompleter, discord.AutocompleteOption, bool) {
	found, ok := r.routes[opt.Name]
	if !ok {
		return nil, nil, opt, false
	}

	switch {
	case found.sub != nil:
		if opt.Type == discord.SubcommandGroupOptionType && len(opt.Options) == 1 {
			return found.sub.resolveAutocompleter(opt.Options[0])
		}
	case found.autocomplete != nil:
		if opt.Type == discord.SubcommandOptionType {
			return r, found.autocomplete, opt, true
		}
	}

	return nil, nil, opt, false
}

// isSubOptionType reports whether an option type nests further commands,
// meaning the interaction's top-level name refers to a group rather than a
// leaf command.
func isSubOptionType(t discord.CommandOptionType) bool {
	return t == discord.SubcommandOptionType || t == discord.SubcommandGroupOptionType
}

func commandIsGroup(opts []discord.CommandInteractionOption) bool {
	for _, opt := range opts {
		if isSubOptionType(opt.Type) {
			return true
		}
	}
	return false
}

func autocompleteIsGroup(opts []discord.AutocompleteOption) bool {
	for _, opt := range opts {
		if isSubOptionType(opt.Type) {
			return true
		}
	}
	return false
}

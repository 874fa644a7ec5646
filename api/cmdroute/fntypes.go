package cmdroute

import (
	"context"

	"github.com/quaverlib/quaver/api"
	"github.com/quaverlib/quaver/discord"
)

// InteractionHandler handles one incoming interaction event and returns its
// response.
type InteractionHandler interface {
	// HandleInteraction returns the response synchronously. A deferred
	// follow-up can replace the real response for slow handlers.
	HandleInteraction(context.Context, *discord.InteractionEvent) *api.InteractionResponse
}

// InteractionHandlerFunc adapts a function into an InteractionHandler.
type InteractionHandlerFunc func(context.Context, *discord.InteractionEvent) *api.InteractionResponse

var _ InteractionHandler = InteractionHandlerFunc(nil)

// HandleInteraction implements InteractionHandler.
func (f InteractionHandlerFunc) HandleInteraction(ctx context.Context, e *discord.InteractionEvent) *api.InteractionResponse {
	return f(ctx, e)
}

// Middleware wraps an InteractionHandler with extra behavior.
type Middleware = func(next InteractionHandler) InteractionHandler

// CommandData carries the resolved command option and its interaction event
// into a CommandHandler.
type CommandData struct {
	discord.CommandInteractionOption
	Event *discord.InteractionEvent
}

// CommandHandler is a slash command handler.
type CommandHandler interface {
	// HandleCommand returns the response data synchronously. A nil return
	// sends no response.
	HandleCommand(ctx context.Context, data CommandData) *api.InteractionResponseData
}

// CommandHandlerFunc adapts a function into a CommandHandler.
type CommandHandlerFunc func(ctx context.Context, data CommandData) *api.InteractionResponseData

var _ CommandHandler = CommandHandlerFunc(nil)

// HandleCommand implements CommandHandler.
func (f CommandHandlerFunc) HandleCommand(ctx context.Context, data CommandData) *api.InteractionResponseData {
	return f(ctx, data)
}

// AutocompleteData carries the resolved autocomplete option and its
// interaction event into an Autocompleter.
type AutocompleteData struct {
	discord.AutocompleteOption
	Event *discord.InteractionEvent
}

// Autocompleter handles autocompletion events.
type Autocompleter interface {
	// Autocomplete returns the choices synchronously. A nil return sends no
	// response; an empty non-nil slice sends an empty choice list.
	Autocomplete(ctx context.Context, data AutocompleteData) api.AutocompleteChoices
}

// AutocompleterFunc adapts a function into an Autocompleter.
type AutocompleterFunc func(ctx context.Context, data AutocompleteData) api.AutocompleteChoices

var _ Autocompleter = (AutocompleterFunc)(nil)

// Autocomplete implements Autocompleter.
func (f AutocompleterFunc) Autocomplete(ctx context.Context, data AutocompleteData) api.AutocompleteChoices {
	return f(ctx, data)
}

package cmdroute

import (
	"context"
	"time"

	"github.com/quaverlib/quaver/api"
	"github.com/quaverlib/quaver/discord"
)

type ctxKey uint8

const (
	_ ctxKey = iota
	deferTicketCtx
)

// UseContext replaces the handler context with ctx. Register it once, on the
// outermost router.
func UseContext(ctx context.Context) Middleware {
	return func(next InteractionHandler) InteractionHandler {
		return InteractionHandlerFunc(func(_ context.Context, ev *discord.InteractionEvent) *api.InteractionResponse {
			return next.HandleInteraction(ctx, ev)
		})
	}
}

// FollowUpSender sends follow-up messages. *api.Client satisfies it.
type FollowUpSender interface {
	CreateInteractionFollowup(appID discord.AppID, token string, data api.InteractionResponseData) (*discord.Message, error)
}

// DeferOpts configures Deferrable.
type DeferOpts struct {
	// Timeout is how long a handler may run before the response is deferred.
	// Defaults to 1.5 seconds.
	Timeout time.Duration
	// Flags is applied to every response.
	Flags discord.MessageFlags
	// Error receives follow-up send failures. Optional.
	Error func(err error)
	// Done receives the sent follow-up message. Optional.
	Done func(*discord.Message)
}

// Deferrable wraps handlers so that slow ones automatically answer with a
// deferred response; the handler's eventual return is then delivered as a
// follow-up message instead.
func Deferrable(client FollowUpSender, opts DeferOpts) Middleware {
	if opts.Timeout == 0 {
		opts.Timeout = 1500 * time.Millisecond
	}

	return func(next InteractionHandler) InteractionHandler {
		return InteractionHandlerFunc(func(ctx context.Context, ev *discord.InteractionEvent) *api.InteractionResponse {
			deadline, expire := context.WithTimeout(ctx, opts.Timeout)
			defer expire()

			respCh := make(chan *api.InteractionResponse, 1)

			go func() {
				ticket := DeferTicket{ctx: deadline, deferFn: expire}
				ctx := context.WithValue(ctx, deferTicketCtx, ticket)

				respCh <- applyFlags(next.HandleInteraction(ctx, ev), opts.Flags)
			}()

			select {
			case resp := <-respCh:
				return resp

			case <-deadline.Done():
				// Too slow. Answer with a deferral now and promote the real
				// response to a follow-up once it lands.
				go func() {
					sendFollowUp(client, ev, <-respCh, opts)
				}()

				return &api.InteractionResponse{
					Type: api.DeferredMessageInteractionWithSource,
					Data: &api.InteractionResponseData{
						Flags: opts.Flags,
					},
				}
			}
		})
	}
}

func applyFlags(resp *api.InteractionResponse, flags discord.MessageFlags) *api.InteractionResponse {
	if resp == nil || flags == 0 {
		return resp
	}

	if resp.Data == nil {
		resp.Data = &api.InteractionResponseData{Flags: flags}
	} else {
		resp.Data.Flags = flags
	}
	return resp
}

func sendFollowUp(client FollowUpSender, ev *discord.InteractionEvent, resp *api.InteractionResponse, opts DeferOpts) {
	if resp == nil || resp.Data == nil {
		return
	}

	m, err := client.CreateInteractionFollowup(ev.AppID, ev.Token, *resp.Data)
	if err != nil {
		if opts.Error != nil {
			opts.Error(err)
		}
		return
	}
	if opts.Done != nil {
		opts.Done(m)
	}
}

// DeferTicket lets a handler defer its own response ahead of the timeout.
type DeferTicket struct {
	ctx     context.Context
	deferFn context.CancelFunc
}

// DeferTicketFromContext extracts the ticket placed by Deferrable, or a zero
// ticket outside of one.
func DeferTicketFromContext(ctx context.Context) DeferTicket {
	ticket, _ := ctx.Value(deferTicketCtx).(DeferTicket)
	return ticket
}

// IsDeferred reports whether the response has already been deferred.
func (t DeferTicket) IsDeferred() bool {
	return t.Context().Err() != nil
}

// Context is done once the response is deferred. The zero ticket returns the
// background context.
func (t DeferTicket) Context() context.Context {
	if t.ctx == nil {
		return context.Background()
	}
	return t.ctx
}

// Defer marks the response as deferred immediately. The zero ticket panics.
func (t DeferTicket) Defer() {
	t.deferFn()
}

package cmdroute

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/quaverlib/quaver/api"
	"github.com/quaverlib/quaver/discord"
	"github.com/quaverlib/quaver/utils/json/option"
)

func commandEvent(name string, options ...discord.CommandInteractionOption) *discord.InteractionEvent {
	return &discord.InteractionEvent{
		ID:    1,
		AppID: 2,
		Token: "token",
		Data: &discord.CommandInteraction{
			ID:      3,
			Name:    name,
			Options: options,
		},
	}
}

func textResponse(content string) *api.InteractionResponse {
	return &api.InteractionResponse{
		Type: api.MessageInteractionWithSource,
		Data: &api.InteractionResponseData{
			Content: option.NewNullableString(content),
		},
	}
}

func TestRouterCommand(t *testing.T) {
	r := NewRouter()
	r.AddFunc("ping", func(ctx context.Context, data CommandData) *api.InteractionResponseData {
		return &api.InteractionResponseData{
			Content: option.NewNullableString("pong"),
		}
	})

	resp := r.HandleInteraction(context.Background(), commandEvent("ping"))
	if !reflect.DeepEqual(resp, textResponse("pong")) {
		t.Errorf("unexpected response: %#v", resp)
	}
}

func TestRouterUnknownCommand(t *testing.T) {
	r := NewRouter()
	r.AddFunc("ping", func(ctx context.Context, data CommandData) *api.InteractionResponseData {
		t.Fatal("ping handler called for unknown command")
		return nil
	})

	if resp := r.HandleInteraction(context.Background(), commandEvent("pong")); resp != nil {
		t.Errorf("expected nil response, got %#v", resp)
	}
}

func TestRouterSubcommand(t *testing.T) {
	r := NewRouter()
	r.Sub("alert", func(r *Router) {
		r.AddFunc("set", func(ctx context.Context, data CommandData) *api.InteractionResponseData {
			if data.Name != "set" {
				t.Error("unexpected option name:", data.Name)
			}
			return &api.InteractionResponseData{
				Content: option.NewNullableString("alert set"),
			}
		})
	})

	ev := commandEvent("alert", discord.CommandInteractionOption{
		Type: discord.SubcommandOptionType,
		Name: "set",
	})

	resp := r.HandleInteraction(context.Background(), ev)
	if !reflect.DeepEqual(resp, textResponse("alert set")) {
		t.Errorf("unexpected response: %#v", resp)
	}
}

func TestRouterMiddlewareOrder(t *testing.T) {
	var trace []string

	pushMW := func(name string) Middleware {
		return func(next InteractionHandler) InteractionHandler {
			return InteractionHandlerFunc(func(ctx context.Context, ev *discord.InteractionEvent) *api.InteractionResponse {
				trace = append(trace, name)
				return next.HandleInteraction(ctx, ev)
			})
		}
	}

	r := NewRouter()
	r.Use(pushMW("outer"))
	r.Use(pushMW("inner"))
	r.Sub("group", func(r *Router) {
		r.Use(pushMW("sub"))
		r.AddFunc("cmd", func(ctx context.Context, data CommandData) *api.InteractionResponseData {
			trace = append(trace, "handler")
			return nil
		})
	})

	ev := commandEvent("group", discord.CommandInteractionOption{
		Type: discord.SubcommandOptionType,
		Name: "cmd",
	})
	r.HandleInteraction(context.Background(), ev)

	want := []string{"outer", "inner", "sub", "handler"}
	if !reflect.DeepEqual(trace, want) {
		t.Errorf("unexpected middleware order: got %v, want %v", trace, want)
	}
}

func TestRouterAutocomplete(t *testing.T) {
	r := NewRouter()
	r.AddFunc("gas", func(ctx context.Context, data CommandData) *api.InteractionResponseData {
		return nil
	})
	r.AddAutocompleterFunc("gas", func(ctx context.Context, data AutocompleteData) api.AutocompleteChoices {
		return api.AutocompleteStringChoices{
			{Name: "fast", Value: "fast"},
			{Name: "standard", Value: "standard"},
		}
	})

	ev := &discord.InteractionEvent{
		ID:    1,
		AppID: 2,
		Token: "token",
		Data: &discord.AutocompleteInteraction{
			CommandID: 3,
			Name:      "gas",
		},
	}

	resp := r.HandleInteraction(context.Background(), ev)
	if resp == nil || resp.Type != api.AutocompleteResult {
		t.Fatalf("unexpected response: %#v", resp)
	}

	choices, ok := resp.Data.Choices.(api.AutocompleteStringChoices)
	if !ok || len(choices) != 2 {
		t.Errorf("unexpected choices: %#v", resp.Data.Choices)
	}
}

type mockFollowUpSender struct {
	sent chan api.InteractionResponseData
}

func (m *mockFollowUpSender) CreateInteractionFollowup(
	appID discord.AppID, token string, data api.InteractionResponseData) (*discord.Message, error) {

	m.sent <- data
	return &discord.Message{ID: 1}, nil
}

func TestDeferrable(t *testing.T) {
	follow := &mockFollowUpSender{sent: make(chan api.InteractionResponseData, 1)}

	release := make(chan struct{})

	r := NewRouter()
	r.Use(Deferrable(follow, DeferOpts{
		Timeout: 10 * time.Millisecond,
		Flags:   discord.EphemeralMessage,
	}))
	r.AddFunc("slow", func(ctx context.Context, data CommandData) *api.InteractionResponseData {
		<-release
		return &api.InteractionResponseData{
			Content: option.NewNullableString("eventually"),
		}
	})

	resp := r.HandleInteraction(context.Background(), commandEvent("slow"))
	if resp == nil || resp.Type != api.DeferredMessageInteractionWithSource {
		t.Fatalf("expected deferred response, got %#v", resp)
	}

	close(release)

	select {
	case data := <-follow.sent:
		if data.Content == nil || data.Content.Val != "eventually" {
			t.Errorf("unexpected follow-up data: %#v", data)
		}
		if data.Flags != discord.EphemeralMessage {
			t.Errorf("unexpected follow-up flags: %v", data.Flags)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for the follow-up message")
	}
}

package bot

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"

	"github.com/quaverlib/quaver/discord"
	"github.com/quaverlib/quaver/gateway"
)

type mockReplier struct {
	sent []string
}

func (m *mockReplier) SendMessage(
	chID discord.ChannelID, content string, embeds ...discord.Embed) (*discord.Message, error) {

	m.sent = append(m.sent, content)
	return &discord.Message{ID: 1, ChannelID: chID, Content: content}, nil
}

func (m *mockReplier) SendMessageReply(
	chID discord.ChannelID, content string, refID discord.MessageID) (*discord.Message, error) {

	m.sent = append(m.sent, content)
	return &discord.Message{ID: 1, ChannelID: chID, Content: content}, nil
}

func (m *mockReplier) SendEmbeds(
	chID discord.ChannelID, embeds ...discord.Embed) (*discord.Message, error) {

	m.sent = append(m.sent, "embeds")
	return &discord.Message{ID: 1, ChannelID: chID}, nil
}

func message(content string) *gateway.MessageCreateEvent {
	return &gateway.MessageCreateEvent{
		Message: discord.Message{
			ID:        10,
			ChannelID: 20,
			GuildID:   30,
			Content:   content,
			Author:    discord.User{ID: 40, Username: "tester"},
		},
	}
}

func handle(t *testing.T, r *Router, content string) (*Context, error) {
	t.Helper()
	return r.HandleMessage(context.Background(), message(content))
}

func TestRouterResolution(t *testing.T) {
	replier := &mockReplier{}
	r := NewRouter(replier, "!")

	var invoked *Context
	r.MustAddCommand(&Command{
		Name:    "ping",
		Aliases: []string{"p"},
		Run: func(ctx *Context) error {
			invoked = ctx
			_, err := ctx.Reply("pong")
			return err
		},
	})

	ctx, err := handle(t, r, `!ping one "two three" four`)
	if err != nil {
		t.Fatal("unexpected error:", err)
	}
	if ctx == nil || ctx.Command.Name != "ping" {
		t.Fatal("command not resolved")
	}
	if invoked == nil {
		t.Fatal("handler not invoked")
	}

	expectArgs := []string{"one", "two three", "four"}
	if len(ctx.Args) != len(expectArgs) {
		t.Fatalf("unexpected args %q", ctx.Args)
	}
	for i, arg := range expectArgs {
		if ctx.Args[i] != arg {
			t.Fatalf("unexpected args %q", ctx.Args)
		}
	}

	if len(replier.sent) != 1 || replier.sent[0] != "pong" {
		t.Fatalf("unexpected replies %q", replier.sent)
	}

	// Aliases resolve to the same command, case-insensitively.
	if ctx, err := handle(t, r, "!P"); err != nil || ctx.Command.Name != "ping" {
		t.Fatal("alias did not resolve:", err)
	}
}

func TestRouterNoPrefix(t *testing.T) {
	r := NewRouter(&mockReplier{}, "!")
	r.MustAddCommand(&Command{Name: "ping", Run: func(*Context) error { return nil }})

	if ctx, err := handle(t, r, "ping"); ctx != nil || err != nil {
		t.Fatal("message without prefix should be ignored")
	}
}

func TestRouterUnknownCommand(t *testing.T) {
	r := NewRouter(&mockReplier{}, "!")

	_, err := handle(t, r, "!nope")

	var unknownErr *UnknownCommandError
	if !errors.As(err, &unknownErr) {
		t.Fatal("expected UnknownCommandError, got:", err)
	}
	if unknownErr.Name != "nope" || unknownErr.Prefix != "!" {
		t.Fatalf("unexpected error %#v", unknownErr)
	}
}

func TestRouterIgnoresBots(t *testing.T) {
	r := NewRouter(&mockReplier{}, "!")
	r.MustAddCommand(&Command{
		Name: "ping",
		Run: func(*Context) error {
			t.Fatal("handler invoked for a bot message")
			return nil
		},
	})

	msg := message("!ping")
	msg.Author.Bot = true

	if ctx, err := r.HandleMessage(context.Background(), msg); ctx != nil || err != nil {
		t.Fatal("bot message should be dropped")
	}
}

func TestRouterPipelineOrder(t *testing.T) {
	r := NewRouter(&mockReplier{}, "!")

	var trace []string
	push := func(s string) { trace = append(trace, s) }

	r.AddCheck(func(*Context) error { push("router check"); return nil })
	r.BeforeInvoke = func(*Context) { push("before") }
	r.AfterInvoke = func(*Context) { push("after") }

	r.MustAddCommand(&Command{
		Name:   "work",
		Checks: []CheckFunc{func(*Context) error { push("command check"); return nil }},
		Run: func(*Context) error {
			push("handler")
			return errors.New("handler failed")
		},
	})

	_, err := handle(t, r, "!work")
	if err == nil || err.Error() != "handler failed" {
		t.Fatal("expected handler error, got:", err)
	}

	expect := []string{"router check", "command check", "before", "handler", "after"}
	if len(trace) != len(expect) {
		t.Fatalf("unexpected trace %q", trace)
	}
	for i := range expect {
		if trace[i] != expect[i] {
			t.Fatalf("unexpected trace %q", trace)
		}
	}
}

func TestRouterCheckFailed(t *testing.T) {
	r := NewRouter(&mockReplier{}, "!")

	denied := errors.New("not an admin")
	r.MustAddCommand(&Command{
		Name:     "admin",
		Checks:   []CheckFunc{func(*Context) error { return denied }},
		Cooldown: NewCooldown(1, time.Minute, BucketUser),
		Run: func(*Context) error {
			t.Fatal("handler invoked despite failed check")
			return nil
		},
	})

	_, err := handle(t, r, "!admin")

	var checkErr *CheckError
	if !errors.As(err, &checkErr) {
		t.Fatal("expected CheckError, got:", err)
	}
	if !errors.Is(err, denied) {
		t.Fatal("CheckError should wrap the check's error")
	}

	// The failed check must not have consumed the cooldown token.
	if _, err := handle(t, r, "!admin"); !errors.As(err, &checkErr) {
		t.Fatal("expected CheckError on retry, got:", err)
	}
}

func TestRouterCooldown(t *testing.T) {
	r := NewRouter(&mockReplier{}, "!")
	r.MustAddCommand(&Command{
		Name:     "slow",
		Cooldown: NewCooldown(2, time.Minute, BucketUser),
		Run:      func(*Context) error { return nil },
	})

	for i := 0; i < 2; i++ {
		if _, err := handle(t, r, "!slow"); err != nil {
			t.Fatal("unexpected error within rate:", err)
		}
	}

	_, err := handle(t, r, "!slow")

	var cdErr *OnCooldownError
	if !errors.As(err, &cdErr) {
		t.Fatal("expected OnCooldownError, got:", err)
	}
	if cdErr.RetryAfter <= 0 || cdErr.RetryAfter > time.Minute {
		t.Fatal("unexpected retry-after:", cdErr.RetryAfter)
	}

	// Another user gets a fresh bucket.
	msg := message("!slow")
	msg.Author.ID = 41
	if _, err := r.HandleMessage(context.Background(), msg); err != nil {
		t.Fatal("cooldown leaked across user buckets:", err)
	}

	// Resetting reopens the original bucket.
	r.Command("slow").ResetCooldown(message("!slow"))
	if _, err := handle(t, r, "!slow"); err != nil {
		t.Fatal("unexpected error after reset:", err)
	}
}

func TestRouterCog(t *testing.T) {
	r := NewRouter(&mockReplier{}, "!")

	var cogChecked, unloaded bool
	cog := &Cog{
		Name:  "gas",
		Check: func(*Context) error { cogChecked = true; return nil },
		Commands: []*Command{
			{Name: "price", Run: func(*Context) error { return nil }},
			{Name: "alert", Run: func(*Context) error { return nil }},
		},
		OnUnload: func() { unloaded = true },
	}

	if err := r.AddCog(cog); err != nil {
		t.Fatal("failed to add cog:", err)
	}
	if err := r.AddCog(&Cog{Name: "gas"}); err == nil {
		t.Fatal("duplicate cog name should error")
	}

	if _, err := handle(t, r, "!price"); err != nil {
		t.Fatal("unexpected error:", err)
	}
	if !cogChecked {
		t.Fatal("cog check not run")
	}
	if got := r.Command("price").Cog(); got != cog {
		t.Fatal("command not linked to its cog")
	}

	r.RemoveCog("gas")
	if !unloaded {
		t.Fatal("OnUnload not called")
	}
	if r.Command("price") != nil || r.Command("alert") != nil {
		t.Fatal("cog commands not removed")
	}
}

func TestRouterDuplicateName(t *testing.T) {
	r := NewRouter(&mockReplier{}, "!")
	r.MustAddCommand(&Command{Name: "ping", Run: func(*Context) error { return nil }})

	err := r.AddCommand(&Command{
		Name:    "pong",
		Aliases: []string{"ping"},
		Run:     func(*Context) error { return nil },
	})
	if err == nil {
		t.Fatal("alias collision should error")
	}
}

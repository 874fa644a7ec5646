package session

import (
	"context"
	"testing"

	"github.com/quaverlib/quaver/discord"
	"github.com/quaverlib/quaver/gateway"
)

func TestNewWithIntents(t *testing.T) {
	s := NewWithIntents("Bot abc", gateway.IntentGuilds, gateway.IntentGuildMessages)

	if !s.HasIntents(gateway.IntentGuilds | gateway.IntentGuildMessages) {
		t.Error("missing constructed intents")
	}
	if s.HasIntents(gateway.IntentGuildMembers) {
		t.Error("unexpected intent")
	}

	s.AddIntents(gateway.IntentGuildMembers)
	if !s.HasIntents(gateway.IntentGuildMembers) {
		t.Error("missing added intent")
	}

	if s.Gateway() != nil {
		t.Error("unexpected gateway before connecting")
	}
}

func TestAddHandler(t *testing.T) {
	s := New("Bot abc")

	var gotMessage *gateway.MessageCreateEvent
	rmMessage := AddSyncHandler(s, func(ev *gateway.MessageCreateEvent) {
		gotMessage = ev
	})
	defer rmMessage()

	var gotTyping bool
	rmTyping := AddSyncHandler(s, func(ev *gateway.TypingStartEvent) {
		gotTyping = true
	})
	defer rmTyping()

	ev := &gateway.MessageCreateEvent{
		Message: discord.Message{
			ID:      1,
			Content: "hello",
		},
	}
	s.Handlers.Dispatch(ev)

	if gotMessage == nil || gotMessage.Content != "hello" {
		t.Errorf("unexpected dispatched message %#v", gotMessage)
	}
	if gotTyping {
		t.Error("typing handler called for a message event")
	}
}

func TestSendNotConnected(t *testing.T) {
	s := New("Bot abc")

	heartbeat := gateway.HeartbeatCommand(0)
	if err := s.Send(context.Background(), &heartbeat); err == nil {
		t.Fatal("expected error sending on an unconnected session")
	}
}

package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quaverlib/quaver/discord"
)

type stubPrices struct {
	prices GasPrices
}

func (s stubPrices) Prices(ctx context.Context) (*GasPrices, error) {
	p := s.prices
	return &p, nil
}

type sentMessage struct {
	channelID discord.ChannelID
	content   string
	embeds    []discord.Embed
}

// fakeNotifier records every send. Setting dmFail makes CreatePrivateChannel
// error so the channel fallback path runs.
type fakeNotifier struct {
	sent   []sentMessage
	dmFail bool
}

const fakeDMChannel discord.ChannelID = 999

func (f *fakeNotifier) SendMessage(
	channelID discord.ChannelID, content string, embeds ...discord.Embed) (*discord.Message, error) {

	f.sent = append(f.sent, sentMessage{channelID, content, embeds})
	return &discord.Message{ChannelID: channelID}, nil
}

func (f *fakeNotifier) SendEmbeds(
	channelID discord.ChannelID, embeds ...discord.Embed) (*discord.Message, error) {

	f.sent = append(f.sent, sentMessage{channelID: channelID, embeds: embeds})
	return &discord.Message{ChannelID: channelID}, nil
}

func (f *fakeNotifier) CreatePrivateChannel(recipientID discord.UserID) (*discord.Channel, error) {
	if f.dmFail {
		return nil, errors.New("cannot DM user")
	}
	return &discord.Channel{ID: fakeDMChannel}, nil
}

func testPoller(t *testing.T, notifier Notifier, announceID discord.ChannelID, fast float64) (*Poller, *Store) {
	t.Helper()

	store := testStore(t)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	oracle := stubPrices{GasPrices{Safe: 10, Propose: 12, Fast: fast, LastBlock: 100}}
	return NewPoller(oracle, store, notifier, announceID, log), store
}

func TestPollerAnnounce(t *testing.T) {
	notifier := &fakeNotifier{}
	poller, _ := testPoller(t, notifier, 500, 20)

	poller.Poll(context.Background())

	require.Len(t, notifier.sent, 1)
	assert.Equal(t, discord.ChannelID(500), notifier.sent[0].channelID)
	require.Len(t, notifier.sent[0].embeds, 1)
	assert.Equal(t, "Current Gas Prices", notifier.sent[0].embeds[0].Title)
}

func TestPollerAlertDM(t *testing.T) {
	notifier := &fakeNotifier{}
	poller, store := testPoller(t, notifier, discord.NullChannelID, 20)

	require.NoError(t, store.SetAlert(1, 100, 25))
	require.NoError(t, store.SetAlert(2, 100, 15)) // below fast, must not fire

	poller.Poll(context.Background())

	require.Len(t, notifier.sent, 1)
	assert.Equal(t, fakeDMChannel, notifier.sent[0].channelID)
	assert.Contains(t, notifier.sent[0].content, "20.0 gwei")

	// The fired alert is gone; the untriggered one stays armed.
	alert, err := store.Alert(1)
	require.NoError(t, err)
	assert.Nil(t, alert)

	alert, err = store.Alert(2)
	require.NoError(t, err)
	assert.NotNil(t, alert)
}

func TestPollerAlertChannelFallback(t *testing.T) {
	notifier := &fakeNotifier{dmFail: true}
	poller, store := testPoller(t, notifier, discord.NullChannelID, 20)

	require.NoError(t, store.SetAlert(1, 100, 25))

	poller.Poll(context.Background())

	require.Len(t, notifier.sent, 1)
	assert.Equal(t, discord.ChannelID(100), notifier.sent[0].channelID)
	assert.Contains(t, notifier.sent[0].content, discord.UserID(1).Mention())
}

func TestPollerAlertFiresOnce(t *testing.T) {
	notifier := &fakeNotifier{}
	poller, store := testPoller(t, notifier, discord.NullChannelID, 20)

	require.NoError(t, store.SetAlert(1, 100, 25))

	poller.Poll(context.Background())
	poller.Poll(context.Background())

	assert.Len(t, notifier.sent, 1, "a fired alert must not fire again")
}

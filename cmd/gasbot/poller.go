package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/quaverlib/quaver/discord"
)

const embedColorGas = 0x627eea // ether blue

// Notifier is the Discord surface the poller posts through. api.Client
// satisfies it.
type Notifier interface {
	SendMessage(channelID discord.ChannelID, content string, embeds ...discord.Embed) (*discord.Message, error)
	SendEmbeds(channelID discord.ChannelID, embeds ...discord.Embed) (*discord.Message, error)
	CreatePrivateChannel(recipientID discord.UserID) (*discord.Channel, error)
}

// PriceSource yields gas price readings. Oracle satisfies it.
type PriceSource interface {
	Prices(ctx context.Context) (*GasPrices, error)
}

// Poller periodically reads the gas oracle, posts price embeds and fires
// stored alerts.
type Poller struct {
	oracle   PriceSource
	store    *Store
	notifier Notifier
	log      *slog.Logger

	// announceID, if valid, receives a price embed on every poll.
	announceID discord.ChannelID
}

// NewPoller assembles a poller.
func NewPoller(oracle PriceSource, store *Store, notifier Notifier, announceID discord.ChannelID, log *slog.Logger) *Poller {
	return &Poller{
		oracle:     oracle,
		store:      store,
		notifier:   notifier,
		log:        log,
		announceID: announceID,
	}
}

// Poll runs one poll cycle: fetch prices, announce, fire alerts.
func (p *Poller) Poll(ctx context.Context) {
	prices, err := p.oracle.Prices(ctx)
	if err != nil {
		p.log.Error("gas poll failed", "err", err)
		return
	}

	p.log.Info("gas prices",
		"safe", prices.Safe,
		"propose", prices.Propose,
		"fast", prices.Fast,
		"block", prices.LastBlock)

	if p.announceID.IsValid() {
		embed := gasEmbed(prices)
		if _, err := p.notifier.SendEmbeds(p.announceID, embed); err != nil {
			p.log.Error("failed to announce gas prices", "err", err)
		}
	}

	p.fireAlerts(prices)
}

// fireAlerts fires every alert the fast price has reached. An alert is
// disarmed before its notification is sent, so a failed send never repeats
// the alert.
func (p *Poller) fireAlerts(prices *GasPrices) {
	triggered, err := p.store.Triggered(prices.Fast)
	if err != nil {
		p.log.Error("failed to query alerts", "err", err)
		return
	}

	for _, alert := range triggered {
		armed, err := p.store.Disarm(alert.ID)
		if err != nil {
			p.log.Error("failed to disarm alert", "user", alert.UserID, "err", err)
			continue
		}
		if !armed {
			continue
		}

		if err := p.notify(alert, prices); err != nil {
			p.log.Error("failed to deliver alert", "user", alert.UserID, "err", err)
		}
	}
}

// notify delivers a fired alert, preferring a DM and falling back to a
// mention in the channel the alert was set from.
func (p *Poller) notify(alert Alert, prices *GasPrices) error {
	embed := gasEmbed(prices)
	content := fmt.Sprintf(
		"⛽ Gas is down to **%.1f gwei**, at or below your alert threshold of %.1f gwei.",
		prices.Fast, alert.Threshold)

	if dm, err := p.notifier.CreatePrivateChannel(alert.UserID); err == nil {
		if _, err := p.notifier.SendMessage(dm.ID, content, embed); err == nil {
			return nil
		}
	}

	if !alert.ChannelID.IsValid() {
		return fmt.Errorf("no DM and no origin channel for user %d", alert.UserID)
	}

	_, err := p.notifier.SendMessage(
		alert.ChannelID,
		alert.UserID.Mention()+" "+content, embed)
	return err
}

// gasEmbed renders a gas price reading.
func gasEmbed(prices *GasPrices) discord.Embed {
	return discord.Embed{
		Title: "Current Gas Prices",
		Color: embedColorGas,
		Fields: []discord.EmbedField{
			{Name: "🐢 Safe", Value: fmt.Sprintf("%.1f gwei", prices.Safe), Inline: true},
			{Name: "🚶 Proposed", Value: fmt.Sprintf("%.1f gwei", prices.Propose), Inline: true},
			{Name: "⚡ Fast", Value: fmt.Sprintf("%.1f gwei", prices.Fast), Inline: true},
		},
		Footer: &discord.EmbedFooter{
			Text: fmt.Sprintf("Block %d", prices.LastBlock),
		},
		Timestamp: discord.NowTimestamp(),
	}
}

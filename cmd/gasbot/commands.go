package main

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/quaverlib/quaver/api"
	"github.com/quaverlib/quaver/api/cmdroute"
	"github.com/quaverlib/quaver/bot"
	"github.com/quaverlib/quaver/discord"
	"github.com/quaverlib/quaver/utils/json/option"
)

// gasCommands implements both the prefix and slash command surfaces over the
// oracle and the alert store.
type gasCommands struct {
	oracle *Oracle
	store  *Store
	log    *slog.Logger
}

// commands is the application command schema deployed on startup.
func (g *gasCommands) commands() []discord.Command {
	threshold := discord.NewNumberOption("gwei", "Fast gas price to alert at, in gwei", true)
	min := 0.1
	threshold.Min = &min

	return []discord.Command{
		{
			Name:        "gas",
			Description: "Show the current gas prices",
		},
		{
			Name:        "alert",
			Description: "Manage your gas price alert",
			Options: []discord.CommandOption{
				discord.NewSubcommandOption("set", "Alert once fast gas drops to a threshold", threshold),
				discord.NewSubcommandOption("clear", "Remove your alert"),
				discord.NewSubcommandOption("list", "Show your current alert"),
			},
		},
	}
}

/*
 * Slash commands
 */

func (g *gasCommands) slashRouter(followUp cmdroute.FollowUpSender) *cmdroute.Router {
	r := cmdroute.NewRouter()
	r.Use(cmdroute.Deferrable(followUp, cmdroute.DeferOpts{
		Error: func(err error) { g.log.Error("deferred follow-up failed", "err", err) },
	}))

	r.AddFunc("gas", g.slashGas)
	r.Sub("alert", func(r *cmdroute.Router) {
		r.AddFunc("set", g.slashAlertSet)
		r.AddFunc("clear", g.slashAlertClear)
		r.AddFunc("list", g.slashAlertList)
	})

	return r
}

func (g *gasCommands) slashGas(ctx context.Context, data cmdroute.CommandData) *api.InteractionResponseData {
	prices, err := g.oracle.Prices(ctx)
	if err != nil {
		g.log.Error("price lookup failed", "err", err)
		return errorResponse("Couldn't reach the gas oracle, try again later.")
	}

	return &api.InteractionResponseData{
		Embeds: &[]discord.Embed{gasEmbed(prices)},
	}
}

func (g *gasCommands) slashAlertSet(ctx context.Context, data cmdroute.CommandData) *api.InteractionResponseData {
	gwei, err := data.Options.Find("gwei").FloatValue()
	if err != nil || gwei <= 0 {
		return errorResponse("The threshold must be a positive gwei amount.")
	}

	userID := data.Event.SenderID()
	if err := g.store.SetAlert(userID, data.Event.ChannelID, gwei); err != nil {
		g.log.Error("failed to set alert", "user", userID, "err", err)
		return errorResponse("Couldn't save your alert, try again later.")
	}

	return textResponse(fmt.Sprintf(
		"🔔 You'll be pinged once fast gas drops to **%.1f gwei**.", gwei))
}

func (g *gasCommands) slashAlertClear(ctx context.Context, data cmdroute.CommandData) *api.InteractionResponseData {
	userID := data.Event.SenderID()

	removed, err := g.store.ClearAlert(userID)
	if err != nil {
		g.log.Error("failed to clear alert", "user", userID, "err", err)
		return errorResponse("Couldn't clear your alert, try again later.")
	}
	if !removed {
		return textResponse("You have no alert set.")
	}
	return textResponse("🔕 Alert cleared.")
}

func (g *gasCommands) slashAlertList(ctx context.Context, data cmdroute.CommandData) *api.InteractionResponseData {
	userID := data.Event.SenderID()

	alert, err := g.store.Alert(userID)
	if err != nil {
		g.log.Error("failed to query alert", "user", userID, "err", err)
		return errorResponse("Couldn't look up your alert, try again later.")
	}
	if alert == nil {
		return textResponse("You have no alert set. Use `/alert set` to add one.")
	}
	return textResponse(fmt.Sprintf(
		"🔔 Alerting once fast gas drops to **%.1f gwei**.", alert.Threshold))
}

func textResponse(content string) *api.InteractionResponseData {
	return &api.InteractionResponseData{
		Content: option.NewNullableString(content),
	}
}

func errorResponse(content string) *api.InteractionResponseData {
	return &api.InteractionResponseData{
		Content: option.NewNullableString(content),
		Flags:   discord.EphemeralMessage,
	}
}

/*
 * Prefix commands
 */

// cog groups the prefix commands so they can be unloaded together.
func (g *gasCommands) cog() *bot.Cog {
	return &bot.Cog{
		Name: "gas",
		Commands: []*bot.Command{
			{
				Name:        "gas",
				Aliases:     []string{"price"},
				Description: "Show the current gas prices",
				Cooldown:    bot.NewCooldown(2, 30*time.Second, bot.BucketChannel),
				Run:         g.prefixGas,
			},
			{
				Name:        "alert",
				Description: "Manage your gas price alert: alert set <gwei> | clear | list",
				Cooldown:    bot.NewCooldown(5, time.Minute, bot.BucketUser),
				Run:         g.prefixAlert,
			},
		},
	}
}

func (g *gasCommands) prefixGas(ctx *bot.Context) error {
	prices, err := g.oracle.Prices(ctx)
	if err != nil {
		g.log.Error("price lookup failed", "err", err)
		_, sendErr := ctx.Reply("Couldn't reach the gas oracle, try again later.")
		if sendErr != nil {
			return sendErr
		}
		return err
	}

	_, err = ctx.SendEmbeds(gasEmbed(prices))
	return err
}

func (g *gasCommands) prefixAlert(ctx *bot.Context) error {
	sub := "list"
	if len(ctx.Args) > 0 {
		sub = strings.ToLower(ctx.Args[0])
	}

	userID := ctx.Message.Author.ID

	switch sub {
	case "set":
		if len(ctx.Args) < 2 {
			_, err := ctx.Reply("Usage: `" + ctx.Prefix + "alert set <gwei>`")
			return err
		}
		gwei, err := strconv.ParseFloat(ctx.Args[1], 64)
		if err != nil || gwei <= 0 {
			_, err := ctx.Reply("The threshold must be a positive gwei amount.")
			return err
		}
		if err := g.store.SetAlert(userID, ctx.Message.ChannelID, gwei); err != nil {
			return err
		}
		_, err = ctx.Reply(fmt.Sprintf(
			"🔔 You'll be pinged once fast gas drops to **%.1f gwei**.", gwei))
		return err

	case "clear":
		removed, err := g.store.ClearAlert(userID)
		if err != nil {
			return err
		}
		if !removed {
			_, err = ctx.Reply("You have no alert set.")
			return err
		}
		_, err = ctx.Reply("🔕 Alert cleared.")
		return err

	case "list":
		alert, err := g.store.Alert(userID)
		if err != nil {
			return err
		}
		if alert == nil {
			_, err = ctx.Reply("You have no alert set. Use `" + ctx.Prefix + "alert set <gwei>`.")
			return err
		}
		_, err = ctx.Reply(fmt.Sprintf(
			"🔔 Alerting once fast gas drops to **%.1f gwei**.", alert.Threshold))
		return err

	default:
		_, err := ctx.Reply("Usage: `" + ctx.Prefix + "alert set <gwei> | clear | list`")
		return err
	}
}

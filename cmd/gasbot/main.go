// Command gasbot is a Discord bot that polls an Etherscan-style gas oracle,
// posts price embeds and pings users once gas drops below their alert
// threshold.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/MatusOllah/slogcolor"
	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"

	"github.com/quaverlib/quaver/api/cmdroute"
	"github.com/quaverlib/quaver/bot"
	"github.com/quaverlib/quaver/gateway"
	"github.com/quaverlib/quaver/session"
)

func main() {
	configPath := flag.String("c", "", "path to the config file (optional)")
	flag.Parse()

	log := slog.New(slogcolor.NewHandler(os.Stderr, slogcolor.DefaultOptions))
	slog.SetDefault(log)

	if err := run(log, *configPath); err != nil {
		log.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(log *slog.Logger, configPath string) error {
	config, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	store, err := OpenStore(config.DatabasePath)
	if err != nil {
		return err
	}

	oracle := NewOracle(config.Oracle)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	s := session.NewWithIntents("Bot "+config.Token,
		gateway.IntentGuilds,
		gateway.IntentGuildMessages,
		gateway.IntentDirectMessages,
		gateway.IntentMessageContent,
	)

	cmds := &gasCommands{oracle: oracle, store: store, log: log}

	router := bot.NewRouter(s.Client, config.Prefix)
	if err := router.AddCog(cmds.cog()); err != nil {
		return errors.Wrap(err, "failed to register commands")
	}
	defer router.Bind(s, func(cctx *bot.Context, err error) {
		switch err := err.(type) {
		case *bot.UnknownCommandError:
			// Not every prefixed message is for us.
		case *bot.OnCooldownError:
			if _, err := cctx.Reply(err.Error()); err != nil {
				log.Error("failed to send cooldown notice", "err", err)
			}
		default:
			log.Error("command failed", "err", err)
		}
	})()

	slash := cmds.slashRouter(s.Client)
	defer session.AddHandler(s, func(ev *gateway.InteractionCreateEvent) {
		resp := slash.HandleInteraction(context.Background(), &ev.InteractionEvent)
		if resp == nil {
			return
		}
		if err := s.RespondInteraction(ev.ID, ev.Token, *resp); err != nil {
			log.Error("failed to respond to interaction", "err", err)
		}
	})()

	if err := s.Open(ctx); err != nil {
		return errors.Wrap(err, "failed to connect to Discord")
	}
	defer s.Close()

	me, err := s.Me()
	if err != nil {
		return errors.Wrap(err, "failed to identify")
	}
	log.Info("logged in", "user", me.Username)

	if err := cmdroute.OverwriteCommands(s.Client, cmds.commands()); err != nil {
		return errors.Wrap(err, "failed to deploy slash commands")
	}

	poller := NewPoller(oracle, store, s.Client, config.ChannelID, log)

	sched := cron.New()
	if _, err := sched.AddFunc(config.PollSchedule, func() { poller.Poll(ctx) }); err != nil {
		return errors.Wrapf(err, "bad poll schedule %q", config.PollSchedule)
	}
	sched.Start()
	defer sched.Stop()

	// One poll up front so the bot is useful immediately.
	poller.Poll(ctx)

	<-ctx.Done()
	log.Info("shutting down")
	return nil
}

package main

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/quaverlib/quaver/discord"
)

// Config is the bot configuration, loaded from a YAML file and GASBOT_*
// environment variables.
type Config struct {
	// Token is the bot token, without the "Bot " prefix.
	Token string `mapstructure:"token"`
	// Prefix triggers text commands. Default "!".
	Prefix string `mapstructure:"prefix"`
	// ChannelID, if set, receives a gas price embed on every poll.
	ChannelID discord.ChannelID `mapstructure:"channel_id"`
	// DatabasePath is the SQLite file holding alert thresholds.
	DatabasePath string `mapstructure:"database_path"`
	// PollSchedule is the cron expression for the price poll.
	PollSchedule string `mapstructure:"poll_schedule"`

	Oracle OracleConfig `mapstructure:"oracle"`
}

// OracleConfig configures the gas price source.
type OracleConfig struct {
	// URL is the gas oracle endpoint. Defaults to the Etherscan gas oracle.
	URL string `mapstructure:"url"`
	// APIKey is sent as the apikey query parameter if set.
	APIKey string `mapstructure:"api_key"`
}

func loadConfig(path string) (*Config, error) {
	v := viper.New()

	// Defaults also register the keys so GASBOT_* overrides reach Unmarshal.
	v.SetDefault("token", "")
	v.SetDefault("prefix", "!")
	v.SetDefault("channel_id", 0)
	v.SetDefault("database_path", "gasbot.db")
	v.SetDefault("poll_schedule", "@every 5m")
	v.SetDefault("oracle.url", "https://api.etherscan.io/api?module=gastracker&action=gasoracle")
	v.SetDefault("oracle.api_key", "")

	v.SetEnvPrefix("gasbot")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, errors.Wrap(err, "failed to open config file")
		}
		defer f.Close()

		v.SetConfigType("yml")
		if err := v.ReadConfig(f); err != nil {
			return nil, errors.Wrap(err, "failed to read config")
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}

	if config.Token == "" {
		return nil, errors.New("missing bot token (GASBOT_TOKEN or token in config)")
	}

	return &config, nil
}

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quaverlib/quaver/discord"
)

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
token: abc123
channel_id: 1234
poll_schedule: "@every 1m"
oracle:
  api_key: secret
`), 0o600))

	config, err := loadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "abc123", config.Token)
	assert.Equal(t, "!", config.Prefix, "default prefix")
	assert.Equal(t, discord.ChannelID(1234), config.ChannelID)
	assert.Equal(t, "@every 1m", config.PollSchedule)
	assert.Equal(t, "secret", config.Oracle.APIKey)
	assert.Contains(t, config.Oracle.URL, "etherscan.io", "default oracle URL")
}

func TestLoadConfigEnv(t *testing.T) {
	t.Setenv("GASBOT_TOKEN", "envtoken")
	t.Setenv("GASBOT_PREFIX", "?")

	config, err := loadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "envtoken", config.Token)
	assert.Equal(t, "?", config.Prefix)
}

func TestLoadConfigMissingToken(t *testing.T) {
	_, err := loadConfig("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "token")
}

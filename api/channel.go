package api

import (
	"github.com/quaverlib/quaver/discord"
)

var EndpointChannels = Endpoint + "channels/"

// Channel gets a channel by ID.
func (c *Client) Channel(channelID discord.ChannelID) (*discord.Channel, error) {
	var channel *discord.Channel
	return channel, c.RequestJSON(&channel, "GET", EndpointChannels+channelID.String())
}

// Typing posts a typing indicator to the channel. Undocumented, but the
// indicator seems to last about 10 seconds.
func (c *Client) Typing(channelID discord.ChannelID) error {
	return c.FastRequest("POST", EndpointChannels+channelID.String()+"/typing")
}

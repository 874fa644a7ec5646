package api

import (
	"context"

	"github.com/quaverlib/quaver/discord"
	"github.com/quaverlib/quaver/utils/httputil"
)

// BotData contains the gateway URL as well as extra metadata on how to shard
// bots.
type BotData struct {
	URL        string             `json:"url"`
	Shards     int                `json:"shards,omitempty"`
	StartLimit *SessionStartLimit `json:"session_start_limit"`
}

// SessionStartLimit is the information on the current session start limit.
type SessionStartLimit struct {
	Total          int                  `json:"total"`
	Remaining      int                  `json:"remaining"`
	ResetAfter     discord.Milliseconds `json:"reset_after"`
	MaxConcurrency int                  `json:"max_concurrency"`
}

// BotURL fetches the gateway URL along with extra metadata. It requires
// authorization.
func (c *Client) BotURL() (*BotData, error) {
	var g *BotData
	return g, c.RequestJSON(&g, "GET", EndpointGatewayBot)
}

// GatewayURL asks Discord for a websocket URL to the gateway. It never
// requires authorization.
func GatewayURL(ctx context.Context) (string, error) {
	var g BotData
	c := httputil.NewClient().WithContext(ctx)
	return g.URL, c.RequestJSON(&g, "GET", EndpointGateway)
}

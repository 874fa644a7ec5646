package api

import (
	"github.com/quaverlib/quaver/discord"
	"github.com/quaverlib/quaver/utils/httputil"
)

var EndpointGuilds = Endpoint + "guilds/"

// Guild fetches a guild by ID.
//
// ApproximateMembers will not be set on the returned guild; use
// GuildWithCount for that.
func (c *Client) Guild(id discord.GuildID) (*discord.Guild, error) {
	var g *discord.Guild
	return g, c.RequestJSON(&g, "GET", EndpointGuilds+id.String())
}

// GuildWithCount fetches a guild with the ApproximateMembers field set.
func (c *Client) GuildWithCount(id discord.GuildID) (*discord.Guild, error) {
	var g *discord.Guild
	return g, c.RequestJSON(
		&g, "GET", EndpointGuilds+id.String(),
		httputil.WithSchema(c, struct {
			WithCounts bool `schema:"with_counts"`
		}{true}),
	)
}

// Member returns a guild member object for the specified user.
func (c *Client) Member(guildID discord.GuildID, userID discord.UserID) (*discord.Member, error) {
	var m *discord.Member
	return m, c.RequestJSON(
		&m, "GET",
		EndpointGuilds+guildID.String()+"/members/"+userID.String())
}

// Roles returns a list of roles for the guild.
func (c *Client) Roles(guildID discord.GuildID) ([]discord.Role, error) {
	var roles []discord.Role
	return roles, c.RequestJSON(&roles, "GET", EndpointGuilds+guildID.String()+"/roles")
}

package api

import (
	"github.com/quaverlib/quaver/discord"
	"github.com/quaverlib/quaver/utils/httputil"
)

var (
	EndpointUsers = Endpoint + "users/"
	EndpointMe    = EndpointUsers + "@me"
)

// User fetches a user by ID.
func (c *Client) User(userID discord.UserID) (*discord.User, error) {
	var u *discord.User
	return u, c.RequestJSON(&u, "GET", EndpointUsers+userID.String())
}

// Me returns the user of the client.
func (c *Client) Me() (*discord.User, error) {
	var me *discord.User
	return me, c.RequestJSON(&me, "GET", EndpointMe)
}

// CreatePrivateChannel creates a DM channel with the given recipient.
func (c *Client) CreatePrivateChannel(recipientID discord.UserID) (*discord.Channel, error) {
	var dm *discord.Channel
	return dm, c.RequestJSON(
		&dm, "POST", EndpointMe+"/channels",
		httputil.WithJSONBody(struct {
			RecipientID discord.UserID `json:"recipient_id"`
		}{recipientID}),
	)
}

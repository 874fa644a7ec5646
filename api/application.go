package api

import (
	"encoding/json"

	"github.com/quaverlib/quaver/discord"
	"github.com/quaverlib/quaver/utils/httputil"
)

var EndpointApplications = Endpoint + "applications/"

// CurrentApplication returns the application object associated with the
// requesting bot user.
func (c *Client) CurrentApplication() (*discord.Application, error) {
	var app *discord.Application
	return app, c.RequestJSON(&app, "GET", EndpointApplications+"@me")
}

// CreateCommandData is the data for one application command.
type CreateCommandData struct {
	Name                string                 `json:"name"`
	Description         string                 `json:"description"`
	Options             discord.CommandOptions `json:"options,omitempty"`
	NoDefaultPermission bool                   `json:"-"`
	Type                discord.CommandType    `json:"type,omitempty"`
}

func (c CreateCommandData) MarshalJSON() ([]byte, error) {
	type RawCreateCommandData CreateCommandData
	cmd := struct {
		RawCreateCommandData
		DefaultPermission bool `json:"default_permission"`
	}{RawCreateCommandData: (RawCreateCommandData)(c)}

	// Discord defaults default_permission to true, so the meaning of the
	// field is inverted (>No<DefaultPermission) to match Go's zero value.
	cmd.DefaultPermission = !c.NoDefaultPermission

	return json.Marshal(cmd)
}

func (c *CreateCommandData) UnmarshalJSON(data []byte) error {
	type RawCreateCommandData CreateCommandData
	cmd := struct {
		*RawCreateCommandData
		DefaultPermission bool `json:"default_permission"`
	}{RawCreateCommandData: (*RawCreateCommandData)(c)}
	if err := json.Unmarshal(data, &cmd); err != nil {
		return err
	}

	c.NoDefaultPermission = !cmd.DefaultPermission

	// Discord defaults type to 1 if omitted.
	if c.Type == 0 {
		c.Type = discord.ChatInputCommand
	}

	return nil
}

// Commands returns the global commands of the application.
func (c *Client) Commands(appID discord.AppID) ([]discord.Command, error) {
	var cmds []discord.Command
	return cmds, c.RequestJSON(
		&cmds, "GET",
		EndpointApplications+appID.String()+"/commands",
	)
}

// Command returns one global command of the application.
func (c *Client) Command(
	appID discord.AppID, commandID discord.CommandID) (*discord.Command, error) {

	var cmd *discord.Command
	return cmd, c.RequestJSON(
		&cmd, "GET",
		EndpointApplications+appID.String()+"/commands/"+commandID.String(),
	)
}

// CreateCommand creates a new global command for the application. New global
// commands are available in all guilds after 1 hour.
func (c *Client) CreateCommand(
	appID discord.AppID, data CreateCommandData) (*discord.Command, error) {

	var cmd *discord.Command
	return cmd, c.RequestJSON(
		&cmd, "POST",
		EndpointApplications+appID.String()+"/commands",
		httputil.WithJSONBody(data),
	)
}

// EditCommand edits a global command.
func (c *Client) EditCommand(
	appID discord.AppID,
	commandID discord.CommandID, data CreateCommandData) (*discord.Command, error) {

	var cmd *discord.Command
	return cmd, c.RequestJSON(
		&cmd, "PATCH",
		EndpointApplications+appID.String()+"/commands/"+commandID.String(),
		httputil.WithJSONBody(data),
	)
}

// DeleteCommand deletes a global command.
func (c *Client) DeleteCommand(appID discord.AppID, commandID discord.CommandID) error {
	return c.FastRequest(
		"DELETE",
		EndpointApplications+appID.String()+"/commands/"+commandID.String(),
	)
}

// BulkOverwriteCommands takes a slice of application commands, overwriting
// the commands that are registered globally for this application. Updates
// are available in all guilds after 1 hour.
//
// Commands that do not already exist count towards daily application command
// create limits.
func (c *Client) BulkOverwriteCommands(
	appID discord.AppID, commands []discord.Command) ([]discord.Command, error) {

	var cmds []discord.Command
	return cmds, c.RequestJSON(
		&cmds, "PUT",
		EndpointApplications+appID.String()+"/commands",
		httputil.WithJSONBody(commands))
}

// GuildCommands returns the commands of the application that are scoped to
// the guild.
func (c *Client) GuildCommands(
	appID discord.AppID, guildID discord.GuildID) ([]discord.Command, error) {

	var cmds []discord.Command
	return cmds, c.RequestJSON(
		&cmds, "GET",
		EndpointApplications+appID.String()+"/guilds/"+guildID.String()+"/commands",
	)
}

// CreateGuildCommand creates a new guild-scoped command. Guild commands are
// available immediately.
func (c *Client) CreateGuildCommand(
	appID discord.AppID,
	guildID discord.GuildID, data CreateCommandData) (*discord.Command, error) {

	var cmd *discord.Command
	return cmd, c.RequestJSON(
		&cmd, "POST",
		EndpointApplications+appID.String()+"/guilds/"+guildID.String()+"/commands",
		httputil.WithJSONBody(data),
	)
}

// BulkOverwriteGuildCommands takes a slice of application commands,
// overwriting the commands that are registered for the guild.
func (c *Client) BulkOverwriteGuildCommands(
	appID discord.AppID,
	guildID discord.GuildID, commands []discord.Command) ([]discord.Command, error) {

	var cmds []discord.Command
	return cmds, c.RequestJSON(
		&cmds, "PUT",
		EndpointApplications+appID.String()+"/guilds/"+guildID.String()+"/commands",
		httputil.WithJSONBody(commands))
}

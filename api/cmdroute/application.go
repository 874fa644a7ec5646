package cmdroute

import (
	"fmt"

	"github.com/quaverlib/quaver/api"
	"github.com/quaverlib/quaver/discord"
)

// BulkCommandsOverwriter can replace an application's full command list.
// *api.Client satisfies it.
type BulkCommandsOverwriter interface {
	CurrentApplication() (*discord.Application, error)
	BulkOverwriteCommands(appID discord.AppID, cmds []discord.Command) ([]discord.Command, error)
}

var _ BulkCommandsOverwriter = (*api.Client)(nil)

// OverwriteCommands registers cmds as the complete command list of the
// current application, replacing whatever was registered before.
func OverwriteCommands(client BulkCommandsOverwriter, cmds []discord.Command) error {
	app, err := client.CurrentApplication()
	if err != nil {
		return fmt.Errorf("cannot get current app ID: %w", err)
	}

	if _, err := client.BulkOverwriteCommands(app.ID, cmds); err != nil {
		return fmt.Errorf("cannot overwrite commands: %w", err)
	}

	return nil
}

// Package quaver contains a set of modular packages for writing Discord bots.
//
// Session
//
// Package session is the simplest abstraction, combining the API package and
// the Gateway websocket package into one. Most bots should start here.
//
// Bot
//
// Package bot provides a prefix-command framework on top of session, with
// cooldowns, checks and hooks, similar to the classic command extensions of
// other Discord libraries.
//
// Cmdroute
//
// Package api/cmdroute provides a router for slash commands, with middleware
// support and helpers for deploying the command schema.
package quaver

import (
	// Packages that most should use.
	_ "github.com/quaverlib/quaver/bot"
	_ "github.com/quaverlib/quaver/session"

	// Low level packages.
	_ "github.com/quaverlib/quaver/api"
	_ "github.com/quaverlib/quaver/gateway"
)

package bot

import (
	"fmt"
	"time"
)

// UnknownCommandError is returned by the router when the message carried a
// known prefix but no registered command matched its first word.
type UnknownCommandError struct {
	Name   string
	Prefix string
}

func (err *UnknownCommandError) Error() string {
	return fmt.Sprintf("unknown command %q", err.Name)
}

// CheckError is returned when a router, cog or command check rejects the
// invocation. Err is what the check returned.
type CheckError struct {
	Command string
	Err     error
}

func (err *CheckError) Error() string {
	return fmt.Sprintf("check failed for command %q: %s", err.Command, err.Err)
}

// Unwrap returns the check's error.
func (err *CheckError) Unwrap() error { return err.Err }

// OnCooldownError is returned when the command's cooldown bucket has no
// tokens left. RetryAfter is the duration until the bucket resets.
type OnCooldownError struct {
	Command    string
	RetryAfter time.Duration
}

func (err *OnCooldownError) Error() string {
	return fmt.Sprintf(
		"command %q is on cooldown, retry in %.2fs",
		err.Command, err.RetryAfter.Seconds())
}

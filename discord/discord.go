package discord

// HasFlag reports whether every bit of has is set in flag. It backs the Has
// methods of the various bitfield types, such as Permission and Intents.
func HasFlag(flag, has uint64) bool {
	return flag&has == has
}

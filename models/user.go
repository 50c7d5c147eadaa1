package models

// UserRecord holds the persisted state for a Discord user.
//
// Records are created on first write (first registration or first bonk)
// and never deleted; unregistering only shrinks Guilds.
type UserRecord struct {
	// OsuID is the linked osu! account id, empty if the user never registered.
	OsuID string
	// Bonks counts how many times the user has bonked the bonkers.
	Bonks int
	// Guilds is the set of guild IDs where the user opted into auto-updates.
	// Order is irrelevant and entries are unique.
	Guilds []string
}

// InGuild reports whether the user is subscribed to auto-updates in guildID.
func (u *UserRecord) InGuild(guildID string) bool {
	for _, id := range u.Guilds {
		if id == guildID {
			return true
		}
	}
	return false
}

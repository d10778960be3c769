package model

import (
	"github.com/bwmarrin/discordgo"
)

// Emoji is the cached snapshot of a custom guild emoji.
type Emoji struct {
	ID        Snowflake
	GuildID   Snowflake
	Name      string
	RoleIDs   []Snowflake
	Animated  bool
	Managed   bool
	Available bool
}

// EmojiFromDiscord builds an Emoji record. Emoji payloads do not carry their
// guild, so the owning guild ID is supplied by the caller.
func EmojiFromDiscord(guildID Snowflake, e *discordgo.Emoji) Emoji {
	roles := make([]Snowflake, len(e.Roles))
	for i, r := range e.Roles {
		roles[i] = MustParseSnowflake(r)
	}
	return Emoji{
		ID:        MustParseSnowflake(e.ID),
		GuildID:   guildID,
		Name:      e.Name,
		RoleIDs:   roles,
		Animated:  e.Animated,
		Managed:   e.Managed,
		Available: e.Available,
	}
}

package model

import (
	"github.com/bwmarrin/discordgo"
)

// Role is the cached snapshot of a guild role.
type Role struct {
	ID          Snowflake
	GuildID     Snowflake
	Name        string
	Color       int
	Hoist       bool
	Position    int
	Permissions int64
	Managed     bool
	Mentionable bool
}

// RoleFromDiscord builds a Role record. Role payloads do not carry their
// guild, so the owning guild ID is supplied by the caller.
func RoleFromDiscord(guildID Snowflake, r *discordgo.Role) Role {
	return Role{
		ID:          MustParseSnowflake(r.ID),
		GuildID:     guildID,
		Name:        r.Name,
		Color:       r.Color,
		Hoist:       r.Hoist,
		Position:    r.Position,
		Permissions: r.Permissions,
		Managed:     r.Managed,
		Mentionable: r.Mentionable,
	}
}

package model

import (
	"github.com/bwmarrin/discordgo"
)

// Guild is the cached snapshot of a guild.
type Guild struct {
	ID          Snowflake
	Name        string
	Icon        string
	OwnerID     Snowflake
	MemberCount int
}

// GuildFromDiscord builds a Guild record from a gateway or REST payload.
func GuildFromDiscord(g *discordgo.Guild) Guild {
	return Guild{
		ID:          MustParseSnowflake(g.ID),
		Name:        g.Name,
		Icon:        g.Icon,
		OwnerID:     snowflakeOrZero(g.OwnerID),
		MemberCount: g.MemberCount,
	}
}

// GuildFromDiscordUserGuild builds a Guild record from the partial guild
// object returned by the current-user guilds endpoint.
func GuildFromDiscordUserGuild(g *discordgo.UserGuild) Guild {
	return Guild{
		ID:   MustParseSnowflake(g.ID),
		Name: g.Name,
		Icon: g.Icon,
	}
}

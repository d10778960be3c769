package model

import (
	"github.com/bwmarrin/discordgo"
)

// Channel is the cached snapshot of a guild or DM channel. GuildID is zero
// for channels that do not belong to a guild.
type Channel struct {
	ID            Snowflake
	GuildID       Snowflake
	Name          string
	Topic         string
	Type          discordgo.ChannelType
	Position      int
	ParentID      Snowflake
	LastMessageID Snowflake
	NSFW          bool
}

// ChannelFromDiscord builds a Channel record from a gateway or REST payload.
func ChannelFromDiscord(ch *discordgo.Channel) Channel {
	return Channel{
		ID:            MustParseSnowflake(ch.ID),
		GuildID:       snowflakeOrZero(ch.GuildID),
		Name:          ch.Name,
		Topic:         ch.Topic,
		Type:          ch.Type,
		Position:      ch.Position,
		ParentID:      snowflakeOrZero(ch.ParentID),
		LastMessageID: snowflakeOrZero(ch.LastMessageID),
		NSFW:          ch.NSFW,
	}
}

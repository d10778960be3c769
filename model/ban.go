package model

import (
	"github.com/bwmarrin/discordgo"
)

// Ban is the cached snapshot of a guild ban.
type Ban struct {
	GuildID Snowflake
	UserID  Snowflake
	Reason  string
}

// Key returns the ban's cache key.
func (b Ban) Key() GuildUserKey {
	return GuildUserKey{GuildID: b.GuildID, UserID: b.UserID}
}

// BanFromDiscord builds a Ban record. Ban payloads do not carry their guild,
// so the owning guild ID is supplied by the caller.
func BanFromDiscord(guildID Snowflake, b *discordgo.GuildBan) Ban {
	return Ban{
		GuildID: guildID,
		UserID:  MustParseSnowflake(b.User.ID),
		Reason:  b.Reason,
	}
}

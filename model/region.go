package model

import (
	"github.com/bwmarrin/discordgo"
)

// VoiceRegion is the cached snapshot of a voice region. Region IDs are the
// one exception to Snowflake addressing: the API identifies them by a short
// string such as "us-west". GuildID is zero for globally-listed regions.
type VoiceRegion struct {
	ID      string
	GuildID Snowflake
	Name    string
}

// RegionKey is the composite cache key of a VoiceRegion.
type RegionKey struct {
	GuildID Snowflake
	ID      string
}

// Key returns the region's cache key.
func (r VoiceRegion) Key() RegionKey {
	return RegionKey{GuildID: r.GuildID, ID: r.ID}
}

// RegionFromDiscord builds a VoiceRegion record scoped to the given guild;
// pass zero for the global region list.
func RegionFromDiscord(guildID Snowflake, r *discordgo.VoiceRegion) VoiceRegion {
	return VoiceRegion{
		ID:      r.ID,
		GuildID: guildID,
		Name:    r.Name,
	}
}

package model

import (
	"github.com/bwmarrin/discordgo"
)

// Webhook is the cached snapshot of a channel webhook. Token is empty unless
// the webhook was observed through a token-bearing endpoint.
type Webhook struct {
	ID            Snowflake
	GuildID       Snowflake
	ChannelID     Snowflake
	Type          discordgo.WebhookType
	Name          string
	Avatar        string
	Token         string
	ApplicationID Snowflake
}

// WebhookFromDiscord builds a Webhook record from a REST payload.
func WebhookFromDiscord(w *discordgo.Webhook) Webhook {
	return Webhook{
		ID:            MustParseSnowflake(w.ID),
		GuildID:       snowflakeOrZero(w.GuildID),
		ChannelID:     snowflakeOrZero(w.ChannelID),
		Type:          w.Type,
		Name:          w.Name,
		Avatar:        w.Avatar,
		Token:         w.Token,
		ApplicationID: snowflakeOrZero(w.ApplicationID),
	}
}

package model

import (
	"time"

	"github.com/bwmarrin/discordgo"
)

// Message is the cached snapshot of a channel message.
type Message struct {
	ID              Snowflake
	ChannelID       Snowflake
	GuildID         Snowflake
	AuthorID        Snowflake
	Content         string
	Timestamp       time.Time
	EditedTimestamp *time.Time
	Pinned          bool
}

// MessageFromDiscord builds a Message record from a gateway or REST payload.
// Partial gateway payloads (message updates) may carry no author.
func MessageFromDiscord(m *discordgo.Message) Message {
	var authorID Snowflake
	if m.Author != nil {
		authorID = MustParseSnowflake(m.Author.ID)
	}
	return Message{
		ID:              MustParseSnowflake(m.ID),
		ChannelID:       MustParseSnowflake(m.ChannelID),
		GuildID:         snowflakeOrZero(m.GuildID),
		AuthorID:        authorID,
		Content:         m.Content,
		Timestamp:       m.Timestamp,
		EditedTimestamp: m.EditedTimestamp,
		Pinned:          m.Pinned,
	}
}

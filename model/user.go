package model

import (
	"github.com/bwmarrin/discordgo"
)

// User is the cached snapshot of a global user.
type User struct {
	ID            Snowflake
	Username      string
	Discriminator string
	GlobalName    string
	Avatar        string
	Bot           bool
}

// UserFromDiscord builds a User record from a gateway or REST payload.
func UserFromDiscord(u *discordgo.User) User {
	return User{
		ID:            MustParseSnowflake(u.ID),
		Username:      u.Username,
		Discriminator: u.Discriminator,
		GlobalName:    u.GlobalName,
		Avatar:        u.Avatar,
		Bot:           u.Bot,
	}
}

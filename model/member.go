package model

import (
	"time"

	"github.com/bwmarrin/discordgo"
)

// Membership is the guild-scoped half of a member: the per-guild state of a
// user, related to the global User record by UserID.
type Membership struct {
	GuildID  Snowflake
	UserID   Snowflake
	Nick     string
	RoleIDs  []Snowflake
	JoinedAt time.Time
	Deaf     bool
	Mute     bool
}

// GuildUserKey is the composite cache key for records scoped to one user
// within one guild (memberships, bans).
type GuildUserKey struct {
	GuildID Snowflake
	UserID  Snowflake
}

// Key returns the membership's cache key.
func (m Membership) Key() GuildUserKey {
	return GuildUserKey{GuildID: m.GuildID, UserID: m.UserID}
}

// Member is the composed view of a guild member: the global User record
// joined with its guild-scoped Membership. It is well-formed only when both
// halves were present; lookups return absence otherwise.
type Member struct {
	User       User
	Membership Membership
}

// MembershipFromDiscord builds a Membership record from a gateway or REST
// payload. The guild ID is taken from the payload when present, falling back
// to the given parent ID since REST member objects omit it.
func MembershipFromDiscord(guildID Snowflake, m *discordgo.Member) Membership {
	if m.GuildID != "" {
		guildID = MustParseSnowflake(m.GuildID)
	}
	roles := make([]Snowflake, len(m.Roles))
	for i, r := range m.Roles {
		roles[i] = MustParseSnowflake(r)
	}
	return Membership{
		GuildID:  guildID,
		UserID:   MustParseSnowflake(m.User.ID),
		Nick:     m.Nick,
		RoleIDs:  roles,
		JoinedAt: m.JoinedAt,
		Deaf:     m.Deaf,
		Mute:     m.Mute,
	}
}

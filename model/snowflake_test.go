package model

import (
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
)

func TestParseSnowflake(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Snowflake
		wantErr bool
	}{
		{name: "plain ID", input: "190631286480486401", want: 190631286480486401},
		{name: "zero", input: "0", want: 0},
		{name: "max uint64", input: "18446744073709551615", want: 18446744073709551615},
		{name: "empty string fails", input: "", wantErr: true},
		{name: "non-numeric fails", input: "abc", wantErr: true},
		{name: "negative fails", input: "-1", wantErr: true},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseSnowflake(testCase.input)
			if testCase.wantErr {
				if err == nil {
					t.Fatalf("ParseSnowflake(%q) succeeded, want error", testCase.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseSnowflake(%q) failed: %v", testCase.input, err)
			}
			if got != testCase.want {
				t.Fatalf("ParseSnowflake(%q) = %d, want %d", testCase.input, got, testCase.want)
			}
		})
	}
}

func TestFormatSnowflakeRoundTrip(t *testing.T) {
	for _, id := range []Snowflake{0, 1, 190631286480486401, 18446744073709551615} {
		if got := MustParseSnowflake(FormatSnowflake(id)); got != id {
			t.Fatalf("round trip of %d yielded %d", id, got)
		}
	}
}

func TestMessageFromDiscord(t *testing.T) {
	ts := time.Date(2021, 9, 1, 12, 0, 0, 0, time.UTC)
	m := MessageFromDiscord(&discordgo.Message{
		ID:        "3",
		ChannelID: "2",
		GuildID:   "1",
		Content:   "hello",
		Author:    &discordgo.User{ID: "4", Username: "someone"},
		Timestamp: ts,
		Pinned:    true,
	})

	want := Message{ID: 3, ChannelID: 2, GuildID: 1, AuthorID: 4, Content: "hello", Timestamp: ts, Pinned: true}
	if m != want {
		t.Fatalf("MessageFromDiscord = %+v, want %+v", m, want)
	}
}

func TestMessageFromDiscordPartial(t *testing.T) {
	// Gateway message updates carry no author and no guild.
	m := MessageFromDiscord(&discordgo.Message{ID: "3", ChannelID: "2", Content: "edited"})
	if m.AuthorID != 0 || m.GuildID != 0 {
		t.Fatalf("partial payload mapped to non-zero foreign IDs: %+v", m)
	}
}

func TestMembershipFromDiscord(t *testing.T) {
	ms := MembershipFromDiscord(10, &discordgo.Member{
		User:  &discordgo.User{ID: "20"},
		Nick:  "nick",
		Roles: []string{"30", "31"},
	})

	if ms.GuildID != 10 || ms.UserID != 20 {
		t.Fatalf("membership keyed as %+v, want guild 10 user 20", ms.Key())
	}
	if len(ms.RoleIDs) != 2 || ms.RoleIDs[0] != 30 || ms.RoleIDs[1] != 31 {
		t.Fatalf("role IDs = %v, want [30 31]", ms.RoleIDs)
	}
}

func TestMembershipFromDiscordPrefersPayloadGuild(t *testing.T) {
	ms := MembershipFromDiscord(10, &discordgo.Member{
		GuildID: "11",
		User:    &discordgo.User{ID: "20"},
	})
	if ms.GuildID != 11 {
		t.Fatalf("guild ID = %d, want payload value 11", ms.GuildID)
	}
}

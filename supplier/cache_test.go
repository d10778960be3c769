package supplier

import (
	"context"
	"errors"
	"testing"

	"pkg.frost.gg/frostline/cache"
	"pkg.frost.gg/frostline/model"
)

func newPopulatedCacheSupplier() *CacheSupplier {
	c := cache.New()
	c.Put(cache.Guilds, model.Snowflake(1), model.Guild{ID: 1, Name: "guild"})
	c.Put(cache.Channels, model.Snowflake(10), model.Channel{ID: 10, GuildID: 1, Name: "general"})
	c.Put(cache.Channels, model.Snowflake(11), model.Channel{ID: 11, GuildID: 1, Name: "random"})
	c.Put(cache.Channels, model.Snowflake(12), model.Channel{ID: 12, GuildID: 2, Name: "other"})
	c.Put(cache.Users, model.Snowflake(100), model.User{ID: 100, Username: "alice"})
	c.Put(cache.Users, model.Snowflake(101), model.User{ID: 101, Username: "bob"})
	c.Put(cache.Members, model.GuildUserKey{GuildID: 1, UserID: 100},
		model.Membership{GuildID: 1, UserID: 100, Nick: "al"})
	for id := model.Snowflake(200); id < 210; id++ {
		c.Put(cache.Messages, id, model.Message{ID: id, ChannelID: 10, AuthorID: 100})
	}
	return NewCacheSupplier(c)
}

func TestCacheSupplierSingleLookups(t *testing.T) {
	t.Parallel()

	s := newPopulatedCacheSupplier()
	ctx := context.Background()

	g, err := s.GetGuildOrNil(ctx, 1)
	if err != nil || g == nil || g.Name != "guild" {
		t.Fatalf("GetGuildOrNil = (%+v, %v)", g, err)
	}

	g, err = s.GetGuildOrNil(ctx, 99)
	if err != nil || g != nil {
		t.Fatalf("absent guild = (%+v, %v), want (nil, nil)", g, err)
	}

	if _, err := s.GetGuild(ctx, 99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("strict lookup error = %v, want ErrNotFound", err)
	}

	u, err := s.GetUser(ctx, 100)
	if err != nil || u.Username != "alice" {
		t.Fatalf("GetUser = (%+v, %v)", u, err)
	}
}

func TestCacheSupplierNotFoundNamesEntity(t *testing.T) {
	t.Parallel()

	s := newPopulatedCacheSupplier()
	_, err := s.GetMember(context.Background(), 1, 101)

	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("error = %v, want *NotFoundError", err)
	}
	if nf.Kind != "member" || len(nf.IDs) != 2 {
		t.Fatalf("NotFoundError = %+v", nf)
	}
}

func TestCacheSupplierMemberComposition(t *testing.T) {
	t.Parallel()

	s := newPopulatedCacheSupplier()
	ctx := context.Background()

	m, err := s.GetMemberOrNil(ctx, 1, 100)
	if err != nil || m == nil {
		t.Fatalf("GetMemberOrNil = (%v, %v)", m, err)
	}
	if m.User.Username != "alice" || m.Membership.Nick != "al" {
		t.Fatalf("composed member = %+v", m)
	}

	// user cached but no membership in the guild
	if m, err := s.GetMemberOrNil(ctx, 1, 101); err != nil || m != nil {
		t.Fatalf("user without membership = (%v, %v), want (nil, nil)", m, err)
	}

	// membership exists but the user record is gone
	s.Cache().Remove(cache.Users, model.Snowflake(100))
	if m, err := s.GetMemberOrNil(ctx, 1, 100); err != nil || m != nil {
		t.Fatalf("membership without user = (%v, %v), want (nil, nil)", m, err)
	}
}

func TestCacheSupplierGetGuildMembers(t *testing.T) {
	t.Parallel()

	s := newPopulatedCacheSupplier()
	seq, err := s.GetGuildMembers(context.Background(), 1, 50)
	if err != nil {
		t.Fatalf("GetGuildMembers failed: %v", err)
	}
	members, err := collect(seq)
	if err != nil {
		t.Fatalf("collect failed: %v", err)
	}
	if len(members) != 1 || members[0].User.ID != 100 {
		t.Fatalf("members = %+v, want only user 100", members)
	}
}

func TestCacheSupplierGetGuildMembersLimit(t *testing.T) {
	t.Parallel()

	c := cache.New()
	for id := model.Snowflake(1); id <= 5; id++ {
		c.Put(cache.Users, id, model.User{ID: id})
		c.Put(cache.Members, model.GuildUserKey{GuildID: 1, UserID: id},
			model.Membership{GuildID: 1, UserID: id})
	}
	s := NewCacheSupplier(c)

	seq, err := s.GetGuildMembers(context.Background(), 1, 3)
	if err != nil {
		t.Fatalf("GetGuildMembers failed: %v", err)
	}
	members, _ := collect(seq)
	if len(members) != 3 {
		t.Fatalf("got %d members, want limit of 3", len(members))
	}
}

func TestCacheSupplierInvalidLimit(t *testing.T) {
	t.Parallel()

	s := newPopulatedCacheSupplier()
	ctx := context.Background()

	for _, limit := range []int{0, -1} {
		if _, err := s.GetGuildMembers(ctx, 1, limit); !errors.Is(err, ErrInvalidArgument) {
			t.Fatalf("GetGuildMembers(limit=%d) error = %v, want ErrInvalidArgument", limit, err)
		}
		if _, err := s.GetMessagesBefore(ctx, 10, 205, limit); !errors.Is(err, ErrInvalidArgument) {
			t.Fatalf("GetMessagesBefore(limit=%d) error = %v, want ErrInvalidArgument", limit, err)
		}
		if _, err := s.GetMessagesAround(ctx, 10, 205, limit); !errors.Is(err, ErrInvalidArgument) {
			t.Fatalf("GetMessagesAround(limit=%d) error = %v, want ErrInvalidArgument", limit, err)
		}
		if _, err := s.GetCurrentUserGuilds(ctx, limit); !errors.Is(err, ErrInvalidArgument) {
			t.Fatalf("GetCurrentUserGuilds(limit=%d) error = %v, want ErrInvalidArgument", limit, err)
		}
	}
}

func TestCacheSupplierMessagesBeforeAfter(t *testing.T) {
	t.Parallel()

	s := newPopulatedCacheSupplier()
	ctx := context.Background()

	seq, err := s.GetMessagesBefore(ctx, 10, 205, 100)
	if err != nil {
		t.Fatalf("GetMessagesBefore failed: %v", err)
	}
	before, _ := collect(seq)
	for _, m := range before {
		if m.ID >= 205 {
			t.Fatalf("message %d yielded by before-query at 205", m.ID)
		}
	}
	if len(before) != 5 {
		t.Fatalf("before-query yielded %d messages, want 5", len(before))
	}

	seq, err = s.GetMessagesAfter(ctx, 10, 205, 2)
	if err != nil {
		t.Fatalf("GetMessagesAfter failed: %v", err)
	}
	after, _ := collect(seq)
	if len(after) != 2 {
		t.Fatalf("after-query yielded %d messages, want limit of 2", len(after))
	}
	for _, m := range after {
		if m.ID <= 205 {
			t.Fatalf("message %d yielded by after-query at 205", m.ID)
		}
	}
}

func TestCacheSupplierMessagesAroundSplitsLimit(t *testing.T) {
	t.Parallel()

	s := newPopulatedCacheSupplier()
	seq, err := s.GetMessagesAround(context.Background(), 10, 205, 5)
	if err != nil {
		t.Fatalf("GetMessagesAround failed: %v", err)
	}
	msgs, _ := collect(seq)

	// an odd limit floors both halves: 2 before, 2 after
	if len(msgs) != 4 {
		t.Fatalf("around-query yielded %d messages, want 4", len(msgs))
	}
	lower, higher := 0, 0
	for _, m := range msgs {
		switch {
		case m.ID < 205:
			lower++
		case m.ID > 205:
			higher++
		default:
			t.Fatalf("around-query yielded the anchor message %d", m.ID)
		}
	}
	if lower != 2 || higher != 2 {
		t.Fatalf("around-query split %d/%d, want 2/2", lower, higher)
	}
}

func TestCacheSupplierMessagesAroundLimitOne(t *testing.T) {
	t.Parallel()

	s := newPopulatedCacheSupplier()
	seq, err := s.GetMessagesAround(context.Background(), 10, 205, 1)
	if err != nil {
		t.Fatalf("GetMessagesAround failed: %v", err)
	}
	msgs, _ := collect(seq)
	if len(msgs) != 0 {
		t.Fatalf("around-query with limit 1 yielded %d messages, want 0", len(msgs))
	}
}

func TestCacheSupplierGuildScopedCollections(t *testing.T) {
	t.Parallel()

	s := newPopulatedCacheSupplier()
	ctx := context.Background()

	chans, err := collect(s.GetGuildChannels(ctx, 1))
	if err != nil {
		t.Fatalf("GetGuildChannels failed: %v", err)
	}
	if len(chans) != 2 {
		t.Fatalf("guild 1 has %d cached channels, want 2", len(chans))
	}

	guilds, err := collect(s.Guilds(ctx))
	if err != nil || len(guilds) != 1 {
		t.Fatalf("Guilds = (%v, %v), want one guild", guilds, err)
	}
}

func TestCacheSupplierChannelPins(t *testing.T) {
	t.Parallel()

	s := newPopulatedCacheSupplier()
	s.Cache().Put(cache.Messages, model.Snowflake(300),
		model.Message{ID: 300, ChannelID: 10, Pinned: true})

	pins, err := collect(s.GetChannelPins(context.Background(), 10))
	if err != nil {
		t.Fatalf("GetChannelPins failed: %v", err)
	}
	if len(pins) != 1 || pins[0].ID != 300 {
		t.Fatalf("pins = %+v, want only message 300", pins)
	}
}

func TestCacheSupplierSelf(t *testing.T) {
	t.Parallel()

	s := newPopulatedCacheSupplier()
	ctx := context.Background()

	// before the gateway identified the session
	if u, err := s.GetSelfOrNil(ctx); err != nil || u != nil {
		t.Fatalf("GetSelfOrNil before identify = (%v, %v), want (nil, nil)", u, err)
	}
	if _, err := s.GetSelf(ctx); !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetSelf before identify error = %v, want ErrNotFound", err)
	}

	s.SetSelfID(100)
	u, err := s.GetSelf(ctx)
	if err != nil || u.Username != "alice" {
		t.Fatalf("GetSelf = (%+v, %v)", u, err)
	}
}

func TestCacheSupplierCurrentUserGuildsEmpty(t *testing.T) {
	t.Parallel()

	s := newPopulatedCacheSupplier()
	seq, err := s.GetCurrentUserGuilds(context.Background(), 10)
	if err != nil {
		t.Fatalf("GetCurrentUserGuilds failed: %v", err)
	}
	if guilds, _ := collect(seq); len(guilds) != 0 {
		t.Fatalf("cache variant yielded %d guilds, want none", len(guilds))
	}
}

func TestCacheSupplierContextCancellation(t *testing.T) {
	t.Parallel()

	s := newPopulatedCacheSupplier()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := s.GetGuildOrNil(ctx, 1); !errors.Is(err, context.Canceled) {
		t.Fatalf("GetGuildOrNil error = %v, want context.Canceled", err)
	}
	if _, err := collect(s.Guilds(ctx)); !errors.Is(err, context.Canceled) {
		t.Fatalf("Guilds error = %v, want context.Canceled", err)
	}
}

func TestCacheSupplierRegionScoping(t *testing.T) {
	t.Parallel()

	c := cache.New()
	c.Put(cache.Regions, model.RegionKey{ID: "global"}, model.VoiceRegion{ID: "global", Name: "Global"})
	c.Put(cache.Regions, model.RegionKey{GuildID: 1, ID: "eu"}, model.VoiceRegion{GuildID: 1, ID: "eu", Name: "Europe"})
	s := NewCacheSupplier(c)
	ctx := context.Background()

	global, err := collect(s.Regions(ctx))
	if err != nil || len(global) != 1 || global[0].ID != "global" {
		t.Fatalf("Regions = (%+v, %v), want only the unscoped region", global, err)
	}

	scoped, err := collect(s.GetGuildVoiceRegions(ctx, 1))
	if err != nil || len(scoped) != 1 || scoped[0].ID != "eu" {
		t.Fatalf("GetGuildVoiceRegions = (%+v, %v), want only the guild region", scoped, err)
	}
}

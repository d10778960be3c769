package supplier

import (
	"context"
	"iter"
	"sync/atomic"

	"pkg.frost.gg/frostline/cache"
	"pkg.frost.gg/frostline/model"
)

// CacheSupplier serves every read from the local entity store. It performs
// no network I/O and therefore never produces a RemoteError; data the
// gateway has not observed yet simply resolves to absence.
type CacheSupplier struct {
	cache  *cache.Cache
	selfID atomic.Uint64
}

// NewCacheSupplier creates a supplier reading from the given entity store.
func NewCacheSupplier(c *cache.Cache) *CacheSupplier {
	return &CacheSupplier{cache: c}
}

// SetSelfID records the authenticated user's ID, captured from the gateway
// Ready event. GetSelfOrNil resolves to absence until it is set.
func (s *CacheSupplier) SetSelfID(id model.Snowflake) {
	s.selfID.Store(id)
}

// Cache returns the backing entity store.
func (s *CacheSupplier) Cache() *cache.Cache {
	return s.cache
}

func (s *CacheSupplier) Guilds(ctx context.Context) iter.Seq2[model.Guild, error] {
	return liftScan(ctx, cache.Find[model.Guild](s.cache, cache.Guilds, nil))
}

func (s *CacheSupplier) Regions(ctx context.Context) iter.Seq2[model.VoiceRegion, error] {
	return liftScan(ctx, cache.Find(s.cache, cache.Regions, func(r model.VoiceRegion) bool {
		return r.GuildID == 0
	}))
}

func (s *CacheSupplier) GetGuildOrNil(ctx context.Context, id model.Snowflake) (*model.Guild, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	g, ok := cache.First(s.cache, cache.Guilds, func(g model.Guild) bool { return g.ID == id })
	if !ok {
		return nil, nil
	}
	return &g, nil
}

func (s *CacheSupplier) GetGuild(ctx context.Context, id model.Snowflake) (*model.Guild, error) {
	g, err := s.GetGuildOrNil(ctx, id)
	return require(g, err, "guild", id)
}

func (s *CacheSupplier) GetChannelOrNil(ctx context.Context, id model.Snowflake) (*model.Channel, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ch, ok := cache.First(s.cache, cache.Channels, func(ch model.Channel) bool { return ch.ID == id })
	if !ok {
		return nil, nil
	}
	return &ch, nil
}

func (s *CacheSupplier) GetChannel(ctx context.Context, id model.Snowflake) (*model.Channel, error) {
	ch, err := s.GetChannelOrNil(ctx, id)
	return require(ch, err, "channel", id)
}

func (s *CacheSupplier) GetGuildChannels(ctx context.Context, guildID model.Snowflake) iter.Seq2[model.Channel, error] {
	return liftScan(ctx, cache.Find(s.cache, cache.Channels, func(ch model.Channel) bool {
		return ch.GuildID == guildID
	}))
}

func (s *CacheSupplier) GetChannelPins(ctx context.Context, channelID model.Snowflake) iter.Seq2[model.Message, error] {
	return liftScan(ctx, cache.Find(s.cache, cache.Messages, func(m model.Message) bool {
		return m.ChannelID == channelID && m.Pinned
	}))
}

func (s *CacheSupplier) GetUserOrNil(ctx context.Context, id model.Snowflake) (*model.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	u, ok := cache.First(s.cache, cache.Users, func(u model.User) bool { return u.ID == id })
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (s *CacheSupplier) GetUser(ctx context.Context, id model.Snowflake) (*model.User, error) {
	u, err := s.GetUserOrNil(ctx, id)
	return require(u, err, "user", id)
}

func (s *CacheSupplier) GetSelfOrNil(ctx context.Context) (*model.User, error) {
	id := s.selfID.Load()
	if id == 0 {
		return nil, nil
	}
	return s.GetUserOrNil(ctx, id)
}

func (s *CacheSupplier) GetSelf(ctx context.Context) (*model.User, error) {
	u, err := s.GetSelfOrNil(ctx)
	return require(u, err, "current user")
}

func (s *CacheSupplier) GetMemberOrNil(ctx context.Context, guildID, userID model.Snowflake) (*model.Member, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	u, ok := cache.First(s.cache, cache.Users, func(u model.User) bool { return u.ID == userID })
	if !ok {
		return nil, nil
	}
	ms, ok := cache.First(s.cache, cache.Members, func(m model.Membership) bool {
		return m.GuildID == guildID && m.UserID == userID
	})
	if !ok {
		return nil, nil
	}
	return &model.Member{User: u, Membership: ms}, nil
}

func (s *CacheSupplier) GetMember(ctx context.Context, guildID, userID model.Snowflake) (*model.Member, error) {
	m, err := s.GetMemberOrNil(ctx, guildID, userID)
	return require(m, err, "member", guildID, userID)
}

// GetGuildMembers enumerates every cached user and resolves its membership
// in the guild, discarding users with none. The scan cost grows with the
// total user count across all guilds, not with the guild's size.
func (s *CacheSupplier) GetGuildMembers(ctx context.Context, guildID model.Snowflake, limit int) (iter.Seq2[model.Member, error], error) {
	if limit <= 0 {
		return nil, errInvalidLimit(limit)
	}
	seq := func(yield func(model.Member, error) bool) {
		for u := range cache.Find[model.User](s.cache, cache.Users, nil) {
			if err := ctx.Err(); err != nil {
				yield(model.Member{}, err)
				return
			}
			ms, ok := cache.First(s.cache, cache.Members, func(m model.Membership) bool {
				return m.GuildID == guildID && m.UserID == u.ID
			})
			if !ok {
				continue
			}
			if !yield(model.Member{User: u, Membership: ms}, nil) {
				return
			}
		}
	}
	return takeSeq(seq, limit), nil
}

func (s *CacheSupplier) GetMessageOrNil(ctx context.Context, channelID, messageID model.Snowflake) (*model.Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m, ok := cache.First(s.cache, cache.Messages, func(m model.Message) bool { return m.ID == messageID })
	if !ok {
		return nil, nil
	}
	return &m, nil
}

func (s *CacheSupplier) GetMessage(ctx context.Context, channelID, messageID model.Snowflake) (*model.Message, error) {
	m, err := s.GetMessageOrNil(ctx, channelID, messageID)
	return require(m, err, "message", channelID, messageID)
}

func (s *CacheSupplier) GetMessagesBefore(ctx context.Context, channelID, messageID model.Snowflake, limit int) (iter.Seq2[model.Message, error], error) {
	if limit <= 0 {
		return nil, errInvalidLimit(limit)
	}
	seq := liftScan(ctx, cache.Find(s.cache, cache.Messages, func(m model.Message) bool {
		return m.ChannelID == channelID && m.ID < messageID
	}))
	return takeSeq(seq, limit), nil
}

func (s *CacheSupplier) GetMessagesAfter(ctx context.Context, channelID, messageID model.Snowflake, limit int) (iter.Seq2[model.Message, error], error) {
	if limit <= 0 {
		return nil, errInvalidLimit(limit)
	}
	seq := liftScan(ctx, cache.Find(s.cache, cache.Messages, func(m model.Message) bool {
		return m.ChannelID == channelID && m.ID > messageID
	}))
	return takeSeq(seq, limit), nil
}

func (s *CacheSupplier) GetMessagesAround(ctx context.Context, channelID, messageID model.Snowflake, limit int) (iter.Seq2[model.Message, error], error) {
	if limit <= 0 {
		return nil, errInvalidLimit(limit)
	}
	half := limit / 2
	if half == 0 {
		return emptySeq[model.Message](), nil
	}
	before, err := s.GetMessagesBefore(ctx, channelID, messageID, half)
	if err != nil {
		return nil, err
	}
	after, err := s.GetMessagesAfter(ctx, channelID, messageID, half)
	if err != nil {
		return nil, err
	}
	return concatSeq(before, after), nil
}

func (s *CacheSupplier) GetRoleOrNil(ctx context.Context, guildID, roleID model.Snowflake) (*model.Role, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r, ok := cache.First(s.cache, cache.Roles, func(r model.Role) bool {
		return r.ID == roleID && r.GuildID == guildID
	})
	if !ok {
		return nil, nil
	}
	return &r, nil
}

func (s *CacheSupplier) GetRole(ctx context.Context, guildID, roleID model.Snowflake) (*model.Role, error) {
	r, err := s.GetRoleOrNil(ctx, guildID, roleID)
	return require(r, err, "role", guildID, roleID)
}

func (s *CacheSupplier) GetGuildRoles(ctx context.Context, guildID model.Snowflake) iter.Seq2[model.Role, error] {
	return liftScan(ctx, cache.Find(s.cache, cache.Roles, func(r model.Role) bool {
		return r.GuildID == guildID
	}))
}

func (s *CacheSupplier) GetGuildBanOrNil(ctx context.Context, guildID, userID model.Snowflake) (*model.Ban, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b, ok := cache.First(s.cache, cache.Bans, func(b model.Ban) bool {
		return b.GuildID == guildID && b.UserID == userID
	})
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (s *CacheSupplier) GetGuildBan(ctx context.Context, guildID, userID model.Snowflake) (*model.Ban, error) {
	b, err := s.GetGuildBanOrNil(ctx, guildID, userID)
	return require(b, err, "ban", guildID, userID)
}

func (s *CacheSupplier) GetGuildBans(ctx context.Context, guildID model.Snowflake) iter.Seq2[model.Ban, error] {
	return liftScan(ctx, cache.Find(s.cache, cache.Bans, func(b model.Ban) bool {
		return b.GuildID == guildID
	}))
}

func (s *CacheSupplier) GetEmojiOrNil(ctx context.Context, guildID, emojiID model.Snowflake) (*model.Emoji, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	e, ok := cache.First(s.cache, cache.Emojis, func(e model.Emoji) bool {
		return e.GuildID == guildID && e.ID == emojiID
	})
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func (s *CacheSupplier) GetEmoji(ctx context.Context, guildID, emojiID model.Snowflake) (*model.Emoji, error) {
	e, err := s.GetEmojiOrNil(ctx, guildID, emojiID)
	return require(e, err, "emoji", guildID, emojiID)
}

func (s *CacheSupplier) GetEmojis(ctx context.Context, guildID model.Snowflake) iter.Seq2[model.Emoji, error] {
	return liftScan(ctx, cache.Find(s.cache, cache.Emojis, func(e model.Emoji) bool {
		return e.GuildID == guildID
	}))
}

func (s *CacheSupplier) GetGuildVoiceRegions(ctx context.Context, guildID model.Snowflake) iter.Seq2[model.VoiceRegion, error] {
	return liftScan(ctx, cache.Find(s.cache, cache.Regions, func(r model.VoiceRegion) bool {
		return r.GuildID == guildID
	}))
}

func (s *CacheSupplier) GetWebhookOrNil(ctx context.Context, id model.Snowflake) (*model.Webhook, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	w, ok := cache.First(s.cache, cache.Webhooks, func(w model.Webhook) bool { return w.ID == id })
	if !ok {
		return nil, nil
	}
	return &w, nil
}

func (s *CacheSupplier) GetWebhook(ctx context.Context, id model.Snowflake) (*model.Webhook, error) {
	w, err := s.GetWebhookOrNil(ctx, id)
	return require(w, err, "webhook", id)
}

func (s *CacheSupplier) GetWebhookWithTokenOrNil(ctx context.Context, id model.Snowflake, token string) (*model.Webhook, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	w, ok := cache.First(s.cache, cache.Webhooks, func(w model.Webhook) bool {
		return w.ID == id && w.Token == token
	})
	if !ok {
		return nil, nil
	}
	return &w, nil
}

func (s *CacheSupplier) GetWebhookWithToken(ctx context.Context, id model.Snowflake, token string) (*model.Webhook, error) {
	w, err := s.GetWebhookWithTokenOrNil(ctx, id, token)
	return require(w, err, "webhook", id)
}

func (s *CacheSupplier) GetChannelWebhooks(ctx context.Context, channelID model.Snowflake) iter.Seq2[model.Webhook, error] {
	return liftScan(ctx, cache.Find(s.cache, cache.Webhooks, func(w model.Webhook) bool {
		return w.ChannelID == channelID
	}))
}

func (s *CacheSupplier) GetGuildWebhooks(ctx context.Context, guildID model.Snowflake) iter.Seq2[model.Webhook, error] {
	return liftScan(ctx, cache.Find(s.cache, cache.Webhooks, func(w model.Webhook) bool {
		return w.GuildID == guildID
	}))
}

// GetCurrentUserGuilds has no cache representation of guild membership of
// the current user beyond the guild partition itself; it yields nothing so
// that a fallback chain defers to the remote supplier.
func (s *CacheSupplier) GetCurrentUserGuilds(ctx context.Context, limit int) (iter.Seq2[model.Guild, error], error) {
	if limit <= 0 {
		return nil, errInvalidLimit(limit)
	}
	return emptySeq[model.Guild](), nil
}

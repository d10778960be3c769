// Package dispatch feeds gateway events into the entity store, keeping the
// cache-backed supplier's view of remote state fresh. It is the only writer
// of the cache besides explicit Put/Remove calls by the embedding
// application.
package dispatch

import (
	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"pkg.frost.gg/frostline/cache"
	"pkg.frost.gg/frostline/model"
)

// Dispatcher applies gateway events to an entity store. Handler methods are
// plain functions of the event payload so they can be driven without a live
// session.
type Dispatcher struct {
	logger *zap.SugaredLogger
	cache  *cache.Cache
}

// NewDispatcher creates a Dispatcher writing into the given entity store.
func NewDispatcher(logger *zap.Logger, c *cache.Cache) *Dispatcher {
	return &Dispatcher{logger: logger.Sugar(), cache: c}
}

// Register attaches every handler to the session.
func (d *Dispatcher) Register(s *discordgo.Session) {
	s.AddHandler(d.OnReady)
	s.AddHandler(d.OnGuildCreate)
	s.AddHandler(d.OnGuildUpdate)
	s.AddHandler(d.OnGuildDelete)
	s.AddHandler(d.OnChannelCreate)
	s.AddHandler(d.OnChannelUpdate)
	s.AddHandler(d.OnChannelDelete)
	s.AddHandler(d.OnGuildMemberAdd)
	s.AddHandler(d.OnGuildMemberUpdate)
	s.AddHandler(d.OnGuildMemberRemove)
	s.AddHandler(d.OnGuildRoleCreate)
	s.AddHandler(d.OnGuildRoleUpdate)
	s.AddHandler(d.OnGuildRoleDelete)
	s.AddHandler(d.OnMessageCreate)
	s.AddHandler(d.OnMessageUpdate)
	s.AddHandler(d.OnMessageDelete)
	s.AddHandler(d.OnGuildBanAdd)
	s.AddHandler(d.OnGuildBanRemove)
	s.AddHandler(d.OnGuildEmojisUpdate)
}

func (d *Dispatcher) OnReady(_ *discordgo.Session, e *discordgo.Ready) {
	if e.User != nil {
		u := model.UserFromDiscord(e.User)
		d.cache.Put(cache.Users, u.ID, u)
	}
	d.logger.Infof("Gateway ready, session %s.", e.SessionID)
}

// putGuild stores the guild record together with every nested payload the
// gateway delivers with it.
func (d *Dispatcher) putGuild(g *discordgo.Guild) {
	guild := model.GuildFromDiscord(g)
	d.cache.Put(cache.Guilds, guild.ID, guild)

	for _, ch := range g.Channels {
		c := model.ChannelFromDiscord(ch)
		d.cache.Put(cache.Channels, c.ID, c)
	}
	for _, r := range g.Roles {
		role := model.RoleFromDiscord(guild.ID, r)
		d.cache.Put(cache.Roles, role.ID, role)
	}
	for _, e := range g.Emojis {
		emoji := model.EmojiFromDiscord(guild.ID, e)
		d.cache.Put(cache.Emojis, emoji.ID, emoji)
	}
	for _, m := range g.Members {
		if m.User == nil {
			continue
		}
		u := model.UserFromDiscord(m.User)
		d.cache.Put(cache.Users, u.ID, u)
		ms := model.MembershipFromDiscord(guild.ID, m)
		d.cache.Put(cache.Members, ms.Key(), ms)
	}
}

func (d *Dispatcher) OnGuildCreate(_ *discordgo.Session, e *discordgo.GuildCreate) {
	d.putGuild(e.Guild)
	d.logger.Debugf("Cached guild %s.", e.ID)
}

func (d *Dispatcher) OnGuildUpdate(_ *discordgo.Session, e *discordgo.GuildUpdate) {
	d.putGuild(e.Guild)
}

// OnGuildDelete removes the guild record and every record scoped to it.
func (d *Dispatcher) OnGuildDelete(_ *discordgo.Session, e *discordgo.GuildDelete) {
	guildID := model.MustParseSnowflake(e.ID)
	d.cache.Remove(cache.Guilds, guildID)

	for ch := range cache.Find(d.cache, cache.Channels, func(c model.Channel) bool { return c.GuildID == guildID }) {
		d.cache.Remove(cache.Channels, ch.ID)
	}
	for r := range cache.Find(d.cache, cache.Roles, func(r model.Role) bool { return r.GuildID == guildID }) {
		d.cache.Remove(cache.Roles, r.ID)
	}
	for em := range cache.Find(d.cache, cache.Emojis, func(e model.Emoji) bool { return e.GuildID == guildID }) {
		d.cache.Remove(cache.Emojis, em.ID)
	}
	for m := range cache.Find(d.cache, cache.Members, func(m model.Membership) bool { return m.GuildID == guildID }) {
		d.cache.Remove(cache.Members, m.Key())
	}
	for b := range cache.Find(d.cache, cache.Bans, func(b model.Ban) bool { return b.GuildID == guildID }) {
		d.cache.Remove(cache.Bans, b.Key())
	}
	d.logger.Debugf("Evicted guild %s and its scoped records.", e.ID)
}

func (d *Dispatcher) OnChannelCreate(_ *discordgo.Session, e *discordgo.ChannelCreate) {
	ch := model.ChannelFromDiscord(e.Channel)
	d.cache.Put(cache.Channels, ch.ID, ch)
}

func (d *Dispatcher) OnChannelUpdate(_ *discordgo.Session, e *discordgo.ChannelUpdate) {
	ch := model.ChannelFromDiscord(e.Channel)
	d.cache.Put(cache.Channels, ch.ID, ch)
}

func (d *Dispatcher) OnChannelDelete(_ *discordgo.Session, e *discordgo.ChannelDelete) {
	d.cache.Remove(cache.Channels, model.MustParseSnowflake(e.ID))
}

func (d *Dispatcher) OnGuildMemberAdd(_ *discordgo.Session, e *discordgo.GuildMemberAdd) {
	d.putMember(e.Member)
}

func (d *Dispatcher) OnGuildMemberUpdate(_ *discordgo.Session, e *discordgo.GuildMemberUpdate) {
	d.putMember(e.Member)
}

func (d *Dispatcher) putMember(m *discordgo.Member) {
	if m.User == nil {
		return
	}
	u := model.UserFromDiscord(m.User)
	d.cache.Put(cache.Users, u.ID, u)
	ms := model.MembershipFromDiscord(0, m)
	d.cache.Put(cache.Members, ms.Key(), ms)
}

// OnGuildMemberRemove drops the guild-scoped membership record; the global
// user record stays since other guilds may still reference it.
func (d *Dispatcher) OnGuildMemberRemove(_ *discordgo.Session, e *discordgo.GuildMemberRemove) {
	if e.User == nil {
		return
	}
	key := model.GuildUserKey{
		GuildID: model.MustParseSnowflake(e.GuildID),
		UserID:  model.MustParseSnowflake(e.User.ID),
	}
	d.cache.Remove(cache.Members, key)
}

func (d *Dispatcher) OnGuildRoleCreate(_ *discordgo.Session, e *discordgo.GuildRoleCreate) {
	r := model.RoleFromDiscord(model.MustParseSnowflake(e.GuildID), e.Role)
	d.cache.Put(cache.Roles, r.ID, r)
}

func (d *Dispatcher) OnGuildRoleUpdate(_ *discordgo.Session, e *discordgo.GuildRoleUpdate) {
	r := model.RoleFromDiscord(model.MustParseSnowflake(e.GuildID), e.Role)
	d.cache.Put(cache.Roles, r.ID, r)
}

func (d *Dispatcher) OnGuildRoleDelete(_ *discordgo.Session, e *discordgo.GuildRoleDelete) {
	d.cache.Remove(cache.Roles, model.MustParseSnowflake(e.RoleID))
}

func (d *Dispatcher) OnMessageCreate(_ *discordgo.Session, e *discordgo.MessageCreate) {
	m := model.MessageFromDiscord(e.Message)
	d.cache.Put(cache.Messages, m.ID, m)
	if e.Author != nil {
		u := model.UserFromDiscord(e.Author)
		d.cache.Put(cache.Users, u.ID, u)
	}
}

// OnMessageUpdate merges the partial update payload over the cached record:
// gateway message updates omit immutable fields such as the author.
func (d *Dispatcher) OnMessageUpdate(_ *discordgo.Session, e *discordgo.MessageUpdate) {
	m := model.MessageFromDiscord(e.Message)
	if prev, ok := d.cache.Get(cache.Messages, m.ID); ok {
		if existing, ok := prev.(model.Message); ok {
			if m.AuthorID == 0 {
				m.AuthorID = existing.AuthorID
			}
			if m.Timestamp.IsZero() {
				m.Timestamp = existing.Timestamp
			}
		}
	}
	d.cache.Put(cache.Messages, m.ID, m)
}

func (d *Dispatcher) OnMessageDelete(_ *discordgo.Session, e *discordgo.MessageDelete) {
	d.cache.Remove(cache.Messages, model.MustParseSnowflake(e.ID))
}

func (d *Dispatcher) OnGuildBanAdd(_ *discordgo.Session, e *discordgo.GuildBanAdd) {
	if e.User == nil {
		return
	}
	b := model.Ban{
		GuildID: model.MustParseSnowflake(e.GuildID),
		UserID:  model.MustParseSnowflake(e.User.ID),
	}
	d.cache.Put(cache.Bans, b.Key(), b)
}

func (d *Dispatcher) OnGuildBanRemove(_ *discordgo.Session, e *discordgo.GuildBanRemove) {
	if e.User == nil {
		return
	}
	key := model.GuildUserKey{
		GuildID: model.MustParseSnowflake(e.GuildID),
		UserID:  model.MustParseSnowflake(e.User.ID),
	}
	d.cache.Remove(cache.Bans, key)
}

// OnGuildEmojisUpdate replaces the guild's emoji set wholesale; the event
// carries the full list.
func (d *Dispatcher) OnGuildEmojisUpdate(_ *discordgo.Session, e *discordgo.GuildEmojisUpdate) {
	guildID := model.MustParseSnowflake(e.GuildID)
	for em := range cache.Find(d.cache, cache.Emojis, func(e model.Emoji) bool { return e.GuildID == guildID }) {
		d.cache.Remove(cache.Emojis, em.ID)
	}
	for _, de := range e.Emojis {
		em := model.EmojiFromDiscord(guildID, de)
		d.cache.Put(cache.Emojis, em.ID, em)
	}
}

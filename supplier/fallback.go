package supplier

import (
	"context"
	"iter"

	"pkg.frost.gg/frostline/model"
)

// WithFallback composes two suppliers so that second is consulted only when
// first yields absence: a nil record for single lookups, or a sequence that
// produced no elements for collections. A failure of first propagates as-is
// and never triggers the fallback. Composition chains: a cache supplier with
// a REST fallback is itself a valid first for a further fallback.
func WithFallback(first, second EntitySupplier) EntitySupplier {
	return &fallbackSupplier{first: first, second: second}
}

type fallbackSupplier struct {
	first  EntitySupplier
	second EntitySupplier
}

// orNil resolves a single lookup against both suppliers in order.
func orNil[T any](firstLookup, secondLookup func() (*T, error)) (*T, error) {
	v, err := firstLookup()
	if err != nil || v != nil {
		return v, err
	}
	return secondLookup()
}

func (s *fallbackSupplier) Guilds(ctx context.Context) iter.Seq2[model.Guild, error] {
	return switchIfEmpty(s.first.Guilds(ctx), s.second.Guilds(ctx))
}

func (s *fallbackSupplier) Regions(ctx context.Context) iter.Seq2[model.VoiceRegion, error] {
	return switchIfEmpty(s.first.Regions(ctx), s.second.Regions(ctx))
}

func (s *fallbackSupplier) GetGuildOrNil(ctx context.Context, id model.Snowflake) (*model.Guild, error) {
	return orNil(
		func() (*model.Guild, error) { return s.first.GetGuildOrNil(ctx, id) },
		func() (*model.Guild, error) { return s.second.GetGuildOrNil(ctx, id) },
	)
}

func (s *fallbackSupplier) GetGuild(ctx context.Context, id model.Snowflake) (*model.Guild, error) {
	g, err := s.GetGuildOrNil(ctx, id)
	return require(g, err, "guild", id)
}

func (s *fallbackSupplier) GetChannelOrNil(ctx context.Context, id model.Snowflake) (*model.Channel, error) {
	return orNil(
		func() (*model.Channel, error) { return s.first.GetChannelOrNil(ctx, id) },
		func() (*model.Channel, error) { return s.second.GetChannelOrNil(ctx, id) },
	)
}

func (s *fallbackSupplier) GetChannel(ctx context.Context, id model.Snowflake) (*model.Channel, error) {
	ch, err := s.GetChannelOrNil(ctx, id)
	return require(ch, err, "channel", id)
}

func (s *fallbackSupplier) GetGuildChannels(ctx context.Context, guildID model.Snowflake) iter.Seq2[model.Channel, error] {
	return switchIfEmpty(s.first.GetGuildChannels(ctx, guildID), s.second.GetGuildChannels(ctx, guildID))
}

func (s *fallbackSupplier) GetChannelPins(ctx context.Context, channelID model.Snowflake) iter.Seq2[model.Message, error] {
	return switchIfEmpty(s.first.GetChannelPins(ctx, channelID), s.second.GetChannelPins(ctx, channelID))
}

func (s *fallbackSupplier) GetUserOrNil(ctx context.Context, id model.Snowflake) (*model.User, error) {
	return orNil(
		func() (*model.User, error) { return s.first.GetUserOrNil(ctx, id) },
		func() (*model.User, error) { return s.second.GetUserOrNil(ctx, id) },
	)
}

func (s *fallbackSupplier) GetUser(ctx context.Context, id model.Snowflake) (*model.User, error) {
	u, err := s.GetUserOrNil(ctx, id)
	return require(u, err, "user", id)
}

func (s *fallbackSupplier) GetSelfOrNil(ctx context.Context) (*model.User, error) {
	return orNil(
		func() (*model.User, error) { return s.first.GetSelfOrNil(ctx) },
		func() (*model.User, error) { return s.second.GetSelfOrNil(ctx) },
	)
}

func (s *fallbackSupplier) GetSelf(ctx context.Context) (*model.User, error) {
	u, err := s.GetSelfOrNil(ctx)
	return require(u, err, "current user")
}

func (s *fallbackSupplier) GetMemberOrNil(ctx context.Context, guildID, userID model.Snowflake) (*model.Member, error) {
	return orNil(
		func() (*model.Member, error) { return s.first.GetMemberOrNil(ctx, guildID, userID) },
		func() (*model.Member, error) { return s.second.GetMemberOrNil(ctx, guildID, userID) },
	)
}

func (s *fallbackSupplier) GetMember(ctx context.Context, guildID, userID model.Snowflake) (*model.Member, error) {
	m, err := s.GetMemberOrNil(ctx, guildID, userID)
	return require(m, err, "member", guildID, userID)
}

func (s *fallbackSupplier) GetGuildMembers(ctx context.Context, guildID model.Snowflake, limit int) (iter.Seq2[model.Member, error], error) {
	first, err := s.first.GetGuildMembers(ctx, guildID, limit)
	if err != nil {
		return nil, err
	}
	second, err := s.second.GetGuildMembers(ctx, guildID, limit)
	if err != nil {
		return nil, err
	}
	return switchIfEmpty(first, second), nil
}

func (s *fallbackSupplier) GetMessageOrNil(ctx context.Context, channelID, messageID model.Snowflake) (*model.Message, error) {
	return orNil(
		func() (*model.Message, error) { return s.first.GetMessageOrNil(ctx, channelID, messageID) },
		func() (*model.Message, error) { return s.second.GetMessageOrNil(ctx, channelID, messageID) },
	)
}

func (s *fallbackSupplier) GetMessage(ctx context.Context, channelID, messageID model.Snowflake) (*model.Message, error) {
	m, err := s.GetMessageOrNil(ctx, channelID, messageID)
	return require(m, err, "message", channelID, messageID)
}

func (s *fallbackSupplier) GetMessagesBefore(ctx context.Context, channelID, messageID model.Snowflake, limit int) (iter.Seq2[model.Message, error], error) {
	first, err := s.first.GetMessagesBefore(ctx, channelID, messageID, limit)
	if err != nil {
		return nil, err
	}
	second, err := s.second.GetMessagesBefore(ctx, channelID, messageID, limit)
	if err != nil {
		return nil, err
	}
	return switchIfEmpty(first, second), nil
}

func (s *fallbackSupplier) GetMessagesAfter(ctx context.Context, channelID, messageID model.Snowflake, limit int) (iter.Seq2[model.Message, error], error) {
	first, err := s.first.GetMessagesAfter(ctx, channelID, messageID, limit)
	if err != nil {
		return nil, err
	}
	second, err := s.second.GetMessagesAfter(ctx, channelID, messageID, limit)
	if err != nil {
		return nil, err
	}
	return switchIfEmpty(first, second), nil
}

func (s *fallbackSupplier) GetMessagesAround(ctx context.Context, channelID, messageID model.Snowflake, limit int) (iter.Seq2[model.Message, error], error) {
	first, err := s.first.GetMessagesAround(ctx, channelID, messageID, limit)
	if err != nil {
		return nil, err
	}
	second, err := s.second.GetMessagesAround(ctx, channelID, messageID, limit)
	if err != nil {
		return nil, err
	}
	return switchIfEmpty(first, second), nil
}

func (s *fallbackSupplier) GetRoleOrNil(ctx context.Context, guildID, roleID model.Snowflake) (*model.Role, error) {
	return orNil(
		func() (*model.Role, error) { return s.first.GetRoleOrNil(ctx, guildID, roleID) },
		func() (*model.Role, error) { return s.second.GetRoleOrNil(ctx, guildID, roleID) },
	)
}

func (s *fallbackSupplier) GetRole(ctx context.Context, guildID, roleID model.Snowflake) (*model.Role, error) {
	r, err := s.GetRoleOrNil(ctx, guildID, roleID)
	return require(r, err, "role", guildID, roleID)
}

func (s *fallbackSupplier) GetGuildRoles(ctx context.Context, guildID model.Snowflake) iter.Seq2[model.Role, error] {
	return switchIfEmpty(s.first.GetGuildRoles(ctx, guildID), s.second.GetGuildRoles(ctx, guildID))
}

func (s *fallbackSupplier) GetGuildBanOrNil(ctx context.Context, guildID, userID model.Snowflake) (*model.Ban, error) {
	return orNil(
		func() (*model.Ban, error) { return s.first.GetGuildBanOrNil(ctx, guildID, userID) },
		func() (*model.Ban, error) { return s.second.GetGuildBanOrNil(ctx, guildID, userID) },
	)
}

func (s *fallbackSupplier) GetGuildBan(ctx context.Context, guildID, userID model.Snowflake) (*model.Ban, error) {
	b, err := s.GetGuildBanOrNil(ctx, guildID, userID)
	return require(b, err, "ban", guildID, userID)
}

func (s *fallbackSupplier) GetGuildBans(ctx context.Context, guildID model.Snowflake) iter.Seq2[model.Ban, error] {
	return switchIfEmpty(s.first.GetGuildBans(ctx, guildID), s.second.GetGuildBans(ctx, guildID))
}

func (s *fallbackSupplier) GetEmojiOrNil(ctx context.Context, guildID, emojiID model.Snowflake) (*model.Emoji, error) {
	return orNil(
		func() (*model.Emoji, error) { return s.first.GetEmojiOrNil(ctx, guildID, emojiID) },
		func() (*model.Emoji, error) { return s.second.GetEmojiOrNil(ctx, guildID, emojiID) },
	)
}

func (s *fallbackSupplier) GetEmoji(ctx context.Context, guildID, emojiID model.Snowflake) (*model.Emoji, error) {
	e, err := s.GetEmojiOrNil(ctx, guildID, emojiID)
	return require(e, err, "emoji", guildID, emojiID)
}

func (s *fallbackSupplier) GetEmojis(ctx context.Context, guildID model.Snowflake) iter.Seq2[model.Emoji, error] {
	return switchIfEmpty(s.first.GetEmojis(ctx, guildID), s.second.GetEmojis(ctx, guildID))
}

func (s *fallbackSupplier) GetGuildVoiceRegions(ctx context.Context, guildID model.Snowflake) iter.Seq2[model.VoiceRegion, error] {
	return switchIfEmpty(s.first.GetGuildVoiceRegions(ctx, guildID), s.second.GetGuildVoiceRegions(ctx, guildID))
}

func (s *fallbackSupplier) GetWebhookOrNil(ctx context.Context, id model.Snowflake) (*model.Webhook, error) {
	return orNil(
		func() (*model.Webhook, error) { return s.first.GetWebhookOrNil(ctx, id) },
		func() (*model.Webhook, error) { return s.second.GetWebhookOrNil(ctx, id) },
	)
}

func (s *fallbackSupplier) GetWebhook(ctx context.Context, id model.Snowflake) (*model.Webhook, error) {
	w, err := s.GetWebhookOrNil(ctx, id)
	return require(w, err, "webhook", id)
}

func (s *fallbackSupplier) GetWebhookWithTokenOrNil(ctx context.Context, id model.Snowflake, token string) (*model.Webhook, error) {
	return orNil(
		func() (*model.Webhook, error) { return s.first.GetWebhookWithTokenOrNil(ctx, id, token) },
		func() (*model.Webhook, error) { return s.second.GetWebhookWithTokenOrNil(ctx, id, token) },
	)
}

func (s *fallbackSupplier) GetWebhookWithToken(ctx context.Context, id model.Snowflake, token string) (*model.Webhook, error) {
	w, err := s.GetWebhookWithTokenOrNil(ctx, id, token)
	return require(w, err, "webhook", id)
}

func (s *fallbackSupplier) GetChannelWebhooks(ctx context.Context, channelID model.Snowflake) iter.Seq2[model.Webhook, error] {
	return switchIfEmpty(s.first.GetChannelWebhooks(ctx, channelID), s.second.GetChannelWebhooks(ctx, channelID))
}

func (s *fallbackSupplier) GetGuildWebhooks(ctx context.Context, guildID model.Snowflake) iter.Seq2[model.Webhook, error] {
	return switchIfEmpty(s.first.GetGuildWebhooks(ctx, guildID), s.second.GetGuildWebhooks(ctx, guildID))
}

func (s *fallbackSupplier) GetCurrentUserGuilds(ctx context.Context, limit int) (iter.Seq2[model.Guild, error], error) {
	first, err := s.first.GetCurrentUserGuilds(ctx, limit)
	if err != nil {
		return nil, err
	}
	second, err := s.second.GetCurrentUserGuilds(ctx, limit)
	if err != nil {
		return nil, err
	}
	return switchIfEmpty(first, second), nil
}

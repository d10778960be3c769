package supplier

import (
	"context"
	"errors"
	"iter"
	"net/http"

	"github.com/bwmarrin/discordgo"

	"pkg.frost.gg/frostline/model"
)

// Page size caps imposed by the Discord API per endpoint.
const (
	messagePageLimit = 100
	memberPageLimit  = 1000
	banPageLimit     = 1000
	guildPageLimit   = 200
)

// RestClient is the remote accessor consumed by RestSupplier: the subset of
// REST calls it performs, with signatures matching *discordgo.Session so the
// live session satisfies it directly. Retry and rate-limit policy belong to
// the transport behind this interface.
type RestClient interface {
	User(userID string, options ...discordgo.RequestOption) (*discordgo.User, error)
	UserGuilds(limit int, beforeID, afterID string, withCounts bool, options ...discordgo.RequestOption) ([]*discordgo.UserGuild, error)
	Guild(guildID string, options ...discordgo.RequestOption) (*discordgo.Guild, error)
	GuildChannels(guildID string, options ...discordgo.RequestOption) ([]*discordgo.Channel, error)
	GuildMember(guildID, userID string, options ...discordgo.RequestOption) (*discordgo.Member, error)
	GuildMembers(guildID string, after string, limit int, options ...discordgo.RequestOption) ([]*discordgo.Member, error)
	GuildRoles(guildID string, options ...discordgo.RequestOption) ([]*discordgo.Role, error)
	GuildBan(guildID, userID string, options ...discordgo.RequestOption) (*discordgo.GuildBan, error)
	GuildBans(guildID string, limit int, beforeID, afterID string, options ...discordgo.RequestOption) ([]*discordgo.GuildBan, error)
	GuildEmoji(guildID, emojiID string, options ...discordgo.RequestOption) (*discordgo.Emoji, error)
	GuildEmojis(guildID string, options ...discordgo.RequestOption) ([]*discordgo.Emoji, error)
	Channel(channelID string, options ...discordgo.RequestOption) (*discordgo.Channel, error)
	ChannelMessage(channelID, messageID string, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessages(channelID string, limit int, beforeID, afterID, aroundID string, options ...discordgo.RequestOption) ([]*discordgo.Message, error)
	ChannelMessagesPinned(channelID string, options ...discordgo.RequestOption) ([]*discordgo.Message, error)
	ChannelWebhooks(channelID string, options ...discordgo.RequestOption) ([]*discordgo.Webhook, error)
	GuildWebhooks(guildID string, options ...discordgo.RequestOption) ([]*discordgo.Webhook, error)
	Webhook(webhookID string, options ...discordgo.RequestOption) (*discordgo.Webhook, error)
	WebhookWithToken(webhookID, token string, options ...discordgo.RequestOption) (*discordgo.Webhook, error)
	VoiceRegions(options ...discordgo.RequestOption) ([]*discordgo.VoiceRegion, error)
}

// RestSupplier serves every read with a remote request. Single lookups map
// "does not exist" responses to absence; any other remote failure surfaces
// as a RemoteError. Collection sequences fetch pages lazily as they are
// consumed, so abandoning a sequence early stops further requests.
type RestSupplier struct {
	client RestClient
}

// NewRestSupplier creates a supplier issuing requests through the given
// remote accessor, typically a *discordgo.Session.
func NewRestSupplier(client RestClient) *RestSupplier {
	return &RestSupplier{client: client}
}

// isNotFound reports whether the remote rejected the request because the
// entity does not exist.
func isNotFound(err error) bool {
	var rerr *discordgo.RESTError
	return errors.As(err, &rerr) && rerr.Response != nil && rerr.Response.StatusCode == http.StatusNotFound
}

// wrapRemote converts a transport failure into a RemoteError, preserving the
// HTTP status when one is available.
func wrapRemote(err error) error {
	var rerr *discordgo.RESTError
	if errors.As(err, &rerr) && rerr.Response != nil {
		return &RemoteError{Status: rerr.Response.StatusCode, Err: err}
	}
	return &RemoteError{Err: err}
}

func (s *RestSupplier) Guilds(ctx context.Context) iter.Seq2[model.Guild, error] {
	seq, _ := s.GetCurrentUserGuilds(ctx, guildPageLimit)
	return seq
}

func (s *RestSupplier) Regions(ctx context.Context) iter.Seq2[model.VoiceRegion, error] {
	return func(yield func(model.VoiceRegion, error) bool) {
		regions, err := s.client.VoiceRegions(discordgo.WithContext(ctx))
		if err != nil {
			yield(model.VoiceRegion{}, wrapRemote(err))
			return
		}
		for _, r := range regions {
			if !yield(model.RegionFromDiscord(0, r), nil) {
				return
			}
		}
	}
}

func (s *RestSupplier) GetGuildOrNil(ctx context.Context, id model.Snowflake) (*model.Guild, error) {
	g, err := s.client.Guild(model.FormatSnowflake(id), discordgo.WithContext(ctx))
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, wrapRemote(err)
	}
	r := model.GuildFromDiscord(g)
	return &r, nil
}

func (s *RestSupplier) GetGuild(ctx context.Context, id model.Snowflake) (*model.Guild, error) {
	g, err := s.GetGuildOrNil(ctx, id)
	return require(g, err, "guild", id)
}

func (s *RestSupplier) GetChannelOrNil(ctx context.Context, id model.Snowflake) (*model.Channel, error) {
	ch, err := s.client.Channel(model.FormatSnowflake(id), discordgo.WithContext(ctx))
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, wrapRemote(err)
	}
	r := model.ChannelFromDiscord(ch)
	return &r, nil
}

func (s *RestSupplier) GetChannel(ctx context.Context, id model.Snowflake) (*model.Channel, error) {
	ch, err := s.GetChannelOrNil(ctx, id)
	return require(ch, err, "channel", id)
}

func (s *RestSupplier) GetGuildChannels(ctx context.Context, guildID model.Snowflake) iter.Seq2[model.Channel, error] {
	return func(yield func(model.Channel, error) bool) {
		channels, err := s.client.GuildChannels(model.FormatSnowflake(guildID), discordgo.WithContext(ctx))
		if err != nil {
			if !isNotFound(err) {
				yield(model.Channel{}, wrapRemote(err))
			}
			return
		}
		for _, ch := range channels {
			if !yield(model.ChannelFromDiscord(ch), nil) {
				return
			}
		}
	}
}

func (s *RestSupplier) GetChannelPins(ctx context.Context, channelID model.Snowflake) iter.Seq2[model.Message, error] {
	return func(yield func(model.Message, error) bool) {
		messages, err := s.client.ChannelMessagesPinned(model.FormatSnowflake(channelID), discordgo.WithContext(ctx))
		if err != nil {
			if !isNotFound(err) {
				yield(model.Message{}, wrapRemote(err))
			}
			return
		}
		for _, m := range messages {
			if !yield(model.MessageFromDiscord(m), nil) {
				return
			}
		}
	}
}

func (s *RestSupplier) GetUserOrNil(ctx context.Context, id model.Snowflake) (*model.User, error) {
	return s.getUserOrNil(ctx, model.FormatSnowflake(id))
}

func (s *RestSupplier) getUserOrNil(ctx context.Context, id string) (*model.User, error) {
	u, err := s.client.User(id, discordgo.WithContext(ctx))
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, wrapRemote(err)
	}
	r := model.UserFromDiscord(u)
	return &r, nil
}

func (s *RestSupplier) GetUser(ctx context.Context, id model.Snowflake) (*model.User, error) {
	u, err := s.GetUserOrNil(ctx, id)
	return require(u, err, "user", id)
}

func (s *RestSupplier) GetSelfOrNil(ctx context.Context) (*model.User, error) {
	return s.getUserOrNil(ctx, "@me")
}

func (s *RestSupplier) GetSelf(ctx context.Context) (*model.User, error) {
	u, err := s.GetSelfOrNil(ctx)
	return require(u, err, "current user")
}

func (s *RestSupplier) GetMemberOrNil(ctx context.Context, guildID, userID model.Snowflake) (*model.Member, error) {
	m, err := s.client.GuildMember(model.FormatSnowflake(guildID), model.FormatSnowflake(userID), discordgo.WithContext(ctx))
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, wrapRemote(err)
	}
	if m.User == nil {
		return nil, nil
	}
	return &model.Member{
		User:       model.UserFromDiscord(m.User),
		Membership: model.MembershipFromDiscord(guildID, m),
	}, nil
}

func (s *RestSupplier) GetMember(ctx context.Context, guildID, userID model.Snowflake) (*model.Member, error) {
	m, err := s.GetMemberOrNil(ctx, guildID, userID)
	return require(m, err, "member", guildID, userID)
}

func (s *RestSupplier) GetGuildMembers(ctx context.Context, guildID model.Snowflake, limit int) (iter.Seq2[model.Member, error], error) {
	if limit <= 0 {
		return nil, errInvalidLimit(limit)
	}
	return func(yield func(model.Member, error) bool) {
		remaining := limit
		after := ""
		for remaining > 0 {
			n := min(remaining, memberPageLimit)
			page, err := s.client.GuildMembers(model.FormatSnowflake(guildID), after, n, discordgo.WithContext(ctx))
			if err != nil {
				if !isNotFound(err) {
					yield(model.Member{}, wrapRemote(err))
				}
				return
			}
			for _, m := range page {
				if m.User == nil {
					continue
				}
				member := model.Member{
					User:       model.UserFromDiscord(m.User),
					Membership: model.MembershipFromDiscord(guildID, m),
				}
				if !yield(member, nil) {
					return
				}
			}
			if len(page) < n {
				return
			}
			remaining -= len(page)
			after = page[len(page)-1].User.ID
		}
	}, nil
}

func (s *RestSupplier) GetMessageOrNil(ctx context.Context, channelID, messageID model.Snowflake) (*model.Message, error) {
	m, err := s.client.ChannelMessage(model.FormatSnowflake(channelID), model.FormatSnowflake(messageID), discordgo.WithContext(ctx))
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, wrapRemote(err)
	}
	r := model.MessageFromDiscord(m)
	return &r, nil
}

func (s *RestSupplier) GetMessage(ctx context.Context, channelID, messageID model.Snowflake) (*model.Message, error) {
	m, err := s.GetMessageOrNil(ctx, channelID, messageID)
	return require(m, err, "message", channelID, messageID)
}

// pageMessages lazily walks the channel message list in one direction from
// the given cursor, one page per pull batch.
func (s *RestSupplier) pageMessages(ctx context.Context, channelID model.Snowflake, cursor string, limit int, before bool) iter.Seq2[model.Message, error] {
	return func(yield func(model.Message, error) bool) {
		remaining := limit
		for remaining > 0 {
			n := min(remaining, messagePageLimit)
			beforeID, afterID := "", ""
			if before {
				beforeID = cursor
			} else {
				afterID = cursor
			}
			page, err := s.client.ChannelMessages(model.FormatSnowflake(channelID), n, beforeID, afterID, "", discordgo.WithContext(ctx))
			if err != nil {
				if !isNotFound(err) {
					yield(model.Message{}, wrapRemote(err))
				}
				return
			}
			for _, m := range page {
				if !yield(model.MessageFromDiscord(m), nil) {
					return
				}
			}
			if len(page) < n {
				return
			}
			remaining -= len(page)
			cursor = page[len(page)-1].ID
		}
	}
}

func (s *RestSupplier) GetMessagesBefore(ctx context.Context, channelID, messageID model.Snowflake, limit int) (iter.Seq2[model.Message, error], error) {
	if limit <= 0 {
		return nil, errInvalidLimit(limit)
	}
	return s.pageMessages(ctx, channelID, model.FormatSnowflake(messageID), limit, true), nil
}

func (s *RestSupplier) GetMessagesAfter(ctx context.Context, channelID, messageID model.Snowflake, limit int) (iter.Seq2[model.Message, error], error) {
	if limit <= 0 {
		return nil, errInvalidLimit(limit)
	}
	return s.pageMessages(ctx, channelID, model.FormatSnowflake(messageID), limit, false), nil
}

func (s *RestSupplier) GetMessagesAround(ctx context.Context, channelID, messageID model.Snowflake, limit int) (iter.Seq2[model.Message, error], error) {
	if limit <= 0 {
		return nil, errInvalidLimit(limit)
	}
	half := limit / 2
	if half == 0 {
		return emptySeq[model.Message](), nil
	}
	cursor := model.FormatSnowflake(messageID)
	return concatSeq(
		s.pageMessages(ctx, channelID, cursor, half, true),
		s.pageMessages(ctx, channelID, cursor, half, false),
	), nil
}

func (s *RestSupplier) GetRoleOrNil(ctx context.Context, guildID, roleID model.Snowflake) (*model.Role, error) {
	// The API has no single-role endpoint; filter the guild's role list.
	roles, err := s.client.GuildRoles(model.FormatSnowflake(guildID), discordgo.WithContext(ctx))
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, wrapRemote(err)
	}
	want := model.FormatSnowflake(roleID)
	for _, r := range roles {
		if r.ID == want {
			role := model.RoleFromDiscord(guildID, r)
			return &role, nil
		}
	}
	return nil, nil
}

func (s *RestSupplier) GetRole(ctx context.Context, guildID, roleID model.Snowflake) (*model.Role, error) {
	r, err := s.GetRoleOrNil(ctx, guildID, roleID)
	return require(r, err, "role", guildID, roleID)
}

func (s *RestSupplier) GetGuildRoles(ctx context.Context, guildID model.Snowflake) iter.Seq2[model.Role, error] {
	return func(yield func(model.Role, error) bool) {
		roles, err := s.client.GuildRoles(model.FormatSnowflake(guildID), discordgo.WithContext(ctx))
		if err != nil {
			if !isNotFound(err) {
				yield(model.Role{}, wrapRemote(err))
			}
			return
		}
		for _, r := range roles {
			if !yield(model.RoleFromDiscord(guildID, r), nil) {
				return
			}
		}
	}
}

func (s *RestSupplier) GetGuildBanOrNil(ctx context.Context, guildID, userID model.Snowflake) (*model.Ban, error) {
	b, err := s.client.GuildBan(model.FormatSnowflake(guildID), model.FormatSnowflake(userID), discordgo.WithContext(ctx))
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, wrapRemote(err)
	}
	r := model.BanFromDiscord(guildID, b)
	return &r, nil
}

func (s *RestSupplier) GetGuildBan(ctx context.Context, guildID, userID model.Snowflake) (*model.Ban, error) {
	b, err := s.GetGuildBanOrNil(ctx, guildID, userID)
	return require(b, err, "ban", guildID, userID)
}

func (s *RestSupplier) GetGuildBans(ctx context.Context, guildID model.Snowflake) iter.Seq2[model.Ban, error] {
	return func(yield func(model.Ban, error) bool) {
		after := ""
		for {
			page, err := s.client.GuildBans(model.FormatSnowflake(guildID), banPageLimit, "", after, discordgo.WithContext(ctx))
			if err != nil {
				if !isNotFound(err) {
					yield(model.Ban{}, wrapRemote(err))
				}
				return
			}
			for _, b := range page {
				if !yield(model.BanFromDiscord(guildID, b), nil) {
					return
				}
			}
			if len(page) < banPageLimit {
				return
			}
			after = page[len(page)-1].User.ID
		}
	}
}

func (s *RestSupplier) GetEmojiOrNil(ctx context.Context, guildID, emojiID model.Snowflake) (*model.Emoji, error) {
	e, err := s.client.GuildEmoji(model.FormatSnowflake(guildID), model.FormatSnowflake(emojiID), discordgo.WithContext(ctx))
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, wrapRemote(err)
	}
	r := model.EmojiFromDiscord(guildID, e)
	return &r, nil
}

func (s *RestSupplier) GetEmoji(ctx context.Context, guildID, emojiID model.Snowflake) (*model.Emoji, error) {
	e, err := s.GetEmojiOrNil(ctx, guildID, emojiID)
	return require(e, err, "emoji", guildID, emojiID)
}

func (s *RestSupplier) GetEmojis(ctx context.Context, guildID model.Snowflake) iter.Seq2[model.Emoji, error] {
	return func(yield func(model.Emoji, error) bool) {
		emojis, err := s.client.GuildEmojis(model.FormatSnowflake(guildID), discordgo.WithContext(ctx))
		if err != nil {
			if !isNotFound(err) {
				yield(model.Emoji{}, wrapRemote(err))
			}
			return
		}
		for _, e := range emojis {
			if !yield(model.EmojiFromDiscord(guildID, e), nil) {
				return
			}
		}
	}
}

// GetGuildVoiceRegions lists the global regions scoped to the guild; the API
// retired per-guild region listings.
func (s *RestSupplier) GetGuildVoiceRegions(ctx context.Context, guildID model.Snowflake) iter.Seq2[model.VoiceRegion, error] {
	return func(yield func(model.VoiceRegion, error) bool) {
		regions, err := s.client.VoiceRegions(discordgo.WithContext(ctx))
		if err != nil {
			yield(model.VoiceRegion{}, wrapRemote(err))
			return
		}
		for _, r := range regions {
			if !yield(model.RegionFromDiscord(guildID, r), nil) {
				return
			}
		}
	}
}

func (s *RestSupplier) GetWebhookOrNil(ctx context.Context, id model.Snowflake) (*model.Webhook, error) {
	w, err := s.client.Webhook(model.FormatSnowflake(id), discordgo.WithContext(ctx))
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, wrapRemote(err)
	}
	r := model.WebhookFromDiscord(w)
	return &r, nil
}

func (s *RestSupplier) GetWebhook(ctx context.Context, id model.Snowflake) (*model.Webhook, error) {
	w, err := s.GetWebhookOrNil(ctx, id)
	return require(w, err, "webhook", id)
}

func (s *RestSupplier) GetWebhookWithTokenOrNil(ctx context.Context, id model.Snowflake, token string) (*model.Webhook, error) {
	w, err := s.client.WebhookWithToken(model.FormatSnowflake(id), token, discordgo.WithContext(ctx))
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, wrapRemote(err)
	}
	r := model.WebhookFromDiscord(w)
	return &r, nil
}

func (s *RestSupplier) GetWebhookWithToken(ctx context.Context, id model.Snowflake, token string) (*model.Webhook, error) {
	w, err := s.GetWebhookWithTokenOrNil(ctx, id, token)
	return require(w, err, "webhook", id)
}

func (s *RestSupplier) GetChannelWebhooks(ctx context.Context, channelID model.Snowflake) iter.Seq2[model.Webhook, error] {
	return func(yield func(model.Webhook, error) bool) {
		webhooks, err := s.client.ChannelWebhooks(model.FormatSnowflake(channelID), discordgo.WithContext(ctx))
		if err != nil {
			if !isNotFound(err) {
				yield(model.Webhook{}, wrapRemote(err))
			}
			return
		}
		for _, w := range webhooks {
			if !yield(model.WebhookFromDiscord(w), nil) {
				return
			}
		}
	}
}

func (s *RestSupplier) GetGuildWebhooks(ctx context.Context, guildID model.Snowflake) iter.Seq2[model.Webhook, error] {
	return func(yield func(model.Webhook, error) bool) {
		webhooks, err := s.client.GuildWebhooks(model.FormatSnowflake(guildID), discordgo.WithContext(ctx))
		if err != nil {
			if !isNotFound(err) {
				yield(model.Webhook{}, wrapRemote(err))
			}
			return
		}
		for _, w := range webhooks {
			if !yield(model.WebhookFromDiscord(w), nil) {
				return
			}
		}
	}
}

func (s *RestSupplier) GetCurrentUserGuilds(ctx context.Context, limit int) (iter.Seq2[model.Guild, error], error) {
	if limit <= 0 {
		return nil, errInvalidLimit(limit)
	}
	return func(yield func(model.Guild, error) bool) {
		remaining := limit
		after := ""
		for remaining > 0 {
			n := min(remaining, guildPageLimit)
			page, err := s.client.UserGuilds(n, "", after, false, discordgo.WithContext(ctx))
			if err != nil {
				yield(model.Guild{}, wrapRemote(err))
				return
			}
			for _, g := range page {
				if !yield(model.GuildFromDiscordUserGuild(g), nil) {
					return
				}
			}
			if len(page) < n {
				return
			}
			remaining -= len(page)
			after = page[len(page)-1].ID
		}
	}, nil
}

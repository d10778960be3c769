// Package supplier defines the polymorphic entity read layer: a uniform
// contract over cache-backed, REST-backed, and fallback-composed sources of
// Discord entity records.
package supplier

import (
	"context"
	"iter"

	"pkg.frost.gg/frostline/model"
)

// EntitySupplier is a source of entity reads. Every single-value operation
// comes in two forms: the OrNil form reports absence as a nil record with a
// nil error, while the strict form reports absence as an error matching
// ErrNotFound. Collection operations return lazy sequences; consuming only a
// prefix abandons the remainder without side effects. Operations that take a
// limit reject non-positive values with ErrInvalidArgument before producing
// the sequence.
type EntitySupplier interface {
	// Guilds yields every guild known to this supplier.
	Guilds(ctx context.Context) iter.Seq2[model.Guild, error]
	// Regions yields the globally available voice regions.
	Regions(ctx context.Context) iter.Seq2[model.VoiceRegion, error]

	GetGuildOrNil(ctx context.Context, id model.Snowflake) (*model.Guild, error)
	GetGuild(ctx context.Context, id model.Snowflake) (*model.Guild, error)

	GetChannelOrNil(ctx context.Context, id model.Snowflake) (*model.Channel, error)
	GetChannel(ctx context.Context, id model.Snowflake) (*model.Channel, error)
	GetGuildChannels(ctx context.Context, guildID model.Snowflake) iter.Seq2[model.Channel, error]
	// GetChannelPins yields the pinned messages of a channel.
	GetChannelPins(ctx context.Context, channelID model.Snowflake) iter.Seq2[model.Message, error]

	GetUserOrNil(ctx context.Context, id model.Snowflake) (*model.User, error)
	GetUser(ctx context.Context, id model.Snowflake) (*model.User, error)
	// GetSelfOrNil looks up the user this session is authenticated as.
	GetSelfOrNil(ctx context.Context) (*model.User, error)
	GetSelf(ctx context.Context) (*model.User, error)

	GetMemberOrNil(ctx context.Context, guildID, userID model.Snowflake) (*model.Member, error)
	GetMember(ctx context.Context, guildID, userID model.Snowflake) (*model.Member, error)
	GetGuildMembers(ctx context.Context, guildID model.Snowflake, limit int) (iter.Seq2[model.Member, error], error)

	GetMessageOrNil(ctx context.Context, channelID, messageID model.Snowflake) (*model.Message, error)
	GetMessage(ctx context.Context, channelID, messageID model.Snowflake) (*model.Message, error)
	// GetMessagesBefore yields up to limit messages of a channel with IDs
	// ordered strictly before messageID.
	GetMessagesBefore(ctx context.Context, channelID, messageID model.Snowflake, limit int) (iter.Seq2[model.Message, error], error)
	// GetMessagesAfter yields up to limit messages of a channel with IDs
	// ordered strictly after messageID.
	GetMessagesAfter(ctx context.Context, channelID, messageID model.Snowflake, limit int) (iter.Seq2[model.Message, error], error)
	// GetMessagesAround yields limit/2 messages before messageID followed by
	// limit/2 messages after it, flooring the halves when limit is odd.
	GetMessagesAround(ctx context.Context, channelID, messageID model.Snowflake, limit int) (iter.Seq2[model.Message, error], error)

	GetRoleOrNil(ctx context.Context, guildID, roleID model.Snowflake) (*model.Role, error)
	GetRole(ctx context.Context, guildID, roleID model.Snowflake) (*model.Role, error)
	GetGuildRoles(ctx context.Context, guildID model.Snowflake) iter.Seq2[model.Role, error]

	GetGuildBanOrNil(ctx context.Context, guildID, userID model.Snowflake) (*model.Ban, error)
	GetGuildBan(ctx context.Context, guildID, userID model.Snowflake) (*model.Ban, error)
	GetGuildBans(ctx context.Context, guildID model.Snowflake) iter.Seq2[model.Ban, error]

	GetEmojiOrNil(ctx context.Context, guildID, emojiID model.Snowflake) (*model.Emoji, error)
	GetEmoji(ctx context.Context, guildID, emojiID model.Snowflake) (*model.Emoji, error)
	GetEmojis(ctx context.Context, guildID model.Snowflake) iter.Seq2[model.Emoji, error]

	GetGuildVoiceRegions(ctx context.Context, guildID model.Snowflake) iter.Seq2[model.VoiceRegion, error]

	GetWebhookOrNil(ctx context.Context, id model.Snowflake) (*model.Webhook, error)
	GetWebhook(ctx context.Context, id model.Snowflake) (*model.Webhook, error)
	GetWebhookWithTokenOrNil(ctx context.Context, id model.Snowflake, token string) (*model.Webhook, error)
	GetWebhookWithToken(ctx context.Context, id model.Snowflake, token string) (*model.Webhook, error)
	GetChannelWebhooks(ctx context.Context, channelID model.Snowflake) iter.Seq2[model.Webhook, error]
	GetGuildWebhooks(ctx context.Context, guildID model.Snowflake) iter.Seq2[model.Webhook, error]

	GetCurrentUserGuilds(ctx context.Context, limit int) (iter.Seq2[model.Guild, error], error)
}

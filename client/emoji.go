package client

import (
	"context"
	"fmt"
	"net/http"

	"discord-rest-client/domain"
	"discord-rest-client/routes"

	"github.com/pkg/errors"
)

// Emoji ids are formatted into the path directly, rate limit scoping
// only cares about the guild id.

func (c *Client) GetGuildEmojis(ctx context.Context, guildId int64) ([]domain.Emoji, error) {
	route := routes.Route{Path: "/guilds/{guild_id}/emojis", GuildId: guildId}
	payload, err := c.Request(ctx, http.MethodGet, route, nil)
	if err != nil {
		return nil, errors.WithMessagef(err, "get emojis of guild %d", guildId)
	}

	emojis := make([]domain.Emoji, 0)
	err = payload.Json(&emojis)
	if err != nil {
		return nil, errors.WithMessage(err, "decode emojis")
	}
	return emojis, nil
}

func (c *Client) GetGuildEmoji(ctx context.Context, guildId int64, emojiId int64) (*domain.Emoji, error) {
	route := routes.Route{
		Path:    fmt.Sprintf("/guilds/{guild_id}/emojis/%d", emojiId),
		GuildId: guildId,
	}
	payload, err := c.Request(ctx, http.MethodGet, route, nil)
	if err != nil {
		return nil, errors.WithMessagef(err, "get emoji %d of guild %d", emojiId, guildId)
	}
	return decodeEmoji(payload)
}

func (c *Client) CreateGuildEmoji(ctx context.Context, guildId int64, req domain.CreateEmoji) (*domain.Emoji, error) {
	route := routes.Route{Path: "/guilds/{guild_id}/emojis", GuildId: guildId}
	payload, err := c.Request(ctx, http.MethodPost, route, req)
	if err != nil {
		return nil, errors.WithMessagef(err, "create emoji in guild %d", guildId)
	}
	return decodeEmoji(payload)
}

func (c *Client) EditGuildEmoji(ctx context.Context, guildId int64, emojiId int64, req domain.EditEmoji) (*domain.Emoji, error) {
	route := routes.Route{
		Path:    fmt.Sprintf("/guilds/{guild_id}/emojis/%d", emojiId),
		GuildId: guildId,
	}
	payload, err := c.Request(ctx, http.MethodPatch, route, req)
	if err != nil {
		return nil, errors.WithMessagef(err, "edit emoji %d of guild %d", emojiId, guildId)
	}
	return decodeEmoji(payload)
}

func (c *Client) DeleteGuildEmoji(ctx context.Context, guildId int64, emojiId int64) error {
	route := routes.Route{
		Path:    fmt.Sprintf("/guilds/{guild_id}/emojis/%d", emojiId),
		GuildId: guildId,
	}
	_, err := c.Request(ctx, http.MethodDelete, route, nil)
	if err != nil {
		return errors.WithMessagef(err, "delete emoji %d of guild %d", emojiId, guildId)
	}
	return nil
}

func decodeEmoji(payload *Payload) (*domain.Emoji, error) {
	emoji := domain.Emoji{}
	err := payload.Json(&emoji)
	if err != nil {
		return nil, errors.WithMessage(err, "decode emoji")
	}
	return &emoji, nil
}

package client

import (
	"context"
	"net/http"

	"discord-rest-client/domain"
	"discord-rest-client/routes"

	"github.com/pkg/errors"
)

// GetMe returns the user belonging to the configured token.
func (c *Client) GetMe(ctx context.Context) (*domain.User, error) {
	payload, err := c.Request(ctx, http.MethodGet, routes.Route{Path: "/users/@me"}, nil)
	if err != nil {
		return nil, errors.WithMessage(err, "get me")
	}

	user := domain.User{}
	err = payload.Json(&user)
	if err != nil {
		return nil, errors.WithMessage(err, "decode user")
	}
	return &user, nil
}

func (c *Client) EditMe(ctx context.Context, req domain.EditMe) (*domain.User, error) {
	payload, err := c.Request(ctx, http.MethodPatch, routes.Route{Path: "/users/@me"}, req)
	if err != nil {
		return nil, errors.WithMessage(err, "edit me")
	}

	user := domain.User{}
	err = payload.Json(&user)
	if err != nil {
		return nil, errors.WithMessage(err, "decode user")
	}
	return &user, nil
}

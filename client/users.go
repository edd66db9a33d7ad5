package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/splitter-network/splitter-go/api"
)

// GetCurrentUser returns the authenticated user's profile.
func (c *Client) GetCurrentUser(ctx context.Context) (*api.User, error) {
	var user api.User
	if err := c.do(ctx, http.MethodGet, "/users/me", nil, nil, true, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserProfile returns any user's public profile by ID.
func (c *Client) GetUserProfile(ctx context.Context, id string) (*api.User, error) {
	var user api.User
	if err := c.do(ctx, http.MethodGet, "/users/"+url.PathEscape(id), nil, nil, false, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByDID looks a user up by their DID.
func (c *Client) GetUserByDID(ctx context.Context, did string) (*api.User, error) {
	q := url.Values{}
	q.Set("did", did)
	var user api.User
	if err := c.do(ctx, http.MethodGet, "/users/did", q, nil, false, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile partially updates the authenticated user's profile. Only the
// non-nil fields of update are serialized, so omitted fields stay untouched
// on the server.
func (c *Client) UpdateProfile(ctx context.Context, update *api.UserUpdate) (*api.User, error) {
	var user api.User
	if err := c.do(ctx, http.MethodPut, "/users/me", nil, update, true, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteAccount permanently deletes the authenticated user's account. The
// backend decides what cascades; there is no undo.
func (c *Client) DeleteAccount(ctx context.Context) (*api.MessageResponse, error) {
	var resp api.MessageResponse
	if err := c.do(ctx, http.MethodDelete, "/users/me", nil, nil, true, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SearchUsers searches users by name fragment.
func (c *Client) SearchUsers(ctx context.Context, query string, limit, offset int) ([]api.User, error) {
	q := pagination(limit, offset)
	q.Set("q", query)
	var users []api.User
	if err := c.do(ctx, http.MethodGet, "/users/search", q, nil, true, &users); err != nil {
		return nil, err
	}
	return users, nil
}

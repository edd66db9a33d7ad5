package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/splitter-network/splitter-go/api"
)

// FollowUser follows another user by ID or DID.
func (c *Client) FollowUser(ctx context.Context, userID string) (*api.Follow, error) {
	var follow api.Follow
	err := c.do(ctx, http.MethodPost, "/users/"+url.PathEscape(userID)+"/follow", nil, nil, true, &follow)
	if err != nil {
		return nil, err
	}
	return &follow, nil
}

// UnfollowUser removes a follow relationship.
func (c *Client) UnfollowUser(ctx context.Context, userID string) (*api.MessageResponse, error) {
	var resp api.MessageResponse
	err := c.do(ctx, http.MethodDelete, "/users/"+url.PathEscape(userID)+"/follow", nil, nil, true, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetFollowers lists the users following userID.
func (c *Client) GetFollowers(ctx context.Context, userID string, limit, offset int) ([]api.User, error) {
	var users []api.User
	err := c.do(ctx, http.MethodGet, "/users/"+url.PathEscape(userID)+"/followers", pagination(limit, offset), nil, false, &users)
	if err != nil {
		return nil, err
	}
	return users, nil
}

// GetFollowing lists the users userID follows.
func (c *Client) GetFollowing(ctx context.Context, userID string, limit, offset int) ([]api.User, error) {
	var users []api.User
	err := c.do(ctx, http.MethodGet, "/users/"+url.PathEscape(userID)+"/following", pagination(limit, offset), nil, false, &users)
	if err != nil {
		return nil, err
	}
	return users, nil
}

// GetFollowStats returns follower/following counts for a user.
func (c *Client) GetFollowStats(ctx context.Context, userID string) (*api.FollowStats, error) {
	var stats api.FollowStats
	err := c.do(ctx, http.MethodGet, "/users/"+url.PathEscape(userID)+"/stats", nil, nil, false, &stats)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

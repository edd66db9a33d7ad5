package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/splitter-network/splitter-go/api"
)

// interact issues one of the like/repost/bookmark toggles. They all share
// the same path shape and acknowledgement body.
func (c *Client) interact(ctx context.Context, method, postID, action string) (*api.MessageResponse, error) {
	var resp api.MessageResponse
	err := c.do(ctx, method, "/posts/"+url.PathEscape(postID)+"/"+action, nil, nil, true, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// LikePost likes a post. Liking an already-liked post is a caller bug; the
// backend decides how to respond.
func (c *Client) LikePost(ctx context.Context, postID string) (*api.MessageResponse, error) {
	return c.interact(ctx, http.MethodPost, postID, "like")
}

// UnlikePost removes a like.
func (c *Client) UnlikePost(ctx context.Context, postID string) (*api.MessageResponse, error) {
	return c.interact(ctx, http.MethodDelete, postID, "like")
}

// RepostPost reposts a post to the caller's followers.
func (c *Client) RepostPost(ctx context.Context, postID string) (*api.MessageResponse, error) {
	return c.interact(ctx, http.MethodPost, postID, "repost")
}

// UnrepostPost removes a repost.
func (c *Client) UnrepostPost(ctx context.Context, postID string) (*api.MessageResponse, error) {
	return c.interact(ctx, http.MethodDelete, postID, "repost")
}

// BookmarkPost bookmarks a post for the caller.
func (c *Client) BookmarkPost(ctx context.Context, postID string) (*api.MessageResponse, error) {
	return c.interact(ctx, http.MethodPost, postID, "bookmark")
}

// UnbookmarkPost removes a bookmark.
func (c *Client) UnbookmarkPost(ctx context.Context, postID string) (*api.MessageResponse, error) {
	return c.interact(ctx, http.MethodDelete, postID, "bookmark")
}

// GetBookmarks lists the caller's bookmarked posts.
func (c *Client) GetBookmarks(ctx context.Context) ([]api.Post, error) {
	var posts []api.Post
	if err := c.do(ctx, http.MethodGet, "/users/me/bookmarks", nil, nil, true, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

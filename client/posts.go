package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/splitter-network/splitter-go/api"
)

// CreatePost publishes a new post.
func (c *Client) CreatePost(ctx context.Context, create *api.PostCreate) (*api.Post, error) {
	var post api.Post
	if err := c.do(ctx, http.MethodPost, "/posts", nil, create, true, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// GetPost fetches a single post by ID.
func (c *Client) GetPost(ctx context.Context, id string) (*api.Post, error) {
	var post api.Post
	if err := c.do(ctx, http.MethodGet, "/posts/"+url.PathEscape(id), nil, nil, false, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// GetUserPosts lists a user's posts, newest first. Limit and offset pass
// through to the backend untouched.
func (c *Client) GetUserPosts(ctx context.Context, userID string, limit, offset int) ([]api.Post, error) {
	var posts []api.Post
	err := c.do(ctx, http.MethodGet, "/posts/user/"+url.PathEscape(userID), pagination(limit, offset), nil, false, &posts)
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// GetFeed returns the authenticated user's home feed.
func (c *Client) GetFeed(ctx context.Context, limit, offset int) ([]api.Post, error) {
	var posts []api.Post
	if err := c.do(ctx, http.MethodGet, "/posts/feed", pagination(limit, offset), nil, true, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// GetPublicFeed returns the instance-wide public feed. No authentication
// needed.
func (c *Client) GetPublicFeed(ctx context.Context, limit, offset int) ([]api.Post, error) {
	var posts []api.Post
	if err := c.do(ctx, http.MethodGet, "/posts/public", pagination(limit, offset), nil, false, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// UpdatePost partially updates one of the caller's posts.
func (c *Client) UpdatePost(ctx context.Context, id string, update *api.PostUpdate) (*api.Post, error) {
	var post api.Post
	if err := c.do(ctx, http.MethodPut, "/posts/"+url.PathEscape(id), nil, update, true, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// DeletePost deletes one of the caller's posts.
func (c *Client) DeletePost(ctx context.Context, id string) (*api.MessageResponse, error) {
	var resp api.MessageResponse
	if err := c.do(ctx, http.MethodDelete, "/posts/"+url.PathEscape(id), nil, nil, true, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreateReply posts a reply under an existing post.
func (c *Client) CreateReply(ctx context.Context, postID string, reply *api.ReplyCreate) (*api.Post, error) {
	var post api.Post
	err := c.do(ctx, http.MethodPost, "/posts/"+url.PathEscape(postID)+"/replies", nil, reply, true, &post)
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// GetReplies lists the direct replies to a post.
func (c *Client) GetReplies(ctx context.Context, postID string, limit, offset int) ([]api.Post, error) {
	var posts []api.Post
	err := c.do(ctx, http.MethodGet, "/posts/"+url.PathEscape(postID)+"/replies", pagination(limit, offset), nil, false, &posts)
	if err != nil {
		return nil, err
	}
	return posts, nil
}

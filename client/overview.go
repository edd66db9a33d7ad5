package client

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/splitter-network/splitter-go/api"
)

// ProfileOverview bundles everything a profile view needs in one round of
// requests.
type ProfileOverview struct {
	User  *api.User
	Stats *api.FollowStats
	Posts []api.Post
}

// GetProfileOverview fetches a user's profile, follow stats and most recent
// posts concurrently. The three requests are independent; the first failure
// cancels the rest and is returned as-is.
func (c *Client) GetProfileOverview(ctx context.Context, userID string, postLimit int) (*ProfileOverview, error) {
	overview := &ProfileOverview{}
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		user, err := c.GetUserProfile(ctx, userID)
		if err != nil {
			return err
		}
		overview.User = user
		return nil
	})
	g.Go(func() error {
		stats, err := c.GetFollowStats(ctx, userID)
		if err != nil {
			return err
		}
		overview.Stats = stats
		return nil
	})
	g.Go(func() error {
		posts, err := c.GetUserPosts(ctx, userID, postLimit, 0)
		if err != nil {
			return err
		}
		overview.Posts = posts
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return overview, nil
}

package client

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/splitter-network/splitter-go/api"
	"github.com/splitter-network/splitter-go/session"
)

func TestFollowUnfollow(t *testing.T) {
	c, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/users/u2/follow", r.URL.Path)
		require.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		switch r.Method {
		case http.MethodPost:
			w.WriteHeader(http.StatusCreated)
			require.NoError(t, json.NewEncoder(w).Encode(api.Follow{ID: "f1", FollowingID: "u2"}))
		case http.MethodDelete:
			require.NoError(t, json.NewEncoder(w).Encode(api.MessageResponse{Message: "Successfully unfollowed user"}))
		}
	}))
	require.NoError(t, store.SaveSession(&session.Session{Token: "tok"}))

	follow, err := c.FollowUser(context.Background(), "u2")
	require.NoError(t, err)
	require.Equal(t, "u2", follow.FollowingID)

	resp, err := c.UnfollowUser(context.Background(), "u2")
	require.NoError(t, err)
	require.Equal(t, "Successfully unfollowed user", resp.Message)
}

func TestFollowReads(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// All follow reads are public.
		require.Empty(t, r.Header.Get("Authorization"))
		switch r.URL.Path {
		case "/users/u1/followers":
			require.NoError(t, json.NewEncoder(w).Encode([]api.User{{Username: "bob"}}))
		case "/users/u1/following":
			require.NoError(t, json.NewEncoder(w).Encode([]api.User{{Username: "carol"}, {Username: "dan"}}))
		case "/users/u1/stats":
			require.NoError(t, json.NewEncoder(w).Encode(api.FollowStats{Followers: 1, Following: 2}))
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))

	followers, err := c.GetFollowers(context.Background(), "u1", 50, 0)
	require.NoError(t, err)
	require.Len(t, followers, 1)

	following, err := c.GetFollowing(context.Background(), "u1", 50, 0)
	require.NoError(t, err)
	require.Len(t, following, 2)

	stats, err := c.GetFollowStats(context.Background(), "u1")
	require.NoError(t, err)
	require.Equal(t, 1, stats.Followers)
	require.Equal(t, 2, stats.Following)
}

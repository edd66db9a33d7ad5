package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/splitter-network/splitter-go/api"
)

func TestGetProfileOverview(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/users/u1":
			require.NoError(t, json.NewEncoder(w).Encode(api.User{ID: "u1", Username: "alice"}))
		case "/users/u1/stats":
			require.NoError(t, json.NewEncoder(w).Encode(api.FollowStats{Followers: 3, Following: 5}))
		case "/posts/user/u1":
			require.Equal(t, "10", r.URL.Query().Get("limit"))
			require.NoError(t, json.NewEncoder(w).Encode([]api.Post{{Content: "hi"}}))
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))

	overview, err := c.GetProfileOverview(context.Background(), "u1", 10)
	require.NoError(t, err)
	require.Equal(t, "alice", overview.User.Username)
	require.Equal(t, 3, overview.Stats.Followers)
	require.Len(t, overview.Posts, 1)
}

func TestGetProfileOverviewPropagatesFailure(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/users/u1/stats" {
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"error": "User not found"}`)
			return
		}
		switch r.URL.Path {
		case "/users/u1":
			require.NoError(t, json.NewEncoder(w).Encode(api.User{ID: "u1"}))
		case "/posts/user/u1":
			require.NoError(t, json.NewEncoder(w).Encode([]api.Post{}))
		}
	}))

	_, err := c.GetProfileOverview(context.Background(), "u1", 10)
	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	require.True(t, reqErr.IsNotFound())
}

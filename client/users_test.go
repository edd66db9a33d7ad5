package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/splitter-network/splitter-go/api"
	"github.com/splitter-network/splitter-go/session"
)

func TestUpdateProfilePartialBody(t *testing.T) {
	var gotBody map[string]any
	c, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/users/me", r.URL.Path)
		raw, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(raw, &gotBody))
		require.NoError(t, json.NewEncoder(w).Encode(api.User{ID: "u1", DisplayName: "Alice"}))
	}))
	require.NoError(t, store.SaveSession(&session.Session{Token: "tok"}))

	displayName := "Alice"
	_, err := c.UpdateProfile(context.Background(), &api.UserUpdate{DisplayName: &displayName})
	require.NoError(t, err)

	// Only the provided field is serialized; omitted fields are absent, not
	// null-filled.
	require.Equal(t, map[string]any{"display_name": "Alice"}, gotBody)
}

func TestUpdateProfileEmptyStringIsSent(t *testing.T) {
	var gotBody map[string]any
	c, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		require.NoError(t, json.NewEncoder(w).Encode(api.User{ID: "u1"}))
	}))
	require.NoError(t, store.SaveSession(&session.Session{Token: "tok"}))

	// Clearing the bio is different from not touching it: a set pointer to
	// "" must serialize.
	bio := ""
	_, err := c.UpdateProfile(context.Background(), &api.UserUpdate{Bio: &bio})
	require.NoError(t, err)
	require.Equal(t, map[string]any{"bio": ""}, gotBody)
}

func TestGetUserByDID(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/users/did", r.URL.Path)
		require.Equal(t, "did:splitter:bob-aabbccdd00112233", r.URL.Query().Get("did"))
		require.Empty(t, r.Header.Get("Authorization"))
		require.NoError(t, json.NewEncoder(w).Encode(api.User{ID: "u2", Username: "bob"}))
	}))

	user, err := c.GetUserByDID(context.Background(), "did:splitter:bob-aabbccdd00112233")
	require.NoError(t, err)
	require.Equal(t, "bob", user.Username)
}

func TestDeleteAccount(t *testing.T) {
	c, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/users/me", r.URL.Path)
		require.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		require.NoError(t, json.NewEncoder(w).Encode(api.MessageResponse{Message: "Account deleted"}))
	}))
	require.NoError(t, store.SaveSession(&session.Session{Token: "tok"}))

	resp, err := c.DeleteAccount(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Account deleted", resp.Message)
}

func TestSearchUsers(t *testing.T) {
	c, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/users/search", r.URL.Path)
		require.Equal(t, "ali", r.URL.Query().Get("q"))
		require.Equal(t, "10", r.URL.Query().Get("limit"))
		require.NoError(t, json.NewEncoder(w).Encode([]api.User{{Username: "alice"}}))
	}))
	require.NoError(t, store.SaveSession(&session.Session{Token: "tok"}))

	users, err := c.SearchUsers(context.Background(), "ali", 10, 0)
	require.NoError(t, err)
	require.Len(t, users, 1)
}

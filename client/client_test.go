package client

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/splitter-network/splitter-go/api"
	"github.com/splitter-network/splitter-go/session"
)

// newTestClient spins up an httptest server and a client with an empty
// in-memory session store pointed at it.
func newTestClient(t *testing.T, handler http.Handler) (*Client, *session.MemoryStore) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	store := session.NewMemoryStore()
	return New(server.URL, store), store
}

func TestErrorBodyParsed(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"error": "content too long"}`)
	}))

	_, err := c.GetPost(context.Background(), "p1")
	require.Error(t, err)

	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	require.Equal(t, http.StatusBadRequest, reqErr.Status)
	require.Equal(t, "content too long", reqErr.Message)
}

func TestErrorBodyUnparseable(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, "<html>tomcat exploded</html>")
	}))

	_, err := c.GetPost(context.Background(), "p1")
	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	require.Equal(t, http.StatusInternalServerError, reqErr.Status)
	// Parse failure synthesizes a generic message, never a raw parse error.
	require.Equal(t, "HTTP 500", reqErr.Message)
	require.True(t, reqErr.IsTransient())
}

func TestNetworkUnreachable(t *testing.T) {
	store := session.NewMemoryStore()
	// Nothing listens on this address.
	c := New("http://127.0.0.1:1", store)

	_, err := c.Health(context.Background())
	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	require.Equal(t, 0, reqErr.Status)
	require.True(t, reqErr.IsTransient())
}

func TestContextCancellation(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(5 * time.Second):
		}
	}))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := c.Health(ctx)
	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	require.Equal(t, 0, reqErr.Status)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestHealthStable(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/health", r.URL.Path)
		// Liveness probes are unauthenticated.
		require.Empty(t, r.Header.Get("Authorization"))
		fmt.Fprint(w, `{"status": "ok"}`)
	}))

	for i := 0; i < 3; i++ {
		resp, err := c.Health(context.Background())
		require.NoError(t, err)
		require.Equal(t, "ok", resp.Status)
	}
}

func TestNotFoundHelper(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"error": "User not found"}`)
	}))

	_, err := c.GetUserProfile(context.Background(), "nope")
	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	require.True(t, reqErr.IsNotFound())
	require.False(t, reqErr.IsUnauthorized())
	require.False(t, reqErr.IsTransient())
}

func TestSuccessDecodeFailureIsRequestError(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "not json at all")
	}))

	_, err := c.GetPost(context.Background(), "p1")
	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	require.Equal(t, http.StatusOK, reqErr.Status)
}

func TestBaseURLTrailingSlash(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/health", r.URL.Path)
		fmt.Fprint(w, `{"status": "ok"}`)
	}))
	defer server.Close()

	c := New(server.URL+"/", session.NewMemoryStore())
	_, err := c.Health(context.Background())
	require.NoError(t, err)
}

func TestMessageResponses(t *testing.T) {
	var gotPath, gotMethod string
	c, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
		require.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		fmt.Fprint(w, `{"message": "done"}`)
	}))
	require.NoError(t, store.SaveSession(&session.Session{Token: "tok"}))

	resp, err := c.LikePost(context.Background(), "p1")
	require.NoError(t, err)
	require.Equal(t, "done", resp.Message)
	require.Equal(t, http.MethodPost, gotMethod)
	require.Equal(t, "/posts/p1/like", gotPath)

	_, err = c.UnbookmarkPost(context.Background(), "p1")
	require.NoError(t, err)
	require.Equal(t, http.MethodDelete, gotMethod)
	require.Equal(t, "/posts/p1/bookmark", gotPath)

	_, err = c.UnrepostPost(context.Background(), "p1")
	require.NoError(t, err)
	require.Equal(t, "/posts/p1/repost", gotPath)
}

func TestTypedPayloadOrError(t *testing.T) {
	// A failing call returns a nil payload, never a half-filled one.
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"error": "Missing token"}`)
	}))

	user, err := c.GetCurrentUser(context.Background())
	require.Nil(t, user)
	require.Error(t, err)

	var posts []api.Post
	posts, err = c.GetFeed(context.Background(), 20, 0)
	require.Nil(t, posts)
	require.Error(t, err)
}

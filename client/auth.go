package client

import (
	"context"
	"crypto/ed25519"
	"errors"
	"fmt"
	"net/http"

	"github.com/splitter-network/splitter-go/api"
	"github.com/splitter-network/splitter-go/didkey"
	"github.com/splitter-network/splitter-go/session"
)

// Register creates a new account. On success the minted token and the
// account's DID are written to the session store, so subsequent
// authenticated calls pick them up automatically.
func (c *Client) Register(ctx context.Context, req *api.RegisterRequest) (*api.AuthResponse, error) {
	var resp api.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", nil, req, false, &resp); err != nil {
		return nil, err
	}
	if err := c.saveAuth(&resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetChallenge requests a login nonce for a DID. The challenge must be
// signed and submitted to VerifyChallenge before it expires.
func (c *Client) GetChallenge(ctx context.Context, did string) (*api.ChallengeResponse, error) {
	var resp api.ChallengeResponse
	err := c.do(ctx, http.MethodPost, "/auth/challenge", nil, &api.ChallengeRequest{DID: did}, false, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// VerifyChallenge submits a signed challenge. On success the minted token
// and DID are written to the session store.
func (c *Client) VerifyChallenge(ctx context.Context, req *api.VerifyChallengeRequest) (*api.AuthResponse, error) {
	var resp api.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/verify", nil, req, false, &resp); err != nil {
		return nil, err
	}
	if err := c.saveAuth(&resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// LoginWithKey runs the full challenge flow for a DID: fetch a challenge,
// sign it with the private key, verify, and store the session.
func (c *Client) LoginWithKey(ctx context.Context, did string, priv ed25519.PrivateKey) (*api.AuthResponse, error) {
	challenge, err := c.GetChallenge(ctx, did)
	if err != nil {
		return nil, err
	}
	return c.VerifyChallenge(ctx, &api.VerifyChallengeRequest{
		DID:       did,
		Challenge: challenge.Challenge,
		Signature: didkey.SignChallenge(challenge.Challenge, priv),
	})
}

// Logout clears the session store: token, DID and private key go together.
// No network call is made; the token simply stops being sent.
func (c *Client) Logout() error {
	if err := c.sessions.Clear(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// saveAuth persists a freshly minted token. A private key already held in
// the store (written at key generation time) is carried over; token, DID
// and key always live in the same session record.
func (c *Client) saveAuth(resp *api.AuthResponse) error {
	if resp.Token == "" {
		return nil
	}
	sess := &session.Session{
		Token: resp.Token,
		DID:   resp.User.DID,
	}
	existing, err := c.sessions.GetSession()
	if err != nil && !errors.Is(err, session.ErrNoSession) {
		return fmt.Errorf("failed to read session: %w", err)
	}
	if existing != nil {
		sess.PrivateKeyMultibase = existing.PrivateKeyMultibase
	}
	if err := c.sessions.SaveSession(sess); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

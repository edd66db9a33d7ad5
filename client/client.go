// Package client implements the typed HTTP client for the Splitter backend
// API. Every call either returns a decoded wire type from the api package or
// a *RequestError; no other error shape escapes to consumers.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/splitter-network/splitter-go/api"
	"github.com/splitter-network/splitter-go/session"
	"github.com/splitter-network/splitter-go/util"
)

// DefaultBaseURL is where a locally running backend listens.
const DefaultBaseURL = "http://localhost:8000/api/v1"

const defaultTimeout = 30 * time.Second

// Client talks to one Splitter backend. Session state is injected, never
// ambient, so tests and multi-account tools can run isolated clients in
// parallel.
type Client struct {
	baseURL    string
	httpClient *http.Client
	sessions   session.Store
	logger     zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client, e.g. to set a custom
// transport or timeout.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithLogger attaches a logger for per-request debug logging.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New creates a client for the backend at baseURL using the given session
// store. The store is read on every authenticated request; the only writers
// are Register, VerifyChallenge and Logout.
func New(baseURL string, sessions session.Store, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
		sessions:   sessions,
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RequestError is the uniform error produced for any failed call. Status is
// the HTTP status code, or 0 when the backend was unreachable.
type RequestError struct {
	Status  int
	Message string
	cause   error
}

func (e *RequestError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("request failed: %s", e.Message)
	}
	return fmt.Sprintf("request failed (HTTP %d): %s", e.Status, e.Message)
}

func (e *RequestError) Unwrap() error {
	return e.cause
}

// IsUnauthorized reports whether the caller was unauthenticated or the token
// has expired.
func (e *RequestError) IsUnauthorized() bool {
	return e.Status == http.StatusUnauthorized
}

// IsNotFound reports whether the requested resource is absent.
func (e *RequestError) IsNotFound() bool {
	return e.Status == http.StatusNotFound
}

// IsTransient reports whether the failure is likely to clear on its own: the
// backend was unreachable or returned a server error. The client performs no
// retries itself; retry policy belongs to the caller.
func (e *RequestError) IsTransient() bool {
	return e.Status == 0 || e.Status >= 500
}

// pagination encodes limit/offset exactly as given. The client performs no
// validation and imposes no caps; the backend owns both.
func pagination(limit, offset int) url.Values {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa(offset))
	return q
}

// do performs a single request against the backend. A non-nil body is JSON
// serialized. When authed is set and the session store holds a token, it is
// attached as a bearer token; a missing token is not an error here, the
// backend's 401 surfaces as a RequestError like any other failure. A 2xx
// response is decoded into out when out is non-nil.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, authed bool, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody *bytes.Buffer
	if body != nil {
		marshalled, err := json.Marshal(body)
		if err != nil {
			return &RequestError{Message: fmt.Sprintf("failed to encode request body: %v", err), cause: err}
		}
		reqBody = bytes.NewBuffer(marshalled)
	} else {
		reqBody = &bytes.Buffer{}
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return &RequestError{Message: fmt.Sprintf("failed to build request: %v", err), cause: err}
	}
	req.Header.Set("Content-Type", "application/json")

	if authed {
		// Read the store on every call so the freshest token is sent.
		sess, err := c.sessions.GetSession()
		if err == nil && sess.Token != "" {
			req.Header.Set("Authorization", "Bearer "+sess.Token)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug().Err(err).Str("method", method).Str("path", path).Msg("request failed")
		return &RequestError{Status: 0, Message: err.Error(), cause: err}
	}
	defer util.Close(resp.Body)

	c.logger.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("request complete")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errBody api.ErrorResponse
		message := fmt.Sprintf("HTTP %d", resp.StatusCode)
		if err := json.NewDecoder(resp.Body).Decode(&errBody); err == nil && errBody.Error != "" {
			message = errBody.Error
		}
		return &RequestError{Status: resp.StatusCode, Message: message}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &RequestError{
				Status:  resp.StatusCode,
				Message: fmt.Sprintf("failed to decode response body: %v", err),
				cause:   err,
			}
		}
	}
	return nil
}

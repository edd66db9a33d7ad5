package client

import (
	"context"
	"net/http"

	"github.com/splitter-network/splitter-go/api"
)

// Health probes the backend's liveness endpoint.
func (c *Client) Health(ctx context.Context) (*api.HealthResponse, error) {
	var resp api.HealthResponse
	if err := c.do(ctx, http.MethodGet, "/health", nil, nil, false, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

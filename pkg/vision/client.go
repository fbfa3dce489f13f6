package vision

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
)

// Transport sends an encoded images:annotate request and returns the raw
// reply body. Implementations live in pkg/transport.
type Transport interface {
	Annotate(ctx context.Context, body []byte) ([]byte, error)
}

// Client requests document text detection through a Transport.
type Client struct {
	transport Transport
}

// NewClient creates a client using t for the network call.
func NewClient(t Transport) *Client {
	return &Client{transport: t}
}

// Annotate runs document text detection on img. A structured error in
// the reply is returned as *ServiceError and no Response is produced.
func (c *Client) Annotate(ctx context.Context, img Image) (*Response, error) {
	if c.transport == nil {
		return nil, errors.New("vision: client has no transport")
	}

	body, err := json.Marshal(NewRequest(img))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	slog.Debug("Sending annotate request", "request_bytes", len(body))
	reply, err := c.transport.Annotate(ctx, body)
	if err != nil {
		return nil, fmt.Errorf("annotate request failed: %w", err)
	}
	slog.Debug("Received annotate response", "response_bytes", len(reply))

	return ParseResponse(reply)
}

package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/lehigh-university-libraries/gcv/internal/utils"
	"golang.org/x/oauth2"
)

// DefaultEndpoint is the Cloud Vision images:annotate REST endpoint.
const DefaultEndpoint = "https://vision.googleapis.com/v1/images:annotate"

// REST posts requests to the Cloud Vision REST API with a bearer token.
type REST struct {
	endpoint    string
	tokenSource oauth2.TokenSource
	httpClient  *http.Client
}

// Option configures a REST transport.
type Option func(*REST)

// WithEndpoint overrides DefaultEndpoint.
func WithEndpoint(endpoint string) Option {
	return func(r *REST) { r.endpoint = endpoint }
}

// WithHTTPClient sets the client used for requests.
func WithHTTPClient(c *http.Client) Option {
	return func(r *REST) { r.httpClient = c }
}

// WithTimeout sets the request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(r *REST) { r.httpClient = &http.Client{Timeout: d} }
}

// NewREST creates a transport that sends credential as a bearer token.
func NewREST(credential string, opts ...Option) *REST {
	return NewRESTWithTokenSource(oauth2.StaticTokenSource(&oauth2.Token{AccessToken: credential}), opts...)
}

// NewRESTWithTokenSource creates a transport that asks ts for a token
// on every request.
func NewRESTWithTokenSource(ts oauth2.TokenSource, opts ...Option) *REST {
	r := &REST{
		endpoint:    DefaultEndpoint,
		tokenSource: ts,
		httpClient:  &http.Client{Timeout: 60 * time.Second},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Annotate posts body and returns the reply. Error statuses that carry a
// JSON body are returned as a reply so the caller can read the service's
// error object.
func (r *REST) Annotate(ctx context.Context, body []byte) ([]byte, error) {
	token, err := r.tokenSource.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to get access token: %w", utils.MaskSensitiveError(err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token.AccessToken)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, utils.MaskSensitiveError(err)
	}
	defer resp.Body.Close()

	reply, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK && !json.Valid(reply) {
		return nil, utils.MaskSensitiveError(fmt.Errorf("vision API error: %d - %s", resp.StatusCode, utils.TruncateBody(reply)))
	}
	return reply, nil
}

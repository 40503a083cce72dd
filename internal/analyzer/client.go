package analyzer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// maxErrorBody bounds how much of a failed response is kept for logging.
const maxErrorBody = 4 << 10

var errNullEnvelope = errors.New("response body is null")

type Client struct {
	endpoint string
	client   *http.Client
}

// NewClient returns a Client posting to endpoint. A zero timeout leaves the
// request bounded only by the caller's context.
func NewClient(endpoint string, timeout time.Duration) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Client{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

func (c *Client) Endpoint() string {
	return c.endpoint
}

func (c *Client) Analyze(ctx context.Context, req Request) (*Envelope, error) {
	jsonData, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &TransportError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	return DecodeEnvelope(resp.Body)
}

// DecodeEnvelope is the first decode step: the HTTP body into an Envelope.
// The body must be a single JSON value other than null. Any other shape,
// including a status that is not a JSON string, yields an Envelope with an
// empty Status, which callers treat as nothing to render.
func DecodeEnvelope(r io.Reader) (*Envelope, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, &EnvelopeError{Err: err}
	}

	var raw json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, &EnvelopeError{Err: err}
	}

	raw = bytes.TrimSpace(raw)
	if bytes.Equal(raw, []byte("null")) {
		return nil, &EnvelopeError{Err: errNullEnvelope}
	}

	env := &Envelope{}
	if raw[0] != '{' {
		return env, nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, &EnvelopeError{Err: err}
	}

	if status := bytes.TrimSpace(fields["status"]); len(status) > 0 && status[0] == '"' {
		if err := json.Unmarshal(status, &env.Status); err != nil {
			return nil, &EnvelopeError{Err: err}
		}
	}
	env.Data = fields["data"]
	return env, nil
}

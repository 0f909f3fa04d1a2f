// Package gateway calls the external IP-whitelisting webhook.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const DefaultTimeout = 5 * time.Second

var (
	ErrNotConfigured = errors.New("whitelist gateway URL not configured")
	ErrRejected      = errors.New("whitelist gateway rejected request")
)

type Whitelister interface {
	Configured() bool
	Whitelist(ctx context.Context, ip, proto string) error
}

type Client struct {
	url        string
	httpClient *http.Client
	attempts   *prometheus.CounterVec
}

type request struct {
	IP    string `json:"ip"`
	Proto string `json:"proto,omitempty"`
}

// NewClient returns a client for url. An empty url yields an unconfigured
// client. attempts may be nil.
func NewClient(url string, attempts *prometheus.CounterVec) *Client {
	return &Client{
		url:        url,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		attempts:   attempts,
	}
}

func (c *Client) Configured() bool {
	return c.url != ""
}

// Whitelist makes exactly one POST. Only a 200 counts as success.
func (c *Client) Whitelist(ctx context.Context, ip, proto string) error {
	if !c.Configured() {
		return ErrNotConfigured
	}

	err := c.post(ctx, request{IP: ip, Proto: proto})
	c.observe(err)
	return err
}

func (c *Client) post(ctx context.Context, body request) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build whitelist request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call whitelist gateway: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrRejected, resp.StatusCode)
	}
	return nil
}

func (c *Client) observe(err error) {
	if c.attempts == nil {
		return
	}

	result := "success"
	switch {
	case errors.Is(err, ErrRejected):
		result = "rejected"
	case err != nil:
		result = "error"
	}
	c.attempts.WithLabelValues(result).Inc()
}

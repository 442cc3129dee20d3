// Package network provides the HTTP client used to query provider endpoints.
package network

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/homestream-cli/homestream/constant"
	"github.com/homestream-cli/homestream/key"
	"github.com/spf13/viper"
)

// Getter fetches a resource. Implementations must honor ctx cancellation.
type Getter interface {
	Get(ctx context.Context, rawURL string, params url.Values) ([]byte, error)
}

// Options configure a Client.
type Options struct {
	UserAgent string
	// Impersonate routes HTTPS through a Chrome TLS fingerprint.
	Impersonate bool
}

// Client is a Getter backed by net/http.
type Client struct {
	HTTP      *http.Client
	UserAgent string
}

// New creates a client. Request deadlines come from the caller's context.
func New(options Options) *Client {
	var transport http.RoundTripper = newTransport()
	if options.Impersonate {
		transport = newChromeTransport()
	}

	userAgent := options.UserAgent
	if userAgent == "" {
		userAgent = constant.UserAgent
	}

	return &Client{
		HTTP: &http.Client{
			Timeout:   time.Minute,
			Transport: transport,
		},
		UserAgent: userAgent,
	}
}

// FromConfig creates a client from the network.* settings.
func FromConfig() *Client {
	return New(Options{
		UserAgent:   viper.GetString(key.NetworkUserAgent),
		Impersonate: viper.GetBool(key.NetworkImpersonate),
	})
}

// Get performs a GET request with params merged into the URL's query string.
// A non-2xx response is reported as a *StatusError.
func (c *Client) Get(ctx context.Context, rawURL string, params url.Values) ([]byte, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse url: %w", err)
	}

	if len(params) > 0 {
		query := u.Query()
		for name, values := range params {
			query[name] = values
		}
		u.RawQuery = query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Accept", "application/json, text/plain, */*")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &StatusError{URL: u.String(), StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	return body, nil
}

// Head sends a HEAD request with the client's User-Agent.
// Any response counts as success; only transport failures are errors.
func (c *Client) Head(ctx context.Context, rawURL string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, rawURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.UserAgent)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	return resp.Body.Close()
}

// newTransport initializes a tuned http.Transport with optimized pool and timeout parameters.
func newTransport() *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 100
	t.MaxIdleConnsPerHost = 100
	t.MaxConnsPerHost = 200
	t.IdleConnTimeout = 30 * time.Second
	t.ResponseHeaderTimeout = 30 * time.Second
	t.ExpectContinueTimeout = 30 * time.Second
	return t
}

package fetch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"go.uber.org/zap"
)

// Fetcher loads a JSON document.
type Fetcher interface {
	FetchJSON(ctx context.Context, u *url.URL) (any, error)
}

// HTTPError is returned when the server answers with a non-2xx status.
type HTTPError struct {
	Status int
	URL    string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("fetch failed: HTTP %d on %s", e.Status, e.URL)
}

// TransportError is returned when no response could be obtained at all.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("fetch failed: %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// DecodeError is returned when a successful response is not valid JSON.
type DecodeError struct {
	URL string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("invalid JSON from %s: %v", e.URL, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Client fetches documents over HTTP(S) or from the local filesystem (file://).
// Every request bypasses caches and is attempted exactly once.
type Client struct {
	http   *http.Client
	logger *zap.Logger
}

// NewClient constructs a Client. A nil httpClient gets a default client that
// also understands file:// URLs.
func NewClient(httpClient *http.Client, logger *zap.Logger) *Client {
	if httpClient == nil {
		transport := http.DefaultTransport.(*http.Transport).Clone()
		transport.RegisterProtocol("file", http.NewFileTransport(http.Dir("/")))
		httpClient = &http.Client{Transport: transport}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{http: httpClient, logger: logger}
}

// FetchJSON retrieves and decodes the document at u. Numbers are kept as
// json.Number so identifiers survive untouched.
func (c *Client) FetchJSON(ctx context.Context, u *url.URL) (any, error) {
	body, resolved, err := c.get(ctx, u, "application/json")
	if err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, &DecodeError{URL: resolved, Err: err}
	}
	return doc, nil
}

// FetchBytes retrieves the raw body at u.
func (c *Client) FetchBytes(ctx context.Context, u *url.URL) ([]byte, error) {
	body, _, err := c.get(ctx, u, "*/*")
	return body, err
}

func (c *Client) get(ctx context.Context, u *url.URL, accept string) ([]byte, string, error) {
	target := u.String()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, target, &TransportError{URL: target, Err: err}
	}
	req.Header.Set("Accept", accept)
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, target, &TransportError{URL: target, Err: err}
	}
	defer resp.Body.Close()

	// Report the URL that actually answered, after redirects.
	if resp.Request != nil && resp.Request.URL != nil {
		target = resp.Request.URL.String()
	}
	c.logger.Debug("fetched", zap.String("url", target), zap.Int("status", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, target, &HTTPError{Status: resp.StatusCode, URL: target}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, target, &TransportError{URL: target, Err: err}
	}
	return body, target, nil
}

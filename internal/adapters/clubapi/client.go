// Package clubapi is the JSON client for the club backend. Authentication
// is cookie-session based: the client carries a cookie jar so credentials
// set by the backend are included automatically on every call.
package clubapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"
)

// DefaultTimeout bounds every backend call.
const DefaultTimeout = 15 * time.Second

// Client is the club backend HTTP API client.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// New creates a client with a session cookie jar and default timeout.
func New(baseURL string) *Client {
	jar, _ := cookiejar.New(nil)
	return &Client{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: DefaultTimeout,
			Jar:     jar,
		},
	}
}

// do sends one JSON request. extraHeaders may be nil.
func (c *Client) do(ctx context.Context, method, endpoint string, extraHeaders map[string]string, body any, out any) error {
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: DefaultTimeout}
	}
	url := c.base() + "/" + strings.TrimLeft(endpoint, "/")
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return err
		}
	}
	req, err := http.NewRequestWithContext(ctx, method, url, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range extraHeaders {
		req.Header.Set(k, v)
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return &APIError{StatusCode: resp.StatusCode, Body: string(b)}
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

func (c *Client) base() string {
	return strings.TrimRight(c.BaseURL, "/")
}

// listQuery renders a limit/offset query suffix.
func listQuery(limit, offset int) string {
	if limit <= 0 && offset <= 0 {
		return ""
	}
	return fmt.Sprintf("?limit=%d&offset=%d", limit, offset)
}

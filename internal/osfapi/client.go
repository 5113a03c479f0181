package osfapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
)

// DefaultBaseURL is the production OSF API endpoint.
const DefaultBaseURL = "https://api.osf.io/v2"

const userAgent = "osf-go/0.1"

// Credentials holds the authentication material attached to every request.
// Either a username/password pair (HTTP basic) or a personal access token
// (bearer); the token wins when both are set.
type Credentials struct {
	Username string
	Password string
	Token    string
}

// HasAuth reports whether any credential was supplied. Anonymous clients can
// still read public projects.
func (c Credentials) HasAuth() bool {
	return c.Token != "" || c.Username != ""
}

// Client is an HTTP client for the OSF API. It handles request construction,
// credential attachment, and error classification. Requests are issued one
// at a time and failures propagate immediately; there is no retry layer.
type Client struct {
	baseURL    string
	httpClient *http.Client
	creds      Credentials
	logger     *slog.Logger
}

// NewClient creates an OSF API client. baseURL is typically DefaultBaseURL;
// a trailing slash is stripped.
func NewClient(baseURL string, httpClient *http.Client, creds Credentials, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
		creds:      creds,
		logger:     logger,
	}
}

// HasAuth reports whether the client carries credentials.
func (c *Client) HasAuth() bool { return c.creds.HasAuth() }

// endpoint builds an API URL under the client's base, with the trailing
// slash the OSF API insists on.
func (c *Client) endpoint(parts ...string) string {
	return c.baseURL + "/" + strings.Join(parts, "/") + "/"
}

// do executes a single HTTP request. rawURL may be an absolute URL taken
// from a response document or a URL built via endpoint(). Non-2xx responses
// are drained, closed, and returned as an *APIError; for 2xx the caller owns
// the body.
func (c *Client) do(ctx context.Context, method, rawURL string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return nil, fmt.Errorf("osf: creating request: %w", err)
	}

	req.Header.Set("User-Agent", userAgent)

	switch {
	case c.creds.Token != "":
		req.Header.Set("Authorization", "Bearer "+c.creds.Token)
	case c.creds.Username != "":
		req.SetBasicAuth(c.creds.Username, c.creds.Password)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("osf: %s %s: %w", method, rawURL, err)
	}

	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		c.logger.Debug("request succeeded",
			slog.String("method", method),
			slog.String("url", rawURL),
			slog.Int("status", resp.StatusCode),
		)

		return resp, nil
	}

	errBody, readErr := io.ReadAll(io.LimitReader(resp.Body, 4096))
	resp.Body.Close()

	if readErr != nil {
		errBody = []byte("(failed to read response body)")
	}

	c.logger.Warn("request failed",
		slog.String("method", method),
		slog.String("url", rawURL),
		slog.Int("status", resp.StatusCode),
	)

	return nil, &APIError{
		StatusCode: resp.StatusCode,
		Message:    strings.TrimSpace(string(errBody)),
		Err:        classifyStatus(resp.StatusCode),
	}
}

// getJSON issues a GET and decodes the JSON response into v.
func (c *Client) getJSON(ctx context.Context, rawURL string, v any) error {
	resp, err := c.do(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("osf: decoding response from %s: %w", rawURL, err)
	}

	return nil
}

// addQuery appends query parameters to a URL that may already carry some.
func addQuery(rawURL string, pairs ...string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}

	q := u.Query()
	for i := 0; i+1 < len(pairs); i += 2 {
		q.Set(pairs[i], pairs[i+1])
	}

	u.RawQuery = q.Encode()

	return u.String()
}

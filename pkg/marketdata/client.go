package marketdata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// ErrNoAPIKey marks fetches that cannot run because the backing
// provider has no credential configured. Callers test with errors.Is.
var ErrNoAPIKey = errors.New("marketdata: api key is not configured")

// Credentials holds the provider API keys. Empty values disable the
// corresponding provider.
type Credentials struct {
	AlphaVantage string
	IndianAPI    string
}

// CredentialsFromEnv reads provider keys from the environment.
func CredentialsFromEnv() Credentials {
	return Credentials{
		AlphaVantage: os.Getenv("ALPHA_VANTAGE_API_KEY"),
		IndianAPI:    os.Getenv("INDIAN_API_KEY"),
	}
}

// Config configures a market data client.
type Config struct {
	Credentials Credentials
	Timeout     time.Duration
	UserAgent   string
}

// Client fetches JSON documents from market data providers. It also
// serves built-in mock datasets for mock:// URLs so dashboards work
// without any credentials.
type Client struct {
	http  *resty.Client
	creds Credentials
}

// New builds a client.
func New(cfg Config) *Client {
	http := resty.New()
	if cfg.Timeout > 0 {
		http.SetTimeout(cfg.Timeout)
	}
	if cfg.UserAgent != "" {
		http.SetHeader("User-Agent", cfg.UserAgent)
	}
	return &Client{http: http, creds: cfg.Credentials}
}

// Credentials returns the configured provider keys.
func (c *Client) Credentials() Credentials {
	return c.creds
}

// FetchJSON retrieves and decodes the document at the given URL. The
// mock:// scheme dispatches to the built-in datasets. Non-2xx statuses
// are errors; proxy envelopes are unwrapped transparently.
func (c *Client) FetchJSON(ctx context.Context, url string) (any, error) {
	if strings.HasPrefix(url, mockScheme) {
		return mockDataset(url)
	}

	req := c.http.R().SetContext(ctx)
	if strings.Contains(url, "indianapi.in") {
		if c.creds.IndianAPI == "" {
			return nil, fmt.Errorf("fetch %s: %w", url, ErrNoAPIKey)
		}
		req.SetHeader("X-Api-Key", c.creds.IndianAPI)
	}

	resp, err := req.Get(url)
	if err != nil {
		return nil, fmt.Errorf("marketdata: fetch %s: %w", url, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("marketdata: fetch %s: unexpected status %d", url, resp.StatusCode())
	}

	var value any
	if err := json.Unmarshal(resp.Body(), &value); err != nil {
		return nil, fmt.Errorf("marketdata: parse response from %s: %w", url, err)
	}
	return unwrapProxy(value), nil
}

// unwrapProxy unpacks allorigins-style proxy envelopes, which wrap the
// upstream body as a JSON string under "contents".
func unwrapProxy(value any) any {
	obj, ok := value.(map[string]any)
	if !ok {
		return value
	}
	contents, ok := obj["contents"].(string)
	if !ok {
		return value
	}
	var inner any
	if err := json.Unmarshal([]byte(contents), &inner); err != nil {
		return value
	}
	return inner
}

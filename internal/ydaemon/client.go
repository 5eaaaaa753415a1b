// Package ydaemon is a small client for the yDaemon vault API.
package ydaemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/vaultboard/vaultboard/internal/logging"
	"github.com/vaultboard/vaultboard/internal/vaults"
)

const (
	defaultTimeout = 30 * time.Second
	maxRetries     = 3
	maxBodyBytes   = 32 << 20
	userAgent      = "vaultboard"
)

var ErrUnexpectedStatus = errors.New("ydaemon: unexpected status")

type Client struct {
	BaseURL string
	HTTP    *retryablehttp.Client
}

type Options struct {
	Timeout time.Duration
	Logger  *slog.Logger
}

// New creates a client for baseURL. Requests time out after opts.Timeout
// and are retried on 429, 5xx and connection errors.
func New(baseURL string, opts Options) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if base == "" {
		return nil, errors.New("ydaemon base URL is required")
	}
	if _, err := url.ParseRequestURI(base); err != nil {
		return nil, fmt.Errorf("ydaemon base URL: %w", err)
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	hc := retryablehttp.NewClient()
	hc.RetryMax = maxRetries
	hc.RetryWaitMin = 200 * time.Millisecond
	hc.RetryWaitMax = 5 * time.Second
	hc.HTTPClient.Timeout = timeout
	hc.Logger = logging.Component(opts.Logger, "ydaemon")

	return &Client{BaseURL: base, HTTP: hc}, nil
}

// ListReports returns the raw reports payload of a strategy. The payload
// is not validated here.
func (c *Client) ListReports(ctx context.Context, chainID int, strategy string) ([]byte, error) {
	strategy = strings.TrimSpace(strategy)
	if strategy == "" {
		return nil, errors.New("ydaemon: strategy address is required")
	}
	return c.get(ctx, c.endpoint(chainID, "reports", strategy), nil)
}

// ListVaults returns every vault of a chain with strategy details and risk.
func (c *Client) ListVaults(ctx context.Context, chainID int) ([]vaults.Vault, error) {
	query := url.Values{}
	query.Set("strategiesDetails", "withDetails")
	query.Set("strategiesRisk", "withRisk")
	body, err := c.get(ctx, c.endpoint(chainID, "vaults", "all"), query)
	if err != nil {
		return nil, err
	}

	var out []vaults.Vault
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("decode ydaemon vaults for chain %d: %w", chainID, err)
	}
	return out, nil
}

func (c *Client) endpoint(chainID int, parts ...string) string {
	segments := make([]string, 0, len(parts)+1)
	segments = append(segments, strconv.Itoa(chainID))
	for _, p := range parts {
		segments = append(segments, url.PathEscape(p))
	}
	return c.BaseURL + "/" + strings.Join(segments, "/")
}

func (c *Client) get(ctx context.Context, endpoint string, query url.Values) ([]byte, error) {
	if c == nil || c.HTTP == nil {
		return nil, errors.New("ydaemon client is not configured")
	}
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read ydaemon response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: GET %s returned %d: %s", ErrUnexpectedStatus, safeURL(endpoint), resp.StatusCode, snippet(body))
	}
	return body, nil
}

func safeURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	u.RawQuery = ""
	u.User = nil
	return u.String()
}

func snippet(body []byte) string {
	const max = 200
	s := strings.TrimSpace(string(body))
	if len(s) > max {
		return s[:max] + "…"
	}
	return s
}

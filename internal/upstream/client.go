package upstream

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/profootballhighlights/pfh-scoreboard/internal/logging"
	"github.com/profootballhighlights/pfh-scoreboard/internal/metrics"
)

const (
	defaultTimeout = 10 * time.Second
	// Cap on bodies we are willing to buffer; standings HTML is well under this.
	maxBodyBytes  = 8 << 20
	errorBodyRead = 4 << 10
)

// Doer is the subset of *http.Client the client depends on.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Options controls how a Client reaches one upstream.
type Options struct {
	Name       string // metrics/log label, e.g. "espn"
	UserAgent  string
	Accept     string
	Timeout    time.Duration
	HTTPClient Doer
	Logger     *slog.Logger
	Metrics    *metrics.Recorder
}

// Client performs single GET requests with a per-request timeout. It never retries.
type Client struct {
	name       string
	userAgent  string
	accept     string
	timeout    time.Duration
	httpClient Doer
	logger     *slog.Logger
	metrics    *metrics.Recorder
}

// NewClient constructs a Client with defaults applied.
func NewClient(opts Options) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		name:       opts.Name,
		userAgent:  opts.UserAgent,
		accept:     opts.Accept,
		timeout:    timeout,
		httpClient: resolveHTTPClient(opts.HTTPClient),
		logger:     opts.Logger,
		metrics:    opts.Metrics,
	}
}

// Name returns the upstream label used in logs and metrics.
func (c *Client) Name() string {
	return c.name
}

// Get fetches rawURL and returns the body. Non-2xx responses yield a *StatusError
// carrying the status and a truncated body excerpt.
func (c *Client) Get(ctx context.Context, rawURL string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	body, err := c.do(ctx, rawURL)
	elapsed := time.Since(start)
	c.metrics.RecordUpstreamAttempt(c.name, elapsed, err)

	if logger := logging.FromContext(ctx, c.logger); err != nil && logger != nil {
		logger.LogAttrs(ctx, slog.LevelWarn, "upstream request failed",
			slog.String(logging.FieldUpstream, c.name),
			slog.Int64(logging.FieldDurationMS, elapsed.Milliseconds()),
			slog.String("error", err.Error()),
		)
	}
	return body, err
}

func (c *Client) do(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: building request: %w", c.name, err)
	}
	if c.accept != "" {
		req.Header.Set("Accept", c.accept)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", c.name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyRead))
		return nil, &StatusError{
			Upstream:   c.name,
			StatusCode: resp.StatusCode,
			Body:       Truncate(string(excerpt), MaxErrorBody),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%s: reading body: %w", c.name, err)
	}
	return body, nil
}

func resolveHTTPClient(client Doer) Doer {
	if client != nil {
		return client
	}
	return &http.Client{}
}

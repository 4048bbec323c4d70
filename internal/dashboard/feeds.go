package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/profootballhighlights/pfh-scoreboard/internal/scoreboard"
	"github.com/profootballhighlights/pfh-scoreboard/internal/upstream"
)

// Feed names used in logs and metrics.
const (
	FeedScoreboard = "scoreboard"
	FeedStandings  = "standings"
)

// Paths and budgets for the two feeds the dashboard reads from its own proxies.
const (
	ScoreboardPath    = "/api/espn?path=football/nfl/scoreboard"
	StandingsPath     = "/api/standings"
	ScoreboardTimeout = 12 * time.Second
	StandingsTimeout  = 15 * time.Second
)

// MsgNoHTML is shown when the standings payload carried neither html nor an error.
const MsgNoHTML = "No HTML returned"

// Feeds supplies the dashboard's two data sources.
type Feeds interface {
	Scoreboard(ctx context.Context) ([]scoreboard.Event, error)
	StandingsHTML(ctx context.Context) (string, error)
}

// Getter performs a GET and returns the body.
type Getter interface {
	Get(ctx context.Context, rawURL string) ([]byte, error)
}

// FeedClient reads the feeds over HTTP from the proxy endpoints.
type FeedClient struct {
	baseURL string
	client  Getter
}

// NewFeedClient returns a FeedClient rooted at baseURL.
func NewFeedClient(baseURL string, client Getter) *FeedClient {
	return &FeedClient{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

// Scoreboard fetches and maps the football scoreboard.
func (c *FeedClient) Scoreboard(ctx context.Context) ([]scoreboard.Event, error) {
	body, err := c.get(ctx, ScoreboardPath, ScoreboardTimeout)
	if err != nil {
		return nil, err
	}
	return scoreboard.Decode(body)
}

type standingsPayload struct {
	HTML  string `json:"html"`
	Error string `json:"error"`
}

// StandingsHTML fetches the standings payload and returns its html.
func (c *FeedClient) StandingsHTML(ctx context.Context) (string, error) {
	body, err := c.get(ctx, StandingsPath, StandingsTimeout)
	if err != nil {
		return "", err
	}
	var payload standingsPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", fmt.Errorf("decoding standings: %w", err)
	}
	if payload.HTML == "" {
		if payload.Error != "" {
			return "", errors.New(payload.Error)
		}
		return "", errors.New(MsgNoHTML)
	}
	return payload.HTML, nil
}

func (c *FeedClient) get(ctx context.Context, path string, timeout time.Duration) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	body, err := c.client.Get(ctx, c.baseURL+path)
	if statusErr, ok := upstream.AsStatusError(err); ok {
		return nil, fmt.Errorf("HTTP %d", statusErr.StatusCode)
	}
	return body, err
}

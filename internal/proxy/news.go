package proxy

import (
	"context"
	"errors"
	"time"
)

// NewsMaxAge is the cache lifetime advertised for the headlines feed.
const NewsMaxAge = 300 * time.Second

// ErrHeadlinesUnavailable is returned when the headlines feed answers with a non-success status.
var ErrHeadlinesUnavailable = errors.New("failed to fetch headlines")

// News relays the fixed RSS headlines feed verbatim.
type News struct {
	feedURL string
	client  Getter
}

// NewNews constructs the headlines relay.
func NewNews(feedURL string, client Getter) *News {
	return &News{feedURL: feedURL, client: client}
}

// Fetch returns the raw XML document.
func (n *News) Fetch(ctx context.Context) ([]byte, error) {
	body, err := n.client.Get(ctx, n.feedURL)
	if err != nil {
		if _, ok := asStatus(err); ok {
			return nil, ErrHeadlinesUnavailable
		}
		return nil, err
	}
	return body, nil
}

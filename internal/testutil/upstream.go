package testutil

import (
	"context"
	"net/http"
	"sync"
)

// GetterFunc adapts a function to the Get(ctx, url) contract used by feeds.
type GetterFunc func(ctx context.Context, rawURL string) ([]byte, error)

func (f GetterFunc) Get(ctx context.Context, rawURL string) ([]byte, error) {
	return f(ctx, rawURL)
}

// RecordingGetter returns canned responses keyed by URL and records every request.
type RecordingGetter struct {
	mu        sync.Mutex
	Responses map[string][]byte
	Errors    map[string]error
	Fallback  func(rawURL string) ([]byte, error)
	calls     []string
}

func (g *RecordingGetter) Get(ctx context.Context, rawURL string) ([]byte, error) {
	g.mu.Lock()
	g.calls = append(g.calls, rawURL)
	g.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err, ok := g.Errors[rawURL]; ok {
		return nil, err
	}
	if body, ok := g.Responses[rawURL]; ok {
		return body, nil
	}
	if g.Fallback != nil {
		return g.Fallback(rawURL)
	}
	return nil, http.ErrMissingFile
}

// Calls returns a copy of the URLs requested so far.
func (g *RecordingGetter) Calls() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]string, len(g.calls))
	copy(out, g.calls)
	return out
}

// RoundTripFunc lets tests stub an http.Client transport inline.
type RoundTripFunc func(*http.Request) (*http.Response, error)

func (f RoundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

package proxy

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/profootballhighlights/pfh-scoreboard/internal/metrics"
	"github.com/profootballhighlights/pfh-scoreboard/internal/upstream"
)

type stubGetter struct {
	body  []byte
	err   error
	calls []string
}

func (s *stubGetter) Get(ctx context.Context, rawURL string) ([]byte, error) {
	s.calls = append(s.calls, rawURL)
	return s.body, s.err
}

type failingCache struct{}

func (failingCache) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, errors.New("cache down")
}

func (failingCache) Set(context.Context, string, []byte, time.Duration) error {
	return errors.New("cache down")
}

func TestForwardRejectsWithoutOutboundRequest(t *testing.T) {
	getter := &stubGetter{body: []byte(`{}`)}
	p := New(ESPNAllowList("https://espn.test"), getter, nil, nil, nil)

	_, err := p.Forward(context.Background(), "hockey/nhl/scoreboard", "")
	if _, ok := AsValidationError(err); !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(getter.calls) != 0 {
		t.Fatalf("expected no outbound request, got %v", getter.calls)
	}
}

func TestForwardRelaysJSONVerbatim(t *testing.T) {
	payload := []byte(`{"events":[{"id":"1"}],  "extra": true}`)
	getter := &stubGetter{body: payload}
	p := New(ESPNAllowList("https://espn.test"), getter, nil, nil, nil)

	res, err := p.Forward(context.Background(), "football/nfl/scoreboard", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(res.Body) != string(payload) {
		t.Fatalf("expected verbatim body, got %s", res.Body)
	}
	if res.Cached {
		t.Fatalf("expected uncached response")
	}
	if len(getter.calls) != 1 || getter.calls[0] != "https://espn.test/football/nfl/scoreboard" {
		t.Fatalf("unexpected outbound calls %v", getter.calls)
	}
}

func TestForwardPropagatesStatusErrors(t *testing.T) {
	getter := &stubGetter{err: &upstream.StatusError{Upstream: "espn", StatusCode: 404, Body: "nope"}}
	p := New(ESPNAllowList("https://espn.test"), getter, nil, nil, nil)

	_, err := p.Forward(context.Background(), "football/nfl/scoreboard", "")
	statusErr, ok := upstream.AsStatusError(err)
	if !ok || statusErr.StatusCode != 404 {
		t.Fatalf("expected status error 404, got %v", err)
	}
}

func TestForwardRejectsInvalidJSON(t *testing.T) {
	getter := &stubGetter{body: []byte(`<html>maintenance</html>`)}
	p := New(ESPNAllowList("https://espn.test"), getter, nil, nil, nil)

	if _, err := p.Forward(context.Background(), "football/nfl/scoreboard", ""); !errors.Is(err, ErrInvalidJSON) {
		t.Fatalf("expected ErrInvalidJSON, got %v", err)
	}
}

func TestForwardServesFromRedisCache(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	defer mr.Close()

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	getter := &stubGetter{body: []byte(`{"leagues":[]}`)}
	rec := metrics.NewRecorder()
	p := New(SportsDBAllowList("https://sportsdb.test"), getter, NewRedisCache(rdb), nil, rec)
	ctx := context.Background()

	first, err := p.Forward(ctx, "lookupleague", "4391")
	if err != nil || first.Cached {
		t.Fatalf("expected live first response, got %+v err=%v", first, err)
	}
	second, err := p.Forward(ctx, "lookupleague", "4391")
	if err != nil || !second.Cached {
		t.Fatalf("expected cached second response, got %+v err=%v", second, err)
	}
	if string(second.Body) != `{"leagues":[]}` {
		t.Fatalf("unexpected cached body %s", second.Body)
	}
	if len(getter.calls) != 1 {
		t.Fatalf("expected one outbound call, got %d", len(getter.calls))
	}
	if rec.CacheHits("sportsdb") != 1 {
		t.Fatalf("expected cache hit recorded")
	}

	key := KeyPrefix + "https://sportsdb.test/lookupleague.php?id=4391"
	if ttl := mr.TTL(key); ttl != 300*time.Second {
		t.Fatalf("expected ttl to follow policy, got %s", ttl)
	}

	mr.FastForward(301 * time.Second)
	if _, err := p.Forward(ctx, "lookupleague", "4391"); err != nil {
		t.Fatalf("unexpected error after expiry: %v", err)
	}
	if len(getter.calls) != 2 {
		t.Fatalf("expected refetch after expiry, got %d calls", len(getter.calls))
	}
}

func TestForwardIgnoresCacheFailures(t *testing.T) {
	getter := &stubGetter{body: []byte(`{}`)}
	p := New(ESPNAllowList("https://espn.test"), getter, failingCache{}, nil, nil)

	if _, err := p.Forward(context.Background(), "football/nfl/scoreboard", ""); err != nil {
		t.Fatalf("expected cache failures to be non-fatal, got %v", err)
	}
	if len(getter.calls) != 1 {
		t.Fatalf("expected upstream call on cache failure")
	}
}

func TestNewsFetch(t *testing.T) {
	getter := &stubGetter{body: []byte(`<rss><channel/></rss>`)}
	n := NewNews("https://feeds.test/rss", getter)

	body, err := n.Fetch(context.Background())
	if err != nil || string(body) != `<rss><channel/></rss>` {
		t.Fatalf("expected verbatim xml, got %s err=%v", body, err)
	}

	getter.err = &upstream.StatusError{StatusCode: 503}
	if _, err := n.Fetch(context.Background()); !errors.Is(err, ErrHeadlinesUnavailable) {
		t.Fatalf("expected headlines unavailable, got %v", err)
	}

	getter.err = errors.New("dial tcp: refused")
	if _, err := n.Fetch(context.Background()); err == nil || errors.Is(err, ErrHeadlinesUnavailable) {
		t.Fatalf("expected transport error passthrough, got %v", err)
	}
}

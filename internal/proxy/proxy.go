package proxy

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/profootballhighlights/pfh-scoreboard/internal/logging"
	"github.com/profootballhighlights/pfh-scoreboard/internal/metrics"
)

// Getter is the outbound half of the proxy; *upstream.Client satisfies it.
type Getter interface {
	Get(ctx context.Context, rawURL string) ([]byte, error)
}

// Proxy relays JSON from one allow-listed upstream.
type Proxy struct {
	allow   AllowList
	client  Getter
	cache   Cache
	logger  *slog.Logger
	metrics *metrics.Recorder
}

// Result is a relayed payload plus the cache policy to advertise.
type Result struct {
	Body   []byte
	Target Target
	Cached bool
}

// New constructs a Proxy. cache may be nil.
func New(allow AllowList, client Getter, cache Cache, logger *slog.Logger, recorder *metrics.Recorder) *Proxy {
	return &Proxy{
		allow:   allow,
		client:  client,
		cache:   cache,
		logger:  logger,
		metrics: recorder,
	}
}

// Forward validates key/id against the allow-list, then issues a single GET.
// Rejected requests return a *ValidationError without touching the network.
func (p *Proxy) Forward(ctx context.Context, key, id string) (Result, error) {
	target, err := p.allow.Resolve(key, id)
	if err != nil {
		return Result{}, err
	}

	if body, ok := p.cached(ctx, target); ok {
		p.metrics.RecordCacheHit(target.Upstream)
		return Result{Body: body, Target: target, Cached: true}, nil
	}

	body, err := p.client.Get(ctx, target.URL)
	if err != nil {
		return Result{}, err
	}
	if !json.Valid(body) {
		return Result{}, ErrInvalidJSON
	}

	p.store(ctx, target, body)
	return Result{Body: body, Target: target}, nil
}

func (p *Proxy) cached(ctx context.Context, target Target) ([]byte, bool) {
	if p.cache == nil {
		return nil, false
	}
	body, ok, err := p.cache.Get(ctx, target.URL)
	if err != nil {
		logging.Warn(logging.FromContext(ctx, p.logger), "proxy cache read failed",
			logging.FieldUpstream, target.Upstream, "error", err)
		return nil, false
	}
	return body, ok
}

func (p *Proxy) store(ctx context.Context, target Target, body []byte) {
	if p.cache == nil {
		return
	}
	if err := p.cache.Set(ctx, target.URL, body, target.MaxAge); err != nil {
		logging.Warn(logging.FromContext(ctx, p.logger), "proxy cache write failed",
			logging.FieldUpstream, target.Upstream, "error", err)
	}
}

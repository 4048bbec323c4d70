package server

import (
	"log/slog"
	"time"

	"github.com/profootballhighlights/pfh-scoreboard/internal/config"
	"github.com/profootballhighlights/pfh-scoreboard/internal/metrics"
	"github.com/profootballhighlights/pfh-scoreboard/internal/proxy"
	"github.com/profootballhighlights/pfh-scoreboard/internal/standings"
	"github.com/profootballhighlights/pfh-scoreboard/internal/upstream"
)

// Identification sent upstream; each service sees the same agent it always has.
const (
	espnUserAgent      = "NetlifyFunction/espnProxy"
	sportsDBUserAgent  = "NetlifyFunction/sportsdbProxy"
	wikiUserAgent      = "profootballhighlights/1.0 (+https://profootballhighlights.netlify.app)"
	newsUserAgent      = "Mozilla/5.0"
	dashboardUserAgent = "pfh-scoreboard/dashboard"

	acceptJSON = "application/json"
)

// upstreamFactory builds one upstream.Client per outbound service with shared
// logging and metrics.
type upstreamFactory struct {
	logger     *slog.Logger
	metrics    *metrics.Recorder
	httpClient upstream.Doer
}

func newUpstreamFactory(logger *slog.Logger, recorder *metrics.Recorder) upstreamFactory {
	return upstreamFactory{logger: logger, metrics: recorder}
}

func (f upstreamFactory) client(name, userAgent, accept string, timeout time.Duration) *upstream.Client {
	return upstream.NewClient(upstream.Options{
		Name:       name,
		UserAgent:  userAgent,
		Accept:     accept,
		Timeout:    timeout,
		HTTPClient: f.httpClient,
		Logger:     f.logger,
		Metrics:    f.metrics,
	})
}

// feedComponents are the outbound-facing pieces the HTTP handlers serve.
type feedComponents struct {
	espn      *proxy.Proxy
	sportsdb  *proxy.Proxy
	news      *proxy.News
	standings *standings.Fetcher
}

// build wires the proxies and the standings fetcher. cache may be nil.
func (f upstreamFactory) build(cfg config.UpstreamConfig, cache proxy.Cache) feedComponents {
	espn := f.client("espn", espnUserAgent, acceptJSON, cfg.Timeout)
	sportsdb := f.client("sportsdb", sportsDBUserAgent, acceptJSON, cfg.Timeout)
	news := f.client("news", newsUserAgent, "", cfg.Timeout)
	wiki := f.client("wikipedia", wikiUserAgent, acceptJSON, cfg.WikiTimeout)

	return feedComponents{
		espn:     proxy.New(proxy.ESPNAllowList(cfg.EspnBaseURL), espn, cache, f.logger, f.metrics),
		sportsdb: proxy.New(proxy.SportsDBAllowList(cfg.SportsDBBaseURL), sportsdb, cache, f.logger, f.metrics),
		news:     proxy.NewNews(cfg.NewsFeedURL, news),
		standings: standings.NewFetcher(standings.FetcherConfig{
			APIURL:         cfg.WikiAPIURL,
			RequestTimeout: cfg.WikiTimeout,
			Client:         wiki,
			Logger:         f.logger,
		}),
	}
}

package config

import "time"

const (
	envPort             = "PORT"
	envEspnBaseURL      = "ESPN_BASE_URL"
	envSportsDBBaseURL  = "SPORTSDB_BASE_URL"
	envNewsFeedURL      = "NEWS_FEED_URL"
	envWikiAPIURL       = "WIKI_API_URL"
	envUpstreamTimeout  = "UPSTREAM_TIMEOUT"
	envWikiTimeout      = "WIKI_TIMEOUT"
	envRedisAddr        = "REDIS_ADDR"
	envRedisDB          = "REDIS_DB"
	envPreferencesPath  = "PREFERENCES_PATH"
	envDashboardEnabled = "DASHBOARD_ENABLED"
	envDashboardFeedURL = "DASHBOARD_FEED_BASE_URL"
	envAutoRefresh      = "AUTO_REFRESH_INTERVAL"
	envDashboardTZ      = "DASHBOARD_TIMEZONE"
	envMetricsPort      = "METRICS_PORT"
	envMetricsOn        = "METRICS_ENABLED"
	envOtelEndpoint     = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService      = "OTEL_SERVICE_NAME"
	envOtelInsecure     = "OTEL_EXPORTER_OTLP_INSECURE"

	defaultPort            = "4000"
	defaultEspnBaseURL     = "https://site.api.espn.com/apis/site/v2/sports"
	defaultSportsDBBaseURL = "https://www.thesportsdb.com/api/v1/json/1"
	defaultNewsFeedURL     = "https://feeds.finance.yahoo.com/rss/2.0/headline?s=%5EIXIC&region=US&lang=en-US"
	defaultWikiAPIURL      = "https://en.wikipedia.org/w/api.php"
	defaultUpstreamTimeout = 10 * Duration(time.Second)
	// Wikipedia parse calls are slower than the score feeds.
	defaultWikiTimeout      = 9 * Duration(time.Second)
	defaultPreferencesPath  = "data/preferences.json"
	defaultDashboardEnabled = true
	defaultAutoRefresh      = 5 * Duration(time.Minute)
	defaultMetricsPort      = "9090"
	defaultServiceName      = "pfh-scoreboard"
)

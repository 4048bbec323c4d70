package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != defaultPort {
		t.Fatalf("expected default port %s, got %s", defaultPort, cfg.Port)
	}
	if cfg.Upstreams.EspnBaseURL != defaultEspnBaseURL {
		t.Fatalf("expected default espn base url %s, got %s", defaultEspnBaseURL, cfg.Upstreams.EspnBaseURL)
	}
	if cfg.Upstreams.WikiAPIURL != defaultWikiAPIURL {
		t.Fatalf("expected default wiki api url %s, got %s", defaultWikiAPIURL, cfg.Upstreams.WikiAPIURL)
	}
	if cfg.Upstreams.WikiTimeout != 9*time.Second {
		t.Fatalf("expected 9s wiki timeout, got %s", cfg.Upstreams.WikiTimeout)
	}
	if cfg.Cache.Enabled() {
		t.Fatalf("expected cache disabled without redis addr")
	}
	if cfg.Preferences.Path != defaultPreferencesPath {
		t.Fatalf("expected default preferences path, got %s", cfg.Preferences.Path)
	}
	if !cfg.Dashboard.Enabled {
		t.Fatalf("expected dashboard enabled by default")
	}
	if cfg.Dashboard.FeedBaseURL != "http://127.0.0.1:"+defaultPort {
		t.Fatalf("expected loopback feed url, got %s", cfg.Dashboard.FeedBaseURL)
	}
	if cfg.Dashboard.RefreshInterval != 5*time.Minute {
		t.Fatalf("expected 5m auto refresh, got %s", cfg.Dashboard.RefreshInterval)
	}
	if cfg.Metrics.ServiceName != defaultServiceName {
		t.Fatalf("expected default service name, got %s", cfg.Metrics.ServiceName)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv(envPort, "5000")
	t.Setenv(envEspnBaseURL, "http://espn.test")
	t.Setenv(envSportsDBBaseURL, "http://sportsdb.test")
	t.Setenv(envWikiTimeout, "3s")
	t.Setenv(envRedisAddr, "localhost:6379")
	t.Setenv(envRedisDB, "2")
	t.Setenv(envAutoRefresh, "1m")
	t.Setenv(envDashboardEnabled, "false")

	cfg := Load()

	if cfg.Port != "5000" {
		t.Fatalf("expected port 5000, got %s", cfg.Port)
	}
	if cfg.Upstreams.EspnBaseURL != "http://espn.test" {
		t.Fatalf("expected espn override, got %s", cfg.Upstreams.EspnBaseURL)
	}
	if cfg.Upstreams.SportsDBBaseURL != "http://sportsdb.test" {
		t.Fatalf("expected sportsdb override, got %s", cfg.Upstreams.SportsDBBaseURL)
	}
	if cfg.Upstreams.WikiTimeout != 3*time.Second {
		t.Fatalf("expected wiki timeout override, got %s", cfg.Upstreams.WikiTimeout)
	}
	if !cfg.Cache.Enabled() || cfg.Cache.RedisDB != 2 {
		t.Fatalf("expected redis cache enabled on db 2, got %+v", cfg.Cache)
	}
	if cfg.Dashboard.FeedBaseURL != "http://127.0.0.1:5000" {
		t.Fatalf("expected feed url to follow port, got %s", cfg.Dashboard.FeedBaseURL)
	}
	if cfg.Dashboard.RefreshInterval != time.Minute {
		t.Fatalf("expected refresh override, got %s", cfg.Dashboard.RefreshInterval)
	}
	if cfg.Dashboard.Enabled {
		t.Fatalf("expected dashboard disabled")
	}
}

func TestLoadInvalidDurationFallsBack(t *testing.T) {
	t.Setenv(envUpstreamTimeout, "not-a-duration")

	cfg := Load()

	if cfg.Upstreams.Timeout != defaultUpstreamTimeout {
		t.Fatalf("expected default timeout on invalid value, got %s", cfg.Upstreams.Timeout)
	}
}

func TestLoadNonPositiveDurationFallsBack(t *testing.T) {
	t.Setenv(envAutoRefresh, "0s")

	cfg := Load()

	if cfg.Dashboard.RefreshInterval != defaultAutoRefresh {
		t.Fatalf("expected default refresh interval on non-positive value, got %s", cfg.Dashboard.RefreshInterval)
	}
}

func TestDashboardLocation(t *testing.T) {
	if loc := (DashboardConfig{}).Location(); loc != time.Local {
		t.Fatalf("expected local zone when unset, got %v", loc)
	}
	if loc := (DashboardConfig{Timezone: "Not/AZone"}).Location(); loc != time.Local {
		t.Fatalf("expected local zone for an invalid name, got %v", loc)
	}

	t.Setenv(envDashboardTZ, "UTC")
	cfg := Load()
	if loc := cfg.Dashboard.Location(); loc.String() != "UTC" {
		t.Fatalf("expected UTC, got %v", loc)
	}
}

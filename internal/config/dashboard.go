package config

import "time"

// DashboardConfig controls the server-rendered dashboard session.
type DashboardConfig struct {
	Enabled         bool
	FeedBaseURL     string        // where the dashboard reaches the proxy endpoints
	RefreshInterval time.Duration // auto-refresh period when enabled by the user
	Timezone        string        // IANA zone for kickoff and clock text; empty means server local
}

// Location resolves Timezone, falling back to time.Local when empty or invalid.
func (d DashboardConfig) Location() *time.Location {
	if d.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(d.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

func loadDashboard(port string) DashboardConfig {
	return DashboardConfig{
		Enabled:         boolEnvOrDefault(envDashboardEnabled, defaultDashboardEnabled),
		FeedBaseURL:     envOrDefault(envDashboardFeedURL, "http://127.0.0.1:"+port),
		RefreshInterval: durationEnvOrDefault(envAutoRefresh, defaultAutoRefresh),
		Timezone:        envOrDefault(envDashboardTZ, ""),
	}
}

package config

// Config holds runtime configuration for the server.
type Config struct {
	Port        string
	Upstreams   UpstreamConfig
	Cache       CacheConfig
	Preferences PreferencesConfig
	Dashboard   DashboardConfig
	Metrics     MetricsConfig
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	port := envOrDefault(envPort, defaultPort)
	return Config{
		Port:        port,
		Upstreams:   loadUpstreams(),
		Cache:       loadCache(),
		Preferences: loadPreferences(),
		Dashboard:   loadDashboard(port),
		Metrics:     loadMetrics(),
	}
}

package config

// CacheConfig enables the optional Redis-backed proxy cache.
// An empty RedisAddr disables caching entirely.
type CacheConfig struct {
	RedisAddr string
	RedisDB   int
}

// Enabled reports whether a Redis address was configured.
func (c CacheConfig) Enabled() bool {
	return c.RedisAddr != ""
}

// PreferencesConfig controls where dashboard preferences are persisted.
// Redis is used when CacheConfig is enabled, otherwise the JSON file at Path.
type PreferencesConfig struct {
	Path string
}

func loadCache() CacheConfig {
	return CacheConfig{
		RedisAddr: envOrDefault(envRedisAddr, ""),
		RedisDB:   nonNegativeIntEnvOrDefault(envRedisDB, 0),
	}
}

func loadPreferences() PreferencesConfig {
	return PreferencesConfig{
		Path: envOrDefault(envPreferencesPath, defaultPreferencesPath),
	}
}

package server

import (
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/profootballhighlights/pfh-scoreboard/internal/config"
	"github.com/profootballhighlights/pfh-scoreboard/internal/preferences"
	"github.com/profootballhighlights/pfh-scoreboard/internal/proxy"
)

type storageComponents struct {
	redis       *redis.Client // nil without REDIS_ADDR
	cache       proxy.Cache   // nil without REDIS_ADDR
	preferences preferences.Store
}

// buildStorage picks Redis for the proxy cache and preferences when an address
// is configured, and the JSON file store otherwise.
func buildStorage(cfg config.Config, logger *slog.Logger) storageComponents {
	if !cfg.Cache.Enabled() {
		store := preferences.NewFileStore(cfg.Preferences.Path)
		if logger != nil {
			logger.Info("preferences stored on disk", slog.String("path", store.Path()))
		}
		return storageComponents{preferences: store}
	}

	client := redis.NewClient(&redis.Options{
		Addr: cfg.Cache.RedisAddr,
		DB:   cfg.Cache.RedisDB,
	})
	if logger != nil {
		logger.Info("redis cache enabled", slog.String("addr", cfg.Cache.RedisAddr), slog.Int("db", cfg.Cache.RedisDB))
	}
	return storageComponents{
		redis:       client,
		cache:       proxy.NewRedisCache(client),
		preferences: preferences.NewRedisStore(client),
	}
}

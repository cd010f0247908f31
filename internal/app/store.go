package app

import (
	"context"
	"fmt"

	"github.com/vovakirdan/wirechat-gamebot/internal/config"
	"github.com/vovakirdan/wirechat-gamebot/internal/store"
	"github.com/vovakirdan/wirechat-gamebot/internal/store/file"
	"github.com/vovakirdan/wirechat-gamebot/internal/store/postgres"
	"github.com/vovakirdan/wirechat-gamebot/internal/store/redis"
	"github.com/vovakirdan/wirechat-gamebot/internal/store/sqlite"
)

// OpenSettingsStore opens the backend selected by cfg.Driver.
func OpenSettingsStore(ctx context.Context, cfg config.SettingsConfig) (store.SettingsStore, error) {
	switch cfg.Driver {
	case config.DriverFile, "":
		return file.New(cfg.Path)
	case config.DriverSQLite:
		return sqlite.New(cfg.Path)
	case config.DriverRedis:
		key := cfg.Key
		if key == "" {
			key = redis.DefaultKey
		}
		return redis.New(ctx, cfg.Addr, cfg.DB, key)
	case config.DriverPostgres:
		return postgres.New(ctx, cfg.DSN)
	default:
		return nil, fmt.Errorf("unknown settings driver %q", cfg.Driver)
	}
}

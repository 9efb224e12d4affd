package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/weatherfit/internal/domain/auth"
	"github.com/yanqian/weatherfit/internal/domain/forecast"
	"github.com/yanqian/weatherfit/internal/domain/location"
	"github.com/yanqian/weatherfit/internal/domain/outfit"
	"github.com/yanqian/weatherfit/internal/domain/wardrobe"
	"github.com/yanqian/weatherfit/internal/infra/config"
	"github.com/yanqian/weatherfit/internal/infra/forecaststore"
	"github.com/yanqian/weatherfit/internal/infra/locationrepo"
	"github.com/yanqian/weatherfit/internal/infra/userrepo"
	"github.com/yanqian/weatherfit/internal/infra/wardroberepo"
	"github.com/yanqian/weatherfit/internal/infra/weather/openmeteo"
)

func provideAuthConfig(cfg *config.Config) auth.Config {
	return auth.Config{
		Secret:          cfg.Auth.Secret,
		TokenTTL:        cfg.Auth.TokenTTL,
		RefreshTokenTTL: cfg.Auth.RefreshTokenTTL,
	}
}

func provideForecastConfig(cfg *config.Config) forecast.Config {
	return forecast.Config{
		ForecastDays: cfg.Forecast.ForecastDays,
		CacheTTL:     cfg.Forecast.CacheTTL,
	}
}

// providePostgresPool returns a nil pool unless the postgres driver is selected.
func providePostgresPool(cfg *config.Config, logger *slog.Logger) (*pgxpool.Pool, func(), error) {
	if cfg.Storage.Driver != config.StoragePostgres {
		return nil, func() {}, nil
	}
	poolConfig, err := pgxpool.ParseConfig(strings.TrimSpace(cfg.Storage.Postgres.DSN))
	if err != nil {
		return nil, nil, fmt.Errorf("parse postgres dsn: %w", err)
	}
	if cfg.Storage.Postgres.MaxConns > 0 {
		poolConfig.MaxConns = cfg.Storage.Postgres.MaxConns
	}
	if cfg.Storage.Postgres.MinConns > 0 {
		poolConfig.MinConns = cfg.Storage.Postgres.MinConns
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		return nil, nil, fmt.Errorf("create postgres pool: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("ping postgres: %w", err)
	}
	logger.Info("postgres storage enabled")
	return pool, pool.Close, nil
}

func provideUserRepository(pool *pgxpool.Pool) auth.Repository {
	if pool == nil {
		return userrepo.NewMemoryRepository()
	}
	return userrepo.NewPostgresRepository(pool)
}

func provideLocationRepository(pool *pgxpool.Pool) location.Repository {
	if pool == nil {
		return locationrepo.NewMemoryRepository()
	}
	return locationrepo.NewPostgresRepository(pool)
}

func provideWardrobeRepository(cfg *config.Config, pool *pgxpool.Pool, logger *slog.Logger) (wardrobe.Repository, func(), error) {
	switch {
	case pool != nil:
		return wardroberepo.NewPostgresRepository(pool), func() {}, nil
	case cfg.Storage.Driver == config.StorageSQLite:
		repo, err := wardroberepo.OpenSQLite(context.Background(), cfg.Storage.SQLite.Path)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("sqlite wardrobe storage enabled", "path", cfg.Storage.SQLite.Path)
		cleanup := func() {
			if err := repo.Close(); err != nil {
				logger.Error("close sqlite wardrobe", "error", err)
			}
		}
		return repo, cleanup, nil
	default:
		logger.Info("using in-memory wardrobe storage")
		return wardroberepo.NewMemoryRepository(), func() {}, nil
	}
}

func provideWardrobeReader(repo wardrobe.Repository) outfit.WardrobeReader {
	return repo
}

func provideDefaultLocator(svc location.Service) forecast.DefaultLocator {
	return svc
}

func provideForecastClient(cfg *config.Config, logger *slog.Logger) forecast.Client {
	return openmeteo.NewClient(openmeteo.Options{
		BaseURL:       cfg.Forecast.APIBaseURL,
		Timeout:       cfg.Forecast.RequestTimeout,
		RetryAttempts: cfg.Forecast.RetryAttempts,
		RetryDelay:    cfg.Forecast.RetryDelay,
	}, logger)
}

func provideForecastStore(cfg *config.Config, logger *slog.Logger) (forecast.Store, func()) {
	fallback := func() (forecast.Store, func()) {
		return forecaststore.NewMemoryStore(cfg.Cache.MaxEntries, cfg.Forecast.CacheTTL), func() {}
	}
	if !cfg.Cache.Valkey.Enabled {
		return fallback()
	}
	opt, err := buildValkeyOptions(cfg)
	if err != nil {
		logger.Error("invalid valkey configuration, falling back to memory store", "error", err)
		return fallback()
	}
	client, err := valkey.NewClient(opt)
	if err != nil {
		logger.Error("failed to create valkey client, falling back to memory store", "error", err)
		return fallback()
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		logger.Error("valkey ping failed, falling back to memory store", "error", err)
		client.Close()
		return fallback()
	}
	logger.Info("forecast valkey store enabled", "addr", cfg.Cache.Valkey.Addr)
	return forecaststore.NewValkeyStore(client, cfg.Cache.Valkey.Prefix), client.Close
}

func buildValkeyOptions(cfg *config.Config) (valkey.ClientOption, error) {
	if strings.Contains(cfg.Cache.Valkey.Addr, "://") {
		return valkey.ParseURL(cfg.Cache.Valkey.Addr)
	}
	return valkey.ClientOption{InitAddress: []string{cfg.Cache.Valkey.Addr}}, nil
}

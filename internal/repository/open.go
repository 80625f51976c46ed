package repository

import (
	"context"
	"errors"
	"fmt"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront-cart/internal/config"
	"github.com/nikolayk812/storefront-cart/internal/domain"
	"github.com/nikolayk812/storefront-cart/internal/migrations"
	"github.com/nikolayk812/storefront-cart/internal/port"
	"github.com/redis/go-redis/v9"
)

// Open connects the backend selected by cfg.Driver.
func Open(ctx context.Context, cfg config.StoreConfig) (port.KVStore, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		return NewMemoryKV(), nil
	case config.DriverSQLite:
		return NewSQLiteKV(ctx, cfg.Path)
	case config.DriverPostgres:
		return openPostgres(ctx, cfg.DSN)
	case config.DriverRedis:
		return openRedis(ctx, cfg.RedisAddr)
	default:
		return nil, fmt.Errorf("%w %q", domain.ErrUnknownDriver, cfg.Driver)
	}
}

func openPostgres(ctx context.Context, dsn string) (port.KVStore, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.New: %w", err)
	}

	if err := Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("Migrate: %w", err)
	}

	return NewKV(pool), nil
}

// Migrate applies the embedded up migrations. They are idempotent.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	scripts, err := migrations.Up()
	if err != nil {
		return fmt.Errorf("migrations.Up: %w", err)
	}

	for _, script := range scripts {
		if _, err := pool.Exec(ctx, script); err != nil {
			return fmt.Errorf("pool.Exec: %w", err)
		}
	}
	return nil
}

func openRedis(ctx context.Context, addr string) (port.KVStore, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, errors.Join(fmt.Errorf("client.Ping: %w", err), client.Close())
	}

	return NewRedisKV(client), nil
}

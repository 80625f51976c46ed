package repository

import (
	"context"
	"errors"
	"fmt"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront-cart/internal/db"
	"github.com/nikolayk812/storefront-cart/internal/domain"
	"github.com/nikolayk812/storefront-cart/internal/port"
)

type kvRepository struct {
	q    *db.Queries
	pool *pgxpool.Pool
}

func NewKV(pool *pgxpool.Pool) port.KVStore {
	return &kvRepository{
		q:    db.New(pool),
		pool: pool,
	}
}

func NewKVWithTx(tx pgx.Tx) port.KVStore {
	return &kvRepository{
		q:    db.New(tx),
		pool: nil, // use provided transaction instead
	}
}

func (r *kvRepository) Get(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", fmt.Errorf("key is empty")
	}

	value, err := r.q.GetValue(ctx, key)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", domain.ErrKeyNotFound
		}
		return "", fmt.Errorf("q.GetValue: %w", err)
	}

	return value, nil
}

func (r *kvRepository) Set(ctx context.Context, entries ...domain.Entry) error {
	if err := validateEntries(entries); err != nil {
		return err
	}

	_, err := withTx(ctx, r.pool, r.q, func(q *db.Queries) (struct{}, error) {
		for _, entry := range entries {
			err := q.UpsertValue(ctx, db.UpsertValueParams{
				Key:   entry.Key,
				Value: entry.Value,
			})
			if err != nil {
				return struct{}{}, fmt.Errorf("q.UpsertValue[%s]: %w", entry.Key, err)
			}
		}
		return struct{}{}, nil
	})
	if err != nil {
		return fmt.Errorf("withTx: %w", err)
	}

	return nil
}

func (r *kvRepository) Close() error {
	if r.pool != nil {
		r.pool.Close()
	}
	return nil
}

func validateEntries(entries []domain.Entry) error {
	for _, entry := range entries {
		if entry.Key == "" {
			return fmt.Errorf("key is empty")
		}
	}
	return nil
}

package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vovakirdan/wirechat-gamebot/internal/store"
)

// Schema creates the settings table.
const Schema = `
CREATE TABLE IF NOT EXISTS gamebot_settings (
	key        TEXT PRIMARY KEY,
	value      JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

// PostgresStore implements store.SettingsStore on a pgx pool.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// New connects to dsn and applies the schema.
func New(ctx context.Context, dsn string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if _, err := pool.Exec(ctx, Schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

// Load reads every settings row.
func (s *PostgresStore) Load(ctx context.Context) (store.Settings, error) {
	rows, err := s.pool.Query(ctx, `SELECT key, value FROM gamebot_settings`)
	if err != nil {
		return nil, fmt.Errorf("query settings: %w", err)
	}
	defer rows.Close()

	settings := store.Settings{}
	for rows.Next() {
		var (
			key    string
			values []string
		)
		if err := rows.Scan(&key, &values); err != nil {
			return nil, fmt.Errorf("scan setting: %w", err)
		}
		settings[key] = values
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate settings: %w", err)
	}
	return settings, nil
}

// Save replaces all rows in a single transaction.
func (s *PostgresStore) Save(ctx context.Context, settings store.Settings) error {
	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM gamebot_settings`); err != nil {
			return fmt.Errorf("clear settings: %w", err)
		}
		batch := &pgx.Batch{}
		for key, values := range settings {
			if values == nil {
				values = []string{}
			}
			batch.Queue(`INSERT INTO gamebot_settings (key, value, updated_at) VALUES ($1, $2, now())`, key, values)
		}
		if batch.Len() == 0 {
			return nil
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("insert settings: %w", err)
		}
		return nil
	})
}

// Close closes the pool.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

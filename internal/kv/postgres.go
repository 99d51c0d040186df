package kv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

// PostgresConfig describes how to reach the database.
type PostgresConfig struct {
	DSN           string
	MaxRetries    int
	RetryInterval time.Duration
}

// Postgres keeps entries in a shared Postgres table.
type Postgres struct {
	pool *pgxpool.Pool
}

// OpenPostgres connects with retries, migrates the schema and returns a
// pooled backend.
func OpenPostgres(ctx context.Context, cfg PostgresConfig, logger *zap.Logger) (*Postgres, error) {
	retries := cfg.MaxRetries
	if retries < 1 {
		retries = 1
	}

	// Connect to database with retry logic
	var pool *pgxpool.Pool
	var err error
	for i := 0; i < retries; i++ {
		pool, err = pgxpool.New(ctx, cfg.DSN)
		if err == nil {
			if err = pool.Ping(ctx); err == nil {
				break
			}
			pool.Close()
		}
		logger.Warn("database not reachable yet",
			zap.Int("attempt", i+1),
			zap.Error(err))
		if i < retries-1 {
			time.Sleep(cfg.RetryInterval)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", retries, err)
	}

	// Migrations run over database/sql with lib/pq
	migrationDB, err := sql.Open("postgres", cfg.DSN)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to open database for migrations: %w", err)
	}
	if err := runMigrations(migrationDB, dialectPostgres, logger); err != nil {
		pool.Close()
		return nil, err
	}

	logger.Info("postgres storage connected")
	return &Postgres{pool: pool}, nil
}

func (p *Postgres) Get(ctx context.Context, key string) ([]byte, error) {
	var value string
	err := p.pool.QueryRow(ctx, "SELECT value FROM kv_entries WHERE key = $1", key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %q: %w", key, err)
	}
	return []byte(value), nil
}

func (p *Postgres) Put(ctx context.Context, key string, value []byte) error {
	_, err := p.pool.Exec(ctx, `
		INSERT INTO kv_entries (key, value, updated_at) VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()
	`, key, string(value))
	if err != nil {
		return fmt.Errorf("failed to write %q: %w", key, err)
	}
	return nil
}

func (p *Postgres) Delete(ctx context.Context, key string) error {
	if _, err := p.pool.Exec(ctx, "DELETE FROM kv_entries WHERE key = $1", key); err != nil {
		return fmt.Errorf("failed to delete %q: %w", key, err)
	}
	return nil
}

func (p *Postgres) Close() error {
	p.pool.Close()
	return nil
}

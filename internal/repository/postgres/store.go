// Package postgres provides the Postgres-backed BlobStore on a pgx connection pool.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"

	"github.com/maxviazov/boxscore-tracker/internal/config"
	"github.com/maxviazov/boxscore-tracker/internal/repository"
	"github.com/maxviazov/boxscore-tracker/migrations"
)

// Store keeps blobs in the kv_store table.
type Store struct {
	pool *pgxpool.Pool
	log  zerolog.Logger
}

var _ repository.BlobStore = (*Store)(nil)

// DSN builds a postgres:// URL from config, escaping credentials.
func DSN(cfg config.PostgresConfig) string {
	u := url.URL{
		Scheme: "postgres",
		Host:   fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Path:   cfg.DBName,
	}
	if cfg.User != "" || cfg.Password != "" {
		u.User = url.UserPassword(cfg.User, cfg.Password)
	}
	q := u.Query()
	if cfg.SSLMode != "" {
		q.Set("sslmode", cfg.SSLMode)
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// Open creates the pool, verifies connectivity and applies migrations when cfg.Migrate is set.
func Open(ctx context.Context, cfg config.PostgresConfig, logger zerolog.Logger) (*Store, error) {
	l := logger.With().Str("module", "repository").Str("component", "postgres").Logger()

	poolConfig, err := pgxpool.ParseConfig(DSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to parse pool config: %w", err)
	}
	poolConfig.ConnConfig.Tracer = &tracelog.TraceLog{
		Logger:   newPgxLogger(l),
		LogLevel: traceLevel(l.GetLevel()),
	}
	poolConfig.MaxConns = cfg.MaxConns
	poolConfig.MinConns = cfg.MinConns
	poolConfig.MaxConnLifetime = time.Duration(cfg.MaxConnLifetime) * time.Second
	poolConfig.MaxConnIdleTime = time.Duration(cfg.MaxConnIdleTime) * time.Second
	poolConfig.HealthCheckPeriod = time.Duration(cfg.HealthCheckPeriod) * time.Second

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres pool: %w", err)
	}

	// bounded so a dead server fails startup instead of hanging it
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", repository.MapPgError(err))
	}

	s := &Store{pool: pool, log: l}
	if cfg.Migrate {
		if err := s.Migrate(ctx); err != nil {
			pool.Close()
			return nil, err
		}
	}

	l.Info().
		Str("host", cfg.Host).
		Int("port", cfg.Port).
		Str("user", cfg.User).
		Str("db", cfg.DBName).
		Msg("connected to postgres")
	return s, nil
}

// NewFromPool wraps an existing pool; the caller keeps ownership of migrations.
func NewFromPool(pool *pgxpool.Pool, logger zerolog.Logger) *Store {
	l := logger.With().Str("module", "repository").Str("component", "postgres").Logger()
	return &Store{pool: pool, log: l}
}

// Migrate runs the embedded goose migrations through a database/sql view of the pool.
func (s *Store) Migrate(ctx context.Context) error {
	// the sql.DB view borrows pool connections and keeps no idle ones, so it is not closed here
	db := stdlib.OpenDBFromPool(s.pool)
	applied, err := migrations.Up(ctx, db, goose.DialectPostgres)
	if err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	s.log.Info().Int("migrations_applied", applied).Msg("postgres migrations applied")
	return nil
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ensurePool(s.pool); err != nil {
		return nil, err
	}
	var value string
	err := s.pool.QueryRow(ctx, `SELECT value FROM kv_store WHERE key = $1`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, repository.MapPgError(err)
	}
	return []byte(value), nil
}

func (s *Store) Put(ctx context.Context, key string, value []byte) error {
	if err := ensurePool(s.pool); err != nil {
		return err
	}
	_, err := s.pool.Exec(ctx,
		`INSERT INTO kv_store (key, value, updated_at) VALUES ($1, $2, now())
		 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`,
		key, string(value),
	)
	if err != nil {
		return repository.MapPgError(err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	if err := ensurePool(s.pool); err != nil {
		return err
	}
	return s.pool.Ping(ctx)
}

func (s *Store) Close() error {
	if s.pool != nil {
		s.pool.Close()
	}
	return nil
}

// helper to assert we didn't accidentally nil the pool
func ensurePool(pool *pgxpool.Pool) error {
	if pool == nil {
		return errors.New("pgx pool is nil")
	}
	return nil
}

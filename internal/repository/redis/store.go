// Package redis provides a BlobStore on top of plain Redis strings.
package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/maxviazov/boxscore-tracker/internal/repository"
)

// Store keeps each blob under prefix+key with no expiry.
type Store struct {
	client *redis.Client
	prefix string
	log    zerolog.Logger
}

var _ repository.BlobStore = (*Store)(nil)

// New wraps an existing client. The store owns it from here on and closes it on Close.
func New(client *redis.Client, prefix string, logger zerolog.Logger) *Store {
	l := logger.With().Str("module", "repository").Str("component", "redis").Logger()
	return &Store{client: client, prefix: prefix, log: l}
}

// Open parses a redis:// URL, connects and verifies the connection.
func Open(ctx context.Context, url, prefix string, logger zerolog.Logger) (*Store, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	s := New(client, prefix, logger)
	s.log.Info().Str("addr", opts.Addr).Int("db", opts.DB).Str("prefix", prefix).Msg("redis store ready")
	return s, nil
}

// Client exposes the underlying connection so the stream publisher can share it.
func (s *Store) Client() *redis.Client { return s.client }

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	v, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("redis get %q: %w", key, err)
	}
	return v, nil
}

func (s *Store) Put(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, s.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %q: %w", key, err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error { return s.client.Ping(ctx).Err() }

func (s *Store) Close() error { return s.client.Close() }

package repository

import (
	"context"

	"github.com/maxviazov/boxscore-tracker/internal/model"
)

// Pinger represents a minimal readiness probe capability.
// I use it to decouple health checks from storage implementation details.
type Pinger interface {
	Ping(ctx context.Context) error
}

// BlobStore is a flat key-value slot holding opaque values.
// Get returns ErrNotFound for a missing key; Put overwrites unconditionally.
type BlobStore interface {
	Pinger
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Close() error
}

// MatchRepository persists the whole match list as one unit.
// Load never fails: unreadable state degrades to an empty list.
type MatchRepository interface {
	Load(ctx context.Context) []model.Match
	Save(ctx context.Context, matches []model.Match) error
}

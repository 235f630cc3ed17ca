// Package contract holds the behavior every BlobStore implementation must share.
// Store packages wire their own factories into RunBlobStoreContract.
package contract

import (
	"bytes"
	"context"
	"errors"
	"math/rand/v2"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/maxviazov/boxscore-tracker/internal/boxscore"
	"github.com/maxviazov/boxscore-tracker/internal/model"
	"github.com/maxviazov/boxscore-tracker/internal/repository"
)

// BlobFactory returns a fresh, empty store and its cleanup.
type BlobFactory func(t *testing.T) (repository.BlobStore, func())

func RunBlobStoreContract(t *testing.T, makeStore BlobFactory) {
	t.Helper()

	t.Run("get_missing_not_found", func(t *testing.T) {
		store, cleanup := makeStore(t)
		t.Cleanup(cleanup)
		_, err := store.Get(context.Background(), "missing")
		if !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("put_then_get", func(t *testing.T) {
		store, cleanup := makeStore(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		if err := store.Put(ctx, "k", []byte(`{"a":1}`)); err != nil {
			t.Fatalf("put: %v", err)
		}
		got, err := store.Get(ctx, "k")
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if string(got) != `{"a":1}` {
			t.Fatalf("unexpected value %q", got)
		}
	})

	t.Run("overwrite_replaces_whole_value", func(t *testing.T) {
		store, cleanup := makeStore(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		if err := store.Put(ctx, "k", []byte("first value, quite long")); err != nil {
			t.Fatalf("put1: %v", err)
		}
		if err := store.Put(ctx, "k", []byte("second")); err != nil {
			t.Fatalf("put2: %v", err)
		}
		got, err := store.Get(ctx, "k")
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if string(got) != "second" {
			t.Fatalf("expected overwrite, got %q", got)
		}
	})

	t.Run("keys_are_isolated", func(t *testing.T) {
		store, cleanup := makeStore(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		if err := store.Put(ctx, "a", []byte("A")); err != nil {
			t.Fatalf("put a: %v", err)
		}
		if err := store.Put(ctx, "b", []byte("B")); err != nil {
			t.Fatalf("put b: %v", err)
		}
		got, err := store.Get(ctx, "a")
		if err != nil || string(got) != "A" {
			t.Fatalf("key a: %q %v", got, err)
		}
	})

	t.Run("large_value", func(t *testing.T) {
		store, cleanup := makeStore(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		big := []byte(strings.Repeat("0123456789", 100_000))
		if err := store.Put(ctx, "big", big); err != nil {
			t.Fatalf("put: %v", err)
		}
		got, err := store.Get(ctx, "big")
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if !bytes.Equal(got, big) {
			t.Fatalf("large value mismatch: got %d bytes", len(got))
		}
	})

	t.Run("ping", func(t *testing.T) {
		store, cleanup := makeStore(t)
		t.Cleanup(cleanup)
		if err := store.Ping(context.Background()); err != nil {
			t.Fatalf("ping: %v", err)
		}
	})

	t.Run("match_list_round_trip", func(t *testing.T) {
		store, cleanup := makeStore(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		ms := repository.NewMatchStore(store, zerolog.Nop())

		want := seedMatches(t)
		if err := ms.Save(ctx, want); err != nil {
			t.Fatalf("save: %v", err)
		}
		got := ms.Load(ctx)
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("round trip mismatch:\n got  %+v\n want %+v", got, want)
		}
	})

	t.Run("match_list_missing_is_empty", func(t *testing.T) {
		store, cleanup := makeStore(t)
		t.Cleanup(cleanup)
		got := repository.NewMatchStore(store, zerolog.Nop()).Load(context.Background())
		if got == nil || len(got) != 0 {
			t.Fatalf("expected empty non-nil list, got %#v", got)
		}
	})

	t.Run("match_list_corrupt_is_empty", func(t *testing.T) {
		store, cleanup := makeStore(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		if err := store.Put(ctx, repository.MatchesKey, []byte("{not json")); err != nil {
			t.Fatalf("put: %v", err)
		}
		got := repository.NewMatchStore(store, zerolog.Nop()).Load(ctx)
		if len(got) != 0 {
			t.Fatalf("expected empty list on corrupt data, got %d", len(got))
		}
	})
}

// seedMatches builds two matches with some live stats and a reordered roster.
func seedMatches(t *testing.T) []model.Match {
	t.Helper()
	ids := []string{"11111111-1111-1111-1111-111111111111", "22222222-2222-2222-2222-222222222222"}
	next := 0
	g := boxscore.NewGenerator(
		boxscore.WithRand(rand.New(rand.NewPCG(5, 6))),
		boxscore.WithIDFunc(func() string { id := ids[next]; next++; return id }),
		boxscore.WithClock(func() time.Time { return time.Date(2024, 5, 4, 18, 30, 0, 0, time.UTC) }),
	)
	m1 := g.NewMatch("2024-05-04", "Lakers", "Celtics")
	if err := boxscore.Adjust(&m1.BoxScore, model.SideA, 2, model.StatThreePtMade, 1); err != nil {
		t.Fatalf("seed adjust: %v", err)
	}
	if err := boxscore.Adjust(&m1.BoxScore, model.SideB, 7, model.StatDefensiveRebounds, 3); err != nil {
		t.Fatalf("seed adjust: %v", err)
	}
	if _, err := boxscore.ToggleOnCourt(&m1.BoxScore, model.SideA, 0); err != nil {
		t.Fatalf("seed toggle: %v", err)
	}
	m2 := g.CloneMatch(m1, "2024-05-11")
	return []model.Match{m1, m2}
}

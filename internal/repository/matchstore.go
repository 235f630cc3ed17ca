package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/maxviazov/boxscore-tracker/internal/model"
)

// MatchesKey is the fixed slot the whole match list lives under.
const MatchesKey = "basketballMatches"

// MatchStore serializes the full match list into a single BlobStore value.
// There are no partial updates: every Save overwrites the whole list.
type MatchStore struct {
	blobs BlobStore
	key   string
	log   zerolog.Logger
}

var _ MatchRepository = (*MatchStore)(nil)

func NewMatchStore(blobs BlobStore, logger zerolog.Logger) *MatchStore {
	l := logger.With().Str("module", "repository").Str("component", "match_store").Logger()
	return &MatchStore{blobs: blobs, key: MatchesKey, log: l}
}

// Load reads and decodes the match list. Missing, unreadable or corrupt data is logged
// and yields an empty list.
func (s *MatchStore) Load(ctx context.Context) []model.Match {
	raw, err := s.blobs.Get(ctx, s.key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			s.log.Info().Str("key", s.key).Msg("no saved matches, starting empty")
		} else {
			s.log.Error().Err(err).Str("key", s.key).Msg("load matches failed, starting empty")
		}
		return []model.Match{}
	}
	var matches []model.Match
	if err := json.Unmarshal(raw, &matches); err != nil {
		s.log.Error().Err(err).Str("key", s.key).Int("bytes", len(raw)).Msg("saved matches are corrupt, starting empty")
		return []model.Match{}
	}
	if matches == nil {
		matches = []model.Match{}
	}
	s.log.Debug().Int("matches", len(matches)).Msg("matches loaded")
	return matches
}

func (s *MatchStore) Save(ctx context.Context, matches []model.Match) error {
	if matches == nil {
		matches = []model.Match{}
	}
	raw, err := json.Marshal(matches)
	if err != nil {
		return fmt.Errorf("encode matches: %w", err)
	}
	if err := s.blobs.Put(ctx, s.key, raw); err != nil {
		return fmt.Errorf("save matches: %w", err)
	}
	return nil
}

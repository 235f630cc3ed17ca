// Package publisher appends match events to a Redis stream for consumers outside this process.
package publisher

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/maxviazov/boxscore-tracker/internal/model"
)

// streamMaxLen caps the stream with approximate trimming.
const streamMaxLen = 10_000

// StreamPublisher XADDs every event to "<prefix>.updates".
type StreamPublisher struct {
	client redis.Cmdable
	stream string
	log    zerolog.Logger
}

func NewStreamPublisher(client redis.Cmdable, prefix string, logger zerolog.Logger) *StreamPublisher {
	l := logger.With().Str("module", "publisher").Str("component", "stream").Logger()
	return &StreamPublisher{client: client, stream: StreamKey(prefix), log: l}
}

// StreamKey is the stream an event lands on.
func StreamKey(prefix string) string {
	if prefix == "" {
		prefix = "boxscore"
	}
	return prefix + ".updates"
}

// Notify publishes ev. The caller owns the deadline.
func (p *StreamPublisher) Notify(ctx context.Context, ev model.MatchEvent) error {
	values, err := fields(ev)
	if err != nil {
		return err
	}
	id, err := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		MaxLen: streamMaxLen,
		Approx: true,
		Values: values,
	}).Result()
	if err != nil {
		return fmt.Errorf("xadd %s: %w", p.stream, err)
	}
	p.log.Debug().Str("stream", p.stream).Str("entry_id", id).Str("event", string(ev.Type)).Str("match_id", ev.MatchID).Msg("event published")
	return nil
}

func fields(ev model.MatchEvent) (map[string]any, error) {
	data, err := json.Marshal(ev)
	if err != nil {
		return nil, fmt.Errorf("marshaling match event: %w", err)
	}
	return map[string]any{
		"data":     string(data),
		"match_id": ev.MatchID,
		"type":     string(ev.Type),
	}, nil
}

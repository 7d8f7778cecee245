package events

//go:generate mockgen -destination=mock/mock_publisher.go -package=eventsmock github.com/pixelforge/collectibles-api/internal/events Publisher

import (
	"context"
	"encoding/json"

	redisclient "github.com/pixelforge/collectibles-api/internal/redis"
)

// Publisher delivers events to the external sink
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

const channelPrefix = "events:"

// envelope is the wire form: the type name plus the event payload
type envelope struct {
	Type string `json:"type"`
	Data Event  `json:"data"`
}

// RedisPublisher publishes events as JSON on Redis pub/sub channels, one
// channel per event type under the events: prefix.
type RedisPublisher struct {
	client redisclient.Client
}

// NewRedisPublisher creates a publisher backed by the given client
func NewRedisPublisher(client redisclient.Client) *RedisPublisher {
	return &RedisPublisher{client: client}
}

// Publish implements Publisher
func (p *RedisPublisher) Publish(ctx context.Context, event Event) error {
	payload, err := json.Marshal(envelope{Type: event.EventType(), Data: event})
	if err != nil {
		return err
	}
	return p.client.Publish(ctx, channelPrefix+event.EventType(), payload).Err()
}

// Noop discards every event. Used where no sink is configured.
type Noop struct{}

// Publish implements Publisher
func (Noop) Publish(_ context.Context, _ Event) error { return nil }

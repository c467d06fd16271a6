package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jwalitptl/medclinic-admin/pkg/messaging"
)

// Publisher sends events over Redis pub/sub on a single channel.
type Publisher struct {
	client  redis.Cmdable
	channel string
	now     func() time.Time
}

func NewPublisher(client redis.Cmdable, channel string) *Publisher {
	return &Publisher{client: client, channel: channel, now: time.Now}
}

func (p *Publisher) Channel() string { return p.channel }

func (p *Publisher) Publish(ctx context.Context, eventType string, payload interface{}) error {
	data, err := json.Marshal(messaging.Message{
		Type:       eventType,
		OccurredAt: p.now().UTC(),
		Payload:    payload,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", eventType, err)
	}
	if err := p.client.Publish(ctx, p.channel, data).Err(); err != nil {
		return fmt.Errorf("failed to publish %s event: %w", eventType, err)
	}
	return nil
}

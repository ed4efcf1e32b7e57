package events

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"

	"library-catalog/internal/domains/catalog/model"
	"library-catalog/pkg/logger"
)

// RedisNotifier bridges bookAdded events through a Redis pub/sub
// channel so that every API instance fans out to its own websocket
// subscribers. Redis pub/sub has exactly the semantics this channel
// needs: at-most-once, unordered relative to the publisher's reply,
// and no backlog for late subscribers.
type RedisNotifier struct {
	client  *redis.Client
	channel string
	hub     *Hub
}

func NewRedisNotifier(client *redis.Client, channel string, hub *Hub) *RedisNotifier {
	return &RedisNotifier{
		client:  client,
		channel: channel,
		hub:     hub,
	}
}

// Publish sends the event to the Redis channel. Failures are logged
// and swallowed: the notifier never reports delivery problems to the
// mutation that triggered it.
func (n *RedisNotifier) Publish(event model.BookAddedEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		logger.Error("failed to encode bookAdded event", err)
		return
	}

	if err := n.client.Publish(context.Background(), n.channel, payload).Err(); err != nil {
		logger.Error("failed to publish bookAdded event", err)
	}
}

// Run consumes the Redis channel and replays each event into the
// local hub. Blocks until ctx is cancelled. Local websocket
// subscribers receive events published by any instance, including
// this one, exactly through this path.
func (n *RedisNotifier) Run(ctx context.Context) error {
	pubsub := n.client.Subscribe(ctx, n.channel)
	defer pubsub.Close()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-pubsub.Channel():
			if !ok {
				return nil
			}
			var event model.BookAddedEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				logger.Error("failed to decode bookAdded event", err)
				continue
			}
			n.hub.Publish(event)
		}
	}
}

package events

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

// Publisher is the subset of the redis client the relay needs.
type Publisher interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

// RedisRelay forwards events to a Redis pub/sub channel.
type RedisRelay struct {
	client  Publisher
	channel string
}

// NewRedisRelay builds a relay publishing to channel.
func NewRedisRelay(client Publisher, channel string) *RedisRelay {
	return &RedisRelay{client: client, channel: channel}
}

// Handle is an EventHandler that serialises the event as JSON.
func (r *RedisRelay) Handle(ctx context.Context, event Event) error {
	if r == nil || r.client == nil {
		return nil
	}
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode event %s: %w", event.ID, err)
	}
	if err := r.client.Publish(ctx, r.channel, body).Err(); err != nil {
		return fmt.Errorf("relay event %s: %w", event.ID, err)
	}
	return nil
}

// SubscribeAll attaches the relay to every event type.
func (r *RedisRelay) SubscribeAll(dispatcher Dispatcher) {
	for _, eventType := range []EventType{
		EventAppointmentBooked,
		EventAppointmentUpdated,
		EventDoctorProfileCreated,
		EventPatientProfileCreated,
	} {
		dispatcher.Subscribe(eventType, r.Handle)
	}
}

package service

import (
	"context"
	"time"

	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/mykafka"
)

type Event struct {
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurredAt"`
	Data       any       `json:"data"`
}

// publish never fails the caller: a lost event is logged and the request goes on.
func publish(ctx context.Context, pub mykafka.Publisher, topic, key, eventType string, data any) {
	if pub == nil {
		return
	}
	ev := Event{Type: eventType, OccurredAt: time.Now().UTC(), Data: data}
	if err := pub.PublishEvent(ctx, topic, key, ev); err != nil {
		logging.FromContext(ctx).Warn("publish_event_failed", "topic", topic, "type", eventType, "error", err)
	}
}

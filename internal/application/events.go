package application

import (
	"context"
	"time"
)

// Event types emitted to the message queue for asynchronous consumers.
const (
	EventArticlePublished = "article.published"
	EventUserFollowed     = "user.followed"
)

// Event is the JSON envelope placed on the queue.
type Event struct {
	Type       string `json:"type"`
	OccurredAt string `json:"occurred_at"`
	Payload    any    `json:"payload"`
}

// EventPublisher delivers domain events to the queue. Implemented by
// helpers.RabbitPublisher; a nil publisher disables event delivery.
type EventPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// publishEvent is fire-and-forget: delivery failures never fail the request
// that triggered the event.
func publishEvent(ctx context.Context, pub EventPublisher, ev Event) {
	if pub == nil {
		return
	}
	ev.OccurredAt = time.Now().UTC().Format(time.RFC3339)
	_ = pub.PublishJSON(ctx, ev)
}

package services

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/tbourn/go-news-backend/internal/events"
)

// publish sends a domain event. Failures are logged and counted, never
// returned: the write that triggered the event has already succeeded.
func publish(ctx context.Context, p events.Publisher, eventType string, payload any) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, events.New(eventType, payload)); err != nil {
		eventPublishFailures.WithLabelValues(eventType).Inc()
		log.Warn().Err(err).Str("type", eventType).Msg("event publish failed")
	}
}

package events

import (
	"context"

	"github.com/dwikikusuma/storefront/internal/relay/domain"
	"github.com/dwikikusuma/storefront/pkg/kafka"
)

// KafkaPublisher writes relay events keyed by event id.
type KafkaPublisher struct {
	writer kafka.MessageWriter
}

func NewKafkaPublisher(writer kafka.MessageWriter) *KafkaPublisher {
	return &KafkaPublisher{writer: writer}
}

func (p *KafkaPublisher) Publish(ctx context.Context, evt domain.Event) error {
	return kafka.PublishJSON(ctx, p.writer, evt.EventID, evt)
}

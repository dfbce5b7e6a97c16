package kafka

import (
	"context"
)

type Producer interface {
	Send(ctx context.Context, msg Message) error
}

// NopProducer drops every message. Used when Kafka is disabled.
type NopProducer struct{}

func (NopProducer) Send(context.Context, Message) error { return nil }

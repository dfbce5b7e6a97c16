package actproducer

import (
	"context"
	"fmt"

	"github.com/you-humble/colixy-dashboard/internal/model"
	"github.com/you-humble/colixy-dashboard/platform/kafka"
)

const headerEventType = "event_type"

type Converter interface {
	ActivityToPayload(a model.Activity) ([]byte, error)
}

type service struct {
	producer kafka.Producer
	conv     Converter
}

func NewActivityProducer(producer kafka.Producer, conv Converter) *service {
	return &service{producer: producer, conv: conv}
}

// SendActivity keys events by barcode so one parcel's history stays ordered.
func (s *service) SendActivity(ctx context.Context, event model.Activity) error {
	payload, err := s.conv.ActivityToPayload(event)
	if err != nil {
		return fmt.Errorf("converter activity_to_payload error: %w", err)
	}

	key := event.Barcode
	if key == "" {
		key = event.ParcelID
	}
	if key == "" {
		key = event.EventID.String()
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: payload,
		Headers: map[string][]byte{
			headerEventType: []byte(event.Type),
		},
	}
	if err := s.producer.Send(ctx, msg); err != nil {
		return fmt.Errorf("producer to activity topic error: %w", err)
	}

	return nil
}

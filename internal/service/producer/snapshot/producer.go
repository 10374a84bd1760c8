package snapproducer

import (
	"context"
	"fmt"

	"github.com/you-humble/spare-parts/internal/model"
	"github.com/you-humble/spare-parts/platform/kafka"
)

const (
	EventTypeSnapshotLoaded = "snapshot_loaded"
	ContentTypeProtobuf     = "application/x-protobuf"
)

type Converter interface {
	SnapshotLoadedToPayload(e model.SnapshotLoaded) ([]byte, error)
}

type service struct {
	producer kafka.Producer
	conv     Converter
}

func NewSnapshotProducer(producer kafka.Producer, conv Converter) *service {
	return &service{producer: producer, conv: conv}
}

func (s *service) SendSnapshotLoaded(ctx context.Context, event model.SnapshotLoaded) error {
	payload, err := s.conv.SnapshotLoadedToPayload(event)
	if err != nil {
		return fmt.Errorf("converter snapshot_loaded_to_payload error: %w", err)
	}

	err = s.producer.Send(ctx, event.EventID[:], payload,
		kafka.Header{Key: kafka.HeaderEventType, Value: EventTypeSnapshotLoaded},
		kafka.Header{Key: kafka.HeaderContentType, Value: ContentTypeProtobuf},
	)
	if err != nil {
		return fmt.Errorf("producer to snapshot topic error: %w", err)
	}

	return nil
}

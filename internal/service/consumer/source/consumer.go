package srcconsumer

import (
	"context"
	"errors"

	"github.com/you-humble/spare-parts/internal/model"
	"github.com/you-humble/spare-parts/platform/kafka"
	"github.com/you-humble/spare-parts/platform/logger"
)

type Syncer interface {
	Sync(ctx context.Context) (model.SyncResult, error)
}

// service syncs the inventory whenever a message arrives on the source topic.
// The payload is not inspected; any message means "the source changed".
type service struct {
	consumer kafka.Consumer
	syncer   Syncer
}

func NewSourceConsumer(consumer kafka.Consumer, syncer Syncer) *service {
	return &service{consumer: consumer, syncer: syncer}
}

func (s *service) RunSourceUpdatedConsume(ctx context.Context) error {
	logger.Info(ctx, "Starting source updated consumer")

	if err := s.consumer.Consume(ctx, s.sourceUpdatedHandler); err != nil {
		logger.Error(ctx, "Consume from source topic error", logger.ErrorF(err))
		return err
	}

	return nil
}

func (s *service) sourceUpdatedHandler(ctx context.Context, msg kafka.Message) error {
	logger.Info(ctx, "Source update received",
		logger.String("topic", msg.Topic),
		logger.Any("partition", msg.Partition),
		logger.Any("offset", msg.Offset),
		logger.String("event_type", msg.Header(kafka.HeaderEventType)),
	)

	res, err := s.syncer.Sync(ctx)
	switch {
	case errors.Is(err, model.ErrSyncInProgress):
		// the running sync will pick up the change
		return nil
	case err != nil:
		logger.Error(ctx, "consumer.Sync", logger.ErrorF(err))
		return err
	}

	logger.Info(ctx, "Synced after source update", logger.Int("records", res.Snapshot.Len()))
	return nil
}
